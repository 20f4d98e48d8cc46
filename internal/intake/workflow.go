// Package intake drives one patient at a time through card read, contact
// capture, doctor resolution, tube labelling and form fill.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"covrecord/internal/console"
	"covrecord/internal/intake/tube"
	"covrecord/internal/platform/metrics"
	"covrecord/pkg/domain"
	"covrecord/pkg/requestcontext"
)

const (
	promptReadCard  = "Read card"
	promptTube      = "Test tube code (%s) :"
	promptOverwrite = "Overwrite? [yes/no] "

	msgNextPatient  = "\n\n---------- Next patient ----------"
	msgQuitting     = "Quitting"
	msgInvalidTube  = "This is not a valid code..."
	maxInvalidTubes = 2
)

var quitAnswers = map[string]struct{}{
	"q": {}, "quit": {}, "e": {}, "exit": {},
}

// IsQuit reports whether answer is one of the quit sentinels.
func IsQuit(answer string) bool {
	_, ok := quitAnswers[strings.ToLower(strings.TrimSpace(answer))]
	return ok
}

// Operator is the console the workflow prompts on.
type Operator interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
	Warn(format string, args ...any)
	Show(format string, args ...any)
}

// DoctorResolver turns the free-text doctor into a registry record.
type DoctorResolver interface {
	Resolve(ctx context.Context, raw string) (domain.ResolvedDoctor, error)
}

type Workflow struct {
	identities IdentitySource
	contacts   ContactSource
	doctors    DoctorResolver
	intake     FormSink
	scheduling FormSink
	operator   Operator
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Workflow)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Workflow) {
		w.metrics = m
	}
}

// WithScheduling sets the scheduling system sink told about each printed form.
func WithScheduling(sink FormSink) Option {
	return func(w *Workflow) {
		w.scheduling = sink
	}
}

func New(identities IdentitySource, contacts ContactSource, doctors DoctorResolver, intake FormSink, operator Operator, opts ...Option) (*Workflow, error) {
	switch {
	case identities == nil:
		return nil, errors.New("identity source is required")
	case contacts == nil:
		return nil, errors.New("contact source is required")
	case doctors == nil:
		return nil, errors.New("doctor resolver is required")
	case intake == nil:
		return nil, errors.New("intake form is required")
	case operator == nil:
		return nil, errors.New("operator is required")
	}
	w := &Workflow{
		identities: identities,
		contacts:   contacts,
		doctors:    doctors,
		intake:     intake,
		operator:   operator,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes patients until the operator quits, the console closes or
// ctx is cancelled. A failed iteration is logged and the next patient starts;
// the tube prediction carries over unchanged.
func (w *Workflow) Run(ctx context.Context, predicted tube.ID) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		w.operator.Show(msgNextPatient)
		answer, err := w.operator.Ask(ctx, promptReadCard)
		if errors.Is(err, console.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if IsQuit(answer) {
			w.operator.Show(msgQuitting)
			w.logger.InfoContext(ctx, "operator quit")
			return nil
		}

		iterationID := domain.NewIterationID()
		iterCtx := requestcontext.WithIterationID(ctx, iterationID)
		iterCtx = requestcontext.WithTime(iterCtx, time.Now())

		next, err := w.Iterate(iterCtx, predicted)
		switch {
		case err == nil:
			predicted = next
		case errors.Is(err, console.ErrClosed):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			w.metrics.IncrementIterationFailures()
			w.logger.ErrorContext(iterCtx, "patient iteration failed", "error", err)
			w.operator.Warn("Patient skipped: %v", err)
		}
	}
}

// Iterate handles one patient and returns the next predicted tube.
func (w *Workflow) Iterate(ctx context.Context, predicted tube.ID) (tube.ID, error) {
	w.logger.InfoContext(ctx, "next patient")

	identity, err := w.identities.ReadIdentity(ctx)
	if err != nil {
		return predicted, fmt.Errorf("read identity: %w", err)
	}
	w.operator.Show("First name\t%s", identity.FirstName)
	w.operator.Show("Last name\t%s", identity.Name)
	w.operator.Show("Address\t%s", identity.Address())

	contact, err := w.captureContact(ctx, identity)
	if err != nil {
		return predicted, fmt.Errorf("capture contact: %w", err)
	}

	rawDoctor, err := w.contacts.DoctorName(ctx)
	if err != nil {
		return predicted, fmt.Errorf("read doctor: %w", err)
	}
	doctor, err := w.doctors.Resolve(ctx, rawDoctor)
	if err != nil {
		return predicted, fmt.Errorf("resolve doctor: %w", err)
	}

	label, next, err := w.askTube(ctx, predicted)
	if err != nil {
		return predicted, fmt.Errorf("read tube: %w", err)
	}

	patient := Patient{Identity: identity, Contact: contact, Doctor: doctor, Tube: label}
	if err := Fill(ctx, w.intake, patient); err != nil {
		return predicted, err
	}
	if err := w.intake.Click(ctx, ButtonPrint); err != nil {
		return predicted, fmt.Errorf("print intake form: %w", err)
	}
	if w.scheduling != nil {
		if err := w.scheduling.Click(ctx, ButtonOtherTreatment); err != nil {
			return predicted, fmt.Errorf("record treatment: %w", err)
		}
	}

	w.metrics.IncrementPatientsProcessed()
	w.logger.InfoContext(ctx, "patient recorded",
		"tube", label,
		"doctor_source", doctor.Source,
		"next_tube", next.String(),
	)
	return next, nil
}

// captureContact reads the selected patient until its national number
// matches the card, then fills in missing phone and email.
func (w *Workflow) captureContact(ctx context.Context, identity Identity) (Contact, error) {
	for {
		contact, err := w.contacts.Contact(ctx)
		if err != nil {
			return Contact{}, err
		}
		if contact.NationalNumber != identity.NationalNumber {
			w.logger.WarnContext(ctx, "national numbers do not match")
			w.operator.Warn(msgNationalNumberMismatch)
			if _, err := w.operator.Ask(ctx, promptSelectPatient); err != nil {
				return Contact{}, err
			}
			continue
		}

		contact = contact.normalize()
		if contact.Phone == "" {
			w.logger.WarnContext(ctx, "no phone selected")
			if contact.Phone, err = w.operator.Ask(ctx, promptMissingPhone); err != nil {
				return Contact{}, err
			}
		}
		if contact.Email == "" {
			w.logger.WarnContext(ctx, "no email address selected")
			if contact.Email, err = w.operator.Ask(ctx, promptMissingEmail); err != nil {
				return Contact{}, err
			}
		}
		return contact, nil
	}
}

// askTube reads the tube label. An empty answer takes the prediction. After
// repeated invalid labels the operator may force one through; a forced label
// leaves the prediction unchanged.
func (w *Workflow) askTube(ctx context.Context, predicted tube.ID) (string, tube.ID, error) {
	invalid := 0
	for {
		answer, err := w.operator.Ask(ctx, fmt.Sprintf(promptTube, predicted))
		if err != nil {
			return "", predicted, err
		}
		if answer == "" && !predicted.IsZero() {
			answer = predicted.String()
		}

		id, err := tube.Parse(answer)
		if err == nil {
			return id.String(), id.Next(), nil
		}
		w.operator.Show(msgInvalidTube)
		w.logger.WarnContext(ctx, "invalid tube label", "label", answer, "error", err)

		invalid++
		if invalid < maxInvalidTubes {
			continue
		}
		overwrite, err := w.operator.Confirm(ctx, promptOverwrite)
		if err != nil {
			return "", predicted, err
		}
		if overwrite {
			w.logger.WarnContext(ctx, "operator overrode tube validation", "label", answer)
			return answer, predicted, nil
		}
	}
}
