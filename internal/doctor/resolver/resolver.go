// Package resolver settles a free-text doctor name into one registry record,
// asking the operator whenever the registry answer is empty or ambiguous.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"covrecord/internal/console"
	"covrecord/internal/doctor/name"
	"covrecord/internal/platform/metrics"
	"covrecord/internal/registry"
	"covrecord/internal/registry/models"
	"covrecord/internal/registry/search"
	"covrecord/pkg/domain"
)

const DefaultMaxAttempts = 5

const (
	promptField          = "Enter Doctor's %s: "
	promptRegistryNumber = "INAMI: "
	promptRetry          = "Retry the registry search? [yes/no] "

	// clearValue typed at a field prompt empties the field.
	clearValue = "-"
)

var candidateHeader = []string{"#", "Name", "INAMI", "Qualification", "Since", "Address"}

// Searcher runs one registry search.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (registry.SearchResult, error)
}

// Operator is the human in the loop.
type Operator interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
	Warn(format string, args ...any)
	Show(format string, args ...any)
	Table(header []string, rows [][]string)
}

type Resolver struct {
	searcher    Searcher
	operator    Operator
	logger      *slog.Logger
	metrics     *metrics.Metrics
	maxAttempts int
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithMaxAttempts bounds the registry searches per doctor. After the last
// one the operator is asked for the registry number directly.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func New(searcher Searcher, operator Operator, opts ...Option) (*Resolver, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if operator == nil {
		return nil, errors.New("operator is required")
	}
	r := &Resolver{
		searcher:    searcher,
		operator:    operator,
		logger:      slog.Default(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// FilterEligible keeps the candidates whose qualification allows general
// practice, in their original order.
func FilterEligible(candidates []models.Candidate) []models.Candidate {
	eligible := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if domain.QualificationCode(c.QualificationCode).GeneralPractice() {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// session is the per-doctor state carried through the state machine.
type session struct {
	state    State
	attempt  int
	req      search.Request
	searched search.Request
	eligible []models.Candidate
	doctor   domain.ResolvedDoctor
}

// Resolve returns the doctor named by raw. An empty name is not an error:
// it yields the zero ResolvedDoctor. Errors come only from the operator
// console (closed input) or ctx.
func (r *Resolver) Resolve(ctx context.Context, raw string) (domain.ResolvedDoctor, error) {
	if strings.TrimSpace(raw) == "" {
		r.logger.InfoContext(ctx, "no doctor selected, skipping registry search")
		r.metrics.ObserveResolution(string(domain.SourceNone), 0)
		return domain.ResolvedDoctor{}, nil
	}

	s := r.start(ctx, raw)
	for s.state != StateResolved {
		r.logger.DebugContext(ctx, "doctor resolution step", "state", s.state, "attempt", s.attempt)

		var err error
		switch s.state {
		case StateSearching:
			err = r.search(ctx, s)
		case StateAutoResolved:
			s.state = StateResolved
		case StateAwaitingConfirmation:
			err = r.confirm(ctx, s)
		}
		if err != nil {
			return domain.ResolvedDoctor{}, err
		}
	}

	r.metrics.ObserveResolution(string(s.doctor.Source), s.attempt)
	r.logger.InfoContext(ctx, "doctor resolved",
		"doctor", s.doctor.DisplayName(),
		"registry_number", s.doctor.RegistryNumber,
		"source", s.doctor.Source,
		"attempts", s.attempt,
	)
	return s.doctor, nil
}

func (r *Resolver) start(ctx context.Context, raw string) *session {
	s := &session{state: StateSearching}

	decomposed, err := name.Decompose(raw)
	if err == nil {
		s.req = search.FromName(decomposed).Normalize()
		return s
	}

	r.logger.WarnContext(ctx, "doctor name looks incomplete", "raw", raw, "error", err)
	r.operator.Warn("Doctor name %q looks incomplete, please check the search terms.", raw)

	var derr *name.DecompositionError
	if errors.As(err, &derr) && len(derr.Segments) > 0 {
		s.req = search.Request{LastName: derr.Segments[0]}.Normalize()
		return s
	}
	// Nothing to search with; go straight to the operator.
	s.state = StateAwaitingConfirmation
	return s
}

func (r *Resolver) search(ctx context.Context, s *session) error {
	s.attempt++
	s.searched = s.req

	result, err := r.searcher.Search(ctx, s.req)
	if err != nil {
		return r.searchFailed(ctx, s, err)
	}
	if warn := result.Query.Warning(); warn != nil {
		r.operator.Warn("%v", warn)
	}

	s.eligible = FilterEligible(result.Candidates)
	r.logger.InfoContext(ctx, "registry candidates filtered",
		"found", len(result.Candidates),
		"eligible", len(s.eligible),
		"cached", result.Cached,
	)

	if len(s.eligible) == 1 {
		c := s.eligible[0]
		s.doctor = domain.ResolvedDoctor{
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			RegistryNumber: c.RegistryNumber,
			Source:         domain.SourceRegistry,
		}
		s.state = StateAutoResolved
		return nil
	}
	s.state = StateAwaitingConfirmation
	return nil
}

func (r *Resolver) searchFailed(ctx context.Context, s *session, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s.eligible = nil

	var verr *search.ValidationError
	if errors.As(err, &verr) {
		// Nothing was sent to the registry.
		s.attempt--
		r.operator.Warn("%v", verr)
		s.state = StateAwaitingConfirmation
		return nil
	}

	r.logger.WarnContext(ctx, "registry search failed", "attempt", s.attempt, "error", err)
	r.operator.Warn("Registry search failed: %v", err)
	if s.attempt >= r.maxAttempts {
		return r.manual(ctx, s)
	}

	retry, cerr := r.operator.Confirm(ctx, promptRetry)
	if cerr != nil {
		return cerr
	}
	if retry {
		s.state = StateSearching
		return nil
	}
	return r.manual(ctx, s)
}

// confirm shows the current terms until the operator accepts them. Accepting
// the terms that were just searched means the registry has no better answer
// and the registry number is entered by hand; accepting edited terms searches
// again.
func (r *Resolver) confirm(ctx context.Context, s *session) error {
	if s.attempt >= r.maxAttempts {
		r.operator.Warn("No unique match after %d searches, enter the registry number manually.", s.attempt)
		return r.manual(ctx, s)
	}

	r.present(s)
	for {
		ok, err := r.operator.Confirm(ctx, console.ConfirmPrompt)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		if err := r.edit(ctx, s); err != nil {
			return err
		}
		r.showTerms(s)
	}

	if s.req.Equal(s.searched) {
		return r.manual(ctx, s)
	}
	s.state = StateSearching
	return nil
}

func (r *Resolver) present(s *session) {
	r.operator.Show("%d eligible doctor(s) found (search %d/%d).", len(s.eligible), s.attempt, r.maxAttempts)
	if len(s.eligible) > 1 {
		r.operator.Table(candidateHeader, candidateRows(s.eligible))
	}
	r.showTerms(s)
}

func (r *Resolver) showTerms(s *session) {
	title := cases.Title(language.French)
	for _, term := range s.req.Terms() {
		r.operator.Show("%s\t%s", term.Field, title.String(term.Value))
	}
}

// edit asks for every field in turn. An empty answer keeps the value and
// clearValue empties it.
func (r *Resolver) edit(ctx context.Context, s *session) error {
	for _, term := range s.req.Terms() {
		next, err := r.editField(ctx, s.req, term.Field)
		if err != nil {
			return err
		}
		s.req = next
	}
	return nil
}

func (r *Resolver) editField(ctx context.Context, req search.Request, field search.Field) (search.Request, error) {
	for {
		answer, err := r.operator.Ask(ctx, fmt.Sprintf(promptField, field))
		if err != nil {
			return req, err
		}

		next := req
		switch answer {
		case "":
			return req, nil
		case clearValue:
			answer = ""
		}
		if err := next.Set(field, answer); err != nil {
			return req, err
		}

		var verr *search.ValidationError
		if err := next.Validate(); errors.As(err, &verr) && verr.Field == field {
			r.operator.Warn("%v", verr)
			continue
		}
		return next, nil
	}
}

func (r *Resolver) manual(ctx context.Context, s *session) error {
	number, err := r.operator.Ask(ctx, promptRegistryNumber)
	if err != nil {
		return err
	}
	s.doctor = domain.ResolvedDoctor{
		FirstName:      s.req.FirstName,
		LastName:       s.req.LastName,
		RegistryNumber: number,
		Source:         domain.SourceOperator,
	}
	s.state = StateResolved
	return nil
}

func candidateRows(candidates []models.Candidate) [][]string {
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.LastName + ", " + c.FirstName,
			c.RegistryNumber,
			strconv.Itoa(c.QualificationCode) + " " + c.QualificationDescription,
			c.QualificationDate.String(),
			c.Address,
		})
	}
	return rows
}
