package intake

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"covrecord/pkg/domain"
	"covrecord/pkg/requestcontext"
)

// Logical form fields, in the order they are written.
const (
	FieldName           = "name"
	FieldFirstName      = "firstname"
	FieldNationalNumber = "nationalnumber"
	FieldDateOfBirth    = "dateofbirth"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldTestTube       = "test_tube"
	FieldDoctor         = "doctor"
	FieldINAMI          = "inami"
	FieldGender         = "gender"
	FieldZip            = "zip"
)

var FormFields = []string{
	FieldName,
	FieldFirstName,
	FieldNationalNumber,
	FieldDateOfBirth,
	FieldPhone,
	FieldEmail,
	FieldTestTube,
	FieldDoctor,
	FieldINAMI,
	FieldGender,
	FieldZip,
}

// Logical buttons.
const (
	ButtonPrint          = "print"
	ButtonSave           = "save"
	ButtonOtherTreatment = "other_treatment"
)

// FormSink is a field-oriented UI the workflow writes into.
type FormSink interface {
	SetField(ctx context.Context, field, value string) error
	Click(ctx context.Context, button string) error
}

// Patient is everything collected in one iteration.
type Patient struct {
	Identity Identity
	Contact  Contact
	Doctor   domain.ResolvedDoctor
	// Tube is the label as accepted, which may be an operator override.
	Tube string
}

// Fields maps every form field to its value; unknown values are "".
func (p Patient) Fields() map[string]string {
	return map[string]string{
		FieldName:           p.Identity.Name,
		FieldFirstName:      p.Identity.FirstName,
		FieldNationalNumber: p.Identity.NationalNumber,
		FieldDateOfBirth:    p.Identity.DateOfBirth,
		FieldPhone:          p.Contact.Phone,
		FieldEmail:          p.Contact.Email,
		FieldTestTube:       p.Tube,
		FieldDoctor:         p.Doctor.DisplayName(),
		FieldINAMI:          p.Doctor.RegistryNumber,
		FieldGender:         p.Identity.Gender,
		FieldZip:            p.Identity.Zip,
	}
}

// Fill writes every form field, in FormFields order.
func Fill(ctx context.Context, sink FormSink, p Patient) error {
	values := p.Fields()
	for _, field := range FormFields {
		if err := sink.SetField(ctx, field, values[field]); err != nil {
			return fmt.Errorf("set form field %s: %w", field, err)
		}
	}
	return nil
}

// Submission is one form as written by JSONSink.
type Submission struct {
	IterationID string            `json:"iteration_id,omitempty"`
	Button      string            `json:"button"`
	At          time.Time         `json:"at"`
	Fields      map[string]string `json:"fields"`
}

// JSONSink records the fields it is given and writes them as one JSON line
// per button click.
type JSONSink struct {
	mu     sync.Mutex
	w      io.Writer
	fields map[string]string
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w, fields: make(map[string]string)}
}

func (s *JSONSink) SetField(_ context.Context, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[field] = value
	return nil
}

func (s *JSONSink) Click(ctx context.Context, button string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := Submission{
		Button: button,
		At:     requestcontext.Now(ctx).UTC(),
		Fields: s.fields,
	}
	if iterationID := requestcontext.IterationID(ctx); !iterationID.IsNil() {
		sub.IterationID = iterationID.String()
	}
	line, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode form submission: %w", err)
	}
	if _, err := s.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write form submission: %w", err)
	}
	s.fields = make(map[string]string)
	return nil
}

// LogSink drives nothing; it logs what would be written. It stands in for
// the scheduling system when no browser session is attached.
type LogSink struct {
	name   string
	logger *slog.Logger
}

func NewLogSink(name string, logger *slog.Logger) *LogSink {
	return &LogSink{name: name, logger: logger}
}

func (s *LogSink) SetField(ctx context.Context, field, value string) error {
	s.logger.DebugContext(ctx, "form field set", "form", s.name, "field", field, "empty", value == "")
	return nil
}

func (s *LogSink) Click(ctx context.Context, button string) error {
	s.logger.InfoContext(ctx, "form button clicked", "form", s.name, "button", button)
	return nil
}
