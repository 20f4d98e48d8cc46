package search

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"covrecord/internal/doctor/name"
)

// Field names a search term. Values match the registry's query parameters,
// except MiddleName which the registry does not accept.
type Field string

const (
	FieldLastName      Field = "lastname"
	FieldFirstName     Field = "firstname"
	FieldMiddleName    Field = "middlename"
	FieldNIHDINumber   Field = "nihdinumber"
	FieldWhere         Field = "where"
	FieldQualification Field = "qualification"
)

// displayOrder is the order terms are shown to the operator.
var displayOrder = []Field{
	FieldLastName,
	FieldFirstName,
	FieldMiddleName,
	FieldNIHDINumber,
	FieldWhere,
	FieldQualification,
}

// ErrInvalidSearch is the sentinel wrapped by every ValidationError.
var ErrInvalidSearch = errors.New("invalid search request")

// ValidationError reports a search term the registry cannot accept.
type ValidationError struct {
	Field  Field
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSearch
}

// Request holds the registry search terms. The numeric-only fields are
// rejected, never coerced, when they carry anything but digits.
type Request struct {
	LastName      string `field:"lastname"`
	FirstName     string `field:"firstname"`
	MiddleName    string `field:"middlename"`
	NIHDINumber   string `field:"nihdinumber" validate:"omitempty,number"`
	Where         string `field:"where" validate:"omitempty,number"`
	Qualification string `field:"qualification" validate:"omitempty,number"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

// FromName seeds a request with decomposed name parts.
func FromName(d name.Decomposed) Request {
	return Request{
		LastName:   d.LastName,
		FirstName:  d.FirstName,
		MiddleName: d.MiddleName,
	}
}

// FromMap builds a request from loosely keyed input. Keys are trimmed,
// lower-cased and stripped of underscores, so "NIHDI_Number" is accepted.
func FromMap(values map[string]string) (Request, error) {
	var req Request
	for key, value := range values {
		if err := req.Set(Field(NormalizeKey(key)), value); err != nil {
			return Request{}, err
		}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// NormalizeKey trims, lower-cases and removes underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "")
}

// NormalizeValue trims and lower-cases.
func NormalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Set stores a normalized value for field.
func (r *Request) Set(field Field, value string) error {
	p, ok := r.slot(field)
	if !ok {
		return &ValidationError{Field: field, Value: value, Reason: "unknown search field"}
	}
	*p = NormalizeValue(value)
	return nil
}

// Get returns the value stored for field, or "" for unknown fields.
func (r Request) Get(field Field) string {
	p, ok := r.slot(field)
	if !ok {
		return ""
	}
	return *p
}

func (r *Request) slot(field Field) (*string, bool) {
	switch field {
	case FieldLastName:
		return &r.LastName, true
	case FieldFirstName:
		return &r.FirstName, true
	case FieldMiddleName:
		return &r.MiddleName, true
	case FieldNIHDINumber:
		return &r.NIHDINumber, true
	case FieldWhere:
		return &r.Where, true
	case FieldQualification:
		return &r.Qualification, true
	}
	return nil, false
}

// Normalize returns a copy with every value trimmed and lower-cased.
// Normalizing twice yields the same request.
func (r Request) Normalize() Request {
	for _, f := range displayOrder {
		_ = r.Set(f, r.Get(f))
	}
	return r
}

// Validate checks the numeric-only fields.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate search request: %w", err)
	}
	fe := fieldErrs[0]
	reason := "invalid value"
	if fe.Tag() == "number" {
		reason = "expects a number"
	}
	return &ValidationError{
		Field:  Field(fe.Field()),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
	}
}

// Term is one field/value pair in display order.
type Term struct {
	Field Field
	Value string
}

// Terms lists every field in display order, empty ones included.
func (r Request) Terms() []Term {
	terms := make([]Term, 0, len(displayOrder))
	for _, f := range displayOrder {
		terms = append(terms, Term{Field: f, Value: r.Get(f)})
	}
	return terms
}

// Equal compares requests after normalization.
func (r Request) Equal(other Request) bool {
	return r.Normalize() == other.Normalize()
}
