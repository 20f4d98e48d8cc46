package models

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// UnknownDate is the sentinel shown for qualification dates the registry
// did not publish or published in an unexpected format.
const UnknownDate = "Unknown"

// QualificationDateLayout is the day-first layout used by the registry pages.
// Day and month may or may not be zero padded.
const QualificationDateLayout = "2/1/2006"

// Candidate is one practitioner record parsed from a registry search page.
// Candidates are produced per query and never mutated afterwards.
type Candidate struct {
	FirstName                string            `json:"firstname"`
	LastName                 string            `json:"lastname"`
	RegistryNumber           string            `json:"registry_number"`
	Address                  string            `json:"address"`
	QualificationCode        int               `json:"qualification_code"`
	QualificationDescription string            `json:"qualification_description"`
	QualificationDate        QualificationDate `json:"qualification_date"`
	Attributes               map[string]string `json:"attributes,omitempty"`
}

// QualificationDate is a calendar date or the Unknown sentinel (zero value).
type QualificationDate struct {
	t time.Time
}

// NewQualificationDate builds a known date at midnight UTC.
func NewQualificationDate(year int, month time.Month, day int) QualificationDate {
	return QualificationDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseQualificationDate parses "dd/mm/yyyy" or "d/m/yyyy". Anything else yields the
// Unknown sentinel; a missing date is expected data, not an error.
func ParseQualificationDate(value string) QualificationDate {
	t, err := time.Parse(QualificationDateLayout, value)
	if err != nil {
		return QualificationDate{}
	}
	return QualificationDate{t: t}
}

func (d QualificationDate) Known() bool {
	return !d.t.IsZero()
}

// Time returns the date, or the zero time when unknown.
func (d QualificationDate) Time() time.Time {
	return d.t
}

func (d QualificationDate) String() string {
	if !d.Known() {
		return UnknownDate
	}
	return d.t.Format(time.DateOnly)
}

func (d QualificationDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *QualificationDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = QualificationDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("qualification date: %w", err)
	}
	if s == UnknownDate || s == "" {
		*d = QualificationDate{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("qualification date %q: %w", s, err)
	}
	*d = QualificationDate{t: t}
	return nil
}
