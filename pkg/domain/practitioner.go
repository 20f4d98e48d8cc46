package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QualificationCode classifies a practitioner's role in the registry.
type QualificationCode int

// generalPractice lists the codes eligible for general-practice duties.
var generalPractice = map[QualificationCode]struct{}{
	0: {}, 1: {}, 3: {}, 4: {}, 5: {}, 6: {}, 7: {}, 8: {}, 9: {},
}

// GeneralPractice reports whether code may be accepted as the prescribing
// doctor.
func (c QualificationCode) GeneralPractice() bool {
	_, ok := generalPractice[c]
	return ok
}

// ResolutionSource records how a doctor was settled.
type ResolutionSource string

const (
	SourceNone     ResolutionSource = ""
	SourceRegistry ResolutionSource = "registry"
	SourceOperator ResolutionSource = "operator"
)

// ResolvedDoctor is the prescribing doctor written to the intake form.
// The zero value means no doctor was named upstream.
type ResolvedDoctor struct {
	FirstName      string
	LastName       string
	RegistryNumber string
	Source         ResolutionSource
}

func (d ResolvedDoctor) IsZero() bool {
	return d.FirstName == "" && d.LastName == "" && d.RegistryNumber == ""
}

// DisplayName renders "Dr. Firstname Lastname", or "" for the zero value.
func (d ResolvedDoctor) DisplayName() string {
	full := strings.Join(strings.Fields(d.FirstName+" "+d.LastName), " ")
	if full == "" {
		return ""
	}
	return "Dr. " + cases.Title(language.French).String(full)
}
