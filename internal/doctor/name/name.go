// Package name splits free-text doctor names into registry search components.
//
// The rules are tuned to Belgian naming: a small fixed set of particles
// ("van", "de la", ...) glue onto the following token to form one compound
// surname segment. Segments map positionally onto last, first and middle name.
package name

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrIncompleteName is returned when fewer than two name segments remain
// after decomposition.
var ErrIncompleteName = errors.New("incomplete doctor name")

// DecompositionError reports a name that cannot be mapped onto
// lastname/firstname.
type DecompositionError struct {
	Input    string
	Segments []string
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("decompose %q: got %d segment(s), need at least 2", e.Input, len(e.Segments))
}

func (e *DecompositionError) Unwrap() error {
	return ErrIncompleteName
}

// particles join with the next non-particle token. "de la" never matches a
// single token but is kept so the list reads like the registry's own.
var particles = map[string]struct{}{
	"van":    {},
	"den":    {},
	"vanden": {},
	"vande":  {},
	"de":     {},
	"du":     {},
	"la":     {},
	"le":     {},
	"dela":   {},
	"de la":  {},
}

var titles = []string{"dr.", "dr"}

// IsParticle reports whether tok is a surname-joining particle.
func IsParticle(tok string) bool {
	_, ok := particles[tok]
	return ok
}

// Decomposed holds the positional name slots used to search the registry.
type Decomposed struct {
	LastName   string
	FirstName  string
	MiddleName string
}

// Tokens returns every whitespace token across the three slots, in slot order.
func (d Decomposed) Tokens() []string {
	return strings.Fields(strings.Join([]string{d.LastName, d.FirstName, d.MiddleName}, " "))
}

// Decompose normalizes raw and maps its segments onto the name slots.
// Segment 0 is the last name, segment 1 the first name; any further segments
// are folded into the middle name so no token is dropped.
func Decompose(raw string) (Decomposed, error) {
	segments := Segments(Tokenize(raw))
	if len(segments) < 2 {
		return Decomposed{}, &DecompositionError{Input: raw, Segments: segments}
	}

	d := Decomposed{
		LastName:  segments[0],
		FirstName: segments[1],
	}
	if len(segments) > 2 {
		d.MiddleName = strings.Join(segments[2:], " ")
	}
	return d, nil
}

// Tokenize lower-cases raw, drops a leading title and stray punctuation and
// splits the remainder on whitespace.
func Tokenize(raw string) []string {
	lowered := cases.Lower(language.French).String(raw)
	fields := strings.Fields(lowered)
	if len(fields) > 0 {
		fields[0] = stripTitle(fields[0])
	}

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := cleanToken(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Segments groups tokens, turning each particle run plus its terminating token
// into a single segment. A particle run at the end of the input stands alone.
func Segments(tokens []string) []string {
	var (
		segments []string
		compound []string
	)
	for _, tok := range tokens {
		switch {
		case IsParticle(tok):
			compound = append(compound, tok)
		case len(compound) > 0:
			compound = append(compound, tok)
			segments = append(segments, strings.Join(compound, " "))
			compound = nil
		default:
			segments = append(segments, tok)
		}
	}
	if len(compound) > 0 {
		segments = append(segments, strings.Join(compound, " "))
	}
	return segments
}

func stripTitle(field string) string {
	for _, title := range titles {
		if field == title {
			return ""
		}
	}
	// "dr.dupont" has the title glued on.
	if strings.HasPrefix(field, "dr.") {
		return field[len("dr."):]
	}
	return field
}

func cleanToken(field string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '-', r == '\'', r == '’':
			return r
		default:
			return -1
		}
	}, field)
	return strings.Trim(kept, "-'’")
}
