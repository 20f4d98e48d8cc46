// Package tube validates swab tube labels and predicts the next one.
//
// A label reads "C19-<serial>-<check>M": the C19 prefix, a numeric serial and
// a trailing M. Tubes are handed out in serial order, so the next label is the
// current one with its serial incremented.
package tube

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Prefix    = "C19"
	Suffix    = "M"
	separator = "-"
)

// ErrInvalidID is wrapped by every label that fails validation.
var ErrInvalidID = errors.New("invalid test tube code")

// ID is a validated tube label. The zero value means "no prediction".
type ID struct {
	raw string
}

// looseSeparators are accepted after the prefix in place of the separator.
const looseSeparators = " _./"

// Parse validates raw. A space, underscore, dot or slash after the prefix is
// read as the separator; any other character there is kept, so a label typed
// without a separator is rejected rather than losing a serial digit.
func Parse(raw string) (ID, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) > len(Prefix) && strings.IndexByte(looseSeparators, s[len(Prefix)]) >= 0 {
		s = s[:len(Prefix)] + separator + s[len(Prefix)+1:]
	}

	if !strings.HasPrefix(s, Prefix) || !strings.HasSuffix(s, Suffix) {
		return ID{}, fmt.Errorf("%w %q: must start with %s and end with %s", ErrInvalidID, raw, Prefix, Suffix)
	}
	parts := strings.Split(s, separator)
	if len(parts) < 3 {
		return ID{}, fmt.Errorf("%w %q: missing serial", ErrInvalidID, raw)
	}
	if !isDigits(parts[1]) {
		return ID{}, fmt.Errorf("%w %q: serial %q is not a number", ErrInvalidID, raw, parts[1])
	}
	return ID{raw: s}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return id.raw
}

func (id ID) IsZero() bool {
	return id.raw == ""
}

// Serial returns the numeric serial segment.
func (id ID) Serial() string {
	if id.IsZero() {
		return ""
	}
	return strings.Split(id.raw, separator)[1]
}

// Next predicts the label of the following tube. Leading zeros in the serial
// are kept. The zero ID has no successor.
func (id ID) Next() ID {
	if id.IsZero() {
		return ID{}
	}
	parts := strings.Split(id.raw, separator)
	serial := parts[1]
	n, err := strconv.ParseUint(serial, 10, 64)
	if err != nil {
		return ID{}
	}
	parts[1] = fmt.Sprintf("%0*d", len(serial), n+1)
	return ID{raw: strings.Join(parts, separator)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
