package search

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultBaseURL is the registry search form endpoint with paging already set,
// so every term is appended as "&key=value".
const DefaultBaseURL = "https://ondpanon.riziv.fgov.be/SilverPages/fr/Home/SearchByForm?PageOffset=0&PageSize=200"

// ErrEmptySearch warns that a query carries no terms and would match the
// whole registry. It is advisory: the search still runs.
var ErrEmptySearch = errors.New("empty search: every registry entry would match")

// queryOrder lists the fields sent to the registry. Middle names are never sent.
var queryOrder = []Field{
	FieldLastName,
	FieldFirstName,
	FieldNIHDINumber,
	FieldWhere,
	FieldQualification,
}

// Query is a built registry search URL.
type Query struct {
	base   string
	params string
}

// Build normalizes and validates req, then appends each non-empty term to base.
func Build(base string, req Request) (Query, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Query{}, err
	}

	var b strings.Builder
	for _, f := range queryOrder {
		value := req.Get(f)
		if value == "" {
			continue
		}
		b.WriteString("&")
		b.WriteString(string(f))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(value))
	}
	return Query{base: base, params: b.String()}, nil
}

// URL is the full address to GET.
func (q Query) URL() string {
	return q.base + q.params
}

// Params is the appended "&key=value" part; it doubles as the cache key.
func (q Query) Params() string {
	return q.params
}

func (q Query) Empty() bool {
	return q.params == ""
}

// Warning returns ErrEmptySearch for a query without terms, nil otherwise.
func (q Query) Warning() error {
	if q.Empty() {
		return ErrEmptySearch
	}
	return nil
}
