// Package parser turns registry search pages into candidate records.
//
// The page layout is owned by the registry. All knowledge of it lives in the
// selectors below and in classifyLabel, so a layout change is contained here.
package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"covrecord/internal/registry/models"
)

const (
	blockSelector = "div.col-sm-4"
	nameSelector  = "small.ng-binding"
	rowSelector   = "div.panel-body div.row"
	valueSelector = "p small"
	nameSeparator = ", "
)

// ErrMalformedRecord is wrapped by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed registry record")

// MalformedRecordError describes a candidate block that was skipped.
type MalformedRecordError struct {
	Block  int
	Name   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("registry block %d: %s", e.Block, e.Reason)
	}
	return fmt.Sprintf("registry block %d (%s): %s", e.Block, e.Name, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Result holds the parsed candidates in page order and the blocks skipped.
type Result struct {
	Candidates []models.Candidate
	Skipped    []error
}

type Parser struct {
	logger *slog.Logger
}

type Option func(*Parser)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a registry page. A page without candidates is a valid, empty
// result; only unreadable markup is an error.
func (p *Parser) Parse(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("parse registry page: %w", err)
	}
	return p.ParseDocument(doc), nil
}

func (p *Parser) ParseDocument(doc *goquery.Document) Result {
	result := Result{Candidates: []models.Candidate{}}
	doc.Find(blockSelector).Each(func(i int, block *goquery.Selection) {
		candidate, err := parseBlock(i, block)
		if err != nil {
			p.logger.Warn("skipping registry record", "block", i, "error", err)
			result.Skipped = append(result.Skipped, err)
			return
		}
		result.Candidates = append(result.Candidates, candidate)
	})
	return result
}

func parseBlock(index int, block *goquery.Selection) (models.Candidate, error) {
	nameNode := block.Find(nameSelector).First()
	if nameNode.Length() == 0 {
		return models.Candidate{}, &MalformedRecordError{Block: index, Reason: "missing practitioner name"}
	}
	fullName := clean(nameNode.Text())
	last, first, ok := strings.Cut(fullName, nameSeparator)
	if !ok || last == "" || first == "" {
		return models.Candidate{}, &MalformedRecordError{Block: index, Name: fullName, Reason: "name is not \"lastname, firstname\""}
	}

	c := models.Candidate{
		LastName:  last,
		FirstName: first,
	}
	hasQualification := false

	var rowErr error
	block.Find(rowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label, values, ok := extractRow(row)
		if !ok {
			return true
		}

		switch classifyLabel(label) {
		case labelRegistryNumber:
			c.RegistryNumber = values[0]
		case labelQualificationDate:
			c.QualificationDate = models.ParseQualificationDate(values[0])
		case labelAddress:
			c.Address = joinAddress(values)
		case labelQualification:
			code, err := strconv.Atoi(values[0])
			if err != nil {
				rowErr = &MalformedRecordError{Block: index, Name: fullName, Reason: fmt.Sprintf("qualification code %q is not a number", values[0])}
				return false
			}
			c.QualificationCode = code
			if len(values) > 1 {
				c.QualificationDescription = values[1]
			}
			hasQualification = true
		default:
			if c.Attributes == nil {
				c.Attributes = make(map[string]string)
			}
			c.Attributes[label] = values[0]
		}
		return true
	})
	if rowErr != nil {
		return models.Candidate{}, rowErr
	}
	if !hasQualification {
		return models.Candidate{}, &MalformedRecordError{Block: index, Name: fullName, Reason: "missing qualification code"}
	}
	return c, nil
}

// extractRow returns the normalized label and value lines of a row. Rows
// without a label or without any value are reported as not ok.
func extractRow(row *goquery.Selection) (string, []string, bool) {
	labelNode := row.Find("label").First()
	if labelNode.Length() == 0 {
		return "", nil, false
	}
	label := clean(labelNode.Find("small").First().Text())
	if label == "" {
		return "", nil, false
	}

	var values []string
	row.Find(valueSelector).Each(func(_ int, s *goquery.Selection) {
		if v := clean(s.Text()); v != "" {
			values = append(values, v)
		}
	})
	if len(values) == 0 {
		return "", nil, false
	}
	return label, values, true
}

// joinAddress concatenates the primary line with the secondary one, if any.
func joinAddress(lines []string) string {
	if len(lines) > 2 {
		lines = lines[:2]
	}
	return strings.Join(lines, " ")
}

// clean lower-cases text and folds non-breaking spaces, blank lines and
// whitespace runs into single spaces.
func clean(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
