package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseQualificationDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  QualificationDate
	}{
		{"zero padded", "15/03/2010", NewQualificationDate(2010, time.March, 15)},
		{"unpadded day and month", "5/3/2010", NewQualificationDate(2010, time.March, 5)},
		{"padded day unpadded month", "05/3/2010", NewQualificationDate(2010, time.March, 5)},
		{"month first", "2010/03/15", QualificationDate{}},
		{"impossible day", "31/02/2010", QualificationDate{}},
		{"text", "inconnue", QualificationDate{}},
		{"empty", "", QualificationDate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQualificationDate(tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Known(), got.Known())
		})
	}
}

func TestQualificationDateString(t *testing.T) {
	assert.Equal(t, "2010-03-05", ParseQualificationDate("5/3/2010").String())
	assert.Equal(t, UnknownDate, QualificationDate{}.String())
}
