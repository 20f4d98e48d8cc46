package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralPractice(t *testing.T) {
	for code := QualificationCode(-1); code <= 12; code++ {
		want := code >= 0 && code <= 9 && code != 2
		assert.Equal(t, want, code.GeneralPractice(), "code %d", code)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		doctor ResolvedDoctor
		want   string
	}{
		{"registry names are title-cased", ResolvedDoctor{FirstName: "marie", LastName: "dupont"}, "Dr. Marie Dupont"},
		{"compound surnames", ResolvedDoctor{FirstName: "jean", LastName: "van der berg"}, "Dr. Jean Van Der Berg"},
		{"hyphenated first name", ResolvedDoctor{FirstName: "jean-luc", LastName: "martin"}, "Dr. Jean-Luc Martin"},
		{"zero value", ResolvedDoctor{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doctor.DisplayName())
		})
	}
}
