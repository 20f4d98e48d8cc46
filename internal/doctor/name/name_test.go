package name

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Decomposed
	}{
		{
			name:     "compound surname first",
			input:    "de la croix jean",
			expected: Decomposed{LastName: "de la croix", FirstName: "jean"},
		},
		{
			name:     "title and capitals are stripped",
			input:    "Dr. DUPONT Marie",
			expected: Decomposed{LastName: "dupont", FirstName: "marie"},
		},
		{
			name:     "glued title",
			input:    "dr.dupont marie",
			expected: Decomposed{LastName: "dupont", FirstName: "marie"},
		},
		{
			name:     "middle name",
			input:    "peeters jan karel",
			expected: Decomposed{LastName: "peeters", FirstName: "jan", MiddleName: "karel"},
		},
		{
			name:     "particle run terminated by next token",
			input:    "van den bossche an",
			expected: Decomposed{LastName: "van den bossche", FirstName: "an"},
		},
		{
			name:     "compound in first name slot",
			input:    "martin le roy",
			expected: Decomposed{LastName: "martin", FirstName: "le roy"},
		},
		{
			name:     "hyphenated first name stays whole",
			input:    "dubois jean-pierre",
			expected: Decomposed{LastName: "dubois", FirstName: "jean-pierre"},
		},
		{
			name:     "stray punctuation and whitespace",
			input:    "  dubois ,  jean - pierre  ",
			expected: Decomposed{LastName: "dubois", FirstName: "jean", MiddleName: "pierre"},
		},
		{
			name:     "extra segments fold into middle name",
			input:    "janssens piet jan karel",
			expected: Decomposed{LastName: "janssens", FirstName: "piet", MiddleName: "jan karel"},
		},
		{
			name:     "trailing particle is kept",
			input:    "dupont marie de",
			expected: Decomposed{LastName: "dupont", FirstName: "marie", MiddleName: "de"},
		},
		{
			name:     "accented capitals lower-cased",
			input:    "LÉONARD Hélène",
			expected: Decomposed{LastName: "léonard", FirstName: "hélène"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecomposeIncomplete(t *testing.T) {
	for _, input := range []string{"", "dr.", "dupont", "van de"} {
		t.Run(input, func(t *testing.T) {
			_, err := Decompose(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteName)

			var decompErr *DecompositionError
			require.ErrorAs(t, err, &decompErr)
			assert.Equal(t, input, decompErr.Input)
		})
	}
}

func TestDecomposeConservesTokens(t *testing.T) {
	inputs := []string{
		"de la croix jean",
		"van den bossche an marie",
		"vanden eynde tom",
		"du bois le clercq luc",
		"peeters jan karel",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			d, err := Decompose(input)
			require.NoError(t, err)

			want := Tokenize(input)
			got := d.Tokens()
			sort.Strings(want)
			sort.Strings(got)
			assert.Equal(t, want, got)
		})
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t,
		[]string{"jean", "van der", "berg"},
		Segments([]string{"jean", "van", "der", "berg"}),
	)
	assert.Nil(t, Segments(nil))
}
