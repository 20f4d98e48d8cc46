package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrecord/internal/doctor/name"
)

const testBase = "https://registry.test/SearchByForm?PageOffset=0&PageSize=200"

func TestBuild(t *testing.T) {
	t.Run("appends non-empty terms in registry order", func(t *testing.T) {
		req, err := FromMap(map[string]string{
			"lastname":    "smith",
			"firstname":   "",
			"nihdinumber": "12345",
		})
		require.NoError(t, err)

		q, err := Build(testBase, req)
		require.NoError(t, err)
		assert.Equal(t, "&lastname=smith&nihdinumber=12345", q.Params())
		assert.Equal(t, testBase+"&lastname=smith&nihdinumber=12345", q.URL())
		assert.NoError(t, q.Warning())
	})

	t.Run("middle name is never sent", func(t *testing.T) {
		q, err := Build(testBase, Request{LastName: "peeters", FirstName: "jan", MiddleName: "karel"})
		require.NoError(t, err)
		assert.Equal(t, "&lastname=peeters&firstname=jan", q.Params())
	})

	t.Run("values are normalized and escaped", func(t *testing.T) {
		q, err := Build(testBase, Request{LastName: "  De La Croix ", Where: " 1040 "})
		require.NoError(t, err)
		assert.Equal(t, "&lastname=de+la+croix&where=1040", q.Params())
	})

	t.Run("empty query warns but builds", func(t *testing.T) {
		q, err := Build(testBase, Request{MiddleName: "karel"})
		require.NoError(t, err)
		assert.True(t, q.Empty())
		assert.ErrorIs(t, q.Warning(), ErrEmptySearch)
		assert.Equal(t, testBase, q.URL())
	})

	t.Run("idempotent on normalized input", func(t *testing.T) {
		req := Request{LastName: "Smith ", NIHDINumber: " 12345"}
		first, err := Build(testBase, req)
		require.NoError(t, err)
		second, err := Build(testBase, req.Normalize())
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, req.Normalize(), req.Normalize().Normalize())
	})
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]string
		field Field
	}{
		{
			name:  "non-numeric qualification",
			input: map[string]string{"lastname": "smith", "qualification": "abc"},
			field: FieldQualification,
		},
		{
			name:  "non-numeric registry number",
			input: map[string]string{"nihdinumber": "1-234"},
			field: FieldNIHDINumber,
		},
		{
			name:  "signed postal code",
			input: map[string]string{"where": "-1000"},
			field: FieldWhere,
		},
		{
			name:  "unknown key",
			input: map[string]string{"speciality": "gp"},
			field: Field("speciality"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSearch)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	t.Run("build rejects invalid request", func(t *testing.T) {
		_, err := Build(testBase, Request{LastName: "smith", Qualification: "abc"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, FieldQualification, vErr.Field)
		assert.Equal(t, "expects a number", vErr.Reason)
	})
}

func TestFromMapNormalizesKeys(t *testing.T) {
	req, err := FromMap(map[string]string{
		" Last_Name ":  "Smith",
		"NIHDI_NUMBER": "12345",
		"middle_name":  "John",
	})
	require.NoError(t, err)
	assert.Equal(t, Request{LastName: "smith", NIHDINumber: "12345", MiddleName: "john"}, req)
}

func TestRequestTerms(t *testing.T) {
	req := FromName(name.Decomposed{LastName: "dupont", FirstName: "marie"})
	terms := req.Terms()
	require.Len(t, terms, 6)
	assert.Equal(t, Term{Field: FieldLastName, Value: "dupont"}, terms[0])
	assert.Equal(t, Term{Field: FieldMiddleName, Value: ""}, terms[2])

	assert.True(t, req.Equal(Request{LastName: " Dupont", FirstName: "MARIE"}))
	assert.Empty(t, req.Get(Field("bogus")))
}
