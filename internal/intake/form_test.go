package intake

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrecord/pkg/domain"
	"covrecord/pkg/requestcontext"
)

type recordingSink struct {
	fields []string
	values map[string]string
}

func (s *recordingSink) SetField(_ context.Context, field, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.fields = append(s.fields, field)
	s.values[field] = value
	return nil
}

func (s *recordingSink) Click(context.Context, string) error { return nil }

func samplePatient() Patient {
	return Patient{
		Identity: Identity{
			NationalNumber: "90010112345",
			Name:           "Dupont",
			FirstName:      "Marie",
			DateOfBirth:    "19900101",
			Gender:         "female",
			Zip:            "1000",
		},
		Contact: Contact{NationalNumber: "90010112345", Phone: "0470123456", Email: "marie@example.org"},
		Doctor: domain.ResolvedDoctor{
			FirstName:      "jean",
			LastName:       "van der berg",
			RegistryNumber: "1-23456-78-001",
			Source:         domain.SourceRegistry,
		},
		Tube: "C19-0000001-1M",
	}
}

func TestFillWritesEveryFieldInOrder(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, Fill(context.Background(), sink, samplePatient()))

	assert.Equal(t, FormFields, sink.fields)
	assert.Equal(t, "Dr. Jean Van Der Berg", sink.values[FieldDoctor])
	assert.Equal(t, "1-23456-78-001", sink.values[FieldINAMI])
	assert.Equal(t, "1000", sink.values[FieldZip])
}

func TestFillWithoutDoctorLeavesFieldsEmpty(t *testing.T) {
	p := samplePatient()
	p.Doctor = domain.ResolvedDoctor{}

	sink := &recordingSink{}
	require.NoError(t, Fill(context.Background(), sink, p))
	assert.Empty(t, sink.values[FieldDoctor])
	assert.Empty(t, sink.values[FieldINAMI])
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	at := time.Date(2021, time.January, 4, 8, 30, 0, 0, time.UTC)
	iterationID := domain.NewIterationID()
	ctx := requestcontext.WithTime(requestcontext.WithIterationID(context.Background(), iterationID), at)

	require.NoError(t, Fill(ctx, sink, samplePatient()))
	require.NoError(t, sink.Click(ctx, ButtonPrint))
	require.NoError(t, sink.Click(ctx, ButtonSave))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first Submission
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, iterationID.String(), first.IterationID)
	assert.Equal(t, ButtonPrint, first.Button)
	assert.True(t, at.Equal(first.At))
	assert.Equal(t, "C19-0000001-1M", first.Fields[FieldTestTube])
	assert.Len(t, first.Fields, len(FormFields))

	var second Submission
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Empty(t, second.Fields, "fields are reset after a click")
}

func TestContactNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Contact
		want Contact
	}{
		{
			"distinct values kept",
			Contact{NationalNumber: "1", Phone: "2", Email: "3"},
			Contact{NationalNumber: "1", Phone: "2", Email: "3"},
		},
		{
			"phone echoing national number",
			Contact{NationalNumber: "1", Phone: "1", Email: "a@b.c"},
			Contact{NationalNumber: "1", Phone: "", Email: "a@b.c"},
		},
		{
			"email echoing phone",
			Contact{NationalNumber: "1", Phone: "2", Email: "2"},
			Contact{NationalNumber: "1", Phone: "2", Email: ""},
		},
		{
			"nothing selected",
			Contact{NationalNumber: "1", Phone: "1", Email: "1"},
			Contact{NationalNumber: "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalize())
		})
	}
}
