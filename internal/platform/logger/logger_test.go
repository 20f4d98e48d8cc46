package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrecord/pkg/domain"
	"covrecord/pkg/requestcontext"
)

func TestNewAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", "json")
	require.NoError(t, err)

	id := domain.NewIterationID()
	ctx := requestcontext.WithOperator(requestcontext.WithIterationID(context.Background(), id), "nurse-1")
	log.With("component", "test").InfoContext(ctx, "patient recorded", "tube", "C19-0000001-1M")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "patient recorded", entry["msg"])
	assert.Equal(t, id.String(), entry["iteration_id"])
	assert.Equal(t, "nurse-1", entry["operator"])
	assert.Equal(t, "test", entry["component"])
}

func TestNewWithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "text")
	require.NoError(t, err)

	log.InfoContext(context.Background(), "hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "iteration_id")
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
