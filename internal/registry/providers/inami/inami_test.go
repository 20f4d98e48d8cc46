package inami

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covrecord/internal/registry/providers"
)

func newTestProvider(opts ...Option) *Provider {
	opts = append([]Option{WithBackoff(0)}, opts...)
	return New("inami-test", opts...)
}

func TestFetchReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "smith", r.URL.Query().Get("lastname"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	body, err := newTestProvider().Fetch(context.Background(), server.URL+"?lastname=smith")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestFetchStatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		category  providers.ErrorCategory
		retryable bool
		calls     int32
	}{
		{"rate limited", http.StatusTooManyRequests, providers.ErrorRateLimited, true, 2},
		{"outage", http.StatusBadGateway, providers.ErrorProviderOutage, true, 2},
		{"contract mismatch", http.StatusNotFound, providers.ErrorContractMismatch, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestProvider().Fetch(context.Background(), server.URL)
			require.Error(t, err)

			var pe *providers.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.category, pe.Category)
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, tt.retryable, pe.Retryable)
			assert.Equal(t, "inami-test", pe.ProviderID)
			assert.Equal(t, tt.calls, calls.Load())
		})
	}
}

func TestFetchRetriesOnceThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	body, err := newTestProvider().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchWithoutRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestProvider(WithRetries(0)).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestProvider(WithTimeout(50*time.Millisecond), WithRetries(0)).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, providers.ErrorTimeout, providers.GetCategory(err))
	assert.True(t, providers.IsRetryable(err))
}

func TestFetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestProvider(WithRetries(0)).Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, providers.ErrorProviderOutage, providers.GetCategory(err))
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider().Fetch(ctx, "http://127.0.0.1:1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, providers.IsRetryable(err))
}

func TestWithHTTPClientIsNotModified(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	p := New("inami-test", WithHTTPClient(shared), WithTimeout(50*time.Millisecond))
	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 50*time.Millisecond, p.client.Timeout)
	assert.NotSame(t, shared, p.client)

	p = New("inami-test", WithTimeout(time.Second), WithHTTPClient(nil))
	require.NotNil(t, p.client)
	assert.Equal(t, time.Second, p.client.Timeout)
	assert.Equal(t, DefaultTimeout, New("inami-test").client.Timeout)
}
