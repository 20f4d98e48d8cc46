// Package inami fetches search result pages from the INAMI/RIZIV practitioner
// directory.
package inami

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"covrecord/internal/registry/providers"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 1

	maxBodyBytes = 8 << 20
	userAgent    = "covrecord/1.0"
)

// Provider performs blocking GETs against the registry search form with an
// explicit timeout and a bounded retry on transient failures.
type Provider struct {
	id      string
	client  *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
	logger  *slog.Logger
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithHTTPClient sets the client requests go through. It is never modified;
// a timeout set with WithTimeout applies to a copy.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.client = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithRetries sets how many extra attempts follow a retryable failure.
func WithRetries(retries int) Option {
	return func(p *Provider) {
		if retries >= 0 {
			p.retries = retries
		}
	}
}

func WithBackoff(backoff time.Duration) Option {
	return func(p *Provider) {
		p.backoff = backoff
	}
}

func New(id string, opts ...Option) *Provider {
	p := &Provider{
		id:      id,
		client:  &http.Client{},
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		backoff: 500 * time.Millisecond,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	client := *p.client
	client.Timeout = p.timeout
	p.client = &client
	return p
}

func (p *Provider) ID() string {
	return p.id
}

// Fetch returns the page body for url. Non-200 answers and transport failures
// come back as *providers.ProviderError; only retryable ones are retried.
func (p *Provider) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		b, err := p.fetchOnce(ctx, url)
		if err != nil {
			if !providers.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}
	notify := func(err error, wait time.Duration) {
		p.logger.WarnContext(ctx, "retrying registry search",
			"provider", p.id,
			"wait", wait,
			"error", err,
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), uint64(p.retries)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		var pe *providers.ProviderError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, p.classify(err)
	}
	return body, nil
}

func (p *Provider) newBackOff() backoff.BackOff {
	if p.backoff <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.backoff
	b.MaxElapsedTime = 0
	return b
}

func (p *Provider) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, p.id, "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, p.statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, p.classify(err)
	}
	return body, nil
}

func (p *Provider) statusError(status int) error {
	var category providers.ErrorCategory
	switch {
	case status == http.StatusTooManyRequests:
		category = providers.ErrorRateLimited
	case status >= http.StatusInternalServerError:
		category = providers.ErrorProviderOutage
	default:
		category = providers.ErrorContractMismatch
	}
	pe := providers.NewProviderError(category, p.id, fmt.Sprintf("unexpected status %d", status), nil)
	pe.StatusCode = status
	return pe
}

func (p *Provider) classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return providers.NewProviderError(providers.ErrorInternal, p.id, "search cancelled", err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return providers.NewProviderError(providers.ErrorTimeout, p.id, "registry did not answer in time", err)
	default:
		return providers.NewProviderError(providers.ErrorProviderOutage, p.id, "registry unreachable", err)
	}
}
