// Package registry searches the practitioner registry: it builds the query,
// fetches the result page, parses the candidates and caches them per query.
package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"covrecord/internal/registry/metrics"
	"covrecord/internal/registry/models"
	"covrecord/internal/registry/parser"
	"covrecord/internal/registry/providers"
	"covrecord/internal/registry/search"
	"covrecord/internal/registry/store"
)

// Cache stores parsed candidates keyed by query params.
type Cache interface {
	Save(ctx context.Context, key string, candidates []models.Candidate) error
	Find(ctx context.Context, key string) ([]models.Candidate, error)
}

// SearchResult is the outcome of one registry search.
type SearchResult struct {
	Query      search.Query
	Candidates []models.Candidate
	// Skipped lists the malformed blocks dropped by the parser.
	Skipped []error
	Cached  bool
}

type Service struct {
	provider providers.Provider
	parser   *parser.Parser
	cache    Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	baseURL  string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithBaseURL overrides search.DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.baseURL = base
		}
	}
}

func New(provider providers.Provider, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, errors.New("registry provider is required")
	}
	s := &Service{
		provider: provider,
		logger:   slog.Default(),
		tracer:   otel.Tracer("covrecord/registry"),
		baseURL:  search.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = parser.New(parser.WithLogger(s.logger))
	return s, nil
}

// Search looks up the practitioners matching req. Validation failures are
// returned as *search.ValidationError and nothing is fetched. A search
// without terms is logged as a warning but still performed.
func (s *Service) Search(ctx context.Context, req search.Request) (SearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Search")
	defer span.End()

	query, err := search.Build(s.baseURL, req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid search")
		return SearchResult{}, err
	}
	span.SetAttributes(attribute.String("registry.query", query.Params()))
	if warn := query.Warning(); warn != nil {
		s.logger.WarnContext(ctx, "registry search without terms", "error", warn)
	}

	if candidates, ok := s.fromCache(ctx, query); ok {
		s.metrics.RecordLookup(metrics.OutcomeCached)
		span.SetAttributes(attribute.Bool("registry.cached", true), attribute.Int("registry.candidates", len(candidates)))
		return SearchResult{Query: query, Candidates: candidates, Cached: true}, nil
	}

	start := time.Now()
	body, err := s.provider.Fetch(ctx, query.URL())
	s.metrics.ObserveLookup(start)
	if err != nil {
		s.metrics.RecordLookup(metrics.OutcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(providers.GetCategory(err)))
		return SearchResult{Query: query}, fmt.Errorf("registry search: %w", err)
	}

	parsed, err := s.parser.Parse(bytes.NewReader(body))
	if err != nil {
		s.metrics.RecordLookup(metrics.OutcomeFailed)
		span.RecordError(err)
		return SearchResult{Query: query}, providers.NewProviderError(providers.ErrorBadData, s.provider.ID(), "unreadable result page", err)
	}
	s.metrics.RecordLookup(metrics.OutcomeFetched)
	s.metrics.RecordParse(len(parsed.Candidates), len(parsed.Skipped))
	span.SetAttributes(attribute.Int("registry.candidates", len(parsed.Candidates)))

	s.logger.InfoContext(ctx, "registry search complete",
		"provider", s.provider.ID(),
		"candidates", len(parsed.Candidates),
		"skipped", len(parsed.Skipped),
		"duration", time.Since(start),
	)

	if s.cache != nil {
		if err := s.cache.Save(ctx, query.Params(), parsed.Candidates); err != nil {
			s.logger.WarnContext(ctx, "failed to cache registry search", "error", err)
		}
	}

	return SearchResult{
		Query:      query,
		Candidates: parsed.Candidates,
		Skipped:    parsed.Skipped,
	}, nil
}

func (s *Service) fromCache(ctx context.Context, query search.Query) ([]models.Candidate, bool) {
	if s.cache == nil {
		return nil, false
	}
	candidates, err := s.cache.Find(ctx, query.Params())
	if err == nil {
		s.metrics.RecordCacheHit()
		return candidates, true
	}
	s.metrics.RecordCacheMiss()
	if !errors.Is(err, store.ErrNotFound) {
		s.logger.WarnContext(ctx, "registry cache unavailable", "error", err)
	}
	return nil, false
}
