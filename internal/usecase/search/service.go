package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
	"github.com/kailas-cloud/leadscope/internal/metrics"
)

// Search kinds for metrics labels.
const (
	KindNatural  = "natural"
	KindAdvanced = "advanced"
)

// Service runs natural-language and structured contact searches.
type Service struct {
	repo         Repository
	analyzer     Analyzer
	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(repo Repository, analyzer Analyzer) *Service {
	return &Service{
		repo:         repo,
		analyzer:     analyzer,
		defaultLimit: request.DefaultPageSize,
		maxLimit:     request.MaxPageSize,
	}
}

// WithLimits configures the natural-language result size.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Natural is the response of a natural-language search.
type Natural struct {
	Contacts []contact.Contact
	Total    int64
	Analysis analysis.Analysis
}

// Execute runs a structured query. Browse queries (no filters, groups or
// global search) also carry aggregations.
func (s *Service) Execute(ctx context.Context, q request.Query) (result.Result, error) {
	page, err := s.run(ctx, KindAdvanced, q, q.IsBrowse())
	if err != nil {
		return result.Result{}, err
	}
	metrics.SearchesTotal.WithLabelValues(KindAdvanced, "none").Inc()

	r := result.New(page.Contacts, page.Total, q.Page(), q.PageSize())
	r.Aggregations = page.Aggregations
	return r, nil
}

// Natural analyzes free text, turns the analysis into a query ranked by
// exact name or company matches, and runs it.
func (s *Service) Natural(ctx context.Context, text string, limit int) (Natural, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Natural{}, domain.NewValidationError(domain.ErrInvalidQuery, "query", "is required")
	}
	if len(text) > request.MaxQueryLength {
		return Natural{}, domain.NewValidationError(domain.ErrInvalidQuery, "query",
			fmt.Sprintf("too long (max %d chars)", request.MaxQueryLength))
	}

	a := s.analyzer.Analyze(ctx, text)
	q, err := QueryFromAnalysis(a)
	if err != nil {
		return Natural{}, err
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	q = q.WithPaging(1, limit, s.maxLimit).WithBoost(boostFor(a, text))

	page, err := s.run(ctx, KindNatural, q, false)
	if err != nil {
		return Natural{}, err
	}
	metrics.SearchesTotal.WithLabelValues(KindNatural, string(a.Intent)).Inc()

	return Natural{Contacts: nonNil(page.Contacts), Total: page.Total, Analysis: a}, nil
}

// Aggregations returns the browse distributions over every live contact.
func (s *Service) Aggregations(ctx context.Context) (result.Aggregations, error) {
	agg, err := s.repo.Aggregate(ctx)
	if err != nil {
		observeError("aggregations", err)
		return result.Aggregations{}, fmt.Errorf("aggregate: %w", err)
	}
	return agg, nil
}

// Statistics returns the fixed dashboard counters.
func (s *Service) Statistics(ctx context.Context) (result.Statistics, error) {
	st, err := s.repo.Statistics(ctx)
	if err != nil {
		observeError("statistics", err)
		return result.Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	return st, nil
}

func (s *Service) run(ctx context.Context, kind string, q request.Query, aggregate bool) (result.Page, error) {
	start := time.Now()
	page, err := s.repo.Search(ctx, q, aggregate)
	if err != nil {
		if !domain.IsValidation(err) {
			observeError(kind, err)
		}
		return result.Page{}, fmt.Errorf("search contacts: %w", err)
	}
	metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	return page, nil
}

func observeError(kind string, err error) {
	errType := "storage"
	if errors.Is(err, domain.ErrQueryTimeout) {
		errType = "timeout"
	}
	metrics.QueryErrorsTotal.WithLabelValues(kind, errType).Inc()
}

// boostFor ranks exact matches of the extracted name and company first,
// falling back to the raw text when a slot was not extracted.
func boostFor(a analysis.Analysis, text string) request.Boost {
	b := request.Boost{Name: text, Company: text}
	if a.Filters.Name != nil {
		b.Name = *a.Filters.Name
	}
	if a.Filters.Company != nil {
		b.Company = *a.Filters.Company
	}
	return b
}

func nonNil(c []contact.Contact) []contact.Contact {
	if c == nil {
		return []contact.Contact{}
	}
	return c
}
