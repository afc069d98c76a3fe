package search

import (
	"context"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
)

// Repository defines the contact store contract for searches.
type Repository interface {
	Search(ctx context.Context, q request.Query, aggregate bool) (result.Page, error)
	Aggregate(ctx context.Context) (result.Aggregations, error)
	Statistics(ctx context.Context) (result.Statistics, error)
}

// Analyzer reads structured filters out of free text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) analysis.Analysis
}
