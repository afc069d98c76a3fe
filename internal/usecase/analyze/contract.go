package analyze

import (
	"context"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
)

// Assistant reads a free-text query with a language model.
type Assistant interface {
	Analyze(ctx context.Context, text string) (analysis.Analysis, error)
}
