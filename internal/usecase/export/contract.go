package export

import (
	"context"

	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
)

// Repository runs the export query.
type Repository interface {
	Search(ctx context.Context, q request.Query, aggregate bool) (result.Page, error)
}
