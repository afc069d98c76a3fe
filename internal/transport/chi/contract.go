package chi

import (
	"context"
	"io"

	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
	campaignuc "github.com/kailas-cloud/leadscope/internal/usecase/campaign"
	healthuc "github.com/kailas-cloud/leadscope/internal/usecase/health"
	searchuc "github.com/kailas-cloud/leadscope/internal/usecase/search"
)

// Searcher runs contact searches.
type Searcher interface {
	Natural(ctx context.Context, text string, limit int) (searchuc.Natural, error)
	Execute(ctx context.Context, q request.Query) (result.Result, error)
	Aggregations(ctx context.Context) (result.Aggregations, error)
	Statistics(ctx context.Context) (result.Statistics, error)
}

// Exporter writes query results as CSV.
type Exporter interface {
	Export(ctx context.Context, q request.Query, w io.Writer) (int, error)
}

// Suggester completes field values.
type Suggester interface {
	Suggest(ctx context.Context, field, partial string, limit int) ([]string, error)
}

// CampaignSearcher searches decrypted campaign rows.
type CampaignSearcher interface {
	Search(ctx context.Context, text string, limit int) (campaignuc.Result, error)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Services are the use cases behind the HTTP API. Campaigns is nil when the
// campaign store is disabled.
type Services struct {
	Search    Searcher
	Export    Exporter
	Suggest   Suggester
	Campaigns CampaignSearcher
	Health    HealthChecker
}
