package campaign

import (
	"context"

	domcampaign "github.com/kailas-cloud/leadscope/internal/domain/campaign"
)

// Repository loads every campaign, one Result per campaign.
type Repository interface {
	List(ctx context.Context) ([]domcampaign.Result[domcampaign.Campaign], error)
}
