package leadscope

import (
	"errors"

	"github.com/kailas-cloud/leadscope/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidColumn        = domain.ErrInvalidColumn
	ErrInvalidOperator      = domain.ErrInvalidOperator
	ErrInvalidFilter        = domain.ErrInvalidFilter
	ErrInvalidField         = domain.ErrInvalidField
	ErrInvalidQuery         = domain.ErrInvalidQuery
	ErrQueryTimeout         = domain.ErrQueryTimeout
	ErrStorage              = domain.ErrStorage
	ErrAssistantUnavailable = domain.ErrAssistantUnavailable
)

// ErrCampaignsDisabled is returned by SearchCampaigns when the client was
// built without WithCampaigns.
var ErrCampaignsDisabled = errors.New("leadscope: campaign store not configured")
