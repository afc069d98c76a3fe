package leadscope

import (
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
	campaignuc "github.com/kailas-cloud/leadscope/internal/usecase/campaign"
)

// Public names for the values the client returns.
type (
	Contact        = contact.Contact
	Analysis       = analysis.Analysis
	Filters        = analysis.Filters
	Result         = result.Result
	Aggregations   = result.Aggregations
	Statistics     = result.Statistics
	Bucket         = result.Bucket
	CampaignResult = campaignuc.Result
	CampaignMatch  = campaignuc.Match
)

// Operator is a comparison applied to one column.
type Operator = filter.Operator

// Filter operators.
const (
	Equals         = filter.Equals
	NotEquals      = filter.NotEquals
	Contains       = filter.Contains
	NotContains    = filter.NotContains
	StartsWith     = filter.StartsWith
	EndsWith       = filter.EndsWith
	GreaterThan    = filter.GreaterThan
	LessThan       = filter.LessThan
	GreaterOrEqual = filter.GreaterOrEqual
	LessOrEqual    = filter.LessOrEqual
	IsNull         = filter.IsNull
	IsNotNull      = filter.IsNotNull
	In             = filter.In
	NotIn          = filter.NotIn
	Between        = filter.Between
)

// NaturalResult is the answer to a free-text search.
type NaturalResult struct {
	Contacts []Contact `json:"contacts"`
	Total    int64     `json:"total"`
	Analysis Analysis  `json:"analysis"`
}
