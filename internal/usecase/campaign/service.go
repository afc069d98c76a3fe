package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	domcampaign "github.com/kailas-cloud/leadscope/internal/domain/campaign"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/logger"
	"github.com/kailas-cloud/leadscope/internal/metrics"
)

// Summary describes one campaign with matching rows.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	Headers    []string  `json:"headers"`
	MatchCount int       `json:"matchCount"`
}

// Match is one campaign row keyed by its headers.
type Match struct {
	CampaignID   string            `json:"campaignId"`
	CampaignName string            `json:"campaignName"`
	Row          map[string]string `json:"row"`
}

// Result is the cross-campaign search response.
type Result struct {
	Campaigns []Summary
	Data      []Match
	Total     int
}

// Service searches decrypted campaign rows.
type Service struct {
	repo         Repository
	defaultLimit int
	maxLimit     int
}

// New creates a campaign search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultLimit: request.DefaultPageSize, maxLimit: request.MaxPageSize}
}

// WithLimits configures the number of rows returned per search.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search returns rows where every term of text occurs in some cell.
// Campaigns that fail to decrypt and rows wider than their header are
// logged and left out; they never fail the whole search.
func (s *Service) Search(ctx context.Context, text string, limit int) (Result, error) {
	results, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list campaigns: %w", err)
	}

	log := logger.FromContext(logger.With(ctx, zap.Int("campaigns", len(results))))
	campaigns := domcampaign.Fold(results, func(err error) {
		metrics.CampaignDecryptFailuresTotal.Inc()
		log.Warn("campaign skipped", zap.Error(err))
	})

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	terms := strings.Fields(cases.Lower(language.Und).String(text))
	out := Result{Campaigns: []Summary{}, Data: []Match{}}
	for _, c := range campaigns {
		sum := Summary{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, Headers: c.Payload.Headers}
		for i, row := range c.Payload.Rows {
			if len(row) > len(c.Payload.Headers) {
				metrics.CampaignRowsSkippedTotal.Inc()
				log.Warn("campaign row wider than header",
					zap.String("campaign_id", c.ID), zap.Int("row", i),
					zap.Int("cells", len(row)), zap.Int("headers", len(c.Payload.Headers)))
				continue
			}
			if !matches(row, terms) {
				continue
			}
			sum.MatchCount++
			out.Total++
			if len(out.Data) < limit {
				out.Data = append(out.Data, Match{
					CampaignID:   c.ID,
					CampaignName: c.Name,
					Row:          keyed(c.Payload.Headers, row),
				})
			}
		}
		if sum.MatchCount > 0 {
			out.Campaigns = append(out.Campaigns, sum)
		}
	}
	metrics.SearchesTotal.WithLabelValues("campaigns", "none").Inc()
	return out, nil
}

func matches(row, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := cases.Lower(language.Und)
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = lower.String(c)
	}
	for _, t := range terms {
		found := false
		for _, c := range cells {
			if strings.Contains(c, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// keyed maps headers to cells; short rows leave trailing headers empty.
func keyed(headers, row []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return m
}
