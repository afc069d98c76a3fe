package suggest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/logger"
	"github.com/kailas-cloud/leadscope/internal/metrics"
)

// Suggestion limits.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Service serves autocomplete values for low-cardinality contact fields.
type Service struct {
	repo     Repository
	maxLimit int
}

// New creates a suggestion service.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxLimit: MaxLimit}
}

// WithMaxLimit configures the largest number of suggestions per call.
func (s *Service) WithMaxLimit(n int) *Service {
	if n > 0 {
		s.maxLimit = n
	}
	return s
}

// Suggest returns up to limit distinct values of field containing partial.
// A field outside the allow-list is a validation error. Store failures are
// logged and yield an empty list.
func (s *Service) Suggest(ctx context.Context, field, partial string, limit int) ([]string, error) {
	if !contact.IsSuggestionColumn(field) {
		return nil, domain.NewValidationError(domain.ErrInvalidField, field,
			fmt.Sprintf("must be one of %s", strings.Join(contact.SuggestionColumns, ", ")))
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	values, err := s.repo.Distinct(ctx, field, strings.TrimSpace(partial), limit)
	if err != nil {
		logger.FromContext(ctx).Warn("suggestions failed closed",
			zap.String("field", field), zap.Error(err))
		metrics.SuggestionFailuresTotal.WithLabelValues(field).Inc()
		return []string{}, nil
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
