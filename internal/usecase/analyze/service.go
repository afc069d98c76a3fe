package analyze

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/intent"
	"github.com/kailas-cloud/leadscope/internal/logger"
)

// Service analyzes free text, asking the assistant only when the patterns found nothing.
type Service struct {
	assistant Assistant
}

// New creates an analyzer service. assistant can be nil.
func New(assistant Assistant) *Service {
	return &Service{assistant: assistant}
}

// Analyze returns the pattern analysis, or the assistant's reading of a general search.
// Assistant failures are logged and the pattern analysis stands.
func (s *Service) Analyze(ctx context.Context, text string) analysis.Analysis {
	a := Analyze(text)
	if s.assistant == nil || a.Intent != intent.General || len(a.SearchTerms) == 0 {
		return a
	}

	refined, err := s.assistant.Analyze(ctx, a.SearchTerms[0])
	if err != nil {
		logger.FromContext(ctx).Warn("assistant analysis failed", zap.Error(err))
		return a
	}
	if !refined.Intent.IsValid() || refined.Intent == intent.General || refined.Filters.IsEmpty() {
		return a
	}
	if refined.SearchTerms == nil {
		refined.SearchTerms = []string{}
	}
	return refined
}
