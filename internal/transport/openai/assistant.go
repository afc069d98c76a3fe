package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/intent"
	"github.com/kailas-cloud/leadscope/internal/metrics"
)

const defaultConfidence = 70

const systemPrompt = `You turn a sales prospecting query into search filters for a contact database.
Reply with a single JSON object and nothing else:
{"intent": one of company_search, title_search, location_search, industry_search,
employee_search, lead_score_search, technology_search, contact_info_search,
linkedin_search, name_search, general_search,
"filters": {"company", "title", "industry", "technology", "name": strings,
"location": {"city", "state", "country"}, "minEmployees", "maxEmployees": integers,
"minLeadScore": number 0-10, "hasEmail", "hasPhone", "hasLinkedin": booleans},
"confidence": integer 0-100}
Omit filters you cannot infer. Use two-letter codes for US states.`

// Assistant reads free-text queries with an OpenAI-compatible chat model.
type Assistant struct {
	client *openai.Client
	model  string
}

// Config holds the assistant settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewAssistant creates an OpenAI-compatible query assistant.
func NewAssistant(cfg *Config) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Assistant{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

type reply struct {
	Intent     intent.Intent    `json:"intent"`
	Filters    analysis.Filters `json:"filters"`
	Confidence int              `json:"confidence"`
}

// Analyze asks the model for a structured reading of text.
// Every failure wraps domain.ErrAssistantUnavailable.
func (a *Assistant) Analyze(ctx context.Context, text string) (analysis.Analysis, error) {
	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	metrics.AssistantRequestDuration.WithLabelValues(a.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return analysis.Analysis{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "empty").Inc()
		return analysis.Analysis{}, fmt.Errorf("empty completion: %w", domain.ErrAssistantUnavailable)
	}

	var r reply
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "invalid").Inc()
		return analysis.Analysis{}, fmt.Errorf("decode completion: %w: %w", err, domain.ErrAssistantUnavailable)
	}
	if !r.Intent.IsValid() {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "invalid").Inc()
		return analysis.Analysis{}, fmt.Errorf("unknown intent %q: %w", r.Intent, domain.ErrAssistantUnavailable)
	}
	metrics.AssistantRequestsTotal.WithLabelValues(a.model, "success").Inc()

	switch {
	case r.Confidence <= 0:
		r.Confidence = defaultConfidence
	case r.Confidence > 100:
		r.Confidence = 100
	}
	return analysis.Analysis{
		Filters:     r.Filters,
		Intent:      r.Intent,
		SearchTerms: []string{},
		Confidence:  r.Confidence,
	}, nil
}

func parseAPIError(err error) error {
	wrap := domain.ErrAssistantUnavailable

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("assistant API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("assistant API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}
	return fmt.Errorf("assistant request failed: %w: %w", err, wrap)
}
