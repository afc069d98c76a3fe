package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/intent"
)

type mockAssistant struct {
	result analysis.Analysis
	err    error
	calls  int
	text   string
}

func (m *mockAssistant) Analyze(_ context.Context, text string) (analysis.Analysis, error) {
	m.calls++
	m.text = text
	return m.result, m.err
}

func TestService_NoAssistant(t *testing.T) {
	a := New(nil).Analyze(context.Background(), "quantum bicycles")
	if a.Intent != intent.General {
		t.Errorf("intent = %q", a.Intent)
	}
}

func TestService_PatternsWinOverAssistant(t *testing.T) {
	m := &mockAssistant{}
	a := New(m).Analyze(context.Background(), "people at globex")

	if m.calls != 0 {
		t.Errorf("assistant called %d times for a structured query", m.calls)
	}
	if a.Intent != intent.Company {
		t.Errorf("intent = %q", a.Intent)
	}
}

func TestService_AssistantRefinesGeneral(t *testing.T) {
	industry := "biotech"
	m := &mockAssistant{result: analysis.Analysis{
		Filters:    analysis.Filters{Industry: &industry},
		Intent:     intent.Industry,
		Confidence: 70,
	}}
	a := New(m).Analyze(context.Background(), "  gene editing startups ")

	if m.text != "gene editing startups" {
		t.Errorf("assistant got %q", m.text)
	}
	if a.Intent != intent.Industry || a.Filters.Industry == nil || *a.Filters.Industry != "biotech" {
		t.Errorf("unexpected analysis: %+v", a)
	}
	if a.SearchTerms == nil {
		t.Error("searchTerms should be an empty slice, not nil")
	}
}

func TestService_AssistantFallbacks(t *testing.T) {
	industry := "biotech"
	tests := []struct {
		name string
		m    *mockAssistant
	}{
		{"error", &mockAssistant{err: errors.New("upstream 500")}},
		{"general intent", &mockAssistant{result: analysis.Analysis{
			Filters: analysis.Filters{Industry: &industry}, Intent: intent.General,
		}}},
		{"unknown intent", &mockAssistant{result: analysis.Analysis{
			Filters: analysis.Filters{Industry: &industry}, Intent: "vibes_search",
		}}},
		{"empty filters", &mockAssistant{result: analysis.Analysis{Intent: intent.Industry}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := New(tc.m).Analyze(context.Background(), "quantum bicycles")
			if tc.m.calls != 1 {
				t.Fatalf("assistant calls = %d", tc.m.calls)
			}
			if a.Intent != intent.General || len(a.SearchTerms) != 1 || a.SearchTerms[0] != "quantum bicycles" {
				t.Errorf("expected pattern fallback, got %+v", a)
			}
		})
	}
}

func TestService_EmptyTextSkipsAssistant(t *testing.T) {
	m := &mockAssistant{}
	New(m).Analyze(context.Background(), "")
	if m.calls != 0 {
		t.Errorf("assistant called for empty text")
	}
}
