package analysis

import "github.com/kailas-cloud/leadscope/internal/domain/search/intent"

// GeneralConfidence is the confidence of a query nothing was extracted from.
const GeneralConfidence = 60

// Location is a coarse place extracted from free text.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Filters are the structured slots extracted from free text. Unset slots are nil.
type Filters struct {
	Company      *string   `json:"company,omitempty"`
	Title        *string   `json:"title,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Industry     *string   `json:"industry,omitempty"`
	MinEmployees *int64    `json:"minEmployees,omitempty"`
	MaxEmployees *int64    `json:"maxEmployees,omitempty"`
	MinLeadScore *float64  `json:"minLeadScore,omitempty"`
	Technology   *string   `json:"technology,omitempty"`
	HasEmail     *bool     `json:"hasEmail,omitempty"`
	HasPhone     *bool     `json:"hasPhone,omitempty"`
	HasLinkedin  *bool     `json:"hasLinkedin,omitempty"`
	Name         *string   `json:"name,omitempty"`
}

// IsEmpty reports whether no slot is set.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Analysis is the structured reading of one free-text query. Never persisted.
type Analysis struct {
	Filters     Filters       `json:"filters"`
	Intent      intent.Intent `json:"intent"`
	SearchTerms []string      `json:"searchTerms"`
	Confidence  int           `json:"confidence"`
}

// General returns the fallback analysis for text with no recognizable structure.
func General(text string) Analysis {
	terms := []string{}
	if text != "" {
		terms = append(terms, text)
	}
	return Analysis{
		Intent:      intent.General,
		SearchTerms: terms,
		Confidence:  GeneralConfidence,
	}
}
