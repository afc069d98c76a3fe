package analyze

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/intent"
)

func TestAnalyze_TopQualityLeads(t *testing.T) {
	a := Analyze("top quality leads in software")

	if a.Filters.MinLeadScore == nil || *a.Filters.MinLeadScore != 7.0 {
		t.Fatalf("minLeadScore = %v, want 7.0", a.Filters.MinLeadScore)
	}
	if a.Intent != intent.LeadScore {
		t.Errorf("intent = %q, want %q", a.Intent, intent.LeadScore)
	}
	if a.Filters.Location != nil {
		t.Errorf("industry keyword read as location: %+v", a.Filters.Location)
	}
	if a.Filters.Industry == nil || *a.Filters.Industry != "software" {
		t.Errorf("industry = %v", a.Filters.Industry)
	}
}

func TestAnalyze_HighQualityLeads(t *testing.T) {
	a := Analyze("High quality leads")
	if a.Filters.MinLeadScore == nil || *a.Filters.MinLeadScore != 7.0 {
		t.Fatalf("minLeadScore = %v", a.Filters.MinLeadScore)
	}
}

func TestAnalyze_NoStructure(t *testing.T) {
	a := Analyze("  quantum bicycles ")

	if a.Intent != intent.General {
		t.Errorf("intent = %q", a.Intent)
	}
	if len(a.SearchTerms) != 1 || a.SearchTerms[0] != "quantum bicycles" {
		t.Errorf("searchTerms = %v", a.SearchTerms)
	}
	if a.Confidence != analysis.GeneralConfidence {
		t.Errorf("confidence = %d", a.Confidence)
	}
	if !a.Filters.IsEmpty() {
		t.Errorf("filters = %+v", a.Filters)
	}

	b, err := json.Marshal(a.Filters)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Errorf("filters JSON = %s, want {}", b)
	}
}

func TestAnalyze_CompanyAndEmployees(t *testing.T) {
	a := Analyze("find contacts at Acme with over 100 employees")

	acme := regexp.MustCompile(`(?i)acme`)
	switch {
	case a.Filters.Company != nil && acme.MatchString(*a.Filters.Company):
	case a.Filters.Location != nil && acme.MatchString(a.Filters.Location.City):
	default:
		t.Fatalf("no company-ish filter matching acme: %+v", a.Filters)
	}
	if a.Filters.MinEmployees == nil || *a.Filters.MinEmployees != 100 {
		t.Fatalf("minEmployees = %v, want 100", a.Filters.MinEmployees)
	}
	if a.Filters.MaxEmployees != nil {
		t.Errorf("maxEmployees = %v, want nil", *a.Filters.MaxEmployees)
	}
	if a.Intent != intent.Employee {
		t.Errorf("intent = %q, want last match %q", a.Intent, intent.Employee)
	}
}

func TestAnalyze_Employees(t *testing.T) {
	tests := []struct {
		text     string
		min, max int64
	}{
		{"50-200 employees", 50, 200},
		{"companies with 1,000 to 5,000 employees", 1000, 5000},
		{"between 10 and 50 employees", 10, 50},
		{"more than 250 employees", 250, -1},
		{"above 10 employees", 10, -1},
		{"under 50 employees", -1, 50},
		{"less than 20 employees", -1, 20},
		{"below 5 employees", -1, 5},
		{"500+ employees", 500, -1},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			a := Analyze(tc.text)
			checkBound(t, "min", a.Filters.MinEmployees, tc.min)
			checkBound(t, "max", a.Filters.MaxEmployees, tc.max)
			if a.Intent != intent.Employee {
				t.Errorf("intent = %q", a.Intent)
			}
		})
	}
}

func checkBound(t *testing.T, name string, got *int64, want int64) {
	t.Helper()
	if want < 0 {
		if got != nil {
			t.Errorf("%s = %d, want unset", name, *got)
		}
		return
	}
	if got == nil || *got != want {
		t.Errorf("%s = %v, want %d", name, got, want)
	}
}

func TestAnalyze_Location(t *testing.T) {
	tests := []struct {
		text string
		want analysis.Location
	}{
		{"contacts in austin, tx", analysis.Location{City: "austin", State: "TX"}},
		{"people in ny", analysis.Location{State: "NY"}},
		{"leads in denver", analysis.Location{City: "denver"}},
		{"contacts in united arab emirates", analysis.Location{Country: "united arab emirates"}},
		{"leads in software in boston", analysis.Location{City: "boston"}},
		{"contacts in the united kingdom of great britain", analysis.Location{Country: "united kingdom of great britain"}},
		{"founders from the republic of the democratic congo river basin area", analysis.Location{Country: "republic of the democratic congo river basin"}},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			a := Analyze(tc.text)
			if a.Filters.Location == nil {
				t.Fatalf("no location: %+v", a.Filters)
			}
			if *a.Filters.Location != tc.want {
				t.Errorf("location = %+v, want %+v", *a.Filters.Location, tc.want)
			}
		})
	}
}

func TestAnalyze_CEOsAtFintechCompanies(t *testing.T) {
	a := Analyze("CEOs at fintech companies in California with 100+ employees")

	if a.Filters.Title == nil || *a.Filters.Title != "ceo" {
		t.Errorf("title = %v", a.Filters.Title)
	}
	if a.Filters.Company != nil {
		t.Errorf("company = %q, want industry instead", *a.Filters.Company)
	}
	if a.Filters.Industry == nil || *a.Filters.Industry != "fintech" {
		t.Errorf("industry = %v", a.Filters.Industry)
	}
	if a.Filters.Location == nil || a.Filters.Location.City != "california" {
		t.Errorf("location = %+v", a.Filters.Location)
	}
	if a.Filters.MinEmployees == nil || *a.Filters.MinEmployees != 100 {
		t.Errorf("minEmployees = %v", a.Filters.MinEmployees)
	}
	if a.Intent != intent.Employee {
		t.Errorf("intent = %q", a.Intent)
	}
}

func TestAnalyze_Categories(t *testing.T) {
	tests := []struct {
		text       string
		intent     intent.Intent
		confidence int
		check      func(analysis.Filters) bool
	}{
		{"directors of sales", intent.Title, titleConfidence,
			func(f analysis.Filters) bool { return f.Title != nil && *f.Title == "director of sales" }},
		{"people at globex", intent.Company, companyConfidence,
			func(f analysis.Filters) bool { return f.Company != nil && *f.Company == "globex" }},
		{"healthcare", intent.Industry, industryConfidence,
			func(f analysis.Filters) bool { return f.Industry != nil && *f.Industry == "healthcare" }},
		{"lead score above 8.5", intent.LeadScore, leadScoreConfidence,
			func(f analysis.Filters) bool { return f.MinLeadScore != nil && *f.MinLeadScore == 8.5 }},
		{"companies using salesforce", intent.Technology, technologyConfidence,
			func(f analysis.Filters) bool { return f.Technology != nil && *f.Technology == "salesforce" }},
		{"leads with verified emails", intent.ContactInfo, contactInfoConfidence,
			func(f analysis.Filters) bool { return f.HasEmail != nil && f.HasPhone == nil }},
		{"contacts with phone numbers", intent.ContactInfo, contactInfoConfidence,
			func(f analysis.Filters) bool { return f.HasPhone != nil && f.HasEmail == nil }},
		{"leads on linkedin", intent.Linkedin, linkedinConfidence,
			func(f analysis.Filters) bool { return f.HasLinkedin != nil && *f.HasLinkedin }},
		{"someone named jane doe", intent.Name, nameConfidence,
			func(f analysis.Filters) bool { return f.Name != nil && *f.Name == "Jane Doe" }},
		{"person named bob at initech", intent.Name, nameConfidence,
			func(f analysis.Filters) bool {
				return f.Name != nil && *f.Name == "Bob" && f.Company != nil && *f.Company == "initech"
			}},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			a := Analyze(tc.text)
			if a.Intent != tc.intent {
				t.Errorf("intent = %q, want %q", a.Intent, tc.intent)
			}
			if a.Confidence != tc.confidence {
				t.Errorf("confidence = %d, want %d", a.Confidence, tc.confidence)
			}
			if !tc.check(a.Filters) {
				t.Errorf("unexpected filters: %+v", a.Filters)
			}
			if len(a.SearchTerms) != 0 {
				t.Errorf("searchTerms = %v, want empty", a.SearchTerms)
			}
		})
	}
}

func TestAnalyze_LastMatchWins(t *testing.T) {
	// location runs before industry, so industry labels the query
	a := Analyze("marketing agencies in chicago")
	if a.Intent != intent.Industry {
		t.Errorf("intent = %q, want %q", a.Intent, intent.Industry)
	}
	if a.Filters.Location == nil || a.Filters.Location.City != "chicago" {
		t.Errorf("earlier location filter lost: %+v", a.Filters.Location)
	}
}

func TestAnalyze_AtLeastIsNotACompany(t *testing.T) {
	a := Analyze("firms with at least 200 employees")
	if a.Filters.Company != nil {
		t.Errorf("company = %q", *a.Filters.Company)
	}
	if a.Filters.MinEmployees == nil || *a.Filters.MinEmployees != 200 {
		t.Errorf("minEmployees = %v", a.Filters.MinEmployees)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze("   ")
	if a.Intent != intent.General {
		t.Errorf("intent = %q", a.Intent)
	}
	if len(a.SearchTerms) != 0 {
		t.Errorf("searchTerms = %v", a.SearchTerms)
	}
}
