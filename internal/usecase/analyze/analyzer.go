package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/intent"
)

// Analyze reads structured filters out of free text.
// Pattern groups run in a fixed order and the last matching group sets intent
// and confidence. Text with no recognizable structure becomes a general search.
func Analyze(text string) analysis.Analysis {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return analysis.General("")
	}
	lower := cases.Lower(language.Und).String(trimmed)

	st := &state{}
	st.company(lower)
	st.title(lower)
	st.location(lower)
	st.industry(lower)
	st.employees(lower)
	st.leadScore(lower)
	st.technology(lower)
	st.contactInfo(lower)
	st.name(lower)

	if !st.matched {
		return analysis.General(trimmed)
	}
	return analysis.Analysis{
		Filters:     st.filters,
		Intent:      st.intent,
		SearchTerms: []string{},
		Confidence:  st.confidence,
	}
}

type state struct {
	filters    analysis.Filters
	intent     intent.Intent
	confidence int
	matched    bool
}

func (s *state) hit(i intent.Intent, confidence int) {
	s.intent = i
	s.confidence = confidence
	s.matched = true
}

func (s *state) company(text string) {
	var words []string
	for _, m := range companyRe.FindAllStringSubmatch(text, -1) {
		w := strings.Fields(m[1])
		if w[0] != "least" && w[0] != "most" {
			words = w
			break
		}
	}
	if words == nil {
		return
	}
	last := words[len(words)-1]
	if _, ok := companySuffixes[last]; ok {
		if len(words) == 1 {
			return
		}
		s.filters.Industry = ptr(strings.Join(words[:len(words)-1], " "))
		s.hit(intent.Industry, industryConfidence)
		return
	}
	s.filters.Company = ptr(strings.Join(words, " "))
	s.hit(intent.Company, companyConfidence)
}

func (s *state) title(text string) {
	m := titleRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	s.filters.Title = ptr(m[1] + m[2])
	s.hit(intent.Title, titleConfidence)
}

func (s *state) location(text string) {
	place, region, ok := findLocation(text)
	if !ok {
		return
	}
	loc := &analysis.Location{}
	switch {
	case region != "":
		loc.City = place
		loc.State = strings.ToUpper(region)
	case len(place) == 2:
		loc.State = strings.ToUpper(place)
	case len(place) > 15:
		loc.Country = place
	default:
		loc.City = place
	}
	s.filters.Location = loc
	s.hit(intent.Location, locationConfidence)
}

// findLocation returns the first place phrase that is not an industry keyword,
// falling back to a long phrase at the end of the text.
// The stop group consumes the next preposition, so the scan resumes right
// after the captured place instead of after the whole match.
func findLocation(text string) (place, region string, ok bool) {
	for pos := 0; pos < len(text); {
		idx := locationRe.FindStringSubmatchIndex(text[pos:])
		if idx == nil {
			break
		}
		place = strings.TrimPrefix(text[pos+idx[2]:pos+idx[3]], "the ")
		if idx[4] >= 0 {
			region = text[pos+idx[4] : pos+idx[5]]
		}
		if !isIndustry(place) {
			return place, region, true
		}
		region = ""
		pos += idx[3]
	}
	if m := locationTailRe.FindStringSubmatch(text); m != nil {
		if place = strings.TrimPrefix(m[1], "the "); !isIndustry(place) {
			return place, "", true
		}
	}
	return "", "", false
}

func isIndustry(s string) bool {
	loc := industryRe.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

func (s *state) industry(text string) {
	m := industryRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	s.filters.Industry = ptr(m[1])
	s.hit(intent.Industry, industryConfidence)
}

func (s *state) employees(text string) {
	var lo, hi *int64
	switch {
	case match2(employeeRangeRe, text, &lo, &hi):
	case match2(employeeBetweenRe, text, &lo, &hi):
	default:
		if m := employeeMinRe.FindStringSubmatch(text); m != nil {
			lo = parseCount(m[1])
		} else if m := employeePlusRe.FindStringSubmatch(text); m != nil {
			lo = parseCount(m[1])
		}
		if m := employeeMaxRe.FindStringSubmatch(text); m != nil {
			hi = parseCount(m[1])
		}
	}
	if lo == nil && hi == nil {
		return
	}
	s.filters.MinEmployees = lo
	s.filters.MaxEmployees = hi
	s.hit(intent.Employee, employeeConfidence)
}

func match2(re *regexp.Regexp, text string, lo, hi **int64) bool {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	*lo, *hi = parseCount(m[1]), parseCount(m[2])
	return *lo != nil || *hi != nil
}

func parseCount(s string) *int64 {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (s *state) leadScore(text string) {
	if qualityLeadsRe.MatchString(text) {
		s.filters.MinLeadScore = ptr(qualityLeadScore)
		s.hit(intent.LeadScore, leadScoreConfidence)
		return
	}
	m := leadScoreRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	s.filters.MinLeadScore = &score
	s.hit(intent.LeadScore, leadScoreConfidence)
}

func (s *state) technology(text string) {
	m := technologyRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	s.filters.Technology = ptr(m[1])
	s.hit(intent.Technology, technologyConfidence)
}

func (s *state) contactInfo(text string) {
	if contactTriggerRe.MatchString(text) {
		if emailRe.MatchString(text) {
			s.filters.HasEmail = ptr(true)
		}
		if phoneRe.MatchString(text) {
			s.filters.HasPhone = ptr(true)
		}
		s.hit(intent.ContactInfo, contactInfoConfidence)
	}
	if linkedinRe.MatchString(text) {
		s.filters.HasLinkedin = ptr(true)
		s.hit(intent.Linkedin, linkedinConfidence)
	}
}

func (s *state) name(text string) {
	m := nameRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	full := m[1]
	if _, skip := nameStopwords[m[1]]; skip {
		return
	}
	if m[2] != "" {
		if _, skip := nameStopwords[m[2]]; !skip {
			full += " " + m[2]
		}
	}
	s.filters.Name = ptr(cases.Title(language.Und).String(full))
	s.hit(intent.Name, nameConfidence)
}

func ptr[T any](v T) *T { return &v }
