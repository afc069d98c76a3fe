package search

import (
	"strings"

	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
)

// QueryFromAnalysis maps extracted slots onto filters over contact columns.
// Leftover search terms become the global search.
func QueryFromAnalysis(a analysis.Analysis) (request.Query, error) {
	f := a.Filters
	var b builder

	b.text("company", filter.Contains, f.Company)
	b.text("title", filter.Contains, f.Title)
	b.text("industry", filter.Contains, f.Industry)
	b.text("technologies", filter.Contains, f.Technology)
	b.text("full_name", filter.Contains, f.Name)
	if f.MinEmployees != nil {
		b.add("employees", filter.GreaterOrEqual, filter.Number(float64(*f.MinEmployees)))
	}
	if f.MaxEmployees != nil {
		b.add("employees", filter.LessOrEqual, filter.Number(float64(*f.MaxEmployees)))
	}
	if f.MinLeadScore != nil {
		b.add("lead_score", filter.GreaterOrEqual, filter.Number(*f.MinLeadScore))
	}
	b.present("email", f.HasEmail)
	b.present("mobile_phone", f.HasPhone)
	b.present("person_linkedin", f.HasLinkedin)
	if f.Location != nil {
		b.location(*f.Location)
	}
	if b.err != nil {
		return request.Query{}, b.err
	}

	return request.New(b.filters, b.groups, strings.Join(a.SearchTerms, " "), "", "", 0, 0)
}

type builder struct {
	filters []filter.Filter
	groups  []filter.Group
	err     error
}

func (b *builder) add(col string, op filter.Operator, v filter.Value) {
	if b.err != nil {
		return
	}
	f, err := filter.New(col, op, v)
	if err != nil {
		b.err = err
		return
	}
	b.filters = append(b.filters, f)
}

func (b *builder) text(col string, op filter.Operator, v *string) {
	if v != nil && *v != "" {
		b.add(col, op, filter.String(*v))
	}
}

func (b *builder) present(col string, flag *bool) {
	if flag != nil && *flag {
		b.add(col, filter.IsNotNull, filter.None())
	}
}

// location: a state code matches the state column exactly, a country the
// country column; a bare place may be stored as any of city, state or country.
func (b *builder) location(loc analysis.Location) {
	switch {
	case loc.City != "" && loc.State != "":
		b.add("city", filter.Contains, filter.String(loc.City))
		b.add("state", filter.Equals, filter.String(loc.State))
	case loc.State != "":
		b.add("state", filter.Equals, filter.String(loc.State))
	case loc.Country != "":
		b.add("country", filter.Contains, filter.String(loc.Country))
	case loc.City != "":
		b.anyOf(filter.Contains, filter.String(loc.City), "city", "state", "country")
	}
}

func (b *builder) anyOf(op filter.Operator, v filter.Value, cols ...string) {
	if b.err != nil {
		return
	}
	fs := make([]filter.Filter, 0, len(cols))
	for _, col := range cols {
		f, err := filter.New(col, op, v)
		if err != nil {
			b.err = err
			return
		}
		fs = append(fs, f)
	}
	g, err := filter.NewGroup(fs, filter.Or)
	if err != nil {
		b.err = err
		return
	}
	b.groups = append(b.groups, g)
}
