package leadscope

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
)

// Condition is one column predicate, used standalone or inside a group.
type Condition struct {
	f   filter.Filter
	err error
}

// Cond builds a condition. value may be a string, any integer or float
// type, a bool, a []string, or nil for is_null / is_not_null.
func Cond(column string, op Operator, value any) Condition {
	v, err := toValue(value)
	if err != nil {
		return Condition{err: domain.NewValidationError(domain.ErrInvalidFilter, column, err.Error())}
	}
	f, err := filter.New(column, op, v)
	return Condition{f: f, err: err}
}

// SearchBuilder is a fluent builder for structured queries. The first
// invalid condition is kept and reported by Query, Do and Export.
type SearchBuilder struct {
	client *Client

	filters []filter.Filter
	groups  []filter.Group
	global  string
	sortBy  string
	order   string
	page    int
	size    int

	err error
}

// Where adds an ungrouped condition.
func (b *SearchBuilder) Where(column string, op Operator, value any) *SearchBuilder {
	return b.add(Cond(column, op, value))
}

// Between adds an inclusive range condition.
func (b *SearchBuilder) Between(column string, from, to any) *SearchBuilder {
	if b.err != nil {
		return b
	}
	lo, err := toValue(from)
	if err != nil {
		b.err = domain.NewValidationError(domain.ErrInvalidFilter, column, err.Error())
		return b
	}
	hi, err := toValue(to)
	if err != nil {
		b.err = domain.NewValidationError(domain.ErrInvalidFilter, column, err.Error())
		return b
	}
	f, err := filter.New(column, filter.Between, filter.Range(lo, hi))
	return b.add(Condition{f: f, err: err})
}

// AllOf adds a group whose conditions must all hold.
func (b *SearchBuilder) AllOf(conds ...Condition) *SearchBuilder {
	return b.group(filter.And, conds)
}

// AnyOf adds a group of which at least one condition must hold.
func (b *SearchBuilder) AnyOf(conds ...Condition) *SearchBuilder {
	return b.group(filter.Or, conds)
}

// Global adds a case-insensitive substring match over the searchable columns.
func (b *SearchBuilder) Global(term string) *SearchBuilder {
	b.global = term
	return b
}

// SortBy orders by column; order is "asc" or "desc" (default desc).
func (b *SearchBuilder) SortBy(column, order string) *SearchBuilder {
	b.sortBy = column
	b.order = order
	return b
}

// Page selects a 1-based page.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.page = n
	return b
}

// PageSize sets the rows per page.
func (b *SearchBuilder) PageSize(n int) *SearchBuilder {
	b.size = n
	return b
}

// Query validates the builder and returns the query it describes.
func (b *SearchBuilder) Query() (request.Query, error) {
	if b.err != nil {
		return request.Query{}, b.err
	}
	q, err := request.New(b.filters, b.groups, b.global, b.sortBy, b.order, b.page, b.size)
	if err != nil {
		return request.Query{}, fmt.Errorf("build query: %w", err)
	}
	return q, nil
}

// Do runs the query and returns one page.
func (b *SearchBuilder) Do(ctx context.Context) (res Result, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("find", start, err) }()

	q, err := b.Query()
	if err != nil {
		return Result{}, err
	}
	return b.client.searchSvc.Execute(b.client.withLogger(ctx), q)
}

// Export writes every matching row, up to the export cap, as CSV.
func (b *SearchBuilder) Export(ctx context.Context, w io.Writer) (int, error) {
	return b.client.ExportCSV(ctx, b, w)
}

func (b *SearchBuilder) add(c Condition) *SearchBuilder {
	if b.err != nil {
		return b
	}
	if c.err != nil {
		b.err = c.err
		return b
	}
	b.filters = append(b.filters, c.f)
	return b
}

func (b *SearchBuilder) group(comb filter.Combinator, conds []Condition) *SearchBuilder {
	if b.err != nil {
		return b
	}
	members := make([]filter.Filter, 0, len(conds))
	for _, c := range conds {
		if c.err != nil {
			b.err = c.err
			return b
		}
		members = append(members, c.f)
	}
	g, err := filter.NewGroup(members, comb)
	if err != nil {
		b.err = err
		return b
	}
	b.groups = append(b.groups, g)
	return b
}

func toValue(v any) (filter.Value, error) {
	switch t := v.(type) {
	case nil:
		return filter.None(), nil
	case string:
		return filter.String(t), nil
	case bool:
		return filter.Bool(t), nil
	case int:
		return filter.Number(float64(t)), nil
	case int32:
		return filter.Number(float64(t)), nil
	case int64:
		return filter.Number(float64(t)), nil
	case float32:
		return filter.Number(float64(t)), nil
	case float64:
		return filter.Number(t), nil
	case []string:
		return filter.List(t...), nil
	case []int:
		items := make([]string, len(t))
		for i, n := range t {
			items[i] = strconv.Itoa(n)
		}
		return filter.List(items...), nil
	default:
		return filter.Value{}, fmt.Errorf("unsupported value of type %T", v)
	}
}
