package filter

import (
	"fmt"

	"github.com/kailas-cloud/leadscope/internal/domain"
)

// MaxFiltersPerGroup is the maximum number of filters in one group.
const MaxFiltersPerGroup = 32

// MaxGroups is the maximum number of filter groups in one query.
const MaxGroups = 16

// Filter is a single column/operator/value predicate.
// The column is checked against the identifier rules when compiled, not here.
type Filter struct {
	column   string
	operator Operator
	value    Value
}

// New validates the operator and the operand shape and creates a Filter.
// A scalar operand for in/not_in is widened to a one-element list.
func New(column string, op Operator, v Value) (Filter, error) {
	if column == "" {
		return Filter{}, domain.NewValidationError(domain.ErrInvalidColumn, column, "column is required")
	}
	if !op.IsValid() {
		return Filter{}, domain.NewValidationError(domain.ErrInvalidOperator, string(op), "unknown operator")
	}

	switch {
	case op.TakesNoValue():
		v = None()
	case op.TakesList():
		switch {
		case v.Kind() == KindList:
		case v.IsScalar():
			v = List(v.Text())
		default:
			return Filter{}, shapeError(column, op, "a list")
		}
	case op == Between:
		from, to := v.Bounds()
		if v.Kind() != KindRange || !from.IsScalar() || !to.IsScalar() {
			return Filter{}, shapeError(column, op, "value and value2")
		}
	default:
		if !v.IsScalar() {
			return Filter{}, shapeError(column, op, "a scalar value")
		}
	}

	return Filter{column: column, operator: op, value: v}, nil
}

func shapeError(column string, op Operator, want string) error {
	return domain.NewValidationError(domain.ErrInvalidFilter, column,
		fmt.Sprintf("operator %s requires %s", op, want))
}

// Column returns the column name as supplied by the caller.
func (f Filter) Column() string { return f.column }

// Operator returns the comparison.
func (f Filter) Operator() Operator { return f.operator }

// Value returns the operand.
func (f Filter) Value() Value { return f.value }

// Group is a set of filters joined by one combinator.
type Group struct {
	filters    []Filter
	combinator Combinator
}

// NewGroup creates a filter group.
func NewGroup(filters []Filter, c Combinator) (Group, error) {
	if len(filters) > MaxFiltersPerGroup {
		return Group{}, domain.NewValidationError(domain.ErrInvalidQuery, "filterGroups",
			fmt.Sprintf("too many filters in group (max %d)", MaxFiltersPerGroup))
	}
	if c == "" {
		c = And
	}
	if c != And && c != Or {
		return Group{}, domain.NewValidationError(domain.ErrInvalidQuery, "combineWith", "must be AND or OR")
	}
	return Group{filters: filters, combinator: c}, nil
}

// Filters returns the group members.
func (g Group) Filters() []Filter { return g.filters }

// Combinator returns how members are joined.
func (g Group) Combinator() Combinator { return g.combinator }

// IsEmpty reports whether the group has no filters.
func (g Group) IsEmpty() bool { return len(g.filters) == 0 }
