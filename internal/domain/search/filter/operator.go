package filter

import "strings"

// Operator is a filter comparison.
type Operator string

// Supported operators.
const (
	Equals         Operator = "equals"
	NotEquals      Operator = "not_equals"
	Contains       Operator = "contains"
	NotContains    Operator = "not_contains"
	StartsWith     Operator = "starts_with"
	EndsWith       Operator = "ends_with"
	GreaterThan    Operator = "greater_than"
	LessThan       Operator = "less_than"
	GreaterOrEqual Operator = "greater_or_equal"
	LessOrEqual    Operator = "less_or_equal"
	IsNull         Operator = "is_null"
	IsNotNull      Operator = "is_not_null"
	In             Operator = "in"
	NotIn          Operator = "not_in"
	Between        Operator = "between"
)

var operators = map[Operator]struct{}{
	Equals: {}, NotEquals: {}, Contains: {}, NotContains: {},
	StartsWith: {}, EndsWith: {}, GreaterThan: {}, LessThan: {},
	GreaterOrEqual: {}, LessOrEqual: {}, IsNull: {}, IsNotNull: {},
	In: {}, NotIn: {}, Between: {},
}

// IsValid reports whether the operator is supported.
func (o Operator) IsValid() bool {
	_, ok := operators[o]
	return ok
}

// TakesNoValue reports whether the operator ignores its operand.
func (o Operator) TakesNoValue() bool { return o == IsNull || o == IsNotNull }

// TakesList reports whether the operator expects a list operand.
func (o Operator) TakesList() bool { return o == In || o == NotIn }

// Combinator joins the filters inside a group.
type Combinator string

// Group combinators.
const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

// ParseCombinator reads AND/OR case-insensitively. Empty means AND.
func ParseCombinator(s string) (Combinator, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AND":
		return And, true
	case "OR":
		return Or, true
	default:
		return "", false
	}
}
