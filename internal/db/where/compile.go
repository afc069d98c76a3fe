// Package where compiles validated search queries into parameterized
// Postgres predicates over the contacts table.
package where

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
)

const technologies = "technologies"

var notDeleted = sq.Expr("is_deleted = false")

// Clause is a compiled WHERE predicate.
type Clause struct {
	pred sq.And
}

// Base returns the clause that only excludes soft-deleted rows.
func Base() Clause {
	return Clause{pred: sq.And{notDeleted}}
}

// Pred returns the predicate with '?' placeholders for composition into
// squirrel builders.
func (c Clause) Pred() sq.Sqlizer { return c.pred }

// ToSql renders the predicate with $N placeholders and its ordered args.
func (c Clause) ToSql() (string, []any, error) {
	s, args, err := c.pred.ToSql()
	if err != nil {
		return "", nil, err
	}
	s, err = sq.Dollar.ReplacePlaceholders(s)
	if err != nil {
		return "", nil, err
	}
	return s, args, nil
}

// Compile builds the WHERE predicate for q. is_deleted = false is always the
// first conjunct, then ungrouped filters, groups, and the global search.
// Any invalid column or operator fails the whole compilation.
func Compile(q request.Query) (Clause, error) {
	pred := sq.And{notDeleted}

	for _, f := range q.Filters() {
		p, err := compileFilter(f)
		if err != nil {
			return Clause{}, err
		}
		if p != nil {
			pred = append(pred, p)
		}
	}

	for _, g := range q.Groups() {
		p, err := compileGroup(g)
		if err != nil {
			return Clause{}, err
		}
		if p != nil {
			pred = append(pred, p)
		}
	}

	if term := q.GlobalSearch(); term != "" {
		pred = append(pred, globalSearch(term))
	}

	return Clause{pred: pred}, nil
}

func compileGroup(g filter.Group) (sq.Sqlizer, error) {
	parts := make([]sq.Sqlizer, 0, len(g.Filters()))
	for _, f := range g.Filters() {
		p, err := compileFilter(f)
		if err != nil {
			return nil, err
		}
		if p != nil {
			parts = append(parts, p)
		}
	}
	switch {
	case len(parts) == 0:
		return nil, nil
	case len(parts) == 1:
		return parts[0], nil
	case g.Combinator() == filter.Or:
		return sq.Or(parts), nil
	default:
		return sq.And(parts), nil
	}
}

func globalSearch(term string) sq.Sqlizer {
	pattern := "%" + lower(term) + "%"
	or := make(sq.Or, 0, len(contact.GlobalSearchColumns))
	for _, col := range contact.GlobalSearchColumns {
		or = append(or, sq.Expr(col+"::text ILIKE ?", pattern))
	}
	return or
}

// compileFilter lowers one filter. A nil predicate with a nil error means the
// filter constrains nothing (empty in/not_in list).
func compileFilter(f filter.Filter) (sq.Sqlizer, error) {
	col, err := Ident(f.Column())
	if err != nil {
		return nil, err
	}
	if col.Kind == contact.KindTextArray {
		return compileArray(col.Name, f)
	}

	name := col.Name
	v := f.Value()
	switch f.Operator() {
	case filter.Equals:
		return bind(col, name+" = ?", v, false)
	case filter.NotEquals:
		return bind(col, name+" != ?", v, false)
	case filter.Contains:
		return sq.Expr(name+"::text ILIKE ?", "%"+lower(v.Text())+"%"), nil
	case filter.NotContains:
		return sq.Expr(name+"::text NOT ILIKE ?", "%"+lower(v.Text())+"%"), nil
	case filter.StartsWith:
		return sq.Expr(name+"::text ILIKE ?", lower(v.Text())+"%"), nil
	case filter.EndsWith:
		return sq.Expr(name+"::text ILIKE ?", "%"+lower(v.Text())), nil
	case filter.GreaterThan:
		return bind(col, name+" > ?", v, true)
	case filter.LessThan:
		return bind(col, name+" < ?", v, true)
	case filter.GreaterOrEqual:
		return bind(col, name+" >= ?", v, true)
	case filter.LessOrEqual:
		return bind(col, name+" <= ?", v, true)
	case filter.IsNull:
		return sq.Expr(name + " IS NULL"), nil
	case filter.IsNotNull:
		return sq.Expr(name + " IS NOT NULL"), nil
	case filter.In, filter.NotIn:
		args, err := listOperands(col, v.Items())
		if err != nil {
			return nil, err
		}
		if f.Operator() == filter.NotIn {
			return inList(name+" NOT IN", args), nil
		}
		return inList(name+" IN", args), nil
	case filter.Between:
		lo, hi := v.Bounds()
		from, err := operand(col, lo, true)
		if err != nil {
			return nil, err
		}
		to, err := operand(col, hi, true)
		if err != nil {
			return nil, err
		}
		return sq.Expr(name+" BETWEEN ? AND ?", from, to), nil
	}
	return nil, unsupported(f)
}

func bind(col contact.Column, expr string, v filter.Value, ordering bool) (sq.Sqlizer, error) {
	arg, err := operand(col, v, ordering)
	if err != nil {
		return nil, err
	}
	return sq.Expr(expr, arg), nil
}

// compileArray lowers filters on the technologies text[] column.
func compileArray(name string, f filter.Filter) (sq.Sqlizer, error) {
	v := f.Value()
	elem := contact.Column{Name: name, Kind: contact.KindText}
	exists := "EXISTS (SELECT 1 FROM UNNEST(" + name + ") t WHERE t ILIKE ?)"
	switch f.Operator() {
	case filter.Equals:
		return bind(elem, "? = ANY("+name+")", v, false)
	case filter.NotEquals:
		return bind(elem, "NOT (? = ANY("+name+"))", v, false)
	case filter.Contains:
		return sq.Expr(exists, "%"+lower(v.Text())+"%"), nil
	case filter.NotContains:
		return sq.Expr("NOT "+exists, "%"+lower(v.Text())+"%"), nil
	case filter.StartsWith:
		return sq.Expr(exists, lower(v.Text())+"%"), nil
	case filter.EndsWith:
		return sq.Expr(exists, "%"+lower(v.Text())), nil
	case filter.IsNull:
		return sq.Expr(name + " IS NULL"), nil
	case filter.IsNotNull:
		return sq.Expr(name + " IS NOT NULL"), nil
	case filter.In:
		return overlap(name, v.Items(), false), nil
	case filter.NotIn:
		return overlap(name, v.Items(), true), nil
	}
	return nil, unsupported(f)
}

func inList(prefix string, args []any) sq.Sqlizer {
	if len(args) == 0 {
		return nil
	}
	return sq.Expr(prefix+" ("+sq.Placeholders(len(args))+")", args...)
}

func overlap(name string, items []string, negate bool) sq.Sqlizer {
	if len(items) == 0 {
		return nil
	}
	expr := name + " && ARRAY[" + sq.Placeholders(len(items)) + "]::text[]"
	if negate {
		expr = "NOT (" + expr + ")"
	}
	return sq.Expr(expr, anys(items)...)
}

func anys(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func unsupported(f filter.Filter) error {
	return domain.NewValidationError(domain.ErrInvalidOperator, string(f.Operator()),
		fmt.Sprintf("not supported for column %s", f.Column()))
}

// lower folds case for ILIKE patterns. Casers are not safe for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
