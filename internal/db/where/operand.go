package where

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
)

// Accepted timestamp literals, most specific first.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// operand converts a scalar to the bind argument for col. Values Postgres
// could not coerce to the column type fail here as ErrInvalidFilter, so they
// never reach the database as a storage error. Text equality accepts any
// scalar and binds its text form; ordering on text needs a string.
func operand(col contact.Column, v filter.Value, ordering bool) (any, error) {
	switch col.Kind {
	case contact.KindInteger:
		switch v.Kind() {
		case filter.KindNumber:
			if n, ok := v.Arg().(int64); ok {
				return n, nil
			}
		case filter.KindString:
			if n, err := strconv.ParseInt(strings.TrimSpace(v.Text()), 10, 64); err == nil {
				return n, nil
			}
		}
	case contact.KindDecimal:
		switch v.Kind() {
		case filter.KindNumber:
			return v.Arg(), nil
		case filter.KindString:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64); err == nil {
				return f, nil
			}
		}
	case contact.KindBool:
		switch v.Kind() {
		case filter.KindBool:
			return v.Arg(), nil
		case filter.KindString:
			if b, err := strconv.ParseBool(strings.TrimSpace(v.Text())); err == nil {
				return b, nil
			}
		}
	case contact.KindTimestamp:
		if v.Kind() == filter.KindString {
			s := strings.TrimSpace(v.Text())
			for _, layout := range timeLayouts {
				if _, err := time.Parse(layout, s); err == nil {
					return s, nil
				}
			}
		}
	default:
		if v.Kind() == filter.KindString {
			return v.Text(), nil
		}
		if !ordering && v.IsScalar() {
			return v.Text(), nil
		}
	}
	return nil, mismatch(col, v)
}

// listOperands converts in/not_in members, which always arrive as strings.
func listOperands(col contact.Column, items []string) ([]any, error) {
	out := make([]any, len(items))
	for i, s := range items {
		a, err := operand(col, filter.String(s), false)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func mismatch(col contact.Column, v filter.Value) error {
	return domain.NewValidationError(domain.ErrInvalidFilter, col.Name,
		fmt.Sprintf("%s value %q does not fit %s column", v.Kind(), v.Text(), col.Kind))
}
