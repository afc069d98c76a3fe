package contact

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/leadscope/internal/db"
	"github.com/kailas-cloud/leadscope/internal/db/postgres"
	"github.com/kailas-cloud/leadscope/internal/db/where"
	domcontact "github.com/kailas-cloud/leadscope/internal/domain/contact"
)

// Distinct returns up to limit distinct values of column containing partial,
// in ascending order.
func (r *Repo) Distinct(ctx context.Context, column, partial string, limit int) ([]string, error) {
	col, err := where.Ident(column)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}

	pattern := "%" + cases.Lower(language.Und).String(partial) + "%"
	query, args, err := r.psql.Select(col.Name).Distinct().
		From(domcontact.Table).
		Where(where.Base().Pred()).
		Where(sq.Expr(col.Name+"::text ILIKE ?", pattern)).
		OrderBy(col.Name).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct: %w", err)
	}

	conn, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.Classify(db.OpSelect, err)
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, postgres.Classify(db.OpSelect, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(db.OpSelect, err)
	}
	return out, nil
}
