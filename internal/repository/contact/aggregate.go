package contact

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kailas-cloud/leadscope/internal/db"
	"github.com/kailas-cloud/leadscope/internal/db/postgres"
	"github.com/kailas-cloud/leadscope/internal/db/where"
	domcontact "github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
)

// topBuckets caps the industry and country distributions.
const topBuckets = 10

// Statistics thresholds.
const (
	HighScoreThreshold  = 7.0
	EnterpriseThreshold = 1000
)

// Aggregate computes the browse distributions over every live contact.
func (r *Repo) Aggregate(ctx context.Context) (result.Aggregations, error) {
	conn, err := r.store.Conn(ctx)
	if err != nil {
		return result.Aggregations{}, err
	}
	defer conn.Close()

	return r.aggregate(ctx, conn, where.Base())
}

func (r *Repo) aggregate(ctx context.Context, conn *sql.Conn, clause where.Clause) (result.Aggregations, error) {
	var (
		agg result.Aggregations
		err error
	)
	if agg.ByIndustry, err = r.buckets(ctx, conn, clause, "industry", topBuckets); err != nil {
		return result.Aggregations{}, err
	}
	if agg.ByCountry, err = r.buckets(ctx, conn, clause, "country", topBuckets); err != nil {
		return result.Aggregations{}, err
	}
	if agg.ByEmployeeSize, err = r.buckets(ctx, conn, clause, "employee_size_bracket", 0); err != nil {
		return result.Aggregations{}, err
	}

	query, args, err := r.psql.Select("COALESCE(AVG(lead_score), 0)").
		From(domcontact.Table).Where(clause.Pred()).ToSql()
	if err != nil {
		return result.Aggregations{}, fmt.Errorf("build avg: %w", err)
	}
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&agg.AvgLeadScore); err != nil {
		return result.Aggregations{}, postgres.Classify(db.OpGroupBy, err)
	}
	return agg, nil
}

// buckets counts live contacts per non-null value of col, most frequent first.
// limit 0 returns the full distribution.
func (r *Repo) buckets(
	ctx context.Context, conn *sql.Conn, clause where.Clause, col string, limit uint64,
) ([]result.Bucket, error) {
	b := r.psql.Select(col, "COUNT(*) AS count").
		From(domcontact.Table).
		Where(clause.Pred()).
		Where(sq.Expr(col+" IS NOT NULL")).
		GroupBy(col).
		OrderBy("count DESC", col+" ASC")
	if limit > 0 {
		b = b.Limit(limit)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s buckets: %w", col, err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.Classify(db.OpGroupBy, err)
	}
	defer rows.Close()

	out := make([]result.Bucket, 0)
	for rows.Next() {
		var bk result.Bucket
		if err := rows.Scan(&bk.Value, &bk.Count); err != nil {
			return nil, postgres.Classify(db.OpGroupBy, err)
		}
		out = append(out, bk)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(db.OpGroupBy, err)
	}
	return out, nil
}

// Statistics returns the fixed dashboard counters over every live contact.
func (r *Repo) Statistics(ctx context.Context) (result.Statistics, error) {
	query, args, err := r.psql.Select(
		"COUNT(*)",
		"COUNT(DISTINCT company)",
		"COALESCE(AVG(lead_score), 0)",
	).
		Column(sq.Expr("COUNT(*) FILTER (WHERE lead_score >= ?)", HighScoreThreshold)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE employees >= ?)", EnterpriseThreshold)).
		From(domcontact.Table).
		Where(where.Base().Pred()).
		ToSql()
	if err != nil {
		return result.Statistics{}, fmt.Errorf("build statistics: %w", err)
	}

	conn, err := r.store.Conn(ctx)
	if err != nil {
		return result.Statistics{}, err
	}
	defer conn.Close()

	var s result.Statistics
	err = conn.QueryRowContext(ctx, query, args...).Scan(
		&s.TotalContacts, &s.TotalCompanies, &s.AvgLeadScore, &s.HighScoreContacts, &s.EnterpriseContacts,
	)
	if err != nil {
		return result.Statistics{}, postgres.Classify(db.OpSelect, err)
	}
	return s, nil
}
