package contact

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kailas-cloud/leadscope/internal/db"
	"github.com/kailas-cloud/leadscope/internal/db/postgres"
	"github.com/kailas-cloud/leadscope/internal/db/where"
	domcontact "github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
)

// store is the consumer interface for the contact table (ISP).
type store interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// Repo implements the contact queries of usecase/search, export and suggest.
type Repo struct {
	store store
	psql  sq.StatementBuilderType
}

// New creates a contact repository.
func New(s store) *Repo {
	return &Repo{store: s, psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// Search runs the count and the page query for q on one connection.
// With aggregate set, the browse aggregations run on the same connection too.
func (r *Repo) Search(ctx context.Context, q request.Query, aggregate bool) (result.Page, error) {
	clause, err := where.Compile(q)
	if err != nil {
		return result.Page{}, err
	}
	dataQ, err := r.pageQuery(clause, q)
	if err != nil {
		return result.Page{}, err
	}

	conn, err := r.store.Conn(ctx)
	if err != nil {
		return result.Page{}, err
	}
	defer conn.Close()

	total, err := r.count(ctx, conn, clause)
	if err != nil {
		return result.Page{}, err
	}

	contacts, err := r.fetch(ctx, conn, dataQ)
	if err != nil {
		return result.Page{}, err
	}

	page := result.Page{Contacts: contacts, Total: total}
	if aggregate {
		agg, err := r.aggregate(ctx, conn, clause)
		if err != nil {
			return result.Page{}, err
		}
		page.Aggregations = &agg
	}
	return page, nil
}

func (r *Repo) count(ctx context.Context, conn *sql.Conn, clause where.Clause) (int64, error) {
	query, args, err := r.psql.Select("COUNT(*)").From(domcontact.Table).Where(clause.Pred()).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, postgres.Classify(db.OpCount, err)
	}
	return total, nil
}

func (r *Repo) fetch(ctx context.Context, conn *sql.Conn, b sq.SelectBuilder) ([]domcontact.Contact, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.Classify(db.OpSelect, err)
	}
	defer rows.Close()

	contacts := make([]domcontact.Contact, 0)
	for rows.Next() {
		var c domcontact.Contact
		if err := rows.Scan(c.ScanTargets(arrayTarget)...); err != nil {
			return nil, postgres.Classify(db.OpSelect, err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(db.OpSelect, err)
	}
	return contacts, nil
}

func arrayTarget(p *[]string) any { return pq.Array(p) }
