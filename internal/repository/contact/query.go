package contact

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/kailas-cloud/leadscope/internal/db/where"
	domcontact "github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
)

const boostRank = "CASE WHEN LOWER(full_name) = LOWER(?) THEN 1 " +
	"WHEN LOWER(company) = LOWER(?) THEN 2 ELSE 3 END"

// defaultOrder ranks by score; name and id make paging deterministic.
var defaultOrder = []string{"lead_score DESC NULLS LAST", "full_name ASC", "id ASC"}

// selectColumns lists every contact column in order. Arrays come back in
// their text form so the stdlib driver hands pq.Array a string to parse.
var selectColumns = func() []string {
	cols := make([]string, len(domcontact.Columns))
	for i, c := range domcontact.Columns {
		if c.Kind == domcontact.KindTextArray {
			cols[i] = c.Name + "::text AS " + c.Name
			continue
		}
		cols[i] = c.Name
	}
	return cols
}()

func (r *Repo) pageQuery(clause where.Clause, q request.Query) (sq.SelectBuilder, error) {
	b := r.psql.Select(selectColumns...).From(domcontact.Table).Where(clause.Pred())

	if boost := q.Boost(); boost != nil {
		b = b.OrderByClause(boostRank, boost.Name, boost.Company)
	}
	if q.SortBy() != "" {
		col, err := where.Ident(q.SortBy())
		if err != nil {
			return sq.SelectBuilder{}, err
		}
		b = b.OrderBy(col.Name + " " + string(q.SortOrder()) + " NULLS LAST")
	}

	offset := q.Offset()
	if offset < 0 {
		offset = 0
	}
	return b.OrderBy(defaultOrder...).
		Limit(uint64(q.PageSize())).
		Offset(uint64(offset)), nil
}
