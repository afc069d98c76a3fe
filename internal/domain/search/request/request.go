package request

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text and global search length.
	MaxQueryLength    = 4096
	DefaultPage       = 1
	DefaultPageSize   = 50
	MaxPageSize       = 500
	MaxExportPageSize = 10000
	// MaxPage keeps (page-1)*pageSize inside 32 bits at the export cap.
	MaxPage = math.MaxInt32 / MaxExportPageSize
)

// SortOrder is the direction of a caller-supplied sort.
type SortOrder string

// Sort directions.
const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// Boost ranks exact name or company matches first (natural-language path).
type Boost struct {
	Name    string
	Company string
}

// Query is a validated structured search.
type Query struct {
	filters      []filter.Filter
	groups       []filter.Group
	globalSearch string
	sortBy       string
	sortOrder    SortOrder
	page         int
	pageSize     int
	boost        *Boost
}

// New validates and normalizes search parameters.
// Defaults: page=1, pageSize=50. pageSize is clamped to MaxPageSize.
func New(
	filters []filter.Filter,
	groups []filter.Group,
	globalSearch, sortBy, sortOrder string,
	page, pageSize int,
) (Query, error) {
	globalSearch = strings.TrimSpace(globalSearch)
	if len(globalSearch) > MaxQueryLength {
		return Query{}, domain.NewValidationError(domain.ErrInvalidQuery, "globalSearch",
			fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	if len(groups) > filter.MaxGroups {
		return Query{}, domain.NewValidationError(domain.ErrInvalidQuery, "filterGroups",
			fmt.Sprintf("too many groups (max %d)", filter.MaxGroups))
	}

	var order SortOrder
	switch strings.ToUpper(strings.TrimSpace(sortOrder)) {
	case "":
	case "ASC":
		order = Asc
	case "DESC":
		order = Desc
	default:
		return Query{}, domain.NewValidationError(domain.ErrInvalidQuery, "sortOrder", "must be asc or desc")
	}
	if order == "" {
		order = Desc
	}

	if page > MaxPage {
		return Query{}, domain.NewValidationError(domain.ErrInvalidQuery, "page",
			fmt.Sprintf("too large (max %d)", MaxPage))
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Query{
		filters:      filters,
		groups:       groups,
		globalSearch: globalSearch,
		sortBy:       strings.TrimSpace(sortBy),
		sortOrder:    order,
		page:         page,
		pageSize:     pageSize,
	}, nil
}

// Filters returns the ungrouped filters (ANDed).
func (q Query) Filters() []filter.Filter { return q.filters }

// Groups returns the filter groups (ANDed with each other).
func (q Query) Groups() []filter.Group { return q.groups }

// GlobalSearch returns the free-text term matched across high-signal columns.
func (q Query) GlobalSearch() string { return q.globalSearch }

// SortBy returns the caller sort column ("" for default ranking).
func (q Query) SortBy() string { return q.sortBy }

// SortOrder returns the caller sort direction.
func (q Query) SortOrder() SortOrder { return q.sortOrder }

// Page returns the 1-based page number.
func (q Query) Page() int { return q.page }

// PageSize returns the clamped page size.
func (q Query) PageSize() int { return q.pageSize }

// Offset returns (page-1)*pageSize.
func (q Query) Offset() int { return (q.page - 1) * q.pageSize }

// Boost returns the ranking boost, nil when not set.
func (q Query) Boost() *Boost { return q.boost }

// IsBrowse reports whether the query has no filters and no global search.
func (q Query) IsBrowse() bool {
	if len(q.filters) > 0 || q.globalSearch != "" {
		return false
	}
	for _, g := range q.groups {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}

// WithBoost returns a copy ranked by exact name/company matches first.
func (q Query) WithBoost(b Boost) Query {
	q.boost = &b
	return q
}

// WithPaging returns a copy on the given page. size is clamped to limit.
func (q Query) WithPaging(page, size, limit int) Query {
	if page <= 0 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if limit > 0 && size > limit {
		size = limit
	}
	q.page = page
	q.pageSize = size
	return q
}

// ForExport returns a copy on page 1 sized to rows, clamped to MaxExportPageSize.
func (q Query) ForExport(rows int) Query {
	if rows <= 0 || rows > MaxExportPageSize {
		rows = MaxExportPageSize
	}
	return q.WithPaging(1, rows, MaxExportPageSize)
}
