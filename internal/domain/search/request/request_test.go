package request

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/search/filter"
)

func mustFilter(t *testing.T, col string, op filter.Operator, v filter.Value) filter.Filter {
	t.Helper()
	f, err := filter.New(col, op, v)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return f
}

func TestNew_Defaults(t *testing.T) {
	q, err := New(nil, nil, "", "", "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page() != DefaultPage {
		t.Errorf("Page() = %d", q.Page())
	}
	if q.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d", q.PageSize())
	}
	if q.Offset() != 0 {
		t.Errorf("Offset() = %d", q.Offset())
	}
	if q.SortOrder() != Desc {
		t.Errorf("SortOrder() = %q", q.SortOrder())
	}
	if !q.IsBrowse() {
		t.Error("empty query should be a browse query")
	}
	if q.Boost() != nil {
		t.Error("Boost() should be nil")
	}
}

func TestNew_PageSizeClamped(t *testing.T) {
	tests := []struct {
		requested, want int
	}{
		{1, 1},
		{500, 500},
		{501, MaxPageSize},
		{100000, MaxPageSize},
		{-3, DefaultPageSize},
	}
	for _, tc := range tests {
		q, err := New(nil, nil, "", "", "", 1, tc.requested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.PageSize() != tc.want {
			t.Errorf("pageSize %d: got %d, want %d", tc.requested, q.PageSize(), tc.want)
		}
	}
}

func TestNew_Offset(t *testing.T) {
	q, err := New(nil, nil, "", "", "", 3, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Offset() != 50 {
		t.Errorf("Offset() = %d, want 50", q.Offset())
	}
}

func TestNew_PageBounded(t *testing.T) {
	q, err := New(nil, nil, "", "", "", MaxPage, MaxExportPageSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Offset() < 0 {
		t.Errorf("Offset() = %d at the largest page", q.Offset())
	}

	_, err = New(nil, nil, "", "", "", math.MaxInt/2, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if !strings.Contains(err.Error(), "page") {
		t.Errorf("error should name page: %v", err)
	}

	if got := q.WithPaging(math.MaxInt, 10, MaxPageSize).Page(); got != MaxPage {
		t.Errorf("WithPaging page = %d, want %d", got, MaxPage)
	}
}

func TestNew_SortOrder(t *testing.T) {
	q, err := New(nil, nil, "", "full_name", "asc", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SortBy() != "full_name" || q.SortOrder() != Asc {
		t.Errorf("sort = %q %q", q.SortBy(), q.SortOrder())
	}

	_, err = New(nil, nil, "", "full_name", "sideways", 1, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_GlobalSearchTooLong(t *testing.T) {
	_, err := New(nil, nil, strings.Repeat("a", MaxQueryLength+1), "", "", 1, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_TooManyGroups(t *testing.T) {
	groups := make([]filter.Group, filter.MaxGroups+1)
	_, err := New(nil, groups, "", "", "", 1, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestIsBrowse(t *testing.T) {
	f := mustFilter(t, "company", filter.Equals, filter.String("Acme"))
	empty, _ := filter.NewGroup(nil, filter.Or)
	full, _ := filter.NewGroup([]filter.Filter{f}, filter.Or)

	tests := []struct {
		name   string
		build  func() (Query, error)
		browse bool
	}{
		{"filters", func() (Query, error) { return New([]filter.Filter{f}, nil, "", "", "", 1, 10) }, false},
		{"global", func() (Query, error) { return New(nil, nil, "acme", "", "", 1, 10) }, false},
		{"blank global", func() (Query, error) { return New(nil, nil, "   ", "", "", 1, 10) }, true},
		{"empty group", func() (Query, error) { return New(nil, []filter.Group{empty}, "", "", "", 1, 10) }, true},
		{"group", func() (Query, error) { return New(nil, []filter.Group{full}, "", "", "", 1, 10) }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := tc.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.IsBrowse() != tc.browse {
				t.Errorf("IsBrowse() = %v, want %v", q.IsBrowse(), tc.browse)
			}
		})
	}
}

func TestForExport(t *testing.T) {
	q, _ := New(nil, nil, "", "", "", 4, 20)

	e := q.ForExport(0)
	if e.Page() != 1 || e.PageSize() != MaxExportPageSize {
		t.Errorf("export paging = %d/%d", e.Page(), e.PageSize())
	}
	if e = q.ForExport(2500); e.PageSize() != 2500 {
		t.Errorf("export rows = %d, want 2500", e.PageSize())
	}
	if e = q.ForExport(50000); e.PageSize() != MaxExportPageSize {
		t.Errorf("export rows = %d, want cap", e.PageSize())
	}
	if q.Page() != 4 {
		t.Error("ForExport must not mutate the receiver")
	}
}

func TestWithPaging(t *testing.T) {
	q, _ := New(nil, nil, "", "", "", 1, 10)
	p := q.WithPaging(2, 900, MaxPageSize)
	if p.Page() != 2 || p.PageSize() != MaxPageSize {
		t.Errorf("paging = %d/%d", p.Page(), p.PageSize())
	}
}

func TestWithBoost(t *testing.T) {
	q, _ := New(nil, nil, "", "", "", 1, 10)
	b := q.WithBoost(Boost{Name: "ada", Company: "acme"})
	if b.Boost() == nil || b.Boost().Company != "acme" {
		t.Errorf("boost = %+v", b.Boost())
	}
	if q.Boost() != nil {
		t.Error("WithBoost must not mutate the receiver")
	}
}
