package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/domain/search/result"
)

// --- Mocks ---

type mockRepo struct {
	contacts  []contact.Contact
	err       error
	lastQuery request.Query
}

func (m *mockRepo) Search(_ context.Context, q request.Query, _ bool) (result.Page, error) {
	m.lastQuery = q
	return result.Page{Contacts: m.contacts, Total: int64(len(m.contacts))}, m.err
}

func str(s string) *string { return &s }

func query(t *testing.T, page, size int) request.Query {
	t.Helper()
	q, err := request.New(nil, nil, "", "", "", page, size)
	if err != nil {
		t.Fatal(err)
	}
	return q
}

// --- Tests ---

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty body, got %q", buf.String())
	}
}

func TestWriteCSV_HeaderAndQuoting(t *testing.T) {
	rows := []contact.Contact{
		{
			ID:           7,
			FullName:     str(`Jane "JR" Roe`),
			Company:      str("Acme, Inc."),
			Title:        str("VP\nSales"),
			Technologies: []string{"Salesforce", "AWS"},
		},
		{ID: 8},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	header := strings.SplitN(out, "\n", 2)[0]
	if !strings.HasPrefix(header, "id,full_name,first_name,last_name,title,email,") {
		t.Errorf("unexpected header: %s", header)
	}
	if !strings.HasSuffix(header, "is_deleted,created_at,updated_at") {
		t.Errorf("unexpected header tail: %s", header)
	}
	for _, want := range []string{
		`"Jane ""JR"" Roe"`,
		`"Acme, Inc."`,
		"\"VP\nSales\"",
		"Salesforce; AWS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "\n8,,,,") {
		t.Errorf("nulls should render empty:\n%s", out)
	}
}

func TestWriteCSV_ConservativeQuoting(t *testing.T) {
	rows := []contact.Contact{{
		ID:       9,
		Email:    str(" lead@acme.com"),
		Industry: str(`\.`),
		Website:  str("acme.com\r"),
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	// Leading spaces, carriage returns and a lone \. are quoted too.
	for _, want := range []string{`" lead@acme.com"`, `"\."`, "\"acme.com\r\""} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	got := map[string]string{}
	for i, name := range records[0] {
		got[name] = records[1][i]
	}
	if got["email"] != " lead@acme.com" || got["industry"] != `\.` {
		t.Errorf("values changed on re-read: %v", got)
	}
}

func TestExport_UsesExportCap(t *testing.T) {
	repo := &mockRepo{contacts: []contact.Contact{{ID: 1}, {ID: 2}}}
	svc := New(repo)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), query(t, 4, 20), &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d", n)
	}
	if repo.lastQuery.Page() != 1 || repo.lastQuery.PageSize() != request.MaxExportPageSize {
		t.Errorf("paging = %d/%d", repo.lastQuery.Page(), repo.lastQuery.PageSize())
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}
}

func TestExport_MaxRows(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithMaxRows(500)

	if _, err := svc.Export(context.Background(), query(t, 1, 50), &bytes.Buffer{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastQuery.PageSize() != 500 {
		t.Errorf("pageSize = %d, want 500", repo.lastQuery.PageSize())
	}
}

func TestExport_Error(t *testing.T) {
	svc := New(&mockRepo{err: domain.ErrStorage})

	var buf bytes.Buffer
	if _, err := svc.Export(context.Background(), query(t, 1, 50), &buf); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}
