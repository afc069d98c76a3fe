package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/request"
	"github.com/kailas-cloud/leadscope/internal/metrics"
)

// Service writes search results as CSV.
type Service struct {
	repo    Repository
	maxRows int
}

// New creates an export service capped at request.MaxExportPageSize rows.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxRows: request.MaxExportPageSize}
}

// WithMaxRows lowers the export cap.
func (s *Service) WithMaxRows(n int) *Service {
	if n > 0 && n < request.MaxExportPageSize {
		s.maxRows = n
	}
	return s
}

// Rows runs q from page 1 up to the export cap.
func (s *Service) Rows(ctx context.Context, q request.Query) ([]contact.Contact, error) {
	page, err := s.repo.Search(ctx, q.ForExport(s.maxRows), false)
	if err != nil {
		return nil, fmt.Errorf("export query: %w", err)
	}
	return page.Contacts, nil
}

// Export writes the rows of q to w and returns how many were written.
func (s *Service) Export(ctx context.Context, q request.Query, w io.Writer) (int, error) {
	rows, err := s.Rows(ctx, q)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, rows); err != nil {
		return 0, err
	}
	metrics.ExportedRowsTotal.Add(float64(len(rows)))
	return len(rows), nil
}

// WriteCSV renders contacts with a header taken from the first row's keys.
// No rows produce no output at all, not even a header.
func WriteCSV(w io.Writer, rows []contact.Contact) error {
	if len(rows) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	fields := rows[0].Fields()
	record := make([]string, len(fields))
	for i, f := range fields {
		record[i] = f.Name
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range rows {
		for j, f := range rows[i].Fields() {
			record[j] = f.Value
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
