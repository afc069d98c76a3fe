package contact

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kailas-cloud/leadscope/internal/db/postgres"
	domcontact "github.com/kailas-cloud/leadscope/internal/domain/contact"
)

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return New(postgres.NewForTest(sqlDB, time.Second)), mock
}

func columnNames() []string {
	names := make([]string, len(domcontact.Columns))
	for i, c := range domcontact.Columns {
		names[i] = c.Name
	}
	return names
}

// contactRow builds a full row; unset optional columns are NULL.
func contactRow(id int64, name, company string, score any, tech any) []driver.Value {
	row := make([]driver.Value, len(domcontact.Columns))
	for i, c := range domcontact.Columns {
		switch c.Name {
		case "id":
			row[i] = id
		case "full_name":
			row[i] = name
		case "company":
			row[i] = company
		case "lead_score":
			row[i] = score
		case "technologies":
			row[i] = tech
		case "employees":
			row[i] = int64(250)
		case "is_deleted":
			row[i] = false
		case "created_at", "updated_at":
			row[i] = created
		default:
			row[i] = nil
		}
	}
	return row
}
