package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/leadscope/internal/db"
	"github.com/kailas-cloud/leadscope/internal/domain"
)

// codeQueryCanceled is SQLSTATE query_canceled, raised by statement_timeout.
const codeQueryCanceled = "57014"

// Classify maps a driver error to domain.ErrQueryTimeout or domain.ErrStorage,
// keeping the original under a db.Error for logs.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := &db.Error{Op: op, Err: err}
	if IsTimeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrQueryTimeout, wrapped)
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, wrapped)
}

// IsTimeout reports whether err is a statement timeout or an expired deadline.
func IsTimeout(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeQueryCanceled {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err)
}
