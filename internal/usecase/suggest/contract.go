package suggest

import "context"

// Repository reads distinct column values.
type Repository interface {
	Distinct(ctx context.Context, column, partial string, limit int) ([]string, error)
}
