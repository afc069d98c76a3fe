package db

import (
	"context"
	"database/sql"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Conner hands out pooled SQL connections. Callers run every query of one
// request on the returned connection and close it when done.
type Conner interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// SQLStore is the contact store facade: a read-only Postgres pool.
type SQLStore interface {
	Pinger
	Conner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// HashReader reads hashes by key or by key pattern.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// HashStore is the campaign store facade.
type HashStore interface {
	Pinger
	HashReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
