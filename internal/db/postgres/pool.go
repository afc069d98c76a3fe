// Package postgres owns the read-only contact store pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/kailas-cloud/leadscope/internal/db"
)

// Compile-time check: Pool implements db.SQLStore.
var _ db.SQLStore = (*Pool)(nil)

// Config holds pool sizing and timeouts.
type Config struct {
	DSN              string
	MinConns         int32
	MaxConns         int32
	MaxConnIdleTime  time.Duration
	AcquireTimeout   time.Duration
	StatementTimeout time.Duration
}

// Pool is a pgx connection pool exposed through database/sql.
// It is created and closed by the host; nothing in the core opens its own.
type Pool struct {
	pgx            *pgxpool.Pool
	sqlDB          *sql.DB
	acquireTimeout time.Duration
}

// Open parses the DSN, applies sizing and timeouts, and opens the pool.
// Connections are established lazily.
func Open(ctx context.Context, cfg Config) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	pc.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return &Pool{
		pgx:            pool,
		sqlDB:          stdlib.OpenDBFromPool(pool),
		acquireTimeout: cfg.AcquireTimeout,
	}, nil
}

// NewForTest wraps an existing *sql.DB (test-only).
func NewForTest(sqlDB *sql.DB, acquireTimeout time.Duration) *Pool {
	return &Pool{sqlDB: sqlDB, acquireTimeout: acquireTimeout}
}

// Conn acquires one connection, bounded by the acquire timeout.
// The deadline covers acquisition only, not the queries run afterwards.
func (p *Pool) Conn(ctx context.Context) (*sql.Conn, error) {
	actx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}
	conn, err := p.sqlDB.Conn(actx)
	if err != nil {
		return nil, Classify(db.OpAcquire, err)
	}
	return conn, nil
}

// Ping checks connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.sqlDB.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database/sql handle and the underlying pool.
func (p *Pool) Close() {
	_ = p.sqlDB.Close()
	if p.pgx != nil {
		p.pgx.Close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (p *Pool) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
