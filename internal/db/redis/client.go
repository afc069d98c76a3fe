// Package redis reads encrypted campaign hashes from Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/leadscope/internal/db"
)

var _ db.HashStore = (*Store)(nil)

// Readiness probe backoff bounds.
const (
	probeInitial = 50 * time.Millisecond
	probeMax     = time.Second
)

// Config holds connection parameters for the campaign store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// Standalone skips cluster topology discovery.
	Standalone bool
}

// Store is a read-only view of the campaign hashes.
type Store struct {
	client rueidis.Client
}

// NewStore dials Redis. Client-side caching is off: campaigns are read in
// full on every search and the cache would only hold stale ciphertext.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       cfg.Addrs,
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		DisableCache:      true,
		ForceSingleClient: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("dial campaign store: %w", err)
	}
	return &Store{client: client}, nil
}

// NewStoreForTest wraps a prepared rueidis client (test-only).
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady pings with doubling backoff until the store answers or
// timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wait := probeInitial
	for {
		err := s.Ping(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("campaign store not ready after %s: %w", timeout, err)
		case <-time.After(wait):
		}
		wait = min(wait*2, probeMax)
	}
}
