package db

import "errors"

// ErrKeyNotFound signals a missing hash.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants name the failing operation for error context.
const (
	OpPing    = "PING"
	OpAcquire = "ACQUIRE"
	OpCount   = "COUNT"
	OpSelect  = "SELECT"
	OpGroupBy = "GROUP BY"
	OpHGetAll = "HGETALL"
	OpScan    = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
