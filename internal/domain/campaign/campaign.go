package campaign

import "time"

// Payload is a decrypted campaign table.
type Payload struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Campaign is a named upload of contact rows.
type Campaign struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Payload   Payload
}

// Result is the outcome of loading one campaign: a value or the error that
// kept it out of the response.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a loaded value.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Fail wraps a per-item failure.
func Fail[T any](err error) Result[T] { return Result[T]{Err: err} }

// Fold keeps the successful values in order and hands every failure to onErr.
func Fold[T any](results []Result[T], onErr func(error)) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			if onErr != nil {
				onErr(r.Err)
			}
			continue
		}
		out = append(out, r.Value)
	}
	return out
}
