package store

import (
	"context"
	"time"
)

// Record is one observed lifecycle transition of a supervised service.
// Service is the configured service name, Op the lifecycle operation
// ("status", "start", "stop", "reload", or a custom command name), State
// the textual result state, PID the pid carried by the result (0 when
// none), and Msg any diagnostic text. OccurredAt should be in UTC.
type Record struct {
	ID         int64
	Service    string
	Op         string
	State      string
	PID        int
	Msg        string
	OccurredAt time.Time
}

// Store is an append-only journal of lifecycle transitions. The
// controller only ever writes to it; status decisions are always made
// from the pid file alone.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, rec Record) error
	Recent(ctx context.Context, service string, limit int) ([]Record, error)
	PurgeOlderThan(ctx context.Context, olderThan time.Time) (int64, error)
	Close() error
}
