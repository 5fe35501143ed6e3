// Package audit persists one entry per execution record, in execution order,
// as the run produces them.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reconpipe/internal/scope"
)

const TimeLayout = "2006-01-02 15:04:05"

type Entry struct {
	RunID  string
	At     time.Time
	Task   string
	Result string
	Kind   string
}

type Sink interface {
	Begin(ctx context.Context, runID string, s scope.Scope) error
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Open builds the sink named by backend: "file", "sqlite" or "none".
func Open(backend, path string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "file":
		sink, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case "sqlite":
		sink, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case "none":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", backend)
	}
}

type Nop struct{}

func (Nop) Begin(context.Context, string, scope.Scope) error { return nil }
func (Nop) Record(context.Context, Entry) error              { return nil }
func (Nop) Close() error                                     { return nil }
