package core

import "context"

// DB is the process wide store handle: opened once at startup, injected into the
// repositories and closed on shutdown.
type DB interface {
	PingContext(ctx context.Context) error
	Close() error
}
