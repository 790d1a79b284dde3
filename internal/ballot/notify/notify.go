// Package notify fans recorded notifications out to external consumers.
package notify

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
)

// Publisher receives every notification after the command that produced it
// has committed. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
	Close() error
}

// Noop drops everything. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Notification) error { return nil }
func (Noop) Close() error                                       { return nil }
