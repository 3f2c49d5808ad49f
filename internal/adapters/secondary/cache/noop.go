package cache

import (
	"context"

	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

// Noop is the listing cache used when Redis is not configured. Every lookup
// is a miss, so the dashboard always renders fresh.
type Noop struct{}

var _ ports.ListingCache = (*Noop)(nil)

func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) Get(context.Context) (string, bool, error) { return "", false, nil }

func (*Noop) Set(context.Context, string) error { return nil }

func (*Noop) Invalidate(context.Context) error { return nil }
