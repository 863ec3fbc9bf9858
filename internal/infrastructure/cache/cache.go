package cache

import (
	"context"
	"time"
)

// ReportCache holds rendered report payloads so dashboard refreshes do not
// re-aggregate the sales tables on every poll. Values are raw JSON; the
// caller owns the shape.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate drops every key under the given prefix. Called after
	// writes that change what reports would show.
	Invalidate(ctx context.Context, prefix string) error
}

// NoopReportCache disables caching. Used when Redis is not configured.
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopReportCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
