package adapter

import (
	"context"
	"time"
)

// Clock supplies the current time to use cases.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

type locationKey struct{}

// WithLocation attaches the caller's timezone to ctx. Period boundaries for
// recurring activities are evaluated in this location.
func WithLocation(ctx context.Context, loc *time.Location) context.Context {
	if loc == nil {
		return ctx
	}
	return context.WithValue(ctx, locationKey{}, loc)
}

// LocationFromContext returns the location set by WithLocation, or UTC.
func LocationFromContext(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(locationKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}
