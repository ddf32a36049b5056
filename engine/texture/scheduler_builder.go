package texture

import (
	"context"
	"time"
)

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*scheduler)

// WithPoster routes future resolution through p, typically the viewer loop.
//
// Parameters:
//   - p: the poster
//
// Returns:
//   - SchedulerBuilderOption: functional option to set the poster
func WithPoster(p Poster) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.poster = p
	}
}

// WithWorkers sets the maximum number of concurrent loads. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SchedulerBuilderOption: functional option to set the worker count
func WithWorkers(n int) SchedulerBuilderOption {
	return func(s *scheduler) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithStallAfter sets how long one load may hold a worker before the next queued load
// gets the slot. Non-positive values are ignored.
//
// Parameters:
//   - d: the stall threshold
//
// Returns:
//   - SchedulerBuilderOption: functional option to set the stall threshold
func WithStallAfter(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d > 0 {
			s.stallAfter = d
		}
	}
}

// WithContext sets the context every load runs under. Cancelling it fails loads still in flight.
//
// Parameters:
//   - ctx: the base context
//
// Returns:
//   - SchedulerBuilderOption: functional option to set the context
func WithContext(ctx context.Context) SchedulerBuilderOption {
	return func(s *scheduler) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}
