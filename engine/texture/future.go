package texture

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// Callback receives the outcome of a texture load.
type Callback func(tex *common.Texture, err error)

type future struct {
	mu       sync.Mutex
	done     chan struct{}
	tex      *common.Texture
	err      error
	resolved bool
	pending  []Callback
}

// Future is a texture that becomes available later. It resolves exactly once, with
// either a texture or an error, and every reader observes the same outcome.
//
// Safe for concurrent use.
type Future interface {
	// Resolve settles the future. Only the first call has any effect; pending callbacks
	// run synchronously on the resolving goroutine, in registration order.
	//
	// Parameters:
	//   - tex: the loaded texture, nil on failure
	//   - err: the load error, nil on success
	//
	// Returns:
	//   - bool: true if this call settled the future
	Resolve(tex *common.Texture, err error) bool

	// Then registers a callback for the outcome. If the future has already resolved
	// the callback runs immediately on the calling goroutine.
	//
	// Parameters:
	//   - cb: the callback
	Then(cb Callback)

	// Done returns a channel closed once the future resolves.
	//
	// Returns:
	//   - <-chan struct{}: the completion channel
	Done() <-chan struct{}

	// Wait blocks until the future resolves or ctx ends.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//
	// Returns:
	//   - *common.Texture: the texture on success
	//   - error: the load error, or ctx.Err() if the wait was abandoned
	Wait(ctx context.Context) (*common.Texture, error)

	// Result returns the outcome without blocking. Both values are nil until the future resolves.
	//
	// Returns:
	//   - *common.Texture: the texture, nil until resolved or on failure
	//   - error: the load error
	Result() (*common.Texture, error)

	// Resolved reports whether the future has settled.
	Resolved() bool
}

var _ Future = &future{}

// NewFuture creates an unresolved Future.
//
// Returns:
//   - Future: the new future
func NewFuture() Future {
	return &future{done: make(chan struct{})}
}

// Resolved creates a Future already settled with the given outcome.
//
// Parameters:
//   - tex: the texture
//   - err: the error
//
// Returns:
//   - Future: the settled future
func Resolved(tex *common.Texture, err error) Future {
	f := NewFuture()
	f.Resolve(tex, err)
	return f
}

func (f *future) Resolve(tex *common.Texture, err error) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.tex, f.err, f.resolved = tex, err, true
	pending := f.pending
	f.pending = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range pending {
		cb(tex, err)
	}
	return true
}

func (f *future) Then(cb Callback) {
	if cb == nil {
		return
	}
	f.mu.Lock()
	if !f.resolved {
		f.pending = append(f.pending, cb)
		f.mu.Unlock()
		return
	}
	tex, err := f.tex, f.err
	f.mu.Unlock()
	cb(tex, err)
}

func (f *future) Done() <-chan struct{} {
	return f.done
}

func (f *future) Wait(ctx context.Context) (*common.Texture, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *future) Result() (*common.Texture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tex, f.err
}

func (f *future) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}
