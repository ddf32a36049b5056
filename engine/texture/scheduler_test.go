package texture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
	delay time.Duration
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{calls: map[string]int{}, fail: map[string]error{}}
}

func (l *fakeLoader) Load(ctx context.Context, rawURL string) (*common.Texture, error) {
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[rawURL]++
	if err := l.fail[rawURL]; err != nil {
		return nil, err
	}
	return &common.Texture{Source: rawURL}, nil
}

func (l *fakeLoader) count(rawURL string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[rawURL]
}

func waitFuture(t *testing.T, f Future) (*common.Texture, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-f.Done():
	case <-ctx.Done():
		t.Fatal("future did not resolve")
	}
	return f.Result()
}

func TestScheduleLoadsOnce(t *testing.T) {
	l := newFakeLoader()
	s := NewScheduler(l, WithWorkers(2))

	f := s.Schedule("a.jpg")
	tex, err := waitFuture(t, f)
	require.NoError(t, err)
	require.Equal(t, "a.jpg", tex.Source)
	require.Equal(t, 1, l.count("a.jpg"))
	require.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestScheduleSurfacesErrors(t *testing.T) {
	l := newFakeLoader()
	boom := errors.New("404")
	l.fail["missing.jpg"] = boom
	s := NewScheduler(l)

	_, err := waitFuture(t, s.Schedule("missing.jpg"))
	require.ErrorIs(t, err, boom)
}

func TestScheduleResolvesThroughPoster(t *testing.T) {
	l := newFakeLoader()
	queue := make(chan func(), 4)
	s := NewScheduler(l, WithPoster(PosterFunc(func(fn func()) { queue <- fn })))

	f := s.Schedule("b.jpg")

	var fn func()
	select {
	case fn = <-queue:
	case <-time.After(5 * time.Second):
		t.Fatal("load was never posted")
	}
	// not resolved until the owning goroutine drains the queue
	require.False(t, f.Resolved())
	fn()
	require.True(t, f.Resolved())
}

func TestScheduleConcurrentLoads(t *testing.T) {
	l := newFakeLoader()
	l.delay = 5 * time.Millisecond
	s := NewScheduler(l, WithWorkers(4), WithContext(context.Background()))

	urls := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"}
	futures := make([]Future, len(urls))
	for i, u := range urls {
		futures[i] = s.Schedule(u)
	}
	for i, f := range futures {
		tex, err := waitFuture(t, f)
		require.NoError(t, err)
		require.Equal(t, urls[i], tex.Source)
	}
}

func TestNewSchedulerRequiresLoader(t *testing.T) {
	require.Panics(t, func() { NewScheduler(nil) })
}

// blockingLoader hangs on the listed urls until release is closed.
type blockingLoader struct {
	hang    map[string]bool
	release chan struct{}
}

func (l *blockingLoader) Load(ctx context.Context, rawURL string) (*common.Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.hang[rawURL] {
		select {
		case <-l.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &common.Texture{Source: rawURL}, nil
}

func TestScheduleNeverBlocksCaller(t *testing.T) {
	l := &blockingLoader{hang: map[string]bool{"hang.jpg": true}, release: make(chan struct{})}
	t.Cleanup(func() { close(l.release) })
	s := NewScheduler(l, WithWorkers(1))

	returned := make(chan struct{})
	go func() {
		defer close(returned)
		for range 300 {
			s.Schedule("hang.jpg")
		}
	}()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatalf("Schedule blocked the caller with %d loads pending", s.Pending())
	}
	require.Equal(t, 300, s.Pending())
}

func TestScheduleHungLoadDoesNotStarveOthers(t *testing.T) {
	l := &blockingLoader{hang: map[string]bool{"hang.jpg": true}, release: make(chan struct{})}
	s := NewScheduler(l, WithWorkers(1), WithStallAfter(20*time.Millisecond))

	hung := s.Schedule("hang.jpg")
	tex, err := waitFuture(t, s.Schedule("ok.jpg"))
	require.NoError(t, err)
	require.Equal(t, "ok.jpg", tex.Source)
	require.False(t, hung.Resolved())

	// the stalled load still settles its own future
	close(l.release)
	tex, err = waitFuture(t, hung)
	require.NoError(t, err)
	require.Equal(t, "hang.jpg", tex.Source)
}

func TestScheduleContextCancelFailsQueuedLoads(t *testing.T) {
	l := &blockingLoader{hang: map[string]bool{"hang.jpg": true}, release: make(chan struct{})}
	t.Cleanup(func() { close(l.release) })
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(l, WithWorkers(1), WithContext(ctx))

	cancel()
	_, err := waitFuture(t, s.Schedule("later.jpg"))
	require.ErrorIs(t, err, context.Canceled)
}
