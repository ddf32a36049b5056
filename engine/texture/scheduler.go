package texture

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/loader"
)

// Poster queues a function onto the goroutine that owns viewer state.
type Poster interface {
	// Post schedules fn to run on the owning goroutine.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func())

// Post calls p(fn).
func (p PosterFunc) Post(fn func()) {
	p(fn)
}

// DefaultStallAfter is how long a worker waits on a single load before giving its slot
// to the next queued load. The stalled load keeps running and still settles its future.
const DefaultStallAfter = 10 * time.Second

// job is one queued load.
type job struct {
	url    string
	future Future
}

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	ctx        context.Context
	loader     loader.Loader
	poster     Poster
	workers    int
	stallAfter time.Duration

	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	taskID   atomic.Int64
	pending  atomic.Int64

	queueMu  sync.Mutex
	queue    []job
	wake     chan struct{}
	feedOnce sync.Once
}

// Scheduler runs texture loads on a worker pool and settles their futures on the
// viewer loop. Each Schedule call performs exactly one load.
type Scheduler interface {
	// Schedule starts an asynchronous load of rawURL. It never blocks: loads are queued
	// locally and handed to the worker pool by a feeder goroutine.
	//
	// Parameters:
	//   - rawURL: the image location
	//
	// Returns:
	//   - Future: resolves on the poster's goroutine once the load finishes
	Schedule(rawURL string) Future

	// Pending returns the number of loads that have not yet been handed to the poster.
	//
	// Returns:
	//   - int: the in-flight load count
	Pending() int
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a Scheduler loading through l. Without a Poster futures resolve
// on the worker goroutine.
//
// Parameters:
//   - l: the image loader
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(l loader.Loader, options ...SchedulerBuilderOption) Scheduler {
	if l == nil {
		panic("texture: NewScheduler requires a non-nil Loader")
	}
	s := &scheduler{
		ctx:        context.Background(),
		loader:     l,
		workers:    max(runtime.NumCPU()/2, 1),
		stallAfter: DefaultStallAfter,
		wake:       make(chan struct{}, 1),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// workerPool lazily creates the pool so schedulers that never load cost nothing.
// Queue size of 256 accommodates bursts of load commands with headroom.
func (s *scheduler) workerPool() worker.DynamicWorkerPool {
	s.poolOnce.Do(func() {
		s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	})
	return s.pool
}

func (s *scheduler) Schedule(rawURL string) Future {
	f := NewFuture()
	s.pending.Add(1)

	s.queueMu.Lock()
	s.queue = append(s.queue, job{url: rawURL, future: f})
	s.queueMu.Unlock()

	s.feedOnce.Do(func() { go s.feed() })
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return f
}

// feed moves queued jobs into the worker pool in FIFO order. SubmitTask blocks while the
// pool queue is full, which only ever stalls this goroutine.
func (s *scheduler) feed() {
	for {
		select {
		case <-s.wake:
		case <-s.ctx.Done():
			s.failQueued(s.ctx.Err())
			return
		}
		for {
			s.queueMu.Lock()
			if len(s.queue) == 0 {
				s.queueMu.Unlock()
				break
			}
			j := s.queue[0]
			s.queue = s.queue[1:]
			s.queueMu.Unlock()

			s.workerPool().SubmitTask(worker.Task{
				ID: int(s.taskID.Add(1)),
				Do: func() (any, error) {
					s.run(j)
					return nil, nil
				},
			})
		}
	}
}

// run performs one load, holding the worker until it finishes or stallAfter elapses.
func (s *scheduler) run(j job) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		tex, err := s.loader.Load(s.ctx, j.url)
		if err != nil {
			common.Logger().Warn("texture: load failed", "url", j.url, "error", err)
		}
		s.pending.Add(-1)
		s.settle(j.future, tex, err)
	}()

	timer := time.NewTimer(s.stallAfter)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		common.Logger().Warn("texture: load stalled, releasing worker", "url", j.url, "after", s.stallAfter)
	}
}

// failQueued settles every job that never reached the pool.
func (s *scheduler) failQueued(err error) {
	s.queueMu.Lock()
	queued := s.queue
	s.queue = nil
	s.queueMu.Unlock()
	for _, j := range queued {
		s.pending.Add(-1)
		s.settle(j.future, nil, err)
	}
}

// settle resolves f on the poster's goroutine when one is configured.
func (s *scheduler) settle(f Future, tex *common.Texture, err error) {
	if s.poster == nil {
		f.Resolve(tex, err)
		return
	}
	s.poster.Post(func() {
		f.Resolve(tex, err)
	})
}

func (s *scheduler) Pending() int {
	return int(s.pending.Load())
}
