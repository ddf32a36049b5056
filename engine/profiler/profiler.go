package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// Counter names the loop stage a sample belongs to.
type Counter int

const (
	// CounterTick counts viewer update ticks.
	CounterTick Counter = iota
	// CounterRender counts render passes.
	CounterRender
	// CounterRenderError counts render passes the backend rejected.
	CounterRenderError
	counterCount
)

// Stats is one reporting window's summary.
type Stats struct {
	Elapsed    time.Duration
	TickRate   float64
	RenderRate float64
	// RenderErrors is the number of failed render passes in the window.
	RenderErrors int
	// HeapMB is the live heap size.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB/s.
	AllocRateMB float64
	// NumGC is the cumulative GC count, MaxPause the longest pause in the window.
	NumGC    uint32
	MaxPause time.Duration
}

// Profiler counts loop activity and reports rates and memory statistics through the
// package logger once per interval.
type Profiler struct {
	mu             *sync.Mutex
	counts         [counterCount]int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler reporting every interval. Non-positive intervals default
// to one second.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Count records one event of kind c.
func (p *Profiler) Count(c Counter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[c]++
}

// Report logs and returns a summary once the interval has elapsed since the last report.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - Stats: the summary for the finished window
//   - bool: true if a window finished and was logged
func (p *Profiler) Report(now time.Time) (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Elapsed:      elapsed,
		TickRate:     float64(p.counts[CounterTick]) / elapsed.Seconds(),
		RenderRate:   float64(p.counts[CounterRender]) / elapsed.Seconds(),
		RenderErrors: p.counts[CounterRenderError],
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:        p.memStats.NumGC,
		MaxPause:     p.maxPauseSince(p.lastGCCount),
	}

	common.Logger().Info("profiler",
		"ticks_per_sec", s.TickRate,
		"renders_per_sec", s.RenderRate,
		"render_errors", s.RenderErrors,
		"heap_mb", s.HeapMB,
		"alloc_mb_per_sec", s.AllocRateMB,
		"gc", s.NumGC,
		"max_pause", s.MaxPause,
	)

	p.counts = [counterCount]int{}
	p.lastTime = now
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s, true
}

// maxPauseSince scans the GC pause ring buffer (last 256 pauses) for cycles after since.
func (p *Profiler) maxPauseSince(since uint32) time.Duration {
	gcCount := p.memStats.NumGC
	if gcCount-since > 256 {
		since = gcCount - 256
	}
	var maxPause uint64
	for i := since; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256]; pause > maxPause {
			maxPause = pause
		}
	}
	return time.Duration(maxPause)
}
