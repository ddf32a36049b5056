package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/Carmen-Shannon/oxy-pano/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// Default host projection settings.
const (
	DefaultHostFov = math.Pi / 3
	DefaultNear    = 0.1
	DefaultFar     = 1000.0
)

// engine implements the Engine interface.
// Owns the single loop goroutine that drives the viewer.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	viewer panorama.Viewer
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool
	profileInterval  time.Duration

	engineTickRate time.Duration
	tickCallback   func(state common.ViewState)
	renderCallback func(views []common.RenderView, err error)
	keyCallback    func(keyCode uint32)

	viewportWidth  atomic.Int64
	viewportHeight atomic.Int64
	near, far      float64
	strict         bool
}

// Engine is the reference host: it runs the viewer's tick and render callbacks at a
// fixed rate on one goroutine, builds the per-frame host description, and optionally
// feeds window input into the viewer.
type Engine interface {
	// Viewer returns the driven viewer.
	//
	// Returns:
	//   - panorama.Viewer: the viewer
	Viewer() panorama.Viewer

	// Window returns the window, nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Post queues fn onto the loop goroutine. Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// EnableProfiler enables periodic loop statistics in the log.
	EnableProfiler()

	// DisableProfiler disables loop statistics.
	DisableProfiler()

	// SetTickRate sets the loop rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called on the loop after each viewer tick.
	//
	// Parameters:
	//   - callback: receives the state the viewer published
	SetTickCallback(callback func(state common.ViewState))

	// SetRenderCallback registers a function called on the loop after each render pass.
	//
	// Parameters:
	//   - callback: receives the rendered views and the backend error, if any
	SetRenderCallback(callback func(views []common.RenderView, err error))

	// SetKeyDownCallback registers a key handler. Key events are posted to the loop, so
	// the handler may touch the viewer.
	//
	// Parameters:
	//   - callback: receives the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetViewport sets the output size used for headless frames. Windowed engines track
	// the framebuffer size instead.
	//
	// Parameters:
	//   - width, height: the size in pixels
	SetViewport(width, height int)

	// FrameState builds the host frame description for now: one monocular sub-view
	// covering the viewport with a perspective projection.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - common.FrameState: the frame
	FrameState(now time.Time) common.FrameState

	// Step runs one tick and one render pass on the calling goroutine. Run calls it on
	// the loop; tests and embedding hosts may call it directly instead of Run.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - common.ViewState: the published state
	//   - error: the render error, if any
	Step(now time.Time) (common.ViewState, error)

	// Run starts the loop and blocks until ctx is cancelled, Quit is called or the window
	// closes. With a window, Run must be called on the main thread.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, otherwise nil
	Run(ctx context.Context) error

	// Quit signals the loop to stop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine with the provided options. Without WithViewer a default
// viewer is created.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
		profileInterval: time.Second,
		near:            DefaultNear,
		far:             DefaultFar,
	}
	e.viewportWidth.Store(1280)
	e.viewportHeight.Store(720)

	for _, opt := range options {
		opt(e)
	}

	if e.viewer == nil {
		e.viewer = panorama.NewViewer()
	}
	e.profiler = profiler.NewProfiler(e.profileInterval)

	if e.window != nil {
		if agg, ok := e.viewer.Gestures().(input.Aggregator); ok {
			window.BindGestures(e.window, agg)
		} else {
			common.Logger().Warn("engine: viewer gestures are host-provided, window input is not bound")
		}
		e.window.SetKeyDownCallback(func(keyCode uint32) {
			e.Post(func() {
				if e.keyCallback != nil {
					e.keyCallback(keyCode)
				}
			})
		})
		e.window.SetResizeCallback(func(width, height int) {
			common.Logger().Debug("engine: resized", "width", width, "height", height)
		})
	}

	return e
}

func (e *engine) Viewer() panorama.Viewer {
	return e.viewer
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Post(fn func()) {
	e.viewer.Post(fn)
}

func (e *engine) SetViewport(width, height int) {
	e.viewportWidth.Store(int64(width))
	e.viewportHeight.Store(int64(height))
}

func (e *engine) viewport() common.Viewport {
	if e.window != nil {
		return common.Viewport{Width: float64(e.window.Width()), Height: float64(e.window.Height())}
	}
	return common.Viewport{Width: float64(e.viewportWidth.Load()), Height: float64(e.viewportHeight.Load())}
}

func (e *engine) FrameState(now time.Time) common.FrameState {
	vp := e.viewport()
	return common.FrameState{
		Time: now,
		SubViews: []common.SubView{{
			Viewport:   vp,
			Projection: mgl64.Perspective(DefaultHostFov, common.SafeAspect(vp.Width, vp.Height), e.near, e.far),
		}},
		Strict: e.strict,
	}
}

// RenderViews pairs each published sub-view with the published pose, the way a host
// hands camera state back at render time.
//
// Parameters:
//   - state: the published view state
//
// Returns:
//   - []common.RenderView: one view per sub-view
func RenderViews(state common.ViewState) []common.RenderView {
	views := make([]common.RenderView, len(state.SubViews))
	for i, sv := range state.SubViews {
		views[i] = common.RenderView{
			Viewport:   sv.Viewport,
			Projection: sv.Projection,
			Pose:       state.Pose,
		}
	}
	return views
}

func (e *engine) Step(now time.Time) (common.ViewState, error) {
	state := e.viewer.Tick(e.FrameState(now))
	e.profiler.Count(profiler.CounterTick)
	if e.tickCallback != nil {
		e.tickCallback(state)
	}

	views := RenderViews(state)
	err := e.viewer.Render(views)
	e.profiler.Count(profiler.CounterRender)
	if err != nil {
		e.profiler.Count(profiler.CounterRenderError)
		common.Logger().Warn("engine: render failed", "error", err)
	}
	if e.renderCallback != nil {
		e.renderCallback(views, err)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Report(now)
	}
	return state, err
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine is already running")
	}
	defer e.running.Store(false)

	e.wg.Add(1)
	go e.handleEngine()

	if e.window != nil {
		closed := false
		e.window.SetUpdateCallback(func() {
			select {
			case <-ctx.Done():
				e.signalQuit()
			case <-e.quitChannel:
			default:
				return
			}
			// closing from the update callback keeps GLFW calls on the main thread
			closed = true
			_ = e.window.Close()
		})
		e.window.ProcessMessages()
		e.signalQuit()
		if !closed {
			_ = e.window.Close()
		}
	} else {
		select {
		case <-ctx.Done():
			e.signalQuit()
		case <-e.quitChannel:
		}
	}

	e.wg.Wait()
	return ctx.Err()
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the loop to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate loop in its own goroutine and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	// A panic inside the viewer stops the loop instead of the process.
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("engine: loop recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			_, _ = e.Step(now)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// EnableProfiler enables periodic loop statistics in the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables loop statistics.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the loop rate in frames per second.
// If the engine is running, the change takes effect on the next loop iteration.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}
	// Non-blocking send - if a change is pending, replace it
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called after each viewer tick.
func (e *engine) SetTickCallback(callback func(state common.ViewState)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called after each render pass.
func (e *engine) SetRenderCallback(callback func(views []common.RenderView, err error)) {
	e.renderCallback = callback
}

// SetKeyDownCallback registers the key handler run on the loop.
func (e *engine) SetKeyDownCallback(callback func(keyCode uint32)) {
	e.keyCallback = callback
}
