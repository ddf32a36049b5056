package panorama

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/Carmen-Shannon/oxy-pano/engine/loader"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
)

// viewer is the implementation of the Viewer interface.
type viewer struct {
	queueMu *sync.Mutex
	queue   []func()

	loader     loader.Loader
	scheduler  texture.Scheduler
	registry   Registry
	gestures   input.GestureSource
	eye        camera.VirtualEye
	controller camera.FusionController
	publisher  camera.Publisher
	animator   animator.Animator
	scene      scene.Scene
	transition Transition
	renderer   renderer.Renderer

	eyeOptions        []camera.VirtualEyeBuilderOption
	controllerOptions []camera.FusionControllerOption
	transitionOptions []TransitionBuilderOption
	submitter         camera.StateSubmitter
	loaderWorkers     int

	lastTick time.Time
	ticks    uint64
}

// Viewer is the panorama viewer context: it owns the registry, the virtual eye, the
// fusion step, the transition engine and the scene, and drives them from the host's
// tick and render callbacks.
//
// Every method except Post must be called from the goroutine that calls Tick and Render.
// Other goroutines hand work to that goroutine with Post.
type Viewer interface {
	texture.Poster

	// Drain runs every posted function in submission order.
	//
	// Returns:
	//   - int: the number of functions run
	Drain() int

	// Load registers a panorama and starts its texture load.
	//
	// Parameters:
	//   - info: the panorama description
	//
	// Returns:
	//   - *Panorama: the registered entry
	//   - texture.Future: resolves once the texture loads, with a *LoadError on failure
	//   - error: a *ValidationError for bad input
	Load(info Info) (*Panorama, texture.Future, error)

	// Delete removes a panorama. Deleting an unknown url is a no-op. Deleting the shown
	// panorama clears the current pointer and leaves the spheres as they are.
	//
	// Parameters:
	//   - url: the panorama key
	//
	// Returns:
	//   - bool: true if an entry was removed
	Delete(url string) bool

	// Show crossfades to a registered panorama.
	//
	// Parameters:
	//   - url: the panorama key
	//   - opts: easing and duration overrides
	//
	// Returns:
	//   - error: *NotFoundError or *ValidationError
	Show(url string, opts TransitionOptions) error

	// Tick runs one update: posted work, input fusion, state publication and the
	// animation clock, in that order.
	//
	// Parameters:
	//   - frame: the host frame description
	//
	// Returns:
	//   - common.ViewState: the state submitted to the host
	Tick(frame common.FrameState) common.ViewState

	// Render draws the scene for the host-supplied views. Call it after Tick for the
	// same frame.
	//
	// Parameters:
	//   - views: one entry per sub-view
	//
	// Returns:
	//   - error: a wrapped backend error
	Render(views []common.RenderView) error

	// Current returns the panorama being shown, nil if none.
	Current() *Panorama

	Registry() Registry
	Eye() camera.VirtualEye
	Controller() camera.FusionController
	Transition() Transition
	Scene() scene.Scene
	Animator() animator.Animator
	Renderer() renderer.Renderer
	Gestures() input.GestureSource

	// Ticks returns the number of completed Tick calls.
	Ticks() uint64
}

var _ Viewer = &viewer{}

// NewViewer creates a Viewer. Without options it loads images from the local filesystem
// and over HTTP, reads gestures from its own aggregator and renders to the log backend.
//
// Parameters:
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
func NewViewer(options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		queueMu: &sync.Mutex{},
	}
	for _, option := range options {
		option(v)
	}

	if v.scheduler == nil {
		if v.loader == nil {
			v.loader = loader.NewLoader()
		}
		opts := []texture.SchedulerBuilderOption{texture.WithPoster(v)}
		if v.loaderWorkers > 0 {
			opts = append(opts, texture.WithWorkers(v.loaderWorkers))
		}
		v.scheduler = texture.NewScheduler(v.loader, opts...)
	}
	if v.gestures == nil {
		v.gestures = input.NewAggregator()
	}
	if v.renderer == nil {
		v.renderer = renderer.NewRenderer(renderer.BackendTypeLog)
	}

	v.registry = NewRegistry(v.scheduler)
	v.eye = camera.NewVirtualEye(v.eyeOptions...)
	v.controller = camera.NewFusionController(v.eye, v.gestures, v.controllerOptions...)
	v.publisher = camera.NewPublisher(v.eye, v.submitter)
	v.animator = animator.NewAnimator(animator.WithCapacity(2))
	v.scene = scene.NewScene("panorama")
	v.transition = NewTransition(v.registry, v.eye, v.scene, v.animator, v.transitionOptions...)
	return v
}

func (v *viewer) Post(fn func()) {
	if fn == nil {
		return
	}
	v.queueMu.Lock()
	v.queue = append(v.queue, fn)
	v.queueMu.Unlock()
}

func (v *viewer) Drain() int {
	v.queueMu.Lock()
	queued := v.queue
	v.queue = nil
	v.queueMu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (v *viewer) Load(info Info) (*Panorama, texture.Future, error) {
	return v.registry.Register(info)
}

func (v *viewer) Delete(url string) bool {
	if cur := v.transition.Current(); cur != nil && cur.URL() == url {
		common.Logger().Warn("panorama: deleting the shown panorama, rendering left as-is", "url", url)
		v.transition.ClearCurrent()
	}
	return v.registry.Unregister(url)
}

func (v *viewer) Show(url string, opts TransitionOptions) error {
	return v.transition.Show(url, opts)
}

func (v *viewer) Tick(frame common.FrameState) common.ViewState {
	v.Drain()

	var viewport common.Viewport
	if len(frame.SubViews) > 0 {
		viewport = frame.SubViews[0].Viewport
	}
	v.controller.Update(frame.Time, viewport)
	state := v.publisher.Publish(frame)

	var dt time.Duration
	if !v.lastTick.IsZero() && frame.Time.After(v.lastTick) {
		dt = frame.Time.Sub(v.lastTick)
	}
	if frame.Time.After(v.lastTick) {
		v.lastTick = frame.Time
	}
	v.animator.Update(dt)

	v.ticks++
	return state
}

func (v *viewer) Render(views []common.RenderView) error {
	v.Drain()
	return v.renderer.Render(v.scene, views)
}

func (v *viewer) Current() *Panorama {
	return v.transition.Current()
}

func (v *viewer) Registry() Registry {
	return v.registry
}

func (v *viewer) Eye() camera.VirtualEye {
	return v.eye
}

func (v *viewer) Controller() camera.FusionController {
	return v.controller
}

func (v *viewer) Transition() Transition {
	return v.transition
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Animator() animator.Animator {
	return v.animator
}

func (v *viewer) Renderer() renderer.Renderer {
	return v.renderer
}

func (v *viewer) Gestures() input.GestureSource {
	return v.gestures
}

func (v *viewer) Ticks() uint64 {
	return v.ticks
}
