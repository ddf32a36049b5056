package panorama

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTransitionDuration is the fade length used when a show request omits one.
const DefaultTransitionDuration = 1000 * time.Millisecond

// Slot scales. One axis is negated so the sphere faces inward; the incoming sphere is the
// larger one so the fading outgoing sphere sits in front of it.
var (
	IncomingScale = mgl64.Vec3{-1, 1, 1}
	OutgoingScale = mgl64.Vec3{-0.9, 0.9, 0.9}
)

// TransitionOptions holds the per-show fade parameters.
type TransitionOptions struct {
	// Easing names the fade curve, empty for the default.
	Easing string `json:"easing,omitempty"`
	// Duration is the fade length in milliseconds, nil for the default.
	Duration *float64 `json:"duration,omitempty"`
}

// TransitionState is the fade state machine's state.
type TransitionState int

const (
	// TransitionIdle means no fade is in flight.
	TransitionIdle TransitionState = iota
	// TransitionFading means an outgoing sphere is animating to transparent.
	TransitionFading
)

// String returns the state's name.
func (s TransitionState) String() string {
	switch s {
	case TransitionIdle:
		return "idle"
	case TransitionFading:
		return "fading"
	default:
		return "unknown"
	}
}

type slot struct {
	object game_object.GameObject
	// generation increments every time the slot becomes incoming, so a texture
	// resolving for an older show cannot bind into a reused slot.
	generation uint64
}

// transition is the implementation of the Transition interface.
type transition struct {
	registry Registry
	eye      camera.VirtualEye
	scene    scene.Scene
	animator animator.Animator

	slots      [2]slot
	active     int
	currentURL string

	fade            animator.Tween
	state           TransitionState
	defaultDuration time.Duration
	defaultEasing   string
}

// Transition is the two-slot crossfade engine. Show swaps the active sphere and fades the
// previous one out over the requested duration.
//
// Not safe for concurrent use; the transition is owned by the viewer loop.
type Transition interface {
	// Show makes url the current panorama and starts a crossfade. Showing the current
	// url again restarts the fade. Any fade in flight is cancelled without completing.
	//
	// Parameters:
	//   - url: the registered panorama to show
	//   - opts: easing and duration overrides
	//
	// Returns:
	//   - error: *NotFoundError for an unknown url, *ValidationError for a bad easing or
	//     duration; state is left untouched on error
	Show(url string, opts TransitionOptions) error

	// Current returns the panorama being shown, nil if none. The entry is looked up in the
	// registry, so a re-registered url yields the new entry and a removed one yields nil.
	//
	// Returns:
	//   - *Panorama: the current entry
	Current() *Panorama

	// ClearCurrent drops the current pointer without touching the spheres.
	ClearCurrent()

	// State returns the fade state.
	//
	// Returns:
	//   - TransitionState: Idle or Fading
	State() TransitionState

	// Active returns the index of the incoming slot.
	//
	// Returns:
	//   - int: 0 or 1
	Active() int

	// Slot returns the game object for slot i (0 or 1).
	//
	// Parameters:
	//   - i: the slot index
	//
	// Returns:
	//   - game_object.GameObject: the sphere
	Slot(i int) game_object.GameObject

	// Incoming returns the sphere shown by the latest Show.
	Incoming() game_object.GameObject

	// Outgoing returns the sphere being faded out.
	Outgoing() game_object.GameObject

	// Fade returns the in-flight fade tween, nil when idle.
	Fade() animator.Tween
}

var _ Transition = &transition{}

// NewTransition creates a Transition whose two spheres are added to s. The eye is
// re-anchored on every Show and the fade runs on anim.
//
// Parameters:
//   - registry: the panorama registry
//   - eye: the virtual eye
//   - s: the scene to draw the spheres in
//   - anim: the animation clock
//   - options: functional options to configure the transition
//
// Returns:
//   - Transition: the newly created transition
func NewTransition(registry Registry, eye camera.VirtualEye, s scene.Scene, anim animator.Animator, options ...TransitionBuilderOption) Transition {
	if registry == nil || eye == nil || s == nil || anim == nil {
		panic("panorama: NewTransition requires a registry, an eye, a scene and an animator")
	}
	t := &transition{
		registry:        registry,
		eye:             eye,
		scene:           s,
		animator:        anim,
		defaultDuration: DefaultTransitionDuration,
		defaultEasing:   animator.DefaultEasing,
	}
	cfg := &transitionConfig{radius: model.DefaultSphereRadius}
	for _, option := range options {
		option(t, cfg)
	}

	sphere := model.NewSphere(model.WithName("panorama-sphere"), model.WithRadius(cfg.radius))
	for i := range t.slots {
		obj := game_object.NewGameObject(
			game_object.WithName(slotName(i)),
			game_object.WithModel(sphere),
			game_object.WithMaterial(material.NewMaterial(material.WithName(slotName(i)))),
			game_object.WithScale(OutgoingScale),
			game_object.WithRenderOrder(i),
		)
		s.Add(obj)
		t.slots[i] = slot{object: obj}
	}
	return t
}

func slotName(i int) string {
	if i == 0 {
		return "panorama-slot-0"
	}
	return "panorama-slot-1"
}

func (t *transition) Show(url string, opts TransitionOptions) error {
	if url == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	entry, ok := t.registry.Lookup(url)
	if !ok {
		return &NotFoundError{URL: url}
	}
	easing, err := t.resolveEasing(opts.Easing)
	if err != nil {
		return err
	}
	duration, err := t.resolveDuration(opts.Duration)
	if err != nil {
		return err
	}

	t.currentURL = url
	t.eye.SetAnchor(entry.Anchor)
	t.scene.SetReferenceFrame(entry.Anchor)

	t.active = 1 - t.active
	in := &t.slots[t.active]
	out := &t.slots[1-t.active]

	in.generation++
	in.object.Material().Reset()
	t.bindWhenLoaded(in, entry)

	in.object.SetYaw(entry.OffsetRadians())
	in.object.SetScale(IncomingScale)
	in.object.SetRenderOrder(0)
	out.object.SetScale(OutgoingScale)
	out.object.SetRenderOrder(1)

	if t.fade != nil {
		t.fade.Cancel()
	}
	outMat := out.object.Material()
	t.state = TransitionFading
	t.fade = t.animator.Start(animator.TweenSpec{
		From:     1,
		To:       0,
		Duration: duration,
		Easing:   easing,
		OnUpdate: outMat.SetOpacity,
		OnComplete: func() {
			t.state = TransitionIdle
			t.fade = nil
		},
	})

	common.Logger().Debug("panorama: show", "url", url, "slot", t.active, "duration", duration)
	return nil
}

// bindWhenLoaded sets the slot's texture once the entry's future resolves, provided the
// slot has not been handed to a later show in the meantime.
func (t *transition) bindWhenLoaded(s *slot, entry *Panorama) {
	gen := s.generation
	mat := s.object.Material()
	entry.Texture.Then(func(tex *common.Texture, err error) {
		if err != nil {
			common.Logger().Warn("panorama: texture unavailable", "url", entry.URL(), "error", err)
			return
		}
		if s.generation != gen {
			return
		}
		mat.SetTexture(tex)
	})
}

func (t *transition) resolveEasing(name string) (animator.EasingFunc, error) {
	if name == "" {
		name = t.defaultEasing
	}
	fn, err := animator.ResolveEasing(name)
	if err != nil {
		return nil, &ValidationError{Field: "transition.easing", Reason: "unresolvable easing name", Err: err}
	}
	return fn, nil
}

func (t *transition) resolveDuration(ms *float64) (time.Duration, error) {
	if ms == nil {
		return t.defaultDuration, nil
	}
	if !common.IsFinite(*ms) || *ms < 0 {
		return 0, &ValidationError{Field: "transition.duration", Reason: "must be a non-negative number of milliseconds"}
	}
	return time.Duration(*ms * float64(time.Millisecond)), nil
}

func (t *transition) Current() *Panorama {
	if t.currentURL == "" {
		return nil
	}
	p, _ := t.registry.Lookup(t.currentURL)
	return p
}

func (t *transition) ClearCurrent() {
	t.currentURL = ""
}

func (t *transition) State() TransitionState {
	return t.state
}

func (t *transition) Active() int {
	return t.active
}

func (t *transition) Slot(i int) game_object.GameObject {
	return t.slots[i&1].object
}

func (t *transition) Incoming() game_object.GameObject {
	return t.slots[t.active].object
}

func (t *transition) Outgoing() game_object.GameObject {
	return t.slots[1-t.active].object
}

func (t *transition) Fade() animator.Tween {
	return t.fade
}
