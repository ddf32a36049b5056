package animator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// TweenSpec describes a single scalar animation.
type TweenSpec struct {
	// From and To are the start and end values.
	From, To float64
	// Duration is the length of the tween. Zero or negative completes on the next Update.
	Duration time.Duration
	// Easing shapes the progress curve. Nil means linear.
	Easing EasingFunc
	// OnUpdate receives the eased value on every Update while the tween is running.
	OnUpdate func(value float64)
	// OnComplete runs once after the final OnUpdate. It does not run when the tween is cancelled.
	OnComplete func()
}

// Tween is a handle to a running or finished animation.
type Tween interface {
	// ID returns the animator-unique tween id.
	ID() uint64

	// Value returns the most recently computed value.
	Value() float64

	// Progress returns the linear progress in [0,1].
	Progress() float64

	// Running reports whether the tween is still scheduled.
	Running() bool

	// Cancel stops the tween without running its completion callback. No-op once stopped.
	Cancel()
}

// tween is the implementation of Tween.
type tween struct {
	id      uint64
	spec    TweenSpec
	owner   *animator
	elapsed time.Duration
	value   float64
	running bool
}

var _ Tween = &tween{}

func (t *tween) ID() uint64 {
	return t.id
}

func (t *tween) Value() float64 {
	return t.value
}

func (t *tween) Progress() float64 {
	if t.spec.Duration <= 0 {
		if t.running {
			return 0
		}
		return 1
	}
	return common.Clamp(float64(t.elapsed)/float64(t.spec.Duration), 0, 1)
}

func (t *tween) Running() bool {
	return t.running
}

func (t *tween) Cancel() {
	if !t.running {
		return
	}
	t.running = false
	t.owner.remove(t.id)
}

// animator is the implementation of the Animator interface.
type animator struct {
	nextID uint64
	tweens map[uint64]*tween
	order  []uint64
}

// Animator is the tween clock. It advances every running tween by the elapsed time
// handed to Update, invoking their callbacks in start order.
//
// Not safe for concurrent use; the animator is driven from the viewer loop.
type Animator interface {
	// Start schedules a new tween. The tween's value is From until the next Update.
	//
	// Parameters:
	//   - spec: the tween description
	//
	// Returns:
	//   - Tween: a handle to the scheduled tween
	Start(spec TweenSpec) Tween

	// Update advances every running tween by dt. A zero dt recomputes values without
	// moving the clock, so repeated zero-length updates are idempotent. Negative dt is
	// treated as zero. Tweens started from inside a callback are first advanced on the
	// next Update.
	//
	// Parameters:
	//   - dt: the elapsed time since the previous Update
	Update(dt time.Duration)

	// Cancel stops the tween with the given id without running its completion callback.
	//
	// Parameters:
	//   - id: the tween id
	//
	// Returns:
	//   - bool: true if a running tween was cancelled
	Cancel(id uint64) bool

	// CancelAll stops every running tween without running completion callbacks.
	CancelAll()

	// Len returns the number of running tweens.
	//
	// Returns:
	//   - int: the running tween count
	Len() int
}

var _ Animator = &animator{}

// NewAnimator creates an empty Animator.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the newly created animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		tweens: make(map[uint64]*tween),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animator) Start(spec TweenSpec) Tween {
	if spec.Easing == nil {
		spec.Easing = linear
	}
	a.nextID++
	t := &tween{
		id:      a.nextID,
		spec:    spec,
		owner:   a,
		value:   spec.From,
		running: true,
	}
	a.tweens[t.id] = t
	a.order = append(a.order, t.id)
	return t
}

func (a *animator) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	// snapshot so callbacks may start or cancel tweens
	ids := append([]uint64(nil), a.order...)
	for _, id := range ids {
		t, ok := a.tweens[id]
		if !ok || !t.running {
			continue
		}
		a.step(t, dt)
	}
}

// step advances a single tween and finishes it once its progress reaches 1.
func (a *animator) step(t *tween, dt time.Duration) {
	t.elapsed += dt
	k := 1.0
	if t.spec.Duration > 0 {
		k = common.Clamp(float64(t.elapsed)/float64(t.spec.Duration), 0, 1)
	}
	t.value = t.spec.From + (t.spec.To-t.spec.From)*t.spec.Easing(k)
	if k >= 1 {
		t.value = t.spec.To
	}
	if t.spec.OnUpdate != nil {
		t.spec.OnUpdate(t.value)
	}
	if k < 1 || !t.running {
		return
	}
	t.running = false
	a.remove(t.id)
	if t.spec.OnComplete != nil {
		t.spec.OnComplete()
	}
}

func (a *animator) Cancel(id uint64) bool {
	t, ok := a.tweens[id]
	if !ok || !t.running {
		return false
	}
	t.Cancel()
	return true
}

func (a *animator) CancelAll() {
	for _, t := range a.tweens {
		t.running = false
	}
	a.tweens = make(map[uint64]*tween)
	a.order = a.order[:0]
}

func (a *animator) Len() int {
	return len(a.tweens)
}

// remove drops a tween from the schedule, preserving start order.
func (a *animator) remove(id uint64) {
	if _, ok := a.tweens[id]; !ok {
		return
	}
	delete(a.tweens, id)
	for i, other := range a.order {
		if other == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}
