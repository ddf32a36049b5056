package input

import (
	"sync"
)

// GestureKind identifies one aggregated gesture stream.
type GestureKind int

const (
	// GestureDrag is a pointer drag. DeltaX/DeltaY accumulate pixel motion while Active is true.
	GestureDrag GestureKind = iota
	// GestureWheel is a scroll wheel. Delta accumulates wheel units, positive zooms in.
	GestureWheel
	// GesturePinch is a two-finger pinch. Delta accumulates the change in finger distance, positive zooms in.
	GesturePinch
)

// String returns the gesture kind's name.
func (k GestureKind) String() string {
	switch k {
	case GestureDrag:
		return "drag"
	case GestureWheel:
		return "wheel"
	case GesturePinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// Gesture is the aggregated state of one gesture kind since the last Reset.
type Gesture struct {
	// Active reports whether the gesture was held at any point since the last Reset, so a
	// press and release inside one tick still counts.
	Active bool
	// DeltaX and DeltaY accumulate drag motion in pixels.
	DeltaX, DeltaY float64
	// Delta accumulates wheel units or pinch distance.
	Delta float64
}

// GestureSource is the host-side gesture aggregation query consumed by the fusion step.
// Deltas are tick-local: the consumer calls Reset at the end of every tick.
type GestureSource interface {
	// Gesture returns the aggregated state for a gesture kind.
	//
	// Parameters:
	//   - kind: the gesture kind to query
	//
	// Returns:
	//   - Gesture: the accumulated state since the last Reset
	Gesture(kind GestureKind) Gesture

	// Reset clears accumulated deltas. Held state (Active) survives.
	Reset()
}

// Snapshot is the state of every gesture kind captured in one step.
type Snapshot struct {
	Drag, Wheel, Pinch Gesture
}

// Snapshotter is implemented by gesture sources that can read and reset all gestures
// under a single lock, so no event is lost between the read and the reset.
type Snapshotter interface {
	// Snapshot returns every gesture and resets deltas atomically.
	//
	// Returns:
	//   - Snapshot: the accumulated state since the previous reset
	Snapshot() Snapshot
}

// TakeSnapshot reads and resets src, atomically when src is a Snapshotter.
//
// Parameters:
//   - src: the gesture source
//
// Returns:
//   - Snapshot: the accumulated state since the previous reset
func TakeSnapshot(src GestureSource) Snapshot {
	if s, ok := src.(Snapshotter); ok {
		return s.Snapshot()
	}
	snap := Snapshot{
		Drag:  src.Gesture(GestureDrag),
		Wheel: src.Gesture(GestureWheel),
		Pinch: src.Gesture(GesturePinch),
	}
	src.Reset()
	return snap
}

// Aggregator collects raw pointer, wheel and pinch events from a window or host event
// stream and exposes them as a GestureSource.
// Thread-safe: event callbacks and the tick loop may run on different goroutines.
type Aggregator interface {
	GestureSource
	Snapshotter

	// PointerDown starts a drag at the given position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerDown(x, y float64)

	// PointerMove accumulates drag motion if a drag is active.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float64)

	// PointerUp ends the active drag.
	PointerUp()

	// Wheel accumulates a wheel delta. Positive values zoom in.
	//
	// Parameters:
	//   - delta: wheel units
	Wheel(delta float64)

	// PinchStart begins a pinch with the given finger distance.
	//
	// Parameters:
	//   - distance: distance between the two touch points in pixels
	PinchStart(distance float64)

	// PinchMove accumulates the change in finger distance if a pinch is active.
	//
	// Parameters:
	//   - distance: distance between the two touch points in pixels
	PinchMove(distance float64)

	// PinchEnd ends the active pinch.
	PinchEnd()
}

type aggregator struct {
	mu *sync.Mutex

	dragging     bool
	dragged      bool
	lastX, lastY float64
	drag         Gesture

	wheel Gesture

	pinching     bool
	pinched      bool
	lastDistance float64
	pinch        Gesture
}

var _ Aggregator = &aggregator{}

// NewAggregator creates an empty gesture aggregator.
//
// Returns:
//   - Aggregator: the aggregator
func NewAggregator() Aggregator {
	return &aggregator{mu: &sync.Mutex{}}
}

func (a *aggregator) Gesture(kind GestureKind) Gesture {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch kind {
	case GestureDrag:
		return a.dragLocked()
	case GestureWheel:
		return a.wheel
	case GesturePinch:
		return a.pinchLocked()
	default:
		return Gesture{}
	}
}

func (a *aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

func (a *aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := Snapshot{
		Drag:  a.dragLocked(),
		Wheel: a.wheel,
		Pinch: a.pinchLocked(),
	}
	a.resetLocked()
	return snap
}

func (a *aggregator) dragLocked() Gesture {
	g := a.drag
	g.Active = a.dragging || a.dragged
	return g
}

func (a *aggregator) pinchLocked() Gesture {
	g := a.pinch
	g.Active = a.pinching || a.pinched
	return g
}

func (a *aggregator) resetLocked() {
	a.drag = Gesture{}
	a.wheel = Gesture{}
	a.pinch = Gesture{}
	a.dragged = false
	a.pinched = false
}

func (a *aggregator) PointerDown(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dragging = true
	a.dragged = true
	a.lastX, a.lastY = x, y
}

func (a *aggregator) PointerMove(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.dragging {
		return
	}
	a.drag.DeltaX += x - a.lastX
	a.drag.DeltaY += y - a.lastY
	a.lastX, a.lastY = x, y
}

func (a *aggregator) PointerUp() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dragging = false
}

func (a *aggregator) Wheel(delta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wheel.Delta += delta
}

func (a *aggregator) PinchStart(distance float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinching = true
	a.pinched = true
	a.lastDistance = distance
}

func (a *aggregator) PinchMove(distance float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pinching {
		return
	}
	a.pinch.Delta += distance - a.lastDistance
	a.lastDistance = distance
}

func (a *aggregator) PinchEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinching = false
}
