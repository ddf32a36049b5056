package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDragAccumulatesWhileActive(t *testing.T) {
	a := NewAggregator()

	a.PointerMove(50, 50) // ignored, no drag yet
	require.Equal(t, Gesture{}, a.Gesture(GestureDrag))

	a.PointerDown(10, 10)
	a.PointerMove(15, 12)
	a.PointerMove(20, 8)

	g := a.Gesture(GestureDrag)
	require.True(t, g.Active)
	require.Equal(t, 10.0, g.DeltaX)
	require.Equal(t, -2.0, g.DeltaY)

	// released drags stay active until the tick that consumes them resets
	a.PointerUp()
	require.True(t, a.Gesture(GestureDrag).Active)
	a.Reset()
	require.False(t, a.Gesture(GestureDrag).Active)
}

func TestResetClearsDeltasButKeepsHeldState(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(0, 0)
	a.PointerMove(5, 0)
	a.Wheel(2)
	a.PinchStart(100)
	a.PinchMove(120)

	a.Reset()

	drag := a.Gesture(GestureDrag)
	require.True(t, drag.Active)
	require.Zero(t, drag.DeltaX)
	require.Zero(t, a.Gesture(GestureWheel).Delta)
	pinch := a.Gesture(GesturePinch)
	require.True(t, pinch.Active)
	require.Zero(t, pinch.Delta)

	// motion after reset is measured from the last seen position
	a.PointerMove(8, 0)
	require.Equal(t, 3.0, a.Gesture(GestureDrag).DeltaX)
}

func TestWheelAndPinch(t *testing.T) {
	a := NewAggregator()
	a.Wheel(1)
	a.Wheel(-3)
	require.Equal(t, -2.0, a.Gesture(GestureWheel).Delta)

	a.PinchMove(50) // ignored
	a.PinchStart(100)
	a.PinchMove(90)
	a.PinchMove(130)
	require.Equal(t, 30.0, a.Gesture(GesturePinch).Delta)
	a.PinchEnd()
	require.False(t, a.Gesture(GesturePinch).Active)
}

func TestGestureKindString(t *testing.T) {
	require.Equal(t, "drag", GestureDrag.String())
	require.Equal(t, "unknown", GestureKind(42).String())
	require.Equal(t, Gesture{}, NewAggregator().Gesture(GestureKind(42)))
}

func TestQuickFlickWithinOneTickIsActive(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(0, 0)
	a.PointerMove(30, 0)
	a.PointerUp()
	a.PinchStart(100)
	a.PinchMove(110)
	a.PinchEnd()

	snap := a.Snapshot()
	require.True(t, snap.Drag.Active)
	require.Equal(t, 30.0, snap.Drag.DeltaX)
	require.True(t, snap.Pinch.Active)
	require.Equal(t, 10.0, snap.Pinch.Delta)

	next := a.Snapshot()
	require.Equal(t, Snapshot{}, next)
}

func TestSnapshotResetsAtomically(t *testing.T) {
	a := NewAggregator()
	a.PointerDown(0, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			a.PointerMove(float64(i), 0)
			a.Wheel(1)
		}
	}()

	var dx, wheel float64
	for range 50 {
		snap := a.Snapshot()
		dx += snap.Drag.DeltaX
		wheel += snap.Wheel.Delta
	}
	wg.Wait()
	snap := a.Snapshot()
	dx += snap.Drag.DeltaX
	wheel += snap.Wheel.Delta

	require.Equal(t, 1000.0, dx)
	require.Equal(t, 1000.0, wheel)
}

type plainSource struct {
	g      map[GestureKind]Gesture
	resets int
}

func (p *plainSource) Gesture(kind GestureKind) Gesture { return p.g[kind] }
func (p *plainSource) Reset()                          { p.resets++ }

func TestTakeSnapshotFallsBackToGestureAndReset(t *testing.T) {
	src := &plainSource{g: map[GestureKind]Gesture{
		GestureDrag:  {Active: true, DeltaX: 4},
		GestureWheel: {Delta: 2},
	}}
	snap := TakeSnapshot(src)
	require.Equal(t, 4.0, snap.Drag.DeltaX)
	require.Equal(t, 2.0, snap.Wheel.Delta)
	require.Equal(t, 1, src.resets)

	a := NewAggregator()
	a.Wheel(3)
	require.Equal(t, 3.0, TakeSnapshot(a).Wheel.Delta)
	require.Zero(t, a.Gesture(GestureWheel).Delta)
}
