package window

import "github.com/Carmen-Shannon/oxy-pano/engine/input"

// BindGestures routes the window's pointer and wheel events into agg: left-drag becomes
// a drag gesture and the vertical scroll offset a wheel delta.
//
// Parameters:
//   - w: the window
//   - agg: the gesture aggregator the viewer reads each tick
func BindGestures(w Window, agg input.Aggregator) {
	w.SetPointerDownCallback(agg.PointerDown)
	w.SetPointerMoveCallback(agg.PointerMove)
	w.SetPointerUpCallback(agg.PointerUp)
	w.SetScrollCallback(agg.Wheel)
}
