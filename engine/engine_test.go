package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/stretchr/testify/require"
)

type failingBackend struct{}

func (failingBackend) BeginFrame(renderer.FrameView) error   { return errors.New("device lost") }
func (failingBackend) DrawObject(renderer.DrawCommand) error { return nil }
func (failingBackend) EndFrame() error                       { return nil }

func TestFrameStateDescribesViewport(t *testing.T) {
	e := NewEngine(WithViewport(800, 400), WithClipPlanes(0.5, 50), WithStrictProjection(true))
	now := time.Now()

	frame := e.FrameState(now)

	require.Equal(t, now, frame.Time)
	require.True(t, frame.Strict)
	require.Len(t, frame.SubViews, 1)
	require.Equal(t, common.Viewport{Width: 800, Height: 400}, frame.SubViews[0].Viewport)
	f, ok := common.DecomposePerspective(frame.SubViews[0].Projection)
	require.True(t, ok)
	require.InDelta(t, 2.0, f.Aspect, 1e-9)
	require.InDelta(t, 0.5, f.Near, 1e-9)
}

func TestStepTicksThenRenders(t *testing.T) {
	e := NewEngine()
	var order []string
	e.SetTickCallback(func(common.ViewState) { order = append(order, "tick") })
	e.SetRenderCallback(func(views []common.RenderView, err error) {
		require.NoError(t, err)
		require.Len(t, views, 1)
		order = append(order, "render")
	})

	state, err := e.Step(time.Now())
	require.NoError(t, err)
	require.Len(t, state.SubViews, 1)
	require.Equal(t, []string{"tick", "render"}, order)
	require.Equal(t, uint64(1), e.Viewer().Ticks())
	require.Equal(t, uint64(1), e.Viewer().Renderer().Frames())
}

func TestStepReportsRenderErrors(t *testing.T) {
	v := panorama.NewViewer(panorama.WithRenderer(
		renderer.NewRenderer(renderer.BackendTypeCustom, renderer.WithBackend(failingBackend{})),
	))
	e := NewEngine(WithViewer(v))

	_, err := e.Step(time.Now())
	require.ErrorContains(t, err, "device lost")
}

func TestRenderViewsCarryPublishedPose(t *testing.T) {
	state := common.ViewState{
		Pose:     common.IdentityPose(),
		SubViews: []common.SubView{{Viewport: common.Viewport{Width: 10, Height: 10}}, {Viewport: common.Viewport{X: 10, Width: 10, Height: 10}}},
	}

	views := RenderViews(state)

	require.Len(t, views, 2)
	require.Equal(t, state.Pose, views[1].Pose)
	require.Equal(t, state.SubViews[1].Viewport, views[1].Viewport)
}

func TestRunHeadlessUntilCancelled(t *testing.T) {
	e := NewEngine(WithTickRate(200))
	var ticks atomic.Int64
	e.SetTickCallback(func(common.ViewState) { ticks.Add(1) })
	ran := make(chan struct{})
	e.Post(func() { close(ran) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("posted function never ran")
	}
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestQuitStopsRun(t *testing.T) {
	e := NewEngine()
	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	e.Quit()
	e.Quit()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestSetTickRateBeforeRun(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(30)
	require.Equal(t, time.Second/30, e.engineTickRate)

	e.SetTickRate(0)
	require.Equal(t, time.Second/60, e.engineTickRate)
}
