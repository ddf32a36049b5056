package panorama

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// manualScheduler hands out futures the test resolves by hand.
type manualScheduler struct {
	mu      sync.Mutex
	futures map[string][]texture.Future
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{futures: make(map[string][]texture.Future)}
}

func (s *manualScheduler) Schedule(rawURL string) texture.Future {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := texture.NewFuture()
	s.futures[rawURL] = append(s.futures[rawURL], f)
	return f
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, fs := range s.futures {
		for _, f := range fs {
			if !f.Resolved() {
				n++
			}
		}
	}
	return n
}

func (s *manualScheduler) calls(rawURL string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.futures[rawURL])
}

func (s *manualScheduler) resolve(t *testing.T, rawURL string, tex *common.Texture, err error) {
	t.Helper()
	s.mu.Lock()
	fs := s.futures[rawURL]
	s.mu.Unlock()
	require.NotEmpty(t, fs, "no load scheduled for %s", rawURL)
	fs[len(fs)-1].Resolve(tex, err)
}

func testTexture(source string) *common.Texture {
	return &common.Texture{
		Source: source,
		Staging: common.TextureStagingData{
			Pixels: []byte{255, 255, 255, 255},
			Width:  1,
			Height: 1,
		},
		Sampler: common.EquirectangularSampler(),
	}
}

func float(v float64) *float64 {
	return &v
}

type transitionFixture struct {
	scheduler *manualScheduler
	registry  Registry
	eye       camera.VirtualEye
	scene     scene.Scene
	animator  animator.Animator
	tr        Transition
}

func newTransitionFixture(t *testing.T, urls ...string) *transitionFixture {
	t.Helper()
	f := &transitionFixture{scheduler: newManualScheduler()}
	f.registry = NewRegistry(f.scheduler)
	f.eye = camera.NewVirtualEye()
	f.scene = scene.NewScene("test")
	f.animator = animator.NewAnimator()
	f.tr = NewTransition(f.registry, f.eye, f.scene, f.animator)
	for _, url := range urls {
		_, _, err := f.registry.Register(Info{URL: url})
		require.NoError(t, err)
	}
	return f
}

func requireQuatNear(t *testing.T, want, got mgl64.Quat) {
	t.Helper()
	// q and -q are the same rotation
	if want.Dot(got) < 0 {
		got = got.Scale(-1)
	}
	require.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v, got %v", want, got)
}
