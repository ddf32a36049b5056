package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OXYPANO_CONFIG", "")

	c, err := Load("")
	require.NoError(t, err)

	require.InDelta(t, 22.5, c.Camera.MinFov, 1e-12)
	require.InDelta(t, 157.5, c.Camera.MaxFov, 1e-12)
	require.InDelta(t, 0.02, c.Camera.ZoomScale, 1e-12)
	require.Equal(t, time.Second, c.Transition.Duration)
	require.Equal(t, "Linear", c.Transition.Easing)
	require.Equal(t, 60, c.Engine.TickRate)
	require.Equal(t, 8192, c.Loader.MaxTextureWidth)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[transition]
duration = "250ms"
easing = "Cubic.InOut"

[camera]
pitch_drag = true

[loader]
base_dir = "/srv/panoramas"
`)
	t.Setenv("OXYPANO_ENGINE_TICK_RATE", "30")

	c, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 250*time.Millisecond, c.Transition.Duration)
	require.Equal(t, "Cubic.InOut", c.Transition.Easing)
	require.True(t, c.Camera.PitchDrag)
	require.Equal(t, "/srv/panoramas", c.Loader.BaseDir)
	require.Equal(t, 30, c.Engine.TickRate)
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, "Linear", c.Transition.Easing)
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[transition\nduration ="))
	require.Error(t, err)
}

func TestLoadRejectsInvertedFovBounds(t *testing.T) {
	_, err := Load(writeConfig(t, "[camera]\nmin_fov = 120\nmax_fov = 30\n"))
	require.ErrorContains(t, err, "fov bounds")
}

func TestViewerOptionsBuildAViewer(t *testing.T) {
	path := writeConfig(t, "[camera]\nfov = 90\n")
	c, err := Load(path)
	require.NoError(t, err)

	v := panorama.NewViewer(c.ViewerOptions()...)

	require.InDelta(t, 1.5707963267948966, v.Eye().Fov(), 1e-12)
	require.InDelta(t, 0.02, v.Controller().ZoomScale(), 1e-12)
	require.False(t, v.Controller().PitchDragEnabled())
}

func TestLoggerHonoursLevel(t *testing.T) {
	c := Config{Log: LogConfig{Level: "debug", Format: "json"}}
	require.True(t, c.Logger().Enabled(t.Context(), -4))

	c.Log.Level = "nonsense"
	require.False(t, c.Logger().Enabled(t.Context(), -4))
}
