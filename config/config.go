// package config loads viewer settings from a TOML file and OXYPANO_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/loader"
	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OXYPANO_TRANSITION_EASING.
const EnvPrefix = "OXYPANO"

// Config holds viewer configuration.
type Config struct {
	Camera     CameraConfig     `mapstructure:"camera"`
	Transition TransitionConfig `mapstructure:"transition"`
	Loader     LoaderConfig     `mapstructure:"loader"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Log        LogConfig        `mapstructure:"log"`
}

// CameraConfig holds fusion settings. Angles are in degrees.
type CameraConfig struct {
	Fov       float64 `mapstructure:"fov"`
	MinFov    float64 `mapstructure:"min_fov"`
	MaxFov    float64 `mapstructure:"max_fov"`
	ZoomScale float64 `mapstructure:"zoom_scale"`
	PitchDrag bool    `mapstructure:"pitch_drag"`
}

// TransitionConfig holds crossfade defaults.
type TransitionConfig struct {
	Duration     time.Duration `mapstructure:"duration"`
	Easing       string        `mapstructure:"easing"`
	SphereRadius float64       `mapstructure:"sphere_radius"`
}

// LoaderConfig holds texture loading settings.
type LoaderConfig struct {
	BaseDir         string        `mapstructure:"base_dir"`
	Workers         int           `mapstructure:"workers"`
	MaxTextureWidth int           `mapstructure:"max_texture_width"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
}

// EngineConfig holds the reference host loop settings.
type EngineConfig struct {
	TickRate        int           `mapstructure:"tick_rate"`
	ProfileInterval time.Duration `mapstructure:"profile_interval"`
	WindowWidth     int           `mapstructure:"window_width"`
	WindowHeight    int           `mapstructure:"window_height"`
	WindowTitle     string        `mapstructure:"window_title"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("camera.fov", 60.0)
	v.SetDefault("camera.min_fov", 22.5)
	v.SetDefault("camera.max_fov", 157.5)
	v.SetDefault("camera.zoom_scale", 0.02)
	v.SetDefault("camera.pitch_drag", false)

	v.SetDefault("transition.duration", panorama.DefaultTransitionDuration)
	v.SetDefault("transition.easing", "Linear")
	v.SetDefault("transition.sphere_radius", 100.0)

	v.SetDefault("loader.base_dir", ".")
	v.SetDefault("loader.workers", 2)
	v.SetDefault("loader.max_texture_width", loader.DefaultMaxTextureWidth)
	v.SetDefault("loader.http_timeout", 30*time.Second)

	v.SetDefault("engine.tick_rate", 60)
	v.SetDefault("engine.profile_interval", 5*time.Second)
	v.SetDefault("engine.window_width", 1280)
	v.SetDefault("engine.window_height", 720)
	v.SetDefault("engine.window_title", "oxy-pano")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from path, or from $OXYPANO_CONFIG, or from
// ~/.config/oxy-pano/config.toml, then applies OXYPANO_ environment overrides.
// A missing file is not an error; an unreadable or malformed one is.
//
// Parameters:
//   - path: an explicit config file, empty to search
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be parsed or a value is invalid
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "oxy-pano"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings no component can run with.
//
// Returns:
//   - error: the first invalid setting
func (c Config) Validate() error {
	if c.Camera.MinFov <= 0 || c.Camera.MaxFov >= 180 || c.Camera.MinFov > c.Camera.MaxFov {
		return fmt.Errorf("camera fov bounds must satisfy 0 < min_fov <= max_fov < 180, got [%v, %v]", c.Camera.MinFov, c.Camera.MaxFov)
	}
	if c.Transition.Duration < 0 {
		return fmt.Errorf("transition.duration must not be negative, got %s", c.Transition.Duration)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %d", c.Engine.TickRate)
	}
	return nil
}

// ViewerOptions maps the configuration onto viewer builder options. The loader is built
// from the Loader section.
//
// Returns:
//   - []panorama.ViewerBuilderOption: options for panorama.NewViewer
func (c Config) ViewerOptions() []panorama.ViewerBuilderOption {
	return []panorama.ViewerBuilderOption{
		panorama.WithFovBounds(mgl64.DegToRad(c.Camera.MinFov), mgl64.DegToRad(c.Camera.MaxFov)),
		panorama.WithFov(mgl64.DegToRad(c.Camera.Fov)),
		panorama.WithZoomScale(c.Camera.ZoomScale),
		panorama.WithPitchDrag(c.Camera.PitchDrag),
		panorama.WithTransitionDefaults(c.Transition.Duration, c.Transition.Easing),
		panorama.WithTransitionOptions(panorama.WithSphereRadius(c.Transition.SphereRadius)),
		panorama.WithLoader(loader.NewLoader(c.LoaderOptions()...)),
		panorama.WithLoaderWorkers(c.Loader.Workers),
	}
}

// LoaderOptions maps the Loader section onto loader builder options.
//
// Returns:
//   - []loader.LoaderBuilderOption: options for loader.NewLoader
func (c Config) LoaderOptions() []loader.LoaderBuilderOption {
	opts := []loader.LoaderBuilderOption{
		loader.WithBaseDir(c.Loader.BaseDir),
		loader.WithMaxTextureWidth(c.Loader.MaxTextureWidth),
	}
	if c.Loader.HTTPTimeout > 0 {
		opts = append(opts, loader.WithHTTPClient(&http.Client{Timeout: c.Loader.HTTPTimeout}))
	}
	return opts
}

// Logger builds the slog logger described by the Log section.
//
// Returns:
//   - *slog.Logger: a text or JSON logger writing to stderr
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
