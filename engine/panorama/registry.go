package panorama

import (
	"math"
	"sort"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/go-gl/mathgl/mgl64"
)

// Info describes a panorama at registration.
type Info struct {
	// URL is the unique key and the image source. Required.
	URL string `json:"url"`
	// Longitude and Latitude, in degrees, geo-anchor the panorama when both are set.
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	// Height is meters above the ellipsoid; zero when unset.
	Height *float64 `json:"height,omitempty"`
	// OffsetDegrees yaws the rendered sphere.
	OffsetDegrees *float64 `json:"offsetDegrees,omitempty"`
}

// Panorama is a registry entry.
type Panorama struct {
	// Info is the registration input.
	Info Info
	// Anchor is the geo-derived anchor entity, nil when the panorama is not geo-anchored.
	Anchor entity.Entity
	// Texture resolves once with the decoded image or a *LoadError.
	Texture texture.Future
}

// URL returns the panorama's key.
func (p *Panorama) URL() string {
	return p.Info.URL
}

// OffsetRadians returns the sphere yaw correction in radians, zero when unset.
func (p *Panorama) OffsetRadians() float64 {
	if p.Info.OffsetDegrees == nil {
		return 0
	}
	return mgl64.DegToRad(*p.Info.OffsetDegrees)
}

// registry is the implementation of the Registry interface.
type registry struct {
	scheduler texture.Scheduler
	entries   map[string]*Panorama
}

// Registry is the in-memory store of known panoramas keyed by URL.
//
// Not safe for concurrent use; the registry is owned by the viewer loop.
type Registry interface {
	// Register validates info, derives the anchor entity, starts the texture load and
	// inserts the entry, replacing any entry under the same URL. The load starts
	// immediately and never blocks.
	//
	// Parameters:
	//   - info: the panorama description
	//
	// Returns:
	//   - *Panorama: the new entry
	//   - texture.Future: resolves with the texture or a *LoadError
	//   - error: a *ValidationError if the URL is empty or a coordinate is not finite
	Register(info Info) (*Panorama, texture.Future, error)

	// Unregister removes the entry for url. Removing an absent URL is a no-op.
	//
	// Parameters:
	//   - url: the panorama key
	//
	// Returns:
	//   - bool: true if an entry was removed
	Unregister(url string) bool

	// Lookup returns the entry for url.
	//
	// Parameters:
	//   - url: the panorama key
	//
	// Returns:
	//   - *Panorama: the entry, nil when absent
	//   - bool: true if found
	Lookup(url string) (*Panorama, bool)

	// Len returns the number of registered panoramas.
	Len() int

	// URLs returns the registered keys in sorted order.
	URLs() []string
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry that loads textures through scheduler.
//
// Parameters:
//   - scheduler: the texture load scheduler
//
// Returns:
//   - Registry: the new registry
func NewRegistry(scheduler texture.Scheduler) Registry {
	if scheduler == nil {
		panic("panorama: NewRegistry requires a non-nil Scheduler")
	}
	return &registry{
		scheduler: scheduler,
		entries:   make(map[string]*Panorama),
	}
}

func (r *registry) Register(info Info) (*Panorama, texture.Future, error) {
	if err := validateInfo(info); err != nil {
		return nil, nil, err
	}

	p := &Panorama{
		Info:   info,
		Anchor: anchorFor(info),
	}

	// wrap failures once so every reader of the entry sees the same *LoadError
	loaded := texture.NewFuture()
	r.scheduler.Schedule(info.URL).Then(func(tex *common.Texture, err error) {
		if err != nil {
			err = &LoadError{URL: info.URL, Err: err}
		}
		loaded.Resolve(tex, err)
	})
	p.Texture = loaded

	if _, replaced := r.entries[info.URL]; replaced {
		common.Logger().Info("panorama: re-registered", "url", info.URL)
	} else {
		common.Logger().Info("panorama: registered", "url", info.URL, "anchored", p.Anchor != nil)
	}
	r.entries[info.URL] = p
	return p, loaded, nil
}

func (r *registry) Unregister(url string) bool {
	if _, ok := r.entries[url]; !ok {
		return false
	}
	delete(r.entries, url)
	common.Logger().Info("panorama: unregistered", "url", url)
	return true
}

func (r *registry) Lookup(url string) (*Panorama, bool) {
	p, ok := r.entries[url]
	return p, ok
}

func (r *registry) Len() int {
	return len(r.entries)
}

func (r *registry) URLs() []string {
	urls := make([]string, 0, len(r.entries))
	for url := range r.entries {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

func validateInfo(info Info) error {
	if info.URL == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	fields := []struct {
		name string
		v    *float64
	}{
		{"longitude", info.Longitude},
		{"latitude", info.Latitude},
		{"height", info.Height},
		{"offsetDegrees", info.OffsetDegrees},
	}
	for _, f := range fields {
		if f.v != nil && !common.IsFinite(*f.v) {
			return &ValidationError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	if info.Latitude != nil && math.Abs(*info.Latitude) > 90 {
		return &ValidationError{Field: "latitude", Reason: "must be within [-90, 90]"}
	}
	return nil
}

// anchorFor derives the anchor entity from the geo fields: positioned at the geodetic
// point and oriented with the local East-North-Up frame. Nil unless both longitude and
// latitude are present.
//
// TODO: fold OffsetDegrees into the anchor heading once drag yaw and sphere yaw agree on
// a single source for the correction; today it only rotates the rendered sphere.
func anchorFor(info Info) entity.Entity {
	if info.Longitude == nil || info.Latitude == nil {
		return nil
	}
	c := common.Cartographic{
		Longitude: *info.Longitude,
		Latitude:  *info.Latitude,
	}
	if info.Height != nil {
		c.Height = *info.Height
	}
	return entity.NewEntity(
		entity.WithName(info.URL),
		entity.WithCartographic(c, common.HeadingPitchRoll{}),
	)
}
