package scene

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/Carmen-Shannon/oxy-pano/engine/game_object"
)

// Scene manages a registry of GameObjects positioned relative to a reference frame.
// The reference frame is the entity the panorama spheres are anchored to; renderers
// compute view matrices in that frame so object transforms stay small even when the
// frame sits at Earth-centered coordinates.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// ReferenceFrame returns the entity the scene is expressed in, or nil for the world origin.
	//
	// Returns:
	//   - entity.Entity: the reference frame entity or nil
	ReferenceFrame() entity.Entity

	// SetReferenceFrame re-roots the scene at an entity. Pass nil for the world origin.
	//
	// Parameters:
	//   - e: the reference frame entity
	SetReferenceFrame(e entity.Entity)

	// FramePose returns the world pose of the reference frame.
	//
	// Returns:
	//   - common.Pose: the reference frame pose, identity when unset
	FramePose() common.Pose

	// Count returns the number of GameObjects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add adds a GameObject to the scene. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID. No-op if absent.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	Clear()

	// DrawList returns the enabled objects sorted by ascending render order, ties broken by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects to draw, in draw order
	DrawList() []game_object.GameObject
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64

	frame entity.Entity

	// drawPool is reused across DrawList calls to avoid per-frame allocations.
	drawPool []game_object.GameObject
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new, active Scene rooted at the world origin.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		active:   true,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) ReferenceFrame() entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *scene) SetReferenceFrame(e entity.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = e
}

func (s *scene) FramePose() common.Pose {
	return entity.PoseOf(s.ReferenceFrame())
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: cannot Add a nil GameObject")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) DrawList() []game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawPool = s.drawPool[:0]
	for _, obj := range s.registry {
		if obj.Enabled() {
			s.drawPool = append(s.drawPool, obj)
		}
	}
	sort.Slice(s.drawPool, func(i, j int) bool {
		a, b := s.drawPool[i], s.drawPool[j]
		if a.RenderOrder() != b.RenderOrder() {
			return a.RenderOrder() < b.RenderOrder()
		}
		return a.ID() < b.ID()
	})
	out := make([]game_object.GameObject, len(s.drawPool))
	copy(out, s.drawPool)
	return out
}
