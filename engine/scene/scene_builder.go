package scene

import (
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/Carmen-Shannon/oxy-pano/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active upon creation.
//
// Parameters:
//   - active: true to activate the scene
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds GameObjects to the scene upon creation.
// Objects without an ID are assigned one in the order given.
//
// Parameters:
//   - objects: the GameObjects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			if obj.ID() == 0 {
				obj.SetID(s.nextID)
				s.nextID++
			}
			s.registry[obj.ID()] = obj
		}
	}
}

// WithReferenceFrame roots the scene at an entity upon creation.
//
// Parameters:
//   - e: the reference frame entity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithReferenceFrame(e entity.Entity) SceneBuilderOption {
	return func(s *scene) {
		s.frame = e
	}
}
