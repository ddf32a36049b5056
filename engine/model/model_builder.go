package model

// ModelBuilderOption is a functional option for configuring a Model via NewSphere.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the model name.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithRadius is an option builder that sets the sphere radius. Non-positive values are ignored.
//
// Parameters:
//   - radius: the sphere radius
//
// Returns:
//   - ModelBuilderOption: a function that applies the radius option to a model
func WithRadius(radius float64) ModelBuilderOption {
	return func(m *model) {
		if radius > 0 {
			m.radius = radius
		}
	}
}

// WithSegments is an option builder that sets the sphere tessellation. Values are raised
// to at least 3 around and 2 from pole to pole.
//
// Parameters:
//   - width: segments around the equator
//   - height: segments from pole to pole
//
// Returns:
//   - ModelBuilderOption: a function that applies the segments option to a model
func WithSegments(width, height int) ModelBuilderOption {
	return func(m *model) {
		m.widthSegments = width
		m.heightSegments = height
	}
}
