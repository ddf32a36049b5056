package model

import (
	"encoding/binary"
	"math"
)

// Default sphere tessellation.
const (
	DefaultSphereRadius         = 100.0
	DefaultSphereWidthSegments  = 60
	DefaultSphereHeightSegments = 40
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	radius                float64
	widthSegments         int
	heightSegments        int
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
}

// Model defines the interface for a panorama sphere mesh.
// The mesh is a UV sphere around the origin with Z up, whose texture coordinates map an
// equirectangular image: U follows longitude and V runs from the north pole (0) to the
// south pole (1). Vertex data is packed GPUVertex records and index data is uint32.
//
// A Model is immutable once built and may be shared by several game objects.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Radius returns the sphere radius in model units.
	//
	// Returns:
	//   - float64: the radius
	Radius() float64

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// VertexCount returns the number of vertices in the mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewSphere builds a UV sphere mesh for panorama projection.
//
// Parameters:
//   - options: functional options to configure the sphere
//
// Returns:
//   - Model: the sphere mesh
func NewSphere(options ...ModelBuilderOption) Model {
	m := &model{
		name:           "panorama-sphere",
		radius:         DefaultSphereRadius,
		widthSegments:  DefaultSphereWidthSegments,
		heightSegments: DefaultSphereHeightSegments,
	}
	for _, option := range options {
		option(m)
	}
	m.widthSegments = max(m.widthSegments, 3)
	m.heightSegments = max(m.heightSegments, 2)
	m.build()
	return m
}

// build generates the vertex grid and triangle list. The poles get one degenerate
// triangle row each, which is skipped.
func (m *model) build() {
	w, h := m.widthSegments, m.heightSegments
	vertex := GPUVertex{}
	stride := vertex.Size()

	m.vertexCount = (w + 1) * (h + 1)
	m.vertexData = make([]byte, 0, m.vertexCount*stride)
	for iy := 0; iy <= h; iy++ {
		v := float64(iy) / float64(h)
		theta := v * math.Pi
		for ix := 0; ix <= w; ix++ {
			u := float64(ix) / float64(w)
			phi := u * 2 * math.Pi
			nx := -math.Cos(phi) * math.Sin(theta)
			ny := math.Sin(phi) * math.Sin(theta)
			nz := math.Cos(theta)
			vertex = GPUVertex{
				Position: [3]float32{float32(m.radius * nx), float32(m.radius * ny), float32(m.radius * nz)},
				Normal:   [3]float32{float32(nx), float32(ny), float32(nz)},
				TexCoord: [2]float32{float32(u), float32(v)},
			}
			m.vertexData = append(m.vertexData, vertex.Marshal()...)
		}
	}

	row := w + 1
	indices := make([]uint32, 0, 3*w*(2*h-2))
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a := uint32(iy*row + ix + 1)
			b := uint32(iy*row + ix)
			c := uint32((iy+1)*row + ix)
			d := uint32((iy+1)*row + ix + 1)
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != h-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	m.indexCount = len(indices)
	m.indexData = make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(m.indexData[i*4:], idx)
	}
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Radius() float64 {
	return m.radius
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return float32(m.radius)
}
