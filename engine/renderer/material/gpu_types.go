package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned uniform for the panorama fragment shader.
// Size: 16 bytes (one vec4-sized block, std430 aligned).
type GPUMaterialParams struct {
	Opacity  float32    // offset 0: fragment alpha multiplier
	Textured uint32     // offset 4: 1 when a texture is bound, 0 draws the clear color
	_        [2]float32 // offset 8: padding to 16 bytes
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Opacity))
	binary.LittleEndian.PutUint32(buf[4:8], g.Textured)
	return buf
}
