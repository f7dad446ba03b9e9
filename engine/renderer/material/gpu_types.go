package material

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Material uniform flag bits. The low bits mirror the texture Slot order.
const (
	FlagMap             uint32 = 1 << SlotMap
	FlagAlphaMap        uint32 = 1 << SlotAlphaMap
	FlagAoMap           uint32 = 1 << SlotAoMap
	FlagDisplacementMap uint32 = 1 << SlotDisplacementMap
	FlagNormalMap       uint32 = 1 << SlotNormalMap
	FlagMetalnessMap    uint32 = 1 << SlotMetalnessMap
	FlagRoughnessMap    uint32 = 1 << SlotRoughnessMap
	FlagMatcap          uint32 = 1 << SlotMatcap
	FlagGradientMap     uint32 = 1 << SlotGradientMap
	FlagEnvMap          uint32 = 1 << SlotEnvMap
	FlagFlatShading     uint32 = 1 << 10
	FlagTransparent     uint32 = 1 << 12
)

// GPUMaterialUniformSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (192 bytes).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniformSize is the byte size of the MaterialUniform struct.
const GPUMaterialUniformSize = 192

// GPUMaterialUniform is the per-material uniform block.
// The two mat3x3 fields are laid out as three vec3 columns padded to 16 bytes each.
type GPUMaterialUniform struct {
	Color        [4]float32 // offset   0: rgb + opacity
	Emissive     [4]float32 // offset  16
	Specular     [4]float32 // offset  32: rgb + shininess
	Params       [4]float32 // offset  48: metalness, roughness, aoMapIntensity, displacementScale
	Params2      [4]float32 // offset  64: normalScale.xy, displacementBias, envMapIntensity
	Kind         uint32     // offset  80
	Flags        uint32     // offset  84
	Side         uint32     // offset  88
	UVTransform  mgl32.Mat3 // offset  96
	UV2Transform mgl32.Mat3 // offset 144
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size in bytes (192)
func (g *GPUMaterialUniform) Size() int {
	return GPUMaterialUniformSize
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, GPUMaterialUniformSize)
	putF := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, vec := range [][4]float32{g.Color, g.Emissive, g.Specular, g.Params, g.Params2} {
		for c := range 4 {
			putF(i*16+c*4, vec[c])
		}
	}
	binary.LittleEndian.PutUint32(buf[80:], g.Kind)
	binary.LittleEndian.PutUint32(buf[84:], g.Flags)
	binary.LittleEndian.PutUint32(buf[88:], g.Side)
	for col := range 3 {
		for row := range 3 {
			putF(96+col*16+row*4, g.UVTransform[col*3+row])
			putF(144+col*16+row*4, g.UV2Transform[col*3+row])
		}
	}
	return buf
}
