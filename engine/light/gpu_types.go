package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxPointLights is the number of point lights the shader evaluates. Extra point lights are ignored.
const MaxPointLights = 4

// GPULightsUniformSource is the canonical WGSL definition of the LightsUniform struct.
// Matches GPULightsUniform layout exactly (160 bytes).
//
//go:embed assets/lights_uniform.wgsl
var GPULightsUniformSource string

// GPUPointLight is the GPU-aligned representation of a single point light.
// Size: 32 bytes.
type GPUPointLight struct {
	Position [3]float32 // offset  0: world-space position
	Distance float32    // offset 12: cutoff distance, 0 for none
	Color    [3]float32 // offset 16: color premultiplied by intensity
	Decay    float32    // offset 28
}

// GPULightsUniform is the per-frame light uniform block.
// Size: 160 bytes.
type GPULightsUniform struct {
	Ambient    [4]float32                    // offset  0: summed ambient color premultiplied by intensity
	PointCount uint32                        // offset 16
	_pad       [3]uint32                     // offset 20
	Points     [MaxPointLights]GPUPointLight // offset 32
}

// Size returns the size of the GPULightsUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (g *GPULightsUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightsUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (g *GPULightsUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, v := range g.Ambient {
		put(i*4, v)
	}
	binary.LittleEndian.PutUint32(buf[16:], g.PointCount)
	for i, p := range g.Points {
		base := 32 + i*32
		put(base, p.Position[0])
		put(base+4, p.Position[1])
		put(base+8, p.Position[2])
		put(base+12, p.Distance)
		put(base+16, p.Color[0])
		put(base+20, p.Color[1])
		put(base+24, p.Color[2])
		put(base+28, p.Decay)
	}
	return buf
}

// BuildUniform packs the enabled lights into a GPULightsUniform.
// Ambient lights are summed; the first MaxPointLights enabled point lights are kept in order.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULightsUniform: the packed uniform
func BuildUniform(lights []Light) GPULightsUniform {
	var u GPULightsUniform
	u.Ambient[3] = 1
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c := l.Color().Scale(l.Intensity())
		switch l.Type() {
		case LightTypeAmbient:
			u.Ambient[0] += c.R
			u.Ambient[1] += c.G
			u.Ambient[2] += c.B
		case LightTypePoint:
			if u.PointCount >= MaxPointLights {
				continue
			}
			u.Points[u.PointCount] = GPUPointLight{
				Position: l.Position(),
				Distance: l.Distance(),
				Color:    [3]float32{c.R, c.G, c.B},
				Decay:    l.Decay(),
			}
			u.PointCount++
		}
	}
	return u
}
