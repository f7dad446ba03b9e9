package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Kind selects the shading model a Material is rendered with.
type Kind uint32

const (
	KindBasic Kind = iota
	KindNormal
	KindMatcap
	KindDepth
	KindLambert
	KindPhong
	KindToon
	KindStandard
)

var kindNames = [...]string{
	KindBasic:    "MeshBasicMaterial",
	KindNormal:   "MeshNormalMaterial",
	KindMatcap:   "MeshMatcapMaterial",
	KindDepth:    "MeshDepthMaterial",
	KindLambert:  "MeshLambertMaterial",
	KindPhong:    "MeshPhongMaterial",
	KindToon:     "MeshToonMaterial",
	KindStandard: "MeshStandardMaterial",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Side selects which triangle faces are rendered.
type Side uint32

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Slot indexes the texture slots of a material in binding order.
type Slot int

const (
	SlotMap Slot = iota
	SlotAlphaMap
	SlotAoMap
	SlotDisplacementMap
	SlotNormalMap
	SlotMetalnessMap
	SlotRoughnessMap
	SlotMatcap
	SlotGradientMap
	SlotEnvMap
	SlotCount
)

// Material describes a mesh surface the way three.js mesh materials do.
// Fields are exported so debug controls can bind directly to them; changes take effect on the next frame.
// Properties that a Kind does not use are ignored by the renderer.
type Material struct {
	Kind Kind
	Name string

	Color       common.Color
	Opacity     float32
	Transparent bool
	Side        Side
	Wireframe   bool
	FlatShading bool

	Map             texture.Texture
	AlphaMap        texture.Texture
	AoMap           texture.Texture
	DisplacementMap texture.Texture
	NormalMap       texture.Texture
	MetalnessMap    texture.Texture
	RoughnessMap    texture.Texture
	Matcap          texture.Texture
	GradientMap     texture.Texture
	EnvMap          texture.Texture

	AoMapIntensity    float32
	DisplacementScale float32
	DisplacementBias  float32
	NormalScale       mgl32.Vec2
	Metalness         float32
	Roughness         float32
	EnvMapIntensity   float32
	Shininess         float32
	Specular          common.Color
	Emissive          common.Color
}

// New creates a material of the given kind with three.js defaults.
//
// Parameters:
//   - kind: the shading model
//   - options: functional options
//
// Returns:
//   - *Material: the material
func New(kind Kind, options ...MaterialBuilderOption) *Material {
	m := &Material{
		Kind:              kind,
		Name:              kind.String(),
		Color:             common.Color{R: 1, G: 1, B: 1},
		Opacity:           1,
		AoMapIntensity:    1,
		DisplacementScale: 1,
		NormalScale:       mgl32.Vec2{1, 1},
		Metalness:         0,
		Roughness:         1,
		EnvMapIntensity:   1,
		Shininess:         30,
		Specular:          common.ColorFromHex(0x111111),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewMeshBasicMaterial creates an unlit material.
func NewMeshBasicMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindBasic, options...)
}

// NewMeshNormalMaterial creates a material that colors fragments by their view-space normal.
func NewMeshNormalMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindNormal, options...)
}

// NewMeshMatcapMaterial creates a material lit entirely by a matcap texture.
func NewMeshMatcapMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindMatcap, options...)
}

// NewMeshDepthMaterial creates a material that shades by distance to the camera.
func NewMeshDepthMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindDepth, options...)
}

// NewMeshLambertMaterial creates a diffuse-only lit material.
func NewMeshLambertMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindLambert, options...)
}

// NewMeshPhongMaterial creates a Blinn-Phong lit material.
func NewMeshPhongMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindPhong, options...)
}

// NewMeshToonMaterial creates a cel-shaded material.
func NewMeshToonMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindToon, options...)
}

// NewMeshStandardMaterial creates a metalness/roughness physically based material.
func NewMeshStandardMaterial(options ...MaterialBuilderOption) *Material {
	return New(KindStandard, options...)
}

// Clone returns a copy of m. Texture references are shared with the original.
//
// Returns:
//   - *Material: the copy
//   - error: error if the fields could not be copied
func (m *Material) Clone() (*Material, error) {
	c := &Material{}
	if err := copier.Copy(c, m); err != nil {
		return nil, fmt.Errorf("failed to clone material %s: %w", m.Name, err)
	}
	return c, nil
}

// SetColorHex sets the base color from a 0xRRGGBB integer.
func (m *Material) SetColorHex(hex uint32) {
	m.Color = common.ColorFromHex(hex)
}

// SetColorString sets the base color from a CSS hex string such as "#ff0000".
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - error: an error if s is not a valid hex color
func (m *Material) SetColorString(s string) error {
	c, err := common.ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("material %s: %w", m.Name, err)
	}
	m.Color = c
	return nil
}

// Textures returns the material's texture slots in binding order. Empty slots are nil.
//
// Returns:
//   - [SlotCount]texture.Texture: the slots
func (m *Material) Textures() [SlotCount]texture.Texture {
	return [SlotCount]texture.Texture{
		SlotMap:             m.Map,
		SlotAlphaMap:        m.AlphaMap,
		SlotAoMap:           m.AoMap,
		SlotDisplacementMap: m.DisplacementMap,
		SlotNormalMap:       m.NormalMap,
		SlotMetalnessMap:    m.MetalnessMap,
		SlotRoughnessMap:    m.RoughnessMap,
		SlotMatcap:          m.Matcap,
		SlotGradientMap:     m.GradientMap,
		SlotEnvMap:          m.EnvMap,
	}
}

// PipelineKey identifies the render pipeline variant a material needs.
type PipelineKey struct {
	Wireframe   bool
	Side        Side
	Transparent bool
}

func (k PipelineKey) String() string {
	topology := "triangles"
	if k.Wireframe {
		topology = "lines"
	}
	cull := [...]string{FrontSide: "cull-back", BackSide: "cull-front", DoubleSide: "cull-none"}[min(k.Side, DoubleSide)]
	blend := "opaque"
	if k.Transparent {
		blend = "blend"
	}
	return fmt.Sprintf("mesh/%s/%s/%s", topology, cull, blend)
}

// PipelineKey returns the pipeline variant for the material's current state.
//
// Returns:
//   - PipelineKey: the key
func (m *Material) PipelineKey() PipelineKey {
	return PipelineKey{
		Wireframe:   m.Wireframe,
		Side:        m.Side,
		Transparent: m.Transparent,
	}
}

// Uniforms packs the material into its GPU uniform block.
// A texture contributes its flag only once it is ready.
//
// Returns:
//   - GPUMaterialUniform: the uniform block
func (m *Material) Uniforms() GPUMaterialUniform {
	u := GPUMaterialUniform{
		Color:        m.Color.Vec4(m.Opacity),
		Emissive:     m.Emissive.Vec4(1),
		Specular:     m.Specular.Vec4(m.Shininess),
		Params:       [4]float32{m.Metalness, m.Roughness, m.AoMapIntensity, m.DisplacementScale},
		Params2:      [4]float32{m.NormalScale[0], m.NormalScale[1], m.DisplacementBias, m.EnvMapIntensity},
		Kind:         uint32(m.Kind),
		Side:         uint32(m.Side),
		UVTransform:  mgl32.Ident3(),
		UV2Transform: mgl32.Ident3(),
	}

	for slot, tex := range m.Textures() {
		if tex != nil && tex.Ready() {
			u.Flags |= 1 << slot
		}
	}
	if m.FlatShading {
		u.Flags |= FlagFlatShading
	}
	if m.Transparent {
		u.Flags |= FlagTransparent
	}

	for _, tex := range []texture.Texture{m.Map, m.DisplacementMap, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.AlphaMap} {
		if tex != nil {
			u.UVTransform = tex.UVTransform()
			break
		}
	}
	if m.AoMap != nil {
		u.UV2Transform = m.AoMap.UVTransform()
	}
	return u
}
