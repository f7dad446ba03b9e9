package material

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyTexture(name string) texture.Texture {
	return texture.NewFromImage(name, image.NewRGBA(image.Rect(0, 0, 2, 2)))
}

func TestDefaults(t *testing.T) {
	m := NewMeshStandardMaterial()

	assert.Equal(t, KindStandard, m.Kind)
	assert.Equal(t, "MeshStandardMaterial", m.Name)
	assert.Equal(t, common.Color{R: 1, G: 1, B: 1}, m.Color)
	assert.Equal(t, float32(1), m.Opacity)
	assert.Equal(t, float32(0), m.Metalness)
	assert.Equal(t, float32(1), m.Roughness)
	assert.Equal(t, float32(30), m.Shininess)
	assert.Equal(t, common.ColorFromHex(0x111111), m.Specular)
	assert.Equal(t, mgl32.Vec2{1, 1}, m.NormalScale)
	assert.Equal(t, float32(1), m.AoMapIntensity)
	assert.Equal(t, float32(1), m.DisplacementScale)
	assert.Equal(t, FrontSide, m.Side)
}

func TestConstructorsSetKind(t *testing.T) {
	cases := map[Kind]*Material{
		KindBasic:    NewMeshBasicMaterial(),
		KindNormal:   NewMeshNormalMaterial(),
		KindMatcap:   NewMeshMatcapMaterial(),
		KindDepth:    NewMeshDepthMaterial(),
		KindLambert:  NewMeshLambertMaterial(),
		KindPhong:    NewMeshPhongMaterial(),
		KindToon:     NewMeshToonMaterial(),
		KindStandard: NewMeshStandardMaterial(),
	}
	for kind, m := range cases {
		assert.Equal(t, kind, m.Kind)
		assert.Equal(t, kind.String(), m.Name)
	}
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestOptions(t *testing.T) {
	door := readyTexture("door")
	m := NewMeshPhongMaterial(
		WithColor(0xff0000),
		WithShininess(100),
		WithSpecular(0x1188ff),
		WithMap(door),
		WithTransparent(true),
		WithOpacity(0.5),
		WithSide(DoubleSide),
	)
	assert.Equal(t, common.Color{R: 1}, m.Color)
	assert.Equal(t, float32(100), m.Shininess)
	assert.Equal(t, common.ColorFromHex(0x1188ff), m.Specular)
	assert.True(t, m.Map == door)
	assert.True(t, m.Transparent)
	assert.Equal(t, DoubleSide, m.Side)
}

func TestSetColorString(t *testing.T) {
	m := NewMeshBasicMaterial()
	require.NoError(t, m.SetColorString("#ff0000"))
	assert.Equal(t, common.Color{R: 1}, m.Color)

	assert.Error(t, m.SetColorString("red"))
	assert.Equal(t, common.Color{R: 1}, m.Color, "invalid input keeps the previous color")

	m.SetColorHex(0x00ff00)
	assert.Equal(t, common.Color{G: 1}, m.Color)
}

func TestCloneSharesTextures(t *testing.T) {
	door := readyTexture("door")
	m := NewMeshStandardMaterial(WithMap(door), WithNormalMap(readyTexture("normal"), mgl32.Vec2{0.5, 0.5}))
	c, err := m.Clone()
	require.NoError(t, err)

	require.NotSame(t, m, c)
	assert.Equal(t, m.Kind, c.Kind)
	assert.True(t, c.Map == door)
	assert.True(t, c.NormalMap == m.NormalMap)
	assert.Nil(t, c.EnvMap)

	c.NormalScale[0] = 1
	c.Roughness = 0.2
	assert.Equal(t, float32(0.5), m.NormalScale[0])
	assert.Equal(t, float32(1), m.Roughness)
}

func TestPipelineKey(t *testing.T) {
	assert.Equal(t, "mesh/triangles/cull-back/opaque", NewMeshBasicMaterial().PipelineKey().String())
	assert.Equal(t, "mesh/lines/cull-none/blend",
		NewMeshBasicMaterial(WithWireframe(true), WithSide(DoubleSide), WithTransparent(true)).PipelineKey().String())
	assert.Equal(t, "mesh/triangles/cull-front/opaque", NewMeshBasicMaterial(WithSide(BackSide)).PipelineKey().String())

	a, b := NewMeshToonMaterial(), NewMeshStandardMaterial()
	assert.Equal(t, a.PipelineKey(), b.PipelineKey(), "kind does not affect the pipeline")
}

func TestUniformFlagsTrackReadyTextures(t *testing.T) {
	pending := texture.NewTexture("pending")
	m := NewMeshStandardMaterial(
		WithMap(readyTexture("color")),
		WithAoMap(readyTexture("ao"), 1),
		WithAlphaMap(pending),
		WithFlatShading(true),
		WithTransparent(true),
	)
	u := m.Uniforms()

	assert.Equal(t, FlagMap|FlagAoMap|FlagFlatShading|FlagTransparent, u.Flags)
	assert.Equal(t, uint32(KindStandard), u.Kind)

	pending.SetImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.NotZero(t, m.Uniforms().Flags&FlagAlphaMap)
}

func TestUniformValues(t *testing.T) {
	m := NewMeshStandardMaterial(WithMetalness(0.45), WithRoughness(0.65), WithDisplacementMap(nil, 0.05), WithOpacity(0.5))
	m.NormalScale = mgl32.Vec2{0.25, 0.75}
	u := m.Uniforms()

	assert.Equal(t, [4]float32{1, 1, 1, 0.5}, u.Color)
	assert.Equal(t, [4]float32{0.45, 0.65, 1, 0.05}, u.Params)
	assert.Equal(t, [4]float32{0.25, 0.75, 0, 1}, u.Params2)
	assert.Equal(t, float32(30), u.Specular[3])
	assert.Equal(t, mgl32.Ident3(), u.UVTransform)
}

func TestUVTransformComesFromFirstMap(t *testing.T) {
	normal := readyTexture("normal")
	normal.SetRepeat(2, 2)
	ao := readyTexture("ao")
	ao.SetOffset(0.5, 0)

	m := NewMeshStandardMaterial(WithNormalMap(normal, mgl32.Vec2{1, 1}), WithAoMap(ao, 1))
	u := m.Uniforms()
	assert.Equal(t, normal.UVTransform(), u.UVTransform)
	assert.Equal(t, ao.UVTransform(), u.UV2Transform)

	color := readyTexture("color")
	m.Map = color
	assert.Equal(t, color.UVTransform(), m.Uniforms().UVTransform, "the color map takes precedence")
}

func TestMarshalLayout(t *testing.T) {
	tex := readyTexture("rot")
	tex.SetOffset(0.5, 0.25)
	m := NewMeshToonMaterial(WithMap(tex), WithSide(DoubleSide))
	u := m.Uniforms()
	buf := u.Marshal()
	require.Len(t, buf, 192)
	assert.Equal(t, 192, u.Size())

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, uint32(KindToon), binary.LittleEndian.Uint32(buf[80:]))
	assert.Equal(t, FlagMap, binary.LittleEndian.Uint32(buf[84:]))
	assert.Equal(t, uint32(DoubleSide), binary.LittleEndian.Uint32(buf[88:]))
	// third column of the uv transform holds the translation
	assert.Equal(t, float32(0.5), f(96+32))
	assert.Equal(t, float32(0.25), f(96+36))
	assert.Equal(t, float32(1), f(96+40))
	assert.Equal(t, float32(1), f(144))
	assert.Contains(t, GPUMaterialUniformSource, "uv2_transform: mat3x3<f32>")
}
