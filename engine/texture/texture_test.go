package texture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func TestTextureDefaults(t *testing.T) {
	tex := NewTexture("door.jpg")

	assert.NotZero(t, tex.ID())
	assert.Equal(t, "door.jpg", tex.Name())
	assert.False(t, tex.Ready())
	assert.False(t, tex.IsCube())
	assert.Nil(t, tex.Images())
	assert.Equal(t, mgl32.Vec2{1, 1}, tex.Repeat())
	assert.Equal(t, ClampToEdgeWrapping, tex.WrapS())
	assert.Equal(t, ClampToEdgeWrapping, tex.WrapT())
	assert.Equal(t, LinearFilter, tex.MinFilter())
	assert.Equal(t, LinearFilter, tex.MagFilter())
	assert.True(t, tex.GenerateMipmaps())
	assert.True(t, tex.FlipY())
	assert.Equal(t, uint64(0), tex.Version())
}

func TestSamplerChangesBumpVersion(t *testing.T) {
	tex := NewTexture("x")

	tex.SetWrap(RepeatWrapping, RepeatWrapping)
	assert.Equal(t, uint64(1), tex.Version())
	tex.SetWrap(RepeatWrapping, RepeatWrapping)
	assert.Equal(t, uint64(1), tex.Version(), "unchanged wrap keeps the version")

	tex.SetFilters(NearestFilter, NearestFilter)
	tex.SetGenerateMipmaps(false)
	tex.SetFlipY(false)
	assert.Equal(t, uint64(4), tex.Version())

	tex.SetRepeat(2, 3)
	tex.SetOffset(0.5, 0.5)
	tex.SetRotation(1)
	tex.SetCenter(0.5, 0.5)
	assert.Equal(t, uint64(4), tex.Version(), "placement is not an upload change")
}

func TestUVTransformUsesPlacement(t *testing.T) {
	tex := NewTexture("x")
	tex.SetRepeat(2, 3)
	tex.SetOffset(0.5, 0.25)
	tex.SetRotation(math32.Pi / 4)
	tex.SetCenter(0.5, 0.5)

	want := common.UVTransform(mgl32.Vec2{0.5, 0.25}, mgl32.Vec2{2, 3}, math32.Pi/4, mgl32.Vec2{0.5, 0.5})
	assert.Equal(t, want, tex.UVTransform())
}

func TestSamplerData(t *testing.T) {
	tex := NewTexture("x", WithWrap(RepeatWrapping, MirroredRepeatWrapping))
	s := tex.SamplerData()
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeU)
	assert.Equal(t, wgpu.AddressModeMirrorRepeat, s.AddressModeV)
	assert.Equal(t, wgpu.FilterModeLinear, s.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, s.MipmapFilter)
	assert.Equal(t, float32(32), s.LodMaxClamp)

	nearest := NewTexture("g", WithFilters(NearestFilter, NearestFilter), WithGenerateMipmaps(false))
	s = nearest.SamplerData()
	assert.Equal(t, wgpu.FilterModeNearest, s.MagFilter)
	assert.Equal(t, wgpu.FilterModeNearest, s.MinFilter)
	assert.Equal(t, float32(0), s.LodMaxClamp)
	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeU)
}

func TestStagingDataRequiresImage(t *testing.T) {
	_, err := NewTexture("x").StagingData()
	assert.True(t, errors.Is(err, ErrNotReady))
}

func TestStagingDataFlipsRows(t *testing.T) {
	img := solid(1, 2, red)
	img.SetRGBA(0, 1, blue)

	flipped := NewFromImage("x", img, WithGenerateMipmaps(false))
	data, err := flipped.StagingData()
	require.NoError(t, err)
	require.Len(t, data.Levels, 1)
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, data.Levels[0])
	assert.Equal(t, uint32(1), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Equal(t, uint32(1), data.Layers)
	assert.False(t, data.Cube)

	straight := NewFromImage("x", img, WithGenerateMipmaps(false), WithFlipY(false))
	data, err = straight.StagingData()
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, data.Levels[0])
}

func TestStagingDataMipLevels(t *testing.T) {
	tex := NewFromImage("x", solid(4, 2, red))
	data, err := tex.StagingData()
	require.NoError(t, err)
	require.Len(t, data.Levels, 3)
	assert.Len(t, data.Levels[0], 4*2*4)
	assert.Len(t, data.Levels[1], 2*1*4)
	assert.Len(t, data.Levels[2], 1*1*4)
}

func TestMipChain(t *testing.T) {
	chain := MipChain(solid(5, 3, blue))
	require.Len(t, chain, 3)
	assert.Equal(t, image.Pt(5, 3), chain[0].Bounds().Size())
	assert.Equal(t, image.Pt(2, 1), chain[1].Bounds().Size())
	assert.Equal(t, image.Pt(1, 1), chain[2].Bounds().Size())
	assert.Equal(t, 3, mipLevelCount(5, 3))
	assert.Equal(t, 1, mipLevelCount(1, 1))
	assert.Equal(t, 11, mipLevelCount(1024, 512))
	assert.Equal(t, len(chain), cap(chain), "chain is allocated once")
}

func TestCubeTexture(t *testing.T) {
	cube := NewCubeTexture("env")
	assert.True(t, cube.IsCube())
	assert.False(t, cube.FlipY())

	for i := range 5 {
		cube.SetFace(i, solid(2, 2, red))
	}
	assert.False(t, cube.Ready())
	cube.SetFace(5, solid(2, 2, blue))
	assert.True(t, cube.Ready())
	assert.Len(t, cube.Images(), 6)

	data, err := cube.StagingData()
	require.NoError(t, err)
	assert.True(t, data.Cube)
	assert.Equal(t, uint32(6), data.Layers)
	require.Len(t, data.Levels, 2)
	assert.Len(t, data.Levels[0], 6*2*2*4)
	assert.Len(t, data.Levels[1], 6*4)

	cube.SetImage(solid(2, 2, red))
	assert.Len(t, cube.Images(), 6, "SetImage is ignored on cube textures")
}

func TestCubeTextureRejectsMismatchedFaces(t *testing.T) {
	cube := NewCubeTexture("env")
	for i := range 6 {
		cube.SetFace(i, solid(2, 2, red))
	}
	cube.SetFace(3, solid(4, 4, red))

	_, err := cube.StagingData()
	assert.True(t, errors.Is(err, ErrCubeFaceSize))
}
