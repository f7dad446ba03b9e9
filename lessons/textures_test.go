package lessons

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTextures(t *testing.T, out *bytes.Buffer, options ...ContextBuilderOption) (*Textures, *Context) {
	t.Helper()
	ctx := newTestContext(t, out, options...)
	l := NewTextures()
	require.NoError(t, l.Setup(ctx))
	return l, ctx
}

// activeMap returns the map of the only mesh in the scene.
func activeMap(t *testing.T, ctx *Context) texture.Texture {
	t.Helper()
	meshes := ctx.Scene.Meshes()
	require.Len(t, meshes, 1)
	return meshes[0].Material().Map
}

func TestTextureModesOrder(t *testing.T) {
	var out bytes.Buffer
	l, _ := setupTextures(t, &out)
	assert.Equal(t, []string{
		"Color Texture",
		"Alpha Texture",
		"Height Texture",
		"Normal Texture",
		"Ambient Occlusion Texture",
		"Metalness Texture",
		"Roughness Texture",
		"Repeat Texture",
		"Mirrored Repeat Texture",
		"Offset Texture",
		"Rotation Texture",
	}, l.switcher.Names())
}

func TestTexturesSetup(t *testing.T) {
	var out bytes.Buffer
	l, ctx := setupTextures(t, &out)

	assert.Same(t, l.door.color, activeMap(t, ctx))
	assert.Equal(t, "[1/11] Color Texture\n", out.String())

	require.NotNil(t, ctx.Camera)
	require.NotNil(t, ctx.Controls)
	assert.True(t, ctx.Controls.EnableDamping())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ctx.Camera.Position())
	assert.InDelta(t, 100, ctx.Camera.Far(), 1e-6)
}

func TestTexturesKeysSwitchModes(t *testing.T) {
	var out bytes.Buffer
	l, ctx := setupTextures(t, &out)

	assert.True(t, l.HandleKeyDown(common.KeyRight))
	assert.Equal(t, 1, l.switcher.Active())
	assert.Same(t, l.door.alpha, activeMap(t, ctx))

	assert.True(t, l.HandleKeyDown(common.Key0))
	assert.Equal(t, "Offset Texture", l.switcher.ActiveName())
	assert.Same(t, l.offset, activeMap(t, ctx))

	assert.True(t, l.HandleKeyDown(common.KeyLeft))
	assert.Same(t, l.mirrored, activeMap(t, ctx))

	assert.False(t, l.HandleKeyDown(common.KeyW))
	assert.Equal(t, 8, l.switcher.Active())
}

func TestTexturesWrapAround(t *testing.T) {
	var out bytes.Buffer
	l, ctx := setupTextures(t, &out)

	require.True(t, l.HandleKeyDown(common.KeyP))
	assert.Equal(t, "Rotation Texture", l.switcher.ActiveName())
	assert.Same(t, l.rotation, activeMap(t, ctx))

	require.True(t, l.HandleKeyDown(common.KeyN))
	assert.Same(t, l.door.color, activeMap(t, ctx))
}

func TestTexturesTransforms(t *testing.T) {
	var out bytes.Buffer
	l, _ := setupTextures(t, &out)

	assert.Equal(t, mgl32.Vec2{2, 3}, l.repeat.Repeat())
	assert.Equal(t, texture.RepeatWrapping, l.repeat.WrapS())
	assert.Equal(t, texture.RepeatWrapping, l.repeat.WrapT())

	assert.Equal(t, mgl32.Vec2{2, 3}, l.mirrored.Repeat())
	assert.Equal(t, texture.MirroredRepeatWrapping, l.mirrored.WrapS())

	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, l.offset.Offset())
	assert.Equal(t, texture.MirroredRepeatWrapping, l.offset.WrapT())

	assert.InDelta(t, math32.Pi/4, l.rotation.Rotation(), 1e-6)
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, l.rotation.Center())
	assert.Equal(t, texture.ClampToEdgeWrapping, l.rotation.WrapS())
}

func TestTexturesStartMode(t *testing.T) {
	var out bytes.Buffer
	l, ctx := setupTextures(t, &out, WithStartMode(3))
	assert.Equal(t, "Normal Texture", l.switcher.ActiveName())
	assert.Same(t, l.door.normal, activeMap(t, ctx))
	assert.Contains(t, out.String(), "[4/11] Normal Texture")
}

func TestTexturesStartModeOutOfRange(t *testing.T) {
	var out bytes.Buffer
	l, _ := setupTextures(t, &out, WithStartMode(42))
	assert.Equal(t, 0, l.switcher.Active())
}
