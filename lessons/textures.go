package lessons

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/camera"
	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-lessons/engine/scene"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/Carmen-Shannon/oxy-lessons/exercise"
	"github.com/chewxy/math32"
)

// Textures shows a cube with one of the door textures, or a transformed copy of the color texture.
type Textures struct {
	scene    scene.Scene
	door     doorTextures
	repeat   texture.Texture
	mirrored texture.Texture
	offset   texture.Texture
	rotation texture.Texture

	// active is the texture the next cube is built with.
	active   texture.Texture
	cube     mesh.Mesh
	switcher exercise.Switcher[*Textures]
	keys     *exercise.KeyBindings
}

var _ Lesson = &Textures{}

// NewTextures creates the textures lesson.
func NewTextures() *Textures {
	return &Textures{}
}

func (t *Textures) Name() string {
	return "textures"
}

func (t *Textures) Setup(ctx *Context) error {
	t.scene = ctx.Scene

	// ── Textures ────────────────────────────────────────────────────
	manager := texture.NewLoadingManager(
		texture.WithOnStart(func(url string, loaded, total int) {
			log.Printf("[Textures] loading started: %s", url)
		}),
		texture.WithOnProgress(func(url string, loaded, total int) {
			log.Printf("[Textures] loaded %s (%d/%d)", url, loaded, total)
		}),
		texture.WithOnLoad(func() {
			log.Printf("[Textures] all textures loaded")
		}),
		texture.WithOnError(func(url string, err error) {
			log.Printf("[Textures] failed to load %s: %v", url, err)
		}),
	)
	loader := ctx.NewTextureLoader(manager)
	t.door = loadDoorTextures(loader)

	t.repeat = loader.Load(doorColorPath)
	t.repeat.SetRepeat(2, 3)
	t.repeat.SetWrap(texture.RepeatWrapping, texture.RepeatWrapping)

	t.mirrored = loader.Load(doorColorPath)
	t.mirrored.SetRepeat(2, 3)
	t.mirrored.SetWrap(texture.MirroredRepeatWrapping, texture.MirroredRepeatWrapping)

	t.offset = loader.Load(doorColorPath)
	t.offset.SetRepeat(2, 3)
	t.offset.SetWrap(texture.MirroredRepeatWrapping, texture.MirroredRepeatWrapping)
	t.offset.SetOffset(0.5, 0.5)

	t.rotation = loader.Load(doorColorPath)
	t.rotation.SetRotation(math32.Pi * 0.25)
	t.rotation.SetCenter(0.5, 0.5)

	// ── Exercise modes ──────────────────────────────────────────────
	modes := textureModes()
	switcher, err := exercise.NewSwitcher(t, modes,
		exercise.WithBefore(func(t *Textures) error {
			t.scene.Clear()
			return nil
		}),
		exercise.WithAfter(func(t *Textures) error {
			t.cube = mesh.NewMesh(
				geometry.NewBox(1, 1, 1),
				material.NewMeshBasicMaterial(material.WithMap(t.active)),
			)
			t.scene.Add(t.cube)
			return nil
		}),
		exercise.WithOnSwitch[*Textures](func(index int, name string) {
			ctx.AnnounceMode(index, len(modes), name)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create texture modes: %w", err)
	}
	if err := switcher.Select(ctx.StartMode); err != nil {
		return fmt.Errorf("failed to select start mode: %w", err)
	}
	t.switcher = switcher
	t.keys = exercise.NewKeyBindings(switcher)

	// ── Camera ──────────────────────────────────────────────────────
	ctx.Camera = camera.NewPerspectiveCamera(
		camera.WithFov(75),
		camera.WithAspect(ctx.Aspect()),
		camera.WithClipPlanes(0.1, 100),
		camera.WithPosition(1, 1, 1),
	)
	ctx.Controls = camera.NewOrbitControls(ctx.Camera, camera.WithDamping(0.05))
	return nil
}

// textureModes lists the modes in display order. Each one only picks the texture; the after hook builds the cube.
func textureModes() []exercise.Mode[*Textures] {
	pick := func(get func(t *Textures) texture.Texture) func(t *Textures) error {
		return func(t *Textures) error {
			t.active = get(t)
			return nil
		}
	}
	return []exercise.Mode[*Textures]{
		{Name: "Color Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.color })},
		{Name: "Alpha Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.alpha })},
		{Name: "Height Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.height })},
		{Name: "Normal Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.normal })},
		{Name: "Ambient Occlusion Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.ambientOcclusion })},
		{Name: "Metalness Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.metalness })},
		{Name: "Roughness Texture", Handler: pick(func(t *Textures) texture.Texture { return t.door.roughness })},
		{Name: "Repeat Texture", Handler: pick(func(t *Textures) texture.Texture { return t.repeat })},
		{Name: "Mirrored Repeat Texture", Handler: pick(func(t *Textures) texture.Texture { return t.mirrored })},
		{Name: "Offset Texture", Handler: pick(func(t *Textures) texture.Texture { return t.offset })},
		{Name: "Rotation Texture", Handler: pick(func(t *Textures) texture.Texture { return t.rotation })},
	}
}

func (t *Textures) Update(info common.FrameInfo) {}

func (t *Textures) HandleKeyDown(key int) bool {
	handled, err := t.keys.HandleKey(key)
	if err != nil {
		log.Printf("[Textures] mode switch failed: %v", err)
	}
	return handled
}

func (t *Textures) HandleKeyUp(key int) {}
