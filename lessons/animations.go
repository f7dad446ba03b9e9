package lessons

import (
	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/camera"
	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/chewxy/math32"
)

// Animations moves a red cube around a circle and keeps the camera looking at it.
type Animations struct {
	cube   mesh.Mesh
	camera camera.Camera
}

var _ Lesson = &Animations{}

// NewAnimations creates the animations lesson.
func NewAnimations() *Animations {
	return &Animations{}
}

func (a *Animations) Name() string {
	return "animations"
}

func (a *Animations) Setup(ctx *Context) error {
	a.cube = mesh.NewMesh(
		geometry.NewBox(1, 1, 1),
		material.NewMeshBasicMaterial(material.WithColor(0xff0000)),
		mesh.WithName("cube"),
	)
	ctx.Scene.Add(a.cube)

	a.camera = camera.NewPerspectiveCamera(
		camera.WithFov(75),
		camera.WithAspect(ctx.Aspect()),
		camera.WithPosition(0, 0, 3),
	)
	ctx.Camera = a.camera
	return nil
}

func (a *Animations) Update(info common.FrameInfo) {
	x, y := math32.Cos(info.Elapsed), math32.Sin(info.Elapsed)
	a.cube.SetPosition(x, y, 0)
	a.camera.LookAt(x, y, 0)
}

func (a *Animations) HandleKeyDown(key int) bool {
	return false
}

func (a *Animations) HandleKeyUp(key int) {}
