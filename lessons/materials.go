package lessons

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/camera"
	"github.com/Carmen-Shannon/oxy-lessons/engine/debugui"
	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/light"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-lessons/engine/scene"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/Carmen-Shannon/oxy-lessons/exercise"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// guiStep is the increment every material control moves by.
	guiStep = 0.0001

	matcapNumber         = 1
	gradientNumber       = 3
	environmentMapNumber = 0
)

// Materials shows a sphere, a plane and a torus sharing one material, cycling through the mesh materials.
type Materials struct {
	scene  scene.Scene
	newGUI func(title string) debugui.GUI

	door        doorTextures
	doorBase    *material.Material
	matcap      texture.Texture
	gradient    texture.Texture
	environment texture.Texture

	ambient light.Light
	point   light.Light

	// material is the material the active mode built; the after hook assigns it to every mesh.
	material *material.Material
	gui      debugui.GUI
	sphere   mesh.Mesh
	plane    mesh.Mesh
	torus    mesh.Mesh

	switcher exercise.Switcher[*Materials]
	keys     *exercise.KeyBindings
}

var _ Lesson = &Materials{}

// NewMaterials creates the materials lesson.
func NewMaterials() *Materials {
	return &Materials{}
}

func (m *Materials) Name() string {
	return "materials"
}

func (m *Materials) Setup(ctx *Context) error {
	m.scene = ctx.Scene
	m.newGUI = ctx.NewGUI

	// ── Textures ────────────────────────────────────────────────────
	manager := texture.NewLoadingManager(
		texture.WithOnError(func(url string, err error) {
			log.Printf("[Materials] failed to load %s: %v", url, err)
		}),
	)
	loader := ctx.NewTextureLoader(manager)
	m.door = loadDoorTextures(loader)
	m.matcap = loader.Load(matcapPath(matcapNumber))
	m.gradient = loader.Load(gradientPath(gradientNumber))
	m.environment = ctx.NewCubeLoader(manager).Load(environmentMapPaths(environmentMapNumber))
	m.doorBase = material.NewMeshStandardMaterial(
		material.WithMap(m.door.color),
		material.WithAoMap(m.door.ambientOcclusion, 1),
		material.WithDisplacementMap(m.door.height, 0.05),
	)

	// ── Lights ──────────────────────────────────────────────────────
	m.ambient = light.NewAmbientLight(0xffffff, 0.5)
	m.point = light.NewPointLight(0xffffff, 0.5, light.WithPosition(2, 3, 4))
	m.scene.Add(m.ambient, m.point)

	// ── Exercise modes ──────────────────────────────────────────────
	modes := materialModes()
	switcher, err := exercise.NewSwitcher(m, modes,
		exercise.WithBefore((*Materials).resetObjects),
		exercise.WithAfter((*Materials).attachMaterial),
		exercise.WithOnSwitch[*Materials](func(index int, name string) {
			ctx.AnnounceMode(index, len(modes), name)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create material modes: %w", err)
	}
	if err := switcher.Select(ctx.StartMode); err != nil {
		return fmt.Errorf("failed to select start mode: %w", err)
	}
	m.switcher = switcher
	m.keys = exercise.NewKeyBindings(switcher)

	// ── Camera ──────────────────────────────────────────────────────
	ctx.Camera = camera.NewPerspectiveCamera(
		camera.WithFov(75),
		camera.WithAspect(ctx.Aspect()),
		camera.WithClipPlanes(0.1, 100),
		camera.WithPosition(1, 1, 2),
	)
	ctx.Controls = camera.NewOrbitControls(ctx.Camera, camera.WithDamping(0.05))
	return nil
}

// resetObjects replaces the GUI and rebuilds the three meshes with their low resolution geometry.
func (m *Materials) resetObjects() error {
	if m.gui != nil {
		m.gui.Destroy()
	}
	m.gui = m.newGUI("materials")

	for _, obj := range []mesh.Mesh{m.sphere, m.plane, m.torus} {
		if obj != nil {
			m.scene.Remove(obj)
		}
	}

	m.sphere = mesh.NewMesh(geometry.NewSphere(0.5, 16, 16), nil, mesh.WithName("sphere"), mesh.WithPosition(-1.5, 0, 0))
	m.plane = mesh.NewMesh(geometry.NewPlane(1, 1, 1, 1), nil, mesh.WithName("plane"))
	m.torus = mesh.NewMesh(geometry.NewTorus(0.3, 0.2, 16, 32), nil, mesh.WithName("torus"), mesh.WithPosition(1.5, 0, 0))
	return nil
}

func (m *Materials) attachMaterial() error {
	for _, obj := range m.meshes() {
		obj.SetMaterial(m.material)
	}
	m.scene.Add(m.sphere, m.plane, m.torus)
	return nil
}

func (m *Materials) meshes() []mesh.Mesh {
	return []mesh.Mesh{m.sphere, m.plane, m.torus}
}

// addUV2 gives every mesh a second uv set for the ambient occlusion map.
func (m *Materials) addUV2() {
	for _, obj := range m.meshes() {
		obj.Geometry().SetUV2FromUV()
	}
}

// useDetailedGeometry swaps in geometry with enough vertices for displacement and adds the second uv set.
func (m *Materials) useDetailedGeometry() {
	m.sphere.SetGeometry(geometry.NewSphere(0.5, 64, 64))
	m.plane.SetGeometry(geometry.NewPlane(1, 1, 100, 100))
	m.torus.SetGeometry(geometry.NewTorus(0.3, 0.2, 64, 128))
	m.addUV2()
}

// doorMaterial returns a fresh copy of the fully mapped door material the displacement modes build on.
// Each mode gets its own copy so debug controls never change the shared base.
func (m *Materials) doorMaterial() (*material.Material, error) {
	mat, err := m.doorBase.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy door material: %w", err)
	}
	return mat, nil
}

func (m *Materials) addMetalnessRoughness() {
	m.gui.Add("metalness", &m.material.Metalness).Min(0).Max(1).Step(guiStep)
	m.gui.Add("roughness", &m.material.Roughness).Min(0).Max(1).Step(guiStep)
}

// materialModes lists the modes in display order.
func materialModes() []exercise.Mode[*Materials] {
	return []exercise.Mode[*Materials]{
		{Name: "MeshBasicMaterial (map)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithMap(m.door.color))
			return nil
		}},
		{Name: "MeshBasicMaterial (color)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial()
			return m.material.SetColorString("#ff0000")
		}},
		{Name: "MeshBasicMaterial (map & color)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithMap(m.door.color))
			return m.material.SetColorString("#ff0000")
		}},
		{Name: "MeshBasicMaterial (wireframe)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithWireframe(true))
			return nil
		}},
		{Name: "MeshBasicMaterial (opacity)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithTransparent(true), material.WithOpacity(0.5))
			return nil
		}},
		{Name: "MeshBasicMaterial (alphaMap)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithTransparent(true), material.WithAlphaMap(m.door.alpha))
			return nil
		}},
		{Name: "MeshBasicMaterial (side)", Handler: func(m *Materials) error {
			m.material = material.NewMeshBasicMaterial(material.WithSide(material.DoubleSide))
			return nil
		}},
		{Name: "MeshNormalMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshNormalMaterial()
			return nil
		}},
		{Name: "MeshNormalMaterial (wireframe)", Handler: func(m *Materials) error {
			m.material = material.NewMeshNormalMaterial(material.WithWireframe(true))
			return nil
		}},
		{Name: "MeshNormalMaterial (flatShading)", Handler: func(m *Materials) error {
			m.material = material.NewMeshNormalMaterial(material.WithFlatShading(true))
			return nil
		}},
		{Name: "MeshMatcapMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshMatcapMaterial(material.WithMatcap(m.matcap))
			return nil
		}},
		{Name: "MeshDepthMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshDepthMaterial()
			return nil
		}},
		{Name: "MeshLambertMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshLambertMaterial()
			return nil
		}},
		{Name: "MeshPhongMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshPhongMaterial()
			return nil
		}},
		{Name: "MeshPhongMaterial (shininess & specular)", Handler: func(m *Materials) error {
			m.material = material.NewMeshPhongMaterial(material.WithShininess(100), material.WithSpecular(0x1188ff))
			return nil
		}},
		{Name: "MeshToonMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshToonMaterial()
			return nil
		}},
		{Name: "MeshToonMaterial (gradientMap)", Handler: func(m *Materials) error {
			m.material = material.NewMeshToonMaterial(material.WithGradientMap(m.gradient))
			m.gradient.SetFilters(texture.NearestFilter, texture.NearestFilter)
			m.gradient.SetGenerateMipmaps(false)
			return nil
		}},
		{Name: "MeshStandardMaterial", Handler: func(m *Materials) error {
			m.material = material.NewMeshStandardMaterial()
			return nil
		}},
		{Name: "MeshStandardMaterial (metalness & roughness)", Handler: func(m *Materials) error {
			m.material = material.NewMeshStandardMaterial(
				material.WithMap(m.door.color),
				material.WithMetalness(0.45),
				material.WithRoughness(0.65),
			)
			m.addMetalnessRoughness()
			return nil
		}},
		{Name: "MeshStandardMaterial (aoMap)", Handler: func(m *Materials) error {
			m.addUV2()
			m.material = material.NewMeshStandardMaterial(
				material.WithMap(m.door.color),
				material.WithAoMap(m.door.ambientOcclusion, 1),
			)
			m.gui.Add("aoMapIntensity", &m.material.AoMapIntensity).Min(0).Max(10).Step(guiStep)
			return nil
		}},
		{Name: "MeshStandardMaterial (displacementMap)", Handler: func(m *Materials) error {
			m.useDetailedGeometry()
			mat, err := m.doorMaterial()
			if err != nil {
				return err
			}
			m.material = mat
			m.gui.Add("aoMapIntensity", &m.material.AoMapIntensity).Min(0).Max(10).Step(guiStep)
			m.gui.Add("displacementScale", &m.material.DisplacementScale).Min(0).Max(1).Step(guiStep)
			return nil
		}},
		{Name: "MeshStandardMaterial (metalnessMap & roughnessMap)", Handler: func(m *Materials) error {
			m.useDetailedGeometry()
			mat, err := m.doorMaterial()
			if err != nil {
				return err
			}
			m.material = mat
			m.material.MetalnessMap = m.door.metalness
			m.material.RoughnessMap = m.door.roughness
			m.material.Metalness = 0
			m.material.Roughness = 1
			m.addMetalnessRoughness()
			return nil
		}},
		{Name: "MeshStandardMaterial (normalMap)", Handler: func(m *Materials) error {
			m.useDetailedGeometry()
			mat, err := m.doorMaterial()
			if err != nil {
				return err
			}
			m.material = mat
			m.material.MetalnessMap = m.door.metalness
			m.material.RoughnessMap = m.door.roughness
			m.material.NormalMap = m.door.normal
			m.material.NormalScale = mgl32.Vec2{0.5, 0.5}
			m.gui.Add("normalScale.x", &m.material.NormalScale[0]).Min(0).Max(1).Step(guiStep)
			m.gui.Add("normalScale.y", &m.material.NormalScale[1]).Min(0).Max(1).Step(guiStep)
			return nil
		}},
		{Name: "MeshStandardMaterial (alphaMap)", Handler: func(m *Materials) error {
			m.useDetailedGeometry()
			mat, err := m.doorMaterial()
			if err != nil {
				return err
			}
			m.material = mat
			m.material.MetalnessMap = m.door.metalness
			m.material.RoughnessMap = m.door.roughness
			m.material.NormalMap = m.door.normal
			m.material.NormalScale = mgl32.Vec2{0.5, 0.5}
			m.material.Transparent = true
			m.material.AlphaMap = m.door.alpha
			return nil
		}},
		{Name: "Environment map", Handler: func(m *Materials) error {
			m.material = material.NewMeshStandardMaterial(
				material.WithMetalness(0.7),
				material.WithRoughness(0.2),
				material.WithEnvMap(m.environment),
			)
			m.addMetalnessRoughness()
			return nil
		}},
	}
}

func (m *Materials) Update(info common.FrameInfo) {
	for _, obj := range m.meshes() {
		if obj != nil {
			obj.SetRotation(0.15*info.Elapsed, 0.1*info.Elapsed, 0)
		}
	}
}

func (m *Materials) HandleKeyDown(key int) bool {
	if m.gui != nil && m.gui.HandleKeyDown(key) {
		return true
	}
	handled, err := m.keys.HandleKey(key)
	if err != nil {
		log.Printf("[Materials] mode switch failed: %v", err)
	}
	return handled
}

func (m *Materials) HandleKeyUp(key int) {
	if m.gui != nil {
		m.gui.HandleKeyUp(key)
	}
}
