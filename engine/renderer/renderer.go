package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/camera"
	"github.com/Carmen-Shannon/oxy-lessons/engine/geometry"
	"github.com/Carmen-Shannon/oxy-lessons/engine/light"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lessons/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-lessons/engine/scene"
	"github.com/Carmen-Shannon/oxy-lessons/engine/texture"
	"github.com/Carmen-Shannon/oxy-lessons/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshShaderSource string

// Bind group indices of the mesh shader.
const (
	groupFrame    = 0
	groupObject   = 1
	groupMaterial = 2
)

var (
	// ErrNilScene is returned by Render when the scene or camera is nil.
	ErrNilScene = errors.New("scene and camera are required")
	// ErrReleased is returned by Render after Release.
	ErrReleased = errors.New("renderer released")
)

// MeshShader composes the mesh shader from the engine's uniform and vertex declarations.
//
// Returns:
//   - shader.Shader: the parsed mesh shader
//   - error: an error if the composed source is missing an entry point
func MeshShader() (shader.Shader, error) {
	return shader.NewShader("mesh",
		geometry.GPUVertexSource,
		camera.GPUCameraUniformSource,
		light.GPULightsUniformSource,
		mesh.GPUObjectUniformSource,
		material.GPUMaterialUniformSource,
		meshShaderSource,
	)
}

// textureBinding returns the texture and sampler bindings of a material slot in group 2.
func textureBinding(slot material.Slot) (int, int) {
	return 1 + 2*int(slot), 2 + 2*int(slot)
}

// gpuTexture is an uploaded texture with its view and sampler. A zero value marks a texture that failed to stage.
type gpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (t *gpuTexture) release() {
	if t.sampler != nil {
		t.sampler.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// materialBinding is a material's bind group plus the textures it was built against.
type materialBinding struct {
	provider bind_group_provider.BindGroupProvider
	textures [material.SlotCount]*gpuTexture
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	shader  shader.Shader
	layouts []*wgpu.BindGroupLayout

	pipelineCache map[material.PipelineKey]pipeline.Pipeline
	frame         bind_group_provider.BindGroupProvider

	geometries *resourceCache[uint64, bind_group_provider.BindGroupProvider]
	objects    *resourceCache[uint64, bind_group_provider.BindGroupProvider]
	textures   *resourceCache[texture.Texture, *gpuTexture]
	materials  *resourceCache[*material.Material, *materialBinding]

	placeholder     *gpuTexture
	placeholderCube *gpuTexture

	width, height int
	released      bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws a scene through a camera onto a window surface.
//
// Meshes are drawn with a single WGSL shader that switches shading by material kind. GPU buffers,
// textures and bind groups are created on first use, cached by their CPU-side owner, rebuilt when the
// owner's version changes, and released once a frame no longer references them.
type Renderer interface {
	// Render draws one frame: opaque meshes in scene order, then transparent meshes back to front,
	// cleared to the scene background.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw through
	//
	// Returns:
	//   - error: ErrNilScene, ErrReleased, or an error acquiring the frame
	Render(s scene.Scene, cam camera.Camera) error

	// SetSize reconfigures the surface for a new drawable size. A zero size pauses drawing.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	SetSize(width, height int)

	// Size returns the current drawable size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// SetPresentMode sets how frames are delivered to the display and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release releases every GPU resource the renderer holds, then the device and surface.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the window's surface. Adapter or device failures are returned as errors.
//
// Parameters:
//   - win: the window to draw into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the GPU could not be initialized or the mesh shader failed to build
func NewRenderer(win window.Window, options ...RendererBuilderOption) (rr Renderer, err error) {
	if win == nil || win.SurfaceDescriptor() == nil {
		return nil, fmt.Errorf("renderer: window has no surface")
	}

	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[material.PipelineKey]pipeline.Pipeline),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	r.shader, err = MeshShader()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			rr, err = nil, fmt.Errorf("renderer: gpu initialization failed: %v", rec)
		}
	}()
	r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	r.backend.SetPresentMode(r.presentMode)

	r.width, r.height = win.Width(), win.Height()
	if r.width > 0 && r.height > 0 {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			r.backend.Release()
			return nil, fmt.Errorf("renderer: %w", err)
		}
	}

	if err := r.initShared(); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return r, nil
}

// initShared creates the bind group layouts, the frame bind group, the placeholder textures and the caches.
func (r *renderer) initShared() error {
	layouts, err := r.backend.CreateBindGroupLayouts(r.shader)
	if err != nil {
		return err
	}
	if len(layouts) <= groupMaterial {
		return fmt.Errorf("mesh shader declares %d bind groups, want %d", len(layouts), groupMaterial+1)
	}
	r.layouts = layouts

	r.frame = bind_group_provider.NewBindGroupProvider("frame")
	if err := r.backend.InitBindGroup(r.frame, r.layouts[groupFrame], r.shader.BindGroupLayoutDescriptor(groupFrame)); err != nil {
		return err
	}

	if r.placeholder, err = r.uploadStaging("placeholder", whitePixel(), common.SamplerStagingData{}); err != nil {
		return err
	}
	if r.placeholderCube, err = r.uploadStaging("placeholder cube", whiteCube(), common.SamplerStagingData{}); err != nil {
		return err
	}

	r.geometries = newResourceCache[uint64](func(p bind_group_provider.BindGroupProvider) { p.Release() })
	r.objects = newResourceCache[uint64](func(p bind_group_provider.BindGroupProvider) { p.Release() })
	r.textures = newResourceCache[texture.Texture](func(t *gpuTexture) { t.release() })
	r.materials = newResourceCache[*material.Material](func(m *materialBinding) { m.provider.Release() })
	return nil
}

func (r *renderer) uploadStaging(label string, data common.TextureStagingData, sampler common.SamplerStagingData) (*gpuTexture, error) {
	tex, view, err := r.backend.CreateTexture(label, data)
	if err != nil {
		return nil, err
	}
	s, err := r.backend.CreateSampler(label, sampler)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return &gpuTexture{texture: tex, view: view, sampler: s}, nil
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released || (width == r.width && height == r.height) {
		return
	}
	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
	}
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			log.Printf("[Renderer] present mode change failed: %v", err)
		}
	}
}

// drawCall is a fully resolved draw for one mesh.
type drawCall struct {
	pipeline  pipeline.Pipeline
	geometry  bind_group_provider.BindGroupProvider
	object    bind_group_provider.BindGroupProvider
	material  bind_group_provider.BindGroupProvider
	wireframe bool
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if s == nil || cam == nil {
		return ErrNilScene
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	cameraUniform := cam.GPUUniform()
	lightsUniform := light.BuildUniform(s.Lights())
	writes := []bind_group_provider.BufferWrite{
		{Provider: r.frame, Binding: 0, Data: cameraUniform.Marshal()},
		{Provider: r.frame, Binding: 1, Data: lightsUniform.Marshal()},
	}

	items := buildDrawList(s.Meshes(), cam.Frustum(), cam.Position())
	draws := make([]drawCall, 0, len(items))
	written := make(map[*material.Material]struct{}, len(items))
	for _, item := range items {
		dc, err := r.prepare(item.mesh)
		if err != nil {
			log.Printf("[Renderer] skipping mesh %q: %v", item.mesh.Name(), err)
			continue
		}

		objectUniform := item.mesh.GPUUniform()
		writes = append(writes, bind_group_provider.BufferWrite{Provider: dc.object, Binding: 0, Data: objectUniform.Marshal()})

		mat := item.mesh.Material()
		if _, ok := written[mat]; !ok {
			materialUniform := mat.Uniforms()
			writes = append(writes, bind_group_provider.BufferWrite{Provider: dc.material, Binding: 0, Data: materialUniform.Marshal()})
			written[mat] = struct{}{}
		}
		draws = append(draws, dc)
	}

	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(s.Background()); err != nil {
		r.sweep()
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, dc := range draws {
		groups := []bind_group_provider.BindGroupProvider{r.frame, dc.object, dc.material}
		if err := r.backend.DrawCall(dc.pipeline, dc.geometry, dc.wireframe, groups); err != nil {
			log.Printf("[Renderer] draw failed: %v", err)
		}
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.sweep()
	return nil
}

// prepare resolves every GPU resource one mesh needs, creating what is missing.
func (r *renderer) prepare(m mesh.Mesh) (drawCall, error) {
	mat := m.Material()
	key := mat.PipelineKey()

	p, err := r.pipelineFor(key)
	if err != nil {
		return drawCall{}, err
	}
	geo, err := r.geometryProvider(m.Geometry())
	if err != nil {
		return drawCall{}, err
	}
	obj, err := r.objectProvider(m)
	if err != nil {
		return drawCall{}, err
	}
	matProvider, err := r.materialProvider(mat)
	if err != nil {
		return drawCall{}, err
	}
	return drawCall{
		pipeline:  p,
		geometry:  geo,
		object:    obj,
		material:  matProvider,
		wireframe: key.Wireframe,
	}, nil
}

func (r *renderer) pipelineFor(key material.PipelineKey) (pipeline.Pipeline, error) {
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.ForMaterial(r.shader, key)
	if err := r.backend.RegisterRenderPipeline(p, r.layouts); err != nil {
		return nil, err
	}
	r.pipelineCache[key] = p
	return p, nil
}

func (r *renderer) geometryProvider(g geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.geometries.get(g.ID(), g.Version()); ok {
		return p, nil
	}

	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s geometry %d", g.Kind(), g.ID()))
	lines := g.WireframeIndices()
	if err := r.backend.InitMeshBuffers(p, g.Interleave(), g.IndexData(), g.IndexCount(), common.SliceToBytes(lines), len(lines)); err != nil {
		p.Release()
		return nil, err
	}
	r.geometries.put(g.ID(), g.Version(), p)
	return p, nil
}

func (r *renderer) objectProvider(m mesh.Mesh) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.objects.get(m.ID(), 0); ok {
		return p, nil
	}

	p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("mesh %d", m.ID()))
	if err := r.backend.InitBindGroup(p, r.layouts[groupObject], r.shader.BindGroupLayoutDescriptor(groupObject)); err != nil {
		p.Release()
		return nil, err
	}
	r.objects.put(m.ID(), 0, p)
	return p, nil
}

func (r *renderer) materialProvider(mat *material.Material) (bind_group_provider.BindGroupProvider, error) {
	var resolved [material.SlotCount]*gpuTexture
	for slot, tex := range mat.Textures() {
		resolved[slot] = r.textureFor(material.Slot(slot), tex)
	}

	binding, ok := r.materials.get(mat, 0)
	if ok && binding.textures == resolved && binding.provider.BindGroup() != nil {
		return binding.provider, nil
	}
	if !ok {
		binding = &materialBinding{provider: bind_group_provider.NewBindGroupProvider("material " + mat.Name)}
		r.materials.put(mat, 0, binding)
	}

	binding.provider.ReleaseBindGroup()
	for slot, t := range resolved {
		textureIndex, samplerIndex := textureBinding(material.Slot(slot))
		binding.provider.SetTextureView(textureIndex, t.view)
		binding.provider.SetSampler(samplerIndex, t.sampler)
	}
	if err := r.backend.InitBindGroup(binding.provider, r.layouts[groupMaterial], r.shader.BindGroupLayoutDescriptor(groupMaterial)); err != nil {
		return nil, err
	}
	binding.textures = resolved
	return binding.provider, nil
}

// textureFor returns the uploaded texture for a slot, or the matching placeholder when the slot is empty,
// still loading, of the wrong dimension, or failed to upload.
func (r *renderer) textureFor(slot material.Slot, tex texture.Texture) *gpuTexture {
	placeholder := r.placeholder
	if slot == material.SlotEnvMap {
		placeholder = r.placeholderCube
	}
	if tex == nil || !tex.Ready() || tex.IsCube() != (slot == material.SlotEnvMap) {
		return placeholder
	}

	version := tex.Version()
	t, ok := r.textures.get(tex, version)
	if !ok {
		t = r.upload(tex)
		r.textures.put(tex, version, t)
	}
	if t.view == nil {
		return placeholder
	}
	return t
}

func (r *renderer) upload(tex texture.Texture) *gpuTexture {
	data, err := tex.StagingData()
	if err != nil {
		log.Printf("[Renderer] texture %q: %v", tex.Name(), err)
		return &gpuTexture{}
	}
	t, err := r.uploadStaging(tex.Name(), data, tex.SamplerData())
	if err != nil {
		log.Printf("[Renderer] texture %q upload failed: %v", tex.Name(), err)
		return &gpuTexture{}
	}
	return t
}

// sweep releases GPU resources the last frame did not reference.
func (r *renderer) sweep() {
	r.objects.sweep()
	r.materials.sweep()
	r.geometries.sweep()
	r.textures.sweep()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.objects.clear()
	r.materials.clear()
	r.geometries.clear()
	r.textures.clear()
	r.placeholder.release()
	r.placeholderCube.release()
	r.frame.Release()
	for _, l := range r.layouts {
		l.Release()
	}
	r.layouts = nil
	r.backend.Release()
}
