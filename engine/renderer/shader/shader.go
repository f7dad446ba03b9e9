package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoVertexEntry is returned when the composed source has no @vertex function.
	ErrNoVertexEntry = errors.New("shader: no @vertex entry point")

	// ErrNoFragmentEntry is returned when the composed source has no @fragment function.
	ErrNoFragmentEntry = errors.New("shader: no @fragment entry point")
)

// shader is the implementation of the Shader interface.
type shader struct {
	key            string
	source         string
	vertexEntry    string
	fragmentEntry  string
	vertexLayouts  []wgpu.VertexBufferLayout
	groups         map[int]wgpu.BindGroupLayoutDescriptor
	bindingNames   map[int]map[int]string
	structLayouts  map[string]wgslTypeLayout
	moduleDescribe *wgpu.ShaderModuleDescriptor
}

// Shader is a parsed WGSL module holding one vertex and one fragment entry point.
// Layout metadata (vertex buffers, bind groups, struct sizes) is derived from the source
// so pipelines and bind groups never disagree with the shader.
type Shader interface {
	// Key returns the unique identifier of this shader, used as a label and cache key.
	//
	// Returns:
	//   - string: the key
	Key() string

	// Source returns the composed WGSL source.
	//
	// Returns:
	//   - string: the source
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string

	// VertexLayouts returns one buffer layout per vertex input struct, in declaration order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout descriptor of one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, empty if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every declared bind group keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingName returns the variable name bound at group/binding, or "" when absent.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name
	BindingName(group, binding int) string

	// BindingByName looks up the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the @group index
	//   - name: the variable name
	//
	// Returns:
	//   - int: the binding index, or -1
	//   - bool: true if found
	BindingByName(group int, name string) (int, bool)

	// StructSize returns the host-shareable byte size of a struct declared in the source.
	//
	// Parameters:
	//   - name: the struct name
	//
	// Returns:
	//   - uint64: the size in bytes
	//   - bool: true if the struct exists and every field resolved
	StructSize(name string) (uint64, bool)

	// Module returns the shader module descriptor used to create the GPU module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader composes WGSL sources in order and parses the result.
// Shared struct definitions are typically passed first, followed by the module holding the entry points.
// Every binding is made visible to both the vertex and fragment stages.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - sources: WGSL fragments concatenated in order
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrNoVertexEntry or ErrNoFragmentEntry if an entry point is missing
func NewShader(key string, sources ...string) (Shader, error) {
	src := strings.Join(sources, "\n")
	cleaned := stripComments(src)

	s := &shader{
		key:           key,
		source:        src,
		vertexEntry:   findEntryPoint(cleaned, vertexEntryRegex),
		fragmentEntry: findEntryPoint(cleaned, fragmentEntryRegex),
	}
	if s.vertexEntry == "" {
		return nil, fmt.Errorf("%s: %w", key, ErrNoVertexEntry)
	}
	if s.fragmentEntry == "" {
		return nil, fmt.Errorf("%s: %w", key, ErrNoFragmentEntry)
	}

	structs := parseStructBlocks(cleaned)
	s.structLayouts = computeStructLayouts(structs)
	s.vertexLayouts = vertexLayoutsFor(structs)
	s.groups, s.bindingNames = parseBindGroups(cleaned, s.structLayouts, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	s.moduleDescribe = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: src,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.groups[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.groups
}

func (s *shader) BindingName(group, binding int) string {
	return s.bindingNames[group][binding]
}

func (s *shader) BindingByName(group int, name string) (int, bool) {
	for binding, n := range s.bindingNames[group] {
		if n == name {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) StructSize(name string) (uint64, bool) {
	l, ok := s.structLayouts[name]
	return l.size, ok
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.moduleDescribe
}
