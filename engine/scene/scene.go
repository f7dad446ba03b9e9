package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/Carmen-Shannon/oxy-lessons/engine/light"
	"github.com/Carmen-Shannon/oxy-lessons/engine/mesh"
)

// Object is anything a Scene can hold. Meshes and lights both satisfy it.
type Object interface {
	ID() uint64
}

// Scene is an ordered collection of meshes and lights plus a background color.
// It holds no GPU state; a renderer reads it each frame. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Add appends objects in order. Objects already present are skipped.
	//
	// Parameters:
	//   - objs: the objects to add
	Add(objs ...Object)

	// Remove removes objects from the scene. Objects not present are ignored.
	//
	// Parameters:
	//   - objs: the objects to remove
	Remove(objs ...Object)

	// Contains reports whether obj is in the scene.
	//
	// Parameters:
	//   - obj: the object to look for
	//
	// Returns:
	//   - bool: true if present
	Contains(obj Object) bool

	// Clear removes every object.
	Clear()

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Objects returns a snapshot of all objects in insertion order.
	//
	// Returns:
	//   - []Object: the objects
	Objects() []Object

	// Meshes returns a snapshot of the meshes in insertion order.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// Lights returns a snapshot of the lights in insertion order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// AmbientLights returns the ambient lights in insertion order.
	//
	// Returns:
	//   - []light.Light: the ambient lights
	AmbientLights() []light.Light

	// PointLights returns the point lights in insertion order.
	//
	// Returns:
	//   - []light.Light: the point lights
	PointLights() []light.Light

	// Background returns the clear color.
	//
	// Returns:
	//   - common.Color: the background
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the background
	SetBackground(c common.Color)
}

type scene struct {
	mu         *sync.Mutex
	name       string
	objects    []Object
	background common.Color
}

var _ Scene = &scene{}

// NewScene creates a new empty Scene with a black background.
//
// Parameters:
//   - opts: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(opts ...SceneBuilderOption) Scene {
	s := &scene{
		mu: &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Add(objs ...Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(objs...)
}

func (s *scene) addLocked(objs ...Object) {
	for _, obj := range objs {
		if obj == nil || s.indexLocked(obj) >= 0 {
			continue
		}
		s.objects = append(s.objects, obj)
	}
}

func (s *scene) Remove(objs ...Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objs {
		if i := s.indexLocked(obj); i >= 0 {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
		}
	}
}

func (s *scene) Contains(obj Object) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(obj) >= 0
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *scene) Objects() []Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Meshes() []mesh.Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []mesh.Mesh
	for _, obj := range s.objects {
		if m, ok := obj.(mesh.Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []light.Light
	for _, obj := range s.objects {
		if l, ok := obj.(light.Light); ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) AmbientLights() []light.Light {
	return filterLights(s.Lights(), light.LightTypeAmbient)
}

func (s *scene) PointLights() []light.Light {
	return filterLights(s.Lights(), light.LightTypePoint)
}

func filterLights(lights []light.Light, t light.LightType) []light.Light {
	var out []light.Light
	for _, l := range lights {
		if l.Type() == t {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) Background() common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

// indexLocked compares by identity. Mesh and light IDs come from separate counters, so IDs alone may collide.
func (s *scene) indexLocked(obj Object) int {
	for i, o := range s.objects {
		if o == obj {
			return i
		}
	}
	return -1
}
