// Package lessons holds the runnable lessons and the app that hosts them.
package lessons

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-lessons/common"
)

// ErrUnknownLesson is returned by Lookup for names that are not registered.
var ErrUnknownLesson = errors.New("unknown lesson")

// Lesson is a self-contained demo scene.
// Setup runs once before the frame loop starts; Update and the key handlers run on the frame loop.
type Lesson interface {
	// Name returns the name the lesson is selected by on the command line.
	//
	// Returns:
	//   - string: the lesson name
	Name() string

	// Setup builds the lesson's scene, camera and controls into ctx.
	//
	// Parameters:
	//   - ctx: the lesson context
	//
	// Returns:
	//   - error: error if the scene cannot be built
	Setup(ctx *Context) error

	// Update advances the lesson by one frame.
	//
	// Parameters:
	//   - info: the frame timing
	Update(info common.FrameInfo)

	// HandleKeyDown reacts to a key press.
	//
	// Parameters:
	//   - key: a common.Key* code
	//
	// Returns:
	//   - bool: true if the lesson consumed the key
	HandleKeyDown(key int) bool

	// HandleKeyUp reacts to a key release.
	//
	// Parameters:
	//   - key: a common.Key* code
	HandleKeyUp(key int)
}

var registry = map[string]func() Lesson{
	"animations": func() Lesson { return NewAnimations() },
	"textures":   func() Lesson { return NewTextures() },
	"materials":  func() Lesson { return NewMaterials() },
}

// Names lists the registered lessons in alphabetical order.
//
// Returns:
//   - []string: the lesson names
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup creates a fresh instance of the named lesson.
//
// Parameters:
//   - name: the lesson name
//
// Returns:
//   - Lesson: the lesson
//   - error: ErrUnknownLesson if name is not registered
func Lookup(name string) (Lesson, error) {
	newLesson, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownLesson)
	}
	return newLesson(), nil
}
