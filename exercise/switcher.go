// Package exercise drives a lesson's list of named preset configurations, activating exactly one at a time.
package exercise

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoModes is returned by NewSwitcher when the mode list is empty.
	ErrNoModes = errors.New("exercise: at least one mode is required")
	// ErrNilHandler is returned by NewSwitcher when a mode has no handler.
	ErrNilHandler = errors.New("exercise: mode handler is nil")
)

// Mode is one named configuration the switcher can activate.
// The handler receives the lesson-owned context and performs all setup for the mode.
type Mode[C any] struct {
	Name    string
	Handler func(ctx C) error
}

// switcher implements the Switcher interface.
type switcher[C any] struct {
	mu *sync.Mutex

	ctx    C
	modes  []Mode[C]
	active int

	before   func(ctx C) error
	after    func(ctx C) error
	onSwitch func(index int, name string)
}

// Switcher activates one Mode at a time, running the optional before and after hooks around every activation.
// A switch runs before, the target handler and after as one uninterrupted sequence; the active index only
// changes once all three have succeeded.
type Switcher[C any] interface {
	// Select activates the mode at index i.
	// Out of range indices and the already active index are ignored.
	//
	// Parameters:
	//   - i: the index of the mode to activate
	//
	// Returns:
	//   - error: the first error returned by before, the handler or after, wrapped with the mode name
	Select(i int) error

	// SelectName activates the first mode with the given name. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the mode name
	//
	// Returns:
	//   - error: same as Select
	SelectName(name string) error

	// Next activates the mode after the active one, wrapping to the first mode.
	//
	// Returns:
	//   - error: same as Select
	Next() error

	// Previous activates the mode before the active one, wrapping to the last mode.
	//
	// Returns:
	//   - error: same as Select
	Previous() error

	// Active returns the index of the active mode.
	//
	// Returns:
	//   - int: the active index
	Active() int

	// ActiveName returns the name of the active mode.
	//
	// Returns:
	//   - string: the active mode name
	ActiveName() string

	// Names returns the mode names in registration order.
	//
	// Returns:
	//   - []string: a copy of the mode names
	Names() []string

	// Len returns the number of registered modes.
	//
	// Returns:
	//   - int: the mode count
	Len() int
}

var _ Switcher[any] = &switcher[any]{}

// NewSwitcher creates a Switcher over modes and immediately activates the first one by running
// before, modes[0].Handler and after in that order.
//
// Parameters:
//   - ctx: the context passed to every handler and hook
//   - modes: the ordered, non-empty list of modes
//   - options: functional options for the hooks
//
// Returns:
//   - Switcher[C]: the switcher with mode 0 active
//   - error: ErrNoModes, ErrNilHandler, or the error raised while activating mode 0
func NewSwitcher[C any](ctx C, modes []Mode[C], options ...SwitcherBuilderOption[C]) (Switcher[C], error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}
	for i, m := range modes {
		if m.Handler == nil {
			return nil, fmt.Errorf("mode %d (%q): %w", i, m.Name, ErrNilHandler)
		}
	}

	s := &switcher[C]{
		mu:    &sync.Mutex{},
		ctx:   ctx,
		modes: append([]Mode[C](nil), modes...),
	}
	for _, opt := range options {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.activate(0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *switcher[C]) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(i)
}

func (s *switcher[C]) SelectName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.modes {
		if m.Name == name {
			return s.selectLocked(i)
		}
	}
	return nil
}

func (s *switcher[C]) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked((s.active + 1) % len(s.modes))
}

func (s *switcher[C]) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.modes)
	return s.selectLocked((s.active - 1 + n) % n)
}

func (s *switcher[C]) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *switcher[C]) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes[s.active].Name
}

func (s *switcher[C]) Names() []string {
	names := make([]string, len(s.modes))
	for i, m := range s.modes {
		names[i] = m.Name
	}
	return names
}

func (s *switcher[C]) Len() int {
	return len(s.modes)
}

func (s *switcher[C]) selectLocked(i int) error {
	if i < 0 || i >= len(s.modes) || i == s.active {
		return nil
	}
	return s.activate(i)
}

// activate runs the before/handler/after sequence for mode i. The caller must hold mu.
func (s *switcher[C]) activate(i int) error {
	m := s.modes[i]
	if s.before != nil {
		if err := s.before(s.ctx); err != nil {
			return fmt.Errorf("mode %q: before: %w", m.Name, err)
		}
	}
	if err := m.Handler(s.ctx); err != nil {
		return fmt.Errorf("mode %q: %w", m.Name, err)
	}
	if s.after != nil {
		if err := s.after(s.ctx); err != nil {
			return fmt.Errorf("mode %q: after: %w", m.Name, err)
		}
	}

	s.active = i
	if s.onSwitch != nil {
		s.onSwitch(i, m.Name)
	}
	return nil
}
