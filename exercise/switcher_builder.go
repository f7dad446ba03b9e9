package exercise

// SwitcherBuilderOption is a functional option for configuring a Switcher.
type SwitcherBuilderOption[C any] func(*switcher[C])

// WithBefore sets the hook run before every mode handler, typically to tear down the previous mode's state.
//
// Parameters:
//   - fn: the hook, receiving the switcher context
//
// Returns:
//   - SwitcherBuilderOption[C]: option function to apply
func WithBefore[C any](fn func(ctx C) error) SwitcherBuilderOption[C] {
	return func(s *switcher[C]) {
		s.before = fn
	}
}

// WithAfter sets the hook run after every mode handler, typically to attach the newly configured objects.
//
// Parameters:
//   - fn: the hook, receiving the switcher context
//
// Returns:
//   - SwitcherBuilderOption[C]: option function to apply
func WithAfter[C any](fn func(ctx C) error) SwitcherBuilderOption[C] {
	return func(s *switcher[C]) {
		s.after = fn
	}
}

// WithOnSwitch registers a notification called after each completed switch, including the initial one.
// It runs while the switch is still held, so it must not call back into the switcher.
//
// Parameters:
//   - fn: receives the new active index and its mode name
//
// Returns:
//   - SwitcherBuilderOption[C]: option function to apply
func WithOnSwitch[C any](fn func(index int, name string)) SwitcherBuilderOption[C] {
	return func(s *switcher[C]) {
		s.onSwitch = fn
	}
}
