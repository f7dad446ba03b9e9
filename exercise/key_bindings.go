package exercise

import (
	"github.com/Carmen-Shannon/oxy-lessons/common"
)

// Navigator is the subset of Switcher that KeyBindings drives.
type Navigator interface {
	Select(i int) error
	Next() error
	Previous() error
}

// KeyBindings maps keyboard input onto switcher navigation.
// Right or N selects the next mode, Left or P the previous one, digits 1-9 select modes 0-8 and 0 selects mode 9.
type KeyBindings struct {
	nav Navigator
}

// NewKeyBindings creates key bindings for nav.
func NewKeyBindings(nav Navigator) *KeyBindings {
	return &KeyBindings{nav: nav}
}

// HandleKey applies the action bound to key, if any.
//
// Parameters:
//   - key: a common.Key* code
//
// Returns:
//   - bool: true if the key is bound to a switcher action
//   - error: the error returned by the switch
func (k *KeyBindings) HandleKey(key int) (bool, error) {
	switch {
	case key == common.KeyRight || key == common.KeyN:
		return true, k.nav.Next()
	case key == common.KeyLeft || key == common.KeyP:
		return true, k.nav.Previous()
	case key == common.Key0:
		return true, k.nav.Select(9)
	case key >= common.Key1 && key <= common.Key9:
		return true, k.nav.Select(key - common.Key1)
	}
	return false, nil
}
