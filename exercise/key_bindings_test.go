package exercise

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-lessons/common"
	"github.com/stretchr/testify/assert"
)

type fakeNavigator struct {
	calls []string
	err   error
}

func (f *fakeNavigator) Select(i int) error {
	f.calls = append(f.calls, "select:"+string(rune('0'+i)))
	return f.err
}

func (f *fakeNavigator) Next() error {
	f.calls = append(f.calls, "next")
	return f.err
}

func (f *fakeNavigator) Previous() error {
	f.calls = append(f.calls, "previous")
	return f.err
}

func TestKeyBindings(t *testing.T) {
	nav := &fakeNavigator{}
	kb := NewKeyBindings(nav)

	for _, key := range []int{common.KeyRight, common.KeyN, common.KeyLeft, common.KeyP, common.Key1, common.Key9, common.Key0} {
		handled, err := kb.HandleKey(key)
		assert.True(t, handled)
		assert.NoError(t, err)
	}

	assert.Equal(t, []string{"next", "next", "previous", "previous", "select:0", "select:8", "select:9"}, nav.calls)
}

func TestKeyBindingsIgnoresUnboundKeys(t *testing.T) {
	nav := &fakeNavigator{}
	handled, err := NewKeyBindings(nav).HandleKey(common.KeyW)
	assert.False(t, handled)
	assert.NoError(t, err)
	assert.Empty(t, nav.calls)
}

func TestKeyBindingsReturnsSwitchError(t *testing.T) {
	boom := errors.New("boom")
	handled, err := NewKeyBindings(&fakeNavigator{err: boom}).HandleKey(common.KeyRight)
	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
}

func TestKeyBindingsDriveSwitcher(t *testing.T) {
	r, s := newABC(t)
	kb := NewKeyBindings(s)

	_, err := kb.HandleKey(common.Key3)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Active())

	_, err = kb.HandleKey(common.Key9)
	assert.NoError(t, err, "out of range digits are ignored")
	assert.Equal(t, 2, s.Active())

	_, err = kb.HandleKey(common.KeyRight)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, "hA", r.calls[len(r.calls)-2])
}
