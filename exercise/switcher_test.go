package exercise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) mode(name string) Mode[*recorder] {
	return Mode[*recorder]{Name: name, Handler: func(ctx *recorder) error {
		ctx.calls = append(ctx.calls, "h"+name)
		return nil
	}}
}

func hooks() []SwitcherBuilderOption[*recorder] {
	return []SwitcherBuilderOption[*recorder]{
		WithBefore(func(ctx *recorder) error {
			ctx.calls = append(ctx.calls, "before")
			return nil
		}),
		WithAfter(func(ctx *recorder) error {
			ctx.calls = append(ctx.calls, "after")
			return nil
		}),
	}
}

func newABC(t *testing.T) (*recorder, Switcher[*recorder]) {
	t.Helper()
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A"), r.mode("B"), r.mode("C")}, hooks()...)
	require.NoError(t, err)
	return r, s
}

func TestNewSwitcherActivatesFirstMode(t *testing.T) {
	r, s := newABC(t)

	assert.Equal(t, []string{"before", "hA", "after"}, r.calls)
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, "A", s.ActiveName())
	assert.Equal(t, []string{"A", "B", "C"}, s.Names())
	assert.Equal(t, 3, s.Len())
}

func TestNewSwitcherWithoutHooks(t *testing.T) {
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A")})
	require.NoError(t, err)
	assert.Equal(t, []string{"hA"}, r.calls)
	assert.Equal(t, 0, s.Active())
}

func TestNewSwitcherRejectsEmptyModes(t *testing.T) {
	s, err := NewSwitcher[*recorder](&recorder{}, nil)
	assert.ErrorIs(t, err, ErrNoModes)
	assert.Nil(t, s)
}

func TestNewSwitcherRejectsNilHandler(t *testing.T) {
	r := &recorder{}
	_, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A"), {Name: "B"}}, hooks()...)
	assert.ErrorIs(t, err, ErrNilHandler)
	assert.Empty(t, r.calls, "nothing runs when construction is invalid")
}

func TestNewSwitcherFailsWhenFirstModeFails(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{{Name: "A", Handler: func(*recorder) error { return boom }}}, hooks()...)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s)
	assert.Equal(t, []string{"before"}, r.calls)
}

func TestNextWrapsAround(t *testing.T) {
	r, s := newABC(t)

	for range 3 {
		require.NoError(t, s.Next())
	}

	assert.Equal(t, []string{
		"before", "hA", "after",
		"before", "hB", "after",
		"before", "hC", "after",
		"before", "hA", "after",
	}, r.calls)
	assert.Equal(t, 0, s.Active())
}

func TestPreviousWrapsAround(t *testing.T) {
	r, s := newABC(t)

	require.NoError(t, s.Previous())
	assert.Equal(t, 2, s.Active())
	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.Active())
	assert.Equal(t, []string{
		"before", "hA", "after",
		"before", "hC", "after",
		"before", "hB", "after",
	}, r.calls)
}

func TestSelectRunsSequenceOnce(t *testing.T) {
	r, s := newABC(t)
	r.calls = nil

	require.NoError(t, s.Select(2))
	assert.Equal(t, []string{"before", "hC", "after"}, r.calls)
	assert.Equal(t, 2, s.Active())
	assert.Equal(t, "C", s.ActiveName())
}

func TestSelectOutOfRangeIsIgnored(t *testing.T) {
	r, s := newABC(t)
	r.calls = nil

	assert.NoError(t, s.Select(-1))
	assert.NoError(t, s.Select(3))
	assert.NoError(t, s.Select(100))
	assert.Empty(t, r.calls)
	assert.Equal(t, 0, s.Active())
}

func TestSelectActiveModeIsNoop(t *testing.T) {
	r, s := newABC(t)
	require.NoError(t, s.Select(1))
	r.calls = nil

	require.NoError(t, s.Select(1))
	assert.Empty(t, r.calls)
	assert.Equal(t, 1, s.Active())
}

func TestSingleModeNextIsNoop(t *testing.T) {
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A")}, hooks()...)
	require.NoError(t, err)
	r.calls = nil

	require.NoError(t, s.Next())
	require.NoError(t, s.Previous())
	assert.Empty(t, r.calls)
}

func TestSelectName(t *testing.T) {
	r, s := newABC(t)
	r.calls = nil

	require.NoError(t, s.SelectName("C"))
	assert.Equal(t, 2, s.Active())
	require.NoError(t, s.SelectName("missing"))
	assert.Equal(t, 2, s.Active())
	assert.Equal(t, []string{"before", "hC", "after"}, r.calls)
}

func TestActiveIndexUpdatesAfterHooks(t *testing.T) {
	var s Switcher[*recorder]
	var seenInAfter []int
	r := &recorder{}
	modes := []Mode[*recorder]{r.mode("A"), r.mode("B")}

	// Active() would deadlock inside the hook, so the index is read through the concrete type.
	s, err := NewSwitcher(r, modes, WithAfter(func(*recorder) error {
		if s != nil {
			seenInAfter = append(seenInAfter, s.(*switcher[*recorder]).active)
		}
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, s.Select(1))
	assert.Equal(t, []int{0}, seenInAfter)
	assert.Equal(t, 1, s.Active())
}

func TestHandlerErrorLeavesActiveModeUnchanged(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	r := &recorder{}
	modes := []Mode[*recorder]{
		r.mode("A"),
		{Name: "B", Handler: func(ctx *recorder) error {
			ctx.calls = append(ctx.calls, "hB")
			if fail {
				return boom
			}
			return nil
		}},
	}
	s, err := NewSwitcher(r, modes, hooks()...)
	require.NoError(t, err)
	r.calls = nil

	err = s.Select(1)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"B"`)
	assert.Equal(t, []string{"before", "hB"}, r.calls, "after does not run and nothing is retried")
	assert.Equal(t, 0, s.Active())

	fail = false
	r.calls = nil
	require.NoError(t, s.Select(1))
	assert.Equal(t, []string{"before", "hB", "after"}, r.calls)
	assert.Equal(t, 1, s.Active())
}

func TestHookErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	failBefore, failAfter := false, false
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A"), r.mode("B")},
		WithBefore(func(*recorder) error {
			if failBefore {
				return boom
			}
			return nil
		}),
		WithAfter(func(*recorder) error {
			if failAfter {
				return boom
			}
			return nil
		}),
	)
	require.NoError(t, err)
	r.calls = nil

	failBefore = true
	assert.ErrorIs(t, s.Next(), boom)
	assert.Empty(t, r.calls, "handler does not run when before fails")
	assert.Equal(t, 0, s.Active())

	failBefore, failAfter = false, true
	assert.ErrorIs(t, s.Next(), boom)
	assert.Equal(t, []string{"hB"}, r.calls)
	assert.Equal(t, 0, s.Active())
}

func TestOnSwitchNotifications(t *testing.T) {
	type event struct {
		index int
		name  string
	}
	var events []event
	r := &recorder{}
	s, err := NewSwitcher(r, []Mode[*recorder]{r.mode("A"), r.mode("B")},
		WithOnSwitch[*recorder](func(i int, name string) {
			events = append(events, event{i, name})
		}),
	)
	require.NoError(t, err)
	require.NoError(t, s.Next())
	require.NoError(t, s.Select(1))

	assert.Equal(t, []event{{0, "A"}, {1, "B"}}, events)
}

func TestNamesReturnsCopy(t *testing.T) {
	_, s := newABC(t)
	names := s.Names()
	names[0] = "changed"
	assert.Equal(t, "A", s.Names()[0])
}
