package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-lessons/engine/clock"
	"github.com/Carmen-Shannon/oxy-lessons/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of message loop iterations.
type fakeWindow struct {
	frames   int
	closed   int
	onUpdate func()
	onResize func(width, height int)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func())                         { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))        { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(delta float32))               {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32))             {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32))               {}
func (w *fakeWindow) SetMouseDownCallback(func(button int, x, y float32)) {}
func (w *fakeWindow) SetMouseUpCallback(func(button int, x, y float32))   {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y float32))             {}
func (w *fakeWindow) SetTitle(string)                                     {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor          { return nil }
func (w *fakeWindow) IsRunning() bool                                     { return w.closed == 0 && w.frames > 0 }
func (w *fakeWindow) Width() int                                          { return 800 }
func (w *fakeWindow) Height() int                                         { return 600 }

func (w *fakeWindow) Close() error {
	w.closed++
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() {
		w.frames--
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func fixedClock() *clock.Clock {
	now := time.Unix(0, 0)
	return clock.NewClock(clock.WithNow(func() time.Time {
		now = now.Add(10 * time.Millisecond)
		return now
	}))
}

func TestRunCallsFrameCallbackEachFrame(t *testing.T) {
	w := &fakeWindow{frames: 3}
	var infos []FrameInfo
	e := NewEngine(w, WithClock(fixedClock()), WithFrameCallback(func(info FrameInfo) {
		infos = append(infos, info)
	}))

	require.NoError(t, e.Run())
	require.Len(t, infos, 3)
	for i, info := range infos {
		assert.Equal(t, uint64(i), info.Frame)
		assert.Greater(t, info.Delta, float32(0))
	}
	assert.Greater(t, infos[2].Elapsed, infos[0].Elapsed)
}

func TestPostedTasksRunBeforeFrameCallback(t *testing.T) {
	w := &fakeWindow{frames: 2}
	var order []string
	var e Engine
	e = NewEngine(w, WithClock(fixedClock()), WithFrameCallback(func(info FrameInfo) {
		order = append(order, "frame")
		if info.Frame == 0 {
			e.Post(func() { order = append(order, "posted-from-frame") })
		}
	}))
	e.Post(func() { order = append(order, "a") })
	e.Post(func() { order = append(order, "b") })
	e.Post(nil)

	require.NoError(t, e.Run())
	assert.Equal(t, []string{"a", "b", "frame", "posted-from-frame", "frame"}, order)
}

func TestPostIsSafeAcrossGoroutines(t *testing.T) {
	w := &fakeWindow{frames: 1}
	count := 0
	e := NewEngine(w, WithClock(fixedClock()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Post(func() { count++ })
		}()
	}
	wg.Wait()

	require.NoError(t, e.Run())
	assert.Equal(t, 50, count)
}

func TestResizeIgnoresZeroSizes(t *testing.T) {
	w := &fakeWindow{}
	var sizes [][2]int
	NewEngine(w, WithResizeCallback(func(width, height int) {
		sizes = append(sizes, [2]int{width, height})
	}))

	w.onResize(0, 0)
	w.onResize(1024, 768)
	assert.Equal(t, [][2]int{{1024, 768}}, sizes)
}

func TestQuitClosesWindowOnce(t *testing.T) {
	w := &fakeWindow{frames: 5}
	var e Engine
	frames := 0
	e = NewEngine(w, WithClock(fixedClock()), WithFrameCallback(func(FrameInfo) {
		frames++
		e.Quit()
		e.Quit()
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, 1, frames)
	assert.Equal(t, 1, w.closed)
}

func TestRunRecoversFramePanic(t *testing.T) {
	w := &fakeWindow{frames: 5}
	e := NewEngine(w, WithClock(fixedClock()), WithFrameCallback(func(FrameInfo) {
		panic(errors.New("boom"))
	}))

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, w.closed)
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(&fakeWindow{}).(*engine)
	e.SetRenderFrameLimit(50)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Equal(t, time.Duration(0), e.renderFrameLimit)
}
