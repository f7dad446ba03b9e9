package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestElapsedTimeAutoStarts(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := NewClock(WithNow(ft.now))

	assert.False(t, c.Running())
	assert.Equal(t, float32(0), c.ElapsedTime())
	assert.True(t, c.Running())

	ft.advance(1500 * time.Millisecond)
	assert.InDelta(t, 1.5, c.ElapsedTime(), 1e-6)
	ft.advance(500 * time.Millisecond)
	assert.InDelta(t, 2.0, c.ElapsedTime(), 1e-6)
}

func TestDeltaSinceLastRead(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now))
	c.Start()

	ft.advance(16 * time.Millisecond)
	assert.InDelta(t, 0.016, c.Delta(), 1e-6)

	ft.advance(4 * time.Millisecond)
	c.ElapsedTime()
	ft.advance(10 * time.Millisecond)
	assert.InDelta(t, 0.010, c.Delta(), 1e-6, "ElapsedTime moves the delta reference")
	assert.InDelta(t, 0.030, c.ElapsedTime(), 1e-6)
}

func TestStopFreezesElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now))
	c.Start()
	ft.advance(time.Second)
	c.Stop()
	ft.advance(time.Second)

	assert.False(t, c.Running())
	assert.InDelta(t, 1.0, c.ElapsedTime(), 1e-6)
	assert.Equal(t, float32(0), c.Delta())
}

func TestStartResets(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now))
	c.Start()
	ft.advance(3 * time.Second)
	c.Start()
	ft.advance(time.Second)
	assert.InDelta(t, 1.0, c.ElapsedTime(), 1e-6)
}

func TestWithoutAutoStart(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now), WithAutoStart(false))
	ft.advance(time.Second)
	assert.Equal(t, float32(0), c.ElapsedTime())
	assert.False(t, c.Running())
}
