package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var reports []Stats
	p := NewProfiler(
		WithNow(func() time.Time { return now }),
		WithReporter(func(s Stats) { reports = append(reports, s) }),
	)

	for i := 0; i < 49; i++ {
		now = now.Add(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(20 * time.Millisecond)
	assert.True(t, p.Tick())

	require.Len(t, reports, 1)
	assert.InDelta(t, 50, reports[0].FPS, 0.01)
	assert.InDelta(t, 20, reports[0].AvgFrameMs, 0.01)
	assert.InDelta(t, 20, reports[0].MaxFrameMs, 0.01)
	assert.Contains(t, reports[0].String(), "FPS: 50.0")
}

func TestMaxFrameResetsEachInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var reports []Stats
	p := NewProfiler(
		WithNow(func() time.Time { return now }),
		WithInterval(100*time.Millisecond),
		WithReporter(func(s Stats) { reports = append(reports, s) }),
	)

	now = now.Add(150 * time.Millisecond)
	p.Tick()
	now = now.Add(100 * time.Millisecond)
	p.Tick()

	require.Len(t, reports, 2)
	assert.InDelta(t, 150, reports[0].MaxFrameMs, 0.01)
	assert.InDelta(t, 100, reports[1].MaxFrameMs, 0.01)
}
