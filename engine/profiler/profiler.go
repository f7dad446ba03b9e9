package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	FPS          float64
	AvgFrameMs   float64
	MaxFrameMs   float64
	HeapMB       float64
	AllocRateMBs float64
	NumGC        uint32
}

// String formats the stats as a single log line.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.1f | Frame: %.2f ms (max %.2f ms) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		s.FPS, s.AvgFrameMs, s.MaxFrameMs, s.HeapMB, s.AllocRateMBs, s.NumGC)
}

// Profiler tracks frame rate, frame time and memory statistics.
// Reports to the log, or to a custom sink, once per interval.
type Profiler struct {
	now            func() time.Time
	report         func(Stats)
	updateInterval time.Duration

	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	maxFrame       time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are reported (default 1s).
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithNow replaces the time source.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithNow(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithReporter replaces the default log.Printf sink.
//
// Parameters:
//   - report: receives each window's stats
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReporter(report func(Stats)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.report = report
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
		report: func(s Stats) {
			log.Printf("[Profiler] %s", s)
		},
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// Tick should be called once per frame.
// Reports statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	if d := currentTime.Sub(p.lastFrame); d > p.maxFrame {
		p.maxFrame = d
	}
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	p.report(Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgFrameMs:   float64(elapsed.Milliseconds()) / float64(p.frameCount),
		MaxFrameMs:   float64(p.maxFrame.Microseconds()) / 1000,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMBs: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:        p.memStats.NumGC,
	})

	p.frameCount = 0
	p.maxFrame = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
