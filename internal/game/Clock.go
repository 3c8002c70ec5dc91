package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Clock converts irregular wall-clock frame durations into a sequence of
// uniform simulation ticks.
//
// Each render frame the host calls BeginFrame once, then drains ShouldStep in
// a loop (zero, one or several ticks), then calls EndFrame. The accumulator
// holds wall-clock time not yet consumed by a tick; after the drain loop it is
// always in [0, FixedTickSeconds), so InterpolationAlpha is always in [0, 1).
//
// All time arithmetic is float64 seconds. Given the same sequence of frame
// deltas fed through Advance, two clocks produce identical tick counts and
// identical accumulator/alpha values.
type Clock struct {
	FixedDt        float64
	MaxAccumulator float64
	accumulator    float64

	TotalTime      float64
	FixedStepCount uint64
	FrameCount     uint64
	StepsThisFrame uint32

	RealDt             float64
	InterpolationAlpha float64
	lastTime           time.Time
	hasLastTime        bool

	// FPS smoothing over a fixed rolling window. Diagnostics only, never
	// consulted by simulation.
	fpsSamples          [FPSSampleCount]float64
	fpsSampleIndex      int
	SmoothedFPS         float64
	SmoothedFrameTimeMs float64
}

func NewClock() *Clock {
	c := &Clock{
		FixedDt:             FixedTickSeconds,
		MaxAccumulator:      MaxFrameSeconds,
		SmoothedFPS:         float64(SimTickRate),
		SmoothedFrameTimeMs: 1000.0 / float64(SimTickRate),
	}
	for i := range c.fpsSamples {
		c.fpsSamples[i] = FixedTickSeconds
	}
	return c
}

// BeginFrame measures elapsed wall-clock time since the previous call and
// feeds it into the accumulator. The very first call contributes zero time.
func (c *Clock) BeginFrame() {
	now := time.Now()
	dt := 0.0
	if c.hasLastTime {
		dt = now.Sub(c.lastTime).Seconds()
	}
	c.lastTime = now
	c.hasLastTime = true
	c.Advance(dt)
}

// Advance runs one frame's worth of clock bookkeeping with an injected
// elapsed-seconds value, bypassing real time measurement. The host loop goes
// through BeginFrame; tests and replay drivers call Advance directly.
func (c *Clock) Advance(dtSeconds float64) {
	c.RealDt = dtSeconds
	if c.RealDt > c.MaxAccumulator {
		log.Warn("Frame delta exceeded accumulator cap, dropping excess time",
			"frame_ms", c.RealDt*1000.0, "cap_ms", c.MaxAccumulator*1000.0)
		c.RealDt = c.MaxAccumulator
	}

	c.accumulator += c.RealDt
	c.StepsThisFrame = 0
	c.FrameCount++

	c.fpsSamples[c.fpsSampleIndex] = c.RealDt
	c.fpsSampleIndex = (c.fpsSampleIndex + 1) % FPSSampleCount
	sum := 0.0
	for _, s := range c.fpsSamples {
		sum += s
	}
	avg := sum / FPSSampleCount
	c.SmoothedFrameTimeMs = avg * 1000.0
	if avg > 0 {
		c.SmoothedFPS = 1.0 / avg
	} else {
		c.SmoothedFPS = 0
	}
}

// ShouldStep reports whether the accumulator still owes a simulation tick for
// this frame, consuming one fixed tick when it does. Callers loop on it until
// it returns false.
func (c *Clock) ShouldStep() bool {
	if c.accumulator >= c.FixedDt {
		c.accumulator -= c.FixedDt
		c.TotalTime += c.FixedDt
		c.FixedStepCount++
		c.StepsThisFrame++
		return true
	}
	return false
}

// EndFrame publishes the leftover accumulator fraction for visual
// interpolation between the last two simulated states. No simulation effect.
func (c *Clock) EndFrame() {
	c.InterpolationAlpha = c.accumulator / c.FixedDt
}
