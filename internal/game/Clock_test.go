package game

import (
	"math"
	"testing"
)

const clockEpsilon = 1e-9

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestClock_Defaults(t *testing.T) {
	clock := NewClock()
	approxEqual(t, clock.FixedDt, 1.0/60.0, clockEpsilon, "FixedDt")
	approxEqual(t, clock.MaxAccumulator, 0.25, clockEpsilon, "MaxAccumulator")
	approxEqual(t, clock.TotalTime, 0, clockEpsilon, "TotalTime")
	if clock.FixedStepCount != 0 || clock.FrameCount != 0 || clock.StepsThisFrame != 0 {
		t.Fatalf("fresh clock has nonzero counters: %+v", clock)
	}
	approxEqual(t, clock.InterpolationAlpha, 0, clockEpsilon, "InterpolationAlpha")
	approxEqual(t, clock.SmoothedFPS, 60.0, 0.1, "SmoothedFPS")
	approxEqual(t, clock.SmoothedFrameTimeMs, 16.667, 0.01, "SmoothedFrameTimeMs")
}

func TestClock_ShouldStepConsumesAccumulator(t *testing.T) {
	clock := NewClock()
	clock.Advance(1.0 / 60.0)

	if !clock.ShouldStep() {
		t.Fatal("one fixed dt in the accumulator should allow a step")
	}
	if clock.FixedStepCount != 1 || clock.StepsThisFrame != 1 {
		t.Fatalf("step counters = %d/%d, want 1/1", clock.FixedStepCount, clock.StepsThisFrame)
	}
	approxEqual(t, clock.TotalTime, 1.0/60.0, clockEpsilon, "TotalTime")

	if clock.ShouldStep() {
		t.Fatal("drained accumulator should not allow a second step")
	}
	if clock.FixedStepCount != 1 {
		t.Fatalf("FixedStepCount = %d after refused step, want 1", clock.FixedStepCount)
	}
}

func TestClock_MultipleStepsPerFrame(t *testing.T) {
	clock := NewClock()
	clock.Advance(3.0 / 60.0)

	steps := 0
	for clock.ShouldStep() {
		steps++
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
	if clock.StepsThisFrame != 3 {
		t.Fatalf("StepsThisFrame = %d, want 3", clock.StepsThisFrame)
	}
	approxEqual(t, clock.TotalTime, 3.0/60.0, clockEpsilon, "TotalTime")
}

func TestClock_SpiralOfDeathCap(t *testing.T) {
	clock := NewClock()
	clock.Advance(1.0)

	approxEqual(t, clock.RealDt, 0.25, clockEpsilon, "RealDt")

	steps := 0
	for clock.ShouldStep() {
		steps++
	}
	// 0.25 / (1/60) = 15
	if steps != 15 {
		t.Fatalf("capped second yielded %d steps, want 15", steps)
	}
}

func TestClock_InterpolationAlpha(t *testing.T) {
	clock := NewClock()
	clock.Advance(1.5 * clock.FixedDt)

	if !clock.ShouldStep() {
		t.Fatal("expected one step")
	}
	if clock.ShouldStep() {
		t.Fatal("expected exactly one step")
	}
	clock.EndFrame()

	approxEqual(t, clock.InterpolationAlpha, 0.5, 1e-6, "InterpolationAlpha")
}

func TestClock_AlphaStaysInUnitInterval(t *testing.T) {
	clock := NewClock()
	deltas := []float64{1.0 / 60.0, 2.5 / 60.0, 0.1, 0.001, 0.25, 0.9}
	for _, dt := range deltas {
		clock.Advance(dt)
		for clock.ShouldStep() {
		}
		clock.EndFrame()

		if clock.InterpolationAlpha < 0 || clock.InterpolationAlpha >= 1 {
			t.Fatalf("alpha = %v for dt = %v, want [0, 1)", clock.InterpolationAlpha, dt)
		}
	}
}

func TestClock_FrameCountIncrements(t *testing.T) {
	clock := NewClock()
	for i := 0; i < 13; i++ {
		clock.Advance(1.0 / 60.0)
		for clock.ShouldStep() {
		}
	}
	if clock.FrameCount != 13 {
		t.Fatalf("FrameCount = %d, want 13", clock.FrameCount)
	}
}

func TestClock_FPSSmoothing(t *testing.T) {
	clock := NewClock()
	dt := 1.0 / 30.0

	// Push the 30 FPS delta through the whole sample window to flush the
	// seeded values.
	for i := 0; i < FPSSampleCount; i++ {
		clock.Advance(dt)
		for clock.ShouldStep() {
		}
	}

	approxEqual(t, clock.SmoothedFPS, 30.0, 0.1, "SmoothedFPS")
	approxEqual(t, clock.SmoothedFrameTimeMs, 33.333, 0.1, "SmoothedFrameTimeMs")
}

func TestClock_IdenticalDeltaSequencesAgree(t *testing.T) {
	deltas := []float64{0.016, 0.017, 0.031, 0.2, 0.008, 1.4, 0.016}

	a := NewClock()
	b := NewClock()
	for _, dt := range deltas {
		a.Advance(dt)
		stepsA := 0
		for a.ShouldStep() {
			stepsA++
		}
		a.EndFrame()

		b.Advance(dt)
		stepsB := 0
		for b.ShouldStep() {
			stepsB++
		}
		b.EndFrame()

		if stepsA != stepsB {
			t.Fatalf("step counts diverged: %d vs %d", stepsA, stepsB)
		}
		if a.InterpolationAlpha != b.InterpolationAlpha {
			t.Fatalf("alphas diverged: %v vs %v", a.InterpolationAlpha, b.InterpolationAlpha)
		}
	}
	if a.FixedStepCount != b.FixedStepCount {
		t.Fatalf("total ticks diverged: %d vs %d", a.FixedStepCount, b.FixedStepCount)
	}
}
