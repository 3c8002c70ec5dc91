package game

import "time"

const (
	// Simulation runs at a locked 60Hz regardless of how fast frames render.
	SimTickRate      = 60
	FixedTickSeconds = 1.0 / float64(SimTickRate)

	// A single render frame may contribute at most this much wall-clock time
	// to the simulation accumulator. Anything above is dropped so a slow frame
	// cannot queue enough catch-up ticks to make the next frame slow too.
	MaxFrameSeconds = 0.25

	FPSSampleCount = 60

	// How often the host loop wakes up to render and drain ticks.
	RenderFrameDuration = 16 * time.Millisecond

	DefaultLevelPath = "levels/meadow.yaml"
	LevelDir         = "levels"

	RunDBPath = "runs.db"
)

// Actor half-extents in world units. Fixed for the actor's lifetime.
const (
	ActorHalfWidth  = 10.0
	ActorHalfHeight = 14.0
)

// Default controller tuning, in world units (pixels) and seconds.
// Gravity and MaxFallSpeed are negative because world +Y points up.
const (
	DefaultMaxSpeed       = 180.0
	DefaultAccelGround    = 1600.0
	DefaultAccelAir       = 900.0
	DefaultFrictionGround = 2000.0
	DefaultGravity        = -1800.0
	DefaultMaxFallSpeed   = -900.0
	DefaultJumpSpeed      = 620.0
)
