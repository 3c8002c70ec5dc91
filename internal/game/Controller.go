package game

// Intent is one tick's worth of movement input: a normalized horizontal axis
// and an edge-triggered jump. The controller does not care whether it came
// from a keyboard, a replay file or a scripted pilot.
type Intent struct {
	MoveX float64
	Jump  bool
}

// Tuning holds the controller's movement constants. Gravity and MaxFallSpeed
// are negative (world +Y is up).
type Tuning struct {
	MaxSpeed       float64
	AccelGround    float64
	AccelAir       float64
	FrictionGround float64
	Gravity        float64
	MaxFallSpeed   float64
	JumpSpeed      float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxSpeed:       DefaultMaxSpeed,
		AccelGround:    DefaultAccelGround,
		AccelAir:       DefaultAccelAir,
		FrictionGround: DefaultFrictionGround,
		Gravity:        DefaultGravity,
		MaxFallSpeed:   DefaultMaxFallSpeed,
		JumpSpeed:      DefaultJumpSpeed,
	}
}

// ContactState records which cardinal sides were blocked by collision
// resolution this tick. It is rebuilt from scratch every tick.
type ContactState struct {
	Left  bool
	Right bool
	Down  bool
	Up    bool
}

// Controller owns one actor's AABB and velocity and advances them one fixed
// tick at a time against a read-only collision grid. Step cannot fail: all
// invalid configuration is rejected at level load, and the grid answers
// out-of-range queries benignly.
//
// Grounded is a two-state machine folded into a bool, derived exclusively
// from the down-contact flag each tick. There is deliberately no coyote-time
// or jump-buffering window.
type Controller struct {
	Aabb      Aabb
	VelocityX float64
	VelocityY float64
	Grounded  bool
	Contacts  ContactState
	Tuning    Tuning
}

func NewController(aabb Aabb) *Controller {
	return &Controller{
		Aabb:   aabb,
		Tuning: DefaultTuning(),
	}
}

// Step advances the actor by one fixed tick: horizontal control, jump,
// gravity, then positional resolution against the grid.
func (c *Controller) Step(intent Intent, dt float64, grid *CollisionGrid) {
	accel := c.Tuning.AccelAir
	if c.Grounded {
		accel = c.Tuning.AccelGround
	}

	if intent.MoveX != 0 {
		target := intent.MoveX * c.Tuning.MaxSpeed
		c.VelocityX = MoveTowards(c.VelocityX, target, accel*dt)
	} else if c.Grounded {
		c.VelocityX = MoveTowards(c.VelocityX, 0, c.Tuning.FrictionGround*dt)
	}
	// Airborne with no input: horizontal velocity carries, no air friction.

	// Jump is edge-triggered and only legal from the ground.
	if intent.Jump && c.Grounded {
		c.VelocityY = c.Tuning.JumpSpeed
		c.Grounded = false
	}

	// Gravity applies every tick, grounded or not; the resolver re-clamps
	// against the floor, so grounded gravity is harmless.
	c.VelocityY += c.Tuning.Gravity * dt
	if c.VelocityY < c.Tuning.MaxFallSpeed {
		c.VelocityY = c.Tuning.MaxFallSpeed
	}

	result := grid.MoveAndCollide(c.Aabb, c.VelocityX*dt, c.VelocityY*dt)
	c.applyMoveResult(result)
}

func (c *Controller) applyMoveResult(result MoveResult) {
	c.Aabb = result.Aabb
	c.Contacts = ContactState{
		Left:  result.BlockedLeft,
		Right: result.BlockedRight,
		Down:  result.BlockedDown,
		Up:    result.BlockedUp,
	}

	if (result.BlockedLeft && c.VelocityX < 0) || (result.BlockedRight && c.VelocityX > 0) {
		c.VelocityX = 0
	}

	if result.BlockedUp && c.VelocityY > 0 {
		c.VelocityY = 0
	}

	// Grounded comes from collision contact, never from a y-position check.
	if result.BlockedDown && c.VelocityY < 0 {
		c.VelocityY = 0
		c.Grounded = true
	} else if result.CollidedY {
		c.VelocityY = 0
		c.Grounded = false
	} else {
		c.Grounded = false
	}
}
