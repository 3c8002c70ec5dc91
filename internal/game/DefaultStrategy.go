package game

// GoalSeekerStrategy is the built-in Go pilot: it walks toward the goal cell
// and hops over whatever blocks the way. Used when autopilot is toggled on
// without a custom Lua script.
type GoalSeekerStrategy struct {
	grid  *CollisionGrid
	goalX float64
}

func NewGoalSeekerStrategy(grid *CollisionGrid, goal GridCell) *GoalSeekerStrategy {
	goalX, _ := grid.CellCenterWorld(goal)
	return &GoalSeekerStrategy{grid: grid, goalX: goalX}
}

func (s *GoalSeekerStrategy) NextIntent(tick uint64, controller *Controller) Intent {
	// Dead zone of half a cell around the goal so the pilot settles instead
	// of oscillating across the center.
	deadZone := float64(s.grid.CellSize) / 2
	dx := s.goalX - controller.Aabb.CenterX

	intent := Intent{}
	switch {
	case dx > deadZone:
		intent.MoveX = 1
	case dx < -deadZone:
		intent.MoveX = -1
	}

	blockedAhead := (intent.MoveX > 0 && controller.Contacts.Right) ||
		(intent.MoveX < 0 && controller.Contacts.Left)
	if controller.Grounded && blockedAhead {
		intent.Jump = true
	}

	return intent
}
