package game

import (
	"strings"
	"testing"
)

func TestLuaIntentSource_DefaultScriptWalksRight(t *testing.T) {
	source, err := NewLuaIntentSource("walker", DefaultPilotScript)
	if err != nil {
		t.Fatalf("default pilot script should parse: %v", err)
	}

	controller := NewController(Aabb{HalfW: 10, HalfH: 14})
	intent := source.NextIntent(0, controller)
	if intent.MoveX != 1 {
		t.Fatalf("MoveX = %v, want 1", intent.MoveX)
	}
	if intent.Jump {
		t.Fatal("no jump expected while airborne and unblocked")
	}

	controller.Grounded = true
	controller.Contacts.Right = true
	intent = source.NextIntent(1, controller)
	if !intent.Jump {
		t.Fatal("grounded and blocked right should trigger a hop")
	}
}

func TestLuaIntentSource_RejectsBrokenScripts(t *testing.T) {
	if _, err := NewLuaIntentSource("bad", "this is not lua"); err == nil {
		t.Fatal("syntax error should be rejected")
	}

	_, err := NewLuaIntentSource("empty", "x = 1")
	if err == nil || !strings.Contains(err.Error(), "getIntent") {
		t.Fatalf("script without getIntent should be rejected, got: %v", err)
	}
}

func TestLuaIntentSource_ClampsScriptOutput(t *testing.T) {
	source, err := NewLuaIntentSource("wild", `
		function getIntent(tick, state)
			return {moveX = 12.5, jump = false}
		end
	`)
	if err != nil {
		t.Fatalf("script should parse: %v", err)
	}

	intent := source.NextIntent(0, NewController(Aabb{HalfW: 10, HalfH: 14}))
	if intent.MoveX != 1 {
		t.Fatalf("MoveX = %v, want clamped to 1", intent.MoveX)
	}
}

func TestGoalSeekerStrategy_WalksTowardGoalAndSettles(t *testing.T) {
	grid := sampleGrid()
	goal := GridCell{X: 15, Y: 1}
	strategy := NewGoalSeekerStrategy(grid, goal)

	controller := NewController(sampleStart(grid))
	intent := strategy.NextIntent(0, controller)
	if intent.MoveX != 1 {
		t.Fatalf("MoveX = %v, want 1 toward a goal to the right", intent.MoveX)
	}

	goalX, _ := grid.CellCenterWorld(goal)
	controller.Aabb.CenterX = goalX
	intent = strategy.NextIntent(1, controller)
	if intent.MoveX != 0 {
		t.Fatalf("MoveX = %v at the goal, want 0", intent.MoveX)
	}

	controller.Aabb.CenterX = goalX + 100
	intent = strategy.NextIntent(2, controller)
	if intent.MoveX != -1 {
		t.Fatalf("MoveX = %v past the goal, want -1", intent.MoveX)
	}
}

func TestGoalSeekerStrategy_HopsWhenBlocked(t *testing.T) {
	grid := sampleGrid()
	strategy := NewGoalSeekerStrategy(grid, GridCell{X: 15, Y: 1})

	controller := NewController(sampleStart(grid))
	controller.Grounded = true
	controller.Contacts.Right = true
	intent := strategy.NextIntent(0, controller)
	if !intent.Jump {
		t.Fatal("grounded and blocked toward the goal should jump")
	}
}
