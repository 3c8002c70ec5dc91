package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Mshel/gridhopper/internal/game"
	"github.com/Mshel/gridhopper/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// The runner is the local entrypoint: an interactive terminal session by
// default, or a headless deterministic run when -replay or -autopilot is set.
func main() {
	levelPath := flag.String("level", game.DefaultLevelPath, "path to the level yaml")
	replayPath := flag.String("replay", "", "run a recorded intent sequence headlessly and print the final state")
	autopilot := flag.Bool("autopilot", false, "run the built-in goal seeker headlessly until the goal or the tick cap")
	flag.Parse()

	if *replayPath != "" {
		if err := runReplayHeadless(*levelPath, *replayPath); err != nil {
			log.Fatal("Replay run failed", "error", err)
		}
		return
	}

	if *autopilot {
		if err := runAutopilotHeadless(*levelPath); err != nil {
			log.Fatal("Autopilot run failed", "error", err)
		}
		return
	}

	store, err := game.NewRunStore(game.RunDBPath)
	if err != nil {
		log.Fatal("Failed to open run store", "error", err)
	}
	defer store.Close()

	p := tea.NewProgram(ui.NewControllerModel(store, 80, 24), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}

func runReplayHeadless(levelPath, replayPath string) error {
	level, err := game.LoadLevelFile(levelPath)
	if err != nil {
		return err
	}
	seq, err := game.LoadReplayFile(replayPath)
	if err != nil {
		return err
	}

	grid := level.BuildGrid()
	start := game.Aabb{
		CenterX: level.Spawn.X,
		CenterY: level.Spawn.Y,
		HalfW:   game.ActorHalfWidth,
		HalfH:   game.ActorHalfHeight,
	}
	controller := game.RunReplay(grid, start, level.ControllerTuning(), seq)

	printFinalState(level.LevelID, controller)
	return nil
}

// runAutopilotHeadless steps the goal seeker against a fixed-dt clock until
// the goal cell is reached or the tick cap runs out.
func runAutopilotHeadless(levelPath string) error {
	level, err := game.LoadLevelFile(levelPath)
	if err != nil {
		return err
	}
	if level.Goal == nil {
		return fmt.Errorf("level %s has no goal cell, nothing for the autopilot to seek", level.LevelID)
	}

	grid := level.BuildGrid()
	controller := game.NewController(game.Aabb{
		CenterX: level.Spawn.X,
		CenterY: level.Spawn.Y,
		HalfW:   game.ActorHalfWidth,
		HalfH:   game.ActorHalfHeight,
	})
	controller.Tuning = level.ControllerTuning()
	pilot := game.NewGoalSeekerStrategy(grid, *level.Goal)

	goalX, goalY := grid.CellCenterWorld(*level.Goal)
	half := float64(grid.CellSize) / 2

	const tickCap = 60 * game.SimTickRate // one simulated minute

	for tick := uint64(0); tick < tickCap; tick++ {
		intent := pilot.NextIntent(tick, controller)
		controller.Step(intent, game.FixedTickSeconds, grid)

		aabb := controller.Aabb
		if aabb.CenterX > goalX-half && aabb.CenterX < goalX+half &&
			aabb.CenterY > goalY-half && aabb.CenterY < goalY+half {
			fmt.Printf("goal reached after %d ticks (%.2f simulated seconds)\n",
				tick+1, float64(tick+1)*game.FixedTickSeconds)
			printFinalState(level.LevelID, controller)
			return nil
		}
	}

	fmt.Println("goal not reached within the tick cap")
	printFinalState(level.LevelID, controller)
	return nil
}

func printFinalState(levelID string, controller *game.Controller) {
	fmt.Printf("level: %s\n", levelID)
	fmt.Printf("position: %.4f, %.4f\n", controller.Aabb.CenterX, controller.Aabb.CenterY)
	fmt.Printf("velocity: %.4f, %.4f\n", controller.VelocityX, controller.VelocityY)
	fmt.Printf("grounded: %v\n", controller.Grounded)
}
