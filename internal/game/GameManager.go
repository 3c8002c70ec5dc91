package game

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// FrameMsg tells the TUI one render frame's worth of simulation has been
// drained and the view should redraw. It carries everything the view renders
// so the TUI never reads loop-owned state directly. Grid and Goal point at
// immutable data; a level reload swaps in fresh objects rather than mutating,
// so publishing the pointers through the channel is safe.
type FrameMsg struct {
	Grid      *CollisionGrid
	Goal      *GridCell
	LevelName string

	Actor       Aabb
	VelocityX   float64
	VelocityY   float64
	Grounded    bool
	Contacts    ContactState
	Ticks       uint64
	StepsFrame  int
	Alpha       float64
	FPS         float64
	FrameTimeMs float64
	Autopilot   bool
}

// RunCompleteMsg is emitted once, when the actor reaches the goal cell.
type RunCompleteMsg struct {
	Ticks       uint64
	DurationSec float64
}

// CommandKind enumerates the host-side commands a view can send the manager.
type CommandKind int

const (
	CommandSetMoveX CommandKind = iota
	CommandJump
	CommandToggleAutopilot
	CommandReloadLevel
	CommandStop
)

// Command is a single host-side control message. MoveX is only meaningful for
// CommandSetMoveX.
type Command struct {
	Kind  CommandKind
	MoveX float64
}

// GameManager owns one session's simulation: a clock, a controller and a
// reference to the shared read-only collision grid, plus the latched input
// state between the TUI and the tick loop. One manager per connected player;
// nothing here is global.
//
// Within a frame, ticks run strictly in order and each completes fully before
// the next begins. Level reloads and loop shutdown only ever happen between
// frames, never inside the tick drain.
type GameManager struct {
	PlayerName string
	LevelPath  string
	Level      *LevelFile
	Grid       *CollisionGrid
	Clock      *Clock
	Controller *Controller

	Pilot       IntentSource
	autopilotOn bool

	CommandChannel chan Command
	UpdateChannel  chan tea.Msg

	latchedMoveX  float64
	jumpQueued    bool
	pendingReload bool

	RunStore *RunStore

	IsRunning bool
	completed bool
	startedAt time.Time
}

// NewGameManager wires a session against an already-loaded level. store and
// pilot may be nil (no persistence, keyboard only).
func NewGameManager(playerName, levelPath string, level *LevelFile, store *RunStore, pilot IntentSource) *GameManager {
	gm := &GameManager{
		PlayerName:     playerName,
		LevelPath:      levelPath,
		Level:          level,
		Grid:           level.BuildGrid(),
		Clock:          NewClock(),
		Pilot:          pilot,
		CommandChannel: make(chan Command, 16),
		UpdateChannel:  make(chan tea.Msg, 16),
		RunStore:       store,
	}
	gm.Controller = gm.newControllerAtSpawn()
	return gm
}

func (gm *GameManager) newControllerAtSpawn() *Controller {
	controller := NewController(Aabb{
		CenterX: gm.Level.Spawn.X,
		CenterY: gm.Level.Spawn.Y,
		HalfW:   ActorHalfWidth,
		HalfH:   ActorHalfHeight,
	})
	controller.Tuning = gm.Level.ControllerTuning()
	return controller
}

// StartGameLoop runs the render-frame loop until stopped. Meant to run in its
// own goroutine, one per session.
func (gm *GameManager) StartGameLoop() {
	if gm.IsRunning {
		return
	}
	gm.IsRunning = true
	gm.startedAt = time.Now()
	log.Info("Game loop started", "player", gm.PlayerName, "level", gm.Level.LevelID)

	ticker := time.NewTicker(RenderFrameDuration)
	defer ticker.Stop()

	for gm.IsRunning {
		select {
		case cmd := <-gm.CommandChannel:
			gm.applyCommand(cmd)
		case <-ticker.C:
			gm.runFrame()
		}
	}
	log.Info("Game loop stopped", "player", gm.PlayerName)
}

func (gm *GameManager) applyCommand(cmd Command) {
	switch cmd.Kind {
	case CommandSetMoveX:
		gm.latchedMoveX = Clamp(cmd.MoveX, -1, 1)
	case CommandJump:
		gm.jumpQueued = true
	case CommandToggleAutopilot:
		if gm.Pilot != nil {
			gm.autopilotOn = !gm.autopilotOn
			log.Debug("Autopilot toggled", "on", gm.autopilotOn)
		}
	case CommandReloadLevel:
		// Applied at the top of the next frame; a reload must never land in
		// the middle of a tick drain.
		gm.pendingReload = true
	case CommandStop:
		gm.IsRunning = false
	}
}

func (gm *GameManager) runFrame() {
	if gm.pendingReload {
		gm.pendingReload = false
		gm.reloadLevel()
	}

	gm.Clock.BeginFrame()

	// The queued jump is consumed by the first tick of the frame only, so a
	// held key cannot re-trigger and a press is never duplicated across the
	// catch-up ticks of a slow frame.
	jump := gm.jumpQueued
	gm.jumpQueued = false

	gm.drainTicks(jump)

	gm.Clock.EndFrame()
	gm.pushUpdate(gm.snapshot())
}

func (gm *GameManager) drainTicks(jump bool) {
	for gm.IsRunning && gm.Clock.ShouldStep() {
		// A completed run still consumes its owed ticks without stepping,
		// otherwise BeginFrame keeps filling the accumulator and the
		// published alpha drifts past one.
		if gm.completed {
			continue
		}

		intent := Intent{MoveX: gm.latchedMoveX, Jump: jump}
		if gm.autopilotOn {
			intent = gm.Pilot.NextIntent(gm.Clock.FixedStepCount, gm.Controller)
		}
		jump = false

		gm.Controller.Step(intent, gm.Clock.FixedDt, gm.Grid)

		if gm.goalReached() {
			gm.finishRun()
		}
	}
}

func (gm *GameManager) snapshot() FrameMsg {
	return FrameMsg{
		Grid:        gm.Grid,
		Goal:        gm.Level.Goal,
		LevelName:   gm.Level.Name,
		Actor:       gm.Controller.Aabb,
		VelocityX:   gm.Controller.VelocityX,
		VelocityY:   gm.Controller.VelocityY,
		Grounded:    gm.Controller.Grounded,
		Contacts:    gm.Controller.Contacts,
		Ticks:       gm.Clock.FixedStepCount,
		StepsFrame:  int(gm.Clock.StepsThisFrame),
		Alpha:       gm.Clock.InterpolationAlpha,
		FPS:         gm.Clock.SmoothedFPS,
		FrameTimeMs: gm.Clock.SmoothedFrameTimeMs,
		Autopilot:   gm.autopilotOn,
	}
}

func (gm *GameManager) goalReached() bool {
	if gm.Level.Goal == nil {
		return false
	}
	goalX, goalY := gm.Grid.CellCenterWorld(*gm.Level.Goal)
	half := float64(gm.Grid.CellSize) / 2
	aabb := gm.Controller.Aabb
	return aabb.CenterX > goalX-half && aabb.CenterX < goalX+half &&
		aabb.CenterY > goalY-half && aabb.CenterY < goalY+half
}

func (gm *GameManager) finishRun() {
	gm.completed = true
	duration := time.Since(gm.startedAt).Seconds()
	ticks := gm.Clock.FixedStepCount
	log.Info("Run complete", "player", gm.PlayerName, "level", gm.Level.LevelID,
		"ticks", ticks, "duration_s", duration)

	if gm.RunStore != nil {
		if err := gm.RunStore.SaveRun(gm.PlayerName, gm.Level.LevelID, ticks, duration, true); err != nil {
			log.Error("Run persist failed", "error", err)
		}
	}

	gm.pushUpdate(RunCompleteMsg{Ticks: ticks, DurationSec: duration})
}

func (gm *GameManager) reloadLevel() {
	level, err := LoadLevelFile(gm.LevelPath)
	if err != nil {
		// Keep simulating against the old grid; a reload never leaves the
		// session with a partially valid level.
		log.Error("Level reload failed, keeping current grid", "error", err)
		return
	}

	gm.Level = level
	gm.Grid = level.BuildGrid()
	gm.Controller = gm.newControllerAtSpawn()
	gm.completed = false
	gm.startedAt = time.Now()
	log.Info("Level reloaded", "level", level.LevelID)
}

// pushUpdate hands a message to the TUI without ever blocking the loop; a
// dropped FrameMsg just means the view redraws on the next one.
func (gm *GameManager) pushUpdate(msg tea.Msg) {
	select {
	case gm.UpdateChannel <- msg:
	default:
	}
}

// AutopilotOn reports whether the scripted pilot currently supplies intent.
func (gm *GameManager) AutopilotOn() bool {
	return gm.autopilotOn
}

// Completed reports whether the goal has been reached this run.
func (gm *GameManager) Completed() bool {
	return gm.completed
}
