package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelFile is the declarative on-disk description of a level: the collision
// grid geometry plus a handful of host-level extras (spawn point, goal cell,
// optional tuning overrides). Loading either produces a fully valid level or
// fails with a descriptive error; a partially valid grid is never returned.
type LevelFile struct {
	Version  string     `yaml:"version"`
	LevelID  string     `yaml:"levelId"`
	Name     string     `yaml:"name"`
	CellSize int        `yaml:"cellSize"`
	Origin   GridOrigin `yaml:"origin"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Solids   []GridCell `yaml:"solids"`

	Spawn  WorldPoint     `yaml:"spawn"`
	Goal   *GridCell      `yaml:"goal"`
	Tuning *TuningOverlay `yaml:"tuning"`
}

// WorldPoint is a world-space position in the level file.
type WorldPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TuningOverlay carries per-level controller tuning overrides. Zero fields
// keep the defaults.
type TuningOverlay struct {
	MaxSpeed     float64 `yaml:"maxSpeed"`
	AccelGround  float64 `yaml:"accelGround"`
	AccelAir     float64 `yaml:"accelAir"`
	Friction     float64 `yaml:"friction"`
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"maxFallSpeed"`
	JumpSpeed    float64 `yaml:"jumpSpeed"`
}

// LoadLevelFile reads and validates a level description from a YAML file.
func LoadLevelFile(path string) (*LevelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	var level LevelFile
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level YAML from %s: %w", path, err)
	}

	applyLevelDefaults(&level)

	if err := validateLevelFile(&level); err != nil {
		return nil, fmt.Errorf("invalid level file %s: %w", path, err)
	}

	return &level, nil
}

func applyLevelDefaults(level *LevelFile) {
	if level.Name == "" {
		level.Name = level.LevelID
	}

	// Default spawn: one cell-size above the grid origin corner, so an actor
	// dropped there settles onto whatever floor the level provides.
	if level.Spawn.X == 0 && level.Spawn.Y == 0 {
		level.Spawn.X = float64(level.Origin.X) + 2*float64(level.CellSize)
		level.Spawn.Y = float64(level.Origin.Y) + 3*float64(level.CellSize)
	}
}

func validateLevelFile(level *LevelFile) error {
	if level.LevelID == "" {
		return fmt.Errorf("levelId must not be empty")
	}
	if level.CellSize <= 0 {
		return fmt.Errorf("cellSize must be > 0, got %d", level.CellSize)
	}
	if level.Width <= 0 || level.Height <= 0 {
		return fmt.Errorf("width and height must be > 0, got %dx%d", level.Width, level.Height)
	}

	seen := make(map[GridCell]struct{}, len(level.Solids))
	for _, cell := range level.Solids {
		if cell.X < 0 || cell.X >= level.Width || cell.Y < 0 || cell.Y >= level.Height {
			return fmt.Errorf("solid cell out of bounds (%d, %d)", cell.X, cell.Y)
		}
		if _, dup := seen[cell]; dup {
			return fmt.Errorf("duplicate solid cell (%d, %d)", cell.X, cell.Y)
		}
		seen[cell] = struct{}{}
	}

	if level.Goal != nil {
		if level.Goal.X < 0 || level.Goal.X >= level.Width || level.Goal.Y < 0 || level.Goal.Y >= level.Height {
			return fmt.Errorf("goal cell out of bounds (%d, %d)", level.Goal.X, level.Goal.Y)
		}
	}

	return nil
}

// BuildGrid constructs the immutable collision grid from an already-validated
// level file.
func (level *LevelFile) BuildGrid() *CollisionGrid {
	solids := make(map[GridCell]struct{}, len(level.Solids))
	for _, cell := range level.Solids {
		solids[cell] = struct{}{}
	}
	return &CollisionGrid{
		Version:  level.Version,
		LevelID:  level.LevelID,
		CellSize: level.CellSize,
		Origin:   level.Origin,
		Width:    level.Width,
		Height:   level.Height,
		solids:   solids,
	}
}

// ControllerTuning resolves the level's effective tuning: defaults with any
// non-zero overlay fields applied.
func (level *LevelFile) ControllerTuning() Tuning {
	tuning := DefaultTuning()
	if level.Tuning == nil {
		return tuning
	}
	o := level.Tuning
	if o.MaxSpeed != 0 {
		tuning.MaxSpeed = o.MaxSpeed
	}
	if o.AccelGround != 0 {
		tuning.AccelGround = o.AccelGround
	}
	if o.AccelAir != 0 {
		tuning.AccelAir = o.AccelAir
	}
	if o.Friction != 0 {
		tuning.FrictionGround = o.Friction
	}
	if o.Gravity != 0 {
		tuning.Gravity = o.Gravity
	}
	if o.MaxFallSpeed != 0 {
		tuning.MaxFallSpeed = o.MaxFallSpeed
	}
	if o.JumpSpeed != 0 {
		tuning.JumpSpeed = o.JumpSpeed
	}
	return tuning
}
