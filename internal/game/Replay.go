package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReplaySequence is a recorded input script: a fixed dt plus run-length
// encoded intent frames. Running the same sequence against the same level
// always reaches the same final state, which makes replays the main tool for
// regression-checking simulation determinism.
type ReplaySequence struct {
	FixedDt float64
	Frames  []ReplayFrame
}

// ReplayFrame is one intent held for Repeat consecutive ticks.
type ReplayFrame struct {
	MoveX  float64 `yaml:"moveX"`
	Jump   bool    `yaml:"jump"`
	Repeat int     `yaml:"repeat"`
}

// ExpandedIntents unrolls the run-length encoding into one Intent per tick,
// clamping MoveX into the normalized range.
func (seq *ReplaySequence) ExpandedIntents() []Intent {
	var out []Intent
	for _, frame := range seq.Frames {
		repeat := frame.Repeat
		if repeat < 1 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			out = append(out, Intent{
				MoveX: Clamp(frame.MoveX, -1, 1),
				Jump:  frame.Jump,
			})
		}
	}
	return out
}

// replayFile is the on-disk shape. FixedDt is a pointer so an omitted field
// can be defaulted while an explicit non-positive value is rejected.
type replayFile struct {
	FixedDt *float64      `yaml:"fixedDt"`
	Frames  []ReplayFrame `yaml:"frames"`
}

// LoadReplayFile reads and validates a replay script from a YAML file.
func LoadReplayFile(path string) (*ReplaySequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay file %s: %w", path, err)
	}

	var file replayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse replay YAML from %s: %w", path, err)
	}

	seq := ReplaySequence{Frames: file.Frames}
	if file.FixedDt == nil {
		seq.FixedDt = FixedTickSeconds
	} else {
		seq.FixedDt = *file.FixedDt
	}

	if err := validateReplay(&seq); err != nil {
		return nil, fmt.Errorf("invalid replay file %s: %w", path, err)
	}

	return &seq, nil
}

func validateReplay(seq *ReplaySequence) error {
	if seq.FixedDt <= 0 {
		return fmt.Errorf("fixedDt must be > 0, got %v", seq.FixedDt)
	}
	if len(seq.Frames) == 0 {
		return fmt.Errorf("frames list is empty")
	}
	return nil
}

// RunReplay steps a fresh controller through the whole sequence and returns
// its final state.
func RunReplay(grid *CollisionGrid, start Aabb, tuning Tuning, seq *ReplaySequence) *Controller {
	controller := NewController(start)
	controller.Tuning = tuning
	for _, intent := range seq.ExpandedIntents() {
		controller.Step(intent, seq.FixedDt, grid)
	}
	return controller
}
