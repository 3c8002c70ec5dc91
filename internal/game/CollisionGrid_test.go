package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildTestGrid(cellSize int, origin GridOrigin, width, height int, solids []GridCell) *CollisionGrid {
	level := &LevelFile{
		Version:  "0.1",
		LevelID:  "test",
		CellSize: cellSize,
		Origin:   origin,
		Width:    width,
		Height:   height,
		Solids:   solids,
	}
	return level.BuildGrid()
}

func writeTempLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp level: %v", err)
	}
	return path
}

func TestLoadLevelFile_ValidFileParses(t *testing.T) {
	path := writeTempLevel(t, `
version: "0.1"
levelId: test
cellSize: 32
origin: {x: 0, y: 0}
width: 4
height: 4
solids:
  - {x: 1, y: 1}
  - {x: 2, y: 1}
`)

	level, err := LoadLevelFile(path)
	if err != nil {
		t.Fatalf("valid level should load: %v", err)
	}
	grid := level.BuildGrid()
	if grid.CellSize != 32 {
		t.Fatalf("CellSize = %d, want 32", grid.CellSize)
	}
	if !grid.IsSolid(1, 1) {
		t.Fatal("(1,1) should be solid")
	}
	if grid.IsSolid(0, 0) {
		t.Fatal("(0,0) should be empty")
	}
}

func TestLoadLevelFile_RejectsDuplicateCells(t *testing.T) {
	path := writeTempLevel(t, `
version: "0.1"
levelId: test
cellSize: 32
width: 4
height: 4
solids:
  - {x: 1, y: 1}
  - {x: 1, y: 1}
`)

	_, err := LoadLevelFile(path)
	if err == nil {
		t.Fatal("duplicate cells should fail to load")
	}
	if !strings.Contains(err.Error(), "duplicate solid cell") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadLevelFile_RejectsOutOfBoundsCell(t *testing.T) {
	path := writeTempLevel(t, `
version: "0.1"
levelId: test
cellSize: 32
width: 4
height: 4
solids:
  - {x: 4, y: 1}
`)

	_, err := LoadLevelFile(path)
	if err == nil || !strings.Contains(err.Error(), "out of bounds") {
		t.Fatalf("out-of-bounds cell should fail, got: %v", err)
	}
}

func TestLoadLevelFile_RejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "zero cell size",
			yaml: "levelId: t\ncellSize: 0\nwidth: 4\nheight: 4\n",
			want: "cellSize",
		},
		{
			name: "negative cell size",
			yaml: "levelId: t\ncellSize: -8\nwidth: 4\nheight: 4\n",
			want: "cellSize",
		},
		{
			name: "zero width",
			yaml: "levelId: t\ncellSize: 32\nwidth: 0\nheight: 4\n",
			want: "width and height",
		},
		{
			name: "zero height",
			yaml: "levelId: t\ncellSize: 32\nwidth: 4\nheight: 0\n",
			want: "width and height",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempLevel(t, tc.yaml)
			_, err := LoadLevelFile(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got: %v", tc.want, err)
			}
		})
	}
}

func TestIsSolid_OutOfRangeIsNotSolid(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 4, 4, []GridCell{{X: 1, Y: 1}})

	probes := []GridCell{{-1, 1}, {4, 1}, {1, -1}, {1, 4}, {-100, -100}, {1000, 1000}}
	for _, p := range probes {
		if grid.IsSolid(p.X, p.Y) {
			t.Fatalf("out-of-range cell (%d,%d) reported solid", p.X, p.Y)
		}
	}
}

func TestMoveAndCollide_BlocksMotionIntoWall(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{{X: 2, Y: 1}})

	start := Aabb{CenterX: 40, CenterY: 40, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, 40, 0)

	// The wall cell's left face is at x=64; the AABB must rest flush.
	if result.Aabb.CenterX > 64.0-start.HalfW+0.001 {
		t.Fatalf("CenterX = %v, want <= %v (flush against wall)", result.Aabb.CenterX, 64.0-start.HalfW)
	}
	if !result.BlockedRight {
		t.Fatal("BlockedRight should be set")
	}
	if result.BlockedLeft {
		t.Fatal("BlockedLeft should not be set")
	}
	if result.CollidedY {
		t.Fatal("CollidedY should not be set for a pure horizontal move")
	}
}

func TestMoveAndCollide_LeftwardMotionBlocks(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{{X: 2, Y: 1}})

	start := Aabb{CenterX: 120, CenterY: 40, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, -40, 0)

	// The wall cell's right face is at x=96.
	approxEqual(t, result.Aabb.CenterX, 96.0+start.HalfW, 0.001, "CenterX")
	if !result.BlockedLeft || result.BlockedRight {
		t.Fatalf("flags = %+v, want BlockedLeft only", result)
	}
}

func TestMoveAndCollide_MovingUpNeverPushesDownward(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, // floor
		{X: 2, Y: 1}, // side obstacle
	})

	// Standing on the floor, touching the side obstacle.
	start := Aabb{CenterX: 48, CenterY: 40, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, 0, 10)

	if result.Aabb.CenterY < start.CenterY-0.0001 {
		t.Fatalf("upward move decreased y: %v -> %v", start.CenterY, result.Aabb.CenterY)
	}
}

func TestMoveAndCollide_EdgeTouchIsNotCollision(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{{X: 2, Y: 1}})

	// Resting exactly flush against the wall's left face at x=64.
	start := Aabb{CenterX: 64 - 8, CenterY: 40, HalfW: 8, HalfH: 8}

	// Moving away from the wall must not read the flush contact as an
	// overlap with the cell being left.
	result := grid.MoveAndCollide(start, -10, 0)
	approxEqual(t, result.Aabb.CenterX, start.CenterX-10, 0.001, "CenterX")
	if result.BlockedLeft || result.BlockedRight {
		t.Fatalf("flags = %+v, want no X block when leaving a touched wall", result)
	}
}

func TestMoveAndCollide_ZeroDeltaIsIdentity(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{{X: 2, Y: 1}})

	start := Aabb{CenterX: 40, CenterY: 40, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, 0, 0)

	if result.Aabb != start {
		t.Fatalf("zero delta moved the AABB: %+v", result.Aabb)
	}
	if result.CollidedY || result.BlockedLeft || result.BlockedRight || result.BlockedDown || result.BlockedUp {
		t.Fatalf("zero delta set flags: %+v", result)
	}
}

func TestMoveAndCollide_NegativeOriginMapping(t *testing.T) {
	origin := GridOrigin{X: -320, Y: -192}
	grid := buildTestGrid(32, origin, 20, 12, []GridCell{{X: 2, Y: 1}})

	if !grid.IsSolid(2, 1) {
		t.Fatal("(2,1) should be solid")
	}

	// World position of cell (2,1) with a negative origin.
	start := Aabb{CenterX: -320 + 40, CenterY: -192 + 40, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, 40, 0)
	approxEqual(t, result.Aabb.CenterX, -320+64.0-8, 0.001, "CenterX")
	if !result.BlockedRight {
		t.Fatal("BlockedRight should be set with a negative origin")
	}
}

func TestMoveAndCollide_FallingLandsOnFloor(t *testing.T) {
	grid := buildTestGrid(32, GridOrigin{}, 8, 8, []GridCell{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	})

	start := Aabb{CenterX: 48, CenterY: 100, HalfW: 8, HalfH: 8}
	result := grid.MoveAndCollide(start, 0, -65)

	// Floor top face is at y=32; the box should rest on it.
	approxEqual(t, result.Aabb.CenterY, 32.0+start.HalfH, 0.001, "CenterY")
	if !result.BlockedDown || !result.CollidedY {
		t.Fatalf("flags = %+v, want BlockedDown and CollidedY", result)
	}
}

func TestSolidCells_StableOrderAndComplete(t *testing.T) {
	solids := []GridCell{{X: 3, Y: 2}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 2}}
	grid := buildTestGrid(32, GridOrigin{}, 4, 4, solids)

	first := grid.SolidCells()
	second := grid.SolidCells()
	if len(first) != len(solids) {
		t.Fatalf("SolidCells returned %d cells, want %d", len(first), len(solids))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("iteration order unstable at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("cells not sorted: %+v before %+v", prev, cur)
		}
	}
}
