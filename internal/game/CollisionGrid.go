package game

import (
	"math"
	"sort"
)

// CollisionGrid is the gameplay-truth representation of a level: an
// axis-aligned grid of unit cells that are either solid or empty. It is
// immutable once built and shared read-only by every session stepping against
// it.
//
// Movement resolution is axis-separable move-and-slide: X is resolved fully
// first, then Y starts from the already-corrected X position. Resolving the
// axes jointly (swept AABB against the Minkowski sum) would be more accurate
// but much harder to reason about around corners; sequential resolution gives
// the slide-along-walls behavior platformer players expect and stays simple
// enough to test exhaustively.
type CollisionGrid struct {
	Version string
	LevelID string

	CellSize int
	Origin   GridOrigin
	Width    int
	Height   int

	solids map[GridCell]struct{}
}

// GridOrigin anchors cell (0,0) in world space. World +Y points up.
type GridOrigin struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// GridCell is an integer cell coordinate within [0,Width) x [0,Height).
type GridCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Aabb is an actor collision volume: a moving center plus half-extents that
// are fixed for the actor's lifetime. No rotation.
type Aabb struct {
	CenterX float64
	CenterY float64
	HalfW   float64
	HalfH   float64
}

// MoveResult reports where an AABB ended up and which sides blocked it, so
// callers can zero velocities without re-deriving direction from positions.
type MoveResult struct {
	Aabb         Aabb
	CollidedY    bool
	BlockedLeft  bool
	BlockedRight bool
	BlockedDown  bool
	BlockedUp    bool
}

const (
	// Inward epsilon at AABB edges during cell scans, so a box exactly
	// touching a cell boundary is not read as overlapping the cell beyond it.
	edgeEpsilon = 0.001
	// Tolerance when comparing the resolved position against the unclamped
	// candidate to decide whether a collision actually happened.
	collideEpsilon = 0.0001
)

// IsSolid reports whether the cell is in bounds and solid. Out-of-range
// coordinates are simply not solid; movement resolution relies on this so it
// never needs bounds branches of its own.
func (g *CollisionGrid) IsSolid(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	_, ok := g.solids[GridCell{X: x, Y: y}]
	return ok
}

// SolidCells returns every solid cell in a stable order. Render and debug
// layers consume this; simulation never does.
func (g *CollisionGrid) SolidCells() []GridCell {
	cells := make([]GridCell, 0, len(g.solids))
	for cell := range g.solids {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// SolidCount returns the number of solid cells.
func (g *CollisionGrid) SolidCount() int {
	return len(g.solids)
}

// MoveAndCollide resolves a requested (dx, dy) displacement of aabb against
// the grid, X axis first, then Y from the X-resolved position.
func (g *CollisionGrid) MoveAndCollide(aabb Aabb, dx, dy float64) MoveResult {
	resolvedX := g.resolveAxisX(aabb, dx)
	collidedX := math.Abs(resolvedX-(aabb.CenterX+dx)) > collideEpsilon

	moved := aabb
	moved.CenterX = resolvedX
	resolvedY := g.resolveAxisY(moved, dy)
	collidedY := math.Abs(resolvedY-(aabb.CenterY+dy)) > collideEpsilon
	moved.CenterY = resolvedY

	return MoveResult{
		Aabb:         moved,
		CollidedY:    collidedY,
		BlockedLeft:  collidedX && dx < 0,
		BlockedRight: collidedX && dx > 0,
		BlockedDown:  collidedY && dy < 0,
		BlockedUp:    collidedY && dy > 0,
	}
}

func (g *CollisionGrid) resolveAxisX(aabb Aabb, dx float64) float64 {
	if dx == 0 {
		return aabb.CenterX
	}

	candidateX := aabb.CenterX + dx
	y0 := g.worldToCellY(aabb.CenterY - aabb.HalfH + edgeEpsilon)
	y1 := g.worldToCellY(aabb.CenterY + aabb.HalfH - edgeEpsilon)

	if dx > 0 {
		xCell := g.worldToCellX(candidateX + aabb.HalfW - edgeEpsilon)
		for y := y0; y <= y1; y++ {
			if g.IsSolid(xCell, y) {
				candidateX = math.Min(candidateX, g.cellLeftWorld(xCell)-aabb.HalfW)
			}
		}
		// Guardrail: resolution may stop the move, never reverse it.
		candidateX = math.Max(candidateX, aabb.CenterX)
	} else {
		xCell := g.worldToCellX(candidateX - aabb.HalfW + edgeEpsilon)
		for y := y0; y <= y1; y++ {
			if g.IsSolid(xCell, y) {
				candidateX = math.Max(candidateX, g.cellRightWorld(xCell)+aabb.HalfW)
			}
		}
		candidateX = math.Min(candidateX, aabb.CenterX)
	}

	return candidateX
}

func (g *CollisionGrid) resolveAxisY(aabb Aabb, dy float64) float64 {
	if dy == 0 {
		return aabb.CenterY
	}

	candidateY := aabb.CenterY + dy
	x0 := g.worldToCellX(aabb.CenterX - aabb.HalfW + edgeEpsilon)
	x1 := g.worldToCellX(aabb.CenterX + aabb.HalfW - edgeEpsilon)

	if dy > 0 {
		yCell := g.worldToCellY(candidateY + aabb.HalfH - edgeEpsilon)
		for x := x0; x <= x1; x++ {
			if g.IsSolid(x, yCell) {
				candidateY = math.Min(candidateY, g.cellBottomWorld(yCell)-aabb.HalfH)
			}
		}
		candidateY = math.Max(candidateY, aabb.CenterY)
	} else {
		yCell := g.worldToCellY(candidateY - aabb.HalfH + edgeEpsilon)
		for x := x0; x <= x1; x++ {
			if g.IsSolid(x, yCell) {
				candidateY = math.Max(candidateY, g.cellTopWorld(yCell)+aabb.HalfH)
			}
		}
		candidateY = math.Min(candidateY, aabb.CenterY)
	}

	return candidateY
}

func (g *CollisionGrid) worldToCellX(worldX float64) int {
	return int(math.Floor((worldX - float64(g.Origin.X)) / float64(g.CellSize)))
}

func (g *CollisionGrid) worldToCellY(worldY float64) int {
	return int(math.Floor((worldY - float64(g.Origin.Y)) / float64(g.CellSize)))
}

func (g *CollisionGrid) cellLeftWorld(x int) float64 {
	return float64(g.Origin.X + x*g.CellSize)
}

func (g *CollisionGrid) cellRightWorld(x int) float64 {
	return float64(g.Origin.X + (x+1)*g.CellSize)
}

func (g *CollisionGrid) cellBottomWorld(y int) float64 {
	return float64(g.Origin.Y + y*g.CellSize)
}

func (g *CollisionGrid) cellTopWorld(y int) float64 {
	return float64(g.Origin.Y + (y+1)*g.CellSize)
}

// CellAt maps a world-space point to the cell containing it. The result may
// be out of bounds; IsSolid treats that benignly.
func (g *CollisionGrid) CellAt(worldX, worldY float64) GridCell {
	return GridCell{X: g.worldToCellX(worldX), Y: g.worldToCellY(worldY)}
}

// CellCenterWorld returns the world-space center of a cell. The goal check
// and the render layer use it; resolution works off cell faces instead.
func (g *CollisionGrid) CellCenterWorld(cell GridCell) (float64, float64) {
	half := float64(g.CellSize) / 2
	return g.cellLeftWorld(cell.X) + half, g.cellBottomWorld(cell.Y) + half
}
