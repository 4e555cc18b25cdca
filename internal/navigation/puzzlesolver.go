package navigation

import (
	"fmt"

	"github.com/wojons/ptp-core/internal/model"
)

// PuzzleClass names one of the four puzzle shapes PuzzleSolver
// special-cases on top of plain A* (spec.md §4.3).
type PuzzleClass string

const (
	PuzzleSafariZone  PuzzleClass = "safari_zone"
	PuzzleDarkCave    PuzzleClass = "dark_cave"
	PuzzleCyclingRoad PuzzleClass = "cycling_road"
	PuzzleIceSliding  PuzzleClass = "ice_sliding"
	PuzzleTeleportMaze PuzzleClass = "teleport_maze"
)

// PuzzleSolver wraps Pathfinder with the extra preconditions and
// post-checks each puzzle class needs.
type PuzzleSolver struct {
	graph *WorldGraph
	pf    *Pathfinder
}

// NewPuzzleSolver wires a solver to a graph and its pathfinder.
func NewPuzzleSolver(g *WorldGraph, pf *Pathfinder) *PuzzleSolver {
	return &PuzzleSolver{graph: g, pf: pf}
}

// Solve dispatches to the puzzle-class-specific handling, per spec.md
// §4.3.
func (ps *PuzzleSolver) Solve(class PuzzleClass, start, goal model.Position, ctx PathfindingContext, extraWarps map[model.Position]model.Position) PathResult {
	switch class {
	case PuzzleSafariZone:
		ctx.GrindMode = true
		return ps.pf.FindPath(start, goal, ctx)

	case PuzzleDarkCave:
		if !ctx.HasFlash {
			return PathResult{Success: false, Warnings: []string{"dark cave requires Flash (has_flash=false)"}}
		}
		return ps.pf.FindPath(start, goal, ctx)

	case PuzzleCyclingRoad:
		// Unchanged semantics; reserved for future capability gating
		// (spec.md §4.3).
		return ps.pf.FindPath(start, goal, ctx)

	case PuzzleIceSliding:
		result := ps.pf.FindPath(start, goal, ctx)
		if !result.Success {
			return result
		}
		if !ps.validateIcePhysics(result.Path) {
			return PathResult{Success: false, Warnings: []string{"path violates ice-sliding physics"}}
		}
		return result

	case PuzzleTeleportMaze:
		return ps.solveTeleportMaze(start, goal, ctx, extraWarps)

	default:
		return PathResult{Success: false, Warnings: []string{fmt.Sprintf("unknown puzzle class %q", class)}}
	}
}

// validateIcePhysics rejects a path that doesn't respect ice-tile
// sliding: once a step enters an ice tile, travel continues in that
// entry direction until a non-ice tile is reached (spec.md §4.3).
func (ps *PuzzleSolver) validateIcePhysics(path []model.Position) bool {
	for i := 1; i < len(path)-1; i++ {
		tile, ok := ps.graph.Tile(path[i])
		if !ok || tile.Type != model.Ice {
			continue
		}
		entryDir := DirectionBetween(path[i-1], path[i])
		j := i
		for {
			nextTile, ok := ps.graph.Tile(path[j])
			if !ok || nextTile.Type != model.Ice {
				break
			}
			if j+1 >= len(path) {
				break
			}
			stepDir := DirectionBetween(path[j], path[j+1])
			if stepDir != entryDir {
				return false
			}
			j++
		}
	}
	return true
}

// solveTeleportMaze temporarily merges an extra warp table into the
// graph for the search, then restores the original table (spec.md
// §4.3).
func (ps *PuzzleSolver) solveTeleportMaze(start, goal model.Position, ctx PathfindingContext, extraWarps map[model.Position]model.Position) PathResult {
	var added []model.Position
	for from, to := range extraWarps {
		dest := to
		tile := model.TileNode{Position: from, Type: model.Warp, WarpDestination: &dest}
		_ = ps.graph.AddTile(tile)
		ps.graph.AddEdge(model.TileEdge{From: from, To: to, Cost: 1, IsWarp: true})
		added = append(added, from)
	}
	defer func() {
		for _, p := range added {
			delete(ps.graph.nodes, p.Key())
			delete(ps.graph.edges, p.Key())
			delete(ps.graph.warps, p.Key())
		}
	}()

	ps.pf.cache = make(map[cacheKey]PathResult) // the merged graph invalidates any cached route
	return ps.pf.FindPath(start, goal, ctx)
}
