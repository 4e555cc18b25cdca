// Package navigation implements the world graph, A* pathfinder, route
// optimizer and puzzle solver (spec.md §4.1-§4.3). Grounded on the
// teacher's game/engine/movement.go (direction/position delta
// handling) and on
// _examples/other_examples/005c18b2_viamrobotics-rdk__motionplan-planManager.go.go's
// planner-with-context-knobs shape.
package navigation

import (
	"fmt"

	"github.com/wojons/ptp-core/internal/model"
)

// WorldGraph is the adjacency-list map graph the pathfinder searches.
// Nodes are tiles keyed by Position.Key(); edges are directional
// traversal costs between adjacent tiles.
type WorldGraph struct {
	nodes map[string]model.TileNode
	edges map[string][]model.TileEdge
	warps map[string]model.Position // position key -> destination, for warp-graph BFS
}

// NewWorldGraph builds an empty graph.
func NewWorldGraph() *WorldGraph {
	return &WorldGraph{
		nodes: make(map[string]model.TileNode),
		edges: make(map[string][]model.TileEdge),
		warps: make(map[string]model.Position),
	}
}

// AddTile registers a tile node, validating its invariants first.
func (g *WorldGraph) AddTile(t model.TileNode) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("navigation: add tile %s: %w", t.Position.Key(), err)
	}
	g.nodes[t.Position.Key()] = t
	if t.Type == model.Warp && t.WarpDestination != nil {
		g.warps[t.Position.Key()] = *t.WarpDestination
	}
	return nil
}

// AddEdge registers a directed traversal edge between two already-added
// tiles.
func (g *WorldGraph) AddEdge(e model.TileEdge) {
	key := e.From.Key()
	g.edges[key] = append(g.edges[key], e)
}

// Tile returns the tile at p, if known.
func (g *WorldGraph) Tile(p model.Position) (model.TileNode, bool) {
	t, ok := g.nodes[p.Key()]
	return t, ok
}

// Neighbors returns the outgoing edges from p.
func (g *WorldGraph) Neighbors(p model.Position) []model.TileEdge {
	return g.edges[p.Key()]
}

// DirectionBetween returns the cardinal direction of travel from a to
// an adjacent b. Non-adjacent positions return "" (undefined).
func DirectionBetween(a, b model.Position) model.Direction {
	dx, dy := int(b.X-a.X), int(b.Y-a.Y)
	switch {
	case dx == 0 && dy == -1:
		return model.North
	case dx == 0 && dy == 1:
		return model.South
	case dx == 1 && dy == 0:
		return model.East
	case dx == -1 && dy == 0:
		return model.West
	default:
		return ""
	}
}

// WarpGraph exposes the map_id-level graph of warp connections, used
// by multi-map BFS routing: nodes are map ids, edges connect a warp's
// origin map to its destination map.
func (g *WorldGraph) WarpGraph() map[string][]warpEdge {
	out := make(map[string][]warpEdge)
	for key, dest := range g.warps {
		origin, ok := g.nodes[key]
		if !ok {
			continue
		}
		out[origin.Position.MapID] = append(out[origin.Position.MapID], warpEdge{
			from: origin.Position,
			to:   dest,
		})
	}
	return out
}

type warpEdge struct {
	from, to model.Position
}
