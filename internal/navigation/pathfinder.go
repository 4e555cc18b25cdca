package navigation

import (
	"container/heap"
	"math"

	"github.com/wojons/ptp-core/internal/model"
)

// PathfindingContext is the input-only knob set the pathfinder and
// puzzle solver read; it is never mutated by a search (spec.md §4.1).
type PathfindingContext struct {
	AvoidEncounters bool
	AvoidTrainers   bool
	PreferShortest  bool
	AllowHmUsage    map[model.HmMove]bool
	CurrentPartyHP  float64
	MaxPartyHP      float64
	RepelActive     bool
	HasFlash        bool
	GrindMode       bool
	TimeOfDay       string
}

// hpFraction is current/max HP, or 1.0 (healthy) if max is zero.
func (c PathfindingContext) hpFraction() float64 {
	if c.MaxPartyHP <= 0 {
		return 1.0
	}
	return c.CurrentPartyHP / c.MaxPartyHP
}

func (c PathfindingContext) hmAllowed(m model.HmMove) bool {
	if m == "" {
		return true
	}
	if c.AllowHmUsage == nil {
		return false
	}
	return c.AllowHmUsage[m]
}

// PathResult is the pathfinder's contract output (spec.md §4.1): it
// never throws, only ever reports success=false with a warning.
type PathResult struct {
	Success           bool
	Path              []model.Position
	TotalCost         float64
	RequiredHmMoves   []model.HmMove
	Warnings          []string
	ExpectedEncounters float64
	AccumulatedDanger  float64
}

// Pathfinder runs A* over a WorldGraph with a small (start,goal,
// context-signature) result cache.
type Pathfinder struct {
	graph *WorldGraph
	cache map[cacheKey]PathResult
}

type cacheKey struct {
	start, goal string
	sig         string
}

// NewPathfinder wires a pathfinder to a graph.
func NewPathfinder(g *WorldGraph) *Pathfinder {
	return &Pathfinder{graph: g, cache: make(map[cacheKey]PathResult)}
}

// contextSignature captures exactly the context fields that change
// which edges are traversable or what they cost, so the cache never
// returns a stale result for a materially different context (spec.md
// §4.1: "invalidated when the context would change relevance").
func contextSignature(ctx PathfindingContext) string {
	sig := ""
	if ctx.AvoidEncounters {
		sig += "AE"
	}
	if ctx.AvoidTrainers {
		sig += "AT"
	}
	if ctx.GrindMode {
		sig += "GM"
	}
	if ctx.RepelActive {
		sig += "RP"
	}
	if ctx.hpFraction() < 0.3 {
		sig += "LOWHP"
	}
	for _, m := range []model.HmMove{model.HmCut, model.HmFly, model.HmSurf, model.HmStrength, model.HmFlash, model.HmRockSmash, model.HmWaterfall} {
		if ctx.hmAllowed(m) {
			sig += string(m)
		}
	}
	return sig
}

// FindPath searches start->goal. Multi-map goals first attempt a
// direct search (graphs may span one contiguous node space); on
// failure it falls back to warp-graph BFS stitching per-segment A*
// searches together (spec.md §4.1).
func (pf *Pathfinder) FindPath(start, goal model.Position, ctx PathfindingContext) PathResult {
	key := cacheKey{start: start.Key(), goal: goal.Key(), sig: contextSignature(ctx)}
	if cached, ok := pf.cache[key]; ok {
		return cached
	}

	result := pf.search(start, goal, ctx)
	if !start.SameMap(goal) && !result.Success {
		result = pf.multiMapSearch(start, goal, ctx)
	}

	pf.cache[key] = result
	return result
}

// search runs a single-map A* between two positions.
func (pf *Pathfinder) search(start, goal model.Position, ctx PathfindingContext) PathResult {
	if !start.SameMap(goal) {
		return PathResult{Success: false, Warnings: []string{"start and goal are on different maps"}}
	}

	open := &openHeap{}
	heap.Init(open)
	items := make(map[string]*openItem)

	startItem := &openItem{pos: start, g: 0, f: heuristic(start, goal)}
	heap.Push(open, startItem)
	items[start.Key()] = startItem

	cameFrom := make(map[string]model.Position)
	closed := make(map[string]bool)
	gScore := map[string]float64{start.Key(): 0}
	hmRequired := make(map[model.HmMove]bool)

	var warnings []string
	var expectedEncounters, accumulatedDanger float64

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if closed[current.pos.Key()] {
			continue
		}
		closed[current.pos.Key()] = true

		if current.pos == goal {
			path := reconstructPath(cameFrom, current.pos, start)
			for _, p := range path {
				if t, ok := pf.graph.Tile(p); ok {
					if t.Type == model.TallGrass {
						expectedEncounters += t.EncounterRate
					}
					if t.Type == model.Danger {
						accumulatedDanger += float64(t.DangerLevel)
					}
				}
				if t, ok := pf.graph.Tile(p); ok && t.HmRequirement != "" {
					hmRequired[t.HmRequirement] = true
				}
			}
			hms := make([]model.HmMove, 0, len(hmRequired))
			for m := range hmRequired {
				hms = append(hms, m)
			}
			return PathResult{
				Success:            true,
				Path:               path,
				TotalCost:          gScore[current.pos.Key()],
				RequiredHmMoves:    hms,
				Warnings:           warnings,
				ExpectedEncounters: expectedEncounters,
				AccumulatedDanger:  accumulatedDanger,
			}
		}

		for _, edge := range pf.graph.Neighbors(current.pos) {
			if closed[edge.To.Key()] {
				continue
			}
			cost := pf.edgeCost(edge, ctx)
			if math.IsInf(cost, 1) {
				continue
			}
			tentativeG := gScore[current.pos.Key()] + cost
			if existing, ok := gScore[edge.To.Key()]; ok && tentativeG >= existing {
				continue
			}
			gScore[edge.To.Key()] = tentativeG
			cameFrom[edge.To.Key()] = current.pos
			f := tentativeG + heuristic(edge.To, goal)
			if item, ok := items[edge.To.Key()]; ok {
				item.g = tentativeG
				item.f = f
				heap.Fix(open, item.index)
			} else {
				item := &openItem{pos: edge.To, g: tentativeG, f: f}
				items[edge.To.Key()] = item
				heap.Push(open, item)
			}
		}
	}

	return PathResult{Success: false, Warnings: []string{"no path found"}}
}

// edgeCost rejects forbidden edges (returns +Inf) and otherwise applies
// the multiplicative adjustments from spec.md §4.1's table.
func (pf *Pathfinder) edgeCost(e model.TileEdge, ctx PathfindingContext) float64 {
	toTile, ok := pf.graph.Tile(e.To)
	if !ok {
		return math.Inf(1)
	}
	if toTile.Type == model.Blocking {
		return math.Inf(1)
	}
	if e.RequiresHm != "" && !ctx.hmAllowed(e.RequiresHm) {
		return math.Inf(1)
	}
	if toTile.Type == model.TrainerVision && ctx.AvoidTrainers {
		return math.Inf(1)
	}
	if toTile.Type == model.Water && !ctx.hmAllowed(model.HmSurf) {
		return math.Inf(1)
	}

	cost := e.Cost
	if cost <= 0 {
		cost = 1
	}

	if toTile.Type == model.TallGrass {
		switch {
		case ctx.AvoidEncounters:
			cost *= 5.0
		case ctx.GrindMode:
			cost *= 0.8
		default:
			cost *= 2.0
		}
	}

	if e.IsLedge {
		dir := DirectionBetween(e.From, e.To)
		if dir == e.LedgeDir {
			cost *= 0.9
		} else {
			cost *= 2.0
		}
	}

	if toTile.Type == model.Danger && ctx.hpFraction() < 0.3 {
		cost *= 1 + float64(toTile.DangerLevel)*0.5
	}

	return cost
}

func heuristic(a, b model.Position) float64 {
	return float64(a.ManhattanDistance(b))
}

func reconstructPath(cameFrom map[string]model.Position, current, start model.Position) []model.Position {
	path := []model.Position{current}
	for current != start {
		prev, ok := cameFrom[current.Key()]
		if !ok {
			break
		}
		current = prev
		path = append([]model.Position{current}, path...)
	}
	return path
}

// openItem is one entry in the A* open-set min-heap, keyed by f-score
// with a deterministic lexicographic tie-break (spec.md §4.1).
type openItem struct {
	pos   model.Position
	g, f  float64
	index int
}

type openHeap []*openItem

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].pos.Less(h[j].pos)
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *openHeap) Push(x interface{}) {
	item := x.(*openItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}
