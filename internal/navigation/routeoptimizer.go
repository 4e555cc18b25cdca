package navigation

import (
	"sort"

	"github.com/wojons/ptp-core/internal/model"
)

// RouteSegment is one leg of an optimized multi-POI route.
type RouteSegment struct {
	From, To model.Position
	POI      model.POI
	Path     PathResult
}

// Route is the RouteOptimizer's output: an ordered sequence of
// segments, a total cost, and a mean safety score.
type Route struct {
	Segments  []RouteSegment
	TotalCost float64
	Safety    float64
}

// RouteOptimizer builds a POI visiting order with a nearest-neighbor
// heuristic, after sorting by descending priority (spec.md §4.2).
type RouteOptimizer struct {
	pf *Pathfinder
}

// NewRouteOptimizer wires a pathfinder for per-segment A* searches.
func NewRouteOptimizer(pf *Pathfinder) *RouteOptimizer {
	return &RouteOptimizer{pf: pf}
}

// Plan repeatedly picks the cheapest reachable unvisited POI from the
// current position, ties broken by descending priority, appending the
// A* segment that reaches it.
func (ro *RouteOptimizer) Plan(start model.Position, pois []model.POI, ctx PathfindingContext) Route {
	remaining := append([]model.POI{}, pois...)
	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].Priority > remaining[j].Priority })

	current := start
	var route Route
	for len(remaining) > 0 {
		bestIdx := -1
		var bestResult PathResult
		for i, poi := range remaining {
			result := ro.pf.FindPath(current, poi.Position, ctx)
			if !result.Success {
				continue
			}
			if bestIdx == -1 ||
				result.TotalCost < bestResult.TotalCost ||
				(result.TotalCost == bestResult.TotalCost && poi.Priority > remaining[bestIdx].Priority) {
				bestIdx = i
				bestResult = result
			}
		}
		if bestIdx == -1 {
			break // nothing left is reachable
		}
		poi := remaining[bestIdx]
		route.Segments = append(route.Segments, RouteSegment{From: current, To: poi.Position, POI: poi, Path: bestResult})
		route.TotalCost += bestResult.TotalCost
		current = poi.Position
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	route.Safety = ro.safetyScore(route, ctx)
	return route
}

// ClusterPOIs groups POIs within radius of each other, a pre-filtering
// helper for large POI sets (spec.md §4.2).
func ClusterPOIs(pois []model.POI, radius int) [][]model.POI {
	assigned := make([]bool, len(pois))
	var clusters [][]model.POI
	for i, p := range pois {
		if assigned[i] {
			continue
		}
		cluster := []model.POI{p}
		assigned[i] = true
		for j := i + 1; j < len(pois); j++ {
			if assigned[j] {
				continue
			}
			if pois[j].Position.SameMap(p.Position) && pois[j].Position.ManhattanDistance(p.Position) <= radius {
				cluster = append(cluster, pois[j])
				assigned[j] = true
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// safetyScore starts each segment at 10.0, losing 2.0 per TallGrass
// tile (unless repel is active) and danger_level per dangerous tile
// when party HP fraction is below 0.5, then averages across segments
// (spec.md §4.2).
func (ro *RouteOptimizer) safetyScore(route Route, ctx PathfindingContext) float64 {
	if len(route.Segments) == 0 {
		return 10.0
	}
	var total float64
	for _, seg := range route.Segments {
		score := 10.0
		for _, p := range seg.Path.Path {
			tile, ok := ro.pf.graph.Tile(p)
			if !ok {
				continue
			}
			if tile.Type == model.TallGrass && !ctx.RepelActive {
				score -= 2.0
			}
			if tile.Type == model.Danger && ctx.hpFraction() < 0.5 {
				score -= float64(tile.DangerLevel)
			}
		}
		total += score
	}
	return total / float64(len(route.Segments))
}
