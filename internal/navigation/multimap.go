package navigation

import "github.com/wojons/ptp-core/internal/model"

// multiMapSearch BFS's the warp graph (nodes: map ids; edges: warps)
// to find a sequence of warp positions connecting start's map to
// goal's map, then concatenates per-segment A* searches (spec.md
// §4.1).
func (pf *Pathfinder) multiMapSearch(start, goal model.Position, ctx PathfindingContext) PathResult {
	warpGraph := pf.graph.WarpGraph()

	type frame struct {
		mapID string
		via   []warpEdge
	}
	visited := map[string]bool{start.MapID: true}
	queue := []frame{{mapID: start.MapID}}

	var route []warpEdge
	found := false
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if f.mapID == goal.MapID {
			route = f.via
			found = true
			break
		}
		for _, edge := range warpGraph[f.mapID] {
			if visited[edge.to.MapID] {
				continue
			}
			visited[edge.to.MapID] = true
			next := append(append([]warpEdge{}, f.via...), edge)
			queue = append(queue, frame{mapID: edge.to.MapID, via: next})
		}
	}
	if !found {
		return PathResult{Success: false, Warnings: []string{"no warp route between maps"}}
	}

	var (
		fullPath         []model.Position
		totalCost        float64
		hmSet            = make(map[model.HmMove]bool)
		expectedEncounters, accumulatedDanger float64
	)

	cursor := start
	for _, edge := range route {
		seg := pf.search(cursor, edge.from, ctx)
		if !seg.Success {
			return PathResult{Success: false, Warnings: append(seg.Warnings, "multi-map path using warps: segment failed")}
		}
		fullPath = append(fullPath, seg.Path...)
		totalCost += seg.TotalCost
		expectedEncounters += seg.ExpectedEncounters
		accumulatedDanger += seg.AccumulatedDanger
		for _, m := range seg.RequiredHmMoves {
			hmSet[m] = true
		}
		cursor = edge.to
	}

	final := pf.search(cursor, goal, ctx)
	if !final.Success {
		return PathResult{Success: false, Warnings: append(final.Warnings, "multi-map path using warps: final segment failed")}
	}
	fullPath = append(fullPath, final.Path...)
	totalCost += final.TotalCost
	expectedEncounters += final.ExpectedEncounters
	accumulatedDanger += final.AccumulatedDanger
	for _, m := range final.RequiredHmMoves {
		hmSet[m] = true
	}

	hms := make([]model.HmMove, 0, len(hmSet))
	for m := range hmSet {
		hms = append(hms, m)
	}

	return PathResult{
		Success:            true,
		Path:               fullPath,
		TotalCost:          totalCost,
		RequiredHmMoves:    hms,
		Warnings:           []string{"multi-map path using warps"},
		ExpectedEncounters: expectedEncounters,
		AccumulatedDanger:  accumulatedDanger,
	}
}
