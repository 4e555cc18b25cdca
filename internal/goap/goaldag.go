package goap

import "fmt"

// GoalDAG tracks prerequisite edges between goal ids. The graph is
// kept acyclic by construction: AddEdge rejects an edge that would
// close a cycle (spec.md §4.6).
type GoalDAG struct {
	nodes map[string]bool
	// edges[a] = b means a depends on (requires) b: a's prerequisite.
	edges map[string][]string
}

// NewGoalDAG builds an empty DAG.
func NewGoalDAG() *GoalDAG {
	return &GoalDAG{nodes: make(map[string]bool), edges: make(map[string][]string)}
}

// AddNode registers a goal id with no prerequisites yet, a no-op if
// already present.
func (g *GoalDAG) AddNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.edges[id] = nil
	}
}

// AddEdge records that goal depends on prerequisite, rejecting the
// edge if it would introduce a cycle.
func (g *GoalDAG) AddEdge(goal, prerequisite string) error {
	g.AddNode(goal)
	g.AddNode(prerequisite)
	if g.reaches(prerequisite, goal) {
		return fmt.Errorf("goap: edge %s -> %s would create a cycle", goal, prerequisite)
	}
	g.edges[goal] = append(g.edges[goal], prerequisite)
	return nil
}

// reaches reports whether a DFS from `from` can reach `to` following
// prerequisite edges.
func (g *GoalDAG) reaches(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	var dfs func(string) bool
	dfs = func(n string) bool {
		if visited[n] {
			return false
		}
		visited[n] = true
		for _, next := range g.edges[n] {
			if next == to || dfs(next) {
				return true
			}
		}
		return false
	}
	return dfs(from)
}

// Prerequisites returns the direct prerequisites of a goal id.
func (g *GoalDAG) Prerequisites(id string) []string {
	return g.edges[id]
}

// CriticalPath returns the longest chain of prerequisites reachable
// from id, measured by topological distance (spec.md §4.6), as an
// ordered slice from id down to the deepest prerequisite.
func (g *GoalDAG) CriticalPath(id string) []string {
	memo := make(map[string][]string)
	var longest func(string) []string
	longest = func(n string) []string {
		if cached, ok := memo[n]; ok {
			return cached
		}
		best := []string{n}
		for _, prereq := range g.edges[n] {
			candidate := append([]string{n}, longest(prereq)...)
			if len(candidate) > len(best) {
				best = candidate
			}
		}
		memo[n] = best
		return best
	}
	return longest(id)
}
