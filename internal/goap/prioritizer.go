package goap

import (
	"time"

	"github.com/spf13/cast"

	"github.com/wojons/ptp-core/internal/model"
)

// GoalPrioritizer owns the prerequisite DAG, the priority heap and the
// scoring calculator, and picks the next feasible goal to pursue
// (spec.md §4.6).
type GoalPrioritizer struct {
	DAG        *GoalDAG
	Queue      *PriorityQueue
	Calculator *GoalPriorityCalculator
	History    map[string]HistoricalOutcome // keyed by goal subtype name
	Risk       map[string]FailureRisk       // keyed by goal subtype name
}

// NewGoalPrioritizer builds an empty prioritizer.
func NewGoalPrioritizer() *GoalPrioritizer {
	return &GoalPrioritizer{
		DAG:        NewGoalDAG(),
		Queue:      NewPriorityQueue(),
		Calculator: NewGoalPriorityCalculator(),
		History:    make(map[string]HistoricalOutcome),
		Risk:       make(map[string]FailureRisk),
	}
}

// subtypeName returns a stable label for a goal's variant, used to key
// History/Risk lookups.
func subtypeName(g *model.Goal) string {
	switch g.Variant.(type) {
	case model.DefeatGymVariant:
		return "DefeatGym"
	case model.CatchPokemonVariant:
		return "CatchPokemon"
	case model.ReachLocationVariant:
		return "ReachLocation"
	case model.HealPartyVariant:
		return "HealParty"
	case model.TrainPokemonVariant:
		return "TrainPokemon"
	case model.ObtainItemVariant:
		return "ObtainItem"
	default:
		return "Unknown"
	}
}

// AddGoal registers a goal's prerequisites in the DAG and enqueues it
// at a freshly computed priority.
func (p *GoalPrioritizer) AddGoal(g *model.Goal, now time.Time) {
	p.DAG.AddNode(g.GoalID)
	for _, prereq := range g.Prerequisites {
		_ = p.DAG.AddEdge(g.GoalID, prereq)
	}
	priority := p.score(g, now)
	g.Priority = priority
	p.Queue.Push(g, priority)
}

// score computes a goal's current priority via the calculator, using
// the dependent count from the DAG and any recorded history/risk for
// its subtype.
func (p *GoalPrioritizer) score(g *model.Goal, now time.Time) float64 {
	// dependent count is how many other goals list this one as a
	// prerequisite, not how many this one has.
	dependents := 0
	for _, prereqs := range allEdges(p.DAG) {
		for _, pr := range prereqs {
			if pr == g.GoalID {
				dependents++
			}
		}
	}
	name := subtypeName(g)
	return p.Calculator.Compute(now, g, dependents, p.History[name], p.Risk[name])
}

func allEdges(g *GoalDAG) map[string][]string { return g.edges }

// feasible checks a goal's required resources against state, plus
// goal-subtype overrides (e.g. a CatchPokemon goal with a specified
// location must match the current location).
func feasible(g *model.Goal, state *model.GameState) bool {
	for _, req := range g.RequiredResources {
		if !resourceSatisfied(req, state) {
			return false
		}
	}
	switch v := g.Variant.(type) {
	case model.CatchPokemonVariant:
		if v.Location != "" && v.Location != state.Location {
			return false
		}
	}
	return true
}

func resourceSatisfied(req model.ResourceRequirement, state *model.GameState) bool {
	switch req.Kind {
	case "money":
		return state.Money >= cast.ToInt(req.Value)
	case "badges":
		return state.Badges >= cast.ToInt(req.Value)
	case "level":
		return state.AvgPartyLevel() >= cast.ToFloat64(req.Value)
	case "pokemon_species":
		for _, mon := range state.Party.Party {
			if mon != nil && mon.SpeciesID == req.Value {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// SelectNextGoal pops goals off the priority queue until it finds one
// that's feasible against state, discarding infeasible ones along the
// way. Returns nil if nothing feasible remains.
func (p *GoalPrioritizer) SelectNextGoal(state *model.GameState) *model.Goal {
	for {
		g := p.Queue.Pop()
		if g == nil {
			return nil
		}
		if feasible(g, state) {
			return g
		}
	}
}
