package entity

import (
	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
)

// EvolutionDecision is the wait-vs-evolve verdict for a Pokemon
// eligible (or not yet eligible) to evolve.
type EvolutionDecision string

const (
	DecisionEvolveNow        EvolutionDecision = "evolve_now"
	DecisionWait             EvolutionDecision = "wait"
	DecisionConsiderWaiting  EvolutionDecision = "consider_waiting"
)

// EvolutionManager looks up evolution conditions and pre-evolution
// moves, and computes the wait-vs-evolve tradeoff (spec.md §4.4).
type EvolutionManager struct {
	species *data.SpeciesCatalog
}

// NewEvolutionManager wires the species catalog.
func NewEvolutionManager(species *data.SpeciesCatalog) *EvolutionManager {
	return &EvolutionManager{species: species}
}

// Condition returns the evolution condition for a species, if any.
func (e *EvolutionManager) Condition(species string) (data.EvolutionCondition, bool) {
	return e.species.Evolution(species)
}

// IsEligible reports whether p currently satisfies its species'
// evolution condition (level-based only; item/friendship/trade
// conditions are satisfied externally by the loop controller and
// passed in as extraSatisfied).
func (e *EvolutionManager) IsEligible(p *model.PokemonData, extraSatisfied bool) bool {
	cond, ok := e.Condition(p.SpeciesID)
	if !ok {
		return false
	}
	switch cond.Condition {
	case "level":
		return p.Level >= cond.Level
	default:
		return extraSatisfied
	}
}

// EvolutionTradeoff computes the stat-improvement-vs-wait-benefit
// decision, per spec.md §4.4:
//
//	stat_improvement_score = min(sum(|stat_change|*2), 30)
//	wait_benefit = 15 * (move.power/100)   (0 if no pre-evolution move)
//	wait_cost = (learn_level - current_level) * 0.5
//
// net_benefit is stat_improvement_score minus wait_cost; evolve_now
// when there's nothing to wait for or the wait isn't worth it, wait
// when it clearly is, consider_waiting in between.
func (e *EvolutionManager) EvolutionTradeoff(p *model.PokemonData, statChanges []int) (decision EvolutionDecision, statImprovement, waitBenefit, waitCost float64) {
	sum := 0
	for _, d := range statChanges {
		if d < 0 {
			d = -d
		}
		sum += d
	}
	statImprovement = float64(sum) * 2
	if statImprovement > 30 {
		statImprovement = 30
	}

	preMove, hasPreMove := e.species.PreEvolutionMove(p.SpeciesID)
	if !hasPreMove {
		return DecisionEvolveNow, statImprovement, 0, 0
	}

	waitBenefit = 15 * (float64(preMove.Power) / 100)
	waitCost = float64(preMove.LearnLevel-p.Level) * 0.5
	netBenefit := statImprovement - waitCost

	switch {
	case waitBenefit > netBenefit*1.2:
		decision = DecisionWait
	case waitBenefit > netBenefit*0.9:
		decision = DecisionConsiderWaiting
	default:
		decision = DecisionEvolveNow
	}
	return decision, statImprovement, waitBenefit, waitCost
}
