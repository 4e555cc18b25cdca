// Package entity computes the scalar quantities the battle/team layer
// reasons about: derived combat stats, the carry-score formula, the
// evolution wait-vs-evolve tradeoff, and team composition analysis.
// Grounded on the teacher's game/engine pure-function-over-a-state
// shape (movement.go computes deltas from GameConfig without mutating
// global state) and spec.md §4.4's formulas.
package entity

import (
	"math"

	"github.com/wojons/ptp-core/internal/model"
)

// OffensiveStat picks the base stat backing the Pokemon's
// highest-power non-status move (physical attack or special attack)
// and folds in IVs/EVs, per spec.md §4.4.
func OffensiveStat(p *model.PokemonData) float64 {
	best := bestDamagingMove(p)
	if best == nil {
		return float64(p.Base.PhysicalAttack) + float64(p.IVs.Attack) + float64(p.EVs.Attack)/4
	}
	if best.Category == model.Special {
		return float64(p.Base.SpecialAttack) + float64(p.IVs.SpAttack) + float64(p.EVs.SpAttack)/4
	}
	return float64(p.Base.PhysicalAttack) + float64(p.IVs.Attack) + float64(p.EVs.Attack)/4
}

// DefensiveStat is the larger of the physical and special bulk values,
// chosen by comparing base stats.
func DefensiveStat(p *model.PokemonData) float64 {
	physical := float64(p.Base.Defense) + float64(p.IVs.Defense) + float64(p.EVs.Defense)/4
	special := float64(p.Base.SpecialDefense) + float64(p.IVs.SpDefense) + float64(p.EVs.SpDefense)/4
	if p.Base.SpecialDefense > p.Base.Defense {
		return special
	}
	return physical
}

// SpeedStat is the Pokemon's effective speed stat.
func SpeedStat(p *model.PokemonData) float64 {
	return float64(p.Base.Speed) + float64(p.IVs.Speed) + float64(p.EVs.Speed)/4
}

// DPSPotential estimates damage-per-turn capacity from the best move's
// power, the matching offensive stat, speed, and a same-type-attack
// bonus, floored at 1.0 so it is always a usable divisor (spec.md
// §4.4).
func DPSPotential(p *model.PokemonData) float64 {
	best := bestDamagingMove(p)
	if best == nil {
		return 1.0
	}
	stab := 1.0
	if best.Type == p.PrimaryType || (p.SecondaryType != "" && best.Type == p.SecondaryType) {
		stab = 1.2
	}
	off := OffensiveStat(p)
	speed := SpeedStat(p)
	dps := (float64(best.Power) * off / 100) * math.Sqrt(speed/100) * stab
	if dps < 1.0 {
		return 1.0
	}
	return dps
}

// bestDamagingMove returns the highest-power non-status move, or nil
// if the Pokemon has none.
func bestDamagingMove(p *model.PokemonData) *model.Move {
	var best *model.Move
	for i := range p.Moves {
		m := &p.Moves[i]
		if m.Category == model.Status {
			continue
		}
		if best == nil || m.Power > best.Power {
			best = m
		}
	}
	return best
}
