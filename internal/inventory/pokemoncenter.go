package inventory

import "github.com/wojons/ptp-core/internal/model"

// HealingUrgency ranks how badly the party needs a Pokemon Center visit.
type HealingUrgency string

const (
	HealingCritical HealingUrgency = "critical"
	HealingHigh     HealingUrgency = "high"
	HealingMedium   HealingUrgency = "medium"
	HealingLow      HealingUrgency = "low"
)

// HealThreshold / CriticalThreshold are the default HP-fraction
// triggers for a Medium / Critical healing assessment (spec.md §4.5).
const (
	DefaultHealThreshold     = 0.50
	DefaultCriticalThreshold = 0.20
)

// PokemonCenterProtocol assesses healing need and performs the free,
// full-restore heal plus PC box swaps (spec.md §4.5).
type PokemonCenterProtocol struct {
	HealThreshold     float64
	CriticalThreshold float64
	PCSwapsMax        int
}

// DefaultPCSwapsMax is the default cap on same-visit box swaps.
const DefaultPCSwapsMax = 2

// NewPokemonCenterProtocol builds a protocol with spec.md's default
// thresholds.
func NewPokemonCenterProtocol() *PokemonCenterProtocol {
	return &PokemonCenterProtocol{
		HealThreshold:     DefaultHealThreshold,
		CriticalThreshold: DefaultCriticalThreshold,
		PCSwapsMax:        DefaultPCSwapsMax,
	}
}

// AssessHealingNeed runs the joint fainted/status/hp/pp test and
// returns the resulting urgency (spec.md §4.5).
func (p *PokemonCenterProtocol) AssessHealingNeed(t *model.Team) HealingUrgency {
	lowestHP := t.LowestHPFraction()
	switch {
	case t.FaintedCount() > 0 || lowestHP < p.CriticalThreshold:
		return HealingCritical
	case t.AnyStatus() || lowestHP < 0.25:
		return HealingHigh
	case lowestHP < p.HealThreshold:
		return HealingMedium
	case t.TotalPPFraction() < 0.30:
		return HealingMedium
	default:
		return HealingLow
	}
}

// Heal returns a new team with every non-empty party member restored
// to full HP, full PP, and no status condition. Healing is free and
// never fails (spec.md §4.5).
func (p *PokemonCenterProtocol) Heal(t *model.Team) *model.Team {
	healed := *t
	for i, mon := range t.Party {
		if mon == nil {
			continue
		}
		copyMon := *mon
		copyMon.CurrentHP = copyMon.MaxHP
		copyMon.Status = model.StatusNone
		healedMoves := make([]model.Move, len(mon.Moves))
		for j, m := range mon.Moves {
			m.CurrentPP = m.MaxPP
			healedMoves[j] = m
		}
		copyMon.Moves = healedMoves
		healed.Party[i] = &copyMon
	}
	return &healed
}

// SwapCandidate is one proposed party<->box swap with its score delta.
type SwapCandidate struct {
	PartySlot  int
	BoxIndex   int
	PartyScore float64
	BoxScore   float64
}

// boxMemberScore ranks a Pokemon for party inclusion: level weight,
// HP health bonus, status penalty, and move-count bonus (spec.md
// §4.5).
func boxMemberScore(p *model.PokemonData) float64 {
	score := float64(p.Level) * 2
	if p.HPFraction() >= 0.5 {
		score += 5
	}
	if p.Status == model.StatusNone {
		score += 3
	}
	score += float64(len(p.Moves)) * 1.5
	return score
}

// ProposeSwaps compares every active party member against every boxed
// Pokemon and returns up to PCSwapsMax candidates where the box member
// outscores its party counterpart, sorted by score delta descending.
func (p *PokemonCenterProtocol) ProposeSwaps(t *model.Team) []SwapCandidate {
	var candidates []SwapCandidate
	for slot, mon := range t.Party {
		if mon == nil {
			continue
		}
		partyScore := boxMemberScore(mon)
		bestBoxIdx := -1
		bestBoxScore := partyScore
		for bi, boxed := range t.Box {
			if boxed == nil || boxed.IsFainted() {
				continue
			}
			s := boxMemberScore(boxed)
			if s > bestBoxScore {
				bestBoxScore = s
				bestBoxIdx = bi
			}
		}
		if bestBoxIdx >= 0 {
			candidates = append(candidates, SwapCandidate{
				PartySlot: slot, BoxIndex: bestBoxIdx,
				PartyScore: partyScore, BoxScore: bestBoxScore,
			})
		}
	}
	sortSwapsByDelta(candidates)
	if len(candidates) > p.PCSwapsMax {
		candidates = candidates[:p.PCSwapsMax]
	}
	return candidates
}

func sortSwapsByDelta(c []SwapCandidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0; j-- {
			di := c[j].BoxScore - c[j].PartyScore
			dj := c[j-1].BoxScore - c[j-1].PartyScore
			if di <= dj {
				break
			}
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// ApplySwap exchanges a party slot with a box index in place.
func (p *PokemonCenterProtocol) ApplySwap(t *model.Team, swap SwapCandidate) {
	t.Party[swap.PartySlot], t.Box[swap.BoxIndex] = t.Box[swap.BoxIndex], t.Party[swap.PartySlot]
}
