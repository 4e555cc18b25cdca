package inventory

import (
	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
)

// noWasteItems never trigger a "holding a better option unused" waste
// check, since they're either irreplaceable (Master Ball) or meant to
// be hoarded rather than efficiency-optimized (Rare Candy, Max Revive).
var noWasteItems = map[model.ItemType]bool{
	"Master Ball": true,
	"Rare Candy":  true,
	"Max Revive":  true,
}

// statusCure maps a blocking or non-blocking status to the item that
// cures it.
var statusCure = map[model.StatusCondition]model.ItemType{
	model.StatusPoisoned:    "Antidote",
	model.StatusBadlyPoison: "Antidote",
	model.StatusBurned:      "Burn Heal",
	model.StatusParalyzed:   "Paralyze Heal",
	model.StatusAsleep:      "Awakening",
	model.StatusFrozen:      "Ice Heal",
}

// ItemUsageAction is one decided in-battle item use.
type ItemUsageAction struct {
	Item   model.ItemType
	Target int // party slot
	Reason string
}

// ItemUsageStrategy decides the single best battle item action for a
// party member under the priority ladder in spec.md §4.5.
type ItemUsageStrategy struct {
	items *data.ItemCatalog
}

// NewItemUsageStrategy wires the static item catalog for potion
// healing-power and price lookups.
func NewItemUsageStrategy(items *data.ItemCatalog) *ItemUsageStrategy {
	return &ItemUsageStrategy{items: items}
}

// BattleContext carries the facts ItemUsageStrategy needs that aren't
// on the Pokemon itself.
type BattleContext struct {
	InBattle      bool
	TurnNumber    int
	EnemyType     string
	EnemyTypeKnown bool
}

// Decide walks the priority ladder and returns the action to take for
// the given party slot, or ok=false if no item use is warranted.
func (s *ItemUsageStrategy) Decide(inv *model.Inventory, slot int, mon *model.PokemonData, bc BattleContext) (ItemUsageAction, bool) {
	hpFrac := mon.HPFraction()

	if hpFrac < 0.10 {
		if item, ok := s.bestPotion(inv, mon.MaxHP-mon.CurrentHP); ok {
			return ItemUsageAction{Item: item, Target: slot, Reason: "critical_hp"}, true
		}
	}

	if mon.Status.IsBlocking() {
		if cure, ok := statusCure[mon.Status]; ok && inv.Quantity(cure) > 0 {
			return ItemUsageAction{Item: cure, Target: slot, Reason: "blocking_status"}, true
		}
	}

	if hpFrac < 0.50 {
		if item, ok := s.bestPotion(inv, mon.MaxHP-mon.CurrentHP); ok {
			return ItemUsageAction{Item: item, Target: slot, Reason: "low_hp"}, true
		}
	}

	if mon.Status != model.StatusNone && !mon.Status.IsBlocking() && bc.InBattle {
		if cure, ok := statusCure[mon.Status]; ok && inv.Quantity(cure) > 0 {
			return ItemUsageAction{Item: cure, Target: slot, Reason: "non_blocking_status"}, true
		}
	}

	if totalPP(mon) == 0 {
		for _, item := range []model.ItemType{"Elixir", "Ether"} {
			if inv.Quantity(item) > 0 {
				return ItemUsageAction{Item: item, Target: slot, Reason: "no_pp"}, true
			}
		}
	}

	if bc.InBattle && bc.TurnNumber >= 1 && bc.TurnNumber <= 3 && bc.EnemyTypeKnown {
		if item, ok := s.xItemFor(inv, bc.EnemyType); ok {
			return ItemUsageAction{Item: item, Target: slot, Reason: "early_turn_x_item"}, true
		}
	}

	return ItemUsageAction{}, false
}

// bestPotion picks the highest-healing-power potion in the bag whose
// effective value doesn't waste more than missingHP worth of healing,
// preferring the item that most closely covers missingHP without
// wild overshoot. Returns ok=false if no potion is held.
func (s *ItemUsageStrategy) bestPotion(inv *model.Inventory, missingHP int) (model.ItemType, bool) {
	var best model.ItemType
	bestPower := -1
	bestRaw := 0
	for itemType, stack := range inv.Items {
		if stack.Quantity <= 0 {
			continue
		}
		d, ok := s.items.Lookup(itemType)
		if !ok || d.Category != model.CategoryPotion || d.HealingPower <= 0 {
			continue
		}
		effective := d.HealingPower
		if effective > missingHP {
			effective = missingHP // capped at missing HP, not wasted past full (spec.md §4.5)
		}
		if effective > bestPower || (effective == bestPower && d.HealingPower < bestRaw) {
			bestPower = effective
			bestRaw = d.HealingPower
			best = itemType
		}
	}
	return best, bestPower >= 0
}

// xItemFor returns the first held X-item in the fixed order X Attack,
// X Defend, X Speed, X Special. enemyType does not affect the choice.
func (s *ItemUsageStrategy) xItemFor(inv *model.Inventory, enemyType string) (model.ItemType, bool) {
	candidates := []model.ItemType{"X Attack", "X Defend", "X Speed", "X Special"}
	for _, c := range candidates {
		if inv.Quantity(c) > 0 {
			return c, true
		}
	}
	return "", false
}

func totalPP(mon *model.PokemonData) int {
	total := 0
	for _, m := range mon.Moves {
		total += m.CurrentPP
	}
	return total
}

// IsWasteExempt reports whether itemType is excluded from
// unused-better-option waste checks (spec.md §4.5).
func IsWasteExempt(itemType model.ItemType) bool {
	return noWasteItems[itemType]
}
