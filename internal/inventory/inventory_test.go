package inventory

import (
	"testing"

	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
)

func mustCatalogs(t *testing.T) *data.Catalogs {
	t.Helper()
	cats, err := data.Load()
	if err != nil {
		t.Fatalf("data.Load: %v", err)
	}
	return cats
}

func samplePokemon(hpFrac float64, status model.StatusCondition) *model.PokemonData {
	maxHP := 100
	return &model.PokemonData{
		PokemonID: "p1",
		SpeciesID: "Pidgey",
		Level:     20,
		MaxHP:     maxHP,
		CurrentHP: int(float64(maxHP) * hpFrac),
		Status:    status,
		Moves: []model.Move{
			{Name: "Tackle", CurrentPP: 10, MaxPP: 10},
		},
	}
}

func TestShoppingHeuristicPlanRespectsBudgetSplit(t *testing.T) {
	cats := mustCatalogs(t)
	h := NewShoppingHeuristic(cats.Shopping, cats.Items)

	requests := []PurchaseRequest{
		{Item: "Potion", Quantity: 10},
		{Item: "Poke Ball", Quantity: 10},
	}
	plan := h.Plan(1000, requests)

	if plan.AvailableBudget != 800 || plan.EmergencyReserve != 200 {
		t.Fatalf("expected 80/20 split of 1000, got available=%d reserve=%d", plan.AvailableBudget, plan.EmergencyReserve)
	}
	if plan.TotalSpent > plan.AvailableBudget {
		t.Errorf("total spent %d exceeds available budget %d", plan.TotalSpent, plan.AvailableBudget)
	}
}

func TestShoppingHeuristicPrioritizesCriticalItems(t *testing.T) {
	cats := mustCatalogs(t)
	h := NewShoppingHeuristic(cats.Shopping, cats.Items)

	requests := []PurchaseRequest{
		{Item: "Poke Ball", Quantity: 5},
		{Item: "Revive", Quantity: 1},
	}
	// A tight budget (80% of 2000 = 1600) affords the CRITICAL Revive
	// (1500), listed second, and leaves nothing for a Poke Ball.
	plan := h.Plan(2000, requests)
	if len(plan.Purchases) == 0 {
		t.Fatal("expected at least one purchase with a small budget")
	}
	if plan.Purchases["Revive"] != 1 || plan.Purchases["Poke Ball"] != 0 {
		t.Errorf("expected the critical Revive bought ahead of Poke Balls, got %v", plan.Purchases)
	}
}

func TestPokemonCenterAssessHealingNeed(t *testing.T) {
	p := NewPokemonCenterProtocol()

	critical := model.NewTeam("t", "team")
	critical.Party[0] = samplePokemon(0, model.StatusNone)
	if got := p.AssessHealingNeed(critical); got != HealingCritical {
		t.Errorf("fainted member: expected Critical, got %s", got)
	}

	lowHP := model.NewTeam("t", "team")
	lowHP.Party[0] = samplePokemon(0.05, model.StatusNone)
	if got := p.AssessHealingNeed(lowHP); got != HealingCritical {
		t.Errorf("hp<critical_threshold: expected Critical, got %s", got)
	}

	statusOnly := model.NewTeam("t", "team")
	statusOnly.Party[0] = samplePokemon(1.0, model.StatusPoisoned)
	if got := p.AssessHealingNeed(statusOnly); got != HealingHigh {
		t.Errorf("status present: expected High, got %s", got)
	}

	healthy := model.NewTeam("t", "team")
	healthy.Party[0] = samplePokemon(1.0, model.StatusNone)
	if got := p.AssessHealingNeed(healthy); got != HealingLow {
		t.Errorf("full health no status: expected Low, got %s", got)
	}
}

func TestPokemonCenterHealRestoresFully(t *testing.T) {
	p := NewPokemonCenterProtocol()
	team := model.NewTeam("t", "team")
	mon := samplePokemon(0.1, model.StatusBurned)
	mon.Moves[0].CurrentPP = 0
	team.Party[0] = mon

	healed := p.Heal(team)
	got := healed.Party[0]
	if got.CurrentHP != got.MaxHP {
		t.Errorf("expected full HP, got %d/%d", got.CurrentHP, got.MaxHP)
	}
	if got.Status != model.StatusNone {
		t.Errorf("expected status cleared, got %s", got.Status)
	}
	if got.Moves[0].CurrentPP != got.Moves[0].MaxPP {
		t.Errorf("expected full PP, got %d/%d", got.Moves[0].CurrentPP, got.Moves[0].MaxPP)
	}
	// original team must be untouched
	if team.Party[0].CurrentHP != mon.CurrentHP {
		t.Error("Heal must not mutate the original team")
	}
}

func TestPokemonCenterProposeSwapsRespectsMax(t *testing.T) {
	p := NewPokemonCenterProtocol()
	p.PCSwapsMax = 1
	team := model.NewTeam("t", "team")
	team.Party[0] = &model.PokemonData{PokemonID: "weak", Level: 5, MaxHP: 20, CurrentHP: 20, Status: model.StatusNone}
	team.Party[1] = &model.PokemonData{PokemonID: "weak2", Level: 5, MaxHP: 20, CurrentHP: 20, Status: model.StatusNone}
	team.Box = []*model.PokemonData{
		{PokemonID: "strong", Level: 50, MaxHP: 100, CurrentHP: 100, Status: model.StatusNone},
		{PokemonID: "strong2", Level: 50, MaxHP: 100, CurrentHP: 100, Status: model.StatusNone},
	}

	swaps := p.ProposeSwaps(team)
	if len(swaps) != 1 {
		t.Fatalf("expected exactly 1 swap (PCSwapsMax=1), got %d", len(swaps))
	}
}

func TestItemUsageStrategyCriticalHPPotion(t *testing.T) {
	cats := mustCatalogs(t)
	s := NewItemUsageStrategy(cats.Items)

	inv := model.NewInventory()
	_ = inv.Add("Potion", 1)
	_ = inv.Add("Super Potion", 1)

	mon := samplePokemon(0.05, model.StatusNone)
	action, ok := s.Decide(inv, 0, mon, BattleContext{})
	if !ok {
		t.Fatal("expected an item action at critical HP")
	}
	if action.Reason != "critical_hp" {
		t.Errorf("expected critical_hp reason, got %s", action.Reason)
	}
	if action.Item != "Super Potion" {
		t.Errorf("expected the stronger held potion, got %s", action.Item)
	}
}

func TestItemUsageStrategyBlockingStatusBeforeLowHP(t *testing.T) {
	cats := mustCatalogs(t)
	s := NewItemUsageStrategy(cats.Items)

	inv := model.NewInventory()
	_ = inv.Add("Potion", 1)
	_ = inv.Add("Paralyze Heal", 1)

	mon := samplePokemon(0.9, model.StatusParalyzed)
	action, ok := s.Decide(inv, 0, mon, BattleContext{})
	if !ok {
		t.Fatal("expected an item action for blocking status")
	}
	if action.Item != "Paralyze Heal" || action.Reason != "blocking_status" {
		t.Errorf("expected Paralyze Heal/blocking_status, got %s/%s", action.Item, action.Reason)
	}
}

func TestItemUsageStrategyNoActionWhenHealthy(t *testing.T) {
	cats := mustCatalogs(t)
	s := NewItemUsageStrategy(cats.Items)
	inv := model.NewInventory()
	mon := samplePokemon(1.0, model.StatusNone)
	if _, ok := s.Decide(inv, 0, mon, BattleContext{}); ok {
		t.Error("expected no action for a healthy, unafflicted Pokemon")
	}
}

func TestIsWasteExempt(t *testing.T) {
	if !IsWasteExempt("Master Ball") {
		t.Error("Master Ball should be waste-exempt")
	}
	if IsWasteExempt("Potion") {
		t.Error("Potion should not be waste-exempt")
	}
}
