package data

import "testing"

func TestLoadItems(t *testing.T) {
	cat, err := LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if _, ok := cat.Lookup("Potion"); !ok {
		t.Error("expected Potion in item catalog")
	}
	if d, ok := cat.Lookup("Potion"); ok && d.HealingPower != 20 {
		t.Errorf("Potion healing power = %d, want 20", d.HealingPower)
	}
	if _, ok := cat.Lookup("Nonexistent Item"); ok {
		t.Error("did not expect Nonexistent Item in catalog")
	}
}

func TestLoadTMHMMoves(t *testing.T) {
	cat, err := LoadTMHMMoves()
	if err != nil {
		t.Fatalf("LoadTMHMMoves: %v", err)
	}
	if len(cat.HMs()) != 7 {
		t.Errorf("expected 7 HMs, got %d", len(cat.HMs()))
	}
	if len(cat.TMs()) != 50 {
		t.Errorf("expected 50 TMs, got %d", len(cat.TMs()))
	}
	entry, ok := cat.Lookup("HM03")
	if !ok {
		t.Fatal("expected HM03 in catalog")
	}
	if entry.Move.Name != "Surf" || entry.HmMove != "surf" {
		t.Errorf("HM03 = %+v, want Surf/surf", entry)
	}
	tm, ok := cat.Lookup("TM24")
	if !ok {
		t.Fatal("expected TM24 in catalog")
	}
	if tm.HmMove != "" {
		t.Errorf("TM24 should not grant an HM capability, got %q", tm.HmMove)
	}
}

func TestLoadSpecies(t *testing.T) {
	cat, err := LoadSpecies()
	if err != nil {
		t.Fatalf("LoadSpecies: %v", err)
	}
	bulba, ok := cat.Species("Bulbasaur")
	if !ok {
		t.Fatal("expected Bulbasaur in species catalog")
	}
	if bulba.RarityTier != RarityStarter {
		t.Errorf("Bulbasaur rarity = %s, want starter", bulba.RarityTier)
	}

	evo, ok := cat.Evolution("Bulbasaur")
	if !ok || evo.EvolvesTo != "Ivysaur" || evo.Level != 16 {
		t.Errorf("Bulbasaur evolution = %+v, want Ivysaur at 16", evo)
	}

	move, ok := cat.PreEvolutionMove("Bulbasaur")
	if !ok || move.Move != "Razor Leaf" {
		t.Errorf("Bulbasaur pre-evolution move = %+v, want Razor Leaf", move)
	}

	if _, ok := cat.Evolution("Mewtwo"); ok {
		t.Error("did not expect Mewtwo to have an evolution condition")
	}
}

func TestRarityMultiplier(t *testing.T) {
	cases := []struct {
		tier RarityTier
		want float64
	}{
		{RarityStarter, 1.15},
		{RarityLegendary, 1.30},
		{RarityPseudoLegendary, 1.20},
		{RarityEarlyCommon, 0.7},
		{RarityStandard, 1.0},
	}
	for _, tc := range cases {
		if got := RarityMultiplier(tc.tier); got != tc.want {
			t.Errorf("RarityMultiplier(%s) = %v, want %v", tc.tier, got, tc.want)
		}
	}
}

func TestLoadShopping(t *testing.T) {
	cat, err := LoadShopping()
	if err != nil {
		t.Fatalf("LoadShopping: %v", err)
	}
	route, ok := cat.Route("Route 1")
	if !ok || route.ExpectedLevel != 4 {
		t.Errorf("Route 1 = %+v, want expected_level 4", route)
	}
	gym, ok := cat.Gym("Brock")
	if !ok || gym.LeaderType != "rock" {
		t.Errorf("Brock = %+v, want leader_type rock", gym)
	}
	if got := cat.Priority("Full Restore"); got != PriorityCritical {
		t.Errorf("Full Restore priority = %s, want CRITICAL", got)
	}
	if got := cat.Priority("Unknown Item"); got != PriorityLow {
		t.Errorf("unknown item priority = %s, want LOW default", got)
	}
	early := cat.Essentials(false)
	if len(early) == 0 {
		t.Error("expected non-empty early essentials list")
	}
}

func TestLoadCatalogs(t *testing.T) {
	cats, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cats.Items == nil || cats.TMHM == nil || cats.Species == nil || cats.Shopping == nil {
		t.Error("Load returned a catalogs bundle with a nil member")
	}
}
