package entity

import (
	"context"
	"testing"

	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/typechart"
)

func mustCatalogs(t *testing.T) *data.Catalogs {
	t.Helper()
	cats, err := data.Load()
	if err != nil {
		t.Fatalf("data.Load: %v", err)
	}
	return cats
}

func samplePokemon(id, species string, level int, primary, secondary string) *model.PokemonData {
	return &model.PokemonData{
		PokemonID: id,
		SpeciesID: species,
		Level:     level,
		CurrentHP: 40,
		MaxHP:     40,
		Base: model.BaseStats{
			HP: 40, PhysicalAttack: 50, Defense: 45, SpecialAttack: 50, SpecialDefense: 45, Speed: 60,
		},
		Moves: []model.Move{
			{Name: "Tackle", Type: primary, Power: 40, Accuracy: 100, CurrentPP: 10, MaxPP: 10, Category: model.Physical},
		},
		PrimaryType:   primary,
		SecondaryType: secondary,
	}
}

func TestDerivedStats(t *testing.T) {
	p := samplePokemon("a", "Pidgey", 25, "normal", "flying")
	if OffensiveStat(p) <= 0 {
		t.Error("expected positive offensive stat")
	}
	if DefensiveStat(p) <= 0 {
		t.Error("expected positive defensive stat")
	}
	if DPSPotential(p) < 1.0 {
		t.Error("DPS potential should be floored at 1.0")
	}
}

func TestCarryScoreBenchBands(t *testing.T) {
	cats := mustCatalogs(t)
	chart := typechart.New()
	calc := NewCarryScoreCalculator(chart, cats.Species)

	// spec.md §8 bench decision: Pidgey at level 50 vs expected encounter
	// level 25 should score low and land on a bench/immediate_bench band.
	p := samplePokemon("bench", "Pidgey", 50, "normal", "flying")
	result := calc.Score(p, CarryContext{ExpectedEncounterLevel: 25})
	if result.FinalScore >= 50 {
		t.Errorf("expected final_score < 50, got %v", result.FinalScore)
	}
	if result.BenchStatus != BenchBench && result.BenchStatus != BenchImmediateBench {
		t.Errorf("expected bench or immediate_bench, got %s", result.BenchStatus)
	}
}

func TestSentimentalMultiplierCap(t *testing.T) {
	p := samplePokemon("hero", "Charmander", 10, "fire", "")
	p.History = model.History{
		Victories: 10, SoloGymWins: 5, CriticalBattleWins: 10, IsShiny: true,
	}
	mult := sentimentalMultiplier(p)
	if mult > 1.3 {
		t.Errorf("sentimental multiplier must cap at 1.3, got %v", mult)
	}
}

func TestEvolutionTradeoffNoPreEvolutionMove(t *testing.T) {
	cats := mustCatalogs(t)
	mgr := NewEvolutionManager(cats.Species)
	p := samplePokemon("mewtwo", "Mewtwo", 70, "psychic", "")
	decision, _, _, _ := mgr.EvolutionTradeoff(p, []int{1, 2})
	if decision != DecisionEvolveNow {
		t.Errorf("expected evolve_now with no pre-evolution move, got %s", decision)
	}
}

func TestEvolutionTradeoffStrongPreEvolutionMove(t *testing.T) {
	cats := mustCatalogs(t)
	mgr := NewEvolutionManager(cats.Species)
	// Bulbasaur close to Razor Leaf (power 55, learn_level 20) with a
	// tiny stat gain should prefer waiting.
	p := samplePokemon("bulba", "Bulbasaur", 19, "grass", "poison")
	decision, _, waitBenefit, waitCost := mgr.EvolutionTradeoff(p, []int{1})
	if decision != DecisionWait && decision != DecisionConsiderWaiting {
		t.Errorf("expected wait or consider_waiting, got %s (benefit=%v cost=%v)", decision, waitBenefit, waitCost)
	}
}

func TestIsEligibleLevelCondition(t *testing.T) {
	cats := mustCatalogs(t)
	mgr := NewEvolutionManager(cats.Species)
	p := samplePokemon("bulba", "Bulbasaur", 16, "grass", "poison")
	if !mgr.IsEligible(p, false) {
		t.Error("expected Bulbasaur at level 16 to be eligible to evolve")
	}
	p.Level = 10
	if mgr.IsEligible(p, false) {
		t.Error("expected Bulbasaur at level 10 to not be eligible to evolve")
	}
}

func TestTeamCompositionOptimizerAnalyze(t *testing.T) {
	cats := mustCatalogs(t)
	chart := typechart.New()
	calc := NewCarryScoreCalculator(chart, cats.Species)
	opt := NewTeamCompositionOptimizer(calc, chart)

	team := model.NewTeam("t1", "Test Team")
	team.Party[0] = samplePokemon("p1", "Charmander", 22, "fire", "")
	team.Party[1] = samplePokemon("p2", "Squirtle", 23, "water", "")

	analysis, err := opt.Analyze(context.Background(), team, nil, 22)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.CarryScores) != 2 {
		t.Errorf("expected 2 carry scores, got %d", len(analysis.CarryScores))
	}
	if analysis.TeamScore <= 0 {
		t.Error("expected positive team score")
	}
}

func TestOptimizePartyOrder(t *testing.T) {
	cats := mustCatalogs(t)
	chart := typechart.New()
	calc := NewCarryScoreCalculator(chart, cats.Species)
	opt := NewTeamCompositionOptimizer(calc, chart)

	team := model.NewTeam("t1", "Test Team")
	team.Party[0] = samplePokemon("p1", "Charmander", 22, "fire", "")
	team.Party[1] = samplePokemon("p2", "Squirtle", 23, "water", "")

	order := opt.OptimizePartyOrder(team, BattleGym, []typechart.Type18{typechart.Grass})
	if len(order) != 2 {
		t.Fatalf("expected 2 ranked members, got %d", len(order))
	}
	// Charmander (fire) is super effective against a Grass gym leader,
	// Squirtle (water) is resisted, so Charmander should rank first.
	if order[0].PokemonID != "p1" {
		t.Errorf("expected Charmander ranked first vs a grass gym leader, got %s", order[0].PokemonID)
	}
}
