package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wojons/ptp-core/internal/model"
)

func TestObserverMemoryRingBufferWraps(t *testing.T) {
	o := NewObserverMemory()
	for i := 0; i < ObserverRingSize+3; i++ {
		o.Push(ActionRecord{Tick: int64(i), ActionType: model.ActionNavigation, Succeeded: true, Confidence: 1})
	}
	actions := o.Actions()
	if len(actions) != ObserverRingSize {
		t.Fatalf("expected ring capped at %d, got %d", ObserverRingSize, len(actions))
	}
	if actions[0].Tick != 3 {
		t.Errorf("expected oldest surviving tick 3, got %d", actions[0].Tick)
	}
}

func TestObserverMemorySummarize(t *testing.T) {
	o := NewObserverMemory()
	o.Push(ActionRecord{Succeeded: true, Confidence: 0.8, Outcome: "ok"})
	o.Push(ActionRecord{Succeeded: false, Confidence: 0.4, Outcome: "failed"})
	summary := o.Summarize()
	if summary.SuccessRate != 0.5 {
		t.Errorf("expected success rate 0.5, got %v", summary.SuccessRate)
	}
	if len(summary.RecentOutcomes) != 2 {
		t.Errorf("expected 2 outcomes, got %d", len(summary.RecentOutcomes))
	}
}

func TestObserverMemoryClear(t *testing.T) {
	o := NewObserverMemory()
	o.Push(ActionRecord{Succeeded: true})
	o.SetTickState(TickState{Location: "Pallet Town"})
	o.Clear()
	if len(o.Actions()) != 0 {
		t.Error("expected no actions after clear")
	}
	if o.TickState() != (TickState{}) {
		t.Error("expected default tick state after clear")
	}
}

func TestStrategistMemoryVisitLocationMerges(t *testing.T) {
	s := NewStrategistMemory("sess1")
	s.VisitLocation("Viridian City", 10, []string{"north_gate"}, []string{"mart"}, nil)
	s.VisitLocation("Viridian City", 20, []string{"south_gate"}, nil, []string{"npc_joey"})

	loc, ok := s.Location("Viridian City")
	if !ok {
		t.Fatal("expected location to be recorded")
	}
	if loc.VisitCount != 2 {
		t.Errorf("expected visit_count 2, got %d", loc.VisitCount)
	}
	if loc.LastVisitTick != 20 {
		t.Errorf("expected last_visit_tick 20, got %d", loc.LastVisitTick)
	}
	if !loc.ExploredAreas["north_gate"] || !loc.ExploredAreas["south_gate"] {
		t.Error("expected accumulated explored areas across visits")
	}
	if !loc.POIs["mart"] || !loc.NPCs["npc_joey"] {
		t.Error("expected accumulated POIs and NPCs across visits")
	}
}

func TestStrategistMemoryWinRateAndActiveObjectives(t *testing.T) {
	s := NewStrategistMemory("sess1")
	s.RecordBattle(BattleRecord{Victory: true})
	s.RecordBattle(BattleRecord{Victory: false})
	s.RecordBattle(BattleRecord{Victory: true})
	if got := s.WinRate(); got != 2.0/3.0 {
		t.Errorf("expected win rate 2/3, got %v", got)
	}

	s.SetObjective(Objective{ID: "beat_gym", Priority: 5, Status: ObjectiveActive})
	s.SetObjective(Objective{ID: "catch_pidgey", Priority: 1, Status: ObjectiveActive})
	s.SetObjective(Objective{ID: "done_quest", Priority: 10, Status: ObjectiveCompleted})

	active := s.ActiveObjectives()
	if len(active) != 2 {
		t.Fatalf("expected 2 active objectives, got %d", len(active))
	}
	if active[0].ID != "beat_gym" {
		t.Errorf("expected highest-priority active objective first, got %s", active[0].ID)
	}
}

func TestTacticianMemoryAddMistakeMergesBySituation(t *testing.T) {
	m := NewTacticianMemory()
	situation := map[string]string{"enemy_species": "Geodude", "player_species": "Pidgey"}
	m.AddMistake(MistakeRecord{ID: "m1", Situation: situation, Severity: "battle_loss", LastTick: 5})
	m.AddMistake(MistakeRecord{ID: "m2", Situation: situation, Severity: "battle_loss", LastTick: 10})

	mistakes := m.Mistakes()
	if len(mistakes) != 1 {
		t.Fatalf("expected merge into a single mistake record, got %d", len(mistakes))
	}
	if mistakes[0].OccurrenceCount != 2 {
		t.Errorf("expected occurrence_count 2, got %d", mistakes[0].OccurrenceCount)
	}
}

func TestTacticianMemoryGetOrCreateStrategyIsStable(t *testing.T) {
	m := NewTacticianMemory()
	s1 := m.GetOrCreateStrategy("route22", "normal", "Pidgey", []string{"Tackle", "Gust"})
	s2 := m.GetOrCreateStrategy("route22", "normal", "Pidgey", []string{"Tackle", "Gust"})
	if s1.ID != s2.ID {
		t.Error("expected the same fingerprint to resolve to the same strategy id")
	}
	m.RecordStrategyUse(s1.ID, true)
	m.RecordStrategyUse(s1.ID, false)
	if s1.TimesUsed != 2 {
		t.Errorf("expected times_used 2, got %d", s1.TimesUsed)
	}
	if s1.SuccessRate != 0.5 {
		t.Errorf("expected success rate 0.5, got %v", s1.SuccessRate)
	}
}

func TestTacticianMemoryPruneRemovesLowestRelevance(t *testing.T) {
	m := NewTacticianMemory()
	for i := 0; i < 5; i++ {
		m.AddPattern(LearnedPattern{ID: string(rune('a' + i)), RelevanceScore: float64(i)})
	}
	removed := m.Prune(3)
	if removed != 2 {
		t.Fatalf("expected 2 patterns pruned, got %d", removed)
	}
	if m.PatternCount() != 3 {
		t.Fatalf("expected 3 patterns remaining, got %d", m.PatternCount())
	}
	if _, ok := m.Pattern("a"); ok {
		t.Error("expected the lowest-relevance pattern to be pruned")
	}
}

func TestTacticianMemorySaveLoadRoundTrip(t *testing.T) {
	m := NewTacticianMemory()
	m.AddPattern(LearnedPattern{ID: "p1", Description: "test", Confidence: 0.9, RelevanceScore: 3})
	m.AddMistake(MistakeRecord{ID: "m1", Situation: map[string]string{"a": "b"}, Severity: "sev", LastTick: 1})
	m.GetOrCreateStrategy("ctx", "fire", "Squirtle", []string{"Bubble"})
	m.SetPreference(PlayerPreference{Category: "ball_choice", Value: "Great Ball", Strength: 0.8})
	m.TotalSessions = 4
	m.TotalBattles = 12
	m.OverallWinRate = 0.75

	dbPath := filepath.Join(t.TempDir(), "tactician.db")
	if err := m.SaveToDatabase(dbPath); err != nil {
		t.Fatalf("SaveToDatabase: %v", err)
	}

	loaded := NewTacticianMemory()
	if err := loaded.LoadFromDatabase(dbPath); err != nil {
		t.Fatalf("LoadFromDatabase: %v", err)
	}
	if loaded.TotalSessions != 4 || loaded.TotalBattles != 12 || loaded.OverallWinRate != 0.75 {
		t.Errorf("counters did not round-trip: %+v", loaded)
	}
	if _, ok := loaded.Pattern("p1"); !ok {
		t.Error("expected pattern p1 to round-trip")
	}
	if len(loaded.Mistakes()) != 1 {
		t.Error("expected 1 mistake to round-trip")
	}
	if _, ok := loaded.Preference("ball_choice"); !ok {
		t.Error("expected preference to round-trip")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected db file to exist on disk: %v", err)
	}
}

func TestConsolidatorStagesPatternsAndDerivesStrategies(t *testing.T) {
	observer := NewObserverMemory()
	for i := 0; i < 4; i++ {
		observer.Push(ActionRecord{ActionType: model.ActionBattle, Succeeded: true, Confidence: 0.9})
	}
	strategist := NewStrategistMemory("s1")
	strategist.RecordBattle(BattleRecord{EnemySpecies: "Geodude", PlayerSpecies: []string{"Pidgey"}, MovesUsed: []string{"Gust"}, Victory: true})
	strategist.RecordBattle(BattleRecord{EnemySpecies: "Onix", PlayerSpecies: []string{"Pidgey"}, MovesUsed: []string{"Gust"}, Victory: false})

	tactician := NewTacticianMemory()
	c := NewConsolidator()
	c.MinOccurrencesForPattern = 3

	result := c.Consolidate(1000, observer, strategist, tactician)
	if !result.Success {
		t.Fatal("expected consolidation to succeed")
	}
	if result.PatternsStaged != 1 {
		t.Errorf("expected 1 pattern staged (battle action type x4), got %d", result.PatternsStaged)
	}
	if result.StrategiesDerived != 1 {
		t.Errorf("expected 1 strategy derived from the victory, got %d", result.StrategiesDerived)
	}
	if result.MistakesDerived != 1 {
		t.Errorf("expected 1 mistake derived from the defeat, got %d", result.MistakesDerived)
	}
	if tactician.TotalBattles != 2 {
		t.Errorf("expected total_battles synced to 2, got %d", tactician.TotalBattles)
	}
}

func TestGetContextForPlanning(t *testing.T) {
	observer := NewObserverMemory()
	observer.SetTickState(TickState{Location: "Cerulean City", PartyHP: 0.8})
	strategist := NewStrategistMemory("s1")
	strategist.SetObjective(Objective{ID: "beat_misty", Priority: 9, Status: ObjectiveActive})
	tactician := NewTacticianMemory()
	tactician.TotalSessions = 2

	ctx := GetContextForPlanning(observer, strategist, tactician)
	if ctx.Location != "Cerulean City" {
		t.Errorf("expected location propagated, got %s", ctx.Location)
	}
	if ctx.ActiveObjective != "beat_misty" {
		t.Errorf("expected active objective propagated, got %s", ctx.ActiveObjective)
	}
	if ctx.TotalSessions != 2 {
		t.Errorf("expected total_sessions propagated, got %d", ctx.TotalSessions)
	}
}
