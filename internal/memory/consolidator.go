package memory

// DefaultTickInterval is how often the consolidator runs, in ticks
// (spec.md §4.7).
const DefaultTickInterval = 1000

// DefaultMinOccurrencesForPattern is the minimum repeat count before a
// recurring action is staged as a candidate pattern.
const DefaultMinOccurrencesForPattern = 3

// DefaultPatternThreshold is the minimum confidence for a candidate
// pattern to be recorded during the Strategist→Tactician phase.
const DefaultPatternThreshold = 0.7

// ConsolidationResult reports what one consolidation pass did, for
// observability (spec.md §4.7).
type ConsolidationResult struct {
	Success              bool
	PatternsStaged       int
	StrategiesDerived    int
	MistakesDerived      int
	PatternsPruned       int
	DurationMillis       float64
}

// Consolidator promotes observations up the memory hierarchy: recurring
// actions become candidate patterns, battle outcomes become strategies
// or mistakes, and Tactician categories are pruned back under their
// caps.
type Consolidator struct {
	TickInterval               int
	MinOccurrencesForPattern   int
	PatternThreshold           float64
	MaxPatternsPerType         int
}

// NewConsolidator builds a consolidator with spec.md's defaults.
func NewConsolidator() *Consolidator {
	return &Consolidator{
		TickInterval:             DefaultTickInterval,
		MinOccurrencesForPattern: DefaultMinOccurrencesForPattern,
		PatternThreshold:         DefaultPatternThreshold,
		MaxPatternsPerType:       MaxPatternsPerType,
	}
}

// ShouldRun reports whether tick is a consolidation boundary.
func (c *Consolidator) ShouldRun(tick int64) bool {
	return c.TickInterval > 0 && tick%int64(c.TickInterval) == 0
}

// Consolidate runs all three phases synchronously: Observer→Strategist
// pattern staging, Strategist→Tactician strategy/mistake derivation,
// and Tactician forgetting (spec.md §4.7).
func (c *Consolidator) Consolidate(tick int64, observer *ObserverMemory, strategist *StrategistMemory, tactician *TacticianMemory) ConsolidationResult {
	result := ConsolidationResult{Success: true}

	staged := c.stagePatterns(tick, observer, tactician)
	result.PatternsStaged = staged

	derived, mistakes := c.deriveFromBattles(tick, strategist, tactician)
	result.StrategiesDerived = derived
	result.MistakesDerived = mistakes

	result.PatternsPruned = tactician.Prune(c.MaxPatternsPerType)

	tactician.TotalBattles = len(strategist.Battles())
	tactician.OverallWinRate = strategist.WinRate()

	return result
}

// stagePatterns detects action types repeated at least
// MinOccurrencesForPattern times in the observer's ring buffer and
// records or refreshes the corresponding pattern.
func (c *Consolidator) stagePatterns(tick int64, observer *ObserverMemory, tactician *TacticianMemory) int {
	counts := make(map[string]int)
	confSum := make(map[string]float64)
	for _, a := range observer.Actions() {
		key := string(a.ActionType)
		counts[key]++
		confSum[key] += a.Confidence
	}

	staged := 0
	for key, n := range counts {
		if n < c.MinOccurrencesForPattern {
			continue
		}
		avgConf := confSum[key] / float64(n)
		if avgConf < c.PatternThreshold {
			continue
		}
		existing, ok := tactician.Pattern(key)
		relevance := avgConf
		successCount := n
		if ok {
			relevance = existing.RelevanceScore
			successCount = existing.SuccessCount + n
		}
		tactician.AddPattern(LearnedPattern{
			ID:             key,
			Description:    "recurring action type: " + key,
			Confidence:     avgConf,
			RelevanceScore: relevance,
			SuccessCount:   successCount,
			LastValidated:  tick,
		})
		staged++
	}
	return staged
}

// deriveFromBattles groups recent battle records by (enemy species,
// player species, moves used) to surface successful strategies from
// victories and mistakes from defeats.
func (c *Consolidator) deriveFromBattles(tick int64, strategist *StrategistMemory, tactician *TacticianMemory) (strategiesDerived, mistakesDerived int) {
	for _, b := range strategist.Battles() {
		playerKey := ""
		if len(b.PlayerSpecies) > 0 {
			playerKey = b.PlayerSpecies[0]
		}
		if b.Victory {
			strat := tactician.GetOrCreateStrategy(b.EnemySpecies, b.EnemySpecies, playerKey, b.MovesUsed)
			tactician.RecordStrategyUse(strat.ID, true)
			strategiesDerived++
			continue
		}
		situation := map[string]string{
			"enemy_species":  b.EnemySpecies,
			"player_species": playerKey,
		}
		tactician.AddMistake(MistakeRecord{
			ID:        "mistake_" + b.EnemySpecies + "_" + playerKey,
			Situation: situation,
			Severity:  "battle_loss",
			LastTick:  tick,
		})
		mistakesDerived++
	}
	return strategiesDerived, mistakesDerived
}
