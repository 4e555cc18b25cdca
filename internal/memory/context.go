package memory

// PlanningContext is the flat dict of current facts the planner reads
// before building a plan (spec.md §4.7's get_context_for_planning).
type PlanningContext struct {
	Location       string
	PartyHPFrac    float64
	SessionWinRate float64
	ActiveObjective string
	TotalSessions  int
	TotalBattles   int
	OverallWinRate float64
}

// GetContextForPlanning assembles the read-only GOAP integration
// surface from all three memory tiers.
func GetContextForPlanning(observer *ObserverMemory, strategist *StrategistMemory, tactician *TacticianMemory) PlanningContext {
	ctx := PlanningContext{
		Location:       observer.TickState().Location,
		PartyHPFrac:    observer.TickState().PartyHP,
		SessionWinRate: strategist.WinRate(),
		TotalSessions:  tactician.TotalSessions,
		TotalBattles:   tactician.TotalBattles,
		OverallWinRate: tactician.OverallWinRate,
	}
	if active := strategist.ActiveObjectives(); len(active) > 0 {
		ctx.ActiveObjective = active[0].ID
	}
	return ctx
}

// QueryStrategistObjectives returns active objectives in priority
// order.
func QueryStrategistObjectives(strategist *StrategistMemory) []Objective {
	return strategist.ActiveObjectives()
}

// QueryTacticianStrategies returns strategies matching
// (enemyType, playerPokemon), sorted by descending success rate.
func QueryTacticianStrategies(tactician *TacticianMemory, enemyType, playerPokemon string) []SuccessfulStrategy {
	return tactician.StrategiesFor(enemyType, playerPokemon)
}

// AIContext is the bundle handed to a language-model client for
// tactical/strategic advice (spec.md §4.7's AI-integration surface).
type AIContext struct {
	Tactical        TacticalContext
	Strategic       StrategicContext
	RecentActions   Summary
}

// TacticalContext is in-battle advice: matching strategies plus
// warnings drawn from mistakes matching the current situation.
type TacticalContext struct {
	Strategies []SuccessfulStrategy
	Warnings   []string
}

// StrategicContext is session-level advice: the active objective plus
// performance and resource facts.
type StrategicContext struct {
	ActiveObjective string
	WinRate         float64
	Money           int
	Items           map[string]int
}

// BuildAIContext assembles the tactical, strategic and recent-actions
// summaries a language-model client would need to suggest a move.
func BuildAIContext(observer *ObserverMemory, strategist *StrategistMemory, tactician *TacticianMemory, enemyType, playerPokemon string, currentSituation map[string]string) AIContext {
	strategies := tactician.StrategiesFor(enemyType, playerPokemon)

	var warnings []string
	key := situationKey(currentSituation)
	for _, mistake := range tactician.Mistakes() {
		if situationKey(mistake.Situation) == key {
			warnings = append(warnings, mistake.Severity)
		}
	}

	activeObjective := ""
	if active := strategist.ActiveObjectives(); len(active) > 0 {
		activeObjective = active[0].ID
	}

	return AIContext{
		Tactical: TacticalContext{Strategies: strategies, Warnings: warnings},
		Strategic: StrategicContext{
			ActiveObjective: activeObjective,
			WinRate:         strategist.WinRate(),
			Money:           strategist.Money,
			Items:           strategist.Items,
		},
		RecentActions: observer.Summarize(),
	}
}
