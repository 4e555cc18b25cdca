package model

// GameState is the tick-level digest of the observed world: everything
// the planner reasons over. Derived properties are computed on demand
// rather than stored, so a stale GameState never carries a stale
// derived value.
type GameState struct {
	Tick           int64
	Location       string
	Money          int
	Badges         int
	IsBattle       bool
	Party          *Team
	Inventory      *Inventory
	ActiveQuests   []string
	PokedexCaught  int
	PokedexSeen    int
	HMsObtained    map[HmMove]bool
}

// NewGameState builds a zero-value-safe GameState.
func NewGameState() *GameState {
	return &GameState{
		Party:       NewTeam("", ""),
		Inventory:   NewInventory(),
		HMsObtained: make(map[HmMove]bool),
	}
}

// AvgPartyLevel returns the average level of non-empty party members.
func (g *GameState) AvgPartyLevel() float64 {
	if g.Party == nil {
		return 0
	}
	return g.Party.AvgLevel()
}

// PartyHPFraction returns the party-wide HP fraction.
func (g *GameState) PartyHPFraction() float64 {
	if g.Party == nil {
		return 0
	}
	return g.Party.HPFraction()
}

// FaintedCount returns the number of fainted party members.
func (g *GameState) FaintedCount() int {
	if g.Party == nil {
		return 0
	}
	return g.Party.FaintedCount()
}

// HasHM reports whether the given HM has been obtained.
func (g *GameState) HasHM(m HmMove) bool {
	return g.HMsObtained[m]
}
