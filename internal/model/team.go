package model

// PartySize is the fixed number of active party slots.
const PartySize = 6

// Team owns a party of exactly six (possibly empty) slots plus an
// unbounded box of stored Pokemon.
type Team struct {
	TeamID string
	Name   string
	Party  [PartySize]*PokemonData // nil slot == empty
	Box    []*PokemonData

	Counters TeamCounters
}

// TeamCounters are aggregate, rollup statistics for a Team.
type TeamCounters struct {
	BattlesWon  int
	BattlesLost int
	PokemonCaught int
}

// NewTeam constructs an empty team honoring the party-length-6 invariant
// by construction (spec.md §9 design note: "factory functions that
// return empty instances ... honor every invariant").
func NewTeam(id, name string) *Team {
	return &Team{TeamID: id, Name: name}
}

// ActiveCount returns the number of non-empty party slots.
func (t *Team) ActiveCount() int {
	n := 0
	for _, p := range t.Party {
		if p != nil {
			n++
		}
	}
	return n
}

// FaintedCount returns the number of party members at 0 HP.
func (t *Team) FaintedCount() int {
	n := 0
	for _, p := range t.Party {
		if p != nil && p.IsFainted() {
			n++
		}
	}
	return n
}

// AvgLevel returns the average level across non-empty party slots, or 0.
func (t *Team) AvgLevel() float64 {
	sum, n := 0, 0
	for _, p := range t.Party {
		if p != nil {
			sum += p.Level
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// HPFraction returns the party-wide HP fraction: sum(current)/sum(max)
// across non-empty slots, or 0 if the party is empty.
func (t *Team) HPFraction() float64 {
	var cur, max int
	for _, p := range t.Party {
		if p != nil {
			cur += p.CurrentHP
			max += p.MaxHP
		}
	}
	if max == 0 {
		return 0
	}
	return float64(cur) / float64(max)
}

// LowestHPFraction returns the minimum HP fraction among non-empty party
// members, or 1.0 if the party is empty.
func (t *Team) LowestHPFraction() float64 {
	lowest := 1.0
	found := false
	for _, p := range t.Party {
		if p == nil {
			continue
		}
		found = true
		if f := p.HPFraction(); f < lowest {
			lowest = f
		}
	}
	if !found {
		return 1.0
	}
	return lowest
}

// AnyStatus reports whether any party member carries a non-None status.
func (t *Team) AnyStatus() bool {
	for _, p := range t.Party {
		if p != nil && p.Status != StatusNone {
			return true
		}
	}
	return false
}

// TotalPPFraction returns remaining PP across all party moves divided by
// max PP across all party moves, or 1.0 if there are no moves at all.
func (t *Team) TotalPPFraction() float64 {
	var cur, max int
	for _, p := range t.Party {
		if p == nil {
			continue
		}
		for _, m := range p.Moves {
			cur += m.CurrentPP
			max += m.MaxPP
		}
	}
	if max == 0 {
		return 1.0
	}
	return float64(cur) / float64(max)
}
