package memory

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// BattleRecord is one completed battle outcome.
type BattleRecord struct {
	Tick        int64
	EnemySpecies string
	PlayerSpecies []string
	MovesUsed   []string
	Victory     bool
}

// LocationVisited tracks cumulative exploration of one named location.
// Repeat visits merge into the same entry rather than creating a new
// one (spec.md §4.7).
type LocationVisited struct {
	Name          string
	VisitCount    int
	LastVisitTick int64
	ExploredAreas map[string]bool
	POIs          map[string]bool
	NPCs          map[string]bool
}

// ResourceSnapshot is a point-in-time reading of money and item
// counts, appended as a series across the session.
type ResourceSnapshot struct {
	Tick  int64
	Money int
	Items map[string]int
}

// ObjectiveStatus is the lifecycle of a StrategistMemory objective.
type ObjectiveStatus string

const (
	ObjectiveActive    ObjectiveStatus = "active"
	ObjectiveCompleted ObjectiveStatus = "completed"
	ObjectiveAbandoned ObjectiveStatus = "abandoned"
)

// Objective is a session-scoped goal with a priority and a progress
// fraction in [0, 1].
type Objective struct {
	ID       string
	Priority float64
	Progress float64
	Status   ObjectiveStatus
}

// StrategistMemory is session-scoped memory: persists for the life of
// one play session and is summarized (not discarded) on session end.
type StrategistMemory struct {
	SessionID  string
	battles    []BattleRecord
	locations  *orderedmap.OrderedMap[string, *LocationVisited]
	resources  []ResourceSnapshot
	objectives map[string]*Objective
	Money      int
	Items      map[string]int
}

// NewStrategistMemory builds an empty session memory.
func NewStrategistMemory(sessionID string) *StrategistMemory {
	return &StrategistMemory{
		SessionID:  sessionID,
		locations:  orderedmap.New[string, *LocationVisited](),
		objectives: make(map[string]*Objective),
		Items:      make(map[string]int),
	}
}

// RecordBattle appends a completed battle to the session history.
func (s *StrategistMemory) RecordBattle(rec BattleRecord) {
	s.battles = append(s.battles, rec)
}

// Battles returns the full battle history in recorded order.
func (s *StrategistMemory) Battles() []BattleRecord { return s.battles }

// RecentBattles returns the last n battle records, or fewer if the
// history is shorter.
func (s *StrategistMemory) RecentBattles(n int) []BattleRecord {
	if n > len(s.battles) {
		n = len(s.battles)
	}
	return s.battles[len(s.battles)-n:]
}

// WinRate returns victories/total across the full battle history, or
// 0 with an empty history.
func (s *StrategistMemory) WinRate() float64 {
	if len(s.battles) == 0 {
		return 0
	}
	wins := 0
	for _, b := range s.battles {
		if b.Victory {
			wins++
		}
	}
	return float64(wins) / float64(len(s.battles))
}

// VisitLocation records a visit, merging into the existing entry
// (accumulating areas/POIs/NPCs and bumping visit_count) if the
// location was seen before, or creating a fresh entry otherwise.
func (s *StrategistMemory) VisitLocation(name string, tick int64, areas, pois, npcs []string) {
	existing, ok := s.locations.Get(name)
	if !ok {
		existing = &LocationVisited{
			Name:          name,
			ExploredAreas: make(map[string]bool),
			POIs:          make(map[string]bool),
			NPCs:          make(map[string]bool),
		}
	}
	existing.VisitCount++
	existing.LastVisitTick = tick
	for _, a := range areas {
		existing.ExploredAreas[a] = true
	}
	for _, p := range pois {
		existing.POIs[p] = true
	}
	for _, n := range npcs {
		existing.NPCs[n] = true
	}
	s.locations.Set(name, existing)
}

// Location returns the visited record for a named location, if any.
func (s *StrategistMemory) Location(name string) (*LocationVisited, bool) {
	return s.locations.Get(name)
}

// LocationsInVisitOrder returns every visited location in the order it
// was first seen.
func (s *StrategistMemory) LocationsInVisitOrder() []*LocationVisited {
	out := make([]*LocationVisited, 0, s.locations.Len())
	for pair := s.locations.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// RecordResources appends a resource snapshot and updates the running
// money/items totals.
func (s *StrategistMemory) RecordResources(snap ResourceSnapshot) {
	s.resources = append(s.resources, snap)
	s.Money = snap.Money
	for k, v := range snap.Items {
		s.Items[k] = v
	}
}

// ResourceHistory returns the full resource snapshot series.
func (s *StrategistMemory) ResourceHistory() []ResourceSnapshot { return s.resources }

// SetObjective inserts or updates an objective by id.
func (s *StrategistMemory) SetObjective(obj Objective) {
	o := obj
	s.objectives[obj.ID] = &o
}

// UpdateObjectiveProgress sets an existing objective's progress
// fraction, a no-op if the id is unknown.
func (s *StrategistMemory) UpdateObjectiveProgress(id string, progress float64) {
	if o, ok := s.objectives[id]; ok {
		o.Progress = progress
	}
}

// ActiveObjectives returns active objectives sorted by descending
// priority.
func (s *StrategistMemory) ActiveObjectives() []Objective {
	var out []Objective
	for _, o := range s.objectives {
		if o.Status == ObjectiveActive {
			out = append(out, *o)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Priority > out[j-1].Priority; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
