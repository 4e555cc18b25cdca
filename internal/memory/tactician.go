package memory

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
)

// MaxPatternsPerType is the default pruning cap per Tactician category
// (spec.md §4.7).
const MaxPatternsPerType = 50

// LearnedPattern is a recurring, cross-session behavioral regularity.
type LearnedPattern struct {
	ID             string
	Description    string
	Confidence     float64
	RelevanceScore float64
	SuccessCount   int
	FailureCount   int
	LastValidated  int64
}

// SuccessfulStrategy is a move sequence that worked against a
// particular situation, keyed by a content-hash id.
type SuccessfulStrategy struct {
	ID            string
	Context       string
	EnemyType     string
	PlayerPokemon string
	MovesSequence []string
	SuccessRate   float64
	TimesUsed     int
}

// MistakeRecord is a recorded failure, merged by exact situation
// equality across occurrences.
type MistakeRecord struct {
	ID              string
	Situation       map[string]string
	Severity        string
	OccurrenceCount int
	LastTick        int64
}

// PlayerPreference is a learned preference keyed by category, unique
// per category.
type PlayerPreference struct {
	Category string
	Value    string
	Strength float64
}

// TacticianMemory is cross-session, persistent memory: patterns,
// strategies, mistakes, preferences, plus global lifetime counters.
type TacticianMemory struct {
	patterns     map[string]*LearnedPattern
	strategies   map[string]*SuccessfulStrategy
	mistakes     map[string]*MistakeRecord
	preferences  map[string]*PlayerPreference

	TotalSessions  int
	TotalBattles   int
	OverallWinRate float64
}

// NewTacticianMemory builds an empty cross-session memory.
func NewTacticianMemory() *TacticianMemory {
	return &TacticianMemory{
		patterns:    make(map[string]*LearnedPattern),
		strategies:  make(map[string]*SuccessfulStrategy),
		mistakes:    make(map[string]*MistakeRecord),
		preferences: make(map[string]*PlayerPreference),
	}
}

// AddPattern inserts a new pattern or updates the fields of an
// existing one sharing the same id (spec.md §4.7).
func (m *TacticianMemory) AddPattern(p LearnedPattern) {
	m.patterns[p.ID] = &p
}

// Pattern returns a learned pattern by id.
func (m *TacticianMemory) Pattern(id string) (*LearnedPattern, bool) {
	p, ok := m.patterns[id]
	return p, ok
}

// PatternCount returns the number of distinct learned patterns.
func (m *TacticianMemory) PatternCount() int { return len(m.patterns) }

// situationKey builds a stable, order-independent key for a situation
// map so two mistakes with identical situations compare equal.
func situationKey(situation map[string]string) string {
	keys := make([]string, 0, len(situation))
	for k := range situation {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(situation[k])
		b.WriteByte(';')
	}
	return b.String()
}

// AddMistake merges a mistake into an existing record when the
// situation matches exactly, incrementing occurrence_count; otherwise
// it inserts a new record (spec.md §4.7).
func (m *TacticianMemory) AddMistake(rec MistakeRecord) {
	key := situationKey(rec.Situation)
	for _, existing := range m.mistakes {
		if situationKey(existing.Situation) == key {
			existing.OccurrenceCount++
			existing.LastTick = rec.LastTick
			if rec.Severity != "" {
				existing.Severity = rec.Severity
			}
			return
		}
	}
	if rec.OccurrenceCount == 0 {
		rec.OccurrenceCount = 1
	}
	m.mistakes[rec.ID] = &rec
}

// Mistakes returns every recorded mistake.
func (m *TacticianMemory) Mistakes() []MistakeRecord {
	out := make([]MistakeRecord, 0, len(m.mistakes))
	for _, mm := range m.mistakes {
		out = append(out, *mm)
	}
	return out
}

// strategyID hashes (context, enemy_type, player_pokemon,
// moves_sequence) into a stable id (spec.md §4.7).
func strategyID(context, enemyType, playerPokemon string, moves []string) string {
	h := sha1.New()
	h.Write([]byte(context))
	h.Write([]byte{0})
	h.Write([]byte(enemyType))
	h.Write([]byte{0})
	h.Write([]byte(playerPokemon))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(moves, ",")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GetOrCreateStrategy returns the existing strategy matching this
// fingerprint, or creates a zero-use one.
func (m *TacticianMemory) GetOrCreateStrategy(context, enemyType, playerPokemon string, moves []string) *SuccessfulStrategy {
	id := strategyID(context, enemyType, playerPokemon, moves)
	if s, ok := m.strategies[id]; ok {
		return s
	}
	s := &SuccessfulStrategy{
		ID: id, Context: context, EnemyType: enemyType,
		PlayerPokemon: playerPokemon, MovesSequence: moves,
	}
	m.strategies[id] = s
	return s
}

// RecordStrategyUse updates a strategy's usage count and rolling
// success rate after it has been tried again.
func (m *TacticianMemory) RecordStrategyUse(id string, succeeded bool) {
	s, ok := m.strategies[id]
	if !ok {
		return
	}
	total := s.TimesUsed
	wins := s.SuccessRate * float64(total)
	if succeeded {
		wins++
	}
	s.TimesUsed++
	s.SuccessRate = wins / float64(s.TimesUsed)
}

// StrategiesFor returns strategies matching (enemyType, playerPokemon),
// sorted by descending success rate (spec.md §4.7).
func (m *TacticianMemory) StrategiesFor(enemyType, playerPokemon string) []SuccessfulStrategy {
	var out []SuccessfulStrategy
	for _, s := range m.strategies {
		if s.EnemyType == enemyType && s.PlayerPokemon == playerPokemon {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SuccessRate > out[j].SuccessRate })
	return out
}

// SetPreference inserts or overwrites the unique preference for a
// category.
func (m *TacticianMemory) SetPreference(p PlayerPreference) {
	m.preferences[p.Category] = &p
}

// Preference returns the preference recorded for a category.
func (m *TacticianMemory) Preference(category string) (*PlayerPreference, bool) {
	p, ok := m.preferences[category]
	return p, ok
}

// PruneCategory is the Tactician category pruning targets (spec.md
// §4.7's "prune until under the cap" applies per-category).
type PruneCategory string

const (
	PrunePatterns PruneCategory = "patterns"
)

// Prune removes the lowest-relevance patterns until the category is
// at or under maxPerType. Only patterns are scored by relevance today;
// strategies/mistakes/preferences don't carry a comparable relevance
// field in spec.md §4.7, so pruning is pattern-only.
func (m *TacticianMemory) Prune(maxPerType int) int {
	if len(m.patterns) <= maxPerType {
		return 0
	}
	type scored struct {
		id    string
		score float64
	}
	ranked := make([]scored, 0, len(m.patterns))
	for id, p := range m.patterns {
		ranked = append(ranked, scored{id, p.RelevanceScore})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	removed := 0
	for _, r := range ranked {
		if len(m.patterns) <= maxPerType {
			break
		}
		delete(m.patterns, r.id)
		removed++
	}
	return removed
}
