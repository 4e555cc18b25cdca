package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// tacticianSnapshot is the full round-trippable content of a
// TacticianMemory, marshaled as JSON per category so every field
// survives a save/load cycle (spec.md §4.7).
type tacticianSnapshot struct {
	Patterns       map[string]*LearnedPattern
	Strategies     map[string]*SuccessfulStrategy
	Mistakes       map[string]*MistakeRecord
	Preferences    map[string]*PlayerPreference
	TotalSessions  int
	TotalBattles   int
	OverallWinRate float64
}

const tacticianSchema = `
CREATE TABLE IF NOT EXISTS tactician_snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	payload TEXT NOT NULL
);`

// SaveToDatabase persists the full memory state to a sqlite file at
// path, overwriting any previous snapshot (spec.md §4.7).
func (m *TacticianMemory) SaveToDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("memory: open sqlite %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(tacticianSchema); err != nil {
		return fmt.Errorf("memory: create schema: %w", err)
	}

	snap := tacticianSnapshot{
		Patterns:       m.patterns,
		Strategies:     m.strategies,
		Mistakes:       m.mistakes,
		Preferences:    m.preferences,
		TotalSessions:  m.TotalSessions,
		TotalBattles:   m.TotalBattles,
		OverallWinRate: m.OverallWinRate,
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("memory: marshal snapshot: %w", err)
	}

	_, err = db.Exec(`INSERT INTO tactician_snapshot (id, payload) VALUES (0, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, string(payload))
	if err != nil {
		return fmt.Errorf("memory: write snapshot: %w", err)
	}
	return nil
}

// LoadFromDatabase replaces the memory's contents with the snapshot
// stored at path. A missing snapshot row is not an error — it leaves
// the memory untouched, matching a fresh database with nothing saved
// yet.
func (m *TacticianMemory) LoadFromDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("memory: open sqlite %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(tacticianSchema); err != nil {
		return fmt.Errorf("memory: create schema: %w", err)
	}

	var payload string
	err = db.QueryRow(`SELECT payload FROM tactician_snapshot WHERE id = 0`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("memory: read snapshot: %w", err)
	}

	var snap tacticianSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return fmt.Errorf("memory: unmarshal snapshot: %w", err)
	}

	m.patterns = snap.Patterns
	m.strategies = snap.Strategies
	m.mistakes = snap.Mistakes
	m.preferences = snap.Preferences
	m.TotalSessions = snap.TotalSessions
	m.TotalBattles = snap.TotalBattles
	m.OverallWinRate = snap.OverallWinRate

	if m.patterns == nil {
		m.patterns = make(map[string]*LearnedPattern)
	}
	if m.strategies == nil {
		m.strategies = make(map[string]*SuccessfulStrategy)
	}
	if m.mistakes == nil {
		m.mistakes = make(map[string]*MistakeRecord)
	}
	if m.preferences == nil {
		m.preferences = make(map[string]*PlayerPreference)
	}
	return nil
}
