package savestate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"
	"github.com/jpillora/backoff"

	"github.com/wojons/ptp-core/internal/model"
)

// DefaultMaxSnapshots is the default rotation cap (spec.md §4.8).
const DefaultMaxSnapshots = 10

const snapshotsSubdir = "snapshots"
const emergencySubdir = "emergency_snapshots"
const indexFileName = "snapshots.json"

// Manager owns the on-disk snapshot directory layout described in
// spec.md §6: <dir>/snapshots/<id>.state plus an index file, and a
// parallel <dir>/emergency_snapshots/ that regular rotation never
// touches. All public operations serialize through a single lock; no
// re-entrance across save/load is allowed (spec.md §5).
type Manager struct {
	mu sync.Mutex

	dir          string
	maxSnapshots int
	nonce        int

	// index is kept in creation order; rotation evicts from the front.
	// Load moves the touched entry to the back, marking it most
	// recently used without disturbing creation order for the rest.
	index []model.SnapshotMetadata
}

// NewManager opens (or initializes) a snapshot directory, loading any
// existing index.
func NewManager(dir string, maxSnapshots int) (*Manager, error) {
	if maxSnapshots <= 0 {
		maxSnapshots = DefaultMaxSnapshots
	}
	m := &Manager{dir: dir, maxSnapshots: maxSnapshots}
	if err := os.MkdirAll(m.snapshotsDir(), 0755); err != nil {
		return nil, fmt.Errorf("savestate: create snapshots dir: %w", err)
	}
	if err := os.MkdirAll(m.emergencyDir(), 0755); err != nil {
		return nil, fmt.Errorf("savestate: create emergency dir: %w", err)
	}
	if err := m.loadIndex(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) snapshotsDir() string { return filepath.Join(m.dir, snapshotsSubdir) }
func (m *Manager) emergencyDir() string { return filepath.Join(m.dir, emergencySubdir) }
func (m *Manager) indexPath() string    { return filepath.Join(m.snapshotsDir(), indexFileName) }

func (m *Manager) loadIndex() error {
	raw, err := os.ReadFile(m.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			m.index = nil
			return nil
		}
		return fmt.Errorf("savestate: read index: %w", err)
	}
	var entries []model.SnapshotMetadata
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("savestate: decode index: %w", err)
	}
	m.index = entries
	return nil
}

func (m *Manager) persistIndex() error {
	raw, err := json.MarshalIndent(m.index, "", "  ")
	if err != nil {
		return fmt.Errorf("savestate: encode index: %w", err)
	}
	if err := os.WriteFile(m.indexPath(), raw, 0644); err != nil {
		return fmt.Errorf("savestate: write index: %w", err)
	}
	return nil
}

// snapshotID builds the <reason>_<YYYYMMDD_HHMMSS>_<nonce> id; the
// nonce is a manager-local monotonic counter so rapid creation within
// the same second never collides (spec.md §9 open question).
func (m *Manager) snapshotID(reason model.SnapshotReason, now time.Time) string {
	m.nonce++
	return fmt.Sprintf("%s_%s_%d", reason, now.Format("20060102_150405"), m.nonce)
}

// CreateSnapshot acquires raw bytes from the emulator, writes the
// blob, builds and caches metadata, rotates if over cap, and persists
// the index. Empty bytes fail with (false, "") and no side effects.
func (m *Manager) CreateSnapshot(emulator Emulator, reason model.SnapshotReason, tick int64, description, location string, badges int, teamHP float64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := emulator.GetStateBytes()
	if err != nil || len(blob) == 0 {
		return "", false
	}

	id := m.snapshotID(reason, time.Now())
	path := filepath.Join(m.snapshotsDir(), id+".state")
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return "", false
	}

	meta := model.SnapshotMetadata{
		SnapshotID:       id,
		CreatedAt:        time.Now(),
		TickCount:        tick,
		Reason:           reason,
		StateDescription: description,
		Location:         location,
		Badges:           badges,
		TeamHP:           teamHP,
		FileSize:         int64(len(blob)),
		IsValid:          true,
	}
	m.index = append(m.index, meta)
	m.rotate()
	if err := m.persistIndex(); err != nil {
		return "", false
	}
	return id, true
}

// rotate removes the oldest entries (front of the creation-ordered
// slice) until the cache is within the configured cap; emergency
// snapshots live in a separate directory untouched by this path.
func (m *Manager) rotate() {
	for len(m.index) > m.maxSnapshots {
		oldest := m.index[0]
		_ = os.Remove(filepath.Join(m.snapshotsDir(), oldest.SnapshotID+".state"))
		m.index = m.index[1:]
	}
}

// List returns every cached snapshot's metadata, oldest first.
func (m *Manager) List() []model.SnapshotMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SnapshotMetadata, len(m.index))
	copy(out, m.index)
	return out
}

func (m *Manager) find(id string) int {
	for i, meta := range m.index {
		if meta.SnapshotID == id {
			return i
		}
	}
	return -1
}

// Validate confirms a snapshot's file exists and its size matches the
// recorded metadata; on mismatch it marks the entry invalid and
// persists the index.
func (m *Manager) Validate(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 {
		return false, fmt.Errorf("savestate: snapshot %s not found", id)
	}
	info, err := os.Stat(filepath.Join(m.snapshotsDir(), id+".state"))
	if err != nil {
		m.index[i].IsValid = false
		_ = m.persistIndex()
		return false, fmt.Errorf("savestate: snapshot %s missing: %w", id, err)
	}
	if info.Size() != m.index[i].FileSize {
		m.index[i].IsValid = false
		_ = m.persistIndex()
		return false, fmt.Errorf("savestate: snapshot %s size mismatch: recorded %d, actual %d", id, m.index[i].FileSize, info.Size())
	}
	return true, nil
}

// LoadSnapshot reads a snapshot's bytes and delegates to the
// emulator's LoadStateBytes, retrying transient read failures with a
// short exponential backoff before giving up. On success the entry
// moves to the LRU front (the back of the slice).
func (m *Manager) LoadSnapshot(id string, emulator Emulator) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 {
		return false, fmt.Errorf("savestate: snapshot %s not found", id)
	}

	b := &backoff.Backoff{Min: 10 * time.Millisecond, Max: 200 * time.Millisecond, Factor: 2, Jitter: true}
	var blob []byte
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		blob, err = os.ReadFile(filepath.Join(m.snapshotsDir(), id+".state"))
		if err == nil {
			break
		}
		time.Sleep(b.Duration())
	}
	if err != nil {
		return false, fmt.Errorf("savestate: read snapshot %s: %w", id, err)
	}

	ok := emulator.LoadStateBytes(blob)
	if !ok {
		return false, nil
	}

	touched := m.index[i]
	m.index = append(append(m.index[:i:i], m.index[i+1:]...), touched)
	_ = m.persistIndex()
	return true, nil
}

// ShouldSnapshotInterval reports whether tick-lastSnapshotTick has
// reached the configured interval.
func ShouldSnapshotInterval(tick, lastSnapshotTick, intervalTicks int64) bool {
	return tick-lastSnapshotTick >= intervalTicks
}

// ShouldSnapshotEvent matches event case-insensitively against the
// configured save_on_events set.
func ShouldSnapshotEvent(event string, saveOnEvents []string) bool {
	for _, e := range saveOnEvents {
		if strings.EqualFold(e, event) {
			return true
		}
	}
	return false
}

// SaveEmergencySnapshot writes to the parallel emergency directory
// with its own metadata sidecar; these are never rotated by regular
// cleanup. A short uuid suffix is appended only if the millisecond
// filename already exists, to break same-millisecond collisions.
func (m *Manager) SaveEmergencySnapshot(emulator Emulator, tick int64, reason string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := emulator.GetStateBytes()
	if err != nil || len(blob) == 0 {
		return "", false
	}

	ms := time.Now().UnixMilli()
	base := fmt.Sprintf("emergency_%s_%d", reason, ms)
	statePath := filepath.Join(m.emergencyDir(), base+".state")
	if _, err := os.Stat(statePath); err == nil {
		base = fmt.Sprintf("%s_%s", base, uuid.NewString()[:8])
		statePath = filepath.Join(m.emergencyDir(), base+".state")
	}
	if err := os.WriteFile(statePath, blob, 0644); err != nil {
		return "", false
	}

	meta := model.SnapshotMetadata{
		SnapshotID: base,
		CreatedAt:  time.Now(),
		TickCount:  tick,
		Reason:     model.SnapshotReason(reason),
		FileSize:   int64(len(blob)),
		IsValid:    true,
	}
	sidecar, merr := json.MarshalIndent(meta, "", "  ")
	if merr != nil {
		return "", false
	}
	if err := os.WriteFile(filepath.Join(m.emergencyDir(), base+".json"), sidecar, 0644); err != nil {
		return "", false
	}
	return base, true
}

// GetEmergencySnapshots enumerates the emergency directory's sidecar
// files, sorted by created_at descending.
func (m *Manager) GetEmergencySnapshots() ([]model.SnapshotMetadata, error) {
	entries, err := os.ReadDir(m.emergencyDir())
	if err != nil {
		return nil, fmt.Errorf("savestate: read emergency dir: %w", err)
	}
	var out []model.SnapshotMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(m.emergencyDir(), entry.Name()))
		if err != nil {
			continue
		}
		var meta model.SnapshotMetadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			continue
		}
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// PeekIndexIDs extracts just the snapshot ids from a raw index
// payload without decoding every field into SnapshotMetadata, for
// callers (e.g. a CLI listing) that only need ids cheaply.
func PeekIndexIDs(raw []byte) ([]string, error) {
	var ids []string
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil {
			return
		}
		id, idErr := jsonparser.GetString(value, "SnapshotID")
		if idErr == nil {
			ids = append(ids, id)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("savestate: peek index: %w", err)
	}
	return ids, nil
}

// IndexBytes returns the raw persisted index payload for callers
// (e.g. PeekIndexIDs) that want the lightweight path.
func (m *Manager) IndexBytes() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return os.ReadFile(m.indexPath())
}
