package model

import "time"

// SnapshotReason names why a snapshot was taken; it is always preserved
// as the id prefix (spec.md §3/§4.8).
type SnapshotReason string

const (
	ReasonManual        SnapshotReason = "manual"
	ReasonInterval       SnapshotReason = "interval"
	ReasonBattleStart    SnapshotReason = "battle_start"
	ReasonBattleEnd      SnapshotReason = "battle_end"
	ReasonLevelUp        SnapshotReason = "level_up"
	ReasonLocationChange SnapshotReason = "location_change"
	ReasonCatch          SnapshotReason = "catch"
	ReasonBadge          SnapshotReason = "badge"
	ReasonEvent          SnapshotReason = "event"
	ReasonEmergency      SnapshotReason = "emergency"
	ReasonPreRecovery    SnapshotReason = "pre_recovery"
)

// SnapshotMetadata describes a saved emulator state; the raw bytes
// themselves are an opaque blob owned by the save-state manager, never
// held here.
type SnapshotMetadata struct {
	SnapshotID      string
	CreatedAt       time.Time
	TickCount       int64
	Reason          SnapshotReason
	StateDescription string
	GameStateDigest  string // optional short digest, "" if not computed
	Location         string
	Badges           int
	TeamHP           float64
	FileSize         int64
	IsValid          bool
}
