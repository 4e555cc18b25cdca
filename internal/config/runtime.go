// Package config loads and validates the run-level configuration
// surface spec.md §6 enumerates: tick rate, screenshotting, command
// dispatch, resource limits, snapshot policy, and experiment/output
// settings. It is distinct from internal/data, which owns the fixed
// domain tables (items, moves, species); this package owns
// user-supplied, per-run YAML configuration.
package config

// TickRateConfig controls the loop controller's scheduling (spec.md §6).
type TickRateConfig struct {
	Base     float64 `yaml:"base"`
	Battle   float64 `yaml:"battle"`
	Timeout  int64   `yaml:"timeout"`
	Adaptive bool    `yaml:"adaptive"`
	Budget      string  `yaml:"budget"` // "hourly" | "daily" | "run"
	BudgetLimit float64 `yaml:"budget_limit"` // USD
}

// ScreenshotConfig controls vision-adaptor capture cadence (spec.md §6).
type ScreenshotConfig struct {
	Interval     int64 `yaml:"interval"`
	BattleTurn   bool  `yaml:"battle_turn"`
	OnError      bool  `yaml:"on_error"`
	OnChange     bool  `yaml:"on_change"`
	Quality      int   `yaml:"quality"` // 0..100
	MaxStorageGB float64 `yaml:"max_storage_gb"`
	Async        bool  `yaml:"async"`
	Compress     bool  `yaml:"compress"`
}

// CommandConfig controls action-dispatch buffering (spec.md §6).
type CommandConfig struct {
	BufferSize      int  `yaml:"buffer_size"`
	Timeout         int64 `yaml:"timeout"`
	Validate        bool `yaml:"validate"`
	RollbackHistory int  `yaml:"rollback_history"`
	InterruptBattle bool `yaml:"interrupt_battle"`
	StaleThreshold  int64 `yaml:"stale_threshold"`
}

// LimitsConfig bounds a run (spec.md §6).
type LimitsConfig struct {
	MaxTime    int64   `yaml:"max_time"`
	MaxTicks   int64   `yaml:"max_ticks"`
	MaxCost    float64 `yaml:"max_cost"`
	MaxPokemon int     `yaml:"max_pokemon"`
	MaxBadges  int     `yaml:"max_badges"`
	MaxLevel   int     `yaml:"max_level"`
	OnLimit      string `yaml:"on_limit"` // "save-and-exit" | "save-only" | "abort"
	GracePeriod  int64  `yaml:"grace_period"`
}

// SnapshotPolicyConfig is the in-memory/on-disk snapshot posture
// (spec.md §6); the concrete cadence/cap values feed savestate.Manager.
type SnapshotPolicyConfig struct {
	Memory          bool     `yaml:"memory"`
	Disk            bool     `yaml:"disk"`
	OnEvent         []string `yaml:"on_event"` // subset of {catch, battle, badge, death}
	MaxDiskGB       float64  `yaml:"max_disk_gb"`
	Compress        bool     `yaml:"compress"`
	Validate        bool     `yaml:"validate"`
	RollbackOnError bool     `yaml:"rollback_on_error"`
	RollbackGrace   int64    `yaml:"rollback_grace"`
}

// SaveConfig controls the save-state manager's own cadence and cap
// (spec.md §6), separate from SnapshotPolicyConfig's trigger posture.
type SaveConfig struct {
	IntervalTicks       int64    `yaml:"interval_ticks"`
	MaxSnapshots        int      `yaml:"max_snapshots"`
	OnEvent             []string `yaml:"on_event"`
	EmergencySnapshotCount int   `yaml:"emergency_snapshot_count"`
	ValidateOnSave      bool     `yaml:"validate_on_save"`
	CompressOld         bool     `yaml:"compress_old"`
}

// ExperimentConfig controls multi-run/parallel execution (spec.md §6).
type ExperimentConfig struct {
	Name                string `yaml:"name"`
	ParallelWorkers     int    `yaml:"parallel_workers"`
	SequentialRetry     bool   `yaml:"sequential_retry"`
	ParallelMemoryLimit float64 `yaml:"parallel_memory_limit"`
	ParallelAPIRateLimit int   `yaml:"parallel_api_rate_limit"`
	AggregateStats      bool   `yaml:"aggregate_stats"`
	FailMode            string `yaml:"fail_mode"` // "continue" | "fast-fail" | "retry"
	CheckpointFrequency int64  `yaml:"checkpoint_frequency"`
	ResumeFrom          string `yaml:"resume_from"`
	ExportResults       bool   `yaml:"export_results"`
	ResultsFormat       string `yaml:"results_format"` // "json" | "csv" | "parquet"
}

// LoggingConfig controls output verbosity (spec.md §6).
type LoggingConfig struct {
	Verbose    bool   `yaml:"verbose"`
	Quiet      bool   `yaml:"quiet"`
	LogFile    string `yaml:"log_file"`
	RandomSeed int64  `yaml:"random_seed"`
}

// RuntimeConfig is the complete per-run configuration surface spec.md
// §6 enumerates.
type RuntimeConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	TickRate   TickRateConfig       `yaml:"tick_rate"`
	Screenshot ScreenshotConfig     `yaml:"screenshot"`
	Command    CommandConfig        `yaml:"command"`
	Limits     LimitsConfig         `yaml:"limits"`
	Snapshot   SnapshotPolicyConfig `yaml:"snapshot"`
	Save       SaveConfig           `yaml:"save"`
	Experiment ExperimentConfig     `yaml:"experiment"`
	Logging    LoggingConfig        `yaml:"logging"`
}

// Default returns a RuntimeConfig populated with the spec's named
// defaults (overworld 10Hz / battle 2Hz tick rate, 10-snapshot cap,
// abort on_limit, json results format).
func Default() *RuntimeConfig {
	return &RuntimeConfig{
		Name: "default",
		TickRate: TickRateConfig{Base: 10, Battle: 2, Timeout: 5000, Budget: "run"},
		Command:  CommandConfig{BufferSize: 16, Timeout: 2000, Validate: true, RollbackHistory: 5},
		Limits:   LimitsConfig{OnLimit: "abort"},
		Save:     SaveConfig{IntervalTicks: 1000, MaxSnapshots: 10, EmergencySnapshotCount: 5, ValidateOnSave: true},
		Experiment: ExperimentConfig{ParallelWorkers: 1, FailMode: "fast-fail", ResultsFormat: "json"},
	}
}
