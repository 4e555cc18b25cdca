package config

import "fmt"

var validOnLimit = map[string]bool{"save-and-exit": true, "save-only": true, "abort": true}
var validBudgetWindow = map[string]bool{"hourly": true, "daily": true, "run": true, "": true}
var validFailMode = map[string]bool{"continue": true, "fast-fail": true, "retry": true, "": true}
var validResultsFormat = map[string]bool{"json": true, "csv": true, "parquet": true, "": true}

// Validate enforces spec.md §6's enumerated-value constraints; unknown
// enum values are rejected rather than silently coerced, per the
// "closed-form configuration structs" redesign direction in spec.md §9.
func Validate(cfg *RuntimeConfig) error {
	if cfg.TickRate.Base <= 0 {
		return fmt.Errorf("config: tick_rate.base must be positive, got %v", cfg.TickRate.Base)
	}
	if cfg.TickRate.Battle <= 0 {
		return fmt.Errorf("config: tick_rate.battle must be positive, got %v", cfg.TickRate.Battle)
	}
	if !validBudgetWindow[cfg.TickRate.Budget] {
		return fmt.Errorf("config: tick_rate.budget %q is not one of hourly|daily|run", cfg.TickRate.Budget)
	}
	if cfg.Screenshot.Quality < 0 || cfg.Screenshot.Quality > 100 {
		return fmt.Errorf("config: screenshot.quality must be in [0,100], got %d", cfg.Screenshot.Quality)
	}
	if !validOnLimit[cfg.Limits.OnLimit] {
		return fmt.Errorf("config: limits.on_limit %q is not one of save-and-exit|save-only|abort", cfg.Limits.OnLimit)
	}
	if cfg.Save.MaxSnapshots <= 0 {
		return fmt.Errorf("config: save.max_snapshots must be positive, got %d", cfg.Save.MaxSnapshots)
	}
	for _, ev := range cfg.Snapshot.OnEvent {
		if !validSnapshotEvent[ev] {
			return fmt.Errorf("config: snapshot.on_event %q is not one of catch|battle|badge|death", ev)
		}
	}
	if !validFailMode[cfg.Experiment.FailMode] {
		return fmt.Errorf("config: experiment.fail_mode %q is not one of continue|fast-fail|retry", cfg.Experiment.FailMode)
	}
	if !validResultsFormat[cfg.Experiment.ResultsFormat] {
		return fmt.Errorf("config: experiment.results_format %q is not one of json|csv|parquet", cfg.Experiment.ResultsFormat)
	}
	if cfg.Experiment.ParallelWorkers < 0 {
		return fmt.Errorf("config: experiment.parallel_workers must be >= 0, got %d", cfg.Experiment.ParallelWorkers)
	}
	return nil
}

var validSnapshotEvent = map[string]bool{"catch": true, "battle": true, "badge": true, "death": true}
