package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("expected the built-in default to validate, got %v", err)
	}
}

func TestValidateRejectsUnknownOnLimit(t *testing.T) {
	cfg := Default()
	cfg.Limits.OnLimit = "explode"
	if err := Validate(cfg); err == nil {
		t.Error("expected an unknown on_limit value to fail validation")
	}
}

func TestValidateRejectsOutOfRangeQuality(t *testing.T) {
	cfg := Default()
	cfg.Screenshot.Quality = 150
	if err := Validate(cfg); err == nil {
		t.Error("expected an out-of-range screenshot quality to fail validation")
	}
}

func TestValidateRejectsUnknownSnapshotEvent(t *testing.T) {
	cfg := Default()
	cfg.Snapshot.OnEvent = []string{"earthquake"}
	if err := Validate(cfg); err == nil {
		t.Error("expected an unknown snapshot event to fail validation")
	}
}

func TestManagerLoadConfigMissingReturnsSentinel(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.LoadConfig("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestManagerSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	cfg := Default()
	cfg.Name = "speedrun"
	cfg.Description = "fast-fail parallel speedrun profile"
	cfg.Experiment.ParallelWorkers = 4

	if err := m.SaveConfigFile("speedrun", cfg); err != nil {
		t.Fatalf("SaveConfigFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "speedrun.yaml")); err != nil {
		t.Fatalf("expected file written: %v", err)
	}

	fresh, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager (reload): %v", err)
	}
	loaded, err := fresh.LoadConfig("speedrun")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Name != "speedrun" || loaded.Experiment.ParallelWorkers != 4 {
		t.Errorf("expected round-tripped config, got %+v", loaded)
	}
}

func TestManagerListConfigsSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("limits:\n  on_limit: explode\n"), 0644); err != nil {
		t.Fatalf("write broken.yaml: %v", err)
	}
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	cfg := Default()
	cfg.Name = "ok"
	if err := m.SaveConfigFile("ok", cfg); err != nil {
		t.Fatalf("SaveConfigFile: %v", err)
	}

	list, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	for _, info := range list {
		if info.ConfigID == "broken" {
			t.Error("expected the invalid config skipped, not listed")
		}
	}
}

func TestManagerGetDefaultFallsBackToBuiltin(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.GetDefault() == nil {
		t.Fatal("expected a built-in default when no default.yaml exists")
	}
	if m.GetDefault().TickRate.Base != 10 {
		t.Errorf("expected default tick rate base 10, got %v", m.GetDefault().TickRate.Base)
	}
}
