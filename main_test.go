package main

import (
	"os"
	"testing"

	"github.com/wojons/ptp-core/internal/loop"
)

func TestGetConfigDirDefault(t *testing.T) {
	os.Unsetenv("CONFIG_DIR")
	if got := getConfigDirDefault(); got != "configs" {
		t.Errorf("expected \"configs\", got %q", got)
	}

	os.Setenv("CONFIG_DIR", "/tmp/some-configs")
	defer os.Unsetenv("CONFIG_DIR")
	if got := getConfigDirDefault(); got != "/tmp/some-configs" {
		t.Errorf("expected env override, got %q", got)
	}
}

func TestGetSaveDirDefault(t *testing.T) {
	os.Unsetenv("SAVE_DIR")
	if got := getSaveDirDefault(); got != "snapshots" {
		t.Errorf("expected \"snapshots\", got %q", got)
	}
}

func TestOnLimitPolicy(t *testing.T) {
	cases := map[string]loop.OnLimitPolicy{
		"save-and-exit": loop.OnLimitSaveAndExit,
		"save-only":     loop.OnLimitSaveOnly,
		"abort":         loop.OnLimitAbort,
		"":              loop.OnLimitAbort,
		"garbage":       loop.OnLimitAbort,
	}
	for in, want := range cases {
		if got := onLimitPolicy(in); got != want {
			t.Errorf("onLimitPolicy(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadConfigFallsBackToDefault(t *testing.T) {
	cfg, err := loadConfig("/nonexistent/config/dir", "default")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Limits.OnLimit != "abort" {
		t.Errorf("expected built-in default on_limit, got %q", cfg.Limits.OnLimit)
	}
}

func TestLoadConfigFromDirectory(t *testing.T) {
	dir := t.TempDir()
	const doc = "name: custom\nlimits:\n  on_limit: save-only\n  max_ticks: 500\n"
	if err := os.WriteFile(dir+"/custom.yaml", []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(dir, "custom")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != "custom" || cfg.Limits.MaxTicks != 500 {
		t.Errorf("expected loaded document, got %+v", cfg)
	}
}
