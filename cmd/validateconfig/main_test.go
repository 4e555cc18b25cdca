package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateFileValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	doc := "name: default\ntick_rate:\n  base: 10\n  battle: 2\nlimits:\n  on_limit: abort\nsave:\n  max_snapshots: 10\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	r := validateFile(path)
	if !r.valid {
		t.Fatalf("expected valid, got invalid: %v", r.detail)
	}
	if r.file != "default.yaml" {
		t.Errorf("expected file name default.yaml, got %q", r.file)
	}
}

func TestValidateFileInvalidEnum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	doc := "name: broken\ntick_rate:\n  base: 10\n  battle: 2\nlimits:\n  on_limit: nonsense\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	r := validateFile(path)
	if r.valid {
		t.Fatal("expected invalid on_limit to fail validation")
	}
}
