package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sentinel errors, mirroring the teacher's game/config/manager.go pair.
var (
	ErrConfigNotFound = errors.New("config: configuration not found")
	ErrInvalidConfig  = errors.New("config: invalid configuration")
)

// Info is the lightweight summary ListConfigs returns, parallel to the
// teacher's service.ConfigInfo.
type Info struct {
	Filename    string
	ConfigID    string
	Name        string
	Description string
}

// Manager loads, validates and caches RuntimeConfig documents from a
// directory of YAML files, grounded on the teacher's
// game/config/manager.go (directory scan, RWMutex cache,
// validate-on-load, cached-default).
type Manager struct {
	dir           string
	defaultConfig *RuntimeConfig
	configs       map[string]*RuntimeConfig
	mu            sync.RWMutex
}

// NewManager opens a config directory and loads its default.yaml (or
// the built-in Default() if none exists).
func NewManager(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config: directory does not exist: %s", dir)
	}
	m := &Manager{dir: dir, configs: make(map[string]*RuntimeConfig)}
	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("config: load default: %w", err)
	}
	return m, nil
}

func (m *Manager) loadDefaultConfig() error {
	cfg, err := m.LoadConfig("default")
	if errors.Is(err, ErrConfigNotFound) {
		m.mu.Lock()
		m.defaultConfig = Default()
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.defaultConfig = cfg
	m.mu.Unlock()
	return nil
}

// LoadConfig loads (or returns the cached copy of) a named RuntimeConfig.
func (m *Manager) LoadConfig(name string) (*RuntimeConfig, error) {
	m.mu.RLock()
	if cfg, ok := m.configs[name]; ok {
		m.mu.RUnlock()
		return cfg, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg, ok := m.configs[name]; ok {
		return cfg, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".yaml") && !strings.HasSuffix(filename, ".yml") {
		filename = name + ".yaml"
	}
	path := filepath.Join(m.dir, filename)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = cfg
	return cfg, nil
}

// ListConfigs scans the directory for YAML documents, skipping any
// that fail to load or validate.
func (m *Manager) ListConfigs() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("config: read directory: %w", err)
	}
	var out []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		cfg, err := m.LoadConfig(id)
		if err != nil {
			continue
		}
		out = append(out, Info{Filename: name, ConfigID: id, Name: cfg.Name, Description: cfg.Description})
	}
	return out, nil
}

// GetDefault returns the manager's cached default configuration.
func (m *Manager) GetDefault() *RuntimeConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SaveConfigFile writes a RuntimeConfig to <dir>/<name>.yaml and
// refreshes the cache.
func (m *Manager) SaveConfigFile(name string, cfg *RuntimeConfig) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal %s: %w", name, err)
	}
	path := filepath.Join(m.dir, name+".yaml")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	m.mu.Lock()
	m.configs[name] = cfg
	m.mu.Unlock()
	return nil
}
