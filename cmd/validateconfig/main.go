// Command validateconfig validates every run-configuration YAML file in
// a directory (default "configs"). It checks:
//   - YAML structure and type conformance against config.RuntimeConfig
//   - Every enumerated field (tick_rate.budget, limits.on_limit,
//     snapshot.on_event, experiment.fail_mode/results_format) against
//     its closed set of allowed values
//   - Numeric fields that must be positive (tick rates, max_snapshots)
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wojons/ptp-core/internal/config"
)

// result captures the outcome of validating a single configuration file.
type result struct {
	file   string
	valid  bool
	detail []string
}

func validateFile(path string) result {
	r := result{file: filepath.Base(path), valid: true}

	manager, err := config.NewManager(filepath.Dir(path))
	if err != nil {
		r.valid = false
		r.detail = append(r.detail, fmt.Sprintf("open directory: %v", err))
		return r
	}

	id := strings.TrimSuffix(strings.TrimSuffix(r.file, ".yaml"), ".yml")
	cfg, err := manager.LoadConfig(id)
	if err != nil {
		r.valid = false
		r.detail = append(r.detail, err.Error())
		return r
	}

	r.detail = append(r.detail,
		fmt.Sprintf("name: %s", cfg.Name),
		fmt.Sprintf("tick rate: %g/%g Hz (base/battle)", cfg.TickRate.Base, cfg.TickRate.Battle),
		fmt.Sprintf("on_limit: %s", cfg.Limits.OnLimit),
		fmt.Sprintf("max_snapshots: %d", cfg.Save.MaxSnapshots),
	)
	return r
}

func main() {
	dir := flag.String("dir", "configs", "directory containing run configuration YAML files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error finding config files: %v\n", err)
		os.Exit(1)
	}
	more, err := filepath.Glob(filepath.Join(*dir, "*.yml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error finding config files: %v\n", err)
		os.Exit(1)
	}
	files = append(files, more...)

	if len(files) == 0 {
		fmt.Printf("no configuration files found in %s\n", *dir)
		return
	}

	allValid := true
	for _, file := range files {
		r := validateFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), r.file)
		if r.valid {
			fmt.Println("VALID")
		} else {
			fmt.Println("INVALID")
			allValid = false
		}
		for _, line := range r.detail {
			fmt.Println("  " + line)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("all configurations are valid")
		return
	}
	fmt.Println("some configurations have errors")
	os.Exit(1)
}
