// Package rcfile loads the optional .colangrc.toml project configuration:
// diagnostic locale and color preferences that the CLI falls back to when
// no flag overrides them.
package rcfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/toml"
)

// Config is the subset of .colangrc.toml this front end understands.
// Zero values mean "not set"; callers fall back to their own defaults.
type Config struct {
	Locale diag.Locale
	Color  diag.ColorMode
}

const fileName = ".colangrc.toml"

// Discover walks upward from dir looking for a .colangrc.toml, the way
// the teacher's project-context lookup walks toward a workspace root.
// It returns a zero Config (no error) if none is found.
func Discover(dir string) (Config, error) {
	path, ok := findUpward(dir, fileName)
	if !ok {
		return Config{}, nil
	}
	return Load(path)
}

func findUpward(start, name string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load parses a specific .colangrc.toml file.
func Load(path string) (Config, error) {
	data, err := toml.ParseTOMLFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rcfile: %w", err)
	}

	var cfg Config
	diagnostics, ok := data["diagnostics"]
	if !ok {
		return cfg, nil
	}

	if locale, ok := diagnostics["locale"].(string); ok {
		cfg.Locale = diag.Locale(locale)
	}
	if color, ok := diagnostics["color"].(string); ok {
		switch color {
		case "always":
			cfg.Color = diag.ColorAlways
		case "never":
			cfg.Color = diag.ColorNever
		default:
			cfg.Color = diag.ColorAuto
		}
	}
	return cfg, nil
}
