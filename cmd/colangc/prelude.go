package colangc

import (
	"fmt"
	"os"
	"path/filepath"
)

// preludeSearchPath is the probing order: a user override in their home
// directory, then progressively more system-wide locations.
func preludeSearchPath() []string {
	var path []string
	if home, err := os.UserHomeDir(); err == nil {
		path = append(path, filepath.Join(home, ".colang-libs", "prelude.co"))
	}
	path = append(path,
		filepath.Join("/usr/local/lib/colang", "prelude.co"),
		filepath.Join("/usr/lib/colang", "prelude.co"),
		filepath.Join("/lib/colang", "prelude.co"),
	)
	return path
}

// findPrelude probes preludeSearchPath in order and returns the first
// path that exists. It is fatal for a caller to have none exist; this
// function only reports the absence, leaving the exit code decision to
// the caller.
func findPrelude() (string, error) {
	for _, candidate := range preludeSearchPath() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("colangc: no prelude.co found (searched %v)", preludeSearchPath())
}
