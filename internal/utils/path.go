package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ResolveFile finds a data file given on the command line or in config.
// Absolute paths are used as is. Relative paths are tried against the
// working directory, then the executable's directory and its parent.
func ResolveFile(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("no file given")
	}
	if filepath.IsAbs(userPath) {
		if FileExists(userPath) {
			return userPath, nil
		}
		return "", fmt.Errorf("file not found: %s", userPath)
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(execDir, userPath),
			filepath.Join(filepath.Dir(execDir), userPath),
		)
	}

	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Resolved %s to %s", userPath, path)
			return path, nil
		}
		log.Debugf("File candidate not found: %s", path)
	}
	return "", fmt.Errorf("file not found: %s (tried %v)", userPath, candidates)
}
