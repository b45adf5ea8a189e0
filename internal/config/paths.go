package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory of the running binary, following
// symlinks. It falls back to the working directory.
func ExecutableDir() string {
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ResolveRuntimePath makes raw absolute relative to ExecutableDir. An empty
// raw resolves to fallbackSubdir.
func ResolveRuntimePath(raw, fallbackSubdir string) string {
	target := trimOr(raw, strings.TrimSpace(fallbackSubdir))
	switch {
	case target == "":
		return ExecutableDir()
	case filepath.IsAbs(target):
		return filepath.Clean(target)
	}
	return filepath.Join(ExecutableDir(), target)
}
