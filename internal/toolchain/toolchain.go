// Package toolchain locates compiler tooling on the host.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FindInPaths searches dirs for an executable called name. It behaves like
// exec.LookPath restricted to an explicit list of directories and returns
// the first match.
func FindInPaths(name string, dirs []string) (string, bool) {
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
			continue
		}
		return candidate, true
	}
	return "", false
}

// FindGCC returns the path of gcc on PATH. Used on Linux to pin VS Code's
// compilerPath; without it VS Code falls back to probing for clang and warns
// on every open.
func FindGCC() (string, error) {
	path, err := exec.LookPath("gcc")
	if err != nil {
		return "", fmt.Errorf("could not find gcc on PATH: %w", err)
	}
	return path, nil
}
