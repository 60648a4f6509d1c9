// Package conan shells out to the conan CLI to resolve a project's
// dependencies and reports back their include paths, bin paths, and
// preprocessor defines.
package conan

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"conanvscode/internal/toolchain"
)

// ClangFormatRef is the conan package reference used to install clang-format
// when the user does not supply a path to an existing binary.
const ClangFormatRef = "clang_format/13.0.0@fickle/testing"

// Runner invokes the conan CLI. Conan's own output is passed through to the
// user so install progress and failures stay visible.
type Runner struct {
	binary string
	logger *zap.Logger

	// stdout/stderr for the spawned conan process, overridable in tests
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner for the given conan binary name or path. An
// empty binary falls back to "conan" on PATH.
func NewRunner(binary string, logger *zap.Logger) *Runner {
	if binary == "" {
		binary = "conan"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		binary: binary,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Install resolves ref's dependencies into a temporary install directory,
// parses the generated conanbuildinfo.json, and cleans the directory up.
// ref is either a path to a directory holding a conanfile or a full conan
// package reference. extraArgs are forwarded to conan install verbatim.
func (r *Runner) Install(ctx context.Context, ref string, extraArgs []string) (*BuildInfo, error) {
	installDir, err := os.MkdirTemp("", "conan-vscode-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create install dir: %w", err)
	}
	defer os.RemoveAll(installDir)

	args := append([]string{"install", ref, "-if", installDir, "-g", "json"}, extraArgs...)
	if err := r.run(ctx, args); err != nil {
		return nil, err
	}

	return ReadBuildInfo(filepath.Join(installDir, BuildInfoFile))
}

// InstallClangFormat installs the clang-format conan package and returns the
// path of the clang-format executable inside the package's bin directories.
func (r *Runner) InstallClangFormat(ctx context.Context) (string, error) {
	info, err := r.Install(ctx, ClangFormatRef, nil)
	if err != nil {
		return "", err
	}
	for _, dep := range info.Dependencies {
		if path, ok := toolchain.FindInPaths("clang-format", dep.BinPaths); ok {
			r.logger.Debug("found clang-format", zap.String("path", path), zap.String("package", dep.Name))
			return path, nil
		}
	}
	return "", fmt.Errorf("did not find clang-format after installing %s", ClangFormatRef)
}

func (r *Runner) run(ctx context.Context, args []string) error {
	r.logger.Info("running conan",
		zap.String("binary", r.binary),
		zap.Strings("args", args))
	fmt.Fprintf(r.stdout, "Running: %s %s\n", r.binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", r.binary, strings.Join(args, " "), err)
	}
	return nil
}
