// Package generate orchestrates a single .vscode generation run: it resolves
// the project's conan dependencies, merges their include paths and macro
// definitions with user overrides, locates clang-format, and writes the two
// output documents.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conanvscode/internal/conan"
	"conanvscode/internal/macro"
	"conanvscode/internal/toolchain"
	"conanvscode/internal/vscode"
)

// Options control a generation run. The list fields follow the merge policy:
// include paths bypass the macro registry entirely, Defines overwrite
// dependency defines without error, and Undefines remove by macro name
// without error when absent.
type Options struct {
	// ProjectDir holds the conanfile and receives the .vscode directory.
	ProjectDir string

	Includes    []string
	Defines     []string
	Undefines   []string
	ClangFormat string
	InstallArgs []string
}

// ConflictError reports two conan dependencies defining the same macro name
// with different full definitions. It is fatal; the tool never picks a side.
type ConflictError struct {
	Previous string
	Current  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("multiple defines from conan dependencies for the same macro: %q and %q",
		e.Previous, e.Current)
}

var findGCC = toolchain.FindGCC

// Generator runs the full resolve-merge-write pipeline.
type Generator struct {
	runner *conan.Runner
	logger *zap.Logger
}

// New creates a Generator using runner for all conan invocations.
func New(runner *conan.Runner, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{runner: runner, logger: logger}
}

// Run performs one generation pass and returns the paths of the files it
// wrote. Both output files are fully regenerated.
func (g *Generator) Run(ctx context.Context, opts Options) ([]string, error) {
	if _, err := conan.FindConanfile(opts.ProjectDir); err != nil {
		return nil, err
	}

	var (
		info        *conan.BuildInfo
		clangFormat = opts.ClangFormat
	)

	// The project install and the clang-format install are independent
	// conan invocations.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		info, err = g.runner.Install(egCtx, opts.ProjectDir, opts.InstallArgs)
		return err
	})
	if clangFormat == "" {
		eg.Go(func() error {
			var err error
			clangFormat, err = g.runner.InstallClangFormat(egCtx)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	includes, defines, err := Merge(info, opts)
	if err != nil {
		return nil, err
	}

	compilerPath := ""
	if runtime.GOOS == "linux" {
		compilerPath, err = findGCC()
		if err != nil {
			return nil, err
		}
	}

	g.logger.Info("writing editor configuration",
		zap.Int("includes", len(includes)),
		zap.Int("defines", len(defines)),
		zap.String("clang_format", clangFormat))

	props := vscode.NewProperties(includes, defines, compilerPath)
	settings := &vscode.Settings{ClangFormatPath: clangFormat}
	return vscode.Write(opts.ProjectDir, props, settings)
}

// Merge combines dependency include paths and defines with the user-supplied
// values from opts. User include paths come first, made absolute, followed
// by every dependency's include paths in dependency order. Two dependencies
// defining the same macro name with different definitions yields a
// ConflictError; user defines and undefines never error.
func Merge(info *conan.BuildInfo, opts Options) ([]string, []string, error) {
	includes := make([]string, 0, len(opts.Includes))
	for _, path := range opts.Includes {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve include path %s: %w", path, err)
		}
		includes = append(includes, abs)
	}

	defs := macro.NewDefinitions()
	for _, dep := range info.Dependencies {
		includes = append(includes, dep.IncludePaths...)
		for _, define := range dep.Defines {
			if previous, existed := defs.Add(define); existed && previous != define {
				return nil, nil, &ConflictError{Previous: previous, Current: define}
			}
		}
	}

	// user overrides win silently
	for _, define := range opts.Defines {
		defs.Add(define)
	}
	for _, undefine := range opts.Undefines {
		defs.Remove(undefine)
	}

	return includes, defs.List(), nil
}
