// Package main implements the conan-vscode CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"conanvscode/internal/conan"
	"conanvscode/internal/config"
	"conanvscode/internal/generate"
	"conanvscode/internal/watch"
)

var (
	// Global flags
	verbose bool

	// Generation flags
	includes    []string
	defines     []string
	undefines   []string
	clangFormat string
	installArgs []string
	watchMode   bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "conan-vscode [path]",
	Short: "Generate a .vscode folder for a project that uses conan",
	Long: `conan-vscode generates VS Code C/C++ configuration for a conan project.

It resolves the project's conan dependencies to collect include paths and
preprocessor defines, merges them with the flags below, locates clang-format
(installing it through conan when --clang-format is not given), and writes
.vscode/c_cpp_properties.json and .vscode/settings.json into the project.
Both files are fully regenerated on every run.

Defaults for every flag can live in a .conan-vscode.yaml at the project root;
flags add to or override them.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().StringArrayVarP(&includes, "include", "I", nil,
		"Extra include directory; repeatable. Dependency include paths are added automatically")
	rootCmd.Flags().StringArrayVarP(&defines, "define", "D", nil,
		"Extra preprocessor definition as NAME or NAME=VALUE; repeatable. Overwrites dependency defines")
	rootCmd.Flags().StringArrayVarP(&undefines, "undefine", "U", nil,
		"Suppress a preprocessor definition by name; repeatable")
	rootCmd.Flags().StringVar(&clangFormat, "clang-format", "",
		"Path to clang-format. If not given it will be installed using conan")
	rootCmd.Flags().StringArrayVar(&installArgs, "install-args", nil,
		"Argument forwarded to conan install; repeatable")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false,
		"Keep running and regenerate when the conanfile or project config changes")
}

// buildOptions layers CLI flag values over the project config: list flags
// append to the config's lists, scalar flags override.
func buildOptions(projectDir string, cfg *config.Config) generate.Options {
	opts := generate.Options{
		ProjectDir:  projectDir,
		Includes:    combined(cfg.Includes, includes),
		Defines:     combined(cfg.Defines, defines),
		Undefines:   combined(cfg.Undefines, undefines),
		ClangFormat: cfg.ClangFormat,
		InstallArgs: combined(cfg.InstallArgs, installArgs),
	}
	if clangFormat != "" {
		opts.ClangFormat = clangFormat
	}
	return opts
}

func combined(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// regenerate performs one full generation pass. The project config is
// reloaded on every pass so that watch mode picks up edits to
// .conan-vscode.yaml along with conanfile changes.
func regenerate(ctx context.Context, projectDir string) error {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}

	gen := generate.New(conan.NewRunner(cfg.Conan, logger), logger)
	written, err := gen.Run(ctx, buildOptions(projectDir, cfg))
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Println("Generated: " + path)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	projectDir := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := regenerate(ctx, projectDir); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	w, err := watch.New(projectDir, func(ctx context.Context) error {
		return regenerate(ctx, projectDir)
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}
	return w.Run(ctx)
}

// exitCode distinguishes conflicting dependency defines, a problem with the
// project's dependencies rather than a tool failure, from everything else.
func exitCode(err error) int {
	var conflict *generate.ConflictError
	if errors.As(err, &conflict) {
		return 2
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
