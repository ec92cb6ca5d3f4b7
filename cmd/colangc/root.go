// Package colangc is the colangc CLI: cobra-based argument parsing, zap
// structured tracing, and the glue that drives internal/lexer,
// internal/parser, internal/sema, internal/flow, and a backend.Generator
// end to end.
package colangc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/rcfile"
	"github.com/colang-project/colang/internal/source"
)

var (
	outPath string
	locale  string
	color   string
	verbose bool
)

// NewRoot builds the colangc cobra.Command tree. main.go's sole
// responsibility is calling Execute on it and mapping the returned error
// to an exit code.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colangc <source.co>",
		Short:         "compile a CO source file to C",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompile,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output C file path (default: source basename with .c)")
	cmd.Flags().StringVar(&locale, "locale", "", "diagnostic locale: en, ru, be (default: .colangrc.toml or en)")
	cmd.Flags().StringVar(&color, "color", "", "diagnostic color: auto, always, never (default: .colangrc.toml or auto)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit one structured trace line per pipeline stage")
	return cmd
}

func newLogger(verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		// Structured logging failing to initialize is itself an internal
		// invariant violation: there is no recoverable path.
		panic(fmt.Sprintf("colangc: internal: building logger: %v", err))
	}
	return logger.Sugar()
}

func runCompile(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	cfg, _ := rcfile.Discover(filepath.Dir(sourcePath))
	effectiveLocale := diag.Locale(firstNonEmpty(locale, string(cfg.Locale), string(diag.LocaleEnglish)))
	effectiveColor := diag.ColorMode(firstNonEmpty(color, string(cfg.Color), string(diag.ColorAuto)))

	preludePath, err := findPrelude()
	if err != nil {
		return err
	}
	log.Debugw("using prelude", "path", preludePath)

	target := resolveOutPath(sourcePath, outPath)

	result, err := Compile(preludePath, sourcePath, defaultGenerator(), log)
	if err != nil {
		return err
	}

	files := map[string]*source.File{}
	renderer := diag.Renderer{
		Locale: effectiveLocale,
		Color:  effectiveColor,
		Files: func(path string) *source.File {
			if f, ok := files[path]; ok {
				return f
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			f := source.NewFile(path, string(data))
			files[path] = f
			return f
		},
	}
	renderer.Render(cmd.ErrOrStderr(), result.Bag)

	if !result.Emitted {
		return errExitCode(1)
	}
	if err := os.WriteFile(target, []byte(result.Output), 0o644); err != nil {
		return fmt.Errorf("colangc: writing %s: %w", target, err)
	}
	return nil
}

// resolveOutPath defaults to the source basename with its extension
// replaced by .c, or .c appended if there was none.
func resolveOutPath(sourcePath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		return sourcePath + ".c"
	}
	return strings.TrimSuffix(sourcePath, ext) + ".c"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// errExitCode is a plain error whose presence signals runCompile should
// cause a non-zero, non-argument-error exit, distinct from code 2's
// argument errors. main.go inspects it to pick the exact code.
type errExitCode int

func (e errExitCode) Error() string { return "compile reported errors" }
func (e errExitCode) Code() int     { return int(e) }
