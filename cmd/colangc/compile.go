package colangc

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/colang-project/colang/internal/backend"
	"github.com/colang-project/colang/internal/backend/cbackend"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/flow"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/grammar"
	"github.com/colang-project/colang/internal/parser/strategy"
	"github.com/colang-project/colang/internal/sema/resolver"
	"github.com/colang-project/colang/internal/source"
)

// Result is everything a completed compile produced, independent of
// whether it succeeded: callers inspect Bag to decide the process exit
// code.
type Result struct {
	Bag     *diag.Bag
	Output  string
	Emitted bool
}

// Compile runs the full pipeline over sourcePath, reading preludePath
// first into the same root namespace. gen is the backend invoked iff no
// Error-severity issue was emitted anywhere in the pipeline.
func Compile(preludePath, sourcePath string, gen backend.Generator, log *zap.SugaredLogger) (*Result, error) {
	preludeFile, err := readSourceFile(preludePath)
	if err != nil {
		return nil, fmt.Errorf("colangc: reading prelude: %w", err)
	}
	sourceFile, err := readSourceFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("colangc: reading source: %w", err)
	}

	var bag diag.Bag

	log.Debug("lexing")
	preludeTokens, preludeLexIssues := lexer.Tokenize(preludeFile)
	bag.Extend(preludeLexIssues)
	sourceTokens, sourceLexIssues := lexer.Tokenize(sourceFile)
	bag.Extend(sourceLexIssues)

	log.Debug("parsing")
	preludeUnit, preludeParseIssues := grammar.ParseTranslationUnit(strategy.NewCursor(preludeTokens))
	bag.AddAll(preludeParseIssues)
	sourceUnit, sourceParseIssues := grammar.ParseTranslationUnit(strategy.NewCursor(sourceTokens))
	bag.AddAll(sourceParseIssues)

	log.Debug("resolving")
	an := resolver.NewAnalyzer()
	prog, semaIssues := an.Analyze(preludeUnit, sourceUnit)
	bag.Extend(semaIssues)

	log.Debug("checking return-flow")
	bag.Extend(flow.Check(prog))

	bag.Sort()

	result := &Result{Bag: &bag}
	if bag.HasErrors() {
		log.Debugw("compile failed, backend not invoked", "issues", bag.Len())
		return result, nil
	}

	log.Debugw("generating backend output", "backend", gen.Name())
	out, err := gen.Generate(prog, backend.Options{})
	if err != nil {
		return result, fmt.Errorf("colangc: backend: %w", err)
	}
	result.Output = out
	result.Emitted = true
	return result, nil
}

func readSourceFile(path string) (*source.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.NewFile(path, string(data)), nil
}

// defaultGenerator is the backend wired by the CLI when no other is
// configured; cmd/colangc only knows the backend.Generator contract, not
// cbackend's internals.
func defaultGenerator() backend.Generator {
	return cbackend.New()
}
