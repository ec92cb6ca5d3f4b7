package cbackend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colang-project/colang/internal/backend"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/grammar"
	"github.com/colang-project/colang/internal/parser/strategy"
	"github.com/colang-project/colang/internal/sema/resolver"
	"github.com/colang-project/colang/internal/source"
)

func resolveProgram(t *testing.T, src string) *resolver.Program {
	t.Helper()
	file := source.NewFile("t.co", src)
	tokens, lexIssues := lexer.Tokenize(file)
	require.Equal(t, 0, lexIssues.Len())
	unit, parseIssues := grammar.ParseTranslationUnit(strategy.NewCursor(tokens))
	require.Empty(t, parseIssues)
	prog, bag := resolver.NewAnalyzer().Analyze(unit)
	require.False(t, bag.HasErrors(), "unexpected analysis errors: %+v", bag.Issues())
	return prog
}

func TestNameIsC99(t *testing.T) {
	if New().Name() != "c99" {
		t.Errorf("Name() = %q, want c99", New().Name())
	}
}

func TestGenerateHelloWorld(t *testing.T) {
	prog := resolveProgram(t, `
native void print(string msg);
void main() { print("hi"); }
`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "void print(const char * msg);")
	require.Contains(t, out, "void main(void) {")
	require.Contains(t, out, `print("hi");`)
}

func TestGenerateStructEmitsOpaqueTypedef(t *testing.T) {
	prog := resolveProgram(t, `struct Point { int getX() { return 1; } }`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "typedef struct Point { int _unused; } Point;")
	require.Contains(t, out, "int Point_getX(Point *self)")
}

func TestGenerateIfElse(t *testing.T) {
	prog := resolveProgram(t, `
int f(bool c) {
	if (c) {
		return 1;
	} else {
		return 2;
	}
}
`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "if (c) {")
	require.Contains(t, out, "} else {")
	require.Contains(t, out, "return 1;")
	require.Contains(t, out, "return 2;")
}

func TestGenerateBinaryExpressionParenthesized(t *testing.T) {
	prog := resolveProgram(t, `int f() { return 1 + 2 * 3; }`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "(1 + (2 * 3))")
}

func TestGenerateCoercionEmitsCast(t *testing.T) {
	prog := resolveProgram(t, `float f() { float x = 1; return x; }`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "double x = (double)(1);")
}

func TestGenerateEmitCommentsOption(t *testing.T) {
	prog := resolveProgram(t, `void f() {}`)

	withComments, err := New().Generate(prog, backend.Options{EmitComments: true})
	require.NoError(t, err)
	require.Contains(t, withComments, "/* f */")

	without, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.NotContains(t, without, "/* f */")
}

func TestGenerateNativeFunctionHasNoBody(t *testing.T) {
	prog := resolveProgram(t, `native void log();`)
	out, err := New().Generate(prog, backend.Options{})
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "void log(void);"))
	require.False(t, strings.Contains(out, "void log(void) {"))
}
