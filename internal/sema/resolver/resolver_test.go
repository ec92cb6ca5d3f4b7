package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/grammar"
	"github.com/colang-project/colang/internal/parser/strategy"
	"github.com/colang-project/colang/internal/source"
)

func mustParse(t *testing.T, text string) *ast.TranslationUnit {
	t.Helper()
	file := source.NewFile("t.co", text)
	tokens, lexIssues := lexer.Tokenize(file)
	require.Equal(t, 0, lexIssues.Len(), "unexpected lex issues: %+v", lexIssues.Issues())
	unit, issues := grammar.ParseTranslationUnit(strategy.NewCursor(tokens))
	require.Empty(t, issues, "unexpected parse issues")
	return unit
}

func analyze(t *testing.T, preludeSrc, userSrc string) (*Program, *diag.Bag) {
	t.Helper()
	prelude := mustParse(t, preludeSrc)
	user := mustParse(t, userSrc)
	return NewAnalyzer().Analyze(prelude, user)
}

const printPrelude = `native void print(string msg);`

func TestAnalyzeHelloWorldNativeCall(t *testing.T) {
	prog, bag := analyze(t, printPrelude, `void main() { print("hi"); }`)
	require.False(t, bag.HasErrors(), "unexpected errors: %+v", bag.Issues())

	var main *ResolvedFunction
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			main = fn
		}
	}
	require.NotNil(t, main, "expected a registered 'main' function")
	require.NotNil(t, main.Body)
	require.Len(t, main.Body.Statements, 1)

	stmt, ok := main.Body.Statements[0].(*ExprStmt)
	require.True(t, ok, "expected an ExprStmt, got %T", main.Body.Statements[0])
	call, ok := stmt.Expr.(*Call)
	require.True(t, ok, "expected a Call, got %T", stmt.Expr)
	require.Equal(t, "print", call.Name)
	require.Len(t, call.Arguments, 1)
}

func TestAnalyzeUnknownIdentifier(t *testing.T) {
	_, bag := analyze(t, "", `void main() { unknown_thing(); }`)
	require.True(t, bag.HasErrors())
	require.Equal(t, diag.CodeUnknownIdentifier, bag.Issues()[0].Code)
}

func TestAnalyzeDuplicateTypeSymbol(t *testing.T) {
	_, bag := analyze(t, "", `struct Point {} struct Point {}`)
	require.True(t, bag.HasErrors())
	found := false
	for _, iss := range bag.Issues() {
		if iss.Code == diag.CodeDuplicateSymbol {
			found = true
		}
	}
	require.True(t, found, "expected a duplicate-symbol diagnostic, got %+v", bag.Issues())
}

func TestAnalyzeUnknownType(t *testing.T) {
	_, bag := analyze(t, "", `Widget makeWidget() { return; }`)
	require.True(t, bag.HasErrors())
	require.Equal(t, diag.CodeUnknownType, bag.Issues()[0].Code)
}

func TestAnalyzeAmbiguousOverload(t *testing.T) {
	// Two overloads of 'choose', neither dominating the other once int
	// arguments widen to float in different positions, must be reported
	// ambiguous rather than silently picking one.
	prelude := `
native void choose(int a, float b);
native void choose(float a, int b);
`
	_, bag := analyze(t, prelude, `void main() { choose(1, 1); }`)
	require.True(t, bag.HasErrors())
	require.Equal(t, diag.CodeAmbiguousCall, bag.Issues()[0].Code)
}

func TestAnalyzeNoMatchingOverload(t *testing.T) {
	prelude := `
struct A {}
struct B {}
native void choose(A a);
native void choose(B b);
`
	_, bag := analyze(t, prelude, `void main() { choose(1); }`)
	require.True(t, bag.HasErrors())
	require.Equal(t, diag.CodeNoMatchingOverload, bag.Issues()[0].Code)
}

func TestAnalyzeOverloadResolutionPicksMoreSpecific(t *testing.T) {
	prelude := `
native void show(int n);
native void show(float n);
`
	prog, bag := analyze(t, prelude, `void main() { show(1); }`)
	require.False(t, bag.HasErrors(), "unexpected errors: %+v", bag.Issues())

	var main *ResolvedFunction
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			main = fn
		}
	}
	require.NotNil(t, main)
	stmt := main.Body.Statements[0].(*ExprStmt)
	call := stmt.Expr.(*Call)
	require.Len(t, call.Target.Parameters, 1)
	require.Equal(t, "int", call.Target.Parameters[0].Type.Name)
}

func TestAnalyzeIfElseBothBranchesTypedConsistently(t *testing.T) {
	prog, bag := analyze(t, "", `
bool test(bool c) {
	if (c) {
		return true;
	} else {
		return false;
	}
}
`)
	require.False(t, bag.HasErrors(), "unexpected errors: %+v", bag.Issues())
	fn := prog.Functions[0]
	ifStmt, ok := fn.Body.Statements[0].(*IfStmt)
	require.True(t, ok)

	thenReturn := ifStmt.Then.Statements[0].(*ReturnStmt)
	elseBlock, ok := ifStmt.Else.(*CodeBlock)
	require.True(t, ok, "expected the else branch to resolve to a *CodeBlock")
	elseReturn := elseBlock.Statements[0].(*ReturnStmt)

	if diff := cmp.Diff(thenReturn.Value.Type().Name, elseReturn.Value.Type().Name); diff != "" {
		t.Errorf("branch return types differ (-then +else):\n%s", diff)
	}
}

func TestAnalyzeMethodsAreNotInherited(t *testing.T) {
	_, bag := analyze(t, "", `
struct Base { void greet() { return; } }
struct Derived {}
void main() { Derived d = Derived(); d.greet(); }
`)
	require.True(t, bag.HasErrors())
	found := false
	for _, iss := range bag.Issues() {
		if iss.Code == diag.CodeUnknownIdentifier {
			found = true
		}
	}
	require.True(t, found, "expected Derived.greet() to be unresolvable since methods aren't inherited")
}

func TestAnalyzeForwardTypeReference(t *testing.T) {
	// A signature may mention a type declared later in the same unit:
	// every type name is entered before any signature is resolved.
	prog, bag := analyze(t, "", `
Point origin() { return origin(); }
struct Point {}
`)
	require.False(t, bag.HasErrors(), "unexpected errors: %+v", bag.Issues())

	var origin *ResolvedFunction
	for _, fn := range prog.Functions {
		if fn.Name == "origin" {
			origin = fn
		}
	}
	require.NotNil(t, origin)
	require.Equal(t, "Point", origin.Signature.ReturnType.Name)
}

func TestAnalyzeImplicitIntToFloatCoercion(t *testing.T) {
	prog, bag := analyze(t, "", `float identity() { float x = 1; return x; }`)
	require.False(t, bag.HasErrors(), "unexpected errors: %+v", bag.Issues())
	fn := prog.Functions[0]
	decl := fn.Body.Statements[0].(*VarDeclStmt)
	_, ok := decl.Init.(*Coercion)
	require.True(t, ok, "expected the int literal initializer to be wrapped in a Coercion to float")
}
