// Package resolver implements the two-phase analyzer: Phase 1 registers
// every top-level symbol (types, functions, variables) across the
// prelude and user translation units into a shared root scope; Phase 2
// walks each function and method body, name-resolving and typing every
// statement and expression against that scope.
package resolver

import (
	"github.com/google/uuid"

	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/sema/scope"
	"github.com/colang-project/colang/internal/sema/stype"
	"github.com/colang-project/colang/internal/source"
)

// Expr is a typed expression: every node carries its resolved Type and
// the source span it was built from, for diagnostic reporting.
type Expr interface {
	Type() *stype.Type
	Span() source.Span
}

type typedBase struct {
	ty         *stype.Type
	sourceSpan source.Span
}

func (t typedBase) Type() *stype.Type { return t.ty }
func (t typedBase) Span() source.Span { return t.sourceSpan }

type IntLiteral struct {
	typedBase
	Value int64
}

type FloatLiteral struct {
	typedBase
	Value float64
}

type StringLiteral struct {
	typedBase
	Value string
}

type BoolLiteral struct {
	typedBase
	Value bool
}

// VariableRef is a resolved reference to a variable or parameter
// binding.
type VariableRef struct {
	typedBase
	Symbol *scope.Symbol
}

// Call is a resolved function or method invocation. Receiver is nil for
// a free-function call.
type Call struct {
	typedBase
	Target    *stype.Type // the chosen overload's KindFunction signature
	Name      string
	Receiver  Expr
	Arguments []Expr
}

// Postfix is a resolved postfix increment/decrement.
type Postfix struct {
	typedBase
	Operand  Expr
	Operator lexer.Kind
}

// Unary is a resolved prefix operator.
type Unary struct {
	typedBase
	Operand  Expr
	Operator lexer.Kind
}

// Binary is a resolved infix operator.
type Binary struct {
	typedBase
	Left, Right Expr
	Operator    lexer.Kind
}

// Assign is a resolved assignment; Target must denote a place.
type Assign struct {
	typedBase
	Target, Value Expr
}

// Coercion wraps an expression whose static type differs from but is
// convertible to the type required by its context.
type Coercion struct {
	typedBase
	Inner Expr
}

// ErrorExpr types a syntactically-or-semantically broken expression as
// the absorbing error type, so further checks on it are silently
// skipped rather than cascading.
type ErrorExpr struct {
	typedBase
}

// Stmt is a typed statement.
type Stmt interface {
	Span() source.Span
}

// IfStmt, WhileStmt, ReturnStmt, ExprStmt, VarDeclStmt, CodeBlock mirror
// the raw grammar's shapes, now carrying resolved Exprs.
type IfStmt struct {
	Cond       Expr
	Then       *CodeBlock
	Else       Stmt // *IfStmt, *CodeBlock, or nil
	SourceSpan source.Span
}

func (i *IfStmt) Span() source.Span { return i.SourceSpan }

type WhileStmt struct {
	Cond       Expr
	Body       *CodeBlock
	SourceSpan source.Span
}

func (w *WhileStmt) Span() source.Span { return w.SourceSpan }

type ReturnStmt struct {
	Value      Expr // nil for a bare "return;"
	SourceSpan source.Span
}

func (r *ReturnStmt) Span() source.Span { return r.SourceSpan }

type ExprStmt struct {
	Expr       Expr
	SourceSpan source.Span
}

func (e *ExprStmt) Span() source.Span { return e.SourceSpan }

type VarDeclStmt struct {
	Symbol     *scope.Symbol
	Init       Expr // nil if uninitialized
	SourceSpan source.Span
}

func (v *VarDeclStmt) Span() source.Span { return v.SourceSpan }

type CodeBlock struct {
	Statements   []Stmt
	SourceSpan   source.Span
	ClosingBrace source.Span
}

func (c *CodeBlock) Span() source.Span { return c.SourceSpan }

// ResolvedFunction is a fully registered (and, unless native, fully
// typed) function or method.
type ResolvedFunction struct {
	Name         string
	Signature    *stype.Type // KindFunction
	ReceiverType *stype.Type // non-nil for methods
	Params       []*scope.Symbol
	Body         *CodeBlock // nil for native declarations
	Native       bool
	Span         source.Span
}

// Program is the fully resolved translation-unit namespace handed to the
// backend: the sole long-lived artifact produced by analysis.
//
// ID stamps each compiled Program with a stable identity, so a
// long-lived consumer (an editor integration, a cache) can name a
// specific analysis result across requests even though this front end's
// CLI driver never reuses one.
type Program struct {
	ID        uuid.UUID
	Universe  *stype.Universe
	Root      *scope.Scope
	Functions []*ResolvedFunction
	Types     []*stype.Type
}
