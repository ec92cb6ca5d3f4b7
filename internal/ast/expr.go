package ast

import (
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/source"
)

// Expression is implemented by every expression node. The parser builds
// these across three grammatical tiers (spec §4.3: primary, secondary,
// tertiary) but the resulting shapes are not themselves tagged by tier —
// an operand that meets no operator at a given level is passed up
// unchanged rather than wrapped, so a lone literal stays a literal node.
type Expression interface {
	Node
	exprNode()
}

// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral are primary-tier
// literal expressions; each carries a fixed type at analysis time.
type IntLiteral struct {
	Value      int64
	SourceSpan source.Span
}

func (l *IntLiteral) Span() source.Span { return l.SourceSpan }
func (l *IntLiteral) exprNode()         {}

type FloatLiteral struct {
	Value      float64
	SourceSpan source.Span
}

func (l *FloatLiteral) Span() source.Span { return l.SourceSpan }
func (l *FloatLiteral) exprNode()         {}

type StringLiteral struct {
	Value      string
	SourceSpan source.Span
}

func (l *StringLiteral) Span() source.Span { return l.SourceSpan }
func (l *StringLiteral) exprNode()         {}

type BoolLiteral struct {
	Value      bool
	SourceSpan source.Span
}

func (l *BoolLiteral) Span() source.Span { return l.SourceSpan }
func (l *BoolLiteral) exprNode()         {}

// IdentifierExpr is a primary-tier reference to a name, resolved against
// the enclosing scope chain at analysis time.
type IdentifierExpr struct {
	Name       string
	SourceSpan source.Span
}

func (i *IdentifierExpr) Span() source.Span { return i.SourceSpan }
func (i *IdentifierExpr) exprNode()         {}

// CallExpr is a secondary-tier postfix operator: Callee(Arguments...).
type CallExpr struct {
	Callee     Expression
	Arguments  []Expression
	SourceSpan source.Span
}

func (c *CallExpr) Span() source.Span { return c.SourceSpan }
func (c *CallExpr) exprNode()         {}

// SubscriptExpr is a secondary-tier postfix operator: Receiver[Index].
type SubscriptExpr struct {
	Receiver   Expression
	Index      Expression
	SourceSpan source.Span
}

func (s *SubscriptExpr) Span() source.Span { return s.SourceSpan }
func (s *SubscriptExpr) exprNode()         {}

// FieldAccessExpr is a secondary-tier postfix operator: Receiver.Field.
// Chained accesses (a.b.c) are produced by folding this operator
// left-to-right, same as Call/Subscript (spec §12.4).
type FieldAccessExpr struct {
	Receiver   Expression
	Field      string
	FieldSpan  source.Span
	SourceSpan source.Span
}

func (f *FieldAccessExpr) Span() source.Span { return f.SourceSpan }
func (f *FieldAccessExpr) exprNode()         {}

// PostfixExpr is a secondary-tier postfix increment/decrement:
// Operand++ / Operand--.
type PostfixExpr struct {
	Operand    Expression
	Operator   lexer.Kind // PLUS_PLUS or MINUS_MINUS
	SourceSpan source.Span
}

func (p *PostfixExpr) Span() source.Span { return p.SourceSpan }
func (p *PostfixExpr) exprNode()         {}

// UnaryExpr is a tertiary-tier prefix operator: -x, !x.
type UnaryExpr struct {
	Operator   lexer.Kind
	Operand    Expression
	SourceSpan source.Span
}

func (u *UnaryExpr) Span() source.Span { return u.SourceSpan }
func (u *UnaryExpr) exprNode()         {}

// BinaryExpr is a tertiary-tier binary infix operator, built by
// precedence climbing over the documented precedence/associativity
// table (spec §4.3).
type BinaryExpr struct {
	Left, Right Expression
	Operator    lexer.Kind
	SourceSpan  source.Span
}

func (b *BinaryExpr) Span() source.Span { return b.SourceSpan }
func (b *BinaryExpr) exprNode()         {}

// AssignExpr is the right-associative assignment operator; Target must
// be a place expression (checked during analysis, spec §4.4).
type AssignExpr struct {
	Target, Value Expression
	SourceSpan    source.Span
}

func (a *AssignExpr) Span() source.Span { return a.SourceSpan }
func (a *AssignExpr) exprNode()         {}

// ErrorExpr is a placeholder synthesized by error recovery in expression
// position; the analyzer types it as the absorbing error type and skips
// further semantic checks on it (spec §4.6).
type ErrorExpr struct {
	SourceSpan source.Span
}

func (e *ErrorExpr) Span() source.Span { return e.SourceSpan }
func (e *ErrorExpr) exprNode()         {}
