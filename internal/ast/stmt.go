package ast

import "github.com/colang-project/colang/internal/source"

// Statement is implemented by every statement node: IfElseStatement,
// WhileStatement, ReturnStatement, CodeBlock, VariableDefinition, and
// expression-statement (spec §3).
type Statement interface {
	Node
	stmtNode()
}

// IfStatement: condition, then-block, optional else (which may itself be
// another IfStatement for "else if", or a CodeBlock for a plain else).
type IfStatement struct {
	Condition  Expression
	Then       *CodeBlock
	Else       Statement // *IfStatement, *CodeBlock, or nil
	SourceSpan source.Span
}

func (i *IfStatement) Span() source.Span { return i.SourceSpan }
func (i *IfStatement) stmtNode()         {}

// WhileStatement: condition, body.
type WhileStatement struct {
	Condition  Expression
	Body       *CodeBlock
	SourceSpan source.Span
}

func (w *WhileStatement) Span() source.Span { return w.SourceSpan }
func (w *WhileStatement) stmtNode()         {}

// ReturnStatement: optional value.
type ReturnStatement struct {
	Value      Expression // nil for a bare "return;"
	SourceSpan source.Span
}

func (r *ReturnStatement) Span() source.Span { return r.SourceSpan }
func (r *ReturnStatement) stmtNode()         {}

// ExpressionStatement wraps an expression used in statement position
// (a call, an assignment, a postfix increment/decrement).
type ExpressionStatement struct {
	Expr       Expression
	SourceSpan source.Span
}

func (e *ExpressionStatement) Span() source.Span { return e.SourceSpan }
func (e *ExpressionStatement) stmtNode()         {}
