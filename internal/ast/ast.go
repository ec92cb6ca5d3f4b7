// Package ast defines the raw (untyped) syntax tree produced by the
// parser: every node carries its span and nothing else, since types and
// bindings live only in the resolved tree built by internal/sema/resolver.
package ast

import "github.com/colang-project/colang/internal/source"

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Specifiers is the parsed set of specifier keywords (e.g. "native")
// attached to a declaration.
type Specifiers map[string]struct{}

func (s Specifiers) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// TranslationUnit is the top-level grammar category: an ordered sequence
// of top-level symbol definitions.
type TranslationUnit struct {
	Definitions []Definition
	SourceSpan  source.Span
}

func (t *TranslationUnit) Span() source.Span { return t.SourceSpan }

// Definition is implemented by every top-level symbol definition:
// TypeDefinition, FunctionDefinition, VariableDefinition.
type Definition interface {
	Node
	definitionNode()
}

// TypeExpr is a raw, unresolved reference to a type by name (with
// optional array/pointer-ish decoration if the grammar ever grows one;
// spec §3 only requires identity-by-name at this layer).
type TypeExpr struct {
	Name       string
	SourceSpan source.Span
}

func (t *TypeExpr) Span() source.Span { return t.SourceSpan }

// TypeDefinition: specifiers, struct-keyword, name, optional body.
type TypeDefinition struct {
	Specifiers Specifiers
	Name       string
	NameSpan   source.Span
	Body       *TypeBody // nil if the definition is just a forward mention
	SourceSpan source.Span
}

func (t *TypeDefinition) Span() source.Span { return t.SourceSpan }
func (t *TypeDefinition) definitionNode()   {}

// TypeBody: brace-delimited sequence of method definitions. Field
// declarations are recorded too, but carry no semantic weight: CO
// structs expose behavior through methods only.
type TypeBody struct {
	Methods    []*MethodDefinition
	Fields     []*VariableDefinition
	SourceSpan source.Span
}

func (t *TypeBody) Span() source.Span { return t.SourceSpan }

// MethodDefinition is a FunctionDefinition bound inside a TypeBody. It
// is syntactically identical to a free function; the analyzer is what
// decides it denotes a Method rather than a Function (spec §3).
type MethodDefinition struct {
	Specifiers Specifiers
	ReturnType *TypeExpr
	Name       string
	NameSpan   source.Span
	Parameters *ParameterList
	Body       *CodeBlock // nil for a native method header
	SourceSpan source.Span
}

func (m *MethodDefinition) Span() source.Span { return m.SourceSpan }

// FunctionDefinition: specifiers, return-type expression, name,
// parameter list, optional code block (nil body means "native").
type FunctionDefinition struct {
	Specifiers Specifiers
	ReturnType *TypeExpr
	Name       string
	NameSpan   source.Span
	Parameters *ParameterList
	Body       *CodeBlock
	SourceSpan source.Span
}

func (f *FunctionDefinition) Span() source.Span { return f.SourceSpan }
func (f *FunctionDefinition) definitionNode()   {}

// Parameter is one (name, type) entry in a ParameterList.
type Parameter struct {
	Name       string
	Type       *TypeExpr
	SourceSpan source.Span
}

func (p *Parameter) Span() source.Span { return p.SourceSpan }

// ParameterList is the parenthesized, comma-separated parameter list of
// a function or method definition.
type ParameterList struct {
	Parameters []*Parameter
	SourceSpan source.Span
}

func (p *ParameterList) Span() source.Span { return p.SourceSpan }

// VariableDefinition: a top-level or local variable declaration,
// optionally initialized.
type VariableDefinition struct {
	Specifiers Specifiers
	Type       *TypeExpr // never nil; a placeholder with an empty Name when the type is missing
	Name       string
	NameSpan   source.Span
	Init       Expression // nil if uninitialized
	SourceSpan source.Span
}

func (v *VariableDefinition) Span() source.Span { return v.SourceSpan }
func (v *VariableDefinition) definitionNode()   {}
func (v *VariableDefinition) stmtNode()         {}

// CodeBlock is a brace-delimited sequence of statements.
type CodeBlock struct {
	Statements []Statement
	SourceSpan source.Span
	// ClosingBrace is the (possibly synthesized) span of the block's
	// closing '}', used by the return-flow checker to anchor a missing
	// MissingReturnStatement diagnostic immediately before it.
	ClosingBrace source.Span
}

func (c *CodeBlock) Span() source.Span { return c.SourceSpan }
func (c *CodeBlock) stmtNode()         {}
