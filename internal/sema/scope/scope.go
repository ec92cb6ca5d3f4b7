// Package scope implements the resolved program's name-binding
// structure: a parent-chained Scope mapping identifiers to Symbols
// (types, variables, function overload sets), rooted at the
// translation-unit namespace.
package scope

import (
	"github.com/colang-project/colang/internal/sema/stype"
	"github.com/colang-project/colang/internal/source"
)

// Kind distinguishes what a Symbol denotes.
type Kind int

const (
	KindType Kind = iota
	KindVariable
	KindFunction
)

// Symbol is one binding in a Scope.
type Symbol struct {
	Kind Kind
	Name string
	Span source.Span

	// Type, for KindType and KindVariable.
	Type *stype.Type

	// Functions, for KindFunction: the overload set sharing this name.
	// Every entry's Type.Kind is stype.KindFunction.
	Functions []*Function
}

// Function is one entry of a function symbol's overload set: its
// signature and declaration metadata. The resolved body (produced in
// Phase 2) is held separately by the resolver package on its own
// ResolvedFunction, so this package does not depend on the
// typed-statement tree.
type Function struct {
	Name       string
	Type       *stype.Type // KindFunction
	ParamNames []string
	Native     bool
	Span       source.Span
}

// Scope is a named container of Symbols with a parent chain; the root
// Scope has a nil Parent and is the translation unit's namespace.
type Scope struct {
	Parent  *Scope
	symbols map[string]*Symbol
}

// New creates a Scope chained to parent (nil for the root).
func New(parent *Scope) *Scope {
	return &Scope{Parent: parent, symbols: map[string]*Symbol{}}
}

// Declare adds sym under its own name. Returns the existing symbol and
// false if the name is already bound in THIS scope (shadowing an outer
// scope's binding is fine and not a conflict; duplicate-symbol checking
// is strictly per-scope).
func (s *Scope) Declare(sym *Symbol) (*Symbol, bool) {
	if existing, exists := s.symbols[sym.Name]; exists {
		return existing, false
	}
	s.symbols[sym.Name] = sym
	return sym, true
}

// DeclareOrExtendFunction either creates a new KindFunction symbol for
// name or appends fn to an existing one's overload set: function names
// may be declared more than once in the same scope, since each
// declaration grows the overload set rather than conflicting. If name is
// already bound in this scope to a non-function symbol, that binding is
// left untouched and DeclareOrExtendFunction returns the existing symbol
// and false, mirroring Declare's duplicate-symbol signal.
func (s *Scope) DeclareOrExtendFunction(name string, fn *Function) (*Symbol, bool) {
	if existing, ok := s.symbols[name]; ok {
		if existing.Kind != KindFunction {
			return existing, false
		}
		existing.Functions = append(existing.Functions, fn)
		return existing, true
	}
	sym := &Symbol{Kind: KindFunction, Name: name, Functions: []*Function{fn}, Span: fn.Span}
	s.symbols[name] = sym
	return sym, true
}

// Lookup walks the scope chain leaf-to-root; the first matching binding
// wins.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal looks up name in this scope only, not its ancestors; used
// for duplicate-declaration checks.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}
