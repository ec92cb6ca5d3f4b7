// Package stype is the resolved type system: identity-by-name types
// carrying methods and conversion relations, with a partial subtyping
// order used by assignment checking and overload resolution.
package stype

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes the shapes a Type can take.
type Kind int

const (
	KindPrimitive Kind = iota
	KindStruct
	KindFunction
	KindError // the absorbing type assigned to error-recovered expressions
)

// Param is one (name, type) entry of a FunctionType's parameter list.
type Param struct {
	Name string
	Type *Type
}

// Type is identified by its qualified name; two *Type values denote the
// same type iff their Name is equal. Struct types additionally carry a
// method table; function types carry their signature.
type Type struct {
	Kind   Kind
	Name   string
	Native bool // true for prelude-provided types

	methods map[string]*Overload // KindStruct only: method name -> overload set

	Parameters []Param // KindFunction only
	ReturnType *Type    // KindFunction only

	// conversions holds the names of types this type implicitly converts
	// to. Conversions are type-directed and must be explicitly registered
	// on types; registered only by the prelude.
	conversions map[string]bool
}

func (t *Type) String() string {
	switch t.Kind {
	case KindFunction:
		params := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), t.ReturnType)
	case KindStruct:
		return t.Name
	default:
		return t.Name
	}
}

// NewPrimitive creates a named primitive type (int, float, bool, string,
// void, ...).
func NewPrimitive(name string, native bool) *Type {
	return &Type{Kind: KindPrimitive, Name: name, Native: native, conversions: map[string]bool{}}
}

// NewStruct creates an empty named struct type ready for AddMethod calls
// during symbol registration. CO structs carry no data fields, only a
// method sequence; "a.b" syntax therefore only resolves when immediately
// called as "a.b(...)" (method dispatch).
func NewStruct(name string, native bool) *Type {
	return &Type{
		Kind: KindStruct, Name: name, Native: native,
		methods:     map[string]*Overload{},
		conversions: map[string]bool{},
	}
}

// NewFunction creates a function type. Function types are unnamed (empty
// Name): they're never looked up by name and never carry conversions.
// SubtypeOf compares only Name and Kind, so it does not tell two function
// types apart by their parameters or return type.
func NewFunction(params []Param, returnType *Type) *Type {
	return &Type{Kind: KindFunction, Name: "", Parameters: params, ReturnType: returnType}
}

// Overload is one named, bound method's overload set.
type Overload struct {
	Name    string
	Entries []*Type // each entry is a KindFunction type
}

// AddMethod registers a method signature under name, growing an overload
// set. Method headers are collected without bodies during registration.
func (t *Type) AddMethod(name string, signature *Type) *Overload {
	ov, ok := t.methods[name]
	if !ok {
		ov = &Overload{Name: name}
		t.methods[name] = ov
	}
	ov.Entries = append(ov.Entries, signature)
	return ov
}

// Method looks up a method's overload set by name. Methods are not
// inherited.
func (t *Type) Method(name string) (*Overload, bool) {
	ov, ok := t.methods[name]
	return ov, ok
}

// MethodNames returns every method name defined directly on t, sorted.
func (t *Type) MethodNames() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterConversion declares that a value of type t implicitly converts
// to target. Only the prelude calls this.
func (t *Type) RegisterConversion(target *Type) {
	t.conversions[target.Name] = true
}

// ConvertsTo reports whether t has a registered implicit conversion to
// target.
func (t *Type) ConvertsTo(target *Type) bool {
	return t.conversions[target.Name]
}

// SubtypeOf implements the `<:` partial order: every type is a subtype
// of itself and of the error type (so a previously diagnosed expression
// never cascades further errors); otherwise t <: target iff t has a
// registered conversion to target.
func (t *Type) SubtypeOf(target *Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t.Kind == KindError || target.Kind == KindError {
		return true
	}
	if t.Name == target.Name && t.Kind == target.Kind {
		return true
	}
	return t.ConvertsTo(target)
}

// LeastUpperBound returns the smallest common supertype of a and b under
// SubtypeOf, or nil if none exists. Candidates are a, b, and anything
// either directly converts to; the result must be a common upper bound
// reachable from both with no strictly smaller candidate also
// qualifying.
func LeastUpperBound(a, b *Type, universe *Universe) *Type {
	if a == nil || b == nil {
		return nil
	}
	if a.SubtypeOf(b) {
		return b
	}
	if b.SubtypeOf(a) {
		return a
	}

	var best *Type
	for _, candidate := range universe.All() {
		if !a.SubtypeOf(candidate) || !b.SubtypeOf(candidate) {
			continue
		}
		if best == nil || candidate.SubtypeOf(best) {
			best = candidate
		}
	}
	return best
}
