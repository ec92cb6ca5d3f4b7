// Package diag is the structured diagnostic model shared by every compiler
// phase: lexer, parser, analyzer, and the return-flow checker each emit
// Issues into a Bag; nothing renders until the driver asks for it.
package diag

import (
	"sort"

	"github.com/colang-project/colang/internal/source"
)

// Severity distinguishes warnings (never block codegen) from errors
// (always do).
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Code identifies a diagnostic kind independent of its rendered message,
// so tests can assert on structure instead of matching strings.
type Code string

const (
	// Lexical
	CodeBadCharacter        Code = "bad-character"
	CodeUnterminatedLiteral Code = "unterminated-literal"

	// Syntactic
	CodeMissingToken    Code = "missing-token"
	CodeUnexpectedToken Code = "unexpected-token"
	CodeMalformed       Code = "malformed-construct"
	CodeDuplicateSpecifier Code = "duplicate-specifier"
	CodeIllegalSpecifier   Code = "illegal-specifier"

	// Semantic — declaration
	CodeDuplicateSymbol Code = "duplicate-symbol"
	CodeUnknownType     Code = "unknown-type"

	// Semantic — expression
	CodeUnknownIdentifier Code = "unknown-identifier"
	CodeNoMatchingOverload Code = "no-matching-overload"
	CodeAmbiguousCall      Code = "ambiguous-call"
	CodeTypeMismatch       Code = "type-mismatch"
	CodeNotAssignable      Code = "not-assignable"

	// Control flow
	CodeMissingReturnStatement Code = "missing-return-statement"
	CodeUnreachableCode        Code = "unreachable-code"
	CodeReturnWithoutValue     Code = "return-without-value"
	CodeReturnValueInVoid      Code = "return-value-in-void"

	// Warnings
	CodeUnusedSymbol Code = "unused-symbol"

	// Internal
	CodeInternal Code = "internal"
)

// Note is a secondary annotation attached to an Issue: an optional span
// plus an explanatory message (e.g. pointing at the other declaration in
// a duplicate-symbol error).
type Note struct {
	Span    source.Span // zero Span means "no location, just the message"
	Message string
}

// Issue is one immutable diagnostic. Once appended to a Bag it is never
// mutated — AddHint-style teacher conveniences are modeled as
// constructor options instead of in-place mutation so Issues stay safe to
// share between the reports and the LSP-facing (out of CORE scope)
// consumer.
type Issue struct {
	Severity Severity
	Code     Code
	Span     source.Span
	Message  string
	Notes    []Note
}

// Bag accumulates Issues across every phase. A Bag is never thrown; each
// subsystem takes one by value or pointer and appends to it, mirroring
// the teacher's `report.Reports` accumulator.
type Bag struct {
	issues []Issue
}

func (b *Bag) Add(issue Issue) {
	b.issues = append(b.issues, issue)
}

// AddAll appends every issue in issues onto b, in order — the slice
// form of Add, for collectors (e.g. the parser) that return []Issue
// directly rather than a *Bag.
func (b *Bag) AddAll(issues []Issue) {
	b.issues = append(b.issues, issues...)
}

func (b *Bag) Error(code Code, span source.Span, message string, notes ...Note) {
	b.Add(Issue{Severity: Error, Code: code, Span: span, Message: message, Notes: notes})
}

func (b *Bag) Warning(code Code, span source.Span, message string, notes ...Note) {
	b.Add(Issue{Severity: Warning, Code: code, Span: span, Message: message, Notes: notes})
}

// Extend appends every issue from other onto b, in order.
func (b *Bag) Extend(other *Bag) {
	if other == nil {
		return
	}
	b.issues = append(b.issues, other.issues...)
}

func (b *Bag) Issues() []Issue {
	return b.issues
}

func (b *Bag) HasErrors() bool {
	for _, i := range b.issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.issues) }

// Sort orders issues per spec §6: (startLine asc, startChar asc, endLine
// desc, endChar desc), so enclosing spans precede the spans they
// enclose on ties. The sort is stable, so re-sorting an already-sorted
// Bag is a no-op (idempotent, per spec §8 property 3).
func (b *Bag) Sort() {
	sort.SliceStable(b.issues, func(i, j int) bool {
		return b.issues[i].Span.Less(b.issues[j].Span)
	})
}
