package strategy

import "github.com/colang-project/colang/internal/diag"

// Kind distinguishes the three outcomes a Strategy can report. The
// distinction between NoMatch and Malformed is the pivot of
// error recovery: NoMatch lets the caller try an alternative production;
// Malformed lets the caller continue the OUTER production (e.g. the
// enclosing block's statement sequence) while still reporting
// diagnostics for the inner one.
type Kind int

const (
	// NoMatch: the strategy did not commit. Cursor is unchanged, no
	// issues are reported, and the caller is free to try another
	// alternative.
	NoMatch Kind = iota
	// Malformed: the strategy's anchor tokens matched (it committed to
	// this production) but the node could not be completed. The cursor
	// has advanced past the attempted region.
	Malformed
	// Success: a node was produced, possibly with issues recovered from
	// along the way (e.g. a missing optional element). Cursor advanced.
	Success
)

// Outcome is the three-way result of running a Strategy[T].
type Outcome[T any] struct {
	Kind   Kind
	Node   T
	Issues []diag.Issue
	Cursor Cursor
}

// Succeed builds a Success outcome.
func Succeed[T any](node T, issues []diag.Issue, cursor Cursor) Outcome[T] {
	return Outcome[T]{Kind: Success, Node: node, Issues: issues, Cursor: cursor}
}

// Fail builds a Malformed outcome: the production committed but could
// not complete. cursor must already reflect the advance past the
// attempted region.
func Fail[T any](node T, issues []diag.Issue, cursor Cursor) Outcome[T] {
	return Outcome[T]{Kind: Malformed, Node: node, Issues: issues, Cursor: cursor}
}

// Miss builds a NoMatch outcome at the given (unmoved) cursor.
func Miss[T any](cursor Cursor) Outcome[T] {
	var zero T
	return Outcome[T]{Kind: NoMatch, Node: zero, Cursor: cursor}
}

// Strategy is a parsing operation with a three-way outcome over an
// immutable token cursor.
type Strategy[T any] func(Cursor) Outcome[T]

// Union runs each strategy in order and returns the first non-NoMatch
// result. Ordering resolves grammar ambiguities deterministically.
func Union[T any](strategies ...Strategy[T]) Strategy[T] {
	return func(c Cursor) Outcome[T] {
		for _, s := range strategies {
			if out := s(c); out.Kind != NoMatch {
				return out
			}
		}
		return Miss[T](c)
	}
}

// Map transforms a successful or malformed outcome's node, leaving
// NoMatch untouched and preserving issues/cursor.
func Map[T, U any](s Strategy[T], f func(T) U) Strategy[U] {
	return func(c Cursor) Outcome[U] {
		out := s(c)
		if out.Kind == NoMatch {
			return Miss[U](out.Cursor)
		}
		return Outcome[U]{Kind: out.Kind, Node: f(out.Node), Issues: out.Issues, Cursor: out.Cursor}
	}
}
