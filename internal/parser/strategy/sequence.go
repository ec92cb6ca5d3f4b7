package strategy

import "github.com/colang-project/colang/internal/diag"

// Sequence repeats an element strategy until it returns NoMatch,
// recovering from Malformed by collecting its issues and continuing.
// The produced outcome is always Success (an empty slice is a perfectly
// well-formed sequence); callers that require at least one element check
// len(Node) themselves.
//
// Invariant relied on here: a Malformed element outcome always advances
// the cursor past its attempted region (per the Strategy contract), so
// this loop is guaranteed to terminate.
func Sequence[T any](element Strategy[T]) Strategy[[]T] {
	return func(c Cursor) Outcome[[]T] {
		var items []T
		var issues []diag.Issue
		cursor := c
		for {
			out := element(cursor)
			switch out.Kind {
			case NoMatch:
				return Succeed(items, issues, cursor)
			case Malformed:
				issues = append(issues, out.Issues...)
				cursor = out.Cursor
			case Success:
				items = append(items, out.Node)
				issues = append(issues, out.Issues...)
				cursor = out.Cursor
			}
		}
	}
}
