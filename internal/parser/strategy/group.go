package strategy

import "github.com/colang-project/colang/internal/diag"

// Role classifies a GroupElement's contribution to the overall group
// outcome:
//
//   - Defining: absence means the whole group NoMatches. Used for the
//     anchor tokens that decide what production we're even in (e.g. the
//     'struct' keyword for a TypeDefinition).
//   - Required: absence after commitment emits a "missing X" issue and
//     the group becomes Malformed, unless the element's Try itself
//     recovers (e.g. EnclosedSequence synthesizing a placeholder).
//   - Optional: absence is silent.
type Role int

const (
	Defining Role = iota
	Required
	Optional
)

// GroupElement is one entry in a Group: an attempt to consume some
// fragment of input, tagged with how its absence should be handled.
//
// Try returns matched=true and an advanced cursor if the element was
// present (even if it reports its own recovery issues, e.g. a
// self-synthesizing EnclosedSequence); matched=false with the cursor
// unchanged otherwise.
type GroupElement struct {
	Role           Role
	StopIfAbsent   bool // when absent, skip remaining elements silently
	Try            func(Cursor) (matched bool, next Cursor, issues []diag.Issue)
	MissingCode    diag.Code
	MissingMessage string
}

// GroupOutcome is the combined result of running every GroupElement in
// order.
type GroupOutcome struct {
	Kind   Kind
	Issues []diag.Issue
	Cursor Cursor
}

// RunGroup consumes a fixed sequence of elements against the cursor,
// applying each element's Role. In the concrete grammar it drives
// TypeDefinition; function definitions and parameter lists are parsed by
// hand-written code instead. The caller supplies each element's Try
// closure, typically one that also stashes its parsed value into a local
// variable the caller reads after RunGroup returns.
func RunGroup(start Cursor, elements []GroupElement) GroupOutcome {
	cursor := start
	var issues []diag.Issue
	malformed := false

	for _, el := range elements {
		matched, next, elIssues := el.Try(cursor)
		if matched {
			cursor = next
			issues = append(issues, elIssues...)
			continue
		}

		switch el.Role {
		case Defining:
			return GroupOutcome{Kind: NoMatch, Cursor: start}
		case Optional:
			// silent
		case Required:
			malformed = true
			missingSpan := cursor.Peek().Span.Before()
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: el.MissingCode, Span: missingSpan, Message: el.MissingMessage})
		}

		if el.StopIfAbsent {
			break
		}
	}

	if malformed {
		return GroupOutcome{Kind: Malformed, Issues: issues, Cursor: cursor}
	}
	return GroupOutcome{Kind: Success, Issues: issues, Cursor: cursor}
}
