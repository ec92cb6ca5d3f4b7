package strategy

import (
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/source"
)

// Spanned is satisfied by every raw AST node; EnclosedSequence needs it
// to anchor a synthesized closing placeholder at the span immediately
// following the last parsed element.
type Spanned interface {
	Span() source.Span
}

// EnclosedResult is the product of EnclosedSequence: the parsed items
// plus the spans of the opening and (possibly synthesized) closing
// delimiter.
type EnclosedResult[T Spanned] struct {
	Items []T
	Open  source.Span
	Close source.Span
	// ClosingSynthesized is true when the closing token was missing and
	// a zero-width placeholder span was substituted.
	ClosingSynthesized bool
}

// EnclosedSequence matches an opening token, parses a sequence of
// elements, then requires a closing token. If the closing token is
// missing, it synthesizes a zero-width placeholder at the span
// immediately following the last element (or the opener, if the sequence
// was empty) and emits closeMissingMessage under closeMissingCode. This
// guarantees the production yields a well-formed node even on truncated
// input.
func EnclosedSequence[T Spanned](openKind lexer.Kind, element Strategy[T], closeKind lexer.Kind, closeMissingCode diag.Code, closeMissingMessage string) Strategy[EnclosedResult[T]] {
	return func(c Cursor) Outcome[EnclosedResult[T]] {
		if c.Peek().Kind != openKind {
			return Miss[EnclosedResult[T]](c)
		}
		openTok := c.Peek()
		cursor := c.Advance()

		seq := Sequence(element)(cursor)
		cursor = seq.Cursor
		issues := append([]diag.Issue{}, seq.Issues...)

		var closeSpan source.Span
		synthesized := false
		if cursor.Peek().Kind == closeKind {
			closeSpan = cursor.Peek().Span
			cursor = cursor.Advance()
		} else {
			anchor := openTok.Span
			if n := len(seq.Node); n > 0 {
				anchor = seq.Node[n-1].Span()
			}
			closeSpan = anchor.After()
			synthesized = true
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: closeMissingCode, Span: closeSpan, Message: closeMissingMessage})
		}

		result := EnclosedResult[T]{Items: seq.Node, Open: openTok.Span, Close: closeSpan, ClosingSynthesized: synthesized}
		return Succeed(result, issues, cursor)
	}
}
