// Package strategy is the reusable recursive-descent parser framework:
// an immutable token cursor and composable strategies returning a
// three-way Success/Malformed/NoMatch outcome. The concrete CO grammar
// (internal/parser/grammar) is built entirely out of these combinators.
package strategy

import "github.com/colang-project/colang/internal/lexer"

// Cursor is an immutable position in a token stream. Advancing never
// mutates the receiver; it returns a new Cursor, so a strategy can try an
// alternative from the same starting point after a failed attempt.
type Cursor struct {
	tokens []lexer.Token
	index  int
}

// NewCursor starts a Cursor at the beginning of tokens, which must be
// EOF-terminated (as lexer.Tokenize always produces).
func NewCursor(tokens []lexer.Token) Cursor {
	return Cursor{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (c Cursor) Peek() lexer.Token {
	return c.At(0)
}

// At returns the token `offset` positions ahead of the cursor (0 = Peek),
// clamped to the final (EOF) token.
func (c Cursor) At(offset int) lexer.Token {
	i := c.index + offset
	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[i]
}

// AtEnd reports whether the cursor sits on the end-of-file token.
func (c Cursor) AtEnd() bool {
	return c.Peek().Kind == lexer.EOF
}

// Advance returns a Cursor moved one token forward (a no-op at EOF).
func (c Cursor) Advance() Cursor {
	if c.AtEnd() {
		return c
	}
	return Cursor{tokens: c.tokens, index: c.index + 1}
}

// Position returns the cursor's token index, comparable across Cursors
// over the same token stream to detect whether a parse attempt advanced
// at all (Cursor itself is not comparable with ==, since it embeds a
// slice).
func (c Cursor) Position() int {
	return c.index
}

// Is reports whether the current token is one of the given kinds.
func (c Cursor) Is(kinds ...lexer.Kind) bool {
	k := c.Peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
