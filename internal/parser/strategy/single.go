package strategy

import "github.com/colang-project/colang/internal/lexer"

// Token matches exactly one token of the given kind, producing it or
// NoMatch.
func Token(kind lexer.Kind) Strategy[lexer.Token] {
	return func(c Cursor) Outcome[lexer.Token] {
		if c.Peek().Kind != kind {
			return Miss[lexer.Token](c)
		}
		return Succeed(c.Peek(), nil, c.Advance())
	}
}

// Identifier matches a single identifier token.
func Identifier() Strategy[lexer.Token] {
	return Token(lexer.IDENT)
}

// AnyOf matches a single token whose kind is one of kinds.
func AnyOf(kinds ...lexer.Kind) Strategy[lexer.Token] {
	return func(c Cursor) Outcome[lexer.Token] {
		if !c.Is(kinds...) {
			return Miss[lexer.Token](c)
		}
		return Succeed(c.Peek(), nil, c.Advance())
	}
}
