package grammar

import (
	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/strategy"
)

// parseTypeExpr recognizes a type reference: an identifier or the
// built-in 'void' keyword. A type expression here is always its
// simplest legal shape, type identity by name, since the grammar adds no
// generics, pointers, or array sugar. Built from strategy.AnyOf +
// strategy.Map rather than a hand-rolled token check, since a
// single-token match-and-wrap is exactly what those combinators are
// for.
func parseTypeExpr() strategy.Strategy[*ast.TypeExpr] {
	return strategy.Map(strategy.AnyOf(lexer.IDENT, lexer.KW_VOID), func(tok lexer.Token) *ast.TypeExpr {
		return &ast.TypeExpr{Name: tok.Text, SourceSpan: tok.Span}
	})
}

// requireTypeExpr behaves like parseTypeExpr but, on absence, synthesizes
// an error-marked placeholder type rather than letting the caller's
// Group treat the whole production as NoMatch — used where a type is
// Required, not Defining.
func requireTypeExpr(c strategy.Cursor) (ty *ast.TypeExpr, next strategy.Cursor, issues []diag.Issue) {
	out := parseTypeExpr()(c)
	if out.Kind == strategy.Success {
		return out.Node, out.Cursor, nil
	}
	missing := c.Peek().Span.Before()
	issue := diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: missing, Message: msgExpectedType}
	return &ast.TypeExpr{Name: "", SourceSpan: missing}, c, []diag.Issue{issue}
}
