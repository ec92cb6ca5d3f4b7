package grammar

import (
	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/strategy"
)

// parseCodeBlock parses a brace-delimited statement sequence. A missing
// closing brace synthesizes a zero-width placeholder immediately after
// the last statement, so the enclosing production always gets a
// well-formed CodeBlock.
func parseCodeBlock(c strategy.Cursor) (*ast.CodeBlock, strategy.Cursor, []diag.Issue) {
	out := strategy.EnclosedSequence(lexer.LBRACE, statementStrategy(), lexer.RBRACE, diag.CodeMissingToken, msgExpectedCloseBrace)(c)
	if out.Kind == strategy.NoMatch {
		missing := c.Peek().Span.Before()
		issue := diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: missing, Message: msgExpectedOpenBrace}
		return &ast.CodeBlock{SourceSpan: missing, ClosingBrace: missing}, c, []diag.Issue{issue}
	}
	block := &ast.CodeBlock{
		Statements:   out.Node.Items,
		SourceSpan:   out.Node.Open.Plus(out.Node.Close),
		ClosingBrace: out.Node.Close,
	}
	return block, out.Cursor, out.Issues
}

// statementStrategy dispatches a single statement by its leading token.
// It reports NoMatch only at a block boundary (closing brace or EOF),
// which is what lets Sequence/EnclosedSequence know the block is done;
// every other unrecognized token is consumed as a Malformed
// expression-statement so the surrounding block keeps making progress.
func statementStrategy() strategy.Strategy[ast.Statement] {
	return func(c strategy.Cursor) strategy.Outcome[ast.Statement] {
		if c.Peek().Kind == lexer.RBRACE || c.AtEnd() {
			return strategy.Miss[ast.Statement](c)
		}

		switch c.Peek().Kind {
		case lexer.LBRACE:
			block, cursor, issues := parseCodeBlock(c)
			return wrapStatement(block, cursor, issues)
		case lexer.KW_IF:
			stmt, cursor, issues := parseIfStatement(c)
			return wrapStatement(stmt, cursor, issues)
		case lexer.KW_WHILE:
			stmt, cursor, issues := parseWhileStatement(c)
			return wrapStatement(stmt, cursor, issues)
		case lexer.KW_RETURN:
			stmt, cursor, issues := parseReturnStatement(c)
			return wrapStatement(stmt, cursor, issues)
		default:
			if isVariableDefinitionStart(c) {
				v, cursor, issues := parseVariableDefinition(c)
				return wrapStatement(v, cursor, issues)
			}
			stmt, cursor, issues := parseExpressionStatement(c)
			return wrapStatement(stmt, cursor, issues)
		}
	}
}

func wrapStatement(stmt ast.Statement, cursor strategy.Cursor, issues []diag.Issue) strategy.Outcome[ast.Statement] {
	if len(issues) > 0 {
		return strategy.Fail[ast.Statement](stmt, issues, cursor)
	}
	return strategy.Succeed[ast.Statement](stmt, nil, cursor)
}

// isVariableDefinitionStart applies the VariableDefinition anchor (spec
// §4.3) as pure lookahead: specifiers, then a type, then an identifier
// followed by '=' or ';'.
func isVariableDefinitionStart(c strategy.Cursor) bool {
	cursor := skipSpecifiers(c)
	if cursor.Peek().Kind != lexer.IDENT && cursor.Peek().Kind != lexer.KW_VOID {
		return false
	}
	cursor = cursor.Advance()
	if cursor.Peek().Kind != lexer.IDENT {
		return false
	}
	cursor = cursor.Advance()
	return cursor.Is(lexer.ASSIGN, lexer.SEMI)
}

func parseIfStatement(c strategy.Cursor) (*ast.IfStatement, strategy.Cursor, []diag.Issue) {
	start := c.Peek().Span
	cursor := c.Advance() // 'if'
	var issues []diag.Issue

	if cursor.Peek().Kind == lexer.LPAREN {
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedOpenParen})
	}

	cond, next, condIssues := parseExpression(cursor)
	issues = append(issues, condIssues...)
	cursor = next
	if cond == nil {
		cond = &ast.ErrorExpr{SourceSpan: cursor.Peek().Span.Before()}
	}

	if cursor.Peek().Kind == lexer.RPAREN {
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedCloseParen})
	}

	then, cursor, thenIssues := parseCodeBlock(cursor)
	issues = append(issues, thenIssues...)

	var elseStmt ast.Statement
	end := then.Span()
	if cursor.Peek().Kind == lexer.KW_ELSE {
		cursor = cursor.Advance()
		if cursor.Peek().Kind == lexer.KW_IF {
			var elseIssues []diag.Issue
			var elseIf *ast.IfStatement
			elseIf, cursor, elseIssues = parseIfStatement(cursor)
			issues = append(issues, elseIssues...)
			elseStmt = elseIf
			end = elseIf.Span()
		} else {
			var elseIssues []diag.Issue
			var elseBlock *ast.CodeBlock
			elseBlock, cursor, elseIssues = parseCodeBlock(cursor)
			issues = append(issues, elseIssues...)
			elseStmt = elseBlock
			end = elseBlock.Span()
		}
	}

	return &ast.IfStatement{Condition: cond, Then: then, Else: elseStmt, SourceSpan: start.Plus(end)}, cursor, issues
}

func parseWhileStatement(c strategy.Cursor) (*ast.WhileStatement, strategy.Cursor, []diag.Issue) {
	start := c.Peek().Span
	cursor := c.Advance() // 'while'
	var issues []diag.Issue

	if cursor.Peek().Kind == lexer.LPAREN {
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedOpenParen})
	}

	cond, next, condIssues := parseExpression(cursor)
	issues = append(issues, condIssues...)
	cursor = next
	if cond == nil {
		cond = &ast.ErrorExpr{SourceSpan: cursor.Peek().Span.Before()}
	}

	if cursor.Peek().Kind == lexer.RPAREN {
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedCloseParen})
	}

	body, cursor, bodyIssues := parseCodeBlock(cursor)
	issues = append(issues, bodyIssues...)

	return &ast.WhileStatement{Condition: cond, Body: body, SourceSpan: start.Plus(body.Span())}, cursor, issues
}

func parseReturnStatement(c strategy.Cursor) (*ast.ReturnStatement, strategy.Cursor, []diag.Issue) {
	start := c.Peek().Span
	cursor := c.Advance() // 'return'
	var issues []diag.Issue
	var value ast.Expression

	end := start
	if cursor.Peek().Kind != lexer.SEMI {
		var valueIssues []diag.Issue
		value, cursor, valueIssues = parseExpression(cursor)
		issues = append(issues, valueIssues...)
		if value != nil {
			end = value.Span()
		}
	}

	if cursor.Peek().Kind == lexer.SEMI {
		end = cursor.Peek().Span
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedSemicolon})
	}

	return &ast.ReturnStatement{Value: value, SourceSpan: start.Plus(end)}, cursor, issues
}

func parseExpressionStatement(c strategy.Cursor) (*ast.ExpressionStatement, strategy.Cursor, []diag.Issue) {
	start := c.Peek().Span
	expr, cursor, issues := parseExpression(c)
	if expr == nil {
		// No expression strategy matched: consume the offending token so
		// the enclosing block's statement loop still makes progress.
		bad := cursor.Peek()
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: bad.Span, Message: msgExpectedExpression})
		expr = &ast.ErrorExpr{SourceSpan: bad.Span}
		cursor = cursor.Advance()
	}

	end := expr.Span()
	if cursor.Peek().Kind == lexer.SEMI {
		end = cursor.Peek().Span
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedSemicolon})
	}

	return &ast.ExpressionStatement{Expr: expr, SourceSpan: start.Plus(end)}, cursor, issues
}
