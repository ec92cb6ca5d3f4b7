package grammar

import (
	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/strategy"
	"github.com/colang-project/colang/internal/source"
)

// Precedence table, lowest to highest; all binary levels are
// left-associative except assignment, which is right-associative:
//
//	1  =                (assignment, right-assoc)
//	2  ||
//	3  &&
//	4  == !=
//	5  < > <= >=
//	6  + -
//	7  * / %
//	8  ! -              (unary prefix)
//	9  postfix chain     (call, subscript, field access, ++/--)
//	10 literal / identifier / ( expr )   (primary)
//
// Each level is a dedicated recursive function (precedence climbing by
// ladder, equivalent to a per-level shunting-yard reduction).

func parseExpression(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseAssignment(c)
}

func parseAssignment(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	left, cursor, issues := parseLogicalOr(c)
	if left == nil || !cursor.Is(lexer.ASSIGN) {
		return left, cursor, issues
	}
	cursor = cursor.Advance()
	right, cursor2, rightIssues := parseAssignment(cursor) // right-associative
	issues = append(issues, rightIssues...)
	if right == nil {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor2.Peek().Span, Message: msgExpectedExpression})
		right = &ast.ErrorExpr{SourceSpan: cursor2.Peek().Span.Before()}
	}
	span := left.Span().Plus(right.Span())
	return &ast.AssignExpr{Target: left, Value: right, SourceSpan: span}, cursor2, issues
}

func parseLogicalOr(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseLogicalAnd, lexer.OR_OR)
}

func parseLogicalAnd(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseEquality, lexer.AND_AND)
}

func parseEquality(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseRelational, lexer.EQ, lexer.NEQ)
}

func parseRelational(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseAdditive, lexer.LT, lexer.GT, lexer.LE, lexer.GE)
}

func parseAdditive(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseMultiplicative, lexer.PLUS, lexer.MINUS)
}

func parseMultiplicative(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	return parseBinaryLevel(c, parseUnary, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

// parseBinaryLevel folds left-associatively: ((a op b) op c) op d ...
func parseBinaryLevel(c strategy.Cursor, next func(strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue), ops ...lexer.Kind) (ast.Expression, strategy.Cursor, []diag.Issue) {
	left, cursor, issues := next(c)
	for left != nil && cursor.Is(ops...) {
		op := cursor.Peek().Kind
		cursor = cursor.Advance()
		right, cursor2, rightIssues := next(cursor)
		issues = append(issues, rightIssues...)
		if right == nil {
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor2.Peek().Span, Message: msgExpectedExpression})
			return left, cursor2, issues
		}
		span := left.Span().Plus(right.Span())
		left = &ast.BinaryExpr{Left: left, Right: right, Operator: op, SourceSpan: span}
		cursor = cursor2
	}
	return left, cursor, issues
}

func parseUnary(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	if c.Is(lexer.BANG, lexer.MINUS) {
		op := c.Peek()
		cursor := c.Advance()
		operand, cursor2, issues := parseUnary(cursor)
		if operand == nil {
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor2.Peek().Span, Message: msgExpectedExpression})
			return &ast.ErrorExpr{SourceSpan: op.Span}, cursor2, issues
		}
		return &ast.UnaryExpr{Operator: op.Kind, Operand: operand, SourceSpan: op.Span.Plus(operand.Span())}, cursor2, issues
	}
	return parseSecondary(c)
}

// parseSecondary is a primary followed by a sequence of postfix
// operators, each contributing a function Expression -> Expression that
// wraps the accumulated expression. Operators apply left to right: the
// list [op1, op2, op3] folds as op3(op2(op1(primary))).
func parseSecondary(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	expr, cursor, issues := parsePrimary(c)
	if expr == nil {
		return nil, cursor, issues
	}

	for {
		switch cursor.Peek().Kind {
		case lexer.LPAREN:
			args, next, callIssues := parseArgumentList(cursor)
			issues = append(issues, callIssues...)
			expr = &ast.CallExpr{Callee: expr, Arguments: args.items, SourceSpan: expr.Span().Plus(args.close)}
			cursor = next
		case lexer.LBRACKET:
			open := cursor.Peek()
			cursor = cursor.Advance()
			index, next, idxIssues := parseExpression(cursor)
			issues = append(issues, idxIssues...)
			cursor = next
			if index == nil {
				issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor.Peek().Span, Message: msgExpectedExpression})
				index = &ast.ErrorExpr{SourceSpan: open.Span.After()}
			}
			closeSpan := open.Span
			if cursor.Peek().Kind == lexer.RBRACKET {
				closeSpan = cursor.Peek().Span
				cursor = cursor.Advance()
			} else {
				issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: "expected ']'"})
			}
			expr = &ast.SubscriptExpr{Receiver: expr, Index: index, SourceSpan: expr.Span().Plus(closeSpan)}
		case lexer.DOT:
			cursor = cursor.Advance()
			if cursor.Peek().Kind != lexer.IDENT {
				issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedIdentifier})
				return expr, cursor, issues
			}
			field := cursor.Peek()
			cursor = cursor.Advance()
			expr = &ast.FieldAccessExpr{Receiver: expr, Field: field.Text, FieldSpan: field.Span, SourceSpan: expr.Span().Plus(field.Span)}
		case lexer.PLUS_PLUS, lexer.MINUS_MINUS:
			op := cursor.Peek()
			cursor = cursor.Advance()
			expr = &ast.PostfixExpr{Operand: expr, Operator: op.Kind, SourceSpan: expr.Span().Plus(op.Span)}
		default:
			return expr, cursor, issues
		}
	}
}

type argList struct {
	items []ast.Expression
	close source.Span
}

func parseArgumentList(c strategy.Cursor) (argList, strategy.Cursor, []diag.Issue) {
	open := c.Peek()
	cursor := c.Advance()
	var issues []diag.Issue
	var items []ast.Expression

	if cursor.Peek().Kind != lexer.RPAREN {
		for {
			arg, next, argIssues := parseExpression(cursor)
			issues = append(issues, argIssues...)
			cursor = next
			if arg != nil {
				items = append(items, arg)
			}
			if cursor.Peek().Kind == lexer.COMMA {
				cursor = cursor.Advance()
				continue
			}
			break
		}
	}

	closeSpan := open.Span
	if cursor.Peek().Kind == lexer.RPAREN {
		closeSpan = cursor.Peek().Span
		cursor = cursor.Advance()
	} else {
		closeSpan = closeAnchor(items, open).After()
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: closeSpan, Message: msgExpectedCloseParen})
	}
	return argList{items: items, close: closeSpan}, cursor, issues
}

func closeAnchor(items []ast.Expression, open lexer.Token) source.Span {
	if len(items) == 0 {
		return open.Span
	}
	return items[len(items)-1].Span()
}

// parsePrimary: literal, identifier reference, or parenthesized
// expression.
func parsePrimary(c strategy.Cursor) (ast.Expression, strategy.Cursor, []diag.Issue) {
	tok := c.Peek()
	switch tok.Kind {
	case lexer.INT:
		return &ast.IntLiteral{Value: tok.IntValue, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.FLOAT:
		return &ast.FloatLiteral{Value: tok.FloatValue, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.STRING:
		return &ast.StringLiteral{Value: tok.StringValue, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.KW_TRUE:
		return &ast.BoolLiteral{Value: true, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.KW_FALSE:
		return &ast.BoolLiteral{Value: false, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.IDENT:
		return &ast.IdentifierExpr{Name: tok.Text, SourceSpan: tok.Span}, c.Advance(), nil
	case lexer.LPAREN:
		cursor := c.Advance()
		inner, next, issues := parseExpression(cursor)
		cursor = next
		if inner == nil {
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor.Peek().Span, Message: msgExpectedExpression})
			inner = &ast.ErrorExpr{SourceSpan: tok.Span.After()}
		}
		if cursor.Peek().Kind == lexer.RPAREN {
			cursor = cursor.Advance()
		} else {
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedCloseParen})
		}
		return inner, cursor, issues
	default:
		return nil, c, nil
	}
}
