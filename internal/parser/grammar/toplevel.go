package grammar

import (
	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/strategy"
	"github.com/colang-project/colang/internal/source"
)

// ParseTranslationUnit parses an entire token stream into a raw
// TranslationUnit, never aborting: every top-level definition that
// cannot be completed is reported and replaced by its best-effort
// partial node, and a token that starts no known production is skipped
// with a diagnostic so the remainder of the file still gets parsed.
func ParseTranslationUnit(c strategy.Cursor) (*ast.TranslationUnit, []diag.Issue) {
	var defs []ast.Definition
	var issues []diag.Issue
	cursor := c
	start := cursor.Peek().Span

	for !cursor.AtEnd() {
		out := parseGlobalDefinition()(cursor)
		switch out.Kind {
		case strategy.Success, strategy.Malformed:
			defs = append(defs, out.Node)
			issues = append(issues, out.Issues...)
			cursor = out.Cursor
		case strategy.NoMatch:
			tok := cursor.Peek()
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: tok.Span, Message: "expected a type, function, or variable definition"})
			cursor = cursor.Advance()
		}
	}

	span := start
	if len(defs) > 0 {
		span = defs[0].Span().Plus(defs[len(defs)-1].Span())
	}
	return &ast.TranslationUnit{Definitions: defs, SourceSpan: span}, issues
}

// skipSpecifiers returns the cursor positioned just past a run of
// specifier keywords, without otherwise consuming or validating them;
// used for anchor lookahead only.
func skipSpecifiers(c strategy.Cursor) strategy.Cursor {
	cursor := c
	for {
		if _, ok := specifierKeywords[cursor.Peek().Kind]; !ok {
			return cursor
		}
		cursor = cursor.Advance()
	}
}

// classifyGlobalDefinition implements the three defining anchors without
// consuming the real cursor.
func classifyGlobalDefinition(c strategy.Cursor) string {
	cursor := skipSpecifiers(c)
	if cursor.Peek().Kind == lexer.KW_STRUCT {
		return "type"
	}
	if cursor.Peek().Kind != lexer.IDENT && cursor.Peek().Kind != lexer.KW_VOID {
		return ""
	}
	cursor = cursor.Advance() // past return/declared type
	if cursor.Peek().Kind != lexer.IDENT {
		return ""
	}
	cursor = cursor.Advance() // past name
	switch cursor.Peek().Kind {
	case lexer.LPAREN:
		return "function"
	case lexer.ASSIGN, lexer.SEMI:
		return "variable"
	default:
		return ""
	}
}

// parseGlobalDefinition is a strategy.Union over the three top-level
// productions: each alternative first checks its own defining anchor via
// classifyGlobalDefinition and NoMatches if it isn't the right
// production, so Union's "try in order, take the first non-NoMatch"
// never has to backtrack past a partially-consumed attempt.
func parseGlobalDefinition() strategy.Strategy[ast.Definition] {
	return strategy.Union(
		definitionAlternative("type", parseTypeDefinition),
		definitionAlternative("function", parseFunctionDefinition),
		definitionAlternative("variable", parseVariableDefinition),
	)
}

// definitionAlternative adapts a concrete-production parser (which
// assumes its anchor already matched) into a Strategy[ast.Definition]
// that NoMatches when classifyGlobalDefinition names a different
// production, for use as one arm of parseGlobalDefinition's Union.
func definitionAlternative[N ast.Definition](kind string, parse func(strategy.Cursor) (N, strategy.Cursor, []diag.Issue)) strategy.Strategy[ast.Definition] {
	return func(c strategy.Cursor) strategy.Outcome[ast.Definition] {
		if classifyGlobalDefinition(c) != kind {
			return strategy.Miss[ast.Definition](c)
		}
		node, cursor, issues := parse(c)
		return finishDefinition(node, cursor, issues)
	}
}

func finishDefinition(node ast.Definition, cursor strategy.Cursor, issues []diag.Issue) strategy.Outcome[ast.Definition] {
	if len(issues) > 0 {
		return strategy.Fail(node, issues, cursor)
	}
	return strategy.Succeed(node, nil, cursor)
}

// parseTypeDefinition is built directly on strategy.RunGroup (spec
// §4.2's Group parser): the 'struct' keyword is Defining (classify
// already confirmed it, so absence here never happens in practice, but
// the Role still documents the contract), the name is Required, and the
// body-or-terminator is Required with its own Try closure dispatching
// on the next token.
func parseTypeDefinition(c strategy.Cursor) (*ast.TypeDefinition, strategy.Cursor, []diag.Issue) {
	specs, cursor, issues := parseSpecifiers(c, "type")
	start := c.Peek().Span

	var name string
	var nameSpan source.Span
	var body *ast.TypeBody
	end := start

	out := strategy.RunGroup(cursor, []strategy.GroupElement{
		{
			Role: strategy.Defining,
			Try: func(cur strategy.Cursor) (bool, strategy.Cursor, []diag.Issue) {
				if cur.Peek().Kind != lexer.KW_STRUCT {
					return false, cur, nil
				}
				return true, cur.Advance(), nil
			},
		},
		{
			Role:           strategy.Required,
			MissingCode:    diag.CodeMissingToken,
			MissingMessage: msgExpectedIdentifier,
			Try: func(cur strategy.Cursor) (bool, strategy.Cursor, []diag.Issue) {
				if cur.Peek().Kind != lexer.IDENT {
					return false, cur, nil
				}
				tok := cur.Peek()
				name, nameSpan = tok.Text, tok.Span
				end = nameSpan
				return true, cur.Advance(), nil
			},
		},
		{
			Role:           strategy.Required,
			MissingCode:    diag.CodeMissingToken,
			MissingMessage: msgExpectedOpenBrace,
			Try: func(cur strategy.Cursor) (bool, strategy.Cursor, []diag.Issue) {
				switch cur.Peek().Kind {
				case lexer.LBRACE:
					b, next, bodyIssues := parseTypeBody(cur)
					body, end = b, b.Span()
					return true, next, bodyIssues
				case lexer.SEMI:
					end = cur.Peek().Span
					return true, cur.Advance(), nil
				default:
					return false, cur, nil
				}
			},
		},
	})
	issues = append(issues, out.Issues...)

	return &ast.TypeDefinition{Specifiers: specs, Name: name, NameSpan: nameSpan, Body: body, SourceSpan: start.Plus(end)}, out.Cursor, issues
}

func parseTypeBody(c strategy.Cursor) (*ast.TypeBody, strategy.Cursor, []diag.Issue) {
	open := c.Peek()
	cursor := c.Advance()
	var issues []diag.Issue
	var methods []*ast.MethodDefinition
	var fields []*ast.VariableDefinition
	lastSpan := open.Span

	for {
		if cursor.Peek().Kind == lexer.RBRACE || cursor.AtEnd() {
			break
		}
		if isVariableDefinitionStart(cursor) {
			field, next, fieldIssues := parseVariableDefinition(cursor)
			issues = append(issues, fieldIssues...)
			fields = append(fields, field)
			lastSpan = field.Span()
			cursor = next
			continue
		}
		method, next, methodIssues := parseMethodDefinition(cursor)
		issues = append(issues, methodIssues...)
		if next.Position() == cursor.Position() {
			// No progress: skip the offending token so the loop terminates.
			issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeUnexpectedToken, Span: cursor.Peek().Span, Message: "expected a method definition"})
			cursor = cursor.Advance()
			continue
		}
		methods = append(methods, method)
		lastSpan = method.Span()
		cursor = next
	}

	closeSpan := open.Span
	if cursor.Peek().Kind == lexer.RBRACE {
		closeSpan = cursor.Peek().Span
		cursor = cursor.Advance()
	} else {
		closeSpan = lastSpan.After()
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: closeSpan, Message: msgExpectedCloseBrace})
	}

	return &ast.TypeBody{Methods: methods, Fields: fields, SourceSpan: open.Span.Plus(closeSpan)}, cursor, issues
}

func parseMethodDefinition(c strategy.Cursor) (*ast.MethodDefinition, strategy.Cursor, []diag.Issue) {
	specs, cursor, issues := parseSpecifiers(c, "function")
	start := c.Peek().Span

	returnType, cursor, tyIssues := requireTypeExpr(cursor)
	issues = append(issues, tyIssues...)

	name, nameSpan, cursor, nameIssues := requireIdentifier(cursor)
	issues = append(issues, nameIssues...)

	params, cursor, paramIssues := parseParameterList(cursor)
	issues = append(issues, paramIssues...)

	body, cursor, bodyIssues, end := parseOptionalBodyOrTerminator(cursor, params.Span())
	issues = append(issues, bodyIssues...)

	return &ast.MethodDefinition{Specifiers: specs, ReturnType: returnType, Name: name, NameSpan: nameSpan, Parameters: params, Body: body, SourceSpan: start.Plus(end)}, cursor, issues
}

func parseFunctionDefinition(c strategy.Cursor) (*ast.FunctionDefinition, strategy.Cursor, []diag.Issue) {
	specs, cursor, issues := parseSpecifiers(c, "function")
	start := c.Peek().Span

	returnType, cursor, tyIssues := requireTypeExpr(cursor)
	issues = append(issues, tyIssues...)

	name, nameSpan, cursor, nameIssues := requireIdentifier(cursor)
	issues = append(issues, nameIssues...)

	params, cursor, paramIssues := parseParameterList(cursor)
	issues = append(issues, paramIssues...)

	body, cursor, bodyIssues, end := parseOptionalBodyOrTerminator(cursor, params.Span())
	issues = append(issues, bodyIssues...)

	return &ast.FunctionDefinition{Specifiers: specs, ReturnType: returnType, Name: name, NameSpan: nameSpan, Parameters: params, Body: body, SourceSpan: start.Plus(end)}, cursor, issues
}

// parseOptionalBodyOrTerminator parses a CodeBlock if one follows, or
// consumes the ';' that marks a native declaration: a FunctionDefinition
// with the 'native' specifier has no body. fallback anchors the produced
// span when neither is present.
func parseOptionalBodyOrTerminator(c strategy.Cursor, fallback source.Span) (*ast.CodeBlock, strategy.Cursor, []diag.Issue, source.Span) {
	if c.Peek().Kind == lexer.LBRACE {
		block, cursor, issues := parseCodeBlock(c)
		return block, cursor, issues, block.Span()
	}
	if c.Peek().Kind == lexer.SEMI {
		span := c.Peek().Span
		return nil, c.Advance(), nil, span
	}
	issue := diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: c.Peek().Span.Before(), Message: msgExpectedOpenBrace}
	return nil, c, []diag.Issue{issue}, fallback
}

// requireIdentifier consumes an identifier token, synthesizing a
// placeholder name at a zero-width span on absence rather than letting
// the caller's production fail outright. The match itself is
// strategy.Identifier(); this function adds the error-recovery behavior
// a bare single-token Strategy doesn't have an opinion on.
func requireIdentifier(c strategy.Cursor) (name string, span source.Span, next strategy.Cursor, issues []diag.Issue) {
	if out := strategy.Identifier()(c); out.Kind == strategy.Success {
		return out.Node.Text, out.Node.Span, out.Cursor, nil
	}
	missing := c.Peek().Span.Before()
	issue := diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: missing, Message: msgExpectedIdentifier}
	return "", missing, c, []diag.Issue{issue}
}

// parseParameterList parses a parenthesized, comma-separated list of
// (type, name) parameters. A FunctionDefinition's anchor guarantees the
// opening '('; a malformed method header may reach here without one, in
// which case an empty list is synthesized at a zero-width span.
func parseParameterList(c strategy.Cursor) (*ast.ParameterList, strategy.Cursor, []diag.Issue) {
	if c.Peek().Kind != lexer.LPAREN {
		missing := c.Peek().Span.Before()
		issue := diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: missing, Message: msgExpectedOpenParen}
		return &ast.ParameterList{SourceSpan: missing}, c, []diag.Issue{issue}
	}
	open := c.Peek()
	cursor := c.Advance()
	var issues []diag.Issue
	var params []*ast.Parameter

	if cursor.Peek().Kind != lexer.RPAREN {
		for {
			paramType, next, tyIssues := requireTypeExpr(cursor)
			issues = append(issues, tyIssues...)
			cursor = next

			name, nameSpan, next2, nameIssues := requireIdentifier(cursor)
			issues = append(issues, nameIssues...)
			cursor = next2

			params = append(params, &ast.Parameter{Name: name, Type: paramType, SourceSpan: paramType.Span().Plus(nameSpan)})

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
		anchor := open.Span
		if n := len(params); n > 0 {
			anchor = params[n-1].Span()
		}
		closeSpan = anchor.After()
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: closeSpan, Message: msgExpectedParameterSep})
	}

	return &ast.ParameterList{Parameters: params, SourceSpan: open.Span.Plus(closeSpan)}, cursor, issues
}

// parseVariableDefinition parses a top-level or local variable
// declaration: specifiers, required type, required name, optional
// initializer, required terminating ';'. Its anchor is the identifier
// followed by '=' or ';'.
func parseVariableDefinition(c strategy.Cursor) (*ast.VariableDefinition, strategy.Cursor, []diag.Issue) {
	specs, cursor, issues := parseSpecifiers(c, "variable")
	start := c.Peek().Span

	ty, cursor, tyIssues := requireTypeExpr(cursor)
	issues = append(issues, tyIssues...)

	name, nameSpan, cursor, nameIssues := requireIdentifier(cursor)
	issues = append(issues, nameIssues...)

	var init ast.Expression
	end := nameSpan
	if cursor.Peek().Kind == lexer.ASSIGN {
		cursor = cursor.Advance()
		var initIssues []diag.Issue
		init, cursor, initIssues = parseExpression(cursor)
		issues = append(issues, initIssues...)
		if init != nil {
			end = init.Span()
		}
	}

	if cursor.Peek().Kind == lexer.SEMI {
		end = cursor.Peek().Span
		cursor = cursor.Advance()
	} else {
		issues = append(issues, diag.Issue{Severity: diag.Error, Code: diag.CodeMissingToken, Span: cursor.Peek().Span.Before(), Message: msgExpectedSemicolon})
	}

	return &ast.VariableDefinition{Specifiers: specs, Type: ty, Name: name, NameSpan: nameSpan, Init: init, SourceSpan: start.Plus(end)}, cursor, issues
}
