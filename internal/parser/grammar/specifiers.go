package grammar

import (
	"fmt"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/parser/strategy"
)

// specifierKeywords maps every lexical specifier keyword to its name.
// Kept as an open table (rather than a single hard-coded "native" check)
// so a new specifier needs no parser change.
var specifierKeywords = map[lexer.Kind]string{
	lexer.KW_NATIVE: "native",
}

// legalSpecifiers restricts which specifiers are accepted for a given
// production; anything else parsed is an error and is discarded.
var legalSpecifiers = map[string]map[string]bool{
	"type":     {"native": true},
	"function": {"native": true},
	"variable": {"native": true},
}

// parseSpecifiers consumes a run of specifier keywords into a set,
// warning on duplicates and erroring (while discarding) on specifiers
// illegal for `production`.
func parseSpecifiers(c strategy.Cursor, production string) (ast.Specifiers, strategy.Cursor, []diag.Issue) {
	specs := ast.Specifiers{}
	var issues []diag.Issue
	cursor := c

	for {
		name, ok := specifierKeywords[cursor.Peek().Kind]
		if !ok {
			break
		}
		tok := cursor.Peek()
		cursor = cursor.Advance()

		if legal := legalSpecifiers[production]; legal == nil || !legal[name] {
			issues = append(issues, diag.Issue{
				Severity: diag.Error, Code: diag.CodeIllegalSpecifier, Span: tok.Span,
				Message: fmt.Sprintf("specifier '%s' is not valid here", name),
			})
			continue
		}

		if specs.Has(name) {
			issues = append(issues, diag.Issue{
				Severity: diag.Warning, Code: diag.CodeDuplicateSpecifier, Span: tok.Span,
				Message: fmt.Sprintf("duplicate specifier '%s'", name),
			})
			continue
		}
		specs[name] = struct{}{}
	}

	return specs, cursor, issues
}
