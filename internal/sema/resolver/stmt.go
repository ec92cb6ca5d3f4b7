package resolver

import (
	"fmt"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/sema/scope"
	"github.com/colang-project/colang/internal/sema/stype"
)

func (a *Analyzer) resolveBlock(raw *ast.CodeBlock, sc *scope.Scope, returnType *stype.Type) *CodeBlock {
	stmts := make([]Stmt, 0, len(raw.Statements))
	for _, s := range raw.Statements {
		stmts = append(stmts, a.resolveStmt(s, sc, returnType))
	}
	return &CodeBlock{Statements: stmts, SourceSpan: raw.SourceSpan, ClosingBrace: raw.ClosingBrace}
}

func (a *Analyzer) resolveStmt(s ast.Statement, sc *scope.Scope, returnType *stype.Type) Stmt {
	switch n := s.(type) {
	case *ast.CodeBlock:
		return a.resolveBlock(n, scope.New(sc), returnType)

	case *ast.IfStatement:
		cond := a.resolveExpr(n.Condition, sc)
		a.requireBoolean(cond)
		then := a.resolveBlock(n.Then, scope.New(sc), returnType)
		var elseStmt Stmt
		if n.Else != nil {
			elseStmt = a.resolveStmt(n.Else, sc, returnType)
		}
		return &IfStmt{Cond: cond, Then: then, Else: elseStmt, SourceSpan: n.SourceSpan}

	case *ast.WhileStatement:
		cond := a.resolveExpr(n.Condition, sc)
		a.requireBoolean(cond)
		body := a.resolveBlock(n.Body, scope.New(sc), returnType)
		return &WhileStmt{Cond: cond, Body: body, SourceSpan: n.SourceSpan}

	case *ast.ReturnStatement:
		return a.resolveReturn(n, sc, returnType)

	case *ast.ExpressionStatement:
		return &ExprStmt{Expr: a.resolveExpr(n.Expr, sc), SourceSpan: n.SourceSpan}

	case *ast.VariableDefinition:
		sym := a.registerVariable(n, sc)
		var init Expr
		if n.Init != nil {
			init = a.resolveExpr(n.Init, sc)
			if !init.Type().SubtypeOf(sym.Type) {
				a.issues.Error(diag.CodeTypeMismatch, init.Span(),
					fmt.Sprintf("cannot initialize '%s' of type '%s' with a value of type '%s'", sym.Name, sym.Type, init.Type()))
			} else if init.Type() != sym.Type {
				init = &Coercion{typedBase{sym.Type, init.Span()}, init}
			}
		}
		return &VarDeclStmt{Symbol: sym, Init: init, SourceSpan: n.SourceSpan}

	default:
		return &ExprStmt{Expr: &ErrorExpr{typedBase{a.errType, s.Span()}}, SourceSpan: s.Span()}
	}
}

func (a *Analyzer) resolveReturn(n *ast.ReturnStatement, sc *scope.Scope, returnType *stype.Type) Stmt {
	if n.Value == nil {
		if returnType != nil && !a.builtins.isVoid(returnType) && returnType.Kind != stype.KindError {
			a.issues.Error(diag.CodeReturnWithoutValue, n.SourceSpan,
				fmt.Sprintf("function must return a value of type '%s'", returnType))
		}
		return &ReturnStmt{SourceSpan: n.SourceSpan}
	}

	val := a.resolveExpr(n.Value, sc)
	switch {
	case returnType == nil || a.builtins.isVoid(returnType):
		a.issues.Error(diag.CodeReturnValueInVoid, val.Span(), "a void function cannot return a value")
	case !val.Type().SubtypeOf(returnType):
		a.issues.Error(diag.CodeTypeMismatch, val.Span(),
			fmt.Sprintf("cannot return a value of type '%s' from a function returning '%s'", val.Type(), returnType))
	case val.Type() != returnType:
		val = &Coercion{typedBase{returnType, val.Span()}, val}
	}
	return &ReturnStmt{Value: val, SourceSpan: n.SourceSpan}
}

func (a *Analyzer) requireBoolean(e Expr) {
	if e.Type().Kind == stype.KindError {
		return
	}
	if !e.Type().SubtypeOf(a.builtins.bool_) {
		a.issues.Error(diag.CodeTypeMismatch, e.Span(),
			fmt.Sprintf("condition must be of type 'bool', found '%s'", e.Type()))
	}
}
