package resolver

import (
	"fmt"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/sema/scope"
	"github.com/colang-project/colang/internal/sema/stype"
	"github.com/colang-project/colang/internal/source"
)

// errExpr types a broken expression as the absorbing error type (spec
// §4.6), so a caller checking its Type() never needs a nil check.
func (a *Analyzer) errExpr(span source.Span) Expr {
	return &ErrorExpr{typedBase{a.errType, span}}
}

func (a *Analyzer) resolveExpr(e ast.Expression, sc *scope.Scope) Expr {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return &IntLiteral{typedBase{a.builtins.int_, n.SourceSpan}, n.Value}
	case *ast.FloatLiteral:
		return &FloatLiteral{typedBase{a.builtins.float_, n.SourceSpan}, n.Value}
	case *ast.StringLiteral:
		return &StringLiteral{typedBase{a.builtins.string_, n.SourceSpan}, n.Value}
	case *ast.BoolLiteral:
		return &BoolLiteral{typedBase{a.builtins.bool_, n.SourceSpan}, n.Value}

	case *ast.IdentifierExpr:
		return a.resolveIdentifier(n, sc)

	case *ast.CallExpr:
		return a.resolveCall(n, sc)

	case *ast.FieldAccessExpr:
		// Bare (non-called) field access: CO structs carry no data fields,
		// so "a.b" only ever resolves as the callee of a CallExpr. Reaching
		// this case means the field access stood alone.
		receiver := a.resolveExpr(n.Receiver, sc)
		if receiver.Type().Kind != stype.KindError {
			a.issues.Error(diag.CodeUnknownIdentifier, n.FieldSpan,
				fmt.Sprintf("'%s' has no field '%s'", receiver.Type(), n.Field))
		}
		return a.errExpr(n.SourceSpan)

	case *ast.SubscriptExpr:
		receiver := a.resolveExpr(n.Receiver, sc)
		a.resolveExpr(n.Index, sc)
		if receiver.Type().Kind != stype.KindError {
			a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan,
				fmt.Sprintf("type '%s' does not support subscripting", receiver.Type()))
		}
		return a.errExpr(n.SourceSpan)

	case *ast.PostfixExpr:
		return a.resolvePostfix(n, sc)

	case *ast.UnaryExpr:
		return a.resolveUnary(n, sc)

	case *ast.BinaryExpr:
		return a.resolveBinary(n, sc)

	case *ast.AssignExpr:
		return a.resolveAssign(n, sc)

	case *ast.ErrorExpr:
		return a.errExpr(n.SourceSpan)

	default:
		return a.errExpr(e.Span())
	}
}

func (a *Analyzer) resolveIdentifier(n *ast.IdentifierExpr, sc *scope.Scope) Expr {
	sym, ok := sc.Lookup(n.Name)
	if !ok {
		a.issues.Error(diag.CodeUnknownIdentifier, n.SourceSpan, fmt.Sprintf("unknown identifier '%s'", n.Name))
		return a.errExpr(n.SourceSpan)
	}
	switch sym.Kind {
	case scope.KindVariable:
		return &VariableRef{typedBase{sym.Type, n.SourceSpan}, sym}
	case scope.KindFunction:
		a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan, fmt.Sprintf("'%s' names a function and cannot be used as a value", n.Name))
	case scope.KindType:
		a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan, fmt.Sprintf("'%s' names a type and cannot be used as a value", n.Name))
	}
	return a.errExpr(n.SourceSpan)
}

func (a *Analyzer) resolvePostfix(n *ast.PostfixExpr, sc *scope.Scope) Expr {
	operand := a.resolveExpr(n.Operand, sc)
	if operand.Type().Kind != stype.KindError {
		if _, ok := operand.(*VariableRef); !ok {
			a.issues.Error(diag.CodeNotAssignable, operand.Span(), "increment/decrement target must be a variable")
		} else if !operand.Type().SubtypeOf(a.builtins.int_) {
			a.issues.Error(diag.CodeTypeMismatch, operand.Span(),
				fmt.Sprintf("'%s'/'--' require an int operand, found '%s'", n.Operator, operand.Type()))
		}
	}
	return &Postfix{typedBase{a.builtins.int_, n.SourceSpan}, operand, n.Operator}
}

func (a *Analyzer) resolveUnary(n *ast.UnaryExpr, sc *scope.Scope) Expr {
	operand := a.resolveExpr(n.Operand, sc)
	resultType := operand.Type()
	if operand.Type().Kind != stype.KindError {
		switch n.Operator {
		case lexer.BANG:
			if !operand.Type().SubtypeOf(a.builtins.bool_) {
				a.issues.Error(diag.CodeTypeMismatch, operand.Span(), fmt.Sprintf("'!' requires a bool operand, found '%s'", operand.Type()))
			}
			resultType = a.builtins.bool_
		case lexer.MINUS:
			if !operand.Type().SubtypeOf(a.builtins.int_) && !operand.Type().SubtypeOf(a.builtins.float_) {
				a.issues.Error(diag.CodeTypeMismatch, operand.Span(), fmt.Sprintf("unary '-' requires an int or float operand, found '%s'", operand.Type()))
			}
		}
	}
	return &Unary{typedBase{resultType, n.SourceSpan}, operand, n.Operator}
}

func (a *Analyzer) resolveBinary(n *ast.BinaryExpr, sc *scope.Scope) Expr {
	left := a.resolveExpr(n.Left, sc)
	right := a.resolveExpr(n.Right, sc)
	resultType := a.errType

	if left.Type().Kind != stype.KindError && right.Type().Kind != stype.KindError {
		switch n.Operator {
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
			resultType = stype.LeastUpperBound(left.Type(), right.Type(), a.universe)
			if resultType == nil || (resultType != a.builtins.int_ && resultType != a.builtins.float_) {
				a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan,
					fmt.Sprintf("operator '%s' requires numeric operands, found '%s' and '%s'", n.Operator, left.Type(), right.Type()))
				resultType = a.errType
			}
		case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
			if stype.LeastUpperBound(left.Type(), right.Type(), a.universe) == nil {
				a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan,
					fmt.Sprintf("operator '%s' requires comparable numeric operands, found '%s' and '%s'", n.Operator, left.Type(), right.Type()))
			}
			resultType = a.builtins.bool_
		case lexer.EQ, lexer.NEQ:
			if !left.Type().SubtypeOf(right.Type()) && !right.Type().SubtypeOf(left.Type()) {
				a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan,
					fmt.Sprintf("cannot compare '%s' with '%s'", left.Type(), right.Type()))
			}
			resultType = a.builtins.bool_
		case lexer.AND_AND, lexer.OR_OR:
			if !left.Type().SubtypeOf(a.builtins.bool_) || !right.Type().SubtypeOf(a.builtins.bool_) {
				a.issues.Error(diag.CodeTypeMismatch, n.SourceSpan,
					fmt.Sprintf("operator '%s' requires bool operands, found '%s' and '%s'", n.Operator, left.Type(), right.Type()))
			}
			resultType = a.builtins.bool_
		default:
			resultType = a.errType
		}
	} else if n.Operator == lexer.LT || n.Operator == lexer.GT || n.Operator == lexer.LE || n.Operator == lexer.GE ||
		n.Operator == lexer.EQ || n.Operator == lexer.NEQ || n.Operator == lexer.AND_AND || n.Operator == lexer.OR_OR {
		resultType = a.builtins.bool_
	}

	return &Binary{typedBase{resultType, n.SourceSpan}, left, right, n.Operator}
}

func (a *Analyzer) resolveAssign(n *ast.AssignExpr, sc *scope.Scope) Expr {
	target := a.resolveExpr(n.Target, sc)
	value := a.resolveExpr(n.Value, sc)

	if _, ok := target.(*VariableRef); !ok && target.Type().Kind != stype.KindError {
		a.issues.Error(diag.CodeNotAssignable, target.Span(), "assignment target must be a variable")
		return &Assign{typedBase{a.errType, n.SourceSpan}, target, value}
	}

	if target.Type().Kind != stype.KindError && value.Type().Kind != stype.KindError {
		if !value.Type().SubtypeOf(target.Type()) {
			a.issues.Error(diag.CodeTypeMismatch, value.Span(),
				fmt.Sprintf("cannot assign '%s' to a variable of type '%s'", value.Type(), target.Type()))
		} else if value.Type() != target.Type() {
			value = &Coercion{typedBase{target.Type(), value.Span()}, value}
		}
	}

	return &Assign{typedBase{target.Type(), n.SourceSpan}, target, value}
}
