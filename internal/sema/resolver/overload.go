package resolver

import (
	"fmt"
	"strings"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/sema/scope"
	"github.com/colang-project/colang/internal/sema/stype"
	"github.com/colang-project/colang/internal/source"
)

// candidate is one overload-set entry under consideration for a call.
type candidate struct {
	sig *stype.Type
}

func (a *Analyzer) resolveCall(n *ast.CallExpr, sc *scope.Scope) Expr {
	switch callee := n.Callee.(type) {
	case *ast.IdentifierExpr:
		sym, ok := sc.Lookup(callee.Name)
		if !ok {
			a.issues.Error(diag.CodeUnknownIdentifier, callee.SourceSpan, fmt.Sprintf("unknown identifier '%s'", callee.Name))
			return a.errExpr(n.SourceSpan)
		}
		if sym.Kind != scope.KindFunction {
			a.issues.Error(diag.CodeTypeMismatch, callee.SourceSpan, fmt.Sprintf("'%s' is not callable", callee.Name))
			return a.errExpr(n.SourceSpan)
		}
		candidates := make([]candidate, len(sym.Functions))
		for i, f := range sym.Functions {
			candidates[i] = candidate{sig: f.Type}
		}
		args := a.resolveArgs(n.Arguments, sc)
		return a.resolveOverload(candidates, args, n.SourceSpan, nil, callee.Name)

	case *ast.FieldAccessExpr:
		receiver := a.resolveExpr(callee.Receiver, sc)
		args := a.resolveArgs(n.Arguments, sc)
		if receiver.Type().Kind == stype.KindError {
			return a.errExpr(n.SourceSpan)
		}
		if receiver.Type().Kind != stype.KindStruct {
			a.issues.Error(diag.CodeUnknownIdentifier, callee.FieldSpan,
				fmt.Sprintf("'%s' has no method '%s'", receiver.Type(), callee.Field))
			return a.errExpr(n.SourceSpan)
		}
		ov, ok := receiver.Type().Method(callee.Field)
		if !ok {
			a.issues.Error(diag.CodeUnknownIdentifier, callee.FieldSpan,
				fmt.Sprintf("'%s' has no method '%s'", receiver.Type(), callee.Field))
			return a.errExpr(n.SourceSpan)
		}
		candidates := make([]candidate, len(ov.Entries))
		for i, sig := range ov.Entries {
			candidates[i] = candidate{sig: sig}
		}
		return a.resolveOverload(candidates, args, n.SourceSpan, receiver, callee.Field)

	default:
		a.issues.Error(diag.CodeTypeMismatch, n.Callee.Span(), "expression is not callable")
		a.resolveArgs(n.Arguments, sc)
		return a.errExpr(n.SourceSpan)
	}
}

func (a *Analyzer) resolveArgs(raw []ast.Expression, sc *scope.Scope) []Expr {
	args := make([]Expr, len(raw))
	for i, e := range raw {
		args[i] = a.resolveExpr(e, sc)
	}
	return args
}

// resolveOverload implements three-step selection: filter by arity,
// filter by per-argument subtyping, then among the survivors keep only
// those no other survivor dominates component-wise. A unique minimum is
// the winner, zero survivors is "no matching overload", and more than
// one minimum is "ambiguous call".
func (a *Analyzer) resolveOverload(candidates []candidate, args []Expr, callSpan source.Span, receiver Expr, name string) Expr {
	argsOK := true
	for _, arg := range args {
		if arg.Type().Kind == stype.KindError {
			argsOK = false
		}
	}

	var arityMatched []candidate
	for _, c := range candidates {
		if len(c.sig.Parameters) == len(args) {
			arityMatched = append(arityMatched, c)
		}
	}

	if !argsOK {
		// An argument already failed to type; don't also report an
		// overload-resolution failure caused by that same error.
		return a.buildCall(firstOrNil(arityMatched), args, callSpan, receiver, name)
	}

	var survivors []candidate
	for _, c := range arityMatched {
		if paramsAccept(c.sig, args) {
			survivors = append(survivors, c)
		}
	}

	switch len(survivors) {
	case 0:
		a.issues.Error(diag.CodeNoMatchingOverload, callSpan,
			fmt.Sprintf("no matching overload for '%s(%s)'", name, describeArgs(args)))
		return a.errExpr(callSpan)
	case 1:
		return a.buildCall(&survivors[0], args, callSpan, receiver, name)
	}

	minimal := minimalCandidates(survivors)
	if len(minimal) == 1 {
		return a.buildCall(&minimal[0], args, callSpan, receiver, name)
	}

	notes := make([]diag.Note, len(minimal))
	for i, c := range minimal {
		notes[i] = diag.Note{Message: fmt.Sprintf("candidate: %s", c.sig)}
	}
	a.issues.Error(diag.CodeAmbiguousCall, callSpan,
		fmt.Sprintf("ambiguous call to '%s(%s)'", name, describeArgs(args)), notes...)
	return a.errExpr(callSpan)
}

func firstOrNil(cs []candidate) *candidate {
	if len(cs) == 0 {
		return nil
	}
	return &cs[0]
}

func (a *Analyzer) buildCall(c *candidate, args []Expr, callSpan source.Span, receiver Expr, name string) Expr {
	if c == nil {
		return a.errExpr(callSpan)
	}
	coerced := make([]Expr, len(args))
	for i, arg := range args {
		if i >= len(c.sig.Parameters) {
			coerced[i] = arg
			continue
		}
		want := c.sig.Parameters[i].Type
		if arg.Type().Kind != stype.KindError && arg.Type() != want {
			coerced[i] = &Coercion{typedBase{want, arg.Span()}, arg}
		} else {
			coerced[i] = arg
		}
	}
	return &Call{typedBase{c.sig.ReturnType, callSpan}, c.sig, name, receiver, coerced}
}

func paramsAccept(sig *stype.Type, args []Expr) bool {
	for i, p := range sig.Parameters {
		if !args[i].Type().SubtypeOf(p.Type) {
			return false
		}
	}
	return true
}

// dominates reports whether a's parameter types are everywhere at least
// as specific as b's, and strictly more specific somewhere, making a the
// better-fitting overload when both accept the call.
func dominates(a, b *stype.Type) bool {
	strictlyNarrower := false
	for i, pa := range a.Parameters {
		pb := b.Parameters[i]
		if !pa.Type.SubtypeOf(pb.Type) {
			return false
		}
		if !pb.Type.SubtypeOf(pa.Type) {
			strictlyNarrower = true
		}
	}
	return strictlyNarrower
}

func minimalCandidates(survivors []candidate) []candidate {
	var minimal []candidate
	for i, c := range survivors {
		dominated := false
		for j, other := range survivors {
			if i == j {
				continue
			}
			if dominates(other.sig, c.sig) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, c)
		}
	}
	return minimal
}

func describeArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type().String()
	}
	return strings.Join(parts, ", ")
}
