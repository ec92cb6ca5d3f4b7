// Package flow implements the return-flow checker: a structural walk of
// every resolved function body verifying that every path which must
// produce a value does, and flagging statements that can never run.
package flow

import (
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/sema/resolver"
	"github.com/colang-project/colang/internal/sema/stype"
)

// result represents the outcome of control-flow analysis: whether the
// analyzed construct always returns on every path, and whether control
// can ever reach the statement immediately following it.
type result struct {
	alwaysReturns bool
	reachable     bool
}

// Check walks every function in prog, reporting a missing-return
// diagnostic for a non-void function whose body doesn't return on every
// path, and an unreachable-code diagnostic for any statement following
// one that always returns. Native (bodyless) declarations are skipped.
func Check(prog *resolver.Program) *diag.Bag {
	var bag diag.Bag
	for _, fn := range prog.Functions {
		if fn.Body == nil {
			continue
		}
		checkFunction(&bag, fn)
	}
	return &bag
}

func checkFunction(bag *diag.Bag, fn *resolver.ResolvedFunction) {
	res := checkBlock(bag, fn.Body)
	if fn.Signature.ReturnType != nil && fn.Signature.ReturnType.Kind != stype.KindError &&
		fn.Signature.ReturnType.Name != "void" && !res.alwaysReturns {
		bag.Error(diag.CodeMissingReturnStatement, fn.Body.ClosingBrace.Before(),
			"missing return statement: not every path returns a value")
	}
}

// checkBlock walks a statement sequence: once a statement always
// returns, every following statement in the same block is unreachable.
func checkBlock(bag *diag.Bag, block *resolver.CodeBlock) result {
	if block == nil {
		return result{alwaysReturns: false, reachable: true}
	}

	reachable := true
	alwaysReturns := false

	for _, stmt := range block.Statements {
		if !reachable {
			bag.Error(diag.CodeUnreachableCode, stmt.Span(), "unreachable code")
			continue
		}

		switch n := stmt.(type) {
		case *resolver.ReturnStmt:
			alwaysReturns = true
			reachable = false
		case *resolver.IfStmt:
			r := checkIf(bag, n)
			if r.alwaysReturns {
				alwaysReturns = true
			}
			if !r.reachable {
				reachable = false
			}
		case *resolver.WhileStmt:
			checkBlock(bag, n.Body)
			// A while loop's body may run zero times, so it never
			// guarantees a return and never makes the statement after it
			// unreachable on its own.
		case *resolver.CodeBlock:
			r := checkBlock(bag, n)
			if r.alwaysReturns {
				alwaysReturns = true
				reachable = false
			}
		}
	}

	return result{alwaysReturns: alwaysReturns, reachable: reachable}
}

// checkIf combines the then/else branches: both branches must return for
// the whole statement to guarantee a return, but either branch alone
// being reachable keeps the statement after the if reachable. An if with
// no else branch can never itself guarantee a return: a bare "if" is
// never exhaustive.
func checkIf(bag *diag.Bag, stmt *resolver.IfStmt) result {
	then := checkBlock(bag, stmt.Then)

	var elseRes result
	switch e := stmt.Else.(type) {
	case *resolver.IfStmt:
		elseRes = checkIf(bag, e)
	case *resolver.CodeBlock:
		elseRes = checkBlock(bag, e)
	default:
		elseRes = result{alwaysReturns: false, reachable: true}
	}

	return result{
		alwaysReturns: then.alwaysReturns && elseRes.alwaysReturns,
		reachable:     then.reachable || elseRes.reachable,
	}
}
