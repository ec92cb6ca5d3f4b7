package resolver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/colang-project/colang/internal/ast"
	"github.com/colang-project/colang/internal/diag"
	"github.com/colang-project/colang/internal/sema/scope"
	"github.com/colang-project/colang/internal/sema/stype"
)

// pendingBody is a function or method whose signature is registered
// (Phase 1) but whose block has not yet been walked (Phase 2).
type pendingBody struct {
	fn         *ResolvedFunction
	raw        *ast.CodeBlock
	paramNames []string
	returnType *stype.Type
}

// Analyzer runs the two-phase registration/resolution pass over a
// prelude translation unit followed by zero or more user translation
// units, accumulating diagnostics into a single Bag.
type Analyzer struct {
	universe *stype.Universe
	builtins *builtins
	root     *scope.Scope
	issues   diag.Bag

	functions []*ResolvedFunction
	types     []*stype.Type
	pending   []*pendingBody

	errType *stype.Type
}

// NewAnalyzer creates an Analyzer with the primitive types already
// bootstrapped into a fresh root scope.
func NewAnalyzer() *Analyzer {
	universe := stype.NewUniverse()
	b := newBuiltins(universe)
	root := scope.New(nil)

	for _, t := range []*stype.Type{b.void, b.bool_, b.int_, b.float_, b.string_} {
		root.Declare(&scope.Symbol{Kind: scope.KindType, Name: t.Name, Type: t})
	}

	errType := &stype.Type{Kind: stype.KindError, Name: "<error>"}

	return &Analyzer{
		universe: universe,
		builtins: b,
		root:     root,
		errType:  errType,
	}
}

// Analyze registers and resolves every unit in order: callers pass the
// prelude unit first so its declarations land in the root scope before
// user code is registered, into the same root namespace. Registration
// itself is split in two so forward references work: every type name
// across every unit is declared before any function, method, or
// variable signature mentions one.
func (a *Analyzer) Analyze(units ...*ast.TranslationUnit) (*Program, *diag.Bag) {
	for _, u := range units {
		a.declareTypes(u)
	}
	for _, u := range units {
		a.registerUnit(u)
	}
	for _, pb := range a.pending {
		a.resolveBody(pb)
	}

	prog := &Program{
		ID:        uuid.New(),
		Universe:  a.universe,
		Root:      a.root,
		Functions: a.functions,
		Types:     a.types,
	}
	return prog, &a.issues
}

// declareTypes is the first half of Phase 1: it enters every type NAME
// into the universe so a function or method signature anywhere in any
// unit can reference a type declared later (recursive types included).
// Method headers wait for registerUnit, once every name exists.
func (a *Analyzer) declareTypes(u *ast.TranslationUnit) {
	if u == nil {
		return
	}
	for _, def := range u.Definitions {
		d, ok := def.(*ast.TypeDefinition)
		if !ok || d.Name == "" {
			continue
		}
		ty := stype.NewStruct(d.Name, d.Specifiers.Has("native"))
		if !a.universe.Register(ty) {
			note := diag.Note{Message: "previous declaration"}
			if existing, ok := a.root.LookupLocal(d.Name); ok {
				note.Span = existing.Span
			}
			a.issues.Error(diag.CodeDuplicateSymbol, d.NameSpan,
				fmt.Sprintf("type '%s' is already declared", d.Name), note)
			continue
		}
		a.root.Declare(&scope.Symbol{Kind: scope.KindType, Name: ty.Name, Type: ty, Span: d.NameSpan})
		a.types = append(a.types, ty)
	}
}

func (a *Analyzer) registerUnit(u *ast.TranslationUnit) {
	if u == nil {
		return
	}
	for _, def := range u.Definitions {
		switch d := def.(type) {
		case *ast.TypeDefinition:
			a.registerTypeBody(d)
		case *ast.FunctionDefinition:
			a.registerFunction(d)
		case *ast.VariableDefinition:
			a.registerVariable(d, a.root)
		}
	}
}

// registerTypeBody attaches method headers to a type declared by
// declareTypes. A duplicate definition was already reported there and
// has no registered type to attach to.
func (a *Analyzer) registerTypeBody(d *ast.TypeDefinition) {
	if d.Name == "" || d.Body == nil {
		return
	}
	sym, ok := a.root.LookupLocal(d.Name)
	if !ok || sym.Kind != scope.KindType || sym.Type.Kind != stype.KindStruct {
		return
	}
	if sym.Span != d.NameSpan {
		// This definition lost a duplicate-symbol race; its body does not
		// contribute methods to the winner.
		return
	}
	for _, m := range d.Body.Methods {
		a.registerMethod(sym.Type, m)
	}
}

func (a *Analyzer) registerMethod(owner *stype.Type, m *ast.MethodDefinition) {
	if m.Name == "" {
		return
	}
	params, names := a.resolveParamList(m.Parameters)
	returnType := a.resolveTypeExpr(m.ReturnType)
	sig := stype.NewFunction(params, returnType)
	owner.AddMethod(m.Name, sig)

	fn := &ResolvedFunction{
		Name:         m.Name,
		Signature:    sig,
		ReceiverType: owner,
		Native:       m.Specifiers.Has("native"),
		Span:         m.SourceSpan,
	}
	a.functions = append(a.functions, fn)

	if m.Body != nil {
		a.pending = append(a.pending, &pendingBody{
			fn: fn, raw: m.Body, paramNames: names, returnType: returnType,
		})
	}
}

func (a *Analyzer) registerFunction(d *ast.FunctionDefinition) {
	if d.Name == "" {
		return
	}
	params, names := a.resolveParamList(d.Parameters)
	returnType := a.resolveTypeExpr(d.ReturnType)
	sig := stype.NewFunction(params, returnType)

	scopeFn := &scope.Function{
		Name: d.Name, Type: sig, ParamNames: names,
		Native: d.Specifiers.Has("native"), Span: d.NameSpan,
	}
	if existing, ok := a.root.DeclareOrExtendFunction(d.Name, scopeFn); !ok {
		a.issues.Error(diag.CodeDuplicateSymbol, d.NameSpan,
			fmt.Sprintf("'%s' is already declared in this scope", d.Name),
			diag.Note{Span: existing.Span, Message: "previous declaration"})
		return
	}

	fn := &ResolvedFunction{
		Name: d.Name, Signature: sig, Native: scopeFn.Native, Span: d.SourceSpan,
	}
	a.functions = append(a.functions, fn)

	if d.Body != nil {
		a.pending = append(a.pending, &pendingBody{
			fn: fn, raw: d.Body, paramNames: names, returnType: returnType,
		})
	}
}

func (a *Analyzer) registerVariable(d *ast.VariableDefinition, sc *scope.Scope) *scope.Symbol {
	ty := a.resolveTypeExpr(d.Type)
	if d.Name == "" {
		// Error recovery synthesized the name; the declaration itself was
		// already reported by the parser.
		return &scope.Symbol{Kind: scope.KindVariable, Type: a.errType, Span: d.NameSpan}
	}
	sym := &scope.Symbol{Kind: scope.KindVariable, Name: d.Name, Type: ty, Span: d.NameSpan}
	if existing, ok := sc.Declare(sym); !ok {
		a.issues.Error(diag.CodeDuplicateSymbol, d.NameSpan,
			fmt.Sprintf("'%s' is already declared in this scope", d.Name),
			diag.Note{Span: existing.Span, Message: "previous declaration"})
		return existing
	}
	return sym
}

func (a *Analyzer) resolveParamList(list *ast.ParameterList) ([]stype.Param, []string) {
	if list == nil {
		return nil, nil
	}
	params := make([]stype.Param, len(list.Parameters))
	names := make([]string, len(list.Parameters))
	for i, p := range list.Parameters {
		params[i] = stype.Param{Name: p.Name, Type: a.resolveTypeExpr(p.Type)}
		names[i] = p.Name
	}
	return params, names
}

// resolveTypeExpr looks up a raw type-name reference against the
// universe, reporting an unknown-type diagnostic and substituting the
// absorbing error type on failure so later checks don't cascade (spec
// §4.6). A nil TypeExpr (e.g. an inferred local declaration with no
// explicit type) resolves to the error type too, since CO's grammar
// requires an explicit type at every anchor the parser recognizes.
func (a *Analyzer) resolveTypeExpr(te *ast.TypeExpr) *stype.Type {
	if te == nil || te.Name == "" {
		return a.errType
	}
	t, ok := a.universe.Lookup(te.Name)
	if !ok {
		a.issues.Error(diag.CodeUnknownType, te.SourceSpan, fmt.Sprintf("unknown type '%s'", te.Name))
		return a.errType
	}
	return t
}

// resolveBody walks a pending function or method body (Phase 2): a
// fresh child scope binds its parameters, then every statement is typed
// in turn. Native declarations never reach here (they have no raw
// block, so they're never queued as pending).
func (a *Analyzer) resolveBody(pb *pendingBody) {
	fnScope := scope.New(a.root)
	params := make([]*scope.Symbol, len(pb.fn.Signature.Parameters))
	for i, p := range pb.fn.Signature.Parameters {
		sym := &scope.Symbol{Kind: scope.KindVariable, Name: pb.paramNames[i], Type: p.Type, Span: pb.raw.Span()}
		fnScope.Declare(sym)
		params[i] = sym
	}
	pb.fn.Params = params
	pb.fn.Body = a.resolveBlock(pb.raw, fnScope, pb.returnType)
}
