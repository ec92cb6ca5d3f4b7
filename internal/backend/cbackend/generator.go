// Package cbackend is the minimal reference C99 backend: enough to turn
// a resolved Program into compilable C source and exercise the
// backend.Generator contract. A complete, optimizing C emitter is
// explicitly out of scope; this is an Options-configured Generator
// walking the resolved tree into a string builder.
package cbackend

import (
	"fmt"
	"strings"

	"github.com/colang-project/colang/internal/backend"
	"github.com/colang-project/colang/internal/lexer"
	"github.com/colang-project/colang/internal/sema/resolver"
	"github.com/colang-project/colang/internal/sema/stype"
)

// Generator is the minimal C99 backend.Generator implementation.
type Generator struct{}

// New creates a C99 Generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return "c99" }

func (g *Generator) Generate(prog *resolver.Program, opts backend.Options) (string, error) {
	var b strings.Builder
	b.WriteString("#include <stdio.h>\n#include <stdbool.h>\n\n")

	for _, t := range prog.Types {
		if t.Kind != stype.KindStruct {
			continue
		}
		// CO structs carry no data fields: an opaque empty struct is
		// sufficient to give the type a distinct C identity.
		fmt.Fprintf(&b, "typedef struct %s { int _unused; } %s;\n", t.Name, t.Name)
	}
	if len(prog.Types) > 0 {
		b.WriteString("\n")
	}

	for _, fn := range prog.Functions {
		if err := g.emitSignature(&b, fn); err != nil {
			return "", err
		}
		if fn.Native {
			b.WriteString(";\n\n")
			continue
		}
		b.WriteString(" {\n")
		if opts.EmitComments {
			fmt.Fprintf(&b, "    /* %s */\n", fn.Name)
		}
		g.emitBlock(&b, fn.Body, 1)
		b.WriteString("}\n\n")
	}

	return b.String(), nil
}

func (g *Generator) emitSignature(b *strings.Builder, fn *resolver.ResolvedFunction) error {
	ret, err := cType(fn.Signature.ReturnType)
	if err != nil {
		return err
	}
	name := fn.Name
	if fn.ReceiverType != nil {
		name = fn.ReceiverType.Name + "_" + fn.Name
	}

	params := make([]string, 0, len(fn.Params)+1)
	if fn.ReceiverType != nil {
		params = append(params, fmt.Sprintf("%s *self", fn.ReceiverType.Name))
	}
	for i, p := range fn.Signature.Parameters {
		pt, err := cType(p.Type)
		if err != nil {
			return err
		}
		paramName := p.Name
		if i < len(fn.Params) && fn.Params[i] != nil {
			paramName = fn.Params[i].Name
		}
		params = append(params, fmt.Sprintf("%s %s", pt, paramName))
	}
	if len(params) == 0 {
		params = append(params, "void")
	}

	fmt.Fprintf(b, "%s %s(%s)", ret, name, strings.Join(params, ", "))
	return nil
}

func (g *Generator) emitBlock(b *strings.Builder, block *resolver.CodeBlock, depth int) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		g.emitStmt(b, stmt, depth)
	}
}

func indent(depth int) string { return strings.Repeat("    ", depth) }

func (g *Generator) emitStmt(b *strings.Builder, stmt resolver.Stmt, depth int) {
	pad := indent(depth)
	switch s := stmt.(type) {
	case *resolver.CodeBlock:
		fmt.Fprintf(b, "%s{\n", pad)
		g.emitBlock(b, s, depth+1)
		fmt.Fprintf(b, "%s}\n", pad)

	case *resolver.IfStmt:
		fmt.Fprintf(b, "%sif (%s) {\n", pad, g.emitExpr(s.Cond))
		g.emitBlock(b, s.Then, depth+1)
		if s.Else == nil {
			fmt.Fprintf(b, "%s}\n", pad)
			return
		}
		fmt.Fprintf(b, "%s} else ", pad)
		switch e := s.Else.(type) {
		case *resolver.IfStmt:
			g.emitStmt(b, e, depth)
		case *resolver.CodeBlock:
			b.WriteString("{\n")
			g.emitBlock(b, e, depth+1)
			fmt.Fprintf(b, "%s}\n", pad)
		}

	case *resolver.WhileStmt:
		fmt.Fprintf(b, "%swhile (%s) {\n", pad, g.emitExpr(s.Cond))
		g.emitBlock(b, s.Body, depth+1)
		fmt.Fprintf(b, "%s}\n", pad)

	case *resolver.ReturnStmt:
		if s.Value == nil {
			fmt.Fprintf(b, "%sreturn;\n", pad)
			return
		}
		fmt.Fprintf(b, "%sreturn %s;\n", pad, g.emitExpr(s.Value))

	case *resolver.ExprStmt:
		fmt.Fprintf(b, "%s%s;\n", pad, g.emitExpr(s.Expr))

	case *resolver.VarDeclStmt:
		ty, err := cType(s.Symbol.Type)
		if err != nil {
			ty = "/* unknown */ int"
		}
		if s.Init == nil {
			fmt.Fprintf(b, "%s%s %s;\n", pad, ty, s.Symbol.Name)
			return
		}
		fmt.Fprintf(b, "%s%s %s = %s;\n", pad, ty, s.Symbol.Name, g.emitExpr(s.Init))
	}
}

func (g *Generator) emitExpr(e resolver.Expr) string {
	switch n := e.(type) {
	case *resolver.IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *resolver.FloatLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *resolver.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *resolver.BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *resolver.VariableRef:
		return n.Symbol.Name
	case *resolver.Call:
		args := make([]string, 0, len(n.Arguments)+1)
		name := n.Name
		if n.Receiver != nil {
			args = append(args, "&"+g.emitExpr(n.Receiver))
			name = n.Receiver.Type().Name + "_" + n.Name
		}
		for _, a := range n.Arguments {
			args = append(args, g.emitExpr(a))
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	case *resolver.Postfix:
		return fmt.Sprintf("%s%s", g.emitExpr(n.Operand), opString(n.Operator))
	case *resolver.Unary:
		return fmt.Sprintf("%s%s", opString(n.Operator), g.emitExpr(n.Operand))
	case *resolver.Binary:
		return fmt.Sprintf("(%s %s %s)", g.emitExpr(n.Left), opString(n.Operator), g.emitExpr(n.Right))
	case *resolver.Assign:
		return fmt.Sprintf("%s = %s", g.emitExpr(n.Target), g.emitExpr(n.Value))
	case *resolver.Coercion:
		ty, err := cType(n.Type())
		if err != nil {
			return g.emitExpr(n.Inner)
		}
		return fmt.Sprintf("(%s)(%s)", ty, g.emitExpr(n.Inner))
	case *resolver.ErrorExpr:
		return "0 /* unresolved */"
	default:
		return "0 /* unknown */"
	}
}

func opString(k lexer.Kind) string {
	switch k {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LE:
		return "<="
	case lexer.GE:
		return ">="
	case lexer.AND_AND:
		return "&&"
	case lexer.OR_OR:
		return "||"
	case lexer.BANG:
		return "!"
	case lexer.PLUS_PLUS:
		return "++"
	case lexer.MINUS_MINUS:
		return "--"
	default:
		return "?"
	}
}

func cType(t *stype.Type) (string, error) {
	if t == nil {
		return "void", nil
	}
	switch t.Kind {
	case stype.KindError:
		return "", fmt.Errorf("cbackend: cannot emit the error type")
	case stype.KindStruct:
		return t.Name, nil
	}
	switch t.Name {
	case "void":
		return "void", nil
	case "bool":
		return "bool", nil
	case "int":
		return "int", nil
	case "float":
		return "double", nil
	case "string":
		return "const char *", nil
	default:
		return "", fmt.Errorf("cbackend: no C type mapping for '%s'", t.Name)
	}
}
