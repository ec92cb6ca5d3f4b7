// Package backend defines the contract between semantic analysis and a
// code generator. Only the contract and a minimal reference
// implementation (internal/backend/cbackend) live in this repository; a
// production-grade C emitter covering every CO construct is out of
// scope here.
package backend

import "github.com/colang-project/colang/internal/sema/resolver"

// Options configures a single Generate call.
type Options struct {
	// EmitComments writes a /* name */ comment as the first line inside
	// each generated function body.
	EmitComments bool
}

// Generator turns a fully resolved Program into target source text.
type Generator interface {
	// Name identifies the target, e.g. "c99".
	Name() string
	// Generate renders prog and returns the emitted source text.
	Generate(prog *resolver.Program, opts Options) (string, error)
}
