package resolver

import "github.com/colang-project/colang/internal/sema/stype"

// builtins holds the handful of primitive types CO's grammar never
// declares itself: there is no type-definition syntax for them, and no
// conversion-declaration syntax at all. The resolver bootstraps them
// directly in Go, once, before registering the prelude translation
// unit's own (native) function declarations into the same root scope.
type builtins struct {
	void, bool_, int_, float_, string_ *stype.Type
}

func newBuiltins(universe *stype.Universe) *builtins {
	b := &builtins{
		void:    stype.NewPrimitive("void", true),
		bool_:   stype.NewPrimitive("bool", true),
		int_:    stype.NewPrimitive("int", true),
		float_:  stype.NewPrimitive("float", true),
		string_: stype.NewPrimitive("string", true),
	}

	// int widens to float; nothing else converts implicitly, and there
	// is no numeric tower beyond this single widening.
	b.int_.RegisterConversion(b.float_)

	for _, t := range []*stype.Type{b.void, b.bool_, b.int_, b.float_, b.string_} {
		universe.Register(t)
	}
	return b
}

func (b *builtins) isVoid(t *stype.Type) bool {
	return t != nil && t.Name == b.void.Name
}
