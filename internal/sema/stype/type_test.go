package stype

import "testing"

func TestSubtypeOfReflexive(t *testing.T) {
	intTy := NewPrimitive("int", true)
	if !intTy.SubtypeOf(intTy) {
		t.Error("every type must be a subtype of itself")
	}
}

func TestSubtypeOfErrorAbsorbs(t *testing.T) {
	intTy := NewPrimitive("int", true)
	errTy := &Type{Kind: KindError, Name: "<error>"}

	if !intTy.SubtypeOf(errTy) {
		t.Error("every type must be a subtype of the error type")
	}
	if !errTy.SubtypeOf(intTy) {
		t.Error("the error type must be a subtype of everything, to avoid cascading diagnostics")
	}
}

func TestSubtypeOfConversion(t *testing.T) {
	intTy := NewPrimitive("int", true)
	floatTy := NewPrimitive("float", true)
	intTy.RegisterConversion(floatTy)

	if !intTy.SubtypeOf(floatTy) {
		t.Error("int should be a subtype of float after registering the conversion")
	}
	if floatTy.SubtypeOf(intTy) {
		t.Error("float must not be a subtype of int; the conversion is one-directional")
	}
}

func TestLeastUpperBoundDirectSubtype(t *testing.T) {
	universe := NewUniverse()
	intTy := NewPrimitive("int", true)
	floatTy := NewPrimitive("float", true)
	intTy.RegisterConversion(floatTy)
	universe.Register(intTy)
	universe.Register(floatTy)

	if got := LeastUpperBound(intTy, floatTy, universe); got != floatTy {
		t.Errorf("LUB(int, float) = %v, want float", got)
	}
	if got := LeastUpperBound(floatTy, intTy, universe); got != floatTy {
		t.Errorf("LUB(float, int) = %v, want float", got)
	}
}

func TestLeastUpperBoundSameType(t *testing.T) {
	universe := NewUniverse()
	boolTy := NewPrimitive("bool", true)
	universe.Register(boolTy)

	if got := LeastUpperBound(boolTy, boolTy, universe); got != boolTy {
		t.Errorf("LUB(bool, bool) = %v, want bool", got)
	}
}

func TestLeastUpperBoundNoCommonSupertype(t *testing.T) {
	universe := NewUniverse()
	boolTy := NewPrimitive("bool", true)
	stringTy := NewPrimitive("string", true)
	universe.Register(boolTy)
	universe.Register(stringTy)

	if got := LeastUpperBound(boolTy, stringTy, universe); got != nil {
		t.Errorf("expected no common supertype, got %v", got)
	}
}

func TestMethodOverloadSetGrows(t *testing.T) {
	pointTy := NewStruct("Point", false)
	intTy := NewPrimitive("int", true)
	sig1 := NewFunction(nil, intTy)
	sig2 := NewFunction([]Param{{Name: "n", Type: intTy}}, intTy)

	pointTy.AddMethod("getX", sig1)
	pointTy.AddMethod("getX", sig2)

	ov, ok := pointTy.Method("getX")
	if !ok {
		t.Fatal("expected getX to be registered")
	}
	if len(ov.Entries) != 2 {
		t.Fatalf("expected 2 overload entries, got %d", len(ov.Entries))
	}
}

func TestMethodNotInherited(t *testing.T) {
	// Methods are not inherited: a struct with no AddMethod calls of its
	// own reports no method for any name, regardless of any other type in
	// the universe.
	emptyTy := NewStruct("Empty", false)
	if _, ok := emptyTy.Method("anything"); ok {
		t.Error("expected no methods on a struct with none registered")
	}
}

func TestUniverseRegisterRejectsDuplicateName(t *testing.T) {
	u := NewUniverse()
	a := NewPrimitive("int", true)
	b := NewPrimitive("int", true)

	if !u.Register(a) {
		t.Fatal("first registration of a fresh name must succeed")
	}
	if u.Register(b) {
		t.Error("second registration under the same name must fail")
	}
}

func TestUniverseLookup(t *testing.T) {
	u := NewUniverse()
	intTy := NewPrimitive("int", true)
	u.Register(intTy)

	got, ok := u.Lookup("int")
	if !ok || got != intTy {
		t.Errorf("Lookup(int) = (%v, %v), want (%v, true)", got, ok, intTy)
	}
	if _, ok := u.Lookup("nope"); ok {
		t.Error("expected Lookup of an unregistered name to fail")
	}
}
