package types

import "strings"

// Type is a TypedAnt type.
type Type interface {
	String() string
}

type Basic int

const (
	Int Basic = iota
	Float
	Bool
	Str
	Unit
	// Any only appears as a builtin parameter type.
	Any
)

var basicNames = map[Basic]string{
	Int:   "int",
	Float: "float",
	Bool:  "bool",
	Str:   "str",
	Unit:  "unit",
	Any:   "any",
}

func (b Basic) String() string {
	return basicNames[b]
}

// Func is the type of a function value.
type Func struct {
	Params []Type
	Result Type
}

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(f.Result.String())
	return b.String()
}

// Identical reports whether a and b denote the same type.
func Identical(a, b Type) bool {
	fa, okA := a.(*Func)
	fb, okB := b.(*Func)
	if okA != okB {
		return false
	}
	if !okA {
		return a == b
	}
	if len(fa.Params) != len(fb.Params) || !Identical(fa.Result, fb.Result) {
		return false
	}
	for i := range fa.Params {
		if !Identical(fa.Params[i], fb.Params[i]) {
			return false
		}
	}
	return true
}

// assignable reports whether a value of type v may be used where t is expected.
func assignable(v, t Type) bool {
	if t == Any {
		return true
	}
	return Identical(v, t)
}

// LookupBasic resolves a type name written in source.
func LookupBasic(name string) (Type, bool) {
	for b, n := range basicNames {
		if n == name && b != Any {
			return b, true
		}
	}
	return nil, false
}
