package types

import (
	"sort"
	"sync"
)

// Table maps identifiers to their inferred types. A Table is built fresh for
// every analysis pass; it is safe for concurrent use but is never shared
// between passes.
type Table struct {
	mu   sync.Mutex
	vars map[string]Type
}

func NewTable() *Table {
	return &Table{vars: make(map[string]Type)}
}

// Init seeds the table with the builtin functions and returns it.
func (t *Table) Init() *Table {
	for name, typ := range builtins {
		t.Define(name, typ)
	}
	return t
}

var builtins = map[string]Type{
	"print": &Func{Params: []Type{Any}, Result: Unit},
	"len":   &Func{Params: []Type{Str}, Result: Int},
	"itos":  &Func{Params: []Type{Int}, Result: Str},
	"abs":   &Func{Params: []Type{Int}, Result: Int},
}

// IsBuiltin reports whether name is one of the predeclared functions.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (t *Table) Define(name string, typ Type) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vars[name] = typ
}

func (t *Table) Lookup(name string) (Type, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	typ, ok := t.vars[name]
	return typ, ok
}

// Names returns a sorted snapshot of every identifier in the table.
func (t *Table) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.vars))
	for name := range t.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.vars)
}
