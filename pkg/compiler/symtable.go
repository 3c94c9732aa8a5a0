package compiler

import (
	"sort"
	"strings"
)

// symbol records one binding's declaration form and whether it has been
// referenced anywhere after declaration.
type symbol struct {
	form BindingForm
	used bool
}

// scope is one level of the symbol table: the flat global scope, or a single
// function's flat parameter-and-local scope (§4.4: no block scoping).
type scope struct {
	names map[string]*symbol
}

func newScope() *scope {
	return &scope{names: make(map[string]*symbol)}
}

// SymbolTable tracks declared bindings across a global scope and a stack of
// function scopes. Functions see their own scope only; they do not see each
// other's locals, but every scope can reference the global scope and any
// intrinsic name (§4.4).
type SymbolTable struct {
	global *scope
	stack  []*scope
}

// NewSymbolTable creates an empty table with just the global scope active.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{global: newScope()}
}

// EnterScope pushes a new function scope.
func (t *SymbolTable) EnterScope() {
	t.stack = append(t.stack, newScope())
}

// ExitScope pops the innermost function scope.
func (t *SymbolTable) ExitScope() {
	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

func (t *SymbolTable) current() *scope {
	if len(t.stack) > 0 {
		return t.stack[len(t.stack)-1]
	}
	return t.global
}

// Declare records name in the current scope with the given form. It reports
// whether name was already declared in this exact scope (the caller turns
// that into a duplicate-declaration warning, §4.4).
func (t *SymbolTable) Declare(name string, form BindingForm) (alreadyDeclared bool) {
	scope := t.current()
	if _, ok := scope.names[name]; ok {
		return true
	}
	scope.names[name] = &symbol{form: form}
	return false
}

// Resolve reports whether name is visible from the current scope: declared
// in the current function scope, or in the global scope, or an intrinsic.
// On success it marks the binding used.
func (t *SymbolTable) Resolve(name string) bool {
	if isIntrinsicName(name) {
		return true
	}
	if sym, ok := t.current().names[name]; ok {
		sym.used = true
		return true
	}
	if len(t.stack) > 0 {
		if sym, ok := t.global.names[name]; ok {
			sym.used = true
			return true
		}
	}
	return false
}

// Unused returns the names declared in scope but never resolved, in
// deterministic sorted order (§4.4, §9: no map-iteration-order leakage).
func (s *scope) Unused() []string {
	var out []string
	for name, sym := range s.names {
		if !sym.used {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// String renders the table deterministically, sorted by scope depth then
// name, grounded on the same discipline as the teacher's own symbol-table
// dump: never iterate a map into output without sorting first.
func (t *SymbolTable) String() string {
	var sb strings.Builder
	writeScope := func(label string, s *scope) {
		names := make([]string, 0, len(s.names))
		for name := range s.names {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString(label)
		sb.WriteString(":\n")
		for _, name := range names {
			sym := s.names[name]
			sb.WriteString("  ")
			sb.WriteString(sym.form.String())
			sb.WriteString(" ")
			sb.WriteString(name)
			if !sym.used {
				sb.WriteString(" (unused)")
			}
			sb.WriteString("\n")
		}
	}
	writeScope("global", t.global)
	for i, s := range t.stack {
		writeScope(strings.Repeat(" ", i)+"func", s)
	}
	return sb.String()
}
