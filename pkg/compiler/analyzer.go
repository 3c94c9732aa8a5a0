package compiler

import "github.com/saaam-lang/saaamc/pkg/diag"

// intrinsicArity is the fixed exact-argument-count expectation for the
// keyboard_check family (§4.4). A call with a different argument count
// produces a WARNING, never an ERROR: arity mismatches are host-contract
// concerns, not syntax errors.
var intrinsicArity = map[string]int{
	"keyboard_check":          1,
	"keyboard_check_pressed":  1,
	"keyboard_check_released": 1,
}

// intrinsicMinArity is the minimum-argument-count expectation for
// intrinsics that accept extra trailing arguments (§4.4: draw_sprite and
// draw_text "expect ≥3 arguments"). A call with fewer warns; one with more
// is accepted without comment.
var intrinsicMinArity = map[string]int{
	"draw_sprite": 3,
	"draw_text":   3,
}

// Analyzer performs the static pass over a parsed Program: declared/used
// tracking via a SymbolTable, plus the small set of intrinsic-call lints
// (§4.4). It never mutates the AST; it only reports diagnostics.
type Analyzer struct {
	errors *diag.Sink
	table  *SymbolTable
}

// NewAnalyzer creates an Analyzer reporting into errors.
func NewAnalyzer(errors *diag.Sink) *Analyzer {
	return &Analyzer{errors: errors, table: NewSymbolTable()}
}

// Analyze walks prog, declaring and resolving bindings and linting intrinsic
// calls. It returns the SymbolTable it built, so the facade (or a caller
// inspecting results) can render it deterministically.
func (a *Analyzer) Analyze(prog *Program) *SymbolTable {
	// First pass: hoist top-level function and var declarations so forward
	// references between top-level statements resolve (§4.4: functions may
	// call one another regardless of declaration order).
	for _, stmt := range prog.Body {
		a.hoist(stmt)
	}

	for _, stmt := range prog.Body {
		a.walkStmt(stmt)
	}

	a.reportUnused(a.table.global, "")
	return a.table
}

func (a *Analyzer) hoist(stmt Stmt) {
	switch s := stmt.(type) {
	case *FuncDecl:
		if a.table.Declare(s.Name, BindMutable) {
			a.errors.Warn(s.Pos(), "%q is already declared", s.Name)
		}
	case *VarDecl:
		if a.table.Declare(s.Name, s.Form) {
			a.errors.Warn(s.Pos(), "%q is already declared", s.Name)
		}
	}
}

func (a *Analyzer) reportUnused(s *scope, context string) {
	for _, name := range s.Unused() {
		a.errors.Warn(0, "%q is declared but never used%s", name, context)
	}
}

func (a *Analyzer) walkStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		// Top-level VarDecls were already hoisted; function-local ones are
		// declared here, at the point of the statement.
		if len(a.table.stack) > 0 {
			if a.table.Declare(s.Name, s.Form) {
				a.errors.Warn(s.Pos(), "%q is already declared", s.Name)
			}
		}
		if s.Init != nil {
			a.walkExpr(s.Init)
		}

	case *FuncDecl:
		a.table.EnterScope()
		for _, param := range s.Params {
			a.table.Declare(param, BindMutable)
		}
		for _, bodyStmt := range s.Body.Stmts {
			a.walkStmt(bodyStmt)
		}
		a.reportUnused(a.table.current(), " in function "+s.Name)
		a.table.ExitScope()

	case *Block:
		for _, bodyStmt := range s.Stmts {
			a.walkStmt(bodyStmt)
		}

	case *If:
		a.walkExpr(s.Cond)
		a.walkStmt(s.Then)
		if s.Else != nil {
			a.walkStmt(s.Else)
		}

	case *For:
		if s.Init != nil {
			a.walkStmt(s.Init)
		}
		a.walkExpr(s.Cond)
		a.walkStmt(s.Body)
		if s.Post != nil {
			a.walkStmt(s.Post)
		}

	case *While:
		a.walkExpr(s.Cond)
		a.walkStmt(s.Body)

	case *DoWhile:
		a.walkStmt(s.Body)
		a.walkExpr(s.Cond)

	case *Switch:
		a.walkExpr(s.Target)
		for _, c := range s.Cases {
			if c.Test != nil {
				a.walkExpr(c.Test)
			}
			for _, bodyStmt := range c.Body {
				a.walkStmt(bodyStmt)
			}
		}

	case *Return:
		if s.Value != nil {
			a.walkExpr(s.Value)
		}

	case *ExprStmt:
		a.walkExpr(s.E)

	case *Break, *Continue, *Empty:
		// No bindings involved.
	}
}

func (a *Analyzer) walkExpr(expr Expr) {
	switch e := expr.(type) {
	case *Identifier:
		if !a.table.Resolve(e.Name) {
			a.errors.Warn(e.Pos(), "%q is used but not declared", e.Name)
		}

	case *Assign:
		a.walkExpr(e.Target)
		a.walkExpr(e.Value)

	case *Binary:
		a.walkExpr(e.Left)
		a.walkExpr(e.Right)

	case *Unary:
		a.walkExpr(e.Right)

	case *Call:
		a.walkExpr(e.Callee)
		for _, arg := range e.Args {
			a.walkExpr(arg)
		}
		a.lintArity(e)

	case *Member:
		a.walkExpr(e.Object)
		if e.Computed {
			a.walkExpr(e.Property)
		}
		// A non-computed Property is a field name, not a binding reference.

	case *ThisRef, *Literal:
		// No bindings involved.

	case *ObjectLit:
		for _, prop := range e.Properties {
			if prop.Computed {
				a.walkExpr(prop.Key)
			}
			a.walkExpr(prop.Value)
		}

	case *ArrayLit:
		for _, el := range e.Elements {
			if el != nil {
				a.walkExpr(el)
			}
		}

	case *Vec2Lit:
		a.walkExpr(e.X)
		a.walkExpr(e.Y)

	case *Vec3Lit:
		a.walkExpr(e.X)
		a.walkExpr(e.Y)
		a.walkExpr(e.Z)
	}
}

// lintArity warns when a call to one of the arity-checked intrinsics
// supplies fewer (or, for the exact-arity family, a different number of)
// arguments than expected (§4.4).
func (a *Analyzer) lintArity(call *Call) {
	ident, ok := call.Callee.(*Identifier)
	if !ok {
		return
	}
	if want, ok := intrinsicArity[ident.Name]; ok {
		if len(call.Args) != want {
			a.errors.Warn(call.Pos(), "%s expects %d argument(s), got %d", ident.Name, want, len(call.Args))
		}
		return
	}
	if min, ok := intrinsicMinArity[ident.Name]; ok {
		if len(call.Args) < min {
			a.errors.Warn(call.Pos(), "%s expects at least %d argument(s), got %d", ident.Name, min, len(call.Args))
		}
	}
}
