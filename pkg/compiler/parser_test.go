package compiler

import (
	"testing"

	"github.com/saaam-lang/saaamc/pkg/diag"
)

func parseSource(t *testing.T, src string) (*Program, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(src)
	toks := Lex(src, sink)
	prog, err := Parse(toks, sink)
	if err != nil {
		t.Fatalf("Parse(%q) returned fatal error: %v", src, err)
	}
	return prog, sink
}

func TestParseVarDecl(t *testing.T) {
	prog, sink := parseSource(t, "var x = 1;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*VarDecl)
	if !ok {
		t.Fatalf("got %T, want *VarDecl", prog.Body[0])
	}
	if decl.Name != "x" || decl.Form != BindMutable {
		t.Fatalf("got %+v", decl)
	}
	lit, ok := decl.Init.(*Literal)
	if !ok || lit.Kind != LitNumber || lit.Raw != "1" {
		t.Fatalf("got init %+v", decl.Init)
	}
}

func TestParseMissingSemicolonIsWarningNotError(t *testing.T) {
	_, sink := parseSource(t, "var x = 1")
	if sink.HasErrors() {
		t.Fatalf("missing semicolon must not be an ERROR, got %v", sink.Errors())
	}
	if len(sink.Warnings()) != 1 {
		t.Fatalf("got %d warnings, want 1", len(sink.Warnings()))
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog, sink := parseSource(t, "function add(a, b) { return a + b; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	fn, ok := prog.Body[0].(*FuncDecl)
	if !ok {
		t.Fatalf("got %T, want *FuncDecl", prog.Body[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("got %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body.Stmts))
	}
}

func TestParseLifecycleParamLint(t *testing.T) {
	_, sink := parseSource(t, "function step() { }")
	found := false
	for _, w := range sink.Warnings() {
		if w.Severity == diag.Warning {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a warning for a zero-parameter step function")
	}
}

func TestParsePrecedence(t *testing.T) {
	prog, sink := parseSource(t, "var r = 1 + 2 * 3;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	decl := prog.Body[0].(*VarDecl)
	bin, ok := decl.Init.(*Binary)
	if !ok || bin.Op != PLUS {
		t.Fatalf("got %+v, want top-level +", decl.Init)
	}
	right, ok := bin.Right.(*Binary)
	if !ok || right.Op != STAR {
		t.Fatalf("got right %+v, want *", bin.Right)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	prog, sink := parseSource(t, "var r = 0; a = b = 1;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	stmt := prog.Body[1].(*ExprStmt)
	assign, ok := stmt.E.(*Assign)
	if !ok {
		t.Fatalf("got %T, want *Assign", stmt.E)
	}
	if _, ok := assign.Value.(*Assign); !ok {
		t.Fatalf("got value %T, want nested *Assign", assign.Value)
	}
}

func TestParseForLoopMissingCondSynthesisesTrue(t *testing.T) {
	prog, sink := parseSource(t, "for (;;) { break; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	forStmt := prog.Body[0].(*For)
	lit, ok := forStmt.Cond.(*Literal)
	if !ok || lit.Kind != LitBool || !lit.Bool {
		t.Fatalf("got cond %+v, want synthesised Literal(true)", forStmt.Cond)
	}
	if lit.Pos() != forStmt.Pos() {
		t.Fatalf("synthesised literal position %d != for position %d", lit.Pos(), forStmt.Pos())
	}
}

func TestParseObjectLiteralShorthandAndMissingComma(t *testing.T) {
	prog, sink := parseSource(t, "var o = { x, y: 2 z: 3 };")
	decl := prog.Body[0].(*VarDecl)
	obj, ok := decl.Init.(*ObjectLit)
	if !ok {
		t.Fatalf("got %T, want *ObjectLit", decl.Init)
	}
	if len(obj.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(obj.Properties))
	}
	shorthandKey := obj.Properties[0].Key.(*Identifier)
	shorthandVal := obj.Properties[0].Value.(*Identifier)
	if shorthandKey.Name != "x" || shorthandVal.Name != "x" {
		t.Fatalf("got shorthand %+v / %+v, want x/x", shorthandKey, shorthandVal)
	}
	if len(sink.Warnings()) == 0 {
		t.Fatal("expected a warning for the missing comma before z")
	}
	if sink.HasErrors() {
		t.Fatalf("missing comma must not be an ERROR, got %v", sink.Errors())
	}
}

func TestParseArrayLiteralHoles(t *testing.T) {
	prog, sink := parseSource(t, "var a = [1, , 3];")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	decl := prog.Body[0].(*VarDecl)
	arr := decl.Init.(*ArrayLit)
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Elements))
	}
	if arr.Elements[1] != nil {
		t.Fatalf("got %+v at hole position, want nil", arr.Elements[1])
	}
}

func TestParseVec2AndVec3Literals(t *testing.T) {
	prog, sink := parseSource(t, "var p = vec2(1, 2); var q = vec3(1, 2, 3);")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	v2 := prog.Body[0].(*VarDecl).Init.(*Vec2Lit)
	if v2.X.(*Literal).Raw != "1" || v2.Y.(*Literal).Raw != "2" {
		t.Fatalf("got %+v", v2)
	}
	v3 := prog.Body[1].(*VarDecl).Init.(*Vec3Lit)
	if v3.Z.(*Literal).Raw != "3" {
		t.Fatalf("got %+v", v3)
	}
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	prog, sink := parseSource(t, "var x = ; var y = 2;")
	if !sink.HasErrors() {
		t.Fatal("expected an error for the missing expression")
	}
	// Recovery should still find the second declaration.
	found := false
	for _, stmt := range prog.Body {
		if decl, ok := stmt.(*VarDecl); ok && decl.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to parse the y declaration, got %+v", prog.Body)
	}
}

func TestParseUnexpectedEOFInsideBlockIsFatal(t *testing.T) {
	sink := diag.NewSink("function f() { var x = 1;")
	toks := Lex("function f() { var x = 1;", sink)
	_, err := Parse(toks, sink)
	if err == nil {
		t.Fatal("expected a fatal parse error for unterminated block")
	}
	if !sink.HasErrors() {
		t.Fatal("expected an ERROR diagnostic for unterminated block")
	}
}

func TestParseLifecycleFunctionNamesAreDomainKeywords(t *testing.T) {
	src := `
function create() { }
function step(dt) { }
function draw(ctx) { }
function on_collision(other) { }
`
	prog, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(prog.Body) != 4 {
		t.Fatalf("got %d declarations, want 4", len(prog.Body))
	}
	names := []string{"create", "step", "draw", "on_collision"}
	for i, want := range names {
		fn, ok := prog.Body[i].(*FuncDecl)
		if !ok || fn.Name != want {
			t.Fatalf("got %+v at %d, want FuncDecl named %q", prog.Body[i], i, want)
		}
	}
}

func TestParseDomainKeywordAsVarNameAndParam(t *testing.T) {
	prog, sink := parseSource(t, "var state = 1; function f(signal) { return signal; }")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	decl := prog.Body[0].(*VarDecl)
	if decl.Name != "state" {
		t.Fatalf("got %+v, want var named state", decl)
	}
	fn := prog.Body[1].(*FuncDecl)
	if len(fn.Params) != 1 || fn.Params[0] != "signal" {
		t.Fatalf("got %+v, want one param named signal", fn)
	}
}

func TestParseDomainKeywordAsMemberName(t *testing.T) {
	prog, sink := parseSource(t, "var x = this.state;")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	decl := prog.Body[0].(*VarDecl)
	member, ok := decl.Init.(*Member)
	if !ok {
		t.Fatalf("got %T, want *Member", decl.Init)
	}
	prop, ok := member.Property.(*Identifier)
	if !ok || prop.Name != "state" {
		t.Fatalf("got %+v, want member property named state", member.Property)
	}
}

func TestParseSwitch(t *testing.T) {
	src := `switch (x) {
case 1:
  break;
default:
  break;
}`
	prog, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	sw := prog.Body[0].(*Switch)
	if len(sw.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Test == nil {
		t.Fatal("first case should have a Test")
	}
	if sw.Cases[1].Test != nil {
		t.Fatal("default case should have a nil Test")
	}
}

func TestParseDoWhileMissingSemicolonWarns(t *testing.T) {
	_, sink := parseSource(t, "do { x = 1; } while (x < 10)")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if len(sink.Warnings()) != 1 {
		t.Fatalf("got %d warnings, want 1", len(sink.Warnings()))
	}
}
