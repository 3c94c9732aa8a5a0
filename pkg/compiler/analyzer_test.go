package compiler

import (
	"testing"

	"github.com/saaam-lang/saaamc/pkg/diag"
)

func analyzeSource(t *testing.T, src string) *diag.Sink {
	t.Helper()
	sink := diag.NewSink(src)
	toks := Lex(src, sink)
	prog, err := Parse(toks, sink)
	if err != nil {
		t.Fatalf("Parse(%q) returned fatal error: %v", src, err)
	}
	NewAnalyzer(sink).Analyze(prog)
	return sink
}

func hasWarningContaining(sink *diag.Sink, substr string) bool {
	for _, w := range sink.Warnings() {
		if containsString(w.Message, substr) {
			return true
		}
	}
	return false
}

func containsString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestAnalyzeUndeclaredUseWarns(t *testing.T) {
	sink := analyzeSource(t, "function f() { return y; }")
	if !hasWarningContaining(sink, "used but not declared") {
		t.Fatalf("got warnings %v, want one about y being undeclared", sink.Warnings())
	}
}

func TestAnalyzeDuplicateDeclarationWarns(t *testing.T) {
	sink := analyzeSource(t, "var x = 1; var x = 2;")
	if !hasWarningContaining(sink, "already declared") {
		t.Fatalf("got warnings %v, want one about x already declared", sink.Warnings())
	}
}

func TestAnalyzeUnusedDeclarationWarns(t *testing.T) {
	sink := analyzeSource(t, "function f() { var unused = 1; return 0; }")
	if !hasWarningContaining(sink, "never used") {
		t.Fatalf("got warnings %v, want one about unused being unused", sink.Warnings())
	}
}

func TestAnalyzeIntrinsicNamesNeverWarnUndeclared(t *testing.T) {
	sink := analyzeSource(t, "function step(dt) { position.x = delta_time; }")
	if hasWarningContaining(sink, "used but not declared") {
		t.Fatalf("intrinsic names must never warn as undeclared, got %v", sink.Warnings())
	}
}

func TestAnalyzeFunctionsSeeGlobalsButNotEachOthersLocals(t *testing.T) {
	sink := analyzeSource(t, `
var shared = 1;
function a() { var local = 2; return shared; }
function b() { return local; }
`)
	if hasWarningContaining(sink, `"shared" is used but not declared`) {
		t.Fatalf("shared is global, must resolve: %v", sink.Warnings())
	}
	if !hasWarningContaining(sink, `"local" is used but not declared`) {
		t.Fatalf("local belongs to a() only, must not resolve in b(): %v", sink.Warnings())
	}
}

func TestAnalyzeIntrinsicArityMismatchWarns(t *testing.T) {
	sink := analyzeSource(t, `function step(dt) { keyboard_check(vk_left, vk_right); }`)
	if !hasWarningContaining(sink, "expects 1 argument") {
		t.Fatalf("got warnings %v, want an arity mismatch warning", sink.Warnings())
	}
}

func TestAnalyzeIntrinsicArityCorrectCountIsSilent(t *testing.T) {
	sink := analyzeSource(t, `function step(dt) { keyboard_check(vk_left); }`)
	if hasWarningContaining(sink, "expects") {
		t.Fatalf("got unexpected arity warning: %v", sink.Warnings())
	}
}

func TestAnalyzeDrawIntrinsicMinArityMismatchWarns(t *testing.T) {
	sink := analyzeSource(t, `function draw(ctx) { draw_sprite(1, 2); }`)
	if !hasWarningContaining(sink, "expects at least 3 argument") {
		t.Fatalf("got warnings %v, want a minimum-arity warning", sink.Warnings())
	}
}

func TestAnalyzeDrawIntrinsicExtraArgumentsAreSilent(t *testing.T) {
	sink := analyzeSource(t, `function draw(ctx) { draw_sprite(1, 2, "frog", 3); }`)
	if hasWarningContaining(sink, "expects") {
		t.Fatalf("got unexpected arity warning: %v", sink.Warnings())
	}
}

func TestAnalyzeFunctionForwardReference(t *testing.T) {
	sink := analyzeSource(t, `
function a() { return b(); }
function b() { return 1; }
`)
	if hasWarningContaining(sink, "used but not declared") {
		t.Fatalf("forward function references must resolve: %v", sink.Warnings())
	}
}
