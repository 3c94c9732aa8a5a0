package compiler

import "github.com/saaam-lang/saaamc/pkg/diag"

// Result is the facade's output shape (§4.6): either a successful
// compilation with emitted Output and a non-nil AST, or a failed one whose
// Output is the fixed failure-comment form and AST is nil.
type Result struct {
	Success  bool
	Output   string
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
	AST      *Program
}

// Compile runs the full pipeline over source: lex, parse (catching the
// parse-abort exception), analyse, and — only if no ERROR diagnostic was
// produced — emit (§4.6). Each call gets its own Lexer, Parser, Analyzer,
// and diagnostics Sink; nothing is shared across calls, so concurrent
// invocations with distinct source strings are independently safe (§5).
func Compile(source string) Result {
	errors := diag.NewSink(source)

	tokens := Lex(source, errors)

	prog, parseErr := Parse(tokens, errors)
	if parseErr != nil {
		return assembleFailure(errors, nil)
	}

	analyzer := NewAnalyzer(errors)
	analyzer.Analyze(prog)

	if errors.HasErrors() {
		return assembleFailure(errors, prog)
	}

	output := NewEmitter().Emit(prog)

	return Result{
		Success:  true,
		Output:   output,
		Errors:   errors.Errors(),
		Warnings: errors.Warnings(),
		AST:      prog,
	}
}

// assembleFailure builds the fixed failure result (§4.5, §4.6): Output is a
// comment header listing every ERROR diagnostic's message. AST carries
// whatever the parser recovered — non-nil when parsing resynchronised past a
// recoverable defect (§8 property 3: the surrounding well-formed statements
// must still show up in Program.body), nil only when parsing fatally
// aborted and never produced a tree at all.
func assembleFailure(errors *diag.Sink, prog *Program) Result {
	errs := errors.Errors()
	messages := make([]string, len(errs))
	for i, d := range errs {
		messages[i] = d.Message
	}
	return Result{
		Success:  false,
		Output:   EmitFailure(messages),
		Errors:   errs,
		Warnings: errors.Warnings(),
		AST:      prog,
	}
}
