// Package diag implements the compiler's diagnostics sink: an ordered,
// append-only list of errors and warnings, each bound to a source position.
package diag

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Pos is a byte offset into the source, together with the line/column it
// resolves to and the trimmed source line it falls on. Line and Col are
// 1-based; Col counts bytes, not runes, matching the lexer's own scanning.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// Diagnostic is a single structured compiler message.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      Pos
	Snippet  string // trimmed source line the position falls on, if known
}

func (d Diagnostic) String() string {
	if d.Snippet != "" {
		return fmt.Sprintf("%s: %d:%d: %s\n  |> %s", d.Severity, d.Pos.Line, d.Pos.Col, d.Message, d.Snippet)
	}
	return fmt.Sprintf("%s: %d:%d: %s", d.Severity, d.Pos.Line, d.Pos.Col, d.Message)
}

// Sink accumulates diagnostics in insertion order. It never aborts a
// compilation itself; that decision belongs to the caller driving the
// pipeline stages.
type Sink struct {
	diags []Diagnostic
	lines []int // byte offset of the start of each line, built lazily
	src   string
}

// NewSink creates a Sink over src, used to resolve byte offsets to
// line/column and to slice out snippet text for reported diagnostics.
func NewSink(src string) *Sink {
	s := &Sink{src: src}
	s.lines = append(s.lines, 0)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

// resolve turns a byte offset into a Pos carrying line, column, and snippet.
func (s *Sink) resolve(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.src) {
		offset = len(s.src)
	}

	// Binary search would be overkill for typical script sizes; a linear
	// scan over line starts keeps this simple and the behaviour obvious.
	line := 1
	lineStart := 0
	for i, start := range s.lines {
		if start > offset {
			break
		}
		line = i + 1
		lineStart = start
	}

	return Pos{Offset: offset, Line: line, Col: offset - lineStart + 1}
}

func (s *Sink) snippet(pos Pos) string {
	lineStart := pos.Offset - (pos.Col - 1)
	lineEnd := lineStart
	for lineEnd < len(s.src) && s.src[lineEnd] != '\n' {
		lineEnd++
	}
	if lineStart < 0 || lineStart > len(s.src) || lineEnd > len(s.src) || lineStart > lineEnd {
		return ""
	}
	line := s.src[lineStart:lineEnd]
	// Trim trailing \r for CRLF sources.
	for len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}

// Error appends an ERROR diagnostic at the given byte offset.
func (s *Sink) Error(offset int, format string, args ...any) {
	s.add(Error, offset, fmt.Sprintf(format, args...))
}

// Warn appends a WARNING diagnostic at the given byte offset.
func (s *Sink) Warn(offset int, format string, args ...any) {
	s.add(Warning, offset, fmt.Sprintf(format, args...))
}

func (s *Sink) add(sev Severity, offset int, msg string) {
	pos := s.resolve(offset)
	s.diags = append(s.diags, Diagnostic{
		Severity: sev,
		Message:  msg,
		Pos:      pos,
		Snippet:  s.snippet(pos),
	})
}

// HasErrors reports whether any ERROR-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns all accumulated diagnostics in insertion order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Errors returns only the ERROR-severity diagnostics, in insertion order.
func (s *Sink) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diags {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the WARNING-severity diagnostics, in insertion order.
func (s *Sink) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diags {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}
