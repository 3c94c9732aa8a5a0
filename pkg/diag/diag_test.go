package diag

import "testing"

func TestSinkResolvesLineAndColumn(t *testing.T) {
	src := "line one\nline two\nline three"
	s := NewSink(src)
	s.Error(9, "boom") // first byte of "line two"

	errs := s.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Pos.Line != 2 || errs[0].Pos.Col != 1 {
		t.Fatalf("got %+v, want line 2 col 1", errs[0].Pos)
	}
	if errs[0].Snippet != "line two" {
		t.Fatalf("got snippet %q, want %q", errs[0].Snippet, "line two")
	}
}

func TestSinkOrdersDiagnosticsByInsertion(t *testing.T) {
	s := NewSink("abc")
	s.Warn(0, "first")
	s.Error(1, "second")
	s.Warn(2, "third")

	all := s.Diagnostics()
	if len(all) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(all))
	}
	if all[0].Message != "first" || all[1].Message != "second" || all[2].Message != "third" {
		t.Fatalf("got %v, insertion order not preserved", all)
	}
}

func TestSinkHasErrors(t *testing.T) {
	s := NewSink("abc")
	s.Warn(0, "just a warning")
	if s.HasErrors() {
		t.Fatal("HasErrors must be false with only warnings")
	}
	s.Error(0, "now an error")
	if !s.HasErrors() {
		t.Fatal("HasErrors must be true once an error is recorded")
	}
}

func TestSinkErrorsAndWarningsPartitionDiagnostics(t *testing.T) {
	s := NewSink("abc")
	s.Warn(0, "w1")
	s.Error(0, "e1")
	s.Warn(0, "w2")

	if len(s.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(s.Errors()))
	}
	if len(s.Warnings()) != 2 {
		t.Fatalf("got %d warnings, want 2", len(s.Warnings()))
	}
}

func TestDiagnosticStringIncludesSnippet(t *testing.T) {
	s := NewSink("var x = 1;")
	s.Error(4, "example")
	got := s.Errors()[0].String()
	if got == "" {
		t.Fatal("String() must not be empty")
	}
}

func TestSinkClampsOutOfRangeOffsets(t *testing.T) {
	s := NewSink("abc")
	s.Error(1000, "past the end")
	s.Error(-5, "before the start")
	if len(s.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(s.Errors()))
	}
}
