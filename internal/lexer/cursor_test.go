package lexer

import (
	"testing"

	"bcplc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.b", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !c.EOF() {
		t.Fatalf("expected EOF")
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("Peek/Bump at EOF must return 0")
	}
}

func TestCursorPeek2(t *testing.T) {
	c := NewCursor(createFile(":="))
	b0, b1, ok := c.Peek2()
	if !ok || b0 != ':' || b1 != '=' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 with one byte left must fail")
	}
}

func TestCursorMarkResetAndSpan(t *testing.T) {
	c := NewCursor(createFile("valof"))
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not restore offset")
	}
	if !c.Eat('v') || c.Eat('v') {
		t.Fatalf("Eat mismatch")
	}
}

func TestCursorPeekAtAndRest(t *testing.T) {
	c := NewCursor(createFile("ab"))
	if c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 || c.PeekAt(-1) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
	c.Bump()
	if string(c.Rest()) != "b" {
		t.Fatalf("Rest() = %q", c.Rest())
	}
	c.Bump()
	if c.Rest() != nil {
		t.Fatalf("Rest at EOF must be nil")
	}
}
