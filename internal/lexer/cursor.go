package lexer

import (
	"fmt"

	"bcplc/internal/source"

	"fortio.org/safecast"
)

// Cursor walks the bytes of one file. Off is the next unread byte.
type Cursor struct {
	File *source.File
	Off  uint32
	src  []byte
}

// NewCursor panics when the file does not fit 32-bit offsets.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("lexer: %s: %w", f.Path, err))
	}
	return Cursor{File: f, src: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// PeekAt returns the byte k positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(k int) byte {
	i := int(c.Off) + k
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// Peek2 returns the next two bytes; ok is false unless both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.Off)+2 > len(c.src) {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Rest is the unread tail of the file.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:]
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b when it is the next byte.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark is a saved offset, used for spans and backtracking.
type Mark uint32

func (c *Cursor) Mark() Mark   { return Mark(c.Off) }
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
