package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lilt/internal/source"
)

// Cursor is a byte position inside one source unit.
type Cursor struct {
	Unit *source.Unit
	Off  uint32
}

// NewCursor creates a cursor at the start of the unit.
func NewCursor(u *source.Unit) Cursor {
	return Cursor{Unit: u, Off: 0}
}

func (c *Cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.Unit.Content))
	if err != nil {
		panic(fmt.Errorf("unit content overflow: %w", err))
	}
	return n
}

// EOF reports whether the cursor is past the last byte.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Unit.Content[c.Off]
}

// PeekAt reads the byte n positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit() {
		return 0
	}
	return c.Unit.Content[c.Off+n]
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Unit.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Unit.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark is a saved cursor position used to build spans.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Unit: c.Unit.ID, Start: uint32(m), End: c.Off}
}

// TextFrom returns the raw text from a mark to the current position.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.Unit.Content[uint32(m):c.Off])
}
