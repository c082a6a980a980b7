package source

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Location anchors a node or diagnostic to a line of a registered file.
// Line is 1-based, Column is 0-based, both Column and Width count characters.
type Location struct {
	File   FileID
	Line   uint32
	Column uint32
	Width  uint32
}

// NewLocation builds a Location from plain ints.
func NewLocation(file FileID, line, column, width int) Location {
	return Location{
		File:   file,
		Line:   mustU32(line),
		Column: mustU32(column),
		Width:  mustU32(width),
	}
}

// SetWidth adjusts the width once the extent of a construct is known.
func (l *Location) SetWidth(width int) {
	l.Width = mustU32(width)
}

// End is the 0-based column just past the location.
func (l Location) End() uint32 {
	return l.Column + l.Width
}

// Equal compares file, line and column. Width is not part of the identity.
func (l Location) Equal(other Location) bool {
	return l.File == other.File && l.Line == other.Line && l.Column == other.Column
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool {
	return l.Line == 0
}

func (l Location) String() string {
	return fmt.Sprintf("<id %d>:%d:%d-%d", l.File, l.Line, l.Column, l.End())
}

// Locate converts a byte span into a Location. Spans crossing a line break
// are clipped to the end of their first line.
func (f *File) Locate(sp Span) Location {
	start := toLineCol(f.LineIdx, sp.Start)
	lineStart := sp.Start - (start.Col - 1)

	end := sp.End
	if int(start.Line-1) < len(f.LineIdx) {
		if nl := f.LineIdx[start.Line-1]; end > nl {
			end = nl
		}
	}
	if end < sp.Start {
		end = sp.Start
	}

	column := utf8.RuneCount(f.Content[lineStart:sp.Start])
	width := utf8.RuneCount(f.Content[sp.Start:end])
	return Location{
		File:   f.ID,
		Line:   start.Line,
		Column: mustU32(column),
		Width:  mustU32(width),
	}
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("location component overflow: %w", err))
	}
	return v
}
