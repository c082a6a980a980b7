package parser

import (
	"bcplc/internal/ast"
	"bcplc/internal/source"
	"bcplc/internal/types"
)

type cellState uint8

const (
	cellPending cellState = iota
	cellFixed
)

// TypeCell is the result type of a valof block or a function body.
// It starts pending and is fixed by the first resultis/return; it never goes back.
// A fixed type may itself be unresolved (types.NoTypeID).
type TypeCell struct {
	state cellState
	typ   types.TypeID
}

func NewTypeCell() *TypeCell { return &TypeCell{} }

// Fixed returns the type once the cell has been fixed.
func (c *TypeCell) Fixed() (types.TypeID, bool) {
	return c.typ, c.state == cellFixed
}

// Fix sets the type. Only the first call has an effect.
func (c *TypeCell) Fix(t types.TypeID) bool {
	if c.state == cellFixed {
		return false
	}
	c.state, c.typ = cellFixed, t
	return true
}

// Unify fixes the cell from e on first use; later values with a different
// type are wrapped in an implicit cast to the fixed type. A cell fixed to an
// unresolved type leaves later values untouched.
func (c *TypeCell) Unify(e *ast.Expr) *ast.Expr {
	if c.Fix(e.Type) || !c.typ.Known() {
		return e
	}
	return e.CastIfNeeded(c.typ)
}

// DefaultMarker remembers where a switchon's default label was seen.
type DefaultMarker struct {
	loc source.Location
	set bool
}

// Claim records loc as the default label. When one was already recorded it
// returns that location and false.
func (m *DefaultMarker) Claim(loc source.Location) (source.Location, bool) {
	if m.set {
		return m.loc, false
	}
	m.loc, m.set = loc, true
	return loc, true
}

func (m *DefaultMarker) Location() (source.Location, bool) {
	return m.loc, m.set
}

// FrameKind tags a StmtContext frame.
type FrameKind uint8

const (
	FrameEmpty FrameKind = iota
	FrameValOf
	FrameFunction
	FrameBlock
	FrameNoBlock
	FrameLoop
	FrameSwitchOn
)

func (k FrameKind) String() string {
	switch k {
	case FrameValOf:
		return "valof"
	case FrameFunction:
		return "function"
	case FrameBlock:
		return "block"
	case FrameNoBlock:
		return "noblock"
	case FrameLoop:
		return "loop"
	case FrameSwitchOn:
		return "switchon"
	default:
		return "empty"
	}
}

// StmtContext is one frame of the chain of constructs enclosing a statement.
// Frames are immutable; a child is created for the duration of one nested
// parse and dropped when it returns. Cells and markers are owned by the
// construct that created them and only referenced by descendants.
type StmtContext struct {
	kind     FrameKind
	parent   *StmtContext
	cell     *TypeCell
	marker   *DefaultMarker
	condType types.TypeID
}

var emptyContext = &StmtContext{kind: FrameEmpty}

// Empty is the root frame; every query against it answers "not available".
func Empty() *StmtContext { return emptyContext }

// FunctionContext is the root frame of a function body. Function frames have
// no parent: nothing outside the body is visible from inside it.
func FunctionContext(cell *TypeCell) *StmtContext {
	return &StmtContext{kind: FrameFunction, parent: emptyContext, cell: cell}
}

func (c *StmtContext) child(kind FrameKind) *StmtContext {
	return &StmtContext{kind: kind, parent: c}
}

func (c *StmtContext) ValOf(cell *TypeCell) *StmtContext {
	f := c.child(FrameValOf)
	f.cell = cell
	return f
}

func (c *StmtContext) Block() *StmtContext   { return c.child(FrameBlock) }
func (c *StmtContext) NoBlock() *StmtContext { return c.child(FrameNoBlock) }
func (c *StmtContext) Loop() *StmtContext    { return c.child(FrameLoop) }

func (c *StmtContext) SwitchOn(marker *DefaultMarker, condType types.TypeID) *StmtContext {
	f := c.child(FrameSwitchOn)
	f.marker = marker
	f.condType = condType
	return f
}

func (c *StmtContext) Kind() FrameKind { return c.kind }

// Parent returns the enclosing frame, nil for root frames.
func (c *StmtContext) Parent() *StmtContext { return c.parent }

// LastValofType finds the cell of the innermost valof. A function frame
// hides every valof outside of it.
func (c *StmtContext) LastValofType() (*TypeCell, bool) {
	for f := c; f != nil; f = f.parent {
		switch f.kind {
		case FrameValOf:
			return f.cell, true
		case FrameFunction, FrameEmpty:
			return nil, false
		}
	}
	return nil, false
}

// FunctionReturnType finds the cell of the enclosing function, looking
// through any valof, block, loop or switchon frames.
func (c *StmtContext) FunctionReturnType() (*TypeCell, bool) {
	for f := c; f != nil; f = f.parent {
		switch f.kind {
		case FrameFunction:
			return f.cell, true
		case FrameEmpty:
			return nil, false
		}
	}
	return nil, false
}

// RequireSemicolon reports whether a statement here must end with ';'.
// Only blocks demand it; loop and switchon bodies inherit the answer, while
// compound chains, valof bodies and function bodies do not.
func (c *StmtContext) RequireSemicolon() bool {
	for f := c; f != nil; f = f.parent {
		switch f.kind {
		case FrameBlock:
			return true
		case FrameLoop, FrameSwitchOn:
			continue
		default:
			return false
		}
	}
	return false
}

// InLoop reports whether a loop encloses the statement within the current function.
func (c *StmtContext) InLoop() bool {
	for f := c; f != nil; f = f.parent {
		switch f.kind {
		case FrameLoop:
			return true
		case FrameFunction, FrameEmpty:
			return false
		}
	}
	return false
}

// InSwitchOn finds the innermost switchon and returns its default marker and
// the type of its condition (NoTypeID when unknown).
func (c *StmtContext) InSwitchOn() (*DefaultMarker, types.TypeID, bool) {
	for f := c; f != nil; f = f.parent {
		switch f.kind {
		case FrameSwitchOn:
			return f.marker, f.condType, true
		case FrameFunction, FrameEmpty:
			return nil, types.NoTypeID, false
		}
	}
	return nil, types.NoTypeID, false
}
