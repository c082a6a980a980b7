package ast

import (
	"bcplc/internal/source"
	"bcplc/internal/types"
)

type ItemID uint32

const NoItemID ItemID = 0

func (id ItemID) IsValid() bool { return id != NoItemID }

type ItemKind uint8

const (
	// ItemRoutine is `let F(params) be S`.
	ItemRoutine ItemKind = iota
	// ItemFunction is `let F(params) = E`.
	ItemFunction
	// ItemGlobal is `let N = E` at top level.
	ItemGlobal
)

func (k ItemKind) String() string {
	switch k {
	case ItemRoutine:
		return "Routine"
	case ItemFunction:
		return "Function"
	case ItemGlobal:
		return "Global"
	default:
		return "Item(?)"
	}
}

// Item is a top-level definition.
type Item struct {
	Kind   ItemKind
	Name   source.Located[string]
	Params []LocalDecl
	Body   *Stmt // routines
	Value  *Expr // functions and globals
	// ResultType is the unified type of every return (routines) or of Value.
	ResultType types.TypeID
	Loc        source.Location
}
