package ast

import (
	"bcplc/internal/source"
	"bcplc/internal/types"
)

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprCharLit
	ExprStringLit
	ExprBoolLit
	ExprIdent
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCall
	ExprValof
	ExprImplicitCast
)

var exprKindNames = [...]string{
	ExprIntLit:       "IntLit",
	ExprFloatLit:     "FloatLit",
	ExprCharLit:      "CharLit",
	ExprStringLit:    "StringLit",
	ExprBoolLit:      "BoolLit",
	ExprIdent:        "Ident",
	ExprUnary:        "Unary",
	ExprBinary:       "Binary",
	ExprAssign:       "Assign",
	ExprCall:         "Call",
	ExprValof:        "Valof",
	ExprImplicitCast: "ImplicitCast",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr is an expression node. The meaning of X, Y and Args depends on Kind:
//
//	Unary         Op X
//	Binary        X Op Y
//	Assign        X := Y
//	Call          X(Args...)
//	ImplicitCast  X converted to Type
//	Valof         Body
type Expr struct {
	Kind ExprKind
	Loc  source.Location
	Type types.TypeID
	Text string // literal spelling or identifier name
	Op   Op
	X, Y *Expr
	Args []*Expr
	Body *Stmt
}

// HasSideEffect reports whether evaluating the expression can change program state.
func (e *Expr) HasSideEffect() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ExprAssign, ExprCall, ExprValof:
		return true
	case ExprUnary, ExprImplicitCast:
		return e.X.HasSideEffect()
	case ExprBinary:
		return e.X.HasSideEffect() || e.Y.HasSideEffect()
	default:
		return false
	}
}

// ImplicitCast wraps e in a conversion to target. The wrapped node keeps its own type.
func (e *Expr) ImplicitCast(target types.TypeID) *Expr {
	return &Expr{
		Kind: ExprImplicitCast,
		Loc:  e.Loc,
		Type: target,
		X:    e,
	}
}

// CastIfNeeded casts e to target unless it already has that type.
func (e *Expr) CastIfNeeded(target types.TypeID) *Expr {
	if e.Type == target {
		return e
	}
	return e.ImplicitCast(target)
}
