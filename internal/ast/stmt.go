package ast

import (
	"bcplc/internal/source"
	"bcplc/internal/types"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtCompound
	StmtResultIs
	StmtReturn
	StmtIf
	StmtUnless
	StmtWhile
	StmtFor
	StmtSwitchOn
	StmtCase
	StmtDefault
	StmtEndCase
	StmtBreak
	StmtLoop
	StmtExpr
)

var stmtKindNames = [...]string{
	StmtBlock:    "Block",
	StmtCompound: "Compound",
	StmtResultIs: "ResultIs",
	StmtReturn:   "Return",
	StmtIf:       "If",
	StmtUnless:   "Unless",
	StmtWhile:    "While",
	StmtFor:      "For",
	StmtSwitchOn: "SwitchOn",
	StmtCase:     "Case",
	StmtDefault:  "Default",
	StmtEndCase:  "EndCase",
	StmtBreak:    "Break",
	StmtLoop:     "Loop",
	StmtExpr:     "Expr",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

// LocalDecl introduces a name in a statement, such as a for loop variable.
type LocalDecl struct {
	Name string
	Loc  source.Location
	Type types.TypeID
}

// Stmt is a statement node. Field usage per kind:
//
//	Block, Compound    Stmts
//	ResultIs, Return   Expr
//	If                 Expr, Body, Else (optional)
//	Unless             Expr, Body
//	While              Expr, Body; Negated for until
//	For                Var, Expr (initial value), To, By (optional), Body
//	SwitchOn           Expr, Body
//	Case               Expr
//	Expr               Expr
type Stmt struct {
	Kind    StmtKind
	Loc     source.Location
	Expr    *Expr
	Body    *Stmt
	Else    *Stmt
	Stmts   []*Stmt
	Var     *LocalDecl
	To, By  *Expr
	Negated bool
}
