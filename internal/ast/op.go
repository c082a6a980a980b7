package ast

import "bcplc/internal/types"

// Op is a unary or binary operator.
type Op uint8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpEqv
	OpNeqv
	OpNeg
	OpPlus
	OpNot
)

var opSpelling = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "mod",
	OpEq:   "=",
	OpNe:   "~=",
	OpLt:   "<",
	OpLe:   "<=",
	OpGt:   ">",
	OpGe:   ">=",
	OpAnd:  "&",
	OpOr:   "|",
	OpEqv:  "eqv",
	OpNeqv: "neqv",
	OpNeg:  "-",
	OpPlus: "+",
	OpNot:  "~",
}

func (op Op) String() string {
	if int(op) < len(opSpelling) {
		return opSpelling[op]
	}
	return "?"
}

// Class maps the operator onto its typing rule.
func (op Op) Class() types.OpClass {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return types.OpComparison
	case OpAnd, OpOr, OpNot:
		return types.OpLogical
	case OpEqv, OpNeqv:
		return types.OpEquivalence
	default:
		return types.OpArithmetic
	}
}
