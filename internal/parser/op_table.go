package parser

import (
	"bcplc/internal/ast"
	"bcplc/internal/token"
)

// Binary operator precedence; higher binds tighter. Prefix ~/not sits
// between & and the relations.
const (
	precAssignment     = 1 // :=
	precEquivalence    = 2 // eqv neqv
	precOr             = 3 // |
	precAnd            = 4 // &
	precNot            = 5 // ~ not (prefix)
	precRelational     = 6 // = ~= < <= > >=
	precAdditive       = 7 // + -
	precMultiplicative = 8 // * / mod
)

// binaryPrec returns the precedence of kind and whether it is right associative.
// -1 means kind is not a binary operator.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.KwEqv, token.KwNeqv:
		return precEquivalence, false
	case token.Pipe:
		return precOr, false
	case token.Amp:
		return precAnd, false
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.KwMod:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.Op{
	token.Plus:   ast.OpAdd,
	token.Minus:  ast.OpSub,
	token.Star:   ast.OpMul,
	token.Slash:  ast.OpDiv,
	token.KwMod:  ast.OpMod,
	token.Eq:     ast.OpEq,
	token.NotEq:  ast.OpNe,
	token.Lt:     ast.OpLt,
	token.LtEq:   ast.OpLe,
	token.Gt:     ast.OpGt,
	token.GtEq:   ast.OpGe,
	token.Amp:    ast.OpAnd,
	token.Pipe:   ast.OpOr,
	token.KwEqv:  ast.OpEqv,
	token.KwNeqv: ast.OpNeqv,
}
