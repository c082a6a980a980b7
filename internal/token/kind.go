package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// IntLit represents an integer literal (decimal, #octal or #xhex).
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a string literal.
	StringLit

	KwLet      // let
	KwAnd      // and
	KwBe       // be
	KwValof    // valof
	KwResultis // resultis
	KwReturn   // return
	KwIf       // if
	KwUnless   // unless
	KwDo       // do
	KwThen     // then
	KwElse     // else
	KwWhile    // while
	KwUntil    // until
	KwFor      // for
	KwTo       // to
	KwBy       // by
	KwSwitchon // switchon
	KwInto     // into
	KwCase     // case
	KwDefault  // default
	KwEndcase  // endcase
	KwBreak    // break
	KwLoop     // loop
	KwTrue     // true
	KwFalse    // false
	KwNot      // not
	KwMod      // mod
	KwEqv      // eqv
	KwNeqv     // neqv

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Compound  // <>
	Semicolon // ;
	Colon     // :
	Assign    // :=
	Eq        // =
	NotEq     // ~=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Tilde     // ~
	Amp       // &
	Pipe      // |

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	CharLit:    "CharLit",
	StringLit:  "StringLit",
	KwLet:      "let",
	KwAnd:      "and",
	KwBe:       "be",
	KwValof:    "valof",
	KwResultis: "resultis",
	KwReturn:   "return",
	KwIf:       "if",
	KwUnless:   "unless",
	KwDo:       "do",
	KwThen:     "then",
	KwElse:     "else",
	KwWhile:    "while",
	KwUntil:    "until",
	KwFor:      "for",
	KwTo:       "to",
	KwBy:       "by",
	KwSwitchon: "switchon",
	KwInto:     "into",
	KwCase:     "case",
	KwDefault:  "default",
	KwEndcase:  "endcase",
	KwBreak:    "break",
	KwLoop:     "loop",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNot:      "not",
	KwMod:      "mod",
	KwEqv:      "eqv",
	KwNeqv:     "neqv",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Compound:   "<>",
	Semicolon:  ";",
	Colon:      ":",
	Assign:     ":=",
	Eq:         "=",
	NotEq:      "~=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Tilde:      "~",
	Amp:        "&",
	Pipe:       "|",
}

// String returns the lexeme for fixed tokens and the class name otherwise.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe renders a kind for diagnostics: keywords and punctuation are quoted.
func (k Kind) Describe() string {
	switch {
	case k == EOF:
		return "end of file"
	case k == Ident:
		return "identifier"
	case k >= IntLit && k <= StringLit:
		return "literal"
	case k >= KwLet && k < kindCount:
		return "'" + k.String() + "'"
	default:
		return k.String()
	}
}
