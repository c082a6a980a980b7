package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"and":      KwAnd,
	"be":       KwBe,
	"valof":    KwValof,
	"resultis": KwResultis,
	"return":   KwReturn,
	"if":       KwIf,
	"unless":   KwUnless,
	"do":       KwDo,
	"then":     KwThen,
	"else":     KwElse,
	"while":    KwWhile,
	"until":    KwUntil,
	"for":      KwFor,
	"to":       KwTo,
	"by":       KwBy,
	"switchon": KwSwitchon,
	"into":     KwInto,
	"case":     KwCase,
	"default":  KwDefault,
	"endcase":  KwEndcase,
	"break":    KwBreak,
	"loop":     KwLoop,
	"true":     KwTrue,
	"false":    KwFalse,
	"not":      KwNot,
	"mod":      KwMod,
	"eqv":      KwEqv,
	"neqv":     KwNeqv,
}

// LookupKeyword returns the keyword kind for ident.
// Keywords are case sensitive: only the lowercase spelling is recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
