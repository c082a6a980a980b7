package types

// OpClass groups operators that share a typing rule.
type OpClass uint8

const (
	OpArithmetic  OpClass = iota // + - * / mod
	OpComparison                 // = ~= < <= > >=
	OpLogical                    // & | not
	OpEquivalence                // eqv neqv
)

// BinaryResult derives the type of `l op r`.
// Arithmetic widens to float when either side is float; an unresolved side
// defers to the other one.
func BinaryResult(class OpClass, l, r TypeID) TypeID {
	switch class {
	case OpComparison, OpLogical, OpEquivalence:
		return Bool
	}
	switch {
	case !l.Known() && !r.Known():
		return NoTypeID
	case !l.Known():
		return numericOr(r)
	case !r.Known():
		return numericOr(l)
	case l == Float || r == Float:
		return Float
	case IsNumeric(l) && IsNumeric(r):
		return Int
	default:
		return NoTypeID
	}
}

// UnaryResult derives the type of a prefix operator applied to operand.
func UnaryResult(class OpClass, operand TypeID) TypeID {
	if class == OpLogical {
		return Bool
	}
	if operand == Char {
		return Int
	}
	return numericOr(operand)
}

func numericOr(id TypeID) TypeID {
	if IsNumeric(id) {
		if id == Char {
			return Int
		}
		return id
	}
	return NoTypeID
}
