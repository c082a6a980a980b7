// Package types holds the builtin type table used while parsing.
// Only primitive types exist; anything the parser cannot infer stays NoTypeID.
package types

import "fmt"

// TypeID identifies a builtin type.
type TypeID uint32

// NoTypeID marks a type that is not resolved yet.
const NoTypeID TypeID = 0

const (
	Int TypeID = iota + 1
	Float
	Bool
	Char
	String
	Unit

	builtinCount
)

// Kind enumerates the families of builtin types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
	KindUnit
)

// Type is the descriptor stored in the builtin table.
type Type struct {
	Kind Kind
	Name string
	Size uint8 // bytes; 0 for unsized
}

var table = [builtinCount]Type{
	NoTypeID: {Kind: KindInvalid, Name: "<unresolved>"},
	Int:      {Kind: KindInt, Name: "int", Size: 8},
	Float:    {Kind: KindFloat, Name: "float", Size: 8},
	Bool:     {Kind: KindBool, Name: "bool", Size: 1},
	Char:     {Kind: KindChar, Name: "char", Size: 1},
	String:   {Kind: KindString, Name: "string"},
	Unit:     {Kind: KindUnit, Name: "unit"},
}

// Lookup returns the descriptor for id.
func Lookup(id TypeID) (Type, bool) {
	if id >= builtinCount {
		return Type{}, false
	}
	return table[id], true
}

// Known reports whether the type has been resolved.
func (id TypeID) Known() bool { return id != NoTypeID && id < builtinCount }

func (id TypeID) Kind() Kind {
	t, _ := Lookup(id)
	return t.Kind
}

func (id TypeID) String() string {
	if t, ok := Lookup(id); ok {
		return t.Name
	}
	return fmt.Sprintf("type#%d", uint32(id))
}

// IsNumeric reports whether values of the type take part in arithmetic.
func IsNumeric(id TypeID) bool {
	switch id {
	case Int, Float, Char:
		return true
	default:
		return false
	}
}
