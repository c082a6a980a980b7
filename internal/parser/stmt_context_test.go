package parser

import (
	"testing"

	"bcplc/internal/ast"
	"bcplc/internal/source"
	"bcplc/internal/types"
)

func TestTypeCellFixesOnce(t *testing.T) {
	cell := NewTypeCell()
	if _, ok := cell.Fixed(); ok {
		t.Fatalf("new cell must be pending")
	}
	first := &ast.Expr{Kind: ast.ExprIntLit, Type: types.Int}
	if got := cell.Unify(first); got != first {
		t.Fatalf("first unification must not wrap")
	}
	second := &ast.Expr{Kind: ast.ExprBoolLit, Type: types.Bool}
	got := cell.Unify(second)
	if got.Kind != ast.ExprImplicitCast || got.Type != types.Int || got.X != second {
		t.Fatalf("mismatch must be cast to the fixed type, got %+v", got)
	}
	if cell.Fix(types.Float) {
		t.Fatalf("Fix after fixing must be refused")
	}
	if typ, _ := cell.Fixed(); typ != types.Int {
		t.Fatalf("cell changed to %v", typ)
	}
}

func TestTypeCellFixedUnresolved(t *testing.T) {
	cell := NewTypeCell()
	cell.Unify(&ast.Expr{Kind: ast.ExprIdent, Type: types.NoTypeID})
	typ, ok := cell.Fixed()
	if !ok || typ != types.NoTypeID {
		t.Fatalf("cell must be fixed to the unresolved type, got %v %v", typ, ok)
	}
	got := cell.Unify(&ast.Expr{Kind: ast.ExprIntLit, Type: types.Int})
	if got.Kind != ast.ExprImplicitCast || got.Type != types.NoTypeID {
		t.Fatalf("later typed value must still be cast to the fixed type")
	}
}

func TestDefaultMarker(t *testing.T) {
	var m DefaultMarker
	first := source.NewLocation(0, 3, 2, 8)
	if _, ok := m.Claim(first); !ok {
		t.Fatalf("first claim must succeed")
	}
	prev, ok := m.Claim(source.NewLocation(0, 4, 2, 8))
	if ok || !prev.Equal(first) {
		t.Fatalf("second claim must fail and report the first, got %v %v", prev, ok)
	}
	if loc, set := m.Location(); !set || !loc.Equal(first) {
		t.Fatalf("marker lost the first location")
	}
}

func TestLastValofTypeStopsAtFunction(t *testing.T) {
	outer := NewTypeCell()
	sc := Empty().ValOf(outer).Block().Loop()
	if cell, ok := sc.LastValofType(); !ok || cell != outer {
		t.Fatalf("valof not found through block/loop")
	}
	fn := FunctionContext(NewTypeCell()).Block()
	if _, ok := fn.LastValofType(); ok {
		t.Fatalf("function frame must hide outer valof")
	}
	if _, ok := Empty().LastValofType(); ok {
		t.Fatalf("empty context has no valof")
	}
}

func TestFunctionReturnTypeCrossesValof(t *testing.T) {
	fnCell := NewTypeCell()
	sc := FunctionContext(fnCell).Block().ValOf(NewTypeCell()).SwitchOn(&DefaultMarker{}, types.Int).NoBlock()
	if cell, ok := sc.FunctionReturnType(); !ok || cell != fnCell {
		t.Fatalf("function cell not found")
	}
	if _, ok := Empty().Block().FunctionReturnType(); ok {
		t.Fatalf("no function outside a function")
	}
}

func TestRequireSemicolon(t *testing.T) {
	cases := []struct {
		name string
		sc   *StmtContext
		want bool
	}{
		{"empty", Empty(), false},
		{"block", Empty().Block(), true},
		{"loop in block", Empty().Block().Loop(), true},
		{"switchon in block", Empty().Block().SwitchOn(&DefaultMarker{}, types.NoTypeID), true},
		{"noblock in block", Empty().Block().NoBlock(), false},
		{"loop in noblock", Empty().Block().NoBlock().Loop(), false},
		{"valof in block", Empty().Block().ValOf(NewTypeCell()), false},
		{"function", FunctionContext(NewTypeCell()), false},
		{"loop at root", Empty().Loop(), false},
	}
	for _, tc := range cases {
		if got := tc.sc.RequireSemicolon(); got != tc.want {
			t.Fatalf("%s: RequireSemicolon() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInLoopAndInSwitchOn(t *testing.T) {
	marker := &DefaultMarker{}
	sc := Empty().Loop().Block().SwitchOn(marker, types.Char).Block().ValOf(NewTypeCell())
	if !sc.InLoop() {
		t.Fatalf("loop not found")
	}
	m, typ, ok := sc.InSwitchOn()
	if !ok || m != marker || typ != types.Char {
		t.Fatalf("InSwitchOn = %v %v %v", m, typ, ok)
	}
	if FunctionContext(NewTypeCell()).Block().InLoop() {
		t.Fatalf("no loop inside a fresh function")
	}
	if _, _, ok := Empty().Block().InSwitchOn(); ok {
		t.Fatalf("no switchon in a bare block")
	}
}

func TestFramesAreNotShared(t *testing.T) {
	root := Empty().Block()
	a := root.Loop()
	b := root.Loop()
	if a == b || a.Parent() != root || b.Parent() != root {
		t.Fatalf("children must be distinct frames with the same parent")
	}
	if a.Kind() != FrameLoop || a.Kind().String() != "loop" {
		t.Fatalf("unexpected frame kind %v", a.Kind())
	}
}
