package parser

import (
	"context"
	"strings"
	"testing"

	"bcplc/internal/ast"
	"bcplc/internal/diag"
	"bcplc/internal/source"
	"bcplc/internal/types"
)

func TestParseItems(t *testing.T) {
	input := strings.Join([]string{
		"let add(a, b) = a + b",
		"and twice(x) = valof { resultis x * 2 }",
		`let main() be { writes("hi"); return 0; }`,
		"let limit = 10",
	}, "\n")
	res, prog := parseSource(t, input)
	if !res.OK() {
		t.Fatalf("unexpected error: %s", summary(res.Err))
	}
	want := []struct {
		kind   ast.ItemKind
		name   string
		params int
		result types.TypeID
		line   int
	}{
		{ast.ItemFunction, "add", 2, types.NoTypeID, 1},
		{ast.ItemFunction, "twice", 1, types.Int, 2},
		{ast.ItemRoutine, "main", 0, types.Int, 3},
		{ast.ItemGlobal, "limit", 0, types.Int, 4},
	}
	if len(res.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(res.Items))
	}
	for i, w := range want {
		it := res.Items[i]
		if it.Kind != w.kind || it.Name.Value != w.name || len(it.Params) != w.params || it.ResultType != w.result {
			t.Fatalf("item %d: %v %s/%d -> %v, want %v %s/%d -> %v",
				i, it.Kind, it.Name.Value, len(it.Params), it.ResultType, w.kind, w.name, w.params, w.result)
		}
		if int(it.Loc.Line) != w.line || it.Loc.Column != 0 {
			t.Fatalf("item %d at %d:%d", i, it.Loc.Line, it.Loc.Column)
		}
	}
	expectLoc(t, "add", res.Items[0].Loc, 1, 0, 21)
	expectLoc(t, "add name", res.Items[0].Name.Location(), 1, 4, 3)

	if prog.Len() != 4 || len(res.IDs) != 4 {
		t.Fatalf("program holds %d items, %d ids", prog.Len(), len(res.IDs))
	}
	if it, ok := prog.Get(res.IDs[2]); !ok || it.Name.Value != "main" {
		t.Fatalf("program lookup by id failed")
	}
}

func TestRoutineWithoutReturnIsUnit(t *testing.T) {
	res, _ := parseSource(t, "let hello() be writes(\"hello\")")
	if !res.OK() {
		t.Fatalf("unexpected error: %s", summary(res.Err))
	}
	if res.Items[0].ResultType != types.Unit {
		t.Fatalf("result = %v, want unit", res.Items[0].ResultType)
	}
}

func TestReturnThroughValofUnifiesWithFunction(t *testing.T) {
	res, _ := parseSource(t, "let f(x) = valof { if x do return 1; resultis 2.5; }")
	if !res.OK() {
		t.Fatalf("unexpected error: %s", summary(res.Err))
	}
	it := res.Items[0]
	if it.ResultType != types.Int {
		t.Fatalf("result = %v, want int", it.ResultType)
	}
	if it.Value.Kind != ast.ExprImplicitCast || it.Value.X.Kind != ast.ExprValof || it.Value.X.Type != types.Float {
		t.Fatalf("float valof must be cast to the function result type, got %v", it.Value.Kind)
	}
}

func TestRoutineBodyRules(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
		code  diag.Code
	}{
		{"let r() be break", false, diag.SynInvalidStmt},
		{"let r() be resultis 1", false, diag.SynInvalidStmt},
		{"let r(a, b, a) be f()", false, diag.SynRedefinition},
		{"let r(a, 1) be f()", false, diag.SynExpectIdentifier},
		{"let r() f()", false, diag.SynUnexpectedToken},
		{"let (x) = 1", false, diag.SynExpectIdentifier},
		{"x := 1", false, diag.SynUnexpectedTopLevel},
		{"let x = 1 $ 2", false, diag.LexUnknownChar},
		// assignment is an ordinary expression
		{"let x = y := 1", true, 0},
	}
	for _, tc := range cases {
		res, prog := parseSource(t, tc.input)
		if tc.ok {
			if !res.OK() {
				t.Fatalf("%q: unexpected error: %s", tc.input, summary(res.Err))
			}
			continue
		}
		if res.OK() || res.Err.Code != tc.code {
			t.Fatalf("%q: got %s, want code %s", tc.input, summary(res.Err), tc.code.ID())
		}
		if prog.Len() != 0 || len(res.Items) != 0 {
			t.Fatalf("%q: failed file must not add items", tc.input)
		}
	}
}

func TestDuplicateParameterPointsAtBoth(t *testing.T) {
	res, _ := parseSource(t, "let r(a, b, a) be f()")
	if res.Err == nil {
		t.Fatal("expected an error")
	}
	expectLoc(t, "duplicate", res.Err.Primary, 1, 12, 1)
	if len(res.Err.Secondary) != 1 {
		t.Fatalf("expected a note at the first parameter")
	}
	expectLoc(t, "first", res.Err.Secondary[0].Primary, 1, 6, 1)
}

func TestWarningsSurviveInResult(t *testing.T) {
	res, _ := parseSource(t, "let r() be { x + 1; y; }")
	if !res.OK() || len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %s", diagnosticsSummary(res.Diagnostics()))
	}
	fs, id := virtualFile(t, "let r() be { x + 1; y; }")
	capped := ParseFile(context.Background(), fs, id, Options{MaxWarnings: 1})
	if len(capped.Warnings) != 1 {
		t.Fatalf("MaxWarnings ignored: %d", len(capped.Warnings))
	}
}

func TestLexerErrorsReachReporter(t *testing.T) {
	fs, id := virtualFile(t, "let s = \"open")
	bag := diag.NewBag(0)
	res := ParseFile(context.Background(), fs, id, Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.OK() || res.Err.Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %s", summary(res.Err))
	}
	if bag.Len() != 1 {
		t.Fatalf("reporter saw %d diagnostics", bag.Len())
	}
}

func TestUnknownFile(t *testing.T) {
	res := ParseFile(context.Background(), source.NewFileSet(), 42, Options{})
	if res.OK() || res.Err.Code != diag.IOLoadFailed {
		t.Fatalf("expected load failure, got %s", summary(res.Err))
	}
}

func TestDumpParsedRoutine(t *testing.T) {
	res, _ := parseSource(t, "let start() be return 1")
	var sb strings.Builder
	if err := ast.Dump(&sb, &res.Items[0]); err != nil {
		t.Fatal(err)
	}
	want := "Routine start @1:0 result=int\n  Return @1:15\n    IntLit 1 : int\n"
	if sb.String() != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", sb.String(), want)
	}
}
