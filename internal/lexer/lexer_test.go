package lexer_test

import (
	"testing"

	"bcplc/internal/diag"
	"bcplc/internal/lexer"
	"bcplc/internal/source"
	"bcplc/internal/token"
)

func lex(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.b", []byte(input))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	toks, bag := lex(t, input)
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: kinds = %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v", input, i, got[i], want[i])
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "let x = valof resultis y.z",
		token.KwLet, token.Ident, token.Eq, token.KwValof, token.KwResultis, token.Ident)
	expectKinds(t, "switchon c into { case 1: default: endcase }",
		token.KwSwitchon, token.Ident, token.KwInto, token.LBrace,
		token.KwCase, token.IntLit, token.Colon, token.KwDefault, token.Colon,
		token.KwEndcase, token.RBrace)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a := b ~= c <= d >= e < f > g ~ h & i | j",
		token.Ident, token.Assign, token.Ident, token.NotEq, token.Ident, token.LtEq,
		token.Ident, token.GtEq, token.Ident, token.Lt, token.Ident, token.Gt, token.Ident,
		token.Tilde, token.Ident, token.Amp, token.Ident, token.Pipe, token.Ident)
	expectKinds(t, "a <> b < c", token.Ident, token.Compound, token.Ident, token.Lt, token.Ident)
	expectKinds(t, "f(a, b); x * y / z - 1 + 2",
		token.Ident, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen, token.Semicolon,
		token.Ident, token.Star, token.Ident, token.Slash, token.Ident, token.Minus, token.IntLit,
		token.Plus, token.IntLit)
}

func TestNumbers(t *testing.T) {
	cases := map[string]token.Kind{
		"42":     token.IntLit,
		"#17":    token.IntLit,
		"#x1F":   token.IntLit,
		"#b1010": token.IntLit,
		"3.25":   token.FloatLit,
		"1.0e-3": token.FloatLit,
		"2e10":   token.FloatLit,
	}
	for input, want := range cases {
		toks, bag := lex(t, input)
		if bag.HasErrors() || toks[0].Kind != want || toks[0].Text != input {
			t.Fatalf("%q: got %v %q (errors=%v)", input, toks[0].Kind, toks[0].Text, bag.HasErrors())
		}
	}
}

func TestBadNumber(t *testing.T) {
	for _, input := range []string{"#", "#19", "#xg", "1.5e"} {
		toks, bag := lex(t, input)
		if toks[0].Kind != token.Invalid {
			t.Fatalf("%q: kind = %v, want Invalid", input, toks[0].Kind)
		}
		if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
			t.Fatalf("%q: expected LexBadNumber, got %v", input, bag.Items())
		}
	}
}

func TestStringsAndChars(t *testing.T) {
	expectKinds(t, `"hello*n" 'a' '*''`, token.StringLit, token.CharLit, token.CharLit)

	toks, bag := lex(t, "\"open\nx")
	if toks[0].Kind != token.Invalid || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %v / %v", toks[0].Kind, bag.Items())
	}

	toks, bag = lex(t, "'ab'")
	if toks[0].Kind != token.Invalid || bag.Items()[0].Code != diag.LexUnterminatedChar {
		t.Fatalf("expected bad char literal, got %v / %v", toks[0].Kind, bag.Items())
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	expectKinds(t, "// line\nlet /* block /* nested */ */ x", token.KwLet, token.Ident)

	_, bag := lex(t, "let /* open")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected unterminated comment, got %v", bag.Items())
	}
}

func TestKeepTrivia(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.b", []byte("// hi\nx"))
	lx := lexer.New(fs.Get(id), lexer.Options{KeepTrivia: true})
	tok := lx.Next()
	if len(tok.Leading) != 2 || !tok.Leading[0].IsComment() {
		t.Fatalf("leading trivia = %+v", tok.Leading)
	}
}

func TestTokenLocations(t *testing.T) {
	toks, _ := lex(t, "let x\n  résultat := 10")
	want := []source.Location{
		source.NewLocation(0, 1, 0, 3),
		source.NewLocation(0, 1, 4, 1),
		source.NewLocation(0, 2, 2, 8),
		source.NewLocation(0, 2, 11, 2),
		source.NewLocation(0, 2, 14, 2),
	}
	for i, w := range want {
		got := toks[i].Loc
		if !got.Equal(w) || got.Width != w.Width {
			t.Fatalf("token %d (%q): loc %v, want %v", i, toks[i].Text, got, w)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := lex(t, "x $ y")
	if toks[1].Kind != token.Invalid || toks[2].Kind != token.Ident {
		t.Fatalf("kinds = %v", kinds(toks))
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.b", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
}
