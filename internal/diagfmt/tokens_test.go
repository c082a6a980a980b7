package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bcplc/internal/lexer"
	"bcplc/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.b", []byte("// c\nlet x = 1"))
	toks := lexer.New(fs.Get(id), lexer.Options{KeepTrivia: true}).All()

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), pretty.String())
	}
	if !strings.Contains(lines[0], "at 2:1+3") || !strings.Contains(lines[0], "line-comment") {
		t.Fatalf("first token line %q", lines[0])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 || out[1].Text != "x" || out[1].Column != 4 {
		t.Fatalf("unexpected tokens %+v", out)
	}
}
