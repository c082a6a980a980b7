package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bcplc/internal/token"
)

type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Column  uint32   `json:"column"`
	Width   uint32   `json:"width"`
	Leading []string `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty prints one token per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-12s", i+1, tok.Kind.String())
		if tok.Text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d+%d", tok.Loc.Line, tok.Loc.Column+1, tok.Loc.Width)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints the tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    tok.Loc.Line,
			Column:  tok.Loc.Column,
			Width:   tok.Loc.Width,
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
