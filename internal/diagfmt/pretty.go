package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bcplc/internal/diag"
	"bcplc/internal/source"
)

// Pretty prints diagnostics in order. Each one is rendered as
//
//	<severity> <path>:<line>:<col>: <message>
//	   12 |     source line
//	      |     ~~~~~ <- hint: <hint>
//
// followed by its secondary diagnostics rendered the same way. Diagnostics
// about a whole file, such as a failed read, carry no line and print only
// "<severity> <path>: <message>".
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	r := renderer{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for _, d := range diags[:n] {
		r.render(0, d)
	}
	if rest := len(diags) - n; rest > 0 {
		r.printf("... %d more diagnostic(s) not shown\n", rest)
	}
	return r.err
}

// PrettyOne renders a single diagnostic tree.
func PrettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	r := renderer{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	r.render(0, d)
	return r.err
}

type palette struct {
	on      bool
	err     *color.Color
	warn    *color.Color
	note    *color.Color
	path    *color.Color
	gutter  *color.Color
	hint    *color.Color
	message *color.Color
}

func newPalette(on bool) palette {
	p := palette{
		on:      on,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		note:    color.New(color.FgCyan, color.Bold),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		hint:    color.New(color.Faint),
		message: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.path, p.gutter, p.hint, p.message} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.note
	}
}

type renderer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
	err  error
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) render(depth int, d *diag.Diagnostic) {
	sevColor := r.pal.severity(d.Severity)
	label := d.Severity.Label()
	if depth > 0 && d.Severity == diag.SevInfo {
		label = "note"
	}
	loc := d.Primary
	header := formatPath(r.fs, loc.File, r.opts.PathMode) + ":"
	if !loc.IsZero() {
		header = fmt.Sprintf("%s%d:%d:", header, loc.Line, loc.Column+1)
	}
	msg := d.Message
	if r.opts.ShowCodes && d.Code != diag.SynInfo {
		msg += " [" + d.Code.ID() + "]"
	}
	r.printf("%s %s %s\n", sevColor.Sprint(label), r.pal.path.Sprint(header), r.pal.message.Sprint(msg))

	line, ok := r.fs.Line(loc.File, loc.Line)
	switch {
	case ok && !loc.IsZero():
		r.excerpt(line, loc, sevColor, d.Hint)
	case d.Hint != "":
		r.printf("      %s %s\n", r.pal.gutter.Sprint("|"), r.pal.hint.Sprint("<- hint: "+d.Hint))
	}
	for i := range d.Secondary {
		r.render(depth+1, &d.Secondary[i])
	}
}

// excerpt prints the source line with the located text highlighted and a
// '~' underline below it, followed by the hint. Columns count characters; the
// underline is placed by display width so wide runes and tabs stay aligned.
func (r *renderer) excerpt(line string, loc source.Location, hl *color.Color, hint string) {
	runes := []rune(line)
	col := min(int(loc.Column), len(runes))
	end := min(col+int(loc.Width), len(runes))

	before, spanned, after := string(runes[:col]), string(runes[col:end]), string(runes[end:])
	r.printf(" %s %s%s%s\n", r.pal.gutter.Sprintf("%4d |", loc.Line), before, hl.Sprint(spanned), after)

	width := displayWidth(spanned)
	if width == 0 {
		width = 1
	}
	underline := hl.Sprint(strings.Repeat("~", width))
	if hint != "" {
		underline += " " + r.pal.hint.Sprint("<- hint: "+hint)
	}
	r.printf("      %s %s%s\n", r.pal.gutter.Sprint("|"), padding(before), underline)
}

// padding reproduces the layout of prefix with blanks, keeping tabs.
func padding(prefix string) string {
	var sb strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(ch)))
	}
	return sb.String()
}

func displayWidth(s string) int {
	n := 0
	for _, ch := range s {
		if ch == '\t' {
			n++
			continue
		}
		n += runewidth.RuneWidth(ch)
	}
	return n
}
