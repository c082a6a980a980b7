package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the item to w.
func Dump(w io.Writer, it *Item) error {
	d := dumper{w: w}
	d.line(0, "%s %s @%d:%d result=%s", it.Kind, it.Name.Value, it.Loc.Line, it.Loc.Column, it.ResultType)
	for _, p := range it.Params {
		d.line(1, "param %s", p.Name)
	}
	if it.Body != nil {
		d.stmt(1, it.Body)
	}
	if it.Value != nil {
		d.expr(1, it.Value)
	}
	return d.err
}

// DumpStmt writes an indented outline of one statement.
func DumpStmt(w io.Writer, s *Stmt) error {
	d := dumper{w: w}
	d.stmt(0, s)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", depth)}, args...)...)
}

func (d *dumper) stmt(depth int, s *Stmt) {
	if s == nil {
		return
	}
	head := s.Kind.String()
	if s.Kind == StmtWhile && s.Negated {
		head = "Until"
	}
	if s.Var != nil {
		head += " " + s.Var.Name + ":" + s.Var.Type.String()
	}
	d.line(depth, "%s @%d:%d", head, s.Loc.Line, s.Loc.Column)
	for _, e := range []*Expr{s.Expr, s.To, s.By} {
		if e != nil {
			d.expr(depth+1, e)
		}
	}
	for _, child := range s.Stmts {
		d.stmt(depth+1, child)
	}
	d.stmt(depth+1, s.Body)
	if s.Else != nil {
		d.line(depth, "else")
		d.stmt(depth+1, s.Else)
	}
}

func (d *dumper) expr(depth int, e *Expr) {
	if e == nil {
		return
	}
	label := e.Kind.String()
	switch {
	case e.Text != "":
		label += " " + e.Text
	case e.Op != OpNone:
		label += " " + e.Op.String()
	}
	d.line(depth, "%s : %s", label, e.Type)
	d.expr(depth+1, e.X)
	d.expr(depth+1, e.Y)
	for _, a := range e.Args {
		d.expr(depth+1, a)
	}
	d.stmt(depth+1, e.Body)
}
