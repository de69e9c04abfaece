// Package printer renders a statement tree back into DSL source text.
// It exists so the parser's round-trip property (spec.md's "Parser
// round-trip" testable property) has a deterministic pretty-printer to
// round-trip through: print(parse(s)) reparses to an equal tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xipd-lang/xipd/internal/patch/ast"
)

// Print renders a full statement list, one statement per line, by
// walking it with a printer visitor.
func Print(stmts []ast.Stmt) string {
	p := &printer{}
	for _, s := range stmts {
		s.Accept(p)
	}
	return p.out.String()
}

// printer implements ast.Visitor twice over: its statement methods emit
// lines (returning nil), its expression methods return the rendered
// string for the caller (another expression method, or a statement
// method) to splice in.
type printer struct {
	ast.BaseVisitor
	out    strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.out.WriteString(strings.Repeat("\t", p.indent))
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func (p *printer) expr(e ast.Expr) string {
	return e.Accept(p).(string)
}

func (p *printer) VisitRef(n *ast.Ref) interface{} {
	if n.Port != nil {
		return fmt.Sprintf("%s:%d", n.Name, *n.Port)
	}
	return n.Name
}

// VisitStr renders a string literal by plain quote-wrapping rather than
// strconv.Quote: the grammar's string contents are unescaped and can
// never contain a '"', so plain wrapping is always reparseable, while
// Quote's backslash-escaping would corrupt round-trip on any value
// containing a backslash or a non-printable character.
func (p *printer) VisitStr(n *ast.Str) interface{} {
	return `"` + n.Value + `"`
}

func (p *printer) VisitInt(n *ast.Int) interface{} {
	return strconv.Itoa(n.Value)
}

// VisitFloat appends a trailing ".0" when FormatFloat produces no
// decimal point (e.g. for 2.0): without it, the printed form would
// reparse as an Int under the grammar's `[0-9]+\.[0-9]+` float atom,
// silently changing the literal's type across a round trip.
func (p *printer) VisitFloat(n *ast.Float) interface{} {
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (p *printer) VisitRaw(n *ast.Raw) interface{} {
	return "`" + n.Value + "`"
}

func (p *printer) VisitCall(n *ast.Call) interface{} {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = p.expr(a)
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (p *printer) VisitOp(n *ast.Op) interface{} {
	return fmt.Sprintf("%s %s %s", p.expr(n.Left), n.Op, p.expr(n.Right))
}

func (p *printer) VisitParen(n *ast.Paren) interface{} {
	return "(" + p.expr(n.Inner) + ")"
}

func (p *printer) VisitInclude(n *ast.Include) interface{} {
	p.line(fmt.Sprintf(`include "%s"`, n.Path))
	return nil
}

func (p *printer) VisitAssign(n *ast.Assign) interface{} {
	p.line(fmt.Sprintf("%s = %s", n.Name, p.expr(n.Expr)))
	return nil
}

func (p *printer) VisitConnect(n *ast.Connect) interface{} {
	p.line(fmt.Sprintf("%s -> %s", p.expr(n.LHS), p.expr(n.RHS)))
	return nil
}

func (p *printer) VisitFunc(n *ast.Func) interface{} {
	p.line(fmt.Sprintf("%s(%s) {", n.Name, strings.Join(n.Params, ", ")))
	p.indent++
	for _, body := range n.Body {
		body.Accept(p)
	}
	p.indent--
	p.line("}")
	return nil
}

func (p *printer) VisitReturn(n *ast.Return) interface{} {
	p.line("return " + p.expr(n.Expr))
	return nil
}

func (p *printer) VisitArray(n *ast.Array) interface{} {
	p.line(fmt.Sprintf(`array "%s"`, n.Name))
	return nil
}

func (p *printer) VisitExprStmt(n *ast.ExprStmt) interface{} {
	p.line(p.expr(n.Expr))
	return nil
}
