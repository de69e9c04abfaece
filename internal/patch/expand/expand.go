// Package expand implements the expander/renderer: it walks a parsed
// statement tree in a scope, emitting patch-format lines while assigning
// monotonically increasing node indices, and recursively expands
// function calls into inlined node subgraphs.
package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xipd-lang/xipd/internal/patch/ast"
	"github.com/xipd-lang/xipd/internal/patch/include"
	"github.com/xipd-lang/xipd/internal/patch/parser"
	"github.com/xipd-lang/xipd/internal/patch/scope"
	"github.com/xipd-lang/xipd/internal/report"
)

// Error is an expansion-time error: an unknown reference or function,
// wrong arity, a function body without a return, or an invalid
// statement/expression shape.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Expander renders a parsed program into patch-format text.
type Expander struct {
	resolver *include.Resolver
	parser   *parser.Parser
	out      strings.Builder
	stats    report.Stats
}

// New creates an Expander that resolves includes through resolver.
func New(resolver *include.Resolver) *Expander {
	return &Expander{resolver: resolver, parser: parser.New()}
}

// Render parses src and expands it into patch-format text, returning the
// accumulated statistics alongside it. loc identifies src's own location
// for include resolution (the zero Location for an unnamed stream, e.g.
// standard input).
func (e *Expander) Render(src string, loc include.Location) (string, report.Stats, error) {
	stmts, err := e.parser.ParseFile(src)
	if err != nil {
		return "", report.Stats{}, err
	}

	root := scope.NewRoot()
	e.emit("N canvas")

	// The special reference !loadbang is always present in the root
	// scope: a node that fires once at load time, synthesized exactly
	// like a user-written `!loadbang = \`loadbang\`` assignment.
	loadbang := &ast.Assign{Name: "!loadbang", Expr: &ast.Raw{Value: "loadbang"}}
	if _, err := e.renderStmts([]ast.Stmt{loadbang}, root, loc); err != nil {
		return "", report.Stats{}, err
	}

	if _, err := e.renderStmts(stmts, root, loc); err != nil {
		return "", report.Stats{}, err
	}

	return e.out.String(), e.stats, nil
}

func (e *Expander) emit(format string, args ...interface{}) {
	e.out.WriteString("#")
	fmt.Fprintf(&e.out, format, args...)
	e.out.WriteString(";\r\n")
}

// renderStmts expands stmts in scope, threaded with loc so a nested
// include resolves relative to the file it actually appears in rather
// than the top-level compile unit. It returns the result reference of
// the first Return encountered, or nil if none was.
func (e *Expander) renderStmts(stmts []ast.Stmt, sc *scope.Scope, loc include.Location) (*scope.Ref, error) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Include:
			nextLoc, content, err := e.resolver.Resolve(s.Path, loc)
			if err != nil {
				return nil, &Error{Line: s.Line, Message: err.Error()}
			}
			included, err := e.parser.ParseFile(content)
			if err != nil {
				return nil, err
			}
			if _, err := e.renderStmts(included, sc, nextLoc); err != nil {
				return nil, err
			}

		case *ast.Assign:
			ref, err := e.exprToRef(s.Expr, sc, loc)
			if err != nil {
				return nil, err
			}
			sc.BindRef(s.Name, ref)

		case *ast.Connect:
			l, err := e.exprToRef(s.LHS, sc, loc)
			if err != nil {
				return nil, err
			}
			r, err := e.exprToRef(s.RHS, sc, loc)
			if err != nil {
				return nil, err
			}
			e.emit("X connect %d %d %d %d", l.Index, l.Port, r.Index, r.Port)
			e.stats.Wires++

		case *ast.Func:
			sc.BindFunc(s.Name, scope.Func{
				Params:  s.Params,
				Body:    s.Body,
				Capture: sc,
				DefLoc:  loc,
			})

		case *ast.Array:
			e.emit("X array %s", s.Name)
			sc.CreateNode()
			e.stats.Arrays++

		case *ast.Return:
			ref, err := e.exprToRef(s.Expr, sc, loc)
			if err != nil {
				return nil, err
			}
			return &ref, nil

		case *ast.ExprStmt:
			if _, err := e.exprToRef(s.Expr, sc, loc); err != nil {
				return nil, err
			}

		default:
			return nil, &Error{Message: fmt.Sprintf("invalid statement %T", stmt)}
		}
	}
	return nil, nil
}

// exprToRef expands a single expression into its (node index, port).
func (e *Expander) exprToRef(expr ast.Expr, sc *scope.Scope, loc include.Location) (scope.Ref, error) {
	switch ex := expr.(type) {
	case *ast.Ref:
		bound, ok := sc.LookupRef(ex.Name)
		if !ok {
			return scope.Ref{}, &Error{Line: ex.Line, Message: unknownRefMessage(ex.Name, sc)}
		}
		port := bound.Port
		if ex.Port != nil {
			port = *ex.Port
		}
		return scope.Ref{Index: bound.Index, Port: port}, nil

	case *ast.Raw:
		e.emit("X obj 0 0 %s", ex.Value)
		idx := sc.CreateNode()
		e.stats.Objects++
		return scope.Ref{Index: idx, Port: 0}, nil

	case *ast.Str:
		return e.literal(sc, ex.Value)

	case *ast.Int:
		return e.literal(sc, strconv.Itoa(ex.Value))

	case *ast.Float:
		return e.literal(sc, formatFloat(ex.Value))

	case *ast.Call:
		return e.call(ex.Name, ex.Args, sc, loc, ex.Line)

	case *ast.Op:
		fn := "op"
		if strings.HasSuffix(ex.Op, "~") {
			fn = "op_"
		}
		args := []ast.Expr{&ast.Raw{Line: ex.Line, Value: ex.Op}, ex.Left, ex.Right}
		return e.call(fn, args, sc, loc, ex.Line)

	case *ast.Paren:
		return e.exprToRef(ex.Inner, sc, loc)

	default:
		return scope.Ref{}, &Error{Message: fmt.Sprintf("invalid expression %T", expr)}
	}
}

// literal emits a message node for a str/int/float literal and wires it
// from !loadbang, per the auto-wiring invariant every literal carries.
func (e *Expander) literal(sc *scope.Scope, text string) (scope.Ref, error) {
	e.emit("X msg 0 0 %s", text)
	idx := sc.CreateNode()
	e.stats.Messages++
	e.stats.Literals++

	loadbang, ok := sc.LookupRef("!loadbang")
	if !ok {
		return scope.Ref{}, &Error{Message: "internal error: !loadbang not bound"}
	}
	e.emit("X connect %d %d %d %d", loadbang.Index, loadbang.Port, idx, 0)
	e.stats.Wires++
	return scope.Ref{Index: idx, Port: 0}, nil
}

// call expands a function call: arguments are expanded once in the
// caller's scope, then bound as references in a fresh child scope whose
// parent is the callee's capture scope, and the body is expanded in that
// child scope until a Return is hit.
func (e *Expander) call(name string, args []ast.Expr, callerScope *scope.Scope, loc include.Location, line int) (scope.Ref, error) {
	fn, ok := callerScope.LookupFunc(name)
	if !ok {
		return scope.Ref{}, &Error{Line: line, Message: unknownFuncMessage(name, callerScope)}
	}
	if len(args) != len(fn.Params) {
		return scope.Ref{}, &Error{Line: line, Message: fmt.Sprintf(
			"wrong number of arguments for function %s: want %d, got %d", name, len(fn.Params), len(args))}
	}

	child := scope.NewChild(fn.Capture)
	for i, param := range fn.Params {
		ref, err := e.exprToRef(args[i], callerScope, loc)
		if err != nil {
			return scope.Ref{}, err
		}
		child.BindRef(param, ref)
	}

	result, err := e.renderStmts(fn.Body, child, fn.DefLoc)
	if err != nil {
		return scope.Ref{}, err
	}
	if result == nil {
		return scope.Ref{}, &Error{Line: line, Message: fmt.Sprintf("missing return in function %s", name)}
	}
	return *result, nil
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
