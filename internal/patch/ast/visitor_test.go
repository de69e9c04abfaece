package ast

import "testing"

// countingVisitor counts visited Ref nodes. It overrides every method
// whose node type can contain a Ref, and does its own recursion from
// each override, since BaseVisitor's no-op methods never call back into
// an embedding type's overrides (see base_visitor.go).
type countingVisitor struct {
	BaseVisitor
	refs int
}

func (c *countingVisitor) VisitRef(n *Ref) interface{} {
	c.refs++
	return nil
}

func (c *countingVisitor) VisitOp(n *Op) interface{} {
	n.Left.Accept(c)
	n.Right.Accept(c)
	return nil
}

func (c *countingVisitor) VisitParen(n *Paren) interface{} {
	return n.Inner.Accept(c)
}

func (c *countingVisitor) VisitCall(n *Call) interface{} {
	for _, a := range n.Args {
		a.Accept(c)
	}
	return nil
}

func (c *countingVisitor) VisitReturn(n *Return) interface{} {
	return n.Expr.Accept(c)
}

func (c *countingVisitor) VisitFunc(n *Func) interface{} {
	for _, s := range n.Body {
		s.Accept(c)
	}
	return nil
}

func TestVisitorDispatchesToOverriddenMethod(t *testing.T) {
	c := &countingVisitor{}
	(&Ref{Name: "a"}).Accept(c)
	if c.refs != 1 {
		t.Fatalf("expected 1 ref visited, got %d", c.refs)
	}
}

func TestOverriddenVisitorRecursesThroughItsOwnMethods(t *testing.T) {
	// (a + b) * f(c, d)
	expr := &Op{
		Op:   "*",
		Left: &Paren{Inner: &Op{Op: "+", Left: &Ref{Name: "a"}, Right: &Ref{Name: "b"}}},
		Right: &Call{
			Name: "f",
			Args: []Expr{&Ref{Name: "c"}, &Ref{Name: "d"}},
		},
	}

	c := &countingVisitor{}
	expr.Accept(c)

	if c.refs != 4 {
		t.Fatalf("expected 4 refs visited, got %d", c.refs)
	}
}

func TestUnoverriddenMethodIsANoOp(t *testing.T) {
	c := &countingVisitor{}
	// Array carries no Ref; its BaseVisitor default must not panic and
	// must not touch refs.
	(&Array{Name: "buf"}).Accept(c)
	if c.refs != 0 {
		t.Fatalf("expected VisitArray's no-op default to leave refs untouched, got %d", c.refs)
	}
}
