package ast

// Visitor dispatches over every concrete expression and statement node.
// It mirrors the Accept/Visit pairing rather than a type switch, so a
// new tree-walking pass (the pretty-printer is one) only needs to
// override the methods it cares about and embed BaseVisitor for the
// rest.
type Visitor interface {
	VisitRef(n *Ref) interface{}
	VisitStr(n *Str) interface{}
	VisitInt(n *Int) interface{}
	VisitFloat(n *Float) interface{}
	VisitRaw(n *Raw) interface{}
	VisitCall(n *Call) interface{}
	VisitOp(n *Op) interface{}
	VisitParen(n *Paren) interface{}

	VisitInclude(n *Include) interface{}
	VisitAssign(n *Assign) interface{}
	VisitConnect(n *Connect) interface{}
	VisitFunc(n *Func) interface{}
	VisitReturn(n *Return) interface{}
	VisitArray(n *Array) interface{}
	VisitExprStmt(n *ExprStmt) interface{}
}

func (n *Ref) Accept(v Visitor) interface{}      { return v.VisitRef(n) }
func (n *Str) Accept(v Visitor) interface{}      { return v.VisitStr(n) }
func (n *Int) Accept(v Visitor) interface{}      { return v.VisitInt(n) }
func (n *Float) Accept(v Visitor) interface{}    { return v.VisitFloat(n) }
func (n *Raw) Accept(v Visitor) interface{}      { return v.VisitRaw(n) }
func (n *Call) Accept(v Visitor) interface{}     { return v.VisitCall(n) }
func (n *Op) Accept(v Visitor) interface{}       { return v.VisitOp(n) }
func (n *Paren) Accept(v Visitor) interface{}    { return v.VisitParen(n) }
func (n *Include) Accept(v Visitor) interface{}  { return v.VisitInclude(n) }
func (n *Assign) Accept(v Visitor) interface{}   { return v.VisitAssign(n) }
func (n *Connect) Accept(v Visitor) interface{}  { return v.VisitConnect(n) }
func (n *Func) Accept(v Visitor) interface{}     { return v.VisitFunc(n) }
func (n *Return) Accept(v Visitor) interface{}   { return v.VisitReturn(n) }
func (n *Array) Accept(v Visitor) interface{}    { return v.VisitArray(n) }
func (n *ExprStmt) Accept(v Visitor) interface{} { return v.VisitExprStmt(n) }
