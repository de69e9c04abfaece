package ast

// BaseVisitor provides a no-op implementation of every Visitor method.
// Embed it in a concrete visitor and override only the methods that
// matter.
//
// It deliberately does NOT recurse into child nodes on a concrete
// visitor's behalf: a promoted method inherited through embedding binds
// to the embedded BaseVisitor value, not to the outer type, so any
// child Accept call it made would bypass the outer type's overrides
// entirely. A visitor that needs to walk children (the printer in
// internal/patch/printer is one) calls Accept on them itself, from its
// own overridden method.
type BaseVisitor struct{}

func (BaseVisitor) VisitRef(*Ref) interface{}     { return nil }
func (BaseVisitor) VisitStr(*Str) interface{}     { return nil }
func (BaseVisitor) VisitInt(*Int) interface{}     { return nil }
func (BaseVisitor) VisitFloat(*Float) interface{} { return nil }
func (BaseVisitor) VisitRaw(*Raw) interface{}     { return nil }
func (BaseVisitor) VisitCall(*Call) interface{}   { return nil }
func (BaseVisitor) VisitOp(*Op) interface{}       { return nil }
func (BaseVisitor) VisitParen(*Paren) interface{} { return nil }

func (BaseVisitor) VisitInclude(*Include) interface{}   { return nil }
func (BaseVisitor) VisitAssign(*Assign) interface{}     { return nil }
func (BaseVisitor) VisitConnect(*Connect) interface{}   { return nil }
func (BaseVisitor) VisitFunc(*Func) interface{}         { return nil }
func (BaseVisitor) VisitReturn(*Return) interface{}     { return nil }
func (BaseVisitor) VisitArray(*Array) interface{}       { return nil }
func (BaseVisitor) VisitExprStmt(*ExprStmt) interface{} { return nil }
