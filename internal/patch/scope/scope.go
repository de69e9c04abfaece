// Package scope implements the lexically nested symbol table used while
// expanding a parsed patch-DSL program: a parent-linked chain of frames,
// each holding a references namespace and a functions namespace.
package scope

import (
	"github.com/xipd-lang/xipd/internal/patch/ast"
	"github.com/xipd-lang/xipd/internal/patch/include"
)

// Ref is a bound (node index, output port) pair.
type Ref struct {
	Index int
	Port  int
}

// Func is a bound function value: its parameter names, its body, the
// scope it closes over (not the scope of the call site), and the source
// location its body should resolve includes relative to.
type Func struct {
	Params  []string
	Body    []ast.Stmt
	Capture *Scope
	DefLoc  include.Location
}

// Scope is one frame of the lexical chain.
type Scope struct {
	parent *Scope
	refs   map[string]Ref
	funcs  map[string]Func
	// nodeCount lives only on the root frame; every Scope reaches it
	// through root(), so every frame shares one monotonically
	// increasing counter for the whole compilation.
	nodeCount *int
}

// NewRoot creates a root scope with a fresh node-index counter.
func NewRoot() *Scope {
	n := 0
	return &Scope{refs: map[string]Ref{}, funcs: map[string]Func{}, nodeCount: &n}
}

// NewChild creates a scope whose parent is parent. Used both for
// ordinary nested scopes and for call frames, whose parent is the
// callee's capture scope rather than the caller's scope.
func NewChild(parent *Scope) *Scope {
	return &Scope{parent: parent, refs: map[string]Ref{}, funcs: map[string]Func{}}
}

func (s *Scope) root() *Scope {
	if s.parent != nil {
		return s.parent.root()
	}
	return s
}

// CreateNode allocates and returns the next node index, dense and
// 0-based across the whole compilation.
func (s *Scope) CreateNode() int {
	r := s.root()
	idx := *r.nodeCount
	*r.nodeCount++
	return idx
}

// BindRef binds name to ref in this frame only.
func (s *Scope) BindRef(name string, ref Ref) {
	s.refs[name] = ref
}

// LookupRef walks the parent chain looking for name.
func (s *Scope) LookupRef(name string) (Ref, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ref, ok := cur.refs[name]; ok {
			return ref, true
		}
	}
	return Ref{}, false
}

// BindFunc binds name to fn in this frame only.
func (s *Scope) BindFunc(name string, fn Func) {
	s.funcs[name] = fn
}

// LookupFunc walks the parent chain looking for name. The returned
// Func.Capture is the scope in which the function was defined.
func (s *Scope) LookupFunc(name string) (Func, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if fn, ok := cur.funcs[name]; ok {
			return fn, true
		}
	}
	return Func{}, false
}

// RefNames collects every reference name visible from this scope,
// innermost frame first. Used to build "did you mean" suggestions.
func (s *Scope) RefNames() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.refs {
			names = append(names, name)
		}
	}
	return names
}

// FuncNames collects every function name visible from this scope.
func (s *Scope) FuncNames() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.funcs {
			names = append(names, name)
		}
	}
	return names
}
