package scope

import "testing"

func TestLookupWalksParentChain(t *testing.T) {
	root := NewRoot()
	root.BindRef("a", Ref{Index: 0, Port: 0})

	child := NewChild(root)
	if _, ok := child.LookupRef("a"); !ok {
		t.Fatal("expected child to see parent's binding")
	}

	child.BindRef("a", Ref{Index: 1, Port: 0})
	ref, _ := child.LookupRef("a")
	if ref.Index != 1 {
		t.Errorf("expected child's own binding to shadow parent, got index %d", ref.Index)
	}
	parentRef, _ := root.LookupRef("a")
	if parentRef.Index != 0 {
		t.Errorf("expected parent binding to be untouched, got index %d", parentRef.Index)
	}
}

func TestCreateNodeSharesCounterAcrossScopes(t *testing.T) {
	root := NewRoot()
	child := NewChild(root)
	grandchild := NewChild(child)

	a := root.CreateNode()
	b := child.CreateNode()
	c := grandchild.CreateNode()

	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("expected dense indices 0,1,2, got %d,%d,%d", a, b, c)
	}
}

func TestLookupFuncMissing(t *testing.T) {
	root := NewRoot()
	if _, ok := root.LookupFunc("nope"); ok {
		t.Fatal("expected lookup of unbound function to fail")
	}
}

func TestFuncCapturesDefiningScopeNotCallSite(t *testing.T) {
	defScope := NewRoot()
	defScope.BindRef("x", Ref{Index: 5})

	fn := Func{Params: nil, Body: nil, Capture: defScope}
	defScope.BindFunc("f", fn)

	callSite := NewChild(defScope)
	callSite.BindRef("x", Ref{Index: 99})

	got, ok := callSite.LookupFunc("f")
	if !ok {
		t.Fatal("expected to find f via parent chain")
	}
	// The call frame should be built as NewChild(got.Capture), which
	// resolves "x" through defScope (5), not through the call site (99).
	frame := NewChild(got.Capture)
	ref, ok := frame.LookupRef("x")
	if !ok || ref.Index != 5 {
		t.Errorf("expected captured scope's x=5, got %#v ok=%v", ref, ok)
	}
}
