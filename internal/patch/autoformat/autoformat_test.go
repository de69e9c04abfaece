package autoformat

import (
	"strings"
	"testing"
)

func TestToDotReversesWireDirectionAndSkipsArrays(t *testing.T) {
	patch := "#N canvas;\r\n" +
		"#X obj 0 0 osc~ 440;\r\n" +
		"#X array buf;\r\n" +
		"#X obj 0 0 dac~;\r\n" +
		"#X connect 0 0 2 0;\r\n"

	dot := toDot(patch)
	if !strings.Contains(dot, "digraph _ {") {
		t.Fatal("expected a digraph wrapper")
	}
	// Node 0 is osc~, node 1 is the array (no node line), node 2 is dac~.
	if !strings.Contains(dot, "  0;\n") {
		t.Errorf("expected node 0 emitted, got:\n%s", dot)
	}
	if !strings.Contains(dot, "  2;\n") {
		t.Errorf("expected node 2 emitted, got:\n%s", dot)
	}
	// Connect 0->2 should be reversed to "2 -> 0" in the layout graph.
	if !strings.Contains(dot, "2 -> 0;") {
		t.Errorf("expected reversed edge 2 -> 0, got:\n%s", dot)
	}
}

func TestParsePositionsHandlesWrappedLines(t *testing.T) {
	out := "0 [label=a,\npos=\"12,34\"];\n1 [label=b, pos=\"5.5,6.5\"];\n"
	positions := parsePositions(out)
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d: %#v", len(positions), positions)
	}
	if positions[0].X.String() != "12" || positions[0].Y.String() != "34" {
		t.Errorf("unexpected position for node 0: %#v", positions[0])
	}
	if positions[1].X.String() != "5.5" || positions[1].Y.String() != "6.5" {
		t.Errorf("unexpected position for node 1: %#v", positions[1])
	}
}

func TestApplyPositionsBackPatchesCoordinates(t *testing.T) {
	patch := "#N canvas;\r\n#X obj 0 0 osc~ 440;\r\n#X connect 0 0 0 0;\r\n"
	positions := map[int]position{0: mustPos(t, "100", "200")}

	out, err := applyPositions(patch, positions)
	if err != nil {
		t.Fatalf("applyPositions failed: %v", err)
	}
	if !strings.Contains(out, "#X obj 100 200 osc~ 440") {
		t.Errorf("expected back-patched coordinates, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Error("expected CRLF line endings preserved")
	}
}

func TestApplyPositionsErrorsOnMissingIndex(t *testing.T) {
	patch := "#X obj 0 0 osc~ 440;\r\n"
	_, err := applyPositions(patch, map[int]position{})
	if err == nil {
		t.Fatal("expected an error when the layout tool never reported this node")
	}
}

func mustPos(t *testing.T, x, y string) position {
	t.Helper()
	positions := parsePositions("0 [pos=\"" + x + "," + y + "\"];\n")
	return positions[0]
}
