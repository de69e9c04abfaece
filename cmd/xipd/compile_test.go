package main

import (
	"os"
	"strings"
	"testing"

	"github.com/xipd-lang/xipd/internal/patch/include"
	"github.com/xipd-lang/xipd/internal/xipdconfig"
)

func TestCompileSourceUsesEmbeddedStdlibByDefault(t *testing.T) {
	src, err := os.ReadFile("../../testdata/synth.pd")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	output, stats, err := compileSource(string(src), include.Location{Path: "../../testdata/synth.pd"}, xipdconfig.Config{})
	if err != nil {
		t.Fatalf("compileSource failed: %v", err)
	}
	if !strings.HasPrefix(output, "#N canvas;\r\n") {
		t.Fatalf("expected a canvas header, got:\n%s", output)
	}
	if stats.Objects == 0 {
		t.Error("expected at least one object node")
	}
	if stats.Wires == 0 {
		t.Error("expected at least one wire")
	}
}

func TestCompileSourceHonorsOnDiskStdlibRootOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/std.pd", []byte("op(o, a, b) {\n\treturn o\n}\n"), 0o644); err != nil {
		t.Fatalf("writing override stdlib: %v", err)
	}

	cfg := xipdconfig.Config{StdlibRoot: dir}
	src := "include \"std.pd\"\na = `r`\nb = `r`\nr = a + b\n"
	output, _, err := compileSource(src, include.Location{}, cfg)
	if err != nil {
		t.Fatalf("compileSource failed: %v", err)
	}
	if !strings.Contains(output, "#X obj 0 0 +;\r\n") {
		t.Fatalf("expected the override stdlib's op() to still allocate the operator node, got:\n%s", output)
	}
	// The override op() (unlike the embedded one) never wires a/b into
	// the operator node, and a/b are raw objects (not literals), so they
	// carry no implicit loadbang wire either: no #X connect line at all.
	if strings.Contains(output, "#X connect") {
		t.Fatalf("expected no connects with the override stdlib's no-op wiring, got:\n%s", output)
	}
}
