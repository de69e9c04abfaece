package xipdconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected a missing config file to not be an error, got %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("expected zero Config, got %#v", cfg)
	}
}

func TestLoadParsesKnownKeysAndIgnoresUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xipdrc.json")
	content := `{"stdlibRoot": "/opt/xipd/std", "dotPath": "/usr/bin/dot", "noAutoformat": true, "futureKey": 42}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StdlibRoot != "/opt/xipd/std" {
		t.Errorf("unexpected StdlibRoot: %q", cfg.StdlibRoot)
	}
	if cfg.DotPath != "/usr/bin/dot" {
		t.Errorf("unexpected DotPath: %q", cfg.DotPath)
	}
	if !cfg.NoAutoformat {
		t.Error("expected NoAutoformat to be true")
	}
}

func TestMergePrefersOverrideNonZeroFields(t *testing.T) {
	base := Config{StdlibRoot: "/base/std", DotPath: "/base/dot"}
	override := Config{DotPath: "/override/dot"}

	result := Merge(base, override)
	if result.StdlibRoot != "/base/std" {
		t.Errorf("expected base StdlibRoot to survive, got %q", result.StdlibRoot)
	}
	if result.DotPath != "/override/dot" {
		t.Errorf("expected override DotPath to win, got %q", result.DotPath)
	}
}
