// Package include implements the patch-DSL's two-tier include lookup:
// a path relative to the including file, falling back to a bundled
// stdlib filesystem.
package include

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Location identifies where a source file came from, so that an include
// statement inside it resolves relative to the right tier. The zero
// Location means "the top-level compile unit, local tier, rooted at the
// current working directory" (used when the input stream is unnamed,
// e.g. standard input).
type Location struct {
	Stdlib bool
	Path   string
}

// Resolver resolves include paths against the local filesystem first,
// then against an embedded (or overridden) stdlib filesystem.
type Resolver struct {
	Stdlib fs.FS
}

// New creates a Resolver backed by stdlibFS.
func New(stdlibFS fs.FS) *Resolver {
	return &Resolver{Stdlib: stdlibFS}
}

// Resolve looks up importPath relative to from. For a local from, it
// tries the directory containing from (or "." for the zero Location)
// on disk; for a stdlib from, it tries the directory containing from
// inside the stdlib filesystem instead, and the local disk is not
// consulted. Either way it then falls back to importPath rooted at the
// stdlib root.
func (r *Resolver) Resolve(importPath string, from Location) (Location, string, error) {
	if !from.Stdlib {
		dir := "."
		if from.Path != "" {
			dir = filepath.Dir(from.Path)
		}
		candidate := filepath.Join(dir, importPath)
		if data, err := os.ReadFile(candidate); err == nil {
			return Location{Path: candidate}, string(data), nil
		}
	} else {
		dir := path.Dir(from.Path)
		candidate := path.Join(dir, importPath)
		if data, err := fs.ReadFile(r.Stdlib, candidate); err == nil {
			return Location{Stdlib: true, Path: candidate}, string(data), nil
		}
	}

	clean := path.Clean(importPath)
	if data, err := fs.ReadFile(r.Stdlib, clean); err == nil {
		return Location{Stdlib: true, Path: clean}, string(data), nil
	}

	return Location{}, "", fmt.Errorf("include %q: not found locally or in stdlib", importPath)
}
