// Package stdlib bundles the standard library of includable patch-DSL
// source files directly into the xipd binary, so `include "std.pd"` resolves
// even when no local copy of the standard library is on disk. A
// `--stdlib-root` flag or xipdrc setting can point at an on-disk
// standard library instead, for users developing against a patched copy.
package stdlib

import (
	"embed"
	"io/fs"
)

//go:embed files
var embedded embed.FS

// FS returns the embedded standard library rooted at the same level an
// on-disk --stdlib-root directory would be.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic("stdlib: embedded files directory is missing: " + err.Error())
	}
	return sub
}
