package main

import (
	"io/fs"
	"os"

	"github.com/xipd-lang/xipd/internal/patch/expand"
	"github.com/xipd-lang/xipd/internal/patch/include"
	"github.com/xipd-lang/xipd/internal/report"
	"github.com/xipd-lang/xipd/internal/stdlib"
	"github.com/xipd-lang/xipd/internal/xipdconfig"
)

// compileSource parses and expands src, resolving includes through the
// on-disk stdlib root named in cfg when set, falling back to the binary's
// embedded copy otherwise.
func compileSource(src string, loc include.Location, cfg xipdconfig.Config) (string, report.Stats, error) {
	resolver := include.New(resolveStdlibFS(cfg))
	expander := expand.New(resolver)
	return expander.Render(src, loc)
}

func resolveStdlibFS(cfg xipdconfig.Config) fs.FS {
	if root, ok := stdlibRoot(cfg); ok {
		return os.DirFS(root)
	}
	return stdlib.FS()
}
