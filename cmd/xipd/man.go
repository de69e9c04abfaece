package main

import (
	"io"

	"github.com/cpuguy83/go-md2man/v2/md2man"
)

const manSource = `# XIPD 1 "" "xipd" "User Commands"

## NAME

xipd - compile patch-DSL source into patch-format output

## SYNOPSIS

**xipd compile** [*FILE*] [**--no-autoformat**] [**--stdlib-root** *DIR*] [**--dot-path** *PATH*] [**--config** *FILE*] [**--json**]

**xipd serve** *FILE* [**--addr** *ADDR*]

## DESCRIPTION

xipd parses a patch-DSL source file, expands function calls and operator
expressions into a flat graph of objects and wires, and emits
patch-format text. By default the output is passed through an external
layout tool to assign node coordinates; **--no-autoformat** skips this.

**xipd serve** watches *FILE* for changes, recompiling and streaming the
result to any connected viewer over a websocket.

## OPTIONS

**--no-autoformat**
: Skip the layout post-pass; emitted nodes keep coordinates 0 0.

**--stdlib-root** *DIR*
: Resolve unresolved includes against *DIR* instead of the compiler's
embedded standard library.

**--dot-path** *PATH*
: Path to the layout tool binary (default: **dot** on **PATH**).

**--config** *FILE*
: Project settings file (default: **.xipdrc.json**).

**--json**
: Print a structured compile report to standard error.
`

func renderMan(w io.Writer) error {
	_, err := w.Write(md2man.Render([]byte(manSource)))
	return err
}
