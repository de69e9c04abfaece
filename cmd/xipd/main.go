// Command xipd compiles patch-DSL source into patch-format text.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/xipd-lang/xipd/internal/devserver"
	"github.com/xipd-lang/xipd/internal/patch/autoformat"
	"github.com/xipd-lang/xipd/internal/patch/include"
	"github.com/xipd-lang/xipd/internal/report"
	"github.com/xipd-lang/xipd/internal/xipdconfig"
)

func main() {
	app := &cli.App{
		Name:  "xipd",
		Usage: "compile patch-DSL source into patch-format output",
		Commands: []*cli.Command{
			compileCommand(),
			serveCommand(),
			manCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "xipd:", err)
		os.Exit(1)
	}
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile a patch-DSL source file to patch-format text",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-autoformat", Usage: "skip the layout post-pass"},
			&cli.StringFlag{Name: "stdlib-root", Usage: "directory to resolve stdlib includes from instead of the embedded copy"},
			&cli.StringFlag{Name: "dot-path", Usage: "path to the dot binary"},
			&cli.StringFlag{Name: "config", Value: ".xipdrc.json", Usage: "path to the project config file"},
			&cli.BoolFlag{Name: "json", Usage: "print a structured compile report to stderr"},
		},
		Action: runCompile,
	}
}

func runCompile(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	entry := c.Args().First()
	var src []byte
	var loc include.Location
	if entry == "" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(entry)
		loc = include.Location{Path: entry}
	}
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	output, stats, err := compileSource(string(src), loc, cfg)
	if err != nil {
		return err
	}

	warnings := []string{}
	formatted := true
	if !cfg.NoAutoformat {
		formatter := autoformat.New(cfg.DotPath, warnStream(&warnings))
		output, err = formatter.Run(c.Context, output)
		if err != nil {
			return fmt.Errorf("autoformat: %w", err)
		}
		if len(warnings) > 0 {
			formatted = false
		}
	} else {
		formatted = false
	}

	fmt.Print(output)

	if c.Bool("json") {
		rep := report.Report{Stats: stats, Formatted: formatted, Warnings: warnings}
		data, err := report.Marshal(rep)
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(os.Stderr, string(data))
	}
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "recompile on change and stream the result to connected viewers",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8420", Usage: "address to listen on"},
			&cli.StringFlag{Name: "stdlib-root"},
			&cli.StringFlag{Name: "dot-path"},
			&cli.StringFlag{Name: "config", Value: ".xipdrc.json"},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	entry := c.Args().First()
	if entry == "" {
		return fmt.Errorf("serve requires a FILE argument")
	}

	compile := func(ctx context.Context, entryPath string) (string, error) {
		src, err := os.ReadFile(entryPath)
		if err != nil {
			return "", err
		}
		output, _, err := compileSource(string(src), include.Location{Path: entryPath}, cfg)
		if err != nil {
			return "", err
		}
		if !cfg.NoAutoformat {
			formatter := autoformat.New(cfg.DotPath, os.Stderr)
			output, err = formatter.Run(ctx, output)
			if err != nil {
				return "", err
			}
		}
		return output, nil
	}

	srv := devserver.New(entry, compile)
	mux := http.NewServeMux()
	mux.Handle("/ws", srv)

	addr := c.String("addr")
	httpSrv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()

	fmt.Fprintf(os.Stderr, "xipd serve: watching %s, viewers connect to ws://%s/ws\n", entry, addr)

	watchErr := make(chan error, 1)
	go func() { watchErr <- srv.Watch(c.Context) }()

	select {
	case err := <-errc:
		return err
	case err := <-watchErr:
		return err
	case <-c.Context.Done():
		return httpSrv.Close()
	}
}

func manCommand() *cli.Command {
	return &cli.Command{
		Name:  "man",
		Usage: "print the xipd man page",
		Action: func(c *cli.Context) error {
			return renderMan(os.Stdout)
		},
	}
}

func loadConfig(c *cli.Context) (xipdconfig.Config, error) {
	base, err := xipdconfig.Load(c.String("config"))
	if err != nil {
		return xipdconfig.Config{}, err
	}
	override := xipdconfig.Config{
		StdlibRoot:   c.String("stdlib-root"),
		DotPath:      c.String("dot-path"),
		NoAutoformat: c.Bool("no-autoformat"),
	}
	return xipdconfig.Merge(base, override), nil
}

func warnStream(into *[]string) *warnCollector {
	return &warnCollector{into: into}
}

// warnCollector adapts autoformat.Formatter's io.Writer-based warning
// hook into the string slice a --json report needs.
type warnCollector struct{ into *[]string }

func (w *warnCollector) Write(p []byte) (int, error) {
	*w.into = append(*w.into, string(p))
	return len(p), nil
}

func stdlibRoot(cfg xipdconfig.Config) (string, bool) {
	if cfg.StdlibRoot == "" {
		return "", false
	}
	return filepath.Clean(cfg.StdlibRoot), true
}
