// Package autoformat implements the layout post-processor: it projects
// an emitted patch into the external layout tool's graph language,
// invokes the tool as a subprocess, and back-patches the coordinates it
// reports into the original patch text.
package autoformat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jpillora/backoff"
	"github.com/shopspring/decimal"
)

// DefaultTool is the external layout binary invoked by Run.
const DefaultTool = "dot"

// Formatter invokes an external graph-layout tool to assign patch node
// coordinates.
type Formatter struct {
	// Tool is the binary name or path to invoke; defaults to "dot".
	Tool string
	// Warn receives the single warning line logged when Tool cannot be
	// found; nil discards it.
	Warn io.Writer
}

// New creates a Formatter. An empty tool defaults to DefaultTool.
func New(tool string, warn io.Writer) *Formatter {
	if tool == "" {
		tool = DefaultTool
	}
	return &Formatter{Tool: tool, Warn: warn}
}

// Run projects patch into the layout tool's input language, invokes the
// tool, and returns patch with coordinate fields replaced. If the tool
// binary cannot be found, it logs one warning to Warn and returns patch
// unchanged, per the spec's layout-tool-missing downgrade.
func (f *Formatter) Run(ctx context.Context, patch string) (string, error) {
	dotInput := toDot(patch)

	stdout, err := f.invoke(ctx, dotInput)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			if f.Warn != nil {
				fmt.Fprintf(f.Warn, "WARNING: %s could not be found. Formatting is disabled.\n", f.Tool)
			}
			return patch, nil
		}
		return "", err
	}

	positions := parsePositions(stdout)
	return applyPositions(patch, positions)
}

// invoke runs the layout tool once, retrying a small, fixed number of
// times only for OS-level start failures that are plausibly transient
// (resource exhaustion, not a missing binary). A nonzero exit from the
// tool itself is not an error: its stdout, however partial, is still
// used (spec: "treated the same as a successful exit with empty output").
func (f *Formatter) invoke(ctx context.Context, input string) (string, error) {
	b := &backoff.Backoff{Min: 10 * time.Millisecond, Max: 200 * time.Millisecond, Factor: 2, Jitter: true}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		cmd := exec.CommandContext(ctx, f.Tool)
		cmd.Stdin = strings.NewReader(input)
		var stdout bytes.Buffer
		cmd.Stdout = &stdout

		err := cmd.Run()
		if err == nil {
			return stdout.String(), nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Nonzero exit: treat like success with whatever stdout
			// the tool produced.
			return stdout.String(), nil
		}
		if !errors.Is(err, syscall.ENOMEM) && !errors.Is(err, syscall.EAGAIN) {
			// Not a transient start failure (a missing binary is one
			// such case): no retry.
			return "", err
		}

		lastErr = err
		time.Sleep(b.Duration())
	}
	return "", lastErr
}

var (
	reConnect = regexp.MustCompile(`^#X connect (\S+) (\S+) (\S+) (\S+);?`)
	reObjMsg  = regexp.MustCompile(`^#X (obj|msg) `)
	reArray   = regexp.MustCompile(`^#X array `)
	rePos     = regexp.MustCompile(`^\s*([0-9]+).*pos="([0-9.]+),([0-9.]+)"`)
)

// toDot projects a rendered patch into a `digraph` graph description.
// Directionality is reversed (dst -> src) to match the layout tool's
// top-down-from-sinks convention; arrays advance the node counter but
// are not emitted as graph nodes.
func toDot(patch string) string {
	var out strings.Builder
	out.WriteString("digraph _ {\n")
	index := 0
	for _, line := range splitLines(patch) {
		switch {
		case reConnect.MatchString(line):
			m := reConnect.FindStringSubmatch(line)
			fmt.Fprintf(&out, "  %s -> %s;\n", m[3], m[1])
		case reObjMsg.MatchString(line):
			fmt.Fprintf(&out, "  %d;\n", index)
			index++
		case reArray.MatchString(line):
			index++
		}
	}
	out.WriteString("}\n")
	return out.String()
}

// position is a decimal pair; using decimal.Decimal rather than float64
// means coordinates round-trip through the layout tool's textual output
// exactly instead of picking up binary-float formatting noise.
type position struct {
	X, Y decimal.Decimal
}

func parsePositions(dotOutput string) map[int]position {
	joined := strings.ReplaceAll(dotOutput, ",\n", ", ")
	positions := map[int]position{}
	for _, line := range splitLines(joined) {
		m := rePos.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		x, errX := decimal.NewFromString(m[2])
		y, errY := decimal.NewFromString(m[3])
		if errX != nil || errY != nil {
			continue
		}
		positions[idx] = position{X: x, Y: y}
	}
	return positions
}

// applyPositions replaces the x/y fields of every #X obj/msg line with
// the tool-reported coordinates. A node index missing from positions
// (e.g. the tool exited without emitting it) is surfaced as an error
// rather than silently left at 0 0.
func applyPositions(patch string, positions map[int]position) (string, error) {
	var out strings.Builder
	index := 0
	for _, line := range splitLines(patch) {
		switch {
		case reObjMsg.MatchString(line):
			pos, ok := positions[index]
			if !ok {
				return "", fmt.Errorf("autoformat: no position reported for node %d", index)
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return "", fmt.Errorf("autoformat: malformed patch line %q", line)
			}
			fields[2] = pos.X.String()
			fields[3] = pos.Y.String()
			out.WriteString(strings.Join(fields, " "))
			out.WriteString("\r\n")
			index++
		case reArray.MatchString(line):
			out.WriteString(line)
			out.WriteString("\r\n")
			index++
		default:
			out.WriteString(line)
			out.WriteString("\r\n")
		}
	}
	return out.String(), nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
