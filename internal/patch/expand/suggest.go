package expand

import (
	"fmt"

	"github.com/xrash/smetrics"

	"github.com/xipd-lang/xipd/internal/patch/scope"
)

// suggestThreshold is the minimum Jaro-Winkler similarity before a name
// is offered as a "did you mean" suggestion; below it, unrelated names
// produce more noise than help.
const suggestThreshold = 0.78

// closest returns the candidate most similar to name by Jaro-Winkler
// distance, or "" if nothing clears suggestThreshold.
func closest(name string, candidates []string) string {
	best := ""
	bestScore := suggestThreshold
	for _, c := range candidates {
		if c == name {
			continue
		}
		score := smetrics.JaroWinkler(name, c, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func unknownRefMessage(name string, sc *scope.Scope) string {
	msg := fmt.Sprintf("unknown reference %q", name)
	if s := closest(name, sc.RefNames()); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}

func unknownFuncMessage(name string, sc *scope.Scope) string {
	msg := fmt.Sprintf("unknown function %q", name)
	if s := closest(name, sc.FuncNames()); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}
