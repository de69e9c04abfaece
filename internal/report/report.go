// Package report defines the structured compile report emitted by
// `xipd compile --json`: node/wire counts gathered during expansion plus
// any warnings raised by the autoformatter.
package report

import "github.com/go-json-experiment/json"

// Stats counts what the expander emitted during one compilation.
type Stats struct {
	Objects  int `json:"objects"`
	Messages int `json:"messages"`
	Arrays   int `json:"arrays"`
	Wires    int `json:"wires"`
	Literals int `json:"literals"`
}

// Report is the top-level JSON document for --json output.
type Report struct {
	Stats     Stats    `json:"stats"`
	Formatted bool     `json:"formatted"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Marshal renders r as compact JSON, one line per report.
func Marshal(r Report) ([]byte, error) {
	return json.Marshal(r)
}
