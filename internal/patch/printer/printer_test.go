package printer

import (
	"testing"

	"github.com/xipd-lang/xipd/internal/patch/parser"
)

func roundTrip(t *testing.T, src string) {
	t.Helper()
	p := parser.New()
	stmts, err := p.ParseFile(src)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	printed := Print(stmts)

	reparsed, err := p.ParseFile(printed)
	if err != nil {
		t.Fatalf("reparsing printed output failed: %v\nprinted:\n%s", err, printed)
	}
	printedAgain := Print(reparsed)
	if printed != printedAgain {
		t.Fatalf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", printed, printedAgain)
	}
}

func TestRoundTripAssignConnect(t *testing.T) {
	roundTrip(t, "a = `osc~ 440`\nb = `dac~`\na -> b\na:0 -> b:1\n")
}

func TestRoundTripFunc(t *testing.T) {
	roundTrip(t, "add(a, b) {\n\treturn a + b\n}\nr = add(1, 2)\n")
}

func TestRoundTripIntegerValuedFloatStaysFloat(t *testing.T) {
	// 2.0 must print with a decimal point, or it would reparse as an Int
	// and silently change type across the round trip.
	roundTrip(t, "r = 2.0\n")
}

func TestRoundTripStringAndArray(t *testing.T) {
	roundTrip(t, "include \"std.pd\"\narray \"buf\"\nr = \"hello world\"\n")
}

func TestRoundTripParens(t *testing.T) {
	roundTrip(t, "r = (a + b) * c\n")
}
