//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Format runs gofmt on this module's own packages. It deliberately
// names cmd and internal rather than "." (the teacher's original
// scope): gofmt's directory walk has no equivalent of go build's
// implicit skip of leading-underscore directories, so a bare "." here
// would rewrite the read-only reference trees that ship alongside this
// module.
func Format() error {
	fmt.Println("Running gofmt...")
	return sh.RunV("gofmt", "-w", "cmd", "internal", "magefile.go")
}

// Vet runs go vet on all packages
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all tests with the race detector on, since internal/devserver
// and internal/devcache share state across the watch goroutine and every
// session's read/write loops.
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Build builds the xipd binary
func Build() error {
	fmt.Println("Building xipd...")
	return sh.RunV("go", "build", "-o", "xipd", "./cmd/xipd")
}

// PreCommit runs all pre-commit checks (format, vet, test, build)
func PreCommit() error {
	fmt.Println("Running pre-commit checks...")
	mg.Deps(Format)
	mg.Deps(Vet)
	mg.Deps(Test)
	mg.Deps(Build)
	fmt.Println("✓ All pre-commit checks passed!")
	return nil
}

// CI runs all CI checks
func CI() error {
	fmt.Println("Running CI checks...")
	if err := PreCommit(); err != nil {
		return err
	}
	fmt.Println("✓ All CI checks passed!")
	return nil
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	return sh.Run("sh", "-c", "rm -f xipd *.test")
}

// Default target runs PreCommit, so `mage` with no arguments runs the
// same gate a change to the compiler or dev server must pass before commit.
var Default = PreCommit
