package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/scanner"
)

// newTestInterpreter returns an interpreter writing into the returned buffer.
func newTestInterpreter(opts Options) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	opts.Stdout = &out
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	return New(opts), &out
}

// runSource pushes source through every stage and returns the interpreter's
// error. Static errors fail the test.
func runSource(t *testing.T, interp *Interpreter, source string) error {
	t.Helper()
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	locals, resolveErrs := resolver.New().Resolve(stmts)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}
	return interp.Interpret(stmts, locals)
}

// expectOutput runs source in a fresh interpreter and compares printed lines.
func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	interp, out := newTestInterpreter(Options{})
	if err := runSource(t, interp, source); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	checkLines(t, out.String(), want)
}

// expectRuntimeError runs source and checks the error message plus the lines
// printed before the failure.
func expectRuntimeError(t *testing.T, source string, message string, printed ...string) *RuntimeError {
	t.Helper()
	interp, out := newTestInterpreter(Options{})
	err := runSource(t, interp, source)
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %#v", err)
	}
	if rerr.Message != message {
		t.Fatalf("expected runtime error %q, got %q", message, rerr.Message)
	}
	checkLines(t, out.String(), printed)
	return rerr
}

func checkLines(t *testing.T, output string, want []string) {
	t.Helper()
	got := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if output == "" {
		got = nil
	}
	if len(got) != len(want) {
		t.Fatalf("expected output %q, got %q", want, got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("line %d: expected %q, got %q (full output %q)", idx, want[idx], got[idx], got)
		}
	}
}
