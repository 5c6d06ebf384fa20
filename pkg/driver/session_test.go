package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ztrue/tracerr"
)

func newTestSession(cfg *Config, stdin string) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	session := NewSession(cfg, SessionOptions{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Clock:  func() time.Time { return time.Unix(1700000000, 0) },
	})
	return session, &stdout, &stderr
}

func TestRunPersistsDefinitionsAcrossRuns(t *testing.T) {
	session, stdout, _ := newTestSession(nil, "")
	session.Run("var a = 1; fun twice(n) { return n * 2; }")
	session.Run("class Box { init(v) { this.v = v; } }")
	session.Run("print twice(a) + Box(3).v;")
	if got := stdout.String(); got != "5\n" {
		t.Fatalf("expected 5, got %q", got)
	}
	if session.ExitCode() != ExitOK {
		t.Fatalf("expected clean exit, got %d", session.ExitCode())
	}
}

func TestShadowingInitializerReadsOuterBinding(t *testing.T) {
	session, stdout, stderr := newTestSession(nil, "")
	session.Run("var a = 1; { var a = a + 1; print a; } print a;")
	if got := stdout.String(); got != "2\n1\n" {
		t.Fatalf("expected 2 then 1, got %q (stderr %q)", got, stderr.String())
	}

	// A global defined by an earlier run counts as the enclosing binding.
	session, stdout, stderr = newTestSession(nil, "")
	session.Run("var b = 10;")
	session.Run("{ var b = b * 2; print b; } print b;")
	if got := stdout.String(); got != "20\n10\n" {
		t.Fatalf("expected 20 then 10, got %q (stderr %q)", got, stderr.String())
	}

	session, stdout, stderr = newTestSession(nil, "")
	session.Run("{ var c = c; }")
	if stdout.Len() != 0 || stderr.String() != "Line [1] : Can't read local variable in its own initializer.\n" {
		t.Fatalf("unexpected streams %q / %q", stdout.String(), stderr.String())
	}
	if session.ExitCode() != ExitDataErr {
		t.Fatalf("expected %d, got %d", ExitDataErr, session.ExitCode())
	}
}

func TestStaticErrorsStopBeforeEvaluation(t *testing.T) {
	session, stdout, stderr := newTestSession(nil, "")
	session.Run("print \"side effect\";\nprint \"unterminated;")
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
	if got := stderr.String(); got != "Line [2] : Unterminated string.\n" {
		t.Fatalf("unexpected diagnostics %q", got)
	}
	if !session.HadError() || session.HadRuntimeError() {
		t.Fatalf("expected only the static flag to be set")
	}
	if session.ExitCode() != ExitDataErr {
		t.Fatalf("expected exit %d, got %d", ExitDataErr, session.ExitCode())
	}
}

func TestScanErrorsSkipParsing(t *testing.T) {
	session, _, stderr := newTestSession(nil, "")
	session.Run("var a = @;\nprint ;")
	if got := stderr.String(); got != "Line [1] : Unexpected character: '@'.\n" {
		t.Fatalf("expected only the scan diagnostic, got %q", got)
	}
}

func TestRuntimeErrorKeepsEarlierState(t *testing.T) {
	session, stdout, stderr := newTestSession(nil, "")
	session.Run("var a = 1;\na = 2;\nprint a;\nprint -\"x\";\na = 3;")
	if got := stdout.String(); got != "2\n" {
		t.Fatalf("expected output before the error, got %q", got)
	}
	if got := stderr.String(); got != "Line [4] : Operand must be a number.\n" {
		t.Fatalf("unexpected diagnostics %q", got)
	}
	if session.ExitCode() != ExitSoftware {
		t.Fatalf("expected exit %d, got %d", ExitSoftware, session.ExitCode())
	}
	session.ResetErrors()
	session.Run("print a;")
	if got := stdout.String(); got != "2\n2\n" {
		t.Fatalf("expected state from the aborted run, got %q", got)
	}
	if session.ExitCode() != ExitOK {
		t.Fatalf("expected flags to be cleared, got %d", session.ExitCode())
	}
}

func TestPromptLoop(t *testing.T) {
	session, stdout, stderr := newTestSession(nil, "var a = 1;\nprint a;\nprint b;\nprint a + 1;\nexit\nprint 99;\n")
	if err := session.RunPrompt(); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}
	want := Banner + "\n>> >> 1\n>> >> 2\n>> "
	if got := stdout.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := stderr.String(); got != "Line [1] : Undefined variable 'b'.\n" {
		t.Fatalf("unexpected diagnostics %q", got)
	}
	if session.HadError() || session.HadRuntimeError() {
		t.Fatalf("flags should be cleared after each line")
	}
}

func TestPromptSharesInputWithNative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Banner = false
	cfg.Prompt = "> "
	session, stdout, _ := newTestSession(cfg, "var name = input();\nAda\nprint name;\n")
	if err := session.RunPrompt(); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}
	if got := stdout.String(); got != "> > Ada\n> \n" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestPromptRunsFinalLineWithoutNewline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Banner = false
	cfg.Prompt = ""
	session, stdout, _ := newTestSession(cfg, "print 7;")
	if err := session.RunPrompt(); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}
	if got := stdout.String(); got != "7\n\n" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestConfigControlsInterpreter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallDepth = 10
	cfg.DisableNatives = []string{"clock"}
	session, _, stderr := newTestSession(cfg, "")

	session.Run("fun down(n) { if (n == 0) return 0; return down(n - 1); }\ndown(20);")
	if got := stderr.String(); got != "Line [1] : Stack overflow.\n" {
		t.Fatalf("expected overflow at depth 10, got %q", got)
	}
	session.ResetErrors()
	stderr.Reset()
	session.Run("clock();")
	if got := stderr.String(); got != "Line [1] : Undefined variable 'clock'.\n" {
		t.Fatalf("expected clock to be disabled, got %q", got)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	session, stdout, _ := newTestSession(nil, "")
	stmts, locals, ok := session.Check("{ var a = 1; print a; }")
	if !ok {
		t.Fatalf("expected a clean check")
	}
	if len(stmts) != 1 || len(locals) != 1 {
		t.Fatalf("expected one statement and one local, got %d and %d", len(stmts), len(locals))
	}
	if stdout.Len() != 0 {
		t.Fatalf("check must not print, got %q", stdout.String())
	}
}

func TestDumpTokens(t *testing.T) {
	session, stdout, _ := newTestSession(nil, "")
	if !session.DumpTokens("print 1;", false) {
		t.Fatalf("expected dump to succeed")
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Line [1] : PRINT") || !strings.HasSuffix(lines[0], "print") {
		t.Fatalf("unexpected first token line %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "Line [1] : EOF") {
		t.Fatalf("unexpected last token line %q", lines[3])
	}
}

func TestDumpAST(t *testing.T) {
	session, stdout, _ := newTestSession(nil, "")
	if !session.DumpAST("var a = 1 + 2 * 3;\nprint a;", false) {
		t.Fatalf("expected dump to succeed")
	}
	want := "(var a (+ 1 (* 2 3)))\n(print a)\n"
	if got := stdout.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	stdout.Reset()
	if !session.DumpAST("print 1;", true) {
		t.Fatalf("expected repr dump to succeed")
	}
	if !strings.Contains(stdout.String(), "ast.Print") {
		t.Fatalf("expected repr output to name the node type, got %q", stdout.String())
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lox")
	if err := os.WriteFile(path, []byte("print \"from file\";\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	session, stdout, _ := newTestSession(nil, "")
	if err := session.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := stdout.String(); got != "from file\n" {
		t.Fatalf("unexpected output %q", got)
	}

	err := session.RunFile(filepath.Join(dir, "missing.lox"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if !errors.Is(tracerr.Unwrap(err), os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestTracingCanBeToggled(t *testing.T) {
	EnableTracing(true)
	defer EnableTracing(false)
	if T() == nil {
		t.Fatalf("expected a tracer after EnableTracing")
	}
	session, stdout, _ := newTestSession(nil, "")
	session.Run("print 1;")
	if got := stdout.String(); got != "1\n" {
		t.Fatalf("tracing must not change program output, got %q", got)
	}
}
