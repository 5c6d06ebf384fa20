package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/driver"
)

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// quietConfig disables the banner so prompt transcripts stay short, and pins
// the config so a lox.yml above the test directory cannot leak in.
func quietConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeScript(t, dir, "lox.yml", "banner: false\nprompt: \"> \"\n")
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir)
	script := writeScript(t, dir, "hello.lox", "print \"hello\";\n")

	for _, args := range [][]string{
		{"--config", cfg, script},
		{"--config", cfg, "run", script},
	} {
		code, stdout, stderr := runCLI(t, "", args...)
		if code != driver.ExitOK {
			t.Fatalf("%v: expected exit 0, got %d (stderr %q)", args, code, stderr)
		}
		if stdout != "hello\n" {
			t.Fatalf("%v: unexpected output %q", args, stdout)
		}
	}
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir)
	static := writeScript(t, dir, "static.lox", "print ;\n")
	runtimeErr := writeScript(t, dir, "runtime.lox", "print 1 / 0;\n")

	code, _, stderr := runCLI(t, "", "--config", cfg, static)
	if code != driver.ExitDataErr {
		t.Fatalf("expected %d for a parse error, got %d", driver.ExitDataErr, code)
	}
	if stderr != "Line [1] : Got SEMICOLON, Expect expression.\n" {
		t.Fatalf("unexpected diagnostics %q", stderr)
	}

	code, _, stderr = runCLI(t, "", "--config", cfg, runtimeErr)
	if code != driver.ExitSoftware {
		t.Fatalf("expected %d for a runtime error, got %d", driver.ExitSoftware, code)
	}
	if stderr != "Line [1] : Division by zero.\n" {
		t.Fatalf("unexpected diagnostics %q", stderr)
	}

	code, _, _ = runCLI(t, "", "--config", cfg, filepath.Join(dir, "missing.lox"))
	if code != driver.ExitIOErr {
		t.Fatalf("expected %d for a missing script, got %d", driver.ExitIOErr, code)
	}

	code, _, stderr = runCLI(t, "", "--config", cfg, static, runtimeErr)
	if code != driver.ExitUsage || !strings.Contains(stderr, "Usage: lox [script]") {
		t.Fatalf("expected usage error, got %d %q", code, stderr)
	}
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeScript(t, dir, "lox.yml", "max_call_depth: -1\n")
	script := writeScript(t, dir, "ok.lox", "print 1;\n")
	code, stdout, stderr := runCLI(t, "", "--config", cfg, script)
	if code != driver.ExitIOErr {
		t.Fatalf("expected %d, got %d", driver.ExitIOErr, code)
	}
	if stdout != "" || !strings.Contains(stderr, "max_call_depth must be positive") {
		t.Fatalf("unexpected streams %q / %q", stdout, stderr)
	}
}

func TestConfigTraceEnablesStackTraces(t *testing.T) {
	t.Cleanup(func() { driver.EnableTracing(false) })
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.lox")

	plainCfg := quietConfig(t, dir)
	code, _, plain := runCLI(t, "", "--config", plainCfg, missing)
	if code != driver.ExitIOErr || !strings.HasPrefix(plain, "lox: ") {
		t.Fatalf("expected a one-line error, got %d %q", code, plain)
	}

	traceCfg := writeScript(t, dir, "trace.yml", "banner: false\ntrace: true\n")
	code, _, traced := runCLI(t, "", "--config", traceCfg, missing)
	if code != driver.ExitIOErr {
		t.Fatalf("expected %d, got %d", driver.ExitIOErr, code)
	}
	if strings.HasPrefix(traced, "lox: ") || !strings.Contains(traced, "missing.lox") {
		t.Fatalf("expected a stack trace from the config setting, got %q", traced)
	}
	if len(strings.Split(strings.TrimSpace(traced), "\n")) < 2 {
		t.Fatalf("expected stack frames after the message, got %q", traced)
	}
}

func TestPrompt(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir)
	for _, args := range [][]string{
		{"--config", cfg},
		{"--config", cfg, "repl"},
	} {
		code, stdout, _ := runCLI(t, "var a = 20;\nprint a + 1;\nexit\n", args...)
		if code != driver.ExitOK {
			t.Fatalf("%v: expected exit 0, got %d", args, code)
		}
		if stdout != "> > 21\n> " {
			t.Fatalf("%v: unexpected transcript %q", args, stdout)
		}
	}
}

func TestMaxCallDepthFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir)
	script := writeScript(t, dir, "deep.lox", "fun down(n) { if (n == 0) return 0; return down(n - 1); }\nprint down(100);\n")

	code, stdout, _ := runCLI(t, "", "--config", cfg, script)
	if code != driver.ExitOK || stdout != "0\n" {
		t.Fatalf("expected the default depth to suffice, got %d %q", code, stdout)
	}
	code, _, stderr := runCLI(t, "", "--config", cfg, "--max-call-depth", "50", script)
	if code != driver.ExitSoftware || stderr != "Line [1] : Stack overflow.\n" {
		t.Fatalf("expected stack overflow, got %d %q", code, stderr)
	}
}

func TestCheckTokensAndAST(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir)
	script := writeScript(t, dir, "prog.lox", "print 1 + 2;\n")
	bad := writeScript(t, dir, "bad.lox", "return 1;\n")

	code, stdout, _ := runCLI(t, "", "--config", cfg, "check", script)
	if code != driver.ExitOK || stdout != "" {
		t.Fatalf("check: expected silent success, got %d %q", code, stdout)
	}
	code, _, stderr := runCLI(t, "", "--config", cfg, "check", bad)
	if code != driver.ExitDataErr || stderr != "Line [1] : Can't return from top-level code.\n" {
		t.Fatalf("check: expected a resolution error, got %d %q", code, stderr)
	}

	code, stdout, _ = runCLI(t, "", "--config", cfg, "tokens", script)
	if code != driver.ExitOK || len(strings.Split(strings.TrimSpace(stdout), "\n")) != 6 {
		t.Fatalf("tokens: expected 6 lines, got %d %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "--config", cfg, "ast", script)
	if code != driver.ExitOK || stdout != "(print (+ 1 2))\n" {
		t.Fatalf("ast: unexpected output %d %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "--config", cfg, "ast", "--repr", script)
	if code != driver.ExitOK || !strings.Contains(stdout, "ast.Binary") {
		t.Fatalf("ast --repr: unexpected output %d %q", code, stdout)
	}

	code, _, stderr = runCLI(t, "", "--config", cfg, "tokens")
	if code != driver.ExitUsage || !strings.Contains(stderr, "Usage: lox tokens <script>") {
		t.Fatalf("tokens without a script: got %d %q", code, stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--version")
	if code != driver.ExitOK || !strings.Contains(stdout, cliToolVersion) {
		t.Fatalf("unexpected version output %d %q", code, stdout)
	}
}
