// Package driver wires the scanner, parser, resolver and interpreter into runs
// over whole files or single REPL lines, and owns the lox.yml configuration.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

// Exit statuses, following sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

// Session owns one interpreter and reports every diagnostic through one
// Reporter. Definitions made by one Run are visible to the next.
type Session struct {
	cfg      *Config
	interp   *interpreter.Interpreter
	reporter *Reporter
	in       *bufio.Reader
	out      io.Writer
}

// SessionOptions carries the streams a session talks to. Nil streams fall
// back to the process's standard streams.
type SessionOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Clock  func() time.Time
}

// NewSession builds a session from cfg. A nil cfg means DefaultConfig.
func NewSession(cfg *Config, opts SessionOptions) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	in, ok := opts.Stdin.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(opts.Stdin)
	}
	return &Session{
		cfg: cfg,
		interp: interpreter.New(interpreter.Options{
			Stdout:          opts.Stdout,
			Stdin:           in,
			MaxCallDepth:    cfg.MaxCallDepth,
			Clock:           opts.Clock,
			DisabledNatives: cfg.DisableNatives,
		}),
		reporter: NewReporter(opts.Stderr),
		in:       in,
		out:      opts.Stdout,
	}
}

// Config returns the configuration the session was built with.
func (s *Session) Config() *Config {
	return s.cfg
}

// HadError reports whether a scan, parse or resolution error was reported
// since the last reset.
func (s *Session) HadError() bool {
	return s.reporter.HadError()
}

// HadRuntimeError reports whether a run was aborted by a runtime error since
// the last reset.
func (s *Session) HadRuntimeError() bool {
	return s.reporter.HadRuntimeError()
}

// ResetErrors clears both error flags.
func (s *Session) ResetErrors() {
	s.reporter.Reset()
}

// ExitCode maps the error flags to a process exit status.
func (s *Session) ExitCode() int {
	switch {
	case s.HadError():
		return ExitDataErr
	case s.HadRuntimeError():
		return ExitSoftware
	}
	return ExitOK
}

// Scan tokenizes source, reporting every lexical error. ok is false when any
// error was found.
func (s *Session) Scan(source string) ([]token.Token, bool) {
	tokens, errs := scanner.New(source).ScanTokens()
	for _, err := range errs {
		s.reporter.Static(err)
	}
	tracef("scan: %d tokens, %d errors", len(tokens), len(errs))
	return tokens, len(errs) == 0
}

// Parse scans and parses source. Parsing is skipped when scanning failed.
func (s *Session) Parse(source string) ([]ast.Statement, bool) {
	tokens, ok := s.Scan(source)
	if !ok {
		return nil, false
	}
	stmts, errs := parser.New(tokens).Parse()
	for _, err := range errs {
		s.reporter.Static(err)
	}
	tracef("parse: %d statements, %d errors", len(stmts), len(errs))
	return stmts, len(errs) == 0
}

// Check runs every static stage over source without executing it.
func (s *Session) Check(source string) ([]ast.Statement, resolver.Locals, bool) {
	stmts, ok := s.Parse(source)
	if !ok {
		return nil, nil, false
	}
	// Globals from earlier prompt lines and the natives count as enclosing
	// bindings, so `{ var a = a; }` can read an existing global a.
	locals, errs := resolver.New(s.interp.GlobalEnvironment().Keys()...).Resolve(stmts)
	for _, err := range errs {
		s.reporter.Static(err)
	}
	tracef("resolve: %d locals, %d errors", len(locals), len(errs))
	return stmts, locals, len(errs) == 0
}

// Run executes source. Static errors stop the run before evaluation; a
// runtime error aborts it. Both are reported, never returned.
func (s *Session) Run(source string) {
	stmts, locals, ok := s.Check(source)
	if !ok {
		return
	}
	if err := s.interp.Interpret(stmts, locals); err != nil {
		if rerr, isRuntime := err.(*interpreter.RuntimeError); isRuntime {
			s.reporter.Runtime(rerr)
			tracef("interpret: aborted at line %d: %s", rerr.SourceLine(), rerr.Message)
			return
		}
		// Only an internal fault lands here; surface it as a runtime error.
		s.reporter.Runtime(&interpreter.RuntimeError{Message: err.Error(), Err: err})
		return
	}
	tracef("interpret: ok")
}

// RunFile reads path and runs it.
func (s *Session) RunFile(path string) error {
	source, err := ReadSource(path)
	if err != nil {
		return err
	}
	s.Run(source)
	return nil
}

// DumpTokens writes one line per token of source, or the repr form of the
// whole slice.
func (s *Session) DumpTokens(source string, useRepr bool) bool {
	tokens, ok := s.Scan(source)
	if !ok {
		return false
	}
	if useRepr {
		fmt.Fprintln(s.out, repr.String(tokens, repr.Indent("  ")))
		return true
	}
	for _, tok := range tokens {
		fmt.Fprintln(s.out, tok.String())
	}
	return true
}

// DumpAST writes the parenthesized form of each statement, or the repr form
// of the tree.
func (s *Session) DumpAST(source string, useRepr bool) bool {
	stmts, ok := s.Parse(source)
	if !ok {
		return false
	}
	if useRepr {
		fmt.Fprintln(s.out, repr.String(stmts, repr.Indent("  ")))
		return true
	}
	if len(stmts) > 0 {
		fmt.Fprintln(s.out, ast.SprintProgram(stmts))
	}
	return true
}

// ReadSource loads a script from disk.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}
