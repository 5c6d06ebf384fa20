// Package interpreter evaluates resolved Lox syntax trees.
package interpreter

import (
	"bufio"
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested calls when Options leaves it unset.
const DefaultMaxCallDepth = 2048

// Options configures an Interpreter. The zero value is usable.
type Options struct {
	Stdout          io.Writer
	Stdin           io.Reader
	MaxCallDepth    int
	Clock           func() time.Time
	DisabledNatives []string
}

func (o Options) normalize() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.MaxCallDepth <= 0 {
		o.MaxCallDepth = DefaultMaxCallDepth
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Interpreter drives evaluation of Lox statements. Globals and the resolved
// depth table persist across calls to Interpret, so a REPL can feed it one
// line at a time.
type Interpreter struct {
	global   *runtime.Environment
	locals   resolver.Locals
	out      io.Writer
	in       *bufio.Reader
	clock    func() time.Time
	maxDepth int
	depth    int
}

// New returns an interpreter whose global environment holds the native
// functions not listed in opts.DisabledNatives.
func New(opts Options) *Interpreter {
	opts = opts.normalize()
	in, ok := opts.Stdin.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(opts.Stdin)
	}
	i := &Interpreter{
		global:   runtime.NewEnvironment(nil),
		locals:   make(resolver.Locals),
		out:      opts.Stdout,
		in:       in,
		clock:    opts.Clock,
		maxDepth: opts.MaxCallDepth,
	}
	i.defineNatives(opts.DisabledNatives)
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret executes stmts in the global environment. locals is merged into
// the table kept from earlier runs. The first runtime error aborts the run and
// is returned as a *RuntimeError; the interpreter stays usable afterwards.
func (i *Interpreter) Interpret(stmts []ast.Statement, locals resolver.Locals) error {
	i.locals.Merge(locals)
	i.depth = 0
	for _, stmt := range stmts {
		if _, err := i.execute(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes a single expression against the global environment.
func (i *Interpreter) Evaluate(expr ast.Expression, locals resolver.Locals) (runtime.Value, error) {
	i.locals.Merge(locals)
	i.depth = 0
	return i.evaluate(expr, i.global)
}
