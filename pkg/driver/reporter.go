package driver

import (
	"fmt"
	"io"
)

// Diagnostic is any error that knows the source line it refers to. Every
// stage's error type satisfies it.
type Diagnostic interface {
	error
	SourceLine() int
}

// Reporter prints diagnostics as "Line [n] : message" and remembers which
// kinds it has seen since the last Reset.
type Reporter struct {
	out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

// NewReporter writes diagnostics to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Static reports a scan, parse or resolution error.
func (r *Reporter) Static(d Diagnostic) {
	r.hadError = true
	r.print(d)
}

// Runtime reports an error raised while interpreting.
func (r *Reporter) Runtime(d Diagnostic) {
	r.hadRuntimeError = true
	r.print(d)
}

func (r *Reporter) print(d Diagnostic) {
	fmt.Fprintf(r.out, "Line [%d] : %s\n", d.SourceLine(), d.Error())
}

func (r *Reporter) HadError() bool        { return r.hadError }
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both flags. The REPL calls it after every line.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}
