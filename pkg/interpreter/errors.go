package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// ErrStackOverflow is wrapped by the RuntimeError raised when the call depth
// limit is hit.
var ErrStackOverflow = errors.New("stack overflow")

// RuntimeError aborts the current run. Token anchors the error to a line.
type RuntimeError struct {
	Token   token.Token
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// SourceLine reports the line of the offending token.
func (e *RuntimeError) SourceLine() int {
	return e.Token.Line
}

func runtimeErrorf(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// wrapError anchors an error from a lower layer (environment, instance, native
// function) at tok.
func wrapError(tok token.Token, err error) *RuntimeError {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &RuntimeError{Token: tok, Message: err.Error(), Err: err}
}
