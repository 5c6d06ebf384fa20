package interpreter

import "lox/interpreter-go/pkg/runtime"

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
)

// completion is how a statement finished. A return carries its value up to
// the nearest call boundary; every statement sequence checks it explicitly.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normalCompletion = completion{kind: completionNormal}

func returnCompletion(value runtime.Value) completion {
	return completion{kind: completionReturn, value: value}
}

func (c completion) returned() bool {
	return c.kind == completionReturn
}
