package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"lox/interpreter-go/pkg/runtime"
)

// NativeNames lists the built-ins bound into every fresh global environment.
var NativeNames = []string{"clock", "input", "number", "len"}

func (i *Interpreter) defineNatives(disabled []string) {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	natives := []*runtime.NativeFunctionValue{
		{Name: "clock", ArgCount: 0, Impl: i.nativeClock},
		{Name: "input", ArgCount: 0, Impl: i.nativeInput},
		{Name: "number", ArgCount: 1, Impl: nativeNumber},
		{Name: "len", ArgCount: 1, Impl: nativeLen},
	}
	for _, native := range natives {
		if skip[native.Name] {
			continue
		}
		i.global.Define(native.Name, native)
	}
}

// clock() returns seconds since the Unix epoch.
func (i *Interpreter) nativeClock(args []runtime.Value) (runtime.Value, error) {
	now := i.clock()
	return runtime.NumberValue{Val: float64(now.Unix()) + float64(now.Nanosecond())/1e9}, nil
}

// input() reads one line without its terminator; "" once input is exhausted.
func (i *Interpreter) nativeInput(args []runtime.Value) (runtime.Value, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("input: %w", err)
	}
	return runtime.StringValue{Val: strings.TrimRight(line, "\r\n")}, nil
}

func nativeNumber(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.NumberValue:
		return v, nil
	case runtime.StringValue:
		num, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err == nil {
			return runtime.NumberValue{Val: num}, nil
		}
	}
	return nil, fmt.Errorf("Cannot convert '%s' to a number.", runtime.Stringify(args[0]))
}

func nativeLen(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.NumberValue{Val: float64(utf8.RuneCountInString(v.Val))}, nil
	case *runtime.ArrayValue:
		return runtime.NumberValue{Val: float64(len(v.Elements))}, nil
	}
	return nil, errors.New("len() expects a string or an array.")
}
