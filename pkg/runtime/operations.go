package runtime

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/ast"
)

// IsTruthy treats nil and false as false; everything else, 0 and "" included,
// is true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares scalars by value and everything else by identity.
func Equal(a, b Value) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch av := a.(type) {
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		return ok && av == bv
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	case *ClassValue:
		bv, ok := b.(*ClassValue)
		return ok && av == bv
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av == bv
	}
	return false
}

func isNil(v Value) bool {
	switch v.(type) {
	case nil, NilValue:
		return true
	}
	return false
}

// Stringify renders a value the way print shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return ast.FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = Stringify(el)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", val.Name())
	case *NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name)
	case *ClassValue:
		return fmt.Sprintf("<class %s>", val.Name)
	case *InstanceValue:
		return fmt.Sprintf("instance <class %s>", val.Class.Name)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
