package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluate(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Grouping:
		return i.evaluate(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Variable:
		return i.lookUp(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.ArrayLiteral:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := i.evaluate(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return &runtime.ArrayValue{Elements: elements}, nil
	case *ast.Index:
		return i.evaluateIndex(n, env)
	case *ast.IndexAssign:
		return i.evaluateIndexAssign(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.This:
		return i.lookUp(n.Keyword, n, env)
	case *ast.Super:
		return i.evaluateSuper(n, env)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression type %T", node)
	}
}

func literalValue(value any) runtime.Value {
	switch v := value.(type) {
	case bool:
		return runtime.BoolValue{Val: v}
	case float64:
		return runtime.NumberValue{Val: v}
	case string:
		return runtime.StringValue{Val: v}
	default:
		return runtime.NilValue{}
	}
}

// lookUp reads a variable through the resolved depth for expr, or from the
// globals when the resolver left it unbound.
func (i *Interpreter) lookUp(name token.Token, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	var (
		value runtime.Value
		err   error
	)
	if depth, ok := i.locals[expr]; ok {
		value, err = env.GetAt(depth, name.Lexeme)
	} else {
		value, err = i.global.Get(name.Lexeme)
	}
	if err != nil {
		return nil, wrapError(name, err)
	}
	return value, nil
}

func (i *Interpreter) evaluateAssign(n *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[n]; ok {
		err = env.AssignAt(depth, n.Name.Lexeme, value)
	} else {
		err = i.global.Assign(n.Name.Lexeme, value)
	}
	if err != nil {
		return nil, wrapError(n.Name, err)
	}
	return value, nil
}

func (i *Interpreter) evaluateUnary(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluate(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(right)}, nil
	case token.Minus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	}
	return nil, runtimeErrorf(n.Operator, "Unsupported unary operator %s.", n.Operator.Lexeme)
}

func (i *Interpreter) evaluateLogical(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, env)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluate(n.Right, env)
}

func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		return add(n.Operator, left, right)
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtimeErrorf(n.Operator, "Operands must be numbers.")
	}
	switch n.Operator.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case token.Star:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case token.Slash:
		if r.Val == 0 {
			return nil, runtimeErrorf(n.Operator, "Division by zero.")
		}
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case token.Less:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	}
	return nil, runtimeErrorf(n.Operator, "Unsupported binary operator %s.", n.Operator.Lexeme)
}

// add covers every overload of '+': numbers, strings, a number mixed with a
// string, and array concatenation into a new array.
func add(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case runtime.StringValue:
			return runtime.StringValue{Val: ast.FormatNumber(l.Val) + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + ast.FormatNumber(r.Val)}, nil
		}
	case *runtime.ArrayValue:
		if r, ok := right.(*runtime.ArrayValue); ok {
			elements := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return &runtime.ArrayValue{Elements: elements}, nil
		}
	}
	return nil, runtimeErrorf(op, "Operands must be two numbers, two strings, a number and a string, or two arrays.")
}
