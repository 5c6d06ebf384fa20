package interpreter

import (
	"math"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// evaluateGet reads a field or bound method from an instance, or a static
// method from a class.
func (i *Interpreter) evaluateGet(n *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(n.Object, env)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case *runtime.InstanceValue:
		if value, ok := obj.Get(n.Name.Lexeme); ok {
			return value, nil
		}
	case *runtime.ClassValue:
		if method := obj.FindStaticMethod(n.Name.Lexeme); method != nil {
			return method, nil
		}
	default:
		return nil, runtimeErrorf(n.Name, "Only instances have properties.")
	}
	return nil, runtimeErrorf(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
}

func (i *Interpreter) evaluateSet(n *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	if err := instance.Set(n.Name.Lexeme, value); err != nil {
		return nil, wrapError(n.Name, err)
	}
	return value, nil
}

// evaluateSuper finds the method on the superclass stored one scope outside
// the method's this scope, and binds it to the current receiver.
func (i *Interpreter) evaluateSuper(n *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	depth, ok := i.locals[n]
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Can't use 'super' outside of a class.")
	}
	superValue, err := env.GetAt(depth, "super")
	if err != nil {
		return nil, wrapError(n.Keyword, err)
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Superclass must be a class.")
	}
	thisValue, err := env.GetAt(depth-1, "this")
	if err != nil {
		return nil, wrapError(n.Keyword, err)
	}
	instance, ok := thisValue.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Keyword, "Can't use 'super' outside of a method.")
	}
	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, runtimeErrorf(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (i *Interpreter) evaluateIndex(n *ast.Index, env *runtime.Environment) (runtime.Value, error) {
	array, idx, err := i.indexTarget(n.Array, n.Index, n.Bracket, env)
	if err != nil {
		return nil, err
	}
	return array.Elements[idx], nil
}

func (i *Interpreter) evaluateIndexAssign(n *ast.IndexAssign, env *runtime.Environment) (runtime.Value, error) {
	array, idx, err := i.indexTarget(n.Array, n.Index, n.Bracket, env)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	array.Elements[idx] = value
	return value, nil
}

// indexTarget evaluates the array and index operands once each and checks
// that the index is an integer within bounds.
func (i *Interpreter) indexTarget(arrayExpr, indexExpr ast.Expression, bracket token.Token, env *runtime.Environment) (*runtime.ArrayValue, int, error) {
	target, err := i.evaluate(arrayExpr, env)
	if err != nil {
		return nil, 0, err
	}
	array, ok := target.(*runtime.ArrayValue)
	if !ok {
		return nil, 0, runtimeErrorf(bracket, "Only arrays can be indexed.")
	}
	indexValue, err := i.evaluate(indexExpr, env)
	if err != nil {
		return nil, 0, err
	}
	num, ok := indexValue.(runtime.NumberValue)
	if !ok || num.Val < 0 || num.Val != math.Trunc(num.Val) {
		return nil, 0, runtimeErrorf(bracket, "Array index must be a non-negative integer.")
	}
	if num.Val >= float64(len(array.Elements)) {
		return nil, 0, runtimeErrorf(bracket, "Array index out of bounds.")
	}
	return array, int(num.Val), nil
}
