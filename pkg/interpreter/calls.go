package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		v, err := i.evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return i.call(callee, args, n.Paren)
}

func (i *Interpreter) call(callee runtime.Value, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtimeErrorf(paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	switch c := fn.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(c, args, paren)
	case *runtime.NativeFunctionValue:
		value, err := c.Impl(args)
		if err != nil {
			return nil, wrapError(paren, err)
		}
		return value, nil
	case *runtime.ClassValue:
		instance := runtime.NewInstance(c)
		if init := c.FindMethod("init"); init != nil {
			if _, err := i.callFunction(init.Bind(instance), args, paren); err != nil {
				return nil, err
			}
		}
		return instance, nil
	}
	return nil, runtimeErrorf(paren, "Can only call functions and classes.")
}

// callFunction runs the body in a fresh scope over the closure. Initializers
// always yield the receiver, whatever their body returned.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	if i.depth >= i.maxDepth {
		return nil, &RuntimeError{Token: paren, Message: "Stack overflow.", Err: ErrStackOverflow}
	}
	i.depth++
	defer func() { i.depth-- }()

	scope := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		scope.Define(param.Lexeme, args[idx])
	}
	c, err := i.executeBlock(fn.Declaration.Body, scope)
	if err != nil {
		return nil, err
	}
	if fn.Role == ast.RoleInitializer {
		this, err := fn.Closure.GetAt(0, "this")
		if err != nil {
			return nil, wrapError(fn.Declaration.Name, err)
		}
		return this, nil
	}
	if c.returned() {
		return c.value, nil
	}
	return runtime.NilValue{}, nil
}
