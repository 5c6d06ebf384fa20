package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// execute runs one statement in env. The environment is always passed down,
// never stored, so leaving a scope cannot leave a stale one behind.
func (i *Interpreter) execute(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		if _, err := i.evaluate(n.Expression, env); err != nil {
			return normalCompletion, err
		}
		return normalCompletion, nil
	case *ast.Print:
		value, err := i.evaluate(n.Expression, env)
		if err != nil {
			return normalCompletion, err
		}
		fmt.Fprintln(i.out, runtime.Stringify(value))
		return normalCompletion, nil
	case *ast.Var:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			v, err := i.evaluate(n.Initializer, env)
			if err != nil {
				return normalCompletion, err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return normalCompletion, nil
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Function:
		env.Define(n.Name.Lexeme, runtime.NewFunction(n, env, n.Role))
		return normalCompletion, nil
	case *ast.Return:
		var value runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			v, err := i.evaluate(n.Value, env)
			if err != nil {
				return normalCompletion, err
			}
			value = v
		}
		return returnCompletion(value), nil
	case *ast.Class:
		return i.executeClass(n, env)
	default:
		return normalCompletion, fmt.Errorf("interpreter: unsupported statement type %T", node)
	}
}

// executeBlock runs stmts in scope and stops at the first return.
func (i *Interpreter) executeBlock(stmts []ast.Statement, scope *runtime.Environment) (completion, error) {
	for _, stmt := range stmts {
		c, err := i.execute(stmt, scope)
		if err != nil {
			return normalCompletion, err
		}
		if c.returned() {
			return c, nil
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeIf(n *ast.If, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluate(n.Condition, env)
	if err != nil {
		return normalCompletion, err
	}
	if runtime.IsTruthy(cond) {
		return i.execute(n.ThenBranch, env)
	}
	if n.ElseBranch != nil {
		return i.execute(n.ElseBranch, env)
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeWhile(n *ast.While, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluate(n.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !runtime.IsTruthy(cond) {
			return normalCompletion, nil
		}
		c, err := i.execute(n.Body, env)
		if err != nil || c.returned() {
			return c, err
		}
	}
}

// executeClass binds the name first, then builds both method tables over a
// class scope that holds super when there is a superclass.
func (i *Interpreter) executeClass(n *ast.Class, env *runtime.Environment) (completion, error) {
	env.Define(n.Name.Lexeme, runtime.NilValue{})

	var superclass *runtime.ClassValue
	if n.Superclass != nil {
		value, err := i.evaluate(n.Superclass, env)
		if err != nil {
			return normalCompletion, err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return normalCompletion, runtimeErrorf(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	classEnv := env
	if superclass != nil {
		classEnv = runtime.NewEnvironment(env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
	for _, method := range n.Methods {
		methods[method.Name.Lexeme] = runtime.NewFunction(method, classEnv, method.Role)
	}
	staticMethods := make(map[string]*runtime.FunctionValue, len(n.StaticMethods))
	for _, method := range n.StaticMethods {
		staticMethods[method.Name.Lexeme] = runtime.NewFunction(method, classEnv, ast.RoleStatic)
	}

	env.Define(n.Name.Lexeme, &runtime.ClassValue{
		Name:          n.Name.Lexeme,
		Superclass:    superclass,
		Methods:       methods,
		StaticMethods: staticMethods,
	})
	return normalCompletion, nil
}
