// Package resolver binds every local variable reference to the scope that
// declares it before the program runs.
package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Locals maps a reference node to the number of scopes between its use and its
// declaration. References without an entry are globals.
type Locals map[ast.Expression]int

// Merge copies every entry of other into l.
func (l Locals) Merge(other Locals) {
	for expr, depth := range other {
		l[expr] = depth
	}
}

// Error is a static error found while resolving.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// SourceLine reports the line of the offending token.
func (e *Error) SourceLine() int {
	return e.Token.Line
}

// Resolver walks a syntax tree once and records scope depths.
type Resolver struct {
	scopes    []scope
	functions []ast.FunctionRole
	classes   []classKind
	globals   map[string]bool
	locals    Locals
	errors    []*Error
}

// New returns a resolver that treats globals as already declared, along with
// every top-level name it meets while resolving.
func New(globals ...string) *Resolver {
	r := &Resolver{globals: make(map[string]bool, len(globals))}
	for _, name := range globals {
		r.globals[name] = true
	}
	return r
}

// Resolve records depths for stmts. Errors do not stop the pass, so every
// problem in the tree is reported. The returned Locals is fresh on each call.
func (r *Resolver) Resolve(stmts []ast.Statement) (Locals, []*Error) {
	r.scopes = nil
	r.functions = nil
	r.classes = nil
	r.locals = make(Locals)
	r.errors = nil
	r.resolveStatements(stmts)
	return r.locals, r.errors
}

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, ast.RoleFunction)
	case *ast.Class:
		r.resolveClass(s)
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.Print:
		r.resolveExpression(s.Expression)
	case *ast.If:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.While:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.Return:
		if !r.inFunction() {
			r.report(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpression(s.Value)
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, role ast.FunctionRole) {
	r.pushFunction(role)
	defer r.popFunction()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()
}

// resolveClass mirrors the environments the interpreter builds: an optional
// scope holding super, then a scope holding this for instance methods only.
// Static methods are never bound, so they sit outside the this scope.
func (r *Resolver) resolveClass(class *ast.Class) {
	kind := classPlain
	r.declare(class.Name)
	r.define(class.Name)

	if class.Superclass != nil {
		kind = classSubclass
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.report(class.Superclass.Name, "A class can't inherit from itself.")
		}
		r.resolveExpression(class.Superclass)
	}

	r.pushClass(kind)
	defer r.popClass()

	if class.Superclass != nil {
		r.beginScope()
		r.bind("super")
		defer r.endScope()
	}

	for _, method := range class.StaticMethods {
		r.resolveFunction(method, ast.RoleStatic)
	}

	r.beginScope()
	r.bind("this")
	for _, method := range class.Methods {
		role := ast.RoleMethod
		if method.Role == ast.RoleInitializer {
			role = ast.RoleInitializer
		}
		r.resolveFunction(method, role)
	}
	r.endScope()
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.This:
		switch {
		case r.currentClass() == classNone:
			r.report(e.Keyword, "Can't use 'this' outside of a class.")
			return
		case r.inStaticMethod():
			r.report(e.Keyword, "Can't use 'this' in a static method.")
			return
		}
		r.resolveLocal(e, "this")
	case *ast.Super:
		switch {
		case r.currentClass() == classNone:
			r.report(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case r.currentClass() != classSubclass:
			r.report(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		case r.inStaticMethod():
			r.report(e.Keyword, "Can't use 'super' in a static method.")
			return
		}
		r.resolveLocal(e, "super")
	case *ast.Literal:
	case *ast.Grouping:
		r.resolveExpression(e.Expression)
	case *ast.Unary:
		r.resolveExpression(e.Right)
	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			r.resolveExpression(el)
		}
	case *ast.Index:
		r.resolveExpression(e.Array)
		r.resolveExpression(e.Index)
	case *ast.IndexAssign:
		r.resolveExpression(e.Array)
		r.resolveExpression(e.Index)
		r.resolveExpression(e.Value)
	case *ast.Get:
		r.resolveExpression(e.Object)
	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	}
}

// resolveVariable skips a binding whose initializer is still running, so
// `var a = a + 1;` in a block reads the enclosing a. With no enclosing local
// or known global to fall back on, the read is an error.
func (r *Resolver) resolveVariable(e *ast.Variable) {
	name := e.Name.Lexeme
	pending := false
	for i := len(r.scopes) - 1; i >= 0; i-- {
		defined, ok := r.scopes[i][name]
		if !ok {
			continue
		}
		if !defined {
			pending = true
			continue
		}
		r.locals[e] = len(r.scopes) - 1 - i
		return
	}
	if pending && !r.globals[name] {
		r.report(e.Name, "Can't read local variable in its own initializer.")
	}
}

// resolveLocal records the hop count of the innermost scope declaring name.
func (r *Resolver) resolveLocal(expr ast.Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) report(tok token.Token, message string) {
	r.errors = append(r.errors, &Error{Token: tok, Message: message})
}
