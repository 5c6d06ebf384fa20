package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// scope maps a name to whether its initializer has finished.
type scope map[string]bool

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() (scope, bool) {
	if len(r.scopes) == 0 {
		return nil, false
	}
	return r.scopes[len(r.scopes)-1], true
}

// declare marks name as present but not yet usable. Globals are only
// remembered by name, so redeclaring one is legal.
func (r *Resolver) declare(name token.Token) {
	sc, ok := r.innermost()
	if !ok {
		r.globals[name.Lexeme] = true
		return
	}
	if _, exists := sc[name.Lexeme]; exists {
		r.report(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if sc, ok := r.innermost(); ok {
		sc[name.Lexeme] = true
	}
}

// bind defines an implicit name such as this or super.
func (r *Resolver) bind(name string) {
	if sc, ok := r.innermost(); ok {
		sc[name] = true
	}
}

func (r *Resolver) pushFunction(role ast.FunctionRole) {
	r.functions = append(r.functions, role)
}

func (r *Resolver) popFunction() {
	if len(r.functions) == 0 {
		return
	}
	r.functions = r.functions[:len(r.functions)-1]
}

func (r *Resolver) inFunction() bool {
	return len(r.functions) > 0
}

// inStaticMethod reports whether the nearest enclosing method, skipping plain
// functions nested inside it, is static.
func (r *Resolver) inStaticMethod() bool {
	for i := len(r.functions) - 1; i >= 0; i-- {
		if r.functions[i] != ast.RoleFunction {
			return r.functions[i] == ast.RoleStatic
		}
	}
	return false
}

func (r *Resolver) pushClass(kind classKind) {
	r.classes = append(r.classes, kind)
}

func (r *Resolver) popClass() {
	if len(r.classes) == 0 {
		return
	}
	r.classes = r.classes[:len(r.classes)-1]
}

func (r *Resolver) currentClass() classKind {
	if len(r.classes) == 0 {
		return classNone
	}
	return r.classes[len(r.classes)-1]
}
