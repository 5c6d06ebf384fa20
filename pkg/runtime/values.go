package runtime

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Callable values can appear in call position. The interpreter owns the
// actual invocation since it needs the evaluator.
type Callable interface {
	Value
	Arity() int
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Arrays
//-----------------------------------------------------------------------------

// ArrayValue has a fixed length once built; elements may be replaced.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Declaration *ast.Function
	Closure     *Environment
	Role        ast.FunctionRole
}

func NewFunction(decl *ast.Function, closure *Environment, role ast.FunctionRole) *FunctionValue {
	return &FunctionValue{Declaration: decl, Closure: closure, Role: role}
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

// Bind returns a copy of the method whose closure is a fresh scope holding
// this. The original closure is left untouched.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return NewFunction(v.Declaration, env, v.Role)
}

type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a host-provided built-in. Always handled by pointer:
// the Impl field makes the struct incomparable.
type NativeFunctionValue struct {
	Name     string
	ArgCount int
	Impl     NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ArgCount }

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name          string
	Superclass    *ClassValue
	Methods       map[string]*FunctionValue
	StaticMethods map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// Arity is the arity of init, or zero when the class has none.
func (v *ClassValue) Arity() int {
	if init := v.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up an instance method on the class, then its ancestors.
func (v *ClassValue) FindMethod(name string) *FunctionValue {
	for class := v; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method
		}
	}
	return nil
}

// FindStaticMethod looks up a static method on the class, then its ancestors.
func (v *ClassValue) FindStaticMethod(name string) *FunctionValue {
	for class := v; class != nil; class = class.Superclass {
		if method, ok := class.StaticMethods[name]; ok {
			return method
		}
	}
	return nil
}

var errSetMethodName = errors.New("Cannot set field to method name.")

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get returns a field, or a method bound to this instance. Fields shadow
// methods.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if field, ok := v.Fields[name]; ok {
		return field, true
	}
	if method := v.Class.FindMethod(name); method != nil {
		return method.Bind(v), true
	}
	return nil, false
}

// Set creates or replaces a field. Names taken by a method are rejected.
func (v *InstanceValue) Set(name string, value Value) error {
	if v.Class.FindMethod(name) != nil {
		return errSetMethodName
	}
	v.Fields[name] = value
	return nil
}

var (
	_ Callable = (*FunctionValue)(nil)
	_ Callable = (*NativeFunctionValue)(nil)
	_ Callable = (*ClassValue)(nil)
)
