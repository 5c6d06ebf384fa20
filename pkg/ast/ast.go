// Package ast defines the Lox syntax tree as a closed set of node types.
//
// Node structs, their NodeType constants and constructors are generated from
// nodes.def; this file holds the interfaces and markers they share.
package ast

//go:generate sh -c "cd ../../tool/astgen && go run . ../../pkg/ast/nodes.def ../../pkg/ast/nodes_gen.go ast token=lox/interpreter-go/pkg/token"

type NodeType string

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

// Expression nodes are compared by pointer identity: the resolver keys its
// scope-depth table on them, so two identical references in different places
// never share an entry.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// FunctionRole tags a function declaration with how it is invoked.
type FunctionRole int

const (
	RoleFunction FunctionRole = iota
	RoleMethod
	RoleInitializer
	RoleStatic
)

func (r FunctionRole) String() string {
	switch r {
	case RoleFunction:
		return "function"
	case RoleMethod:
		return "method"
	case RoleInitializer:
		return "initializer"
	case RoleStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Compile-time checks that every generated node lands in its category.
var (
	_ Expression = (*Literal)(nil)
	_ Expression = (*Grouping)(nil)
	_ Expression = (*Unary)(nil)
	_ Expression = (*Binary)(nil)
	_ Expression = (*Logical)(nil)
	_ Expression = (*Variable)(nil)
	_ Expression = (*Assign)(nil)
	_ Expression = (*Call)(nil)
	_ Expression = (*ArrayLiteral)(nil)
	_ Expression = (*Index)(nil)
	_ Expression = (*IndexAssign)(nil)
	_ Expression = (*Get)(nil)
	_ Expression = (*Set)(nil)
	_ Expression = (*This)(nil)
	_ Expression = (*Super)(nil)

	_ Statement = (*ExpressionStatement)(nil)
	_ Statement = (*Print)(nil)
	_ Statement = (*Var)(nil)
	_ Statement = (*Block)(nil)
	_ Statement = (*If)(nil)
	_ Statement = (*While)(nil)
	_ Statement = (*Function)(nil)
	_ Statement = (*Return)(nil)
	_ Statement = (*Class)(nil)
)
