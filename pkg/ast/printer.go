package ast

import (
	"fmt"
	"strconv"
	"strings"

	"lox/interpreter-go/pkg/token"
)

// FormatNumber renders a number the way Lox prints it: integral values lose
// their fractional part and no exponent form is used.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sprint renders a node in parenthesized prefix form, e.g. `(+ 1 (* 2 3))`.
func Sprint(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// SprintProgram renders each statement on its own line.
func SprintProgram(stmts []Statement) string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, Sprint(stmt))
	}
	return strings.Join(lines, "\n")
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("nil")
	case *Literal:
		b.WriteString(literalText(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(b, "call", append([]Node{n.Callee}, expressionNodes(n.Arguments)...)...)
	case *ArrayLiteral:
		parenthesize(b, "array", expressionNodes(n.Elements)...)
	case *Index:
		parenthesize(b, "index", n.Array, n.Index)
	case *IndexAssign:
		parenthesize(b, "[]=", n.Array, n.Index, n.Value)
	case *Get:
		parenthesize(b, "get", n.Object, rawName(n.Name))
	case *Set:
		parenthesize(b, "set", n.Object, rawName(n.Name), n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		parenthesize(b, "super", rawName(n.Method))
	case *ExpressionStatement:
		parenthesize(b, ";", n.Expression)
	case *Print:
		parenthesize(b, "print", n.Expression)
	case *Var:
		if n.Initializer == nil {
			parenthesize(b, "var "+n.Name.Lexeme)
			return
		}
		parenthesize(b, "var "+n.Name.Lexeme, n.Initializer)
	case *Block:
		parenthesize(b, "block", statementNodes(n.Statements)...)
	case *If:
		if n.ElseBranch == nil {
			parenthesize(b, "if", n.Condition, n.ThenBranch)
			return
		}
		parenthesize(b, "if", n.Condition, n.ThenBranch, n.ElseBranch)
	case *While:
		parenthesize(b, "while", n.Condition, n.Body)
	case *Function:
		writeFunction(b, n)
	case *Return:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", n.Value)
	case *Class:
		head := "class " + n.Name.Lexeme
		if n.Superclass != nil {
			head += " < " + n.Superclass.Name.Lexeme
		}
		parts := make([]Node, 0, len(n.Methods)+len(n.StaticMethods))
		for _, m := range n.StaticMethods {
			parts = append(parts, m)
		}
		for _, m := range n.Methods {
			parts = append(parts, m)
		}
		parenthesize(b, head, parts...)
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func writeFunction(b *strings.Builder, fn *Function) {
	keyword := "fun"
	if fn.Role == RoleStatic {
		keyword = "static fun"
	}
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Lexeme
	}
	head := fmt.Sprintf("%s %s (%s)", keyword, fn.Name.Lexeme, strings.Join(names, " "))
	parenthesize(b, head, statementNodes(fn.Body)...)
}

func parenthesize(b *strings.Builder, head string, parts ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, part := range parts {
		b.WriteByte(' ')
		writeNode(b, part)
	}
	b.WriteByte(')')
}

func literalText(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

// rawName lets identifiers that are not variable references print bare.
func rawName(tok token.Token) Node {
	return NewVariable(tok)
}

func expressionNodes(exprs []Expression) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}

func statementNodes(stmts []Statement) []Node {
	nodes := make([]Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}
