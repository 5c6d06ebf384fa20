package ast

import "lox/interpreter-go/pkg/token"

// Builders for hand-assembled trees in tests. Tokens get line 1.

func Tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, 1)
}

func Ident(name string) token.Token {
	return Tok(token.Identifier, name)
}

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func Ref(name string) *Variable {
	return NewVariable(Ident(name))
}

func Assignment(name string, value Expression) *Assign {
	return NewAssign(Ident(name), value)
}

func Bin(left Expression, kind token.Kind, lexeme string, right Expression) *Binary {
	return NewBinary(left, Tok(kind, lexeme), right)
}

func CallExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, Tok(token.RightParen, ")"), args)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(Tok(token.LeftBracket, "["), elements)
}

func Idx(array, index Expression) *Index {
	return NewIndex(array, Tok(token.LeftBracket, "["), index)
}

func Member(object Expression, name string) *Get {
	return NewGet(object, Ident(name))
}

func SelfRef() *This {
	return NewThis(Tok(token.This, "this"))
}

func SuperRef(method string) *Super {
	return NewSuper(Tok(token.Super, "super"), Ident(method))
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func PrintStmt(expr Expression) *Print {
	return NewPrint(expr)
}

func VarDecl(name string, init Expression) *Var {
	return NewVar(Ident(name), init)
}

func Blk(stmts ...Statement) *Block {
	return NewBlock(stmts)
}

func Fn(name string, params []string, body ...Statement) *Function {
	return FnRole(name, RoleFunction, params, body...)
}

func FnRole(name string, role FunctionRole, params []string, body ...Statement) *Function {
	tokens := make([]token.Token, len(params))
	for i, p := range params {
		tokens[i] = Ident(p)
	}
	return NewFunction(Ident(name), tokens, body, role)
}

func Ret(value Expression) *Return {
	return NewReturn(Tok(token.Return, "return"), value)
}

func ClassDecl(name string, superclass string, methods ...*Function) *Class {
	var super *Variable
	if superclass != "" {
		super = Ref(superclass)
	}
	var instance, static []*Function
	for _, m := range methods {
		if m.Role == RoleStatic {
			static = append(static, m)
			continue
		}
		instance = append(instance, m)
	}
	return NewClass(Ident(name), super, instance, static)
}
