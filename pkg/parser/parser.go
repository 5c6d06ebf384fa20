// Package parser builds the Lox syntax tree by recursive descent.
//
// Grammar, lowest precedence first:
//
//	program     -> declaration* EOF
//	declaration -> classDecl | funDecl | varDecl | statement
//	classDecl   -> "class" IDENTIFIER ( "<" IDENTIFIER )? "{" ( "static"? function )* "}"
//	funDecl     -> "fun" function
//	function    -> IDENTIFIER "(" parameters? ")" block
//	varDecl     -> "var" IDENTIFIER ( "=" expression )? ";"
//	statement   -> exprStmt | forStmt | ifStmt | printStmt | returnStmt | whileStmt | block
//	expression  -> assignment
//	assignment  -> ( call "." )? IDENTIFIER "=" assignment | call "[" expression "]" "=" assignment | or
//	or          -> and ( "or" and )*
//	and         -> equality ( "and" equality )*
//	equality    -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison  -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        -> factor ( ( "-" | "+" ) factor )*
//	factor      -> unary ( ( "/" | "*" ) unary )*
//	unary       -> ( "!" | "-" ) unary | call
//	call        -> primary ( "(" arguments? ")" | "." IDENTIFIER | "[" expression "]" )*
//	primary     -> "true" | "false" | "nil" | "this" | NUMBER | STRING | IDENTIFIER
//	             | "(" expression ")" | "super" "." IDENTIFIER | "[" arguments? "]"
package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// MaxArguments caps both parameter and argument lists.
const MaxArguments = 255

// Error is a syntax error anchored at the offending token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Got %s, %s", e.Token.Kind, e.Message)
}

// SourceLine reports the line of the offending token.
func (e *Error) SourceLine() int {
	return e.Token.Line
}

type Parser struct {
	tokens  []token.Token
	current int
	errors  []*Error
}

// New returns a parser over tokens. A missing trailing EOF token is added.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.New(token.EOF, "", nil, line))
	}
	return &Parser{tokens: tokens}
}

// Parse consumes every token. Statements that failed to parse are dropped and
// their errors returned; the remaining statements are still well formed.
func (p *Parser) Parse() ([]ast.Statement, []*Error) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errors
}

// ParseExpression parses a single expression spanning the whole input.
func (p *Parser) ParseExpression() (ast.Expression, []*Error) {
	expr, err := p.expression()
	if err != nil {
		p.record(err)
		return nil, p.errors
	}
	if !p.isAtEnd() {
		p.report(p.peek(), "Expect end of expression.")
	}
	return expr, p.errors
}

//--------------------------------------------------------------------------
// Declarations

func (p *Parser) declaration() ast.Statement {
	start := p.current
	stmt, err := p.declarationOrError()
	if err != nil {
		p.record(err)
		p.synchronize(start)
		return nil
	}
	return stmt
}

func (p *Parser) declarationOrError() (ast.Statement, error) {
	switch {
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Fun):
		return p.function(ast.RoleFunction)
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	var superclass *ast.Variable
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariable(superName)
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods, staticMethods []*ast.Function
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		role := ast.RoleMethod
		if p.match(token.Static) {
			role = ast.RoleStatic
		}
		fn, err := p.function(role)
		if err != nil {
			return nil, err
		}
		if fn.Role == ast.RoleStatic {
			staticMethods = append(staticMethods, fn)
		} else {
			methods = append(methods, fn)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClass(name, superclass, methods, staticMethods), nil
}

func (p *Parser) function(role ast.FunctionRole) (*ast.Function, error) {
	kind := "function"
	if role != ast.RoleFunction {
		kind = "method"
	}
	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if role == ast.RoleMethod && name.Lexeme == "init" {
		role = ast.RoleInitializer
	}
	if _, err := p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= MaxArguments {
				p.report(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", MaxArguments))
			}
			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(name, params, body, role), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(token.Equal) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVar(name, initializer), nil
}

//--------------------------------------------------------------------------
// Statements

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(stmts), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars into a while loop: the increment runs as the last
// statement of the body and an initializer gets its own enclosing block.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.Semicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.RightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if increment != nil {
		body = ast.NewBlock([]ast.Statement{body, ast.NewExpressionStatement(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	var loop ast.Statement = ast.NewWhile(condition, body)
	if initializer != nil {
		loop = ast.NewBlock([]ast.Statement{initializer, loop})
	}
	return loop, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(token.Else) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(condition, thenBranch, elseBranch), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrint(value), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.Semicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturn(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(condition, body), nil
}

// block parses declarations up to the closing brace. Each declaration
// recovers from its own errors.
func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}
