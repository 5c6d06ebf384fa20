package parser

import "lox/interpreter-go/pkg/token"

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

// advance never moves past the trailing EOF token.
func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	return &Error{Token: tok, Message: message}
}

// report records an error without unwinding the current production.
func (p *Parser) report(tok token.Token, message string) {
	p.errors = append(p.errors, &Error{Token: tok, Message: message})
}

func (p *Parser) record(err error) {
	if perr, ok := err.(*Error); ok {
		p.errors = append(p.errors, perr)
		return
	}
	p.report(p.peek(), err.Error())
}

// synchronize discards tokens after a failed declaration that started at
// start. It stops after a ';' or before a keyword that opens a statement.
// When the failure consumed nothing, the offending token is dropped first so
// the caller always makes progress.
func (p *Parser) synchronize(start int) {
	if p.current == start && !p.isAtEnd() {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
	for !p.isAtEnd() {
		switch kind := p.peek().Kind; {
		case kind == token.Semicolon:
			p.advance()
			return
		case kind.StartsStatement():
			return
		}
		p.advance()
	}
}
