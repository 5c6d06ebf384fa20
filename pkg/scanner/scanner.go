package scanner

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"lox/interpreter-go/pkg/token"
)

// Error is a lexical error. Scanning continues after one is recorded.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// SourceLine reports the line the error was found on.
func (e *Error) SourceLine() int {
	return e.Line
}

// Scanner turns Lox source text into tokens in a single pass.
type Scanner struct {
	source  string
	tokens  []token.Token
	errors  []*Error
	start   int
	current int
	line    int
}

// New returns a scanner positioned at the beginning of source.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// ScanTokens consumes the whole source. The returned token slice always ends
// with an EOF token, even when errors were recorded.
func (s *Scanner) ScanTokens() ([]token.Token, []*Error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", nil, s.line))
	return s.tokens, s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case '[':
		s.addToken(token.LeftBracket)
	case ']':
		s.addToken(token.RightBracket)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(s.pick('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.pick('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.pick('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.pick('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
			return
		}
		s.addToken(token.Slash)
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.unexpected()
		}
	}
}

func (s *Scanner) string() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.error("Unterminated string.")
		return
	}
	// closing quote
	s.advance()
	value := s.source[s.start+1 : s.current-1]
	s.addLiteral(token.String, value)
}

func (s *Scanner) number() {
	dots := 0
	for isDigit(s.peek()) || s.peek() == '.' {
		if s.peek() == '.' {
			dots++
		}
		s.advance()
	}
	lexeme := s.source[s.start:s.current]
	switch {
	case dots > 1:
		s.error("Invalid number literal.")
		return
	case lexeme[len(lexeme)-1] == '.':
		s.error("Number literal cannot end with a '.'.")
		return
	}
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.error(fmt.Sprintf("Invalid number literal %q.", lexeme))
		return
	}
	s.addLiteral(token.Number, value)
}

func (s *Scanner) identifier() {
	for isAlpha(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	if kind, ok := token.Keyword(text); ok {
		s.addToken(kind)
		return
	}
	s.addToken(token.Identifier)
}

func (s *Scanner) unexpected() {
	r, width := utf8.DecodeRuneInString(s.source[s.start:])
	if width > 1 {
		s.current = s.start + width
	}
	s.error(fmt.Sprintf("Unexpected character: '%c'.", r))
}

func (s *Scanner) error(message string) {
	s.errors = append(s.errors, &Error{Line: s.line, Message: message})
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal interface{}) {
	lexeme := s.source[s.start:s.current]
	s.tokens = append(s.tokens, token.New(kind, lexeme, literal, s.line))
}

func (s *Scanner) pick(expected byte, matched, otherwise token.Kind) token.Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Identifiers are letters and underscores only; digits never continue one.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
