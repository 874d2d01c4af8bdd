// Package scanner turns minilox source text into a token sequence.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/podhmo/minilox/token"
)

// ErrorKind classifies a lexical error.
type ErrorKind int

const (
	ErrUnexpectedCharacter ErrorKind = iota
	ErrUnterminatedString
)

// Error is a lexical error. Line is the 1-based line the error was detected
// on; for an unterminated string this is the line the string began on.
type Error struct {
	Kind ErrorKind
	Char rune // the offending character, for ErrUnexpectedCharacter
	Line int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnterminatedString:
		return fmt.Sprintf("[line %d] error: unterminated string", e.Line)
	default:
		return fmt.Sprintf("[line %d] error: unexpected character %q", e.Line, e.Char)
	}
}

// Scanner performs a single left-to-right pass over the source, tracking the
// start of the current lexeme, the read position, and the current line.
type Scanner struct {
	source  []rune
	tokens  []token.Token
	start   int
	current int
	line    int
}

// New creates a scanner for the given source text.
func New(source string) *Scanner {
	return &Scanner{source: []rune(source), line: 1}
}

// ScanTokens scans the whole input, failing fast on the first lexical error.
// On success the returned sequence always ends with an EOF token carrying the
// last seen line.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LPAREN)
	case ')':
		s.addToken(token.RPAREN)
	case '{':
		s.addToken(token.LBRACE)
	case '}':
		s.addToken(token.RBRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		if s.match('=') {
			s.addToken(token.BANG_EQ)
		} else {
			s.addToken(token.BANG)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EQ)
		} else {
			s.addToken(token.ASSIGN)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LT_EQ)
		} else {
			s.addToken(token.LT)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GT_EQ)
		} else {
			s.addToken(token.GT)
		}
	case '/':
		if s.match('/') {
			// A comment runs to the end of the line and produces no token.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t':
		// no token
	case '\n':
		s.line++
	case '"':
		return s.scanString()
	default:
		if isDigit(c) {
			s.scanNumber()
			return nil
		}
		if isAlpha(c) {
			s.scanIdentifier()
			return nil
		}
		return &Error{Kind: ErrUnexpectedCharacter, Char: c, Line: s.line}
	}
	return nil
}

func (s *Scanner) scanString() error {
	openLine := s.line
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		return &Error{Kind: ErrUnterminatedString, Line: openLine}
	}
	s.advance() // closing quote

	// The literal excludes the surrounding quotes.
	value := string(s.source[s.start+1 : s.current-1])
	s.addTokenLiteral(token.STRING, value)
	return nil
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A fractional part is consumed only when the '.' is followed by a digit;
	// a trailing '.' is left for the next token.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// The lexeme is a maximal digit run, so this cannot happen.
		panic(fmt.Sprintf("scanner: invalid number lexeme %q: %v", text, err))
	}
	s.addTokenLiteral(token.NUMBER, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := string(s.source[s.start:s.current])
	s.addToken(token.LookupIdent(text))
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	return c
}

// match consumes the next character only if it equals expected.
func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(typ token.Type) {
	s.addTokenLiteral(typ, nil)
}

func (s *Scanner) addTokenLiteral(typ token.Type, literal any) {
	lexeme := string(s.source[s.start:s.current])
	s.tokens = append(s.tokens, token.Token{Type: typ, Lexeme: lexeme, Literal: literal, Line: s.line})
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
