// Package token defines the lexical tokens of the minilox language.
package token

import "fmt"

// Type identifies the lexical category of a token.
type Type string

const (
	// Single-character tokens.
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	COMMA     Type = ","
	DOT       Type = "."
	MINUS     Type = "-"
	PLUS      Type = "+"
	SEMICOLON Type = ";"
	SLASH     Type = "/"
	STAR      Type = "*"

	// One or two character tokens.
	BANG    Type = "!"
	BANG_EQ Type = "!="
	ASSIGN  Type = "="
	EQ      Type = "=="
	GT      Type = ">"
	GT_EQ   Type = ">="
	LT      Type = "<"
	LT_EQ   Type = "<="

	// Literals.
	IDENT  Type = "IDENT"
	STRING Type = "STRING"
	NUMBER Type = "NUMBER"

	// Keywords.
	AND    Type = "AND"
	CLASS  Type = "CLASS"
	ELSE   Type = "ELSE"
	FALSE  Type = "FALSE"
	FOR    Type = "FOR"
	FUN    Type = "FUN"
	IF     Type = "IF"
	NIL    Type = "NIL"
	OR     Type = "OR"
	PRINT  Type = "PRINT"
	RETURN Type = "RETURN"
	SUPER  Type = "SUPER"
	THIS   Type = "THIS"
	TRUE   Type = "TRUE"
	VAR    Type = "VAR"
	WHILE  Type = "WHILE"

	// EOF marks the end of input and is always the last token.
	EOF Type = "EOF"
)

// Token is a single lexical token. Literal holds the decoded value for
// NUMBER (float64) and STRING (string) tokens and is nil for everything else.
// Line is the 1-based source line, kept for error reporting.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

// Is reports whether the token has the given type.
func (t Token) Is(typ Type) bool {
	return t.Type == typ
}

// keywords is the fixed reserved-word table. It is never mutated after
// package initialization.
var keywords = map[string]Type{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a
// reserved word.
func LookupIdent(ident string) Type {
	if typ, ok := keywords[ident]; ok {
		return typ
	}
	return IDENT
}
