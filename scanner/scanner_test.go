package scanner

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/podhmo/minilox/token"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{
			name:  "empty",
			input: "",
			want: []token.Token{
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "punctuation",
			input: "(){},.-+;*",
			want: []token.Token{
				{Type: token.LPAREN, Lexeme: "(", Line: 1},
				{Type: token.RPAREN, Lexeme: ")", Line: 1},
				{Type: token.LBRACE, Lexeme: "{", Line: 1},
				{Type: token.RBRACE, Lexeme: "}", Line: 1},
				{Type: token.COMMA, Lexeme: ",", Line: 1},
				{Type: token.DOT, Lexeme: ".", Line: 1},
				{Type: token.MINUS, Lexeme: "-", Line: 1},
				{Type: token.PLUS, Lexeme: "+", Line: 1},
				{Type: token.SEMICOLON, Lexeme: ";", Line: 1},
				{Type: token.STAR, Lexeme: "*", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "one or two character operators",
			input: "! != = == < <= > >=",
			want: []token.Token{
				{Type: token.BANG, Lexeme: "!", Line: 1},
				{Type: token.BANG_EQ, Lexeme: "!=", Line: 1},
				{Type: token.ASSIGN, Lexeme: "=", Line: 1},
				{Type: token.EQ, Lexeme: "==", Line: 1},
				{Type: token.LT, Lexeme: "<", Line: 1},
				{Type: token.LT_EQ, Lexeme: "<=", Line: 1},
				{Type: token.GT, Lexeme: ">", Line: 1},
				{Type: token.GT_EQ, Lexeme: ">=", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "slash vs comment",
			input: "1 / 2 // the rest is ignored\n3",
			want: []token.Token{
				{Type: token.NUMBER, Lexeme: "1", Literal: float64(1), Line: 1},
				{Type: token.SLASH, Lexeme: "/", Line: 1},
				{Type: token.NUMBER, Lexeme: "2", Literal: float64(2), Line: 1},
				{Type: token.NUMBER, Lexeme: "3", Literal: float64(3), Line: 2},
				{Type: token.EOF, Line: 2},
			},
		},
		{
			name:  "comment only produces no tokens",
			input: "// nothing here",
			want: []token.Token{
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "numbers",
			input: "123 45.67",
			want: []token.Token{
				{Type: token.NUMBER, Lexeme: "123", Literal: float64(123), Line: 1},
				{Type: token.NUMBER, Lexeme: "45.67", Literal: 45.67, Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "trailing dot is not part of the number",
			input: "123.",
			want: []token.Token{
				{Type: token.NUMBER, Lexeme: "123", Literal: float64(123), Line: 1},
				{Type: token.DOT, Lexeme: ".", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "string literal excludes quotes",
			input: `"hello"`,
			want: []token.Token{
				{Type: token.STRING, Lexeme: `"hello"`, Literal: "hello", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "multi-line string counts lines",
			input: "\"a\nb\" c",
			want: []token.Token{
				{Type: token.STRING, Lexeme: "\"a\nb\"", Literal: "a\nb", Line: 2},
				{Type: token.IDENT, Lexeme: "c", Line: 2},
				{Type: token.EOF, Line: 2},
			},
		},
		{
			name:  "keywords and identifiers",
			input: "var x = true;",
			want: []token.Token{
				{Type: token.VAR, Lexeme: "var", Line: 1},
				{Type: token.IDENT, Lexeme: "x", Line: 1},
				{Type: token.ASSIGN, Lexeme: "=", Line: 1},
				{Type: token.TRUE, Lexeme: "true", Line: 1},
				{Type: token.SEMICOLON, Lexeme: ";", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "newlines advance the line counter",
			input: "a\nb\n\nc",
			want: []token.Token{
				{Type: token.IDENT, Lexeme: "a", Line: 1},
				{Type: token.IDENT, Lexeme: "b", Line: 2},
				{Type: token.IDENT, Lexeme: "c", Line: 4},
				{Type: token.EOF, Line: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.input).ScanTokens()
			if err != nil {
				t.Fatalf("ScanTokens() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanTokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanTokens_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ErrorKind
		wantLine int
	}{
		{
			name:     "unexpected character",
			input:    "1 + @",
			wantKind: ErrUnexpectedCharacter,
			wantLine: 1,
		},
		{
			name:     "unexpected character on later line",
			input:    "ok\n#",
			wantKind: ErrUnexpectedCharacter,
			wantLine: 2,
		},
		{
			name:     "unterminated string reports the opening line",
			input:    "\n\"abc\ndef",
			wantKind: ErrUnterminatedString,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).ScanTokens()
			if err == nil {
				t.Fatalf("ScanTokens() should fail for %q", tt.input)
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error should be *scanner.Error, got %T: %v", err, err)
			}
			if lexErr.Kind != tt.wantKind {
				t.Errorf("error kind = %v, want %v", lexErr.Kind, tt.wantKind)
			}
			if lexErr.Line != tt.wantLine {
				t.Errorf("error line = %d, want %d", lexErr.Line, tt.wantLine)
			}
		})
	}
}

// Re-scanning an operator token's own lexeme reproduces a token of the same
// type.
func TestScanTokens_OperatorRoundTrip(t *testing.T) {
	operators := []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS,
		token.SEMICOLON, token.SLASH, token.STAR,
		token.BANG, token.BANG_EQ, token.ASSIGN, token.EQ,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ,
	}
	for _, typ := range operators {
		t.Run(string(typ), func(t *testing.T) {
			tokens, err := New(string(typ)).ScanTokens()
			if err != nil {
				t.Fatalf("ScanTokens(%q) failed: %v", string(typ), err)
			}
			if len(tokens) != 2 {
				t.Fatalf("want exactly one token plus EOF, got %v", tokens)
			}
			if tokens[0].Type != typ {
				t.Errorf("re-scanned %q as %v", string(typ), tokens[0].Type)
			}
			if tokens[0].Lexeme != string(typ) {
				t.Errorf("lexeme = %q, want %q", tokens[0].Lexeme, string(typ))
			}
		})
	}
}
