package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"and", AND},
		{"class", CLASS},
		{"else", ELSE},
		{"false", FALSE},
		{"for", FOR},
		{"fun", FUN},
		{"if", IF},
		{"nil", NIL},
		{"or", OR},
		{"print", PRINT},
		{"return", RETURN},
		{"super", SUPER},
		{"this", THIS},
		{"true", TRUE},
		{"var", VAR},
		{"while", WHILE},
		{"foo", IDENT},
		{"printer", IDENT}, // not a prefix match
		{"And", IDENT},     // keywords are case-sensitive
		{"_", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupIdent(tt.input); got != tt.want {
				t.Errorf("LookupIdent(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenIs(t *testing.T) {
	tok := Token{Type: PLUS, Lexeme: "+", Line: 1}
	if !tok.Is(PLUS) {
		t.Errorf("token %v should be PLUS", tok)
	}
	if tok.Is(MINUS) {
		t.Errorf("token %v should not be MINUS", tok)
	}
}
