package object

import (
	"testing"

	"github.com/podhmo/minilox/token"
)

func ident(name string) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: name, Line: 1}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"integral number drops the fraction", &Number{Value: 7}, "7"},
		{"fractional number", &Number{Value: 0.5}, "0.5"},
		{"negative number", &Number{Value: -1.25}, "-1.25"},
		{"string is unquoted", &String{Value: "hi"}, "hi"},
		{"true", TRUE, "true"},
		{"false", FALSE, "false"},
		{"nil", NIL, "nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Inspect(); got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvironment_DefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &Number{Value: 1})

	obj, err := env.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if obj.(*Number).Value != 1 {
		t.Errorf("x = %s, want 1", obj.Inspect())
	}

	// Re-declaring in the same scope silently replaces.
	env.Define("x", &String{Value: "replaced"})
	obj, err = env.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() after redefine failed: %v", err)
	}
	if obj.Type() != STRING_OBJ {
		t.Errorf("x should be replaced, got %s", obj.Type())
	}
}

func TestEnvironment_GetWalksTheChain(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(NewEnclosedEnvironment(global))

	obj, err := inner.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if obj.(*Number).Value != 1 {
		t.Errorf("x = %s, want 1 from the outer scope", obj.Inspect())
	}
}

func TestEnvironment_Shadowing(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", &Number{Value: 2})

	obj, err := inner.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if obj.(*Number).Value != 2 {
		t.Errorf("inner x = %s, want the shadowing 2", obj.Inspect())
	}

	obj, err = outer.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if obj.(*Number).Value != 1 {
		t.Errorf("outer x = %s, want the untouched 1", obj.Inspect())
	}
}

func TestEnvironment_GetUndefined(t *testing.T) {
	env := NewEnclosedEnvironment(NewEnvironment())
	_, err := env.Get(token.Token{Type: token.IDENT, Lexeme: "missing", Line: 3})
	if err == nil {
		t.Fatal("Get() should fail for an undefined variable")
	}
	if err.Kind != UndefinedVariable {
		t.Errorf("error kind = %v, want UndefinedVariable", err.Kind)
	}
	if err.Token.Line != 3 {
		t.Errorf("error line = %d, want 3", err.Token.Line)
	}
}

func TestEnvironment_AssignUpdatesEnclosingScope(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign(ident("x"), &Number{Value: 2}); err != nil {
		t.Fatalf("Assign() failed: %v", err)
	}
	obj, err := outer.Get(ident("x"))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if obj.(*Number).Value != 2 {
		t.Errorf("x = %s, want 2 after assignment through the chain", obj.Inspect())
	}
}

func TestEnvironment_AssignNeverDefines(t *testing.T) {
	env := NewEnvironment()
	err := env.Assign(ident("y"), &Number{Value: 5})
	if err == nil {
		t.Fatal("Assign() should fail for an undeclared variable")
	}
	if err.Kind != UndefinedVariable {
		t.Errorf("error kind = %v, want UndefinedVariable", err.Kind)
	}
	if _, ok := env.Lookup("y"); ok {
		t.Error("a failed Assign() must not create a binding")
	}
}

func TestError_ImplementsErrorAndObject(t *testing.T) {
	err := &Error{
		Kind:    DivisionByZero,
		Token:   token.Token{Type: token.SLASH, Lexeme: "/", Line: 2},
		Message: "Division by zero.",
	}
	if err.Type() != ERROR_OBJ {
		t.Errorf("Type() = %v, want ERROR_OBJ", err.Type())
	}
	want := "[line 2] runtime error: Division by zero."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Inspect() != err.Error() {
		t.Errorf("Inspect() and Error() should agree, got %q and %q", err.Inspect(), err.Error())
	}
}
