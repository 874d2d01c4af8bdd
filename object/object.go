// Package object defines the runtime value types of minilox and the
// environment chain they live in.
package object

import (
	"fmt"
	"strconv"

	"github.com/podhmo/minilox/token"
)

// ObjectType is a string representation of an object's type.
type ObjectType string

const (
	NUMBER_OBJ  ObjectType = "NUMBER"
	STRING_OBJ  ObjectType = "STRING"
	BOOLEAN_OBJ ObjectType = "BOOLEAN"
	NIL_OBJ     ObjectType = "NIL"
	ERROR_OBJ   ObjectType = "ERROR"
)

// Object is the interface all runtime value types implement.
type Object interface {
	// Type returns the type of the object.
	Type() ObjectType
	// Inspect returns the display text of the object's value.
	Inspect() string
}

// Shared singletons. Values carry no identity beyond value equality, so the
// boolean and nil objects are safe to share.
var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

// --- Number Object ---

// Number represents a 64-bit float value.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect renders the value with the minimal decimal form: integral values
// print without a fractional part.
func (n *Number) Inspect() string { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

// --- String Object ---

// String represents a string value.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// --- Boolean Object ---

// Boolean represents a boolean value.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// --- Nil Object ---

// Nil represents the absence of a value.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// --- Error Object ---

// ErrorKind classifies a runtime error.
type ErrorKind int

const (
	DivisionByZero ErrorKind = iota
	UndefinedVariable
	UnexpectedType
	InvalidOperand
	// Unsupported covers constructs the grammar accepts but this evaluator
	// does not execute (calls, classes, returns).
	Unsupported
)

// Error is a runtime error. It implements both Object, so it can propagate
// through evaluation like any other result, and the Go error interface, so
// the facade can surface it directly. Token is the operator or name the error
// occurred at, carrying the 1-based line.
type Error struct {
	Kind    ErrorKind
	Token   token.Token
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }

func (e *Error) Inspect() string {
	return fmt.Sprintf("[line %d] runtime error: %s", e.Token.Line, e.Message)
}

func (e *Error) Error() string { return e.Inspect() }

// --- Environment ---

// Environment holds variable bindings for one scope, with an optional link to
// the enclosing scope. Lookups and assignments that miss locally delegate
// outward through the chain.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a new, outermost environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a new environment enclosed by an outer one.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Define binds name in the local scope, silently replacing any existing
// binding of the same name.
func (e *Environment) Define(name string, val Object) {
	e.store[name] = val
}

// Get resolves the named variable, walking outward through enclosing scopes.
// Reaching the end of the chain without a hit is an UndefinedVariable error.
func (e *Environment) Get(name token.Token) (Object, *Error) {
	if obj, ok := e.store[name.Lexeme]; ok {
		return obj, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, undefined(name)
}

// Assign updates an existing binding, searching outward through enclosing
// scopes. It never creates a binding: assigning a name absent from the whole
// chain is an UndefinedVariable error.
func (e *Environment) Assign(name token.Token, val Object) *Error {
	if _, ok := e.store[name.Lexeme]; ok {
		e.store[name.Lexeme] = val
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return undefined(name)
}

// Lookup resolves a name by string, walking the chain. It reports a miss with
// a bool instead of an error; tests and the facade use it to read globals.
func (e *Environment) Lookup(name string) (Object, bool) {
	if obj, ok := e.store[name]; ok {
		return obj, true
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return nil, false
}

// Outer returns the enclosing environment.
func (e *Environment) Outer() *Environment {
	return e.outer
}

func undefined(name token.Token) *Error {
	return &Error{
		Kind:    UndefinedVariable,
		Token:   name,
		Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}
