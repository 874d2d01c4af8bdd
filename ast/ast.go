// Package ast defines the syntax tree the parser builds and the evaluator
// walks. Expr and Stmt are closed sums: the evaluator dispatches over them
// with exhaustive type switches, so grammar-only constructs (calls, classes)
// stay type-checked even where their evaluation is unsupported.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/podhmo/minilox/token"
)

// Node is implemented by every syntax tree node. String renders a compact
// lisp-like debug form, used by tests and the --ast dump mode.
type Node interface {
	String() string
}

// Expr marks expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt marks statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// --- Expressions ---

// Literal is a literal value: nil, bool, float64 or string.
type Literal struct {
	Value any
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expression Expr
}

// Unary is a prefix operator expression ("!" or "-").
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is an infix operator expression.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is a short-circuiting "and"/"or" expression.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Variable is a variable reference.
type Variable struct {
	Name token.Token
}

// Assign is an assignment to an existing variable.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Call is a function or method invocation. Paren is the closing parenthesis,
// kept for error positions.
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

// Get is a property access.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set is a property assignment.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is the "this" keyword.
type This struct {
	Keyword token.Token
}

// Super is a superclass method access.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

func (e *Literal) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (e *Grouping) String() string {
	return fmt.Sprintf("(group %s)", e.Expression)
}

func (e *Unary) String() string {
	return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, e.Right)
}

func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left, e.Right)
}

func (e *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left, e.Right)
}

func (e *Variable) String() string {
	return e.Name.Lexeme
}

func (e *Assign) String() string {
	return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, e.Value)
}

func (e *Call) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(call %s", e.Callee)
	for _, arg := range e.Arguments {
		fmt.Fprintf(&b, " %s", arg)
	}
	b.WriteString(")")
	return b.String()
}

func (e *Get) String() string {
	return fmt.Sprintf("(. %s %s)", e.Object, e.Name.Lexeme)
}

func (e *Set) String() string {
	return fmt.Sprintf("(.= %s %s %s)", e.Object, e.Name.Lexeme, e.Value)
}

func (e *This) String() string {
	return "this"
}

func (e *Super) String() string {
	return fmt.Sprintf("(super %s)", e.Method.Lexeme)
}

// --- Statements ---

// ExpressionStmt evaluates an expression for effect and discards the value.
type ExpressionStmt struct {
	Expression Expr
}

// PrintStmt writes the rendered value of an expression as a line of output.
type PrintStmt struct {
	Expression Expr
}

// VarStmt declares a variable in the current scope. Initializer may be nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

// BlockStmt introduces a new scope for its statements.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt is a conditional. Else may be nil.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// WhileStmt is a condition-checked loop. For-loops desugar to this.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt is a function declaration.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt returns from a function. Value may be nil.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

// ClassStmt is a class declaration. Superclass may be nil.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}

func (s *ExpressionStmt) String() string {
	return fmt.Sprintf("%s;", s.Expression)
}

func (s *PrintStmt) String() string {
	return fmt.Sprintf("(print %s)", s.Expression)
}

func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("(var %s)", s.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s = %s)", s.Name.Lexeme, s.Initializer)
}

func (s *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, stmt := range s.Statements {
		b.WriteString(" ")
		b.WriteString(stmt.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return fmt.Sprintf("(if %s %s)", s.Condition, s.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", s.Condition, s.Then, s.Else)
}

func (s *WhileStmt) String() string {
	return fmt.Sprintf("(while %s %s)", s.Condition, s.Body)
}

func (s *FunctionStmt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(fun %s (", s.Name.Lexeme)
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.Lexeme)
	}
	b.WriteString(")")
	for _, stmt := range s.Body {
		b.WriteString(" ")
		b.WriteString(stmt.String())
	}
	b.WriteString(")")
	return b.String()
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", s.Value)
}

func (s *ClassStmt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(class %s", s.Name.Lexeme)
	if s.Superclass != nil {
		fmt.Fprintf(&b, " < %s", s.Superclass.Name.Lexeme)
	}
	for _, m := range s.Methods {
		b.WriteString(" ")
		b.WriteString(m.String())
	}
	b.WriteString(")")
	return b.String()
}
