// Package evaluator walks minilox syntax trees and executes them.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/podhmo/minilox/ast"
	"github.com/podhmo/minilox/object"
	"github.com/podhmo/minilox/token"
)

// Evaluator executes statements and evaluates expressions against an
// environment chain. It is single-threaded: one evaluation runs to completion
// or to the first runtime error.
type Evaluator struct {
	stdout io.Writer
	stderr io.Writer
}

// Config configures an Evaluator. Nil writers default to the process streams.
type Config struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an evaluator from the given config.
func New(cfg Config) *Evaluator {
	e := &Evaluator{stdout: cfg.Stdout, stderr: cfg.Stderr}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Interpret executes statements in order against env, stopping at the first
// runtime error.
func (e *Evaluator) Interpret(statements []ast.Stmt, env *object.Environment) error {
	for _, stmt := range statements {
		if result := e.Eval(stmt, env); isError(result) {
			return result.(*object.Error)
		}
	}
	return nil
}

// Eval evaluates a single node. Statements yield the value of their last
// evaluated expression where one exists (the REPL prints it); errors
// propagate as *object.Error results.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) object.Object {
	switch n := node.(type) {
	// statements
	case *ast.ExpressionStmt:
		return e.Eval(n.Expression, env)
	case *ast.PrintStmt:
		return e.evalPrintStatement(n, env)
	case *ast.VarStmt:
		return e.evalVarStatement(n, env)
	case *ast.BlockStmt:
		// The child scope lives only for the duration of this call; the
		// caller's env is untouched on every exit path, error included.
		return e.evalBlockStatement(n.Statements, object.NewEnclosedEnvironment(env))
	case *ast.IfStmt:
		return e.evalIfStatement(n, env)
	case *ast.WhileStmt:
		return e.evalWhileStatement(n, env)
	case *ast.FunctionStmt:
		return e.newError(n.Name, object.Unsupported, "function declarations are not supported")
	case *ast.ReturnStmt:
		return e.newError(n.Keyword, object.Unsupported, "'return' is not supported")
	case *ast.ClassStmt:
		return e.newError(n.Name, object.Unsupported, "class declarations are not supported")

	// expressions
	case *ast.Literal:
		return e.evalLiteral(n)
	case *ast.Grouping:
		return e.Eval(n.Expression, env)
	case *ast.Unary:
		return e.evalUnaryExpression(n, env)
	case *ast.Binary:
		return e.evalBinaryExpression(n, env)
	case *ast.Logical:
		return e.evalLogicalExpression(n, env)
	case *ast.Variable:
		obj, err := env.Get(n.Name)
		if err != nil {
			return err
		}
		return obj
	case *ast.Assign:
		value := e.Eval(n.Value, env)
		if isError(value) {
			return value
		}
		if err := env.Assign(n.Name, value); err != nil {
			return err
		}
		// Assignment is an expression and yields the assigned value.
		return value
	case *ast.Call:
		return e.newError(n.Paren, object.Unsupported, "function calls are not supported")
	case *ast.Get:
		return e.newError(n.Name, object.Unsupported, "property access is not supported")
	case *ast.Set:
		return e.newError(n.Name, object.Unsupported, "property assignment is not supported")
	case *ast.This:
		return e.newError(n.Keyword, object.Unsupported, "'this' is not supported")
	case *ast.Super:
		return e.newError(n.Keyword, object.Unsupported, "'super' is not supported")
	default:
		panic(fmt.Sprintf("evaluator: unknown node type %T", node))
	}
}

func (e *Evaluator) evalPrintStatement(stmt *ast.PrintStmt, env *object.Environment) object.Object {
	value := e.Eval(stmt.Expression, env)
	if isError(value) {
		return value
	}
	fmt.Fprintln(e.stdout, value.Inspect())
	return nil
}

func (e *Evaluator) evalVarStatement(stmt *ast.VarStmt, env *object.Environment) object.Object {
	var value object.Object = object.NIL
	if stmt.Initializer != nil {
		value = e.Eval(stmt.Initializer, env)
		if isError(value) {
			return value
		}
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}

func (e *Evaluator) evalBlockStatement(statements []ast.Stmt, env *object.Environment) object.Object {
	var result object.Object
	for _, stmt := range statements {
		result = e.Eval(stmt, env)
		if isError(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIfStatement(stmt *ast.IfStmt, env *object.Environment) object.Object {
	condition := e.Eval(stmt.Condition, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		return e.Eval(stmt.Then, env)
	}
	if stmt.Else != nil {
		return e.Eval(stmt.Else, env)
	}
	return nil
}

func (e *Evaluator) evalWhileStatement(stmt *ast.WhileStmt, env *object.Environment) object.Object {
	for {
		condition := e.Eval(stmt.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return nil
		}
		if result := e.Eval(stmt.Body, env); isError(result) {
			return result
		}
	}
}

func (e *Evaluator) evalLiteral(expr *ast.Literal) object.Object {
	switch v := expr.Value.(type) {
	case nil:
		return object.NIL
	case bool:
		return nativeBoolToBooleanObject(v)
	case float64:
		return &object.Number{Value: v}
	case string:
		return &object.String{Value: v}
	default:
		panic(fmt.Sprintf("evaluator: unknown literal type %T", expr.Value))
	}
}

func (e *Evaluator) evalUnaryExpression(expr *ast.Unary, env *object.Environment) object.Object {
	right := e.Eval(expr.Right, env)
	if isError(right) {
		return right
	}
	switch expr.Operator.Type {
	case token.MINUS:
		operand, ok := right.(*object.Number)
		if !ok {
			return e.newError(expr.Operator, object.UnexpectedType, "Operand must be a number.")
		}
		return &object.Number{Value: -operand.Value}
	case token.BANG:
		return nativeBoolToBooleanObject(!isTruthy(right))
	default:
		panic(fmt.Sprintf("evaluator: unknown unary operator %q", expr.Operator.Lexeme))
	}
}

// evalLogicalExpression short-circuits: the value of the deciding operand is
// returned raw, not coerced to a boolean.
func (e *Evaluator) evalLogicalExpression(expr *ast.Logical, env *object.Environment) object.Object {
	left := e.Eval(expr.Left, env)
	if isError(left) {
		return left
	}
	if expr.Operator.Type == token.OR {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return e.Eval(expr.Right, env)
}

func (e *Evaluator) evalBinaryExpression(expr *ast.Binary, env *object.Environment) object.Object {
	left := e.Eval(expr.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(expr.Right, env)
	if isError(right) {
		return right
	}

	op := expr.Operator
	switch op.Type {
	case token.PLUS:
		return e.evalPlusExpression(op, left, right)
	case token.MINUS, token.STAR, token.SLASH:
		return e.evalArithmeticExpression(op, left, right)
	case token.GT, token.GT_EQ, token.LT, token.LT_EQ:
		return e.evalComparisonExpression(op, left, right)
	case token.EQ:
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case token.BANG_EQ:
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	default:
		panic(fmt.Sprintf("evaluator: unknown binary operator %q", op.Lexeme))
	}
}

// evalPlusExpression adds numbers or concatenates strings; every other
// pairing is an invalid operand.
func (e *Evaluator) evalPlusExpression(op token.Token, left, right object.Object) object.Object {
	if l, ok := left.(*object.Number); ok {
		if r, ok := right.(*object.Number); ok {
			return &object.Number{Value: l.Value + r.Value}
		}
	}
	if l, ok := left.(*object.String); ok {
		if r, ok := right.(*object.String); ok {
			return &object.String{Value: l.Value + r.Value}
		}
	}
	return e.newError(op, object.InvalidOperand, "Operands must be two numbers or two strings.")
}

func (e *Evaluator) evalArithmeticExpression(op token.Token, left, right object.Object) object.Object {
	l, r, err := e.numberOperands(op, left, right)
	if err != nil {
		return err
	}
	switch op.Type {
	case token.MINUS:
		return &object.Number{Value: l - r}
	case token.STAR:
		return &object.Number{Value: l * r}
	default: // token.SLASH
		if r == 0 {
			return e.newError(op, object.DivisionByZero, "Division by zero.")
		}
		return &object.Number{Value: l / r}
	}
}

func (e *Evaluator) evalComparisonExpression(op token.Token, left, right object.Object) object.Object {
	l, r, err := e.numberOperands(op, left, right)
	if err != nil {
		return err
	}
	switch op.Type {
	case token.GT:
		return nativeBoolToBooleanObject(l > r)
	case token.GT_EQ:
		return nativeBoolToBooleanObject(l >= r)
	case token.LT:
		return nativeBoolToBooleanObject(l < r)
	default: // token.LT_EQ
		return nativeBoolToBooleanObject(l <= r)
	}
}

func (e *Evaluator) numberOperands(op token.Token, left, right object.Object) (float64, float64, *object.Error) {
	l, ok := left.(*object.Number)
	if !ok {
		return 0, 0, e.newError(op, object.UnexpectedType, "Operands must be numbers.")
	}
	r, ok := right.(*object.Number)
	if !ok {
		return 0, 0, e.newError(op, object.UnexpectedType, "Operands must be numbers.")
	}
	return l.Value, r.Value, nil
}

// objectsEqual is structural equality across matching types only; mismatched
// types compare unequal, never error.
func objectsEqual(left, right object.Object) bool {
	switch l := left.(type) {
	case *object.Nil:
		_, ok := right.(*object.Nil)
		return ok
	case *object.Number:
		r, ok := right.(*object.Number)
		return ok && l.Value == r.Value
	case *object.String:
		r, ok := right.(*object.String)
		return ok && l.Value == r.Value
	case *object.Boolean:
		r, ok := right.(*object.Boolean)
		return ok && l.Value == r.Value
	default:
		return false
	}
}

// isTruthy applies the coercion rule: only nil and false are falsy.
func isTruthy(obj object.Object) bool {
	switch o := obj.(type) {
	case *object.Nil:
		return false
	case *object.Boolean:
		return o.Value
	default:
		return true
	}
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return object.TRUE
	}
	return object.FALSE
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

func (e *Evaluator) newError(tok token.Token, kind object.ErrorKind, format string, args ...any) *object.Error {
	return &object.Error{Kind: kind, Token: tok, Message: fmt.Sprintf(format, args...)}
}
