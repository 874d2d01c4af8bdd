// Package minilox is a tree-walking interpreter for a small dynamically-typed
// scripting language: a scanner, a recursive-descent parser and an evaluator
// over a chain of lexical scopes.
//
// The Interpreter type is the main entry point. It wires the three phases
// together and owns the global environment; each phase is also usable on its
// own through the scanner, parser and evaluator packages.
package minilox

import (
	"fmt"
	"io"
	"os"

	"github.com/podhmo/minilox/ast"
	"github.com/podhmo/minilox/evaluator"
	"github.com/podhmo/minilox/object"
	"github.com/podhmo/minilox/parser"
	"github.com/podhmo/minilox/scanner"
)

// Interpreter holds the state of one interpreter instance: the evaluator and
// the root (global) environment that persists across Run and EvalLine calls.
type Interpreter struct {
	eval      *evaluator.Evaluator
	globalEnv *object.Environment

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	globals map[string]any
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithStdin sets the standard input for the interpreter.
func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) {
		i.stdin = r
	}
}

// WithStdout sets the writer program output (print statements) goes to.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithStderr sets the standard error for the interpreter.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stderr = w
	}
}

// WithGlobals injects host values into the script's global scope. Supported
// value types are the language's own: numbers, strings, booleans and nil.
func WithGlobals(globals map[string]any) Option {
	return func(i *Interpreter) {
		if i.globals == nil {
			i.globals = make(map[string]any)
		}
		for name, value := range globals {
			i.globals[name] = value
		}
	}
}

// New creates a new interpreter instance with the given I/O streams.
// It panics if initialization fails.
func New(r io.Reader, stdout, stderr io.Writer) *Interpreter {
	i, err := NewInterpreter(WithStdin(r), WithStdout(stdout), WithStderr(stderr))
	if err != nil {
		panic(err) // Should not happen with default options
	}
	return i
}

// NewInterpreter creates a new interpreter instance, configured with options.
func NewInterpreter(options ...Option) (*Interpreter, error) {
	i := &Interpreter{
		globalEnv: object.NewEnvironment(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	for _, opt := range options {
		opt(i)
	}

	for name, value := range i.globals {
		obj, err := toObject(value)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		i.globalEnv.Define(name, obj)
	}

	i.eval = evaluator.New(evaluator.Config{
		Stdout: i.stdout,
		Stderr: i.stderr,
	})
	return i, nil
}

// ScanAndParse turns source text into a statement sequence. The error is a
// *scanner.Error or *parser.Error carrying the 1-based source line.
func (i *Interpreter) ScanAndParse(source string) ([]ast.Stmt, error) {
	tokens, err := scanner.New(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	return parser.New(tokens).Parse()
}

// Interpret executes a statement sequence against the interpreter's global
// environment, writing program output to the configured stdout. The error is
// a *object.Error on runtime failure.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	return i.eval.Interpret(statements, i.globalEnv)
}

// Run scans, parses and interprets source in one call.
func (i *Interpreter) Run(source string) error {
	statements, err := i.ScanAndParse(source)
	if err != nil {
		return err
	}
	return i.Interpret(statements)
}

// EvalLine evaluates a single line of input for the REPL against the
// persistent global environment. Statements run for effect; a bare expression
// (no trailing ';') is evaluated and its value returned. The result is nil
// for input that produces no value.
func (i *Interpreter) EvalLine(line string) (object.Object, error) {
	statements, parseErr := i.ScanAndParse(line)
	if parseErr != nil {
		// Retry as a bare expression before reporting the original error.
		tokens, err := scanner.New(line).ScanTokens()
		if err != nil {
			return nil, parseErr
		}
		expr, err := parser.New(tokens).ParseExpression()
		if err != nil {
			return nil, parseErr
		}
		return i.evalNode(expr)
	}

	var result object.Object
	for _, stmt := range statements {
		value, err := i.evalNode(stmt)
		if err != nil {
			return nil, err
		}
		result = value
	}
	return result, nil
}

func (i *Interpreter) evalNode(node ast.Node) (object.Object, error) {
	result := i.eval.Eval(node, i.globalEnv)
	if err, ok := result.(*object.Error); ok {
		return nil, err
	}
	return result, nil
}

// GlobalEnvForTest returns the interpreter's global environment.
// This method is intended for use in tests only.
func (i *Interpreter) GlobalEnvForTest() *object.Environment {
	return i.globalEnv
}

func toObject(value any) (object.Object, error) {
	switch v := value.(type) {
	case nil:
		return object.NIL, nil
	case bool:
		if v {
			return object.TRUE, nil
		}
		return object.FALSE, nil
	case string:
		return &object.String{Value: v}, nil
	case float64:
		return &object.Number{Value: v}, nil
	case float32:
		return &object.Number{Value: float64(v)}, nil
	case int:
		return &object.Number{Value: float64(v)}, nil
	case int64:
		return &object.Number{Value: float64(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported global value type %T", value)
	}
}
