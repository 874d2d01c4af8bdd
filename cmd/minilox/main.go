// Command minilox runs a script file, or starts an interactive prompt when no
// file is given.
//
// Exit codes follow the usual interpreter convention: 64 for a usage error,
// 65 for a lexical or syntax error, 70 for a runtime error.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/podhmo/minilox"
	"github.com/podhmo/minilox/object"
	"github.com/podhmo/minilox/parser"
	"github.com/podhmo/minilox/scanner"
)

const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
)

func main() {
	var (
		showTokens = pflag.Bool("tokens", false, "print the token stream instead of running")
		showAST    = pflag.Bool("ast", false, "print the parsed syntax tree instead of running")
		logLevel   = pflag.String("log-level", "warn", "log level (debug, info, warn, error)")
	)
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: minilox [flags] [script]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(exitUsage)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	args := pflag.Args()
	switch len(args) {
	case 0:
		os.Exit(runPrompt(os.Stdin, os.Stdout, os.Stderr))
	case 1:
		os.Exit(runFile(args[0], *showTokens, *showAST))
	default:
		pflag.Usage()
		os.Exit(exitUsage)
	}
}

func runFile(path string, showTokens, showAST bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		return exitUsage
	}

	if showTokens {
		tokens, err := scanner.New(string(source)).ScanTokens()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitCompile
		}
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		return 0
	}

	interp, err := minilox.NewInterpreter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	if showAST {
		statements, err := interp.ScanAndParse(string(source))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitCompile
		}
		for _, stmt := range statements {
			fmt.Println(stmt)
		}
		return 0
	}

	if err := interp.Run(string(source)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return 0
}

func runPrompt(stdin io.Reader, stdout, stderr io.Writer) int {
	interp, err := minilox.NewInterpreter(minilox.WithStdout(stdout), minilox.WithStderr(stderr))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	slog.Debug("starting repl")
	in := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !in.Scan() {
			break
		}
		line := in.Text()
		if line == "" {
			continue
		}
		result, err := interp.EvalLine(line)
		if err != nil {
			// The prompt reports the error and keeps going.
			fmt.Fprintln(stderr, err)
			continue
		}
		if result != nil {
			fmt.Fprintln(stdout, result.Inspect())
		}
	}
	if err := in.Err(); err != nil {
		fmt.Fprintf(stderr, "reading input: %v\n", err)
		return exitUsage
	}
	return 0
}

// exitCode maps an error to the interpreter's exit code by the phase it came
// from.
func exitCode(err error) int {
	var lexErr *scanner.Error
	var parseErr *parser.Error
	if errors.As(err, &lexErr) || errors.As(err, &parseErr) {
		return exitCompile
	}
	var runtimeErr *object.Error
	if errors.As(err, &runtimeErr) {
		return exitRuntime
	}
	return exitUsage
}
