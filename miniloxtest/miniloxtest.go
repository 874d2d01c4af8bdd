// Package miniloxtest is a test helper for running minilox scripts from TOML
// fixture files. Each case runs in its own interpreter with a captured output
// buffer, so a directory of fixtures can run concurrently.
package miniloxtest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"github.com/podhmo/minilox"
	"github.com/podhmo/minilox/object"
	"github.com/podhmo/minilox/parser"
	"github.com/podhmo/minilox/scanner"
)

// Case is a single script fixture. Exactly one of Output or Error describes
// the expected outcome: Output is the expected stdout lines for a successful
// run, Error a substring of the expected error message. Phase optionally pins
// the phase the error must come from ("lex", "parse" or "runtime").
type Case struct {
	Name   string   `toml:"name"`
	Source string   `toml:"source"`
	Output []string `toml:"output"`
	Error  string   `toml:"error"`
	Phase  string   `toml:"phase"`
}

// File is a TOML fixture file holding a list of cases.
type File struct {
	Cases []Case `toml:"cases"`
}

// LoadFile decodes a TOML fixture file.
func LoadFile(path string) (*File, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decoding fixture %s: %w", path, err)
	}
	for i, c := range file.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("fixture %s: case %d has no name", path, i)
		}
	}
	return &file, nil
}

// Run executes one case in a fresh interpreter and reports any mismatch
// between the actual and the expected outcome.
func Run(c Case) error {
	var out bytes.Buffer
	interp, err := minilox.NewInterpreter(minilox.WithStdout(&out))
	if err != nil {
		return fmt.Errorf("%s: creating interpreter: %w", c.Name, err)
	}

	runErr := interp.Run(c.Source)
	if c.Error == "" {
		if runErr != nil {
			return fmt.Errorf("%s: unexpected error: %w", c.Name, runErr)
		}
	} else {
		if runErr == nil {
			return fmt.Errorf("%s: expected error containing %q, got none", c.Name, c.Error)
		}
		if !strings.Contains(runErr.Error(), c.Error) {
			return fmt.Errorf("%s: error %q does not contain %q", c.Name, runErr.Error(), c.Error)
		}
		if c.Phase != "" {
			if phase := Classify(runErr); phase != c.Phase {
				return fmt.Errorf("%s: error came from phase %q, want %q", c.Name, phase, c.Phase)
			}
		}
	}

	got := splitLines(out.String())
	if len(got) != len(c.Output) {
		return fmt.Errorf("%s: got %d output lines %q, want %d %q", c.Name, len(got), got, len(c.Output), c.Output)
	}
	for i := range got {
		if got[i] != c.Output[i] {
			return fmt.Errorf("%s: output line %d is %q, want %q", c.Name, i, got[i], c.Output[i])
		}
	}
	return nil
}

// RunFile runs every case in a fixture file.
func RunFile(path string) error {
	file, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, c := range file.Cases {
		if err := Run(c); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// RunDir runs every *.toml fixture file under dir. Cases are independent, so
// files run concurrently.
func RunDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fixture files under %s", dir)
	}

	var g errgroup.Group
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return RunFile(path)
		})
	}
	return g.Wait()
}

// Classify names the phase an error came from: "lex", "parse", "runtime" or
// "" for anything else.
func Classify(err error) string {
	var lexErr *scanner.Error
	if errors.As(err, &lexErr) {
		return "lex"
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return "parse"
	}
	var runtimeErr *object.Error
	if errors.As(err, &runtimeErr) {
		return "runtime"
	}
	return ""
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
