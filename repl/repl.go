// Package repl implements the interactive KathiyawadScript session.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/compiler"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/runner"
)

// Executor runs a complete JavaScript program. runner.Runner implements it.
type Executor interface {
	Run(ctx context.Context, code string) (runner.Output, error)
}

// Entry records one evaluated line.
type Entry struct {
	Input   string
	Code    string // generated JavaScript; empty when compilation failed
	Output  string // output produced by this line only
	Error   string
	Success bool
}

// Session keeps the program built so far. Each successful line is appended
// to it and the whole program is run again, so earlier declarations stay
// visible; only the output beyond the previous run is reported.
type Session struct {
	exec       Executor
	program    []string
	prevOutput string
	history    []Entry
}

func NewSession(exec Executor) *Session {
	return &Session{exec: exec}
}

// Evaluate compiles and runs line in the context of earlier lines.
func (s *Session) Evaluate(ctx context.Context, line string) Entry {
	entry := Entry{Input: line}
	defer func() { s.history = append(s.history, entry) }()

	result := compiler.Compile(line)
	if !result.Success {
		entry.Error = result.Error
		return entry
	}
	entry.Code = result.Code

	candidate := append(append([]string(nil), s.program...), result.Code)
	out, err := s.exec.Run(ctx, strings.Join(candidate, "\n"))
	if err != nil {
		entry.Error = strings.TrimSpace(out.Stderr)
		if entry.Error == "" {
			entry.Error = err.Error()
		}
		return entry
	}

	entry.Output = strings.TrimPrefix(out.Stdout, s.prevOutput)
	entry.Success = true
	s.program = candidate
	s.prevOutput = out.Stdout
	return entry
}

// History returns every evaluated line in order.
func (s *Session) History() []Entry {
	return append([]Entry(nil), s.history...)
}

// Clear forgets the accumulated program and the history.
func (s *Session) Clear() {
	s.program = nil
	s.prevOutput = ""
	s.history = nil
}

const helpText = `REPL Commands:
  help    - Show this help
  clear   - Clear REPL context
  history - Show command history
  exit    - Exit REPL
`

// Loop reads lines from in until EOF or an exit command, writing results to
// out and failures to errOut.
func (s *Session) Loop(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "ks> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprint(out, helpText)
			continue
		case "clear":
			s.Clear()
			fmt.Fprintln(out, "Context cleared")
			continue
		case "history":
			fmt.Fprintln(out, "Command History:")
			for i, e := range s.history {
				fmt.Fprintf(out, "  %d. %s\n", i+1, e.Input)
			}
			continue
		}

		entry := s.Evaluate(ctx, input)
		if !entry.Success {
			fmt.Fprintf(errOut, "Error: %s\n", entry.Error)
			continue
		}
		fmt.Fprint(out, entry.Output)
	}
}
