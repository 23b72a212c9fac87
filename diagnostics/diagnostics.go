// Package diagnostics defines the two compile error kinds and helpers for
// presenting them.
package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

// Position is a 1-based line and column in KathiyawadScript source.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is implemented by every compile error.
type Error interface {
	error
	Pos() Position
	Kind() string // "LexicalError" or "SyntaxError"
	// Message returns the message without position info.
	Message() string
}

// LexicalError reports a malformed token: an unterminated string, template
// or block comment, or an unrecognized character.
type LexicalError struct {
	Position
	Msg string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("LexicalError at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
func (e *LexicalError) Pos() Position   { return e.Position }
func (e *LexicalError) Kind() string    { return "LexicalError" }
func (e *LexicalError) Message() string { return e.Msg }

// SyntaxError reports a token stream that does not match the grammar.
// Column is informational; the message only names the line.
type SyntaxError struct {
	Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError at line %d: %s", e.Line, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "SyntaxError" }
func (e *SyntaxError) Message() string { return e.Msg }

// Display writes err to w followed by the offending source line and a caret
// under the error column.
func Display(w io.Writer, source string, err Error) {
	pos := err.Pos()
	fmt.Fprintln(w, err.Error())

	lines := strings.Split(source, "\n")
	lineIdx := pos.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return
	}
	sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")
	fmt.Fprintf(w, "  %s\n", sourceLine)

	col := pos.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", col-1))
}
