// Package tools provides editor and CLI helpers built on the compiler:
// formatting, analysis, diagnostics, completions and highlighting.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/analyzer"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/compiler"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
)

// FormatJS re-indents JavaScript by brace depth: a line starting with "}"
// closes a level, a line ending with "{" opens one. Blank lines are kept
// empty.
func FormatJS(code string) string {
	lines := strings.Split(code, "\n")
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		if strings.HasPrefix(trimmed, "}") && depth > 0 {
			depth--
		}
		lines[i] = strings.Repeat("  ", depth) + trimmed
		if strings.HasSuffix(trimmed, "{") {
			depth++
		}
	}
	return strings.Join(lines, "\n")
}

// Format compiles source and returns the formatted JavaScript.
func Format(source string) (string, error) {
	result := compiler.Compile(source)
	if !result.Success {
		return "", result.Err
	}
	return FormatJS(result.Code), nil
}

// LongSourceLines is the size above which Analyze suggests splitting code.
const LongSourceLines = 50

type Metrics struct {
	Lines    int      `json:"lines"`
	Tokens   int      `json:"tokens"`
	ASTNodes int      `json:"astNodes"`
	Features []string `json:"features"`
}

type Suggestion struct {
	Type       string `json:"type"` // a diagnostics severity
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

type Analysis struct {
	Metrics     Metrics      `json:"metrics"`
	Complexity  int          `json:"complexity"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Analyze compiles source and reports metrics, complexity and suggestions.
func Analyze(source string) (Analysis, error) {
	result := compiler.Compile(source)
	if !result.Success {
		return Analysis{}, result.Err
	}

	a := Analysis{
		Metrics: Metrics{
			Lines:    strings.Count(source, "\n") + 1,
			Tokens:   result.Metadata.TokenCount,
			ASTNodes: result.Metadata.ASTNodeCount,
			Features: result.Metadata.Features,
		},
		Complexity:  analyzer.Complexity(result.AST),
		Suggestions: []Suggestion{},
	}
	for _, name := range analyzer.UnusedVariables(result.AST) {
		a.Suggestions = append(a.Suggestions, Suggestion{
			Type:       diagnostics.SeverityWarning,
			Message:    fmt.Sprintf("Variable '%s' is declared but never used", name),
			Suggestion: fmt.Sprintf("Consider removing unused variable '%s'", name),
		})
	}
	if a.Metrics.Lines > LongSourceLines {
		a.Suggestions = append(a.Suggestions, Suggestion{
			Type:       diagnostics.SeverityInfo,
			Message:    "Function is quite long",
			Suggestion: "Consider breaking this into smaller functions",
		})
	}
	return a, nil
}

// Diagnostics returns the compile errors of source; nil when it compiles.
func Diagnostics(source string) []diagnostics.Diagnostic {
	result := compiler.Compile(source)
	if result.Success {
		return nil
	}
	err := result.Err
	if err == nil {
		err = errors.New(result.Error)
	}
	return []diagnostics.Diagnostic{diagnostics.FromError(err)}
}
