// Package compiler runs the whole KathiyawadScript pipeline: tokenize,
// parse, generate JavaScript, and analyze.
package compiler

import (
	"fmt"
	"runtime/debug"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/analyzer"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/codegen"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/parser"
)

// Metadata summarizes a successful compilation.
type Metadata struct {
	TokenCount   int      `json:"tokenCount"`
	ASTNodeCount int      `json:"astNodeCount"`
	Features     []string `json:"features"`
}

// Result is the outcome of Compile. On success Code, AST, Tokens and
// Metadata are set; on failure Error holds the message, Err the typed error
// and, for internal faults, Stack the goroutine stack.
type Result struct {
	Success  bool          `json:"success"`
	Code     string        `json:"code,omitempty"`
	AST      *ast.Program  `json:"-"`
	Tokens   []lexer.Token `json:"tokens,omitempty"`
	Metadata *Metadata     `json:"metadata,omitempty"`
	Error    string        `json:"error,omitempty"`
	Stack    string        `json:"stack,omitempty"`
	Err      error         `json:"-"`
}

// Compile never panics and never returns a partial result: any failure in
// any stage yields Success == false and nothing else but the error fields.
func Compile(source string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal compiler error: %v", r)
			result = Result{Error: err.Error(), Stack: string(debug.Stack()), Err: err}
		}
	}()

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return failure(err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return failure(err)
	}
	code := codegen.Generate(prog, 0)
	report := analyzer.Analyze(prog)

	return Result{
		Success: true,
		Code:    code,
		AST:     prog,
		Tokens:  tokens,
		Metadata: &Metadata{
			TokenCount:   len(tokens),
			ASTNodeCount: report.NodeCount,
			Features:     report.Features,
		},
	}
}

func failure(err error) Result {
	return Result{Error: err.Error(), Err: err}
}
