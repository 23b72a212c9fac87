package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/codegen"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/compiler"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/parser"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/repl"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/sexy"
)

// errNoEngine marks an output assertion that could not run.
var errNoEngine = errors.New("no JavaScript engine available")

// compiledCase is everything an assertion can look at for one test input.
type compiledCase struct {
	code     string
	tree     ast.Node
	tokens   []lexer.Token
	metadata *compiler.Metadata
	err      error
}

func compileCase(tc sexy.TestCase) compiledCase {
	switch tc.InputType {
	case sexy.InputTypeProgram:
		result := compiler.Compile(tc.Input)
		if !result.Success {
			return compiledCase{err: result.Err}
		}
		return compiledCase{code: result.Code, tree: result.AST, tokens: result.Tokens, metadata: result.Metadata}
	case sexy.InputTypeExpr:
		tokens, err := lexer.Tokenize(tc.Input)
		if err != nil {
			return compiledCase{err: err}
		}
		expr, err := parser.ParseExpression(tokens)
		if err != nil {
			return compiledCase{err: err}
		}
		return compiledCase{code: codegen.Generate(expr, 0), tree: expr, tokens: tokens}
	default:
		return compiledCase{err: fmt.Errorf("unknown input type: %s", tc.InputType)}
	}
}

// checkAssertion verifies one assertion against a compiled case. engine may
// be nil, in which case output assertions fail with errNoEngine.
func checkAssertion(ctx context.Context, c compiledCase, a sexy.Assertion, engine repl.Executor) error {
	if a.Type == sexy.AssertionTypeCompileError {
		if c.err == nil {
			return fmt.Errorf("expected compile error containing %q, but compilation succeeded", a.Content)
		}
		if !strings.Contains(c.err.Error(), a.Content) {
			return fmt.Errorf("expected compile error containing %q, got %q", a.Content, c.err.Error())
		}
		return nil
	}
	if c.err != nil {
		return fmt.Errorf("compilation failed: %w", c.err)
	}

	switch a.Type {
	case sexy.AssertionTypeJS:
		got := strings.TrimSpace(c.code)
		want := strings.TrimSpace(a.Content)
		if got != want {
			return fmt.Errorf("generated JavaScript mismatch\nexpected:\n%s\ngot:\n%s", want, got)
		}
	case sexy.AssertionTypeAST:
		actual, err := sexy.Parse(ast.ToSExpr(c.tree))
		if err != nil {
			return fmt.Errorf("failed to read AST: %w", err)
		}
		return sexy.Match(a.ParsedSexy, actual)
	case sexy.AssertionTypeTokens:
		return sexy.Match(a.ParsedSexy, tokensNode(c.tokens))
	case sexy.AssertionTypeFeatures:
		if c.metadata == nil {
			return fmt.Errorf("%s assertion requires %s input", a.Type, sexy.InputTypeProgram)
		}
		return sexy.Match(a.ParsedSexy, featuresNode(c.metadata.Features))
	case sexy.AssertionTypeMetadata:
		if c.metadata == nil {
			return fmt.Errorf("%s assertion requires %s input", a.Type, sexy.InputTypeProgram)
		}
		return sexy.Match(a.ParsedSexy, metadataNode(c.metadata))
	case sexy.AssertionTypeOutput:
		if engine == nil {
			return errNoEngine
		}
		out, err := engine.Run(ctx, c.code)
		if err != nil {
			return fmt.Errorf("execution failed: %w\n%s", err, out.Stderr)
		}
		got := strings.TrimRight(out.Stdout, "\n")
		if got != a.Content {
			return fmt.Errorf("output mismatch\nexpected:\n%s\ngot:\n%s", a.Content, got)
		}
	default:
		return fmt.Errorf("unsupported assertion type: %s", a.Type)
	}
	return nil
}

func tokensNode(tokens []lexer.Token) *sexy.Node {
	items := make([]*sexy.Node, len(tokens))
	for i, tok := range tokens {
		items[i] = sexy.NewList([]*sexy.Node{sexy.NewSymbol(string(tok.Kind)), sexy.NewString(tok.Value)})
	}
	return sexy.NewArray(items)
}

func featuresNode(features []string) *sexy.Node {
	items := make([]*sexy.Node, len(features))
	for i, f := range features {
		items[i] = sexy.NewSymbol(f)
	}
	return sexy.NewArray(items)
}

func metadataNode(m *compiler.Metadata) *sexy.Node {
	return sexy.NewMap(
		[]string{"tokenCount", "astNodeCount", "features"},
		[]*sexy.Node{
			sexy.NewNumber(fmt.Sprint(m.TokenCount)),
			sexy.NewNumber(fmt.Sprint(m.ASTNodeCount)),
			featuresNode(m.Features),
		},
	)
}

// specFile is one Markdown file of test cases.
type specFile struct {
	Path  string
	Cases []sexy.TestCase
}

// loadSpecFiles reads every *_test.md file in dir.
func loadSpecFiles(dir string) ([]specFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_test.md"))
	if err != nil {
		return nil, err
	}
	var files []specFile
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cases, err := sexy.ExtractTestCases(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, specFile{Path: path, Cases: cases})
	}
	return files, nil
}
