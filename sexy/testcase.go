package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language of the fence holding a test's source.
type InputType string

const (
	InputTypeExpr    InputType = "ks-expr"
	InputTypeProgram InputType = "ks-program"
)

// AssertionType is the language of a fence holding an expectation.
type AssertionType string

const (
	AssertionTypeJS           AssertionType = "js"
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeFeatures     AssertionType = "features"
	AssertionTypeTokens       AssertionType = "tokens"
	AssertionTypeMetadata     AssertionType = "metadata"
	AssertionTypeOutput       AssertionType = "output"
	AssertionTypeCompileError AssertionType = "compile-error"
)

var inputTypes = map[string]InputType{
	string(InputTypeExpr):    InputTypeExpr,
	string(InputTypeProgram): InputTypeProgram,
}

// assertionTypes maps each assertion fence to whether its body is a Sexy
// expression.
var assertionTypes = map[string]bool{
	string(AssertionTypeJS):           false,
	string(AssertionTypeAST):          true,
	string(AssertionTypeFeatures):     true,
	string(AssertionTypeTokens):       true,
	string(AssertionTypeMetadata):     true,
	string(AssertionTypeOutput):       false,
	string(AssertionTypeCompileError): false,
}

// IsSexy reports whether the fence content is a Sexy expression. Other
// assertions compare raw text.
func (t AssertionType) IsSexy() bool {
	return assertionTypes[string(t)]
}

type Assertion struct {
	Type       AssertionType
	Content    string // fence body without the trailing newline
	ParsedSexy *Node  // nil unless Type.IsSexy()
	Line       int    // first line of the fence body
}

// TestCase is one "Test: name" section: exactly one input fence and at
// least one assertion.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

func (tc *TestCase) validate() error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

const testHeadingPrefix = "Test: "

// ExtractTestCases reads the test cases of a Markdown document. A heading
// "Test: name" opens a case; the fences up to the next such heading belong
// to it. Fences without a language are ignored anywhere.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	x := &extractor{source: []byte(markdownContent)}
	doc := goldmark.New().Parser().Parse(text.NewReader(x.source))

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			if err := x.heading(n); err != nil {
				return ast.WalkStop, err
			}
		case *ast.FencedCodeBlock:
			if err := x.fence(n); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := x.flush(); err != nil {
		return nil, err
	}
	return x.cases, nil
}

type extractor struct {
	source  []byte
	cases   []TestCase
	current *TestCase
}

func (x *extractor) flush() error {
	if x.current == nil {
		return nil
	}
	if err := x.current.validate(); err != nil {
		return err
	}
	x.cases = append(x.cases, *x.current)
	x.current = nil
	return nil
}

func (x *extractor) heading(h *ast.Heading) error {
	title := x.plainText(h)
	if !strings.HasPrefix(title, testHeadingPrefix) {
		return nil
	}
	if err := x.flush(); err != nil {
		return err
	}
	x.current = &TestCase{Name: strings.TrimPrefix(title, testHeadingPrefix), Assertions: []Assertion{}}
	return nil
}

func (x *extractor) fence(block *ast.FencedCodeBlock) error {
	lang := string(block.Language(x.source))
	if lang == "" {
		return nil
	}
	line := x.lineOf(block)
	inputType, isInput := inputTypes[lang]
	sexyBody, isAssertion := assertionTypes[lang]

	if x.current == nil {
		if isInput || isAssertion {
			return fmt.Errorf("line %d: %s fence found outside of test case", line, lang)
		}
		return fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", line, lang)
	}
	tc := x.current
	body := strings.TrimRight(x.fenceBody(block), "\n")

	switch {
	case isInput:
		if tc.Input != "" {
			return fmt.Errorf("line %d: multiple input fences found in test '%s'", line, tc.Name)
		}
		tc.Input = body
		tc.InputType = inputType
	case isAssertion:
		a := Assertion{Type: AssertionType(lang), Content: body, Line: line}
		if sexyBody {
			parsed, err := Parse(body)
			if err != nil {
				return fmt.Errorf("line %d: failed to parse Sexy assertion in test '%s': %w", line, tc.Name, err)
			}
			a.ParsedSexy = parsed
		}
		tc.Assertions = append(tc.Assertions, a)
	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, lang, tc.Name)
	}
	return nil
}

// plainText concatenates the text segments under n, dropping markup.
func (x *extractor) plainText(n ast.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(x.source))
			continue
		}
		buf.WriteString(x.plainText(c))
	}
	return buf.String()
}

func (x *extractor) fenceBody(block *ast.FencedCodeBlock) string {
	var sb strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(x.source))
	}
	return sb.String()
}

// lineOf returns the 1-based line of the first line of n's body.
func (x *extractor) lineOf(n ast.Node) int {
	if n.Lines().Len() == 0 {
		return 1
	}
	start := min(n.Lines().At(0).Start, len(x.source))
	return bytes.Count(x.source[:start], []byte("\n")) + 1
}
