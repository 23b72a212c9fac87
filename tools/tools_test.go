package tools

import (
	"strings"
	"testing"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
	"github.com/nalgeon/be"
)

func TestFormatJS(t *testing.T) {
	in := "function f() {\nif (a) {\n    return 1;\n}\n\n   }\nconsole.log(2);"
	want := "function f() {\n  if (a) {\n    return 1;\n  }\n\n}\nconsole.log(2);"
	be.Equal(t, FormatJS(in), want)
}

func TestFormatJSUnbalanced(t *testing.T) {
	be.Equal(t, FormatJS("}\n}\nx;"), "}\n}\nx;")
}

func TestFormat(t *testing.T) {
	got, err := Format("karyo f(a) { vakhat a { dekhad a } }")
	be.Err(t, err, nil)
	be.Equal(t, got, "function f(a) {\n  if (a) {\n    console.log(a);\n  }\n}")

	_, err = Format("le = 1")
	be.Err(t, err, "SyntaxError")
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze("le used = 1\nle spare = 2\ndekhad used")
	be.Err(t, err, nil)
	be.Equal(t, a.Metrics.Lines, 3)
	be.Equal(t, a.Metrics.Tokens, 10)
	be.Equal(t, a.Metrics.ASTNodes, 7)
	be.Equal(t, strings.Join(a.Metrics.Features, ","), "variables")
	be.Equal(t, a.Complexity, 1)
	be.Equal(t, len(a.Suggestions), 1)
	be.Equal(t, a.Suggestions[0], Suggestion{
		Type:       diagnostics.SeverityWarning,
		Message:    "Variable 'spare' is declared but never used",
		Suggestion: "Consider removing unused variable 'spare'",
	})
}

func TestAnalyzeLongSource(t *testing.T) {
	source := "le a = 1\n" + strings.Repeat("dekhad a\n", LongSourceLines)
	a, err := Analyze(source)
	be.Err(t, err, nil)
	be.Equal(t, a.Metrics.Lines, LongSourceLines+2)
	be.Equal(t, len(a.Suggestions), 1)
	be.Equal(t, a.Suggestions[0].Type, diagnostics.SeverityInfo)
	be.Equal(t, a.Suggestions[0].Message, "Function is quite long")
}

func TestAnalyzeError(t *testing.T) {
	_, err := Analyze("dekhad @")
	be.Err(t, err, "LexicalError")
}

func TestDiagnostics(t *testing.T) {
	be.Equal(t, len(Diagnostics("dekhad 1")), 0)

	ds := Diagnostics("le a = 1\nle b = @")
	be.Equal(t, len(ds), 1)
	be.Equal(t, ds[0].Severity, diagnostics.SeverityError)
	be.Equal(t, ds[0].Line, 2)
	be.Equal(t, ds[0].Column, 8)
	be.True(t, strings.HasPrefix(ds[0].Message, "LexicalError at line 2, column 8"))

	ds = Diagnostics("dekhad (1")
	be.Equal(t, ds[0].Line, 1)
	be.True(t, strings.HasPrefix(ds[0].Message, "SyntaxError at line 1"))
}

func TestCompletions(t *testing.T) {
	all := Completions("")
	be.Equal(t, len(all), 31+7+6)
	be.Equal(t, all[0], Completion{
		Label:         "le",
		Kind:          KindKeyword,
		Detail:        "KathiyawadScript keyword",
		Documentation: "Declare a variable that can be reassigned",
	})

	var labels []string
	for _, c := range Completions("st") {
		labels = append(labels, c.Kind+":"+c.Label)
	}
	be.Equal(t, strings.Join(labels, ","), "keyword:static,type:string,module:string")

	be.Equal(t, Completions("try")[0].Documentation, "KathiyawadScript keyword")
	be.Equal(t, Completions("void")[0].Documentation, "No return value")
	be.Equal(t, Completions("math")[0].Documentation, "Built-in math utilities")
	be.Equal(t, len(Completions("zzz")), 0)
}

func TestHighlight(t *testing.T) {
	toks := Highlight("le ok = true + `t`")
	var classes []string
	for _, tok := range toks {
		classes = append(classes, tok.CSSClass)
	}
	be.Equal(t, strings.Join(classes, " "), "ks-keyword ks-identifier ks-operator ks-default ks-operator ks-template")
	be.Equal(t, toks[3].Type, lexer.Boolean)
	be.Equal(t, toks[1].Position, diagnostics.Position{Line: 1, Column: 4})
}

func TestHighlightLexicalError(t *testing.T) {
	be.Equal(t, len(Highlight(`"open`)), 0)
}
