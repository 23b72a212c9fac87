package codegen

import (
	"testing"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/parser"
	"github.com/nalgeon/be"
)

func generateSource(t *testing.T, source string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	be.Err(t, err, nil)
	prog, err := parser.Parse(tokens)
	be.Err(t, err, nil)
	return Generate(prog, 0)
}

func generateExpr(t *testing.T, source string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	be.Err(t, err, nil)
	expr, err := parser.ParseExpression(tokens)
	be.Err(t, err, nil)
	return Generate(expr, 0)
}

func TestGenerateStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`le name = "X"`, `let name = "X";`},
		{`dekhad "Hello World"`, `console.log("Hello World");`},
		{"pakka pi: number = 3.14", "const pi = 3.14;"},
		{"le later", "let later;"},
		{"le f = 4.0", "let f = 4;"},
		{"x = y", "x = y;"},
		{"return", "return;"},
		{"break; continue", "break;\ncontinue;"},
		{"f(1, `a ${b}`)", "f(1, `a ${b}`);"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, generateSource(t, tt.input), tt.want)
		})
	}
}

func TestGenerateRangeLoop(t *testing.T) {
	got := generateSource(t, "fero i in 1..5 { dekhad i }")
	be.Equal(t, got, "for (let i = 1; i <= 5; i++) {\n  console.log(i);\n}")
}

func TestGenerateRangeLoopBound(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fero i in 1..(n || 3) {}", "for (let i = 1; i <= (n || 3); i++) {\n}"},
		{"fero i in 1..(ok ? 3 : 5) {}", "for (let i = 1; i <= (ok ? 3 : 5); i++) {\n}"},
		{"fero i in 1..(a = 4) {}", "for (let i = 1; i <= (a = 4); i++) {\n}"},
		{"fero i in 1..(a == b) {}", "for (let i = 1; i <= (a == b); i++) {\n}"},
		{"fero i in 1..(a < b) {}", "for (let i = 1; i <= (a < b); i++) {\n}"},
		{"fero i in 0..n * 2 {}", "for (let i = 0; i <= n * 2; i++) {\n}"},
		{"fero i in 0..xs.length {}", "for (let i = 0; i <= xs.length; i++) {\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, generateSource(t, tt.input), tt.want)
		})
	}
}

func TestGenerateForOf(t *testing.T) {
	got := generateSource(t, "fero item in items { dekhad item }")
	be.Equal(t, got, "for (const item of items) {\n  console.log(item);\n}")
}

func TestGenerateFunction(t *testing.T) {
	got := generateSource(t, `karyo greet(name: string, greeting = "Hi"): string {
  return greeting + " " + name
}`)
	want := "function greet(name, greeting = \"Hi\") {\n" +
		"  return greeting + \" \" + name;\n" +
		"}"
	be.Equal(t, got, want)
}

func TestGenerateClass(t *testing.T) {
	got := generateSource(t, "class Dog extends Animal { dekhad 1 }\nclass Cat {}")
	want := "class Dog extends Animal {\n  console.log(1);\n}\nclass Cat {\n}"
	be.Equal(t, got, want)
}

func TestGenerateIfChain(t *testing.T) {
	got := generateSource(t, `vakhat x > 10 {
  dekhad "big"
} nahi vakhat x > 5 {
  dekhad "medium"
} nahi {
  jyare x < 5 { x += 1 }
}`)
	want := "if (x > 10) {\n" +
		"  console.log(\"big\");\n" +
		"} else if (x > 5) {\n" +
		"  console.log(\"medium\");\n" +
		"} else {\n" +
		"  while (x < 5) {\n" +
		"    x += 1;\n" +
		"  }\n" +
		"}"
	be.Equal(t, got, want)
}

func TestGenerateEmptyBlocks(t *testing.T) {
	be.Equal(t, generateSource(t, "jyare ok {}"), "while (ok) {\n}")
	be.Equal(t, generateSource(t, "vakhat a {} nahi {}"), "if (a) {\n} else {\n}")
}

func TestGenerateIndent(t *testing.T) {
	tokens, err := lexer.Tokenize("vakhat a { dekhad b }")
	be.Err(t, err, nil)
	prog, err := parser.Parse(tokens)
	be.Err(t, err, nil)
	be.Equal(t, Generate(prog.Body[0], 2), "    if (a) {\n      console.log(b);\n    }")
}

func TestGenerateParentheses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(a + b) * c", "(a + b) * c"},
		{"a + b * c", "a + b * c"},
		{"a - (b - c)", "a - (b - c)"},
		{"(a - b) - c", "a - b - c"},
		{"a / (b * c)", "a / (b * c)"},
		{"(a || b) && c", "(a || b) && c"},
		{"a || b && c", "a || b && c"},
		{"!(a && b)", "!(a && b)"},
		{"-(-x)", "-(-x)"},
		{"!!x", "!!x"},
		{"-(a + b)", "-(a + b)"},
		{"(a ? b : c) ? d : e", "(a ? b : c) ? d : e"},
		{"a ? b : c ? d : e", "a ? b : c ? d : e"},
		{"(a = b) + 1", "(a = b) + 1"},
		{"a = b = c", "a = b = c"},
		{"(a + b).length", "(a + b).length"},
		{"(f)(x)", "f(x)"},
		{"(1).toString()", "(1).toString()"},
		{"(1.5).toFixed(1)", "1.5.toFixed(1)"},
		{"[1, 2][0]", "[1, 2][0]"},
		{"(a < b) == (c < d)", "a < b == c < d"},
		{"a?.5:1", "a ? 0.5 : 1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, generateExpr(t, tt.input), tt.want)
		})
	}
}

func TestGenerateLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"say \"hi\""`, `"say \"hi\""`},
		{`'it\'s'`, `"it's"`},
		{`"line\nbreak\ttab"`, `"line\nbreak\ttab"`},
		{`"back\\slash"`, `"back\\slash"`},
		{"true", "true"},
		{"null", "null"},
		{"undefined", "undefined"},
		{"0.5", "0.5"},
		{"[]", "[]"},
		{`{name: "a", "two words": 2, _ok: true}`, `{name: "a", "two words": 2, _ok: true}`},
		{"{}", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, generateExpr(t, tt.input), tt.want)
		})
	}
}

func TestGenerateObjectStatement(t *testing.T) {
	be.Equal(t, generateSource(t, "{a: 1}.a"), "({a: 1}.a);")
	be.Equal(t, generateSource(t, "x = {a: 1}"), "x = {a: 1};")
}

func TestQuoteControlCharacters(t *testing.T) {
	be.Equal(t, quoteJS("a\x01b "), `"a\u0001b "`)
}

func TestGenerateNodesOutsideStatements(t *testing.T) {
	param := &ast.Parameter{Name: "n", Default: &ast.Literal{LitKind: ast.LitNumber, Value: int64(1)}}
	be.Equal(t, Generate(param, 0), "n = 1")

	prop := &ast.Property{Key: &ast.Identifier{Name: "1st"}, Value: &ast.Identifier{Name: "v"}}
	be.Equal(t, Generate(prop, 0), `"1st": v`)

	be.Equal(t, Generate(&ast.TypeAnnotation{Name: "number"}, 0), "")
}

func TestGenerateIsDeterministic(t *testing.T) {
	source := "karyo f(a) { vakhat a { return [a, {k: a}] } }\nfero i in 0..a { f(i) }"
	be.Equal(t, generateSource(t, source), generateSource(t, source))
}

type strayExpression struct{}

func (strayExpression) Kind() ast.NodeKind { return "Stray" }

func TestGeneratePanicsOnUnknownNode(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	Generate(strayExpression{}, 0)
}
