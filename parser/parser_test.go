package parser

import (
	"errors"
	"testing"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
	"github.com/nalgeon/be"
)

func parseSource(t *testing.T, source string) (*ast.Program, error) {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	be.Err(t, err, nil)
	return Parse(tokens)
}

func programSExpr(t *testing.T, source string) string {
	t.Helper()
	prog, err := parseSource(t, source)
	be.Err(t, err, nil)
	return ast.ToSExpr(prog)
}

func exprSExpr(t *testing.T, source string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	be.Err(t, err, nil)
	expr, err := ParseExpression(tokens)
	be.Err(t, err, nil)
	return ast.ToSExpr(expr)
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", `(binary "+" (number 1) (binary "*" (number 2) (number 3)))`},
		{"(1 + 2) * 3", `(binary "*" (binary "+" (number 1) (number 2)) (number 3))`},
		{"a - b - c", `(binary "-" (binary "-" (ident "a") (ident "b")) (ident "c"))`},
		{"a < b == c > d", `(binary "==" (binary "<" (ident "a") (ident "b")) (binary ">" (ident "c") (ident "d")))`},
		{"a || b && c", `(logical "||" (ident "a") (logical "&&" (ident "b") (ident "c")))`},
		{"a && b === c", `(logical "&&" (ident "a") (binary "===" (ident "b") (ident "c")))`},
		{"a = b = 1", `(assign "=" (ident "a") (assign "=" (ident "b") (number 1)))`},
		{"x += y % 2", `(assign "+=" (ident "x") (binary "%" (ident "y") (number 2)))`},
		{"a ? b : c ? d : e", `(cond (ident "a") (ident "b") (cond (ident "c") (ident "d") (ident "e")))`},
		{"x > 0 || y ? 1 : 2", `(cond (logical "||" (binary ">" (ident "x") (number 0)) (ident "y")) (number 1) (number 2))`},
		{"!-x", `(unary "!" (unary "-" (ident "x")))`},
		{"-a * b", `(binary "*" (unary "-" (ident "a")) (ident "b"))`},
		{"+a", `(unary "+" (ident "a"))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, exprSExpr(t, tt.input), tt.want)
		})
	}
}

func TestParsePostfix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"f()", `(call (ident "f"))`},
		{"f(1, 2,)", `(call (ident "f") (number 1) (number 2))`},
		{"a.b.c", `(dot (dot (ident "a") (ident "b")) (ident "c"))`},
		{"a[0][i + 1]", `(idx (idx (ident "a") (number 0)) (binary "+" (ident "i") (number 1)))`},
		{"console.log(x)(y)", `(call (call (dot (ident "console") (ident "log")) (ident "x")) (ident "y"))`},
		{"obj.new", `(dot (ident "obj") (ident "new"))`},
		{"-a.b", `(unary "-" (dot (ident "a") (ident "b")))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, exprSExpr(t, tt.input), tt.want)
		})
	}
}

func TestParsePrimary(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "(number 42)"},
		{"2.5", "(number 2.5)"},
		{`"hi"`, `(string "hi")`},
		{"`t ${x}`", `(template "t ${x}")`},
		{"true", "(boolean true)"},
		{"null", "(null)"},
		{"undefined", "(undefined)"},
		{"[]", "(array)"},
		{"[1, [2],]", "(array (number 1) (array (number 2)))"},
		{"{}", "(object)"},
		{`{a: 1, "b c": x,}`, `(object (prop "a" (number 1)) (prop "b c" (ident "x")))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, exprSExpr(t, tt.input), tt.want)
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`le name = "X"`, `(program (let "name" (string "X")))`},
		{"le count", `(program (let "count"))`},
		{"le n: number = 5;", `(program (let "n" (type "number") (number 5)))`},
		{"pakka xs: string[] = []", `(program (const "xs" (array-type (type "string")) (array)))`},
		{"le grid: number[][]", `(program (let "grid" (array-type (array-type (type "number")))))`},
		{"le p: Person = null", `(program (let "p" (type "Person") (null)))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, programSExpr(t, tt.input), tt.want)
		})
	}
}

func TestParseFunction(t *testing.T) {
	got := programSExpr(t, `karyo add(a: number, b = 2,): number {
		return a + b
	}`)
	want := `(program (func "add" (params (param "a" (type "number")) (param "b" (number 2))) ` +
		`(returns (type "number")) (block (return (binary "+" (ident "a") (ident "b"))))))`
	be.Equal(t, got, want)

	got = programSExpr(t, "karyo noop() { return; }")
	be.Equal(t, got, `(program (func "noop" (params) (block (return))))`)
}

func TestParseClass(t *testing.T) {
	got := programSExpr(t, "class Dog extends Animal { dekhad \"woof\" }")
	be.Equal(t, got, `(program (class "Dog" (extends "Animal") (block (print (string "woof")))))`)

	got = programSExpr(t, "class Empty {}")
	be.Equal(t, got, `(program (class "Empty" (block)))`)
}

func TestParseIfChain(t *testing.T) {
	got := programSExpr(t, `
vakhat x > 10 {
  dekhad "big"
} nahi vakhat x > 5 {
  dekhad "medium"
} nahi {
  dekhad "small"
}`)
	want := `(program (if (binary ">" (ident "x") (number 10)) (block (print (string "big"))) ` +
		`(if (binary ">" (ident "x") (number 5)) (block (print (string "medium"))) ` +
		`(block (print (string "small"))))))`
	be.Equal(t, got, want)
}

func TestParseEmptyElse(t *testing.T) {
	prog, err := parseSource(t, "vakhat a {} nahi {}")
	be.Err(t, err, nil)
	stmt := prog.Body[0].(*ast.IfStatement)
	be.True(t, stmt.Alternate != nil)
	be.Equal(t, len(stmt.Alternate), 0)
	be.True(t, stmt.ElseIf == nil)
}

func TestParseLoops(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fero i in 1..5 { dekhad i }", `(program (for "i" (binary ".." (number 1) (number 5)) (block (print (ident "i")))))`},
		{"fero i in a..b + 1 {}", `(program (for "i" (binary ".." (ident "a") (binary "+" (ident "b") (number 1))) (block)))`},
		{"fero x in items { break }", `(program (for "x" (ident "items") (block (break))))`},
		{"jyare i < 3 { i += 1; continue }", `(program (while (binary "<" (ident "i") (number 3)) (block (expr (assign "+=" (ident "i") (number 1))) (continue))))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, programSExpr(t, tt.input), tt.want)
		})
	}
}

func TestParseSemicolons(t *testing.T) {
	got := programSExpr(t, "le a = 1; dekhad a; f();")
	be.Equal(t, got, `(program (let "a" (number 1)) (print (ident "a")) (expr (call (ident "f"))))`)
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := Parse(nil)
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Body), 0)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
		line   int
	}{
		{"unclosed block", "vakhat true { dekhad \"x\"", "expected '}', got end of input", 1},
		{"constant without value", "pakka x", "expected '=', got end of input", 1},
		{"missing variable name", "le = 5", "expected variable name, got operator '='", 1},
		{"range outside loop", "le r = 1..5", "expected expression, got operator '..'", 1},
		{"bad type", "le x: 5", "expected type, got number '5'", 1},
		{"missing in", "fero i of xs {}", "expected 'in', got keyword 'of'", 1},
		{"missing colon", "\nle x = a ? b", "expected ':', got end of input", 2},
		{"invalid assignment", "1 = 2", "invalid assignment target", 1},
		{"keyword expression", "le a = this", "expected expression, got keyword 'this'", 1},
		{"unclosed call", "f(1, 2", "expected ')', got end of input", 1},
		{"bad property", "a.(b)", "expected property name, got delimiter '('", 1},
		{"bad object key", "le o = {1: 2}", "expected property key, got number '1'", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parseSource(t, tt.source)
			be.True(t, prog == nil)

			var synErr *diagnostics.SyntaxError
			be.True(t, errors.As(err, &synErr))
			be.Equal(t, synErr.Msg, tt.msg)
			be.Equal(t, synErr.Line, tt.line)
		})
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("a b")
	be.Err(t, err, nil)
	_, err = ParseExpression(tokens)
	be.Err(t, err, "expected end of input, got identifier 'b'")
}
