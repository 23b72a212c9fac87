package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"test_var", "test_var"},
		{"array-type", "array-type"},
		{"_", "_"},
		{"Infinity", "Infinity"},
		{"+", "+"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"hello"`, "hello", `"hello"`},
		{`"hello world"`, "hello world", `"hello world"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
		{`"કાઠિયાવાડ"`, "કાઠિયાવાડ", `"કાઠિયાવાડ"`},
		{"\"two\nlines\"", "two\nlines", "\"two\nlines\""},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []string{"42", "0", "-123", "+456", "3.14", "0.5", "1e10", "2.5E-3"}

	for _, input := range tests {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeNumber)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseEllipsis(t *testing.T) {
	result, err := Parse("...")
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeEllipsis)
	be.Equal(t, result.String(), "...")
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"()", "()"},
		{"(hello)", "(hello)"},
		{"(1 2 3)", "(1 2 3)"},
		{"(binary \"+\" (number 1) (number 2))", "(binary \"+\" (number 1) (number 2))"},
		{"(nested (list here))", "(nested (list here))"},
		{"(program ...)", "(program ...)"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeList)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseArray(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[]", "[]"},
		{"[1]", "[1]"},
		{"[variables for-loops]", "[variables for-loops]"},
		{"[(keyword \"le\") ...]", "[(keyword \"le\") ...]"},
		{"[[nested] array]", "[[nested] array]"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeArray)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseMap(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{}", "{}"},
		{"{tokenCount: 4}", "{tokenCount: 4}"},
		{"{tokenCount: 4, astNodeCount: 3}", "{tokenCount: 4, astNodeCount: 3}"},
		{"{features: [variables], nested: {a: b}}", "{features: [variables], nested: {a: b}}"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeMap)
		be.Equal(t, result.String(), test.expected)
	}

	m, err := Parse("{a: 1, b: \"two\"}")
	be.Err(t, err, nil)
	b, ok := m.Get("b")
	be.True(t, ok)
	be.Equal(t, b.Text, "two")
	_, ok = m.Get("c")
	be.True(t, !ok)
}

func TestParseComplexExamples(t *testing.T) {
	input := `(program
 (func "add" (params (param "a") (param "b"))
  (block (return (binary "+" (ident "a") (ident "b")))))
 (print (call (ident "add") (number 1) (number 2))))`
	expected := `(program (func "add" (params (param "a") (param "b")) (block (return (binary "+" (ident "a") (ident "b"))))) (print (call (ident "add") (number 1) (number 2))))`

	result, err := Parse(input)
	be.Err(t, err, nil)
	be.Equal(t, result.String(), expected)
}

func TestRoundTripParsing(t *testing.T) {
	tests := []string{
		"hello",
		`"world"`,
		"42",
		"-1.5",
		"...",
		"()",
		"(test)",
		"(1 2 3)",
		"[]",
		"[1 2 3]",
		"{}",
		"{key: value}",
		"(binary \"+\" 1 2)",
		`(string "a\\b\"c")`,
	}

	for _, test := range tests {
		t.Run(test, func(t *testing.T) {
			result1, err := Parse(test)
			be.Err(t, err, nil)

			output := result1.String()

			result2, err := Parse(output)
			be.Err(t, err, nil)

			be.Equal(t, result2.String(), output)
		})
	}
}

func TestParseComments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"; comment\nhello", "hello"},
		{"hello ; trailing comment", "hello"},
		{"; AST for expression\n(binary \"+\" 1 2)", "(binary \"+\" 1 2)"},
		{"(test ; inline comment\n world)", "(test world)"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"unterminated string`, "unterminated string"},
		{`"invalid \escape"`, "invalid escape sequence: \\e"},
		{".", "unexpected character '.'"},
		{"..", "unexpected character '.'"},
		{"@", "unexpected character '@'"},
		{"$", "unexpected character '$'"},
		{"`", "unexpected character '`'"},
		{"(1 2 3 . 4)", "unexpected character '.'"},
		{"(ok ✓)", "unexpected character '✓'"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, err := Parse(test.input)
			be.Err(t, err, test.expected)
			be.True(t, result == nil)
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(", "expected ')' but got EOF"},
		{"[", "expected ']' but got EOF"},
		{"{", "expected '}' but got EOF"},
		{"(hello", "expected ')' but got EOF"},
		{")", "unexpected token: ')'"},
		{"{1: 2}", "expected symbol for map key but got number"},
		{"{a 2}", "expected ':' after map key but got number"},
		{"{a: 1 b: 2}", "expected ',' or '}' in map but got symbol"},
		{"hello world", "expected EOF but got symbol"},
		{"(test) more", "expected EOF but got symbol"},
		{"[] 42", "expected EOF but got number"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Parse(test.input)
			be.Err(t, err, test.expected)
		})
	}
}

func TestNodeTypeHelpers(t *testing.T) {
	be.True(t, NewSymbol("test").IsAtom())
	be.True(t, NewString("hello").IsAtom())
	be.True(t, NewNumber("42").IsAtom())
	be.True(t, NewEllipsis().IsAtom())
	be.True(t, !NewList(nil).IsAtom())
	be.True(t, !NewArray(nil).IsAtom())
	be.True(t, !NewMap(nil, nil).IsAtom())

	be.Equal(t, NodeNumber.String(), "number")
	be.Equal(t, NodeMap.String(), "map")
}

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	n, err := Parse(input)
	be.Err(t, err, nil)
	return n
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
	}{
		{"x", "x"},
		{`"s"`, `"s"`},
		{"1.5", "1.5"},
		{"_", "(anything (at all))"},
		{"(binary _ (number 1) _)", `(binary "+" (number 1) (ident "x"))`},
		{"(program ...)", "(program)"},
		{"(program ...)", "(program (a) (b) (c))"},
		{"(program (a) ...)", "(program (a) (b))"},
		{"(program ... (c))", "(program (a) (b) (c))"},
		{"(program ... (b) ...)", "(program (a) (b) (c))"},
		{"[variables ...]", "[variables arrays]"},
		{"{tokenCount: 4}", "{tokenCount: 4, astNodeCount: 3}"},
		{"{}", "{a: 1}"},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			be.Err(t, Match(mustParse(t, test.pattern), mustParse(t, test.actual)), nil)
		})
	}
}

func TestMatchMismatch(t *testing.T) {
	tests := []struct {
		pattern  string
		actual   string
		expected string
	}{
		{"x", "y", "at root: expected x, got y"},
		{"x", `"x"`, `at root: expected symbol x, got string "x"`},
		{"(a (b 1))", "(a (b 2))", "at root[1][1]: expected 1, got 2"},
		{"(a b)", "(a)", "at root: expected 2 items, got 1"},
		{"(a)", "(a b)", "at root: expected 1 items, got 2"},
		{"(a ... z)", "(a b c)", "at root: expected (a ... z), got (a b c)"},
		{"[a b]", "(a b)", "at root: expected array [a b], got list (a b)"},
		{"{n: 1}", "{m: 1}", "at root: missing key n"},
		{"{n: {k: 1}}", "{n: {k: 2}}", "at root.n.k: expected 1, got 2"},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			err := Match(mustParse(t, test.pattern), mustParse(t, test.actual))
			be.Err(t, err, test.expected)
		})
	}
}
