// Package codegen emits JavaScript for a KathiyawadScript AST.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
)

// Generate returns the JavaScript text for node. Statements are indented
// by indent levels of two spaces; a Program is its statements joined by
// newlines. Type annotations produce no output.
//
// Generate panics on a node type it does not know.
func Generate(node ast.Node, indent int) string {
	e := &emitter{level: indent}
	switch n := node.(type) {
	case *ast.Program:
		e.emitProgram(n)
	case ast.Statement:
		e.emitStatement(n)
	case ast.Expression:
		e.emitExpression(n)
	case *ast.Parameter:
		e.emitParameter(n)
	case *ast.Property:
		e.emitProperty(n)
	case ast.TypeNode:
	default:
		panic(fmt.Sprintf("codegen: unexpected node %T", node))
	}
	return e.buf.String()
}

type emitter struct {
	level int
	buf   bytes.Buffer
}

func (e *emitter) writeIndent() {
	for i := 0; i < e.level; i++ {
		e.buf.WriteString("  ")
	}
}

func (e *emitter) write(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) emitProgram(prog *ast.Program) {
	for i, stmt := range prog.Body {
		if i > 0 {
			e.buf.WriteString("\n")
		}
		e.emitStatement(stmt)
	}
}

// emitBlock writes "{", the statements one level deeper, and "}" at the
// current level. The opening brace continues the current line.
func (e *emitter) emitBlock(body []ast.Statement) {
	e.buf.WriteString("{\n")
	e.level++
	for _, stmt := range body {
		e.emitStatement(stmt)
		e.buf.WriteString("\n")
	}
	e.level--
	e.writeIndent()
	e.buf.WriteString("}")
}

func (e *emitter) emitStatement(stmt ast.Statement) {
	e.writeIndent()
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		keyword := "let"
		if s.DeclKind == ast.Constant {
			keyword = "const"
		}
		e.write("%s %s", keyword, s.Name)
		if s.Init != nil {
			e.buf.WriteString(" = ")
			e.emitExpression(s.Init)
		}
		e.buf.WriteString(";")

	case *ast.FunctionDeclaration:
		e.write("function %s(", s.Name)
		for i, p := range s.Params {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.emitParameter(p)
		}
		e.buf.WriteString(") ")
		e.emitBlock(s.Body)

	case *ast.ClassDeclaration:
		e.write("class %s ", s.Name)
		if s.SuperClass != "" {
			e.write("extends %s ", s.SuperClass)
		}
		e.emitBlock(s.Body)

	case *ast.PrintStatement:
		e.buf.WriteString("console.log(")
		e.emitExpression(s.Expression)
		e.buf.WriteString(");")

	case *ast.IfStatement:
		e.emitIf(s)

	case *ast.ForStatement:
		if r, ok := s.Iterable.(*ast.BinaryExpression); ok && r.IsRange() {
			e.write("for (let %s = ", s.Variable)
			e.emitExpression(r.Left)
			e.write("; %s <= ", s.Variable)
			e.emitOperand(r.Right, precedence(r.Right) <= precRelational)
			e.write("; %s++) ", s.Variable)
		} else {
			e.write("for (const %s of ", s.Variable)
			e.emitExpression(s.Iterable)
			e.buf.WriteString(") ")
		}
		e.emitBlock(s.Body)

	case *ast.WhileStatement:
		e.buf.WriteString("while (")
		e.emitExpression(s.Test)
		e.buf.WriteString(") ")
		e.emitBlock(s.Body)

	case *ast.ReturnStatement:
		if s.Argument == nil {
			e.buf.WriteString("return;")
			return
		}
		e.buf.WriteString("return ")
		e.emitExpression(s.Argument)
		e.buf.WriteString(";")

	case *ast.BreakStatement:
		e.buf.WriteString("break;")

	case *ast.ContinueStatement:
		e.buf.WriteString("continue;")

	case *ast.ExpressionStatement:
		// A statement starting with "{" would be read as a block.
		if startsWithObject(s.Expression) {
			e.buf.WriteString("(")
			e.emitExpression(s.Expression)
			e.buf.WriteString(");")
			return
		}
		e.emitExpression(s.Expression)
		e.buf.WriteString(";")

	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", stmt))
	}
}

// emitIf writes an if chain without leading indentation so else-if
// branches can continue the closing line.
func (e *emitter) emitIf(s *ast.IfStatement) {
	e.buf.WriteString("if (")
	e.emitExpression(s.Test)
	e.buf.WriteString(") ")
	e.emitBlock(s.Consequent)
	switch {
	case s.ElseIf != nil:
		e.buf.WriteString(" else ")
		e.emitIf(s.ElseIf)
	case s.Alternate != nil:
		e.buf.WriteString(" else ")
		e.emitBlock(s.Alternate)
	}
}

func (e *emitter) emitParameter(p *ast.Parameter) {
	e.buf.WriteString(p.Name)
	if p.Default != nil {
		e.buf.WriteString(" = ")
		e.emitExpression(p.Default)
	}
}

func (e *emitter) emitProperty(p *ast.Property) {
	if isIdentifierName(p.Key.Name) {
		e.buf.WriteString(p.Key.Name)
	} else {
		e.buf.WriteString(quoteJS(p.Key.Name))
	}
	e.buf.WriteString(": ")
	e.emitExpression(p.Value)
}

// startsWithObject reports whether the emitted text of expr would begin
// with an object literal's "{".
func startsWithObject(expr ast.Expression) bool {
	for {
		var left ast.Expression
		switch n := expr.(type) {
		case *ast.ObjectExpression:
			return true
		case *ast.AssignmentExpression:
			left = n.Left
		case *ast.BinaryExpression:
			left = n.Left
		case *ast.LogicalExpression:
			left = n.Left
		case *ast.ConditionalExpression:
			left = n.Test
		case *ast.CallExpression:
			left = n.Callee
		case *ast.MemberExpression:
			left = n.Object
		default:
			return false
		}
		if leftNeedsParens(expr, left) {
			return false
		}
		expr = left
	}
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '$'
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// quoteJS returns s as a double-quoted JavaScript string literal.
func quoteJS(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
