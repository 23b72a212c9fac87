package codegen

import (
	"fmt"
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
)

// Precedence levels, lowest first. They mirror the parser's grammar.
const (
	precAssignment = iota + 1
	precConditional
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

var binaryPrecedence = map[string]int{
	"||": precOr,
	"&&": precAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"+": precAdditive, "-": precAdditive, ast.RangeOperator: precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
}

func precedence(expr ast.Expression) int {
	switch n := expr.(type) {
	case *ast.AssignmentExpression:
		return precAssignment
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.LogicalExpression:
		return binaryPrecedence[n.Operator]
	case *ast.BinaryExpression:
		if p, ok := binaryPrecedence[n.Operator]; ok {
			return p
		}
		return precAdditive
	case *ast.UnaryExpression:
		return precUnary
	case *ast.CallExpression, *ast.MemberExpression:
		return precPostfix
	default:
		return precPrimary
	}
}

// leftNeedsParens reports whether the leftmost child of parent must be
// parenthesized to keep the tree's shape.
func leftNeedsParens(parent, child ast.Expression) bool {
	switch parent.(type) {
	case *ast.ConditionalExpression:
		return precedence(child) <= precConditional
	case *ast.CallExpression, *ast.MemberExpression:
		return precedence(child) < precPostfix || isIntegerLiteral(child)
	case *ast.AssignmentExpression:
		return precedence(child) <= precAssignment
	default:
		return precedence(child) < precedence(parent)
	}
}

// isIntegerLiteral catches 1.toString(), which JavaScript reads as a
// malformed number.
func isIntegerLiteral(expr ast.Expression) bool {
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.LitKind != ast.LitNumber {
		return false
	}
	return !strings.Contains(ast.FormatNumber(lit.Value), ".")
}

func (e *emitter) emitOperand(expr ast.Expression, parens bool) {
	if parens {
		e.buf.WriteString("(")
		e.emitExpression(expr)
		e.buf.WriteString(")")
		return
	}
	e.emitExpression(expr)
}

// emitInfix writes left op right for a left-associative operator.
func (e *emitter) emitInfix(parent ast.Expression, op string, left, right ast.Expression) {
	e.emitOperand(left, leftNeedsParens(parent, left))
	e.write(" %s ", op)
	e.emitOperand(right, precedence(right) <= precedence(parent))
}

func (e *emitter) emitExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.AssignmentExpression:
		e.emitOperand(n.Left, leftNeedsParens(n, n.Left))
		e.write(" %s ", n.Operator)
		// Right-associative: a = b = c needs no parentheses.
		e.emitExpression(n.Right)

	case *ast.ConditionalExpression:
		e.emitOperand(n.Test, leftNeedsParens(n, n.Test))
		e.buf.WriteString(" ? ")
		e.emitExpression(n.Consequent)
		e.buf.WriteString(" : ")
		e.emitExpression(n.Alternate)

	case *ast.LogicalExpression:
		e.emitInfix(n, n.Operator, n.Left, n.Right)

	case *ast.BinaryExpression:
		e.emitInfix(n, n.Operator, n.Left, n.Right)

	case *ast.UnaryExpression:
		e.buf.WriteString(n.Operator)
		parens := precedence(n.Argument) < precUnary
		// -(-x) must not become --x.
		if inner, ok := n.Argument.(*ast.UnaryExpression); ok && inner.Operator == n.Operator && n.Operator != "!" {
			parens = true
		}
		e.emitOperand(n.Argument, parens)

	case *ast.CallExpression:
		e.emitOperand(n.Callee, leftNeedsParens(n, n.Callee))
		e.buf.WriteString("(")
		for i, arg := range n.Arguments {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.emitExpression(arg)
		}
		e.buf.WriteString(")")

	case *ast.MemberExpression:
		e.emitOperand(n.Object, leftNeedsParens(n, n.Object))
		if n.Computed {
			e.buf.WriteString("[")
			e.emitExpression(n.Property)
			e.buf.WriteString("]")
		} else {
			e.buf.WriteString(".")
			e.emitExpression(n.Property)
		}

	case *ast.ArrayExpression:
		e.buf.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.emitExpression(el)
		}
		e.buf.WriteString("]")

	case *ast.ObjectExpression:
		e.buf.WriteString("{")
		for i, p := range n.Properties {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.emitProperty(p)
		}
		e.buf.WriteString("}")

	case *ast.TemplateLiteral:
		e.write("`%s`", n.Raw)

	case *ast.Literal:
		e.emitLiteral(n)

	case *ast.Identifier:
		e.buf.WriteString(n.Name)

	default:
		panic(fmt.Sprintf("codegen: unexpected expression %T", expr))
	}
}

func (e *emitter) emitLiteral(lit *ast.Literal) {
	switch lit.LitKind {
	case ast.LitNumber:
		e.buf.WriteString(ast.FormatNumber(lit.Value))
	case ast.LitString:
		e.buf.WriteString(quoteJS(lit.Value.(string)))
	case ast.LitBoolean:
		e.write("%t", lit.Value)
	case ast.LitNull:
		e.buf.WriteString("null")
	case ast.LitUndefined:
		e.buf.WriteString("undefined")
	default:
		panic(fmt.Sprintf("codegen: unexpected literal kind %q", lit.LitKind))
	}
}
