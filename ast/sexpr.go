package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToSExpr renders node as an s-expression, the format used by AST
// assertions in the markdown test suite and by `ks compile -ast`.
func ToSExpr(node Node) string {
	switch n := node.(type) {
	case *Program:
		return "(program" + statementsSExpr(n.Body) + ")"
	case *VariableDeclaration:
		head := "(let "
		if n.DeclKind == Constant {
			head = "(const "
		}
		result := head + quote(n.Name)
		if n.TypeAnnotation != nil {
			result += " " + ToSExpr(n.TypeAnnotation)
		}
		if n.Init != nil {
			result += " " + ToSExpr(n.Init)
		}
		return result + ")"
	case *FunctionDeclaration:
		result := "(func " + quote(n.Name) + " (params"
		for _, p := range n.Params {
			result += " " + ToSExpr(p)
		}
		result += ")"
		if n.ReturnType != nil {
			result += " (returns " + ToSExpr(n.ReturnType) + ")"
		}
		return result + " " + blockSExpr(n.Body) + ")"
	case *ClassDeclaration:
		result := "(class " + quote(n.Name)
		if n.SuperClass != "" {
			result += " (extends " + quote(n.SuperClass) + ")"
		}
		return result + " " + blockSExpr(n.Body) + ")"
	case *PrintStatement:
		return "(print " + ToSExpr(n.Expression) + ")"
	case *IfStatement:
		result := "(if " + ToSExpr(n.Test) + " " + blockSExpr(n.Consequent)
		if n.ElseIf != nil {
			result += " " + ToSExpr(n.ElseIf)
		} else if n.Alternate != nil {
			result += " " + blockSExpr(n.Alternate)
		}
		return result + ")"
	case *ForStatement:
		return "(for " + quote(n.Variable) + " " + ToSExpr(n.Iterable) + " " + blockSExpr(n.Body) + ")"
	case *WhileStatement:
		return "(while " + ToSExpr(n.Test) + " " + blockSExpr(n.Body) + ")"
	case *ReturnStatement:
		if n.Argument == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(n.Argument) + ")"
	case *BreakStatement:
		return "(break)"
	case *ContinueStatement:
		return "(continue)"
	case *ExpressionStatement:
		return "(expr " + ToSExpr(n.Expression) + ")"
	case *AssignmentExpression:
		return "(assign " + quote(n.Operator) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *ConditionalExpression:
		return "(cond " + ToSExpr(n.Test) + " " + ToSExpr(n.Consequent) + " " + ToSExpr(n.Alternate) + ")"
	case *LogicalExpression:
		return "(logical " + quote(n.Operator) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *BinaryExpression:
		return "(binary " + quote(n.Operator) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *UnaryExpression:
		return "(unary " + quote(n.Operator) + " " + ToSExpr(n.Argument) + ")"
	case *CallExpression:
		result := "(call " + ToSExpr(n.Callee)
		for _, arg := range n.Arguments {
			result += " " + ToSExpr(arg)
		}
		return result + ")"
	case *MemberExpression:
		if n.Computed {
			return "(idx " + ToSExpr(n.Object) + " " + ToSExpr(n.Property) + ")"
		}
		return "(dot " + ToSExpr(n.Object) + " " + ToSExpr(n.Property) + ")"
	case *ArrayExpression:
		result := "(array"
		for _, el := range n.Elements {
			result += " " + ToSExpr(el)
		}
		return result + ")"
	case *ObjectExpression:
		result := "(object"
		for _, p := range n.Properties {
			result += " " + ToSExpr(p)
		}
		return result + ")"
	case *Property:
		return "(prop " + quote(n.Key.Name) + " " + ToSExpr(n.Value) + ")"
	case *TemplateLiteral:
		return "(template " + quote(n.Raw) + ")"
	case *Literal:
		switch n.LitKind {
		case LitNumber:
			return "(number " + FormatNumber(n.Value) + ")"
		case LitString:
			return "(string " + quote(n.Value.(string)) + ")"
		case LitBoolean:
			return "(boolean " + strconv.FormatBool(n.Value.(bool)) + ")"
		default:
			return "(" + string(n.LitKind) + ")"
		}
	case *Identifier:
		return "(ident " + quote(n.Name) + ")"
	case *Parameter:
		result := "(param " + quote(n.Name)
		if n.TypeAnnotation != nil {
			result += " " + ToSExpr(n.TypeAnnotation)
		}
		if n.Default != nil {
			result += " " + ToSExpr(n.Default)
		}
		return result + ")"
	case *TypeAnnotation:
		return "(type " + quote(n.Name) + ")"
	case *ArrayType:
		return "(array-type " + ToSExpr(n.ElementType) + ")"
	default:
		return ""
	}
}

func statementsSExpr(list []Statement) string {
	var sb strings.Builder
	for _, s := range list {
		sb.WriteString(" ")
		sb.WriteString(ToSExpr(s))
	}
	return sb.String()
}

func blockSExpr(list []Statement) string {
	return "(block" + statementsSExpr(list) + ")"
}

// quote uses the string syntax of the sexy reader: only backslash and
// double quote are escaped.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// FormatNumber prints a number literal value the way JavaScript source
// spells it: integers in decimal, floats in their shortest form.
func FormatNumber(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsInf(x, 1) {
			return "Infinity"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
