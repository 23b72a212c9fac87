package ast

import "fmt"

// Walk visits node and then its children in source order. If visit returns
// false the children of that node are skipped. Absent optional slots are not
// visited.
func Walk(node Node, visit func(Node) bool) {
	if !visit(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStatements(n.Body, visit)
	case *VariableDeclaration:
		if n.TypeAnnotation != nil {
			Walk(n.TypeAnnotation, visit)
		}
		if n.Init != nil {
			Walk(n.Init, visit)
		}
	case *FunctionDeclaration:
		for _, p := range n.Params {
			Walk(p, visit)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, visit)
		}
		walkStatements(n.Body, visit)
	case *ClassDeclaration:
		walkStatements(n.Body, visit)
	case *PrintStatement:
		Walk(n.Expression, visit)
	case *IfStatement:
		Walk(n.Test, visit)
		walkStatements(n.Consequent, visit)
		if n.ElseIf != nil {
			Walk(n.ElseIf, visit)
		}
		walkStatements(n.Alternate, visit)
	case *ForStatement:
		Walk(n.Iterable, visit)
		walkStatements(n.Body, visit)
	case *WhileStatement:
		Walk(n.Test, visit)
		walkStatements(n.Body, visit)
	case *ReturnStatement:
		if n.Argument != nil {
			Walk(n.Argument, visit)
		}
	case *BreakStatement, *ContinueStatement:
	case *ExpressionStatement:
		Walk(n.Expression, visit)
	case *AssignmentExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *ConditionalExpression:
		Walk(n.Test, visit)
		Walk(n.Consequent, visit)
		Walk(n.Alternate, visit)
	case *LogicalExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *BinaryExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *UnaryExpression:
		Walk(n.Argument, visit)
	case *CallExpression:
		Walk(n.Callee, visit)
		for _, arg := range n.Arguments {
			Walk(arg, visit)
		}
	case *MemberExpression:
		Walk(n.Object, visit)
		Walk(n.Property, visit)
	case *ArrayExpression:
		for _, el := range n.Elements {
			Walk(el, visit)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			Walk(p, visit)
		}
	case *Property:
		Walk(n.Key, visit)
		Walk(n.Value, visit)
	case *Parameter:
		if n.TypeAnnotation != nil {
			Walk(n.TypeAnnotation, visit)
		}
		if n.Default != nil {
			Walk(n.Default, visit)
		}
	case *ArrayType:
		Walk(n.ElementType, visit)
	case *TemplateLiteral, *Literal, *Identifier, *TypeAnnotation:
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node %T", node))
	}
}

func walkStatements(list []Statement, visit func(Node) bool) {
	for _, s := range list {
		Walk(s, visit)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}
