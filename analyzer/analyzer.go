// Package analyzer reports structural facts about a parsed program: its
// size, the language features it uses, and a few lint-style metrics.
package analyzer

import (
	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
)

// Feature tags.
const (
	FeatureVariables          = "variables"
	FeatureConstants          = "constants"
	FeatureTypeAnnotations    = "type-annotations"
	FeatureFunctions          = "functions"
	FeatureDefaultParameters  = "default-parameters"
	FeatureClasses            = "classes"
	FeatureInheritance        = "inheritance"
	FeatureConditionals       = "conditionals"
	FeatureForLoops           = "for-loops"
	FeatureRangeLoops         = "range-loops"
	FeatureWhileLoops         = "while-loops"
	FeatureArrays             = "arrays"
	FeatureObjects            = "objects"
	FeatureBinaryExpressions  = "binary-expressions"
	FeatureLogicalExpressions = "logical-expressions"
	FeatureTernaryOperator    = "ternary-operator"
	FeatureTemplateLiterals   = "template-literals"
)

type Report struct {
	NodeCount int      `json:"astNodeCount"`
	Features  []string `json:"features"`
}

// Analyze counts the nodes of prog and lists its features, deduplicated,
// in the order a pre-order walk first meets them.
func Analyze(prog *ast.Program) Report {
	r := Report{Features: []string{}}
	seen := map[string]bool{}
	tag := func(feature string) {
		if !seen[feature] {
			seen[feature] = true
			r.Features = append(r.Features, feature)
		}
	}

	ast.Walk(prog, func(node ast.Node) bool {
		r.NodeCount++
		switch n := node.(type) {
		case *ast.VariableDeclaration:
			if n.DeclKind == ast.Constant {
				tag(FeatureConstants)
			} else {
				tag(FeatureVariables)
			}
			if n.TypeAnnotation != nil {
				tag(FeatureTypeAnnotations)
			}
		case *ast.FunctionDeclaration:
			tag(FeatureFunctions)
			typed := n.ReturnType != nil
			defaults := false
			for _, p := range n.Params {
				typed = typed || p.TypeAnnotation != nil
				defaults = defaults || p.Default != nil
			}
			if typed {
				tag(FeatureTypeAnnotations)
			}
			if defaults {
				tag(FeatureDefaultParameters)
			}
		case *ast.ClassDeclaration:
			tag(FeatureClasses)
			if n.SuperClass != "" {
				tag(FeatureInheritance)
			}
		case *ast.IfStatement:
			tag(FeatureConditionals)
		case *ast.ForStatement:
			tag(FeatureForLoops)
			if isRange(n.Iterable) {
				tag(FeatureRangeLoops)
			}
		case *ast.WhileStatement:
			tag(FeatureWhileLoops)
		case *ast.ArrayExpression:
			tag(FeatureArrays)
		case *ast.ObjectExpression:
			tag(FeatureObjects)
		case *ast.BinaryExpression:
			tag(FeatureBinaryExpressions)
		case *ast.LogicalExpression:
			tag(FeatureLogicalExpressions)
		case *ast.ConditionalExpression:
			tag(FeatureTernaryOperator)
		case *ast.TemplateLiteral:
			tag(FeatureTemplateLiterals)
		}
		return true
	})
	return r
}

func isRange(expr ast.Expression) bool {
	b, ok := expr.(*ast.BinaryExpression)
	return ok && b.IsRange()
}

// Complexity is a cyclomatic-style score: 1, plus 1 per if (2 with an else
// or else-if branch), 2 per loop, and 1 per ternary or logical operator.
func Complexity(prog *ast.Program) int {
	score := 1
	ast.Walk(prog, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.IfStatement:
			score++
			if n.Alternate != nil || n.ElseIf != nil {
				score++
			}
		case *ast.ForStatement, *ast.WhileStatement:
			score += 2
		case *ast.ConditionalExpression, *ast.LogicalExpression:
			score++
		}
		return true
	})
	return score
}

// UnusedVariables returns, in declaration order, the declared variable
// names that never appear as an identifier anywhere in the program.
func UnusedVariables(prog *ast.Program) []string {
	var declared []string
	used := map[string]bool{}

	var visit func(ast.Node) bool
	visit = func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.VariableDeclaration:
			declared = append(declared, n.Name)
		case *ast.Identifier:
			used[n.Name] = true
		case *ast.Property:
			// Keys and dotted property names are not references.
			ast.Walk(n.Value, visit)
			return false
		case *ast.MemberExpression:
			if !n.Computed {
				ast.Walk(n.Object, visit)
				return false
			}
		}
		return true
	}
	ast.Walk(prog, visit)

	var unused []string
	for _, name := range declared {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	return unused
}
