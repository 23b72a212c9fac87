// Package ast defines the KathiyawadScript syntax tree.
//
// Every node is a pointer to one of the structs below. Each struct carries
// only the child slots its construct needs; there is no generic child list.
package ast

// NodeKind names a node variant.
type NodeKind string

const (
	KindProgram               NodeKind = "Program"
	KindVariableDeclaration   NodeKind = "VariableDeclaration"
	KindFunctionDeclaration   NodeKind = "FunctionDeclaration"
	KindClassDeclaration      NodeKind = "ClassDeclaration"
	KindPrintStatement        NodeKind = "PrintStatement"
	KindIfStatement           NodeKind = "IfStatement"
	KindForStatement          NodeKind = "ForStatement"
	KindWhileStatement        NodeKind = "WhileStatement"
	KindReturnStatement       NodeKind = "ReturnStatement"
	KindBreakStatement        NodeKind = "BreakStatement"
	KindContinueStatement     NodeKind = "ContinueStatement"
	KindExpressionStatement   NodeKind = "ExpressionStatement"
	KindAssignmentExpression  NodeKind = "AssignmentExpression"
	KindConditionalExpression NodeKind = "ConditionalExpression"
	KindLogicalExpression     NodeKind = "LogicalExpression"
	KindBinaryExpression      NodeKind = "BinaryExpression"
	KindUnaryExpression       NodeKind = "UnaryExpression"
	KindCallExpression        NodeKind = "CallExpression"
	KindMemberExpression      NodeKind = "MemberExpression"
	KindArrayExpression       NodeKind = "ArrayExpression"
	KindObjectExpression      NodeKind = "ObjectExpression"
	KindProperty              NodeKind = "Property"
	KindTemplateLiteral       NodeKind = "TemplateLiteral"
	KindLiteral               NodeKind = "Literal"
	KindIdentifier            NodeKind = "Identifier"
	KindParameter             NodeKind = "Parameter"
	KindTypeAnnotation        NodeKind = "TypeAnnotation"
	KindArrayType             NodeKind = "ArrayType"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() NodeKind
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// TypeNode is a retained, unchecked type annotation.
type TypeNode interface {
	Node
	typeNode()
}

// RangeOperator is the operator of the BinaryExpression a range iterable
// parses to.
const RangeOperator = ".."

type Program struct {
	Body []Statement
}

// DeclKind distinguishes le from pakka.
type DeclKind string

const (
	Mutable  DeclKind = "mutable"
	Constant DeclKind = "constant"
)

type VariableDeclaration struct {
	DeclKind       DeclKind
	Name           string
	TypeAnnotation TypeNode   // nil when absent
	Init           Expression // nil when absent
}

type FunctionDeclaration struct {
	Name       string
	Params     []*Parameter
	ReturnType TypeNode // nil when absent
	Body       []Statement
}

type ClassDeclaration struct {
	Name       string
	SuperClass string // empty when the class extends nothing
	Body       []Statement
}

type PrintStatement struct {
	Expression Expression
}

// IfStatement holds at most one of Alternate and ElseIf.
type IfStatement struct {
	Test       Expression
	Consequent []Statement
	Alternate  []Statement
	ElseIf     *IfStatement
}

// ForStatement iterates Variable over Iterable. A range iterable is a
// BinaryExpression with RangeOperator.
type ForStatement struct {
	Variable string
	Iterable Expression
	Body     []Statement
}

type WhileStatement struct {
	Test Expression
	Body []Statement
}

type ReturnStatement struct {
	Argument Expression // nil for a bare return
}

type BreakStatement struct{}

type ContinueStatement struct{}

type ExpressionStatement struct {
	Expression Expression
}

type AssignmentExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// LogicalExpression is && or ||.
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// IsRange reports whether b is a range iterable.
func (b *BinaryExpression) IsRange() bool {
	return b.Operator == RangeOperator
}

type UnaryExpression struct {
	Operator string
	Argument Expression
}

type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

// MemberExpression is obj.name (Property is an *Identifier) or obj[expr]
// (Computed).
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
}

type ArrayExpression struct {
	Elements []Expression
}

type ObjectExpression struct {
	Properties []*Property
}

// Property is one key: value pair of an object literal. String keys are
// stored as identifiers holding the string's text.
type Property struct {
	Key   *Identifier
	Value Expression
}

// TemplateLiteral keeps the text between backticks uninterpreted.
type TemplateLiteral struct {
	Raw string
}

// LitKind is the kind of a Literal.
type LitKind string

const (
	LitNumber    LitKind = "number"
	LitString    LitKind = "string"
	LitBoolean   LitKind = "boolean"
	LitNull      LitKind = "null"
	LitUndefined LitKind = "undefined"
)

// Literal is a constant. Value is int64 or float64 for numbers, string,
// bool, or nil for null and undefined.
type Literal struct {
	LitKind LitKind
	Value   any
}

type Identifier struct {
	Name string
}

type Parameter struct {
	Name           string
	TypeAnnotation TypeNode   // nil when absent
	Default        Expression // nil when absent
}

// TypeAnnotation names a builtin type keyword or a user identifier.
type TypeAnnotation struct {
	Name string
}

// ArrayType is T[].
type ArrayType struct {
	ElementType TypeNode
}

func (*Program) Kind() NodeKind               { return KindProgram }
func (*VariableDeclaration) Kind() NodeKind   { return KindVariableDeclaration }
func (*FunctionDeclaration) Kind() NodeKind   { return KindFunctionDeclaration }
func (*ClassDeclaration) Kind() NodeKind      { return KindClassDeclaration }
func (*PrintStatement) Kind() NodeKind        { return KindPrintStatement }
func (*IfStatement) Kind() NodeKind           { return KindIfStatement }
func (*ForStatement) Kind() NodeKind          { return KindForStatement }
func (*WhileStatement) Kind() NodeKind        { return KindWhileStatement }
func (*ReturnStatement) Kind() NodeKind       { return KindReturnStatement }
func (*BreakStatement) Kind() NodeKind        { return KindBreakStatement }
func (*ContinueStatement) Kind() NodeKind     { return KindContinueStatement }
func (*ExpressionStatement) Kind() NodeKind   { return KindExpressionStatement }
func (*AssignmentExpression) Kind() NodeKind  { return KindAssignmentExpression }
func (*ConditionalExpression) Kind() NodeKind { return KindConditionalExpression }
func (*LogicalExpression) Kind() NodeKind     { return KindLogicalExpression }
func (*BinaryExpression) Kind() NodeKind      { return KindBinaryExpression }
func (*UnaryExpression) Kind() NodeKind       { return KindUnaryExpression }
func (*CallExpression) Kind() NodeKind        { return KindCallExpression }
func (*MemberExpression) Kind() NodeKind      { return KindMemberExpression }
func (*ArrayExpression) Kind() NodeKind       { return KindArrayExpression }
func (*ObjectExpression) Kind() NodeKind      { return KindObjectExpression }
func (*Property) Kind() NodeKind              { return KindProperty }
func (*TemplateLiteral) Kind() NodeKind       { return KindTemplateLiteral }
func (*Literal) Kind() NodeKind               { return KindLiteral }
func (*Identifier) Kind() NodeKind            { return KindIdentifier }
func (*Parameter) Kind() NodeKind             { return KindParameter }
func (*TypeAnnotation) Kind() NodeKind        { return KindTypeAnnotation }
func (*ArrayType) Kind() NodeKind             { return KindArrayType }

func (*VariableDeclaration) statementNode() {}
func (*FunctionDeclaration) statementNode() {}
func (*ClassDeclaration) statementNode()    {}
func (*PrintStatement) statementNode()      {}
func (*IfStatement) statementNode()         {}
func (*ForStatement) statementNode()        {}
func (*WhileStatement) statementNode()      {}
func (*ReturnStatement) statementNode()     {}
func (*BreakStatement) statementNode()      {}
func (*ContinueStatement) statementNode()   {}
func (*ExpressionStatement) statementNode() {}

func (*AssignmentExpression) expressionNode()  {}
func (*ConditionalExpression) expressionNode() {}
func (*LogicalExpression) expressionNode()     {}
func (*BinaryExpression) expressionNode()      {}
func (*UnaryExpression) expressionNode()       {}
func (*CallExpression) expressionNode()        {}
func (*MemberExpression) expressionNode()      {}
func (*ArrayExpression) expressionNode()       {}
func (*ObjectExpression) expressionNode()      {}
func (*TemplateLiteral) expressionNode()       {}
func (*Literal) expressionNode()               {}
func (*Identifier) expressionNode()            {}

func (*TypeAnnotation) typeNode() {}
func (*ArrayType) typeNode()      {}
