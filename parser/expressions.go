package parser

import (
	"slices"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
)

var (
	assignmentOps     = []string{"=", "+=", "-=", "*=", "/=", "%="}
	equalityOps       = []string{"==", "!=", "===", "!=="}
	relationalOps     = []string{"<", ">", "<=", ">="}
	additiveOps       = []string{"+", "-"}
	multiplicativeOps = []string{"*", "/", "%"}
	unaryOps          = []string{"!", "-", "+"}
)

// matchOperator returns the current operator if it is one of ops.
func (p *Parser) matchOperator(ops []string) (string, bool) {
	tok := p.peek()
	if tok.Kind != lexer.Operator || !slices.Contains(ops, tok.Value) {
		return "", false
	}
	return tok.Value, true
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment is right-associative.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	startTok := p.peek()
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	op, ok := p.matchOperator(assignmentOps)
	if !ok {
		return left, nil
	}
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		return nil, p.errorf(startTok, "invalid assignment target")
	}
	p.advance()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Operator: op, Left: left, Right: right}, nil
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	test, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.accept(lexer.Operator, "?") {
		return test, nil
	}
	consequent, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Delimiter, ":"); err != nil {
		return nil, err
	}
	alternate, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.Operator, "||") {
		op := p.advance().Value
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Operator: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.Operator, "&&") {
		op := p.advance().Value
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Operator: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(equalityOps, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseBinary(relationalOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinary(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinary(multiplicativeOps, p.parseUnary)
}

// parseBinary parses one left-associative level: next (op next)*.
func (p *Parser) parseBinary(ops []string, next func() (ast.Expression, error)) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator(ops)
		if !ok {
			return expr, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Operator: op, Left: expr, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := p.matchOperator(unaryOps); ok {
		p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: op, Argument: arg}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(lexer.Delimiter, "."):
			tok := p.peek()
			// Property names may be reserved words, as in obj.new.
			if tok.Kind != lexer.Identifier && tok.Kind != lexer.Keyword && tok.Kind != lexer.Boolean {
				return nil, p.errorf(tok, "expected property name, got %s", describe(tok))
			}
			p.advance()
			expr = &ast.MemberExpression{Object: expr, Property: &ast.Identifier{Name: tok.Value}}

		case p.accept(lexer.Delimiter, "["):
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Delimiter, "]"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: index, Computed: true}

		case p.accept(lexer.Delimiter, "("):
			args, err := p.parseList(")")
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Arguments: args}

		default:
			return expr, nil
		}
	}
}

// parseList parses comma-separated expressions up to and including the
// closing delimiter. A trailing comma is allowed.
func (p *Parser) parseList(closing string) ([]ast.Expression, error) {
	items := []ast.Expression{}
	for !p.check(lexer.Delimiter, closing) {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.accept(lexer.Delimiter, ",") {
			break
		}
	}
	if _, err := p.expect(lexer.Delimiter, closing); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return &ast.Literal{LitKind: ast.LitNumber, Value: tok.Literal}, nil
	case lexer.String:
		p.advance()
		return &ast.Literal{LitKind: ast.LitString, Value: tok.Value}, nil
	case lexer.Template:
		p.advance()
		return &ast.TemplateLiteral{Raw: tok.Value}, nil
	case lexer.Boolean:
		p.advance()
		return &ast.Literal{LitKind: ast.LitBoolean, Value: tok.Literal}, nil
	case lexer.Identifier:
		p.advance()
		return &ast.Identifier{Name: tok.Value}, nil
	case lexer.Keyword:
		switch tok.Value {
		case "null":
			p.advance()
			return &ast.Literal{LitKind: ast.LitNull}, nil
		case "undefined":
			p.advance()
			return &ast.Literal{LitKind: ast.LitUndefined}, nil
		}
	case lexer.Delimiter:
		switch tok.Value {
		case "(":
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Delimiter, ")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			p.advance()
			elements, err := p.parseList("]")
			if err != nil {
				return nil, err
			}
			return &ast.ArrayExpression{Elements: elements}, nil
		case "{":
			return p.parseObject()
		}
	}
	return nil, p.errorf(tok, "expected expression, got %s", describe(tok))
}

func (p *Parser) parseObject() (*ast.ObjectExpression, error) {
	p.advance() // {
	obj := &ast.ObjectExpression{Properties: []*ast.Property{}}
	for !p.check(lexer.Delimiter, "}") {
		key := p.peek()
		if key.Kind != lexer.Identifier && key.Kind != lexer.String {
			return nil, p.errorf(key, "expected property key, got %s", describe(key))
		}
		p.advance()
		if _, err := p.expect(lexer.Delimiter, ":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, &ast.Property{Key: &ast.Identifier{Name: key.Value}, Value: value})
		if !p.accept(lexer.Delimiter, ",") {
			break
		}
	}
	if _, err := p.expect(lexer.Delimiter, "}"); err != nil {
		return nil, err
	}
	return obj, nil
}
