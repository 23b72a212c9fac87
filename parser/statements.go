package parser

import (
	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	if tok.Kind == lexer.Keyword {
		switch tok.Value {
		case "karyo":
			return p.parseFunctionDeclaration()
		case "class":
			return p.parseClassDeclaration()
		case "vakhat":
			return p.parseIfStatement()
		case "fero":
			return p.parseForStatement()
		case "jyare":
			return p.parseWhileStatement()
		}
	}

	stmt, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	p.accept(lexer.Delimiter, ";")
	return stmt, nil
}

// parseSimpleStatement parses the statements that may end with ";".
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	tok := p.peek()
	if tok.Kind == lexer.Keyword {
		switch tok.Value {
		case "le":
			return p.parseVariableDeclaration(ast.Mutable)
		case "pakka":
			return p.parseVariableDeclaration(ast.Constant)
		case "dekhad":
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.PrintStatement{Expression: expr}, nil
		case "return":
			return p.parseReturnStatement()
		case "break":
			p.advance()
			return &ast.BreakStatement{}, nil
		case "continue":
			p.advance()
			return &ast.ContinueStatement{}, nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

func (p *Parser) parseVariableDeclaration(kind ast.DeclKind) (*ast.VariableDeclaration, error) {
	p.advance() // le or pakka
	name, err := p.expectIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{DeclKind: kind, Name: name}

	if p.accept(lexer.Delimiter, ":") {
		if decl.TypeAnnotation, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if kind == ast.Constant {
		if _, err := p.expect(lexer.Operator, "="); err != nil {
			return nil, err
		}
	} else if !p.accept(lexer.Operator, "=") {
		return decl, nil
	}
	if decl.Init, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	p.advance() // return
	next := p.peek()
	if next.Kind == lexer.EOF || next.Is(lexer.Delimiter, ";") || next.Is(lexer.Delimiter, "}") {
		return &ast.ReturnStatement{}, nil
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Argument: arg}, nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	p.advance() // karyo
	name, err := p.expectIdentifier("function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Delimiter, "("); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDeclaration{Name: name, Params: []*ast.Parameter{}}
	for !p.check(lexer.Delimiter, ")") {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		if !p.accept(lexer.Delimiter, ",") {
			break
		}
	}
	if _, err := p.expect(lexer.Delimiter, ")"); err != nil {
		return nil, err
	}

	if p.accept(lexer.Delimiter, ":") {
		if fn.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	name, err := p.expectIdentifier("parameter name")
	if err != nil {
		return nil, err
	}
	param := &ast.Parameter{Name: name}
	if p.accept(lexer.Delimiter, ":") {
		if param.TypeAnnotation, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.accept(lexer.Operator, "=") {
		if param.Default, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return param, nil
}

func (p *Parser) parseClassDeclaration() (*ast.ClassDeclaration, error) {
	p.advance() // class
	name, err := p.expectIdentifier("class name")
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDeclaration{Name: name}
	if p.accept(lexer.Keyword, "extends") {
		if class.SuperClass, err = p.expectIdentifier("superclass name"); err != nil {
			return nil, err
		}
	}
	if class.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	p.advance() // vakhat
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Test: test}
	if stmt.Consequent, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if !p.accept(lexer.Keyword, "nahi") {
		return stmt, nil
	}
	if p.check(lexer.Keyword, "vakhat") {
		stmt.ElseIf, err = p.parseIfStatement()
	} else {
		stmt.Alternate, err = p.parseBlock()
	}
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	p.advance() // fero
	name, err := p.expectIdentifier("loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Keyword, "in"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.accept(lexer.Operator, lexer.RangeOperator) {
		end, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		iterable = &ast.BinaryExpression{Operator: ast.RangeOperator, Left: iterable, Right: end}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Variable: name, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	p.advance() // jyare
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body}, nil
}

// parseBlock parses "{" statement* "}". The result is never nil so an empty
// block stays distinguishable from a missing one.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.Delimiter, "{"); err != nil {
		return nil, err
	}
	body := []ast.Statement{}
	for !p.check(lexer.Delimiter, "}") {
		if p.peek().Kind == lexer.EOF {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.Delimiter, "}"); err != nil {
		return nil, err
	}
	return body, nil
}

// parseType parses a type annotation. Types are kept for tooling and
// never checked.
func (p *Parser) parseType() (ast.TypeNode, error) {
	tok := p.peek()
	isBuiltin := tok.Kind == lexer.Keyword && lexer.BuiltinTypes[tok.Value]
	if !isBuiltin && tok.Kind != lexer.Identifier {
		return nil, p.errorf(tok, "expected type, got %s", describe(tok))
	}
	p.advance()

	var typ ast.TypeNode = &ast.TypeAnnotation{Name: tok.Value}
	for p.check(lexer.Delimiter, "[") && p.peekAt(1).Is(lexer.Delimiter, "]") {
		p.advance()
		p.advance()
		typ = &ast.ArrayType{ElementType: typ}
	}
	return typ, nil
}
