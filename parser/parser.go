// Package parser builds an ast.Program from lexer tokens.
package parser

import (
	"fmt"
	"strconv"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/ast"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
)

// Parser consumes a token slice and builds the AST.
//
// Grammar:
//
//	program     = statement* EOF
//	statement   = varDecl | funcDecl | classDecl | print | if | for | while
//	            | "return" expression? | "break" | "continue" | expression
//	varDecl     = ("le" | "pakka") IDENT (":" type)? ("=" expression)?
//	funcDecl    = "karyo" IDENT "(" params ")" (":" type)? block
//	classDecl   = "class" IDENT ("extends" IDENT)? block
//	print       = "dekhad" expression
//	if          = "vakhat" expression block ("nahi" (if | block))?
//	for         = "fero" IDENT "in" expression (".." expression)? block
//	while       = "jyare" expression block
//	type        = (builtin | IDENT) ("[" "]")*
//
// Simple statements may be followed by one ";". Expressions, lowest
// precedence first:
//
//	assignment  = conditional (("=" | "+=" | "-=" | "*=" | "/=" | "%=") assignment)?
//	conditional = or ("?" assignment ":" assignment)?
//	or          = and ("||" and)*
//	and         = equality ("&&" equality)*
//	equality    = relational (("==" | "!=" | "===" | "!==") relational)*
//	relational  = additive (("<" | ">" | "<=" | ">=") additive)*
//	additive    = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = unary (("*" | "/" | "%") unary)*
//	unary       = ("!" | "-" | "+") unary | postfix
//	postfix     = primary ("." IDENT | "[" expression "]" | "(" args ")")*
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New returns a parser positioned at the first token.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. The first unexpected token aborts parsing
// with a *diagnostics.SyntaxError.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseExpression parses tokens that must form exactly one expression.
func ParseExpression(tokens []lexer.Token) (ast.Expression, error) {
	p := New(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != lexer.EOF {
		return nil, p.errorf(tok, "expected end of input, got %s", describe(tok))
	}
	return expr, nil
}

// ParseProgram parses statements until the tokens run out.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{Body: []ast.Statement{}}
	for p.peek().Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
// Past the end it returns an EOF token placed at the last real token.
func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset < len(p.tokens) {
		return p.tokens[p.pos+offset]
	}
	eof := lexer.Token{Kind: lexer.EOF, Pos: diagnostics.Position{Line: 1, Column: 1}}
	if len(p.tokens) > 0 {
		eof.Pos = p.tokens[len(p.tokens)-1].Pos
	}
	return eof
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.Kind, value string) bool {
	return p.peek().Is(kind, value)
}

// accept consumes the current token if it matches.
func (p *Parser) accept(kind lexer.Kind, value string) bool {
	if p.check(kind, value) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise returns an
// error.
func (p *Parser) expect(kind lexer.Kind, value string) (lexer.Token, error) {
	tok := p.peek()
	if !tok.Is(kind, value) {
		return tok, p.errorf(tok, "expected '%s', got %s", value, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) expectIdentifier(what string) (string, error) {
	tok := p.peek()
	if tok.Kind != lexer.Identifier {
		return "", p.errorf(tok, "expected %s, got %s", what, describe(tok))
	}
	p.advance()
	return tok.Value, nil
}

func (p *Parser) errorf(at lexer.Token, format string, args ...any) error {
	return &diagnostics.SyntaxError{Position: at.Pos, Msg: fmt.Sprintf(format, args...)}
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.String:
		return "string " + strconv.Quote(tok.Value)
	case lexer.Template:
		return "template literal"
	default:
		return fmt.Sprintf("%s '%s'", tok.Kind, tok.Value)
	}
}
