package sexy

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeNumber
	NodeEllipsis
	NodeList
	NodeMap
	NodeArray
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	case NodeMap:
		return "map"
	case NodeArray:
		return "array"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", int(t))
	}
}

// Node represents any Sexy data structure
type Node struct {
	Type NodeType

	// Atoms
	Text string // NodeSymbol, NodeString, NodeNumber

	// Collections
	Items []*Node  // NodeList, NodeArray, NodeMap
	Keys  []string // NodeMap - parallel to Items
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeNumber:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", escaped)
	case NodeEllipsis:
		return "..."
	case NodeList:
		return fmt.Sprintf("(%s)", joinItems(n.Items))
	case NodeArray:
		return fmt.Sprintf("[%s]", joinItems(n.Items))
	case NodeMap:
		var parts []string
		for i, key := range n.Keys {
			if i < len(n.Items) {
				parts = append(parts, fmt.Sprintf("%s: %s", key, n.Items[i].String()))
			}
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	default:
		return n.Type.String()
	}
}

func joinItems(items []*Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewNumber(text string) *Node {
	return &Node{Type: NodeNumber, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items []*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewMap(keys []string, items []*Node) *Node {
	return &Node{Type: NodeMap, Keys: keys, Items: items}
}

func NewArray(items []*Node) *Node {
	return &Node{Type: NodeArray, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type == NodeSymbol || n.Type == NodeString || n.Type == NodeNumber || n.Type == NodeEllipsis
}

// Get returns the value stored under key in a map node.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Type != NodeMap {
		return nil, false
	}
	for i, k := range n.Keys {
		if k == key && i < len(n.Items) {
			return n.Items[i], true
		}
	}
	return nil, false
}

// Wildcard is the symbol that matches any single node in a pattern.
const Wildcard = "_"

// Match checks actual against pattern and describes the first difference.
//
// In a pattern, the symbol _ matches any node and ... inside a list or
// array matches zero or more items. A pattern map only constrains the keys
// it names.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeSymbol && pattern.Text == Wildcard {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}

	switch pattern.Type {
	case NodeSymbol, NodeString, NodeNumber:
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
	case NodeList, NodeArray:
		if !matchItems(pattern.Items, actual.Items) {
			return firstItemMismatch(pattern, actual, path)
		}
	case NodeMap:
		for i, key := range pattern.Keys {
			got, ok := actual.Get(key)
			if !ok {
				return fmt.Errorf("at %s: missing key %s", path, key)
			}
			if err := match(pattern.Items[i], got, path+"."+key); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchItems(patterns, actuals []*Node) bool {
	if len(patterns) == 0 {
		return len(actuals) == 0
	}
	if patterns[0].Type == NodeEllipsis {
		for i := 0; i <= len(actuals); i++ {
			if matchItems(patterns[1:], actuals[i:]) {
				return true
			}
		}
		return false
	}
	if len(actuals) == 0 {
		return false
	}
	return match(patterns[0], actuals[0], "") == nil && matchItems(patterns[1:], actuals[1:])
}

// firstItemMismatch explains a failed list match. Without ellipses the
// first differing item is reported; otherwise the whole collections are.
func firstItemMismatch(pattern, actual *Node, path string) error {
	for _, item := range pattern.Items {
		if item.Type == NodeEllipsis {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
	}
	for i, item := range pattern.Items {
		if i >= len(actual.Items) {
			return fmt.Errorf("at %s: expected %d items, got %d", path, len(pattern.Items), len(actual.Items))
		}
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return fmt.Errorf("at %s: expected %d items, got %d", path, len(pattern.Items), len(actual.Items))
}

type parser struct {
	lexer        *lexer
	currentToken token
	peekToken    token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()
	p.nextToken()

	result, err := p.ParseDatum()
	if len(p.lexer.errors) > 0 {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, fmt.Errorf("%s", p.lexer.errors[0])
	}
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}

	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.peekToken
	p.peekToken = p.lexer.nextToken()
}

func (p *parser) ParseDatum() (*Node, error) {
	switch p.currentToken.Type {
	case tokenSymbol:
		return p.parseAtom(NewSymbol(p.currentToken.Value))
	case tokenString:
		return p.parseAtom(NewString(p.currentToken.Value))
	case tokenNumber:
		return p.parseAtom(NewNumber(p.currentToken.Value))
	case tokenEllipsis:
		return p.parseAtom(NewEllipsis())
	case tokenLParen:
		items, err := p.parseItems(tokenRParen)
		if err != nil {
			return nil, err
		}
		return NewList(items), nil
	case tokenLBracket:
		items, err := p.parseItems(tokenRBracket)
		if err != nil {
			return nil, err
		}
		return NewArray(items), nil
	case tokenLBrace:
		return p.parseMap()
	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken.Type)
	}
}

func (p *parser) parseAtom(n *Node) (*Node, error) {
	p.nextToken()
	return n, nil
}

func (p *parser) parseItems(closing tokenType) ([]*Node, error) {
	var items []*Node
	p.nextToken() // consume opening bracket

	for p.currentToken.Type != closing && p.currentToken.Type != tokenEOF {
		item, err := p.ParseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != closing {
		return nil, fmt.Errorf("expected %s but got %s", closing, p.currentToken.Type)
	}
	p.nextToken()
	return items, nil
}

func (p *parser) parseMap() (*Node, error) {
	var keys []string
	var items []*Node
	p.nextToken() // consume '{'

	for p.currentToken.Type != tokenRBrace && p.currentToken.Type != tokenEOF {
		// Parse key (must be symbol)
		if p.currentToken.Type != tokenSymbol {
			return nil, fmt.Errorf("expected symbol for map key but got %s", p.currentToken.Type)
		}

		key := p.currentToken.Value
		keys = append(keys, key)
		p.nextToken()

		// Expect colon
		if p.currentToken.Type != tokenColon {
			return nil, fmt.Errorf("expected ':' after map key but got %s", p.currentToken.Type)
		}
		p.nextToken()

		// Parse value
		value, err := p.ParseDatum()
		if err != nil {
			return nil, err
		}

		items = append(items, value)

		// Check for comma or end
		if p.currentToken.Type == tokenComma {
			p.nextToken()
		} else if p.currentToken.Type != tokenRBrace {
			return nil, fmt.Errorf("expected ',' or '}' in map but got %s", p.currentToken.Type)
		}
	}

	if p.currentToken.Type != tokenRBrace {
		return nil, fmt.Errorf("expected '}' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume '}'

	return NewMap(keys, items), nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenNumber
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

// lexer decodes its input as UTF-8. offset is the byte offset of current
// and next is the offset just past it.
type lexer struct {
	input   string
	offset  int
	next    int
	current rune
	errors  []string
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	l.offset = l.next
	if l.next >= len(l.input) {
		l.current = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.current = r
	l.next += width
}

func (l *lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.current) {
		l.readChar()
	}
}

func (l *lexer) skipComment() {
	for l.current != '\n' && l.current != '\r' && l.current != 0 {
		l.readChar()
	}
}

func (l *lexer) readSymbol() string {
	start := l.offset
	for isSymbolChar(l.current) {
		l.readChar()
	}
	return l.input[start:l.offset]
}

func (l *lexer) readString() (string, error) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"':
				result.WriteByte('"')
			case '\\':
				result.WriteByte('\\')
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			result.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return result.String(), nil
}

// readNumber reads an optionally signed decimal with an optional fraction
// and exponent.
func (l *lexer) readNumber() string {
	start := l.offset
	if l.current == '+' || l.current == '-' {
		l.readChar()
	}
	l.readDigits()
	if l.current == '.' && isDigit(l.peekChar()) {
		l.readChar()
		l.readDigits()
	}
	if l.current == 'e' || l.current == 'E' {
		l.readChar()
		if l.current == '+' || l.current == '-' {
			l.readChar()
		}
		l.readDigits()
	}
	return l.input[start:l.offset]
}

func (l *lexer) readDigits() {
	for isDigit(l.current) {
		l.readChar()
	}
}

func (l *lexer) nextToken() token {
	for {
		l.skipWhitespace()

		pos := l.offset

		switch l.current {
		case 0:
			return token{Type: tokenEOF, Position: pos}
		case ';':
			l.skipComment()
			continue
		case '(':
			l.readChar()
			return token{Type: tokenLParen, Value: "(", Position: pos}
		case ')':
			l.readChar()
			return token{Type: tokenRParen, Value: ")", Position: pos}
		case '{':
			l.readChar()
			return token{Type: tokenLBrace, Value: "{", Position: pos}
		case '}':
			l.readChar()
			return token{Type: tokenRBrace, Value: "}", Position: pos}
		case '[':
			l.readChar()
			return token{Type: tokenLBracket, Value: "[", Position: pos}
		case ']':
			l.readChar()
			return token{Type: tokenRBracket, Value: "]", Position: pos}
		case ':':
			l.readChar()
			return token{Type: tokenColon, Value: ":", Position: pos}
		case ',':
			l.readChar()
			return token{Type: tokenComma, Value: ",", Position: pos}
		case '"':
			str, err := l.readString()
			if err != nil {
				l.errors = append(l.errors, err.Error())
				return token{Type: tokenEOF, Position: pos}
			}
			return token{Type: tokenString, Value: str, Position: pos}
		case '.':
			if l.peekChar() == '.' {
				l.readChar()
				if l.peekChar() == '.' {
					l.readChar()
					l.readChar()
					return token{Type: tokenEllipsis, Value: "...", Position: pos}
				}
			}
			l.errors = append(l.errors, "unexpected character '.'")
			return token{Type: tokenEOF, Position: pos}
		case '+', '-':
			if isDigit(l.peekChar()) {
				return token{Type: tokenNumber, Value: l.readNumber(), Position: pos}
			}
			// A lone sign is an operator symbol.
			sign := string(l.current)
			l.readChar()
			return token{Type: tokenSymbol, Value: sign, Position: pos}
		default:
			if isSymbolStart(l.current) {
				return token{Type: tokenSymbol, Value: l.readSymbol(), Position: pos}
			} else if isDigit(l.current) {
				return token{Type: tokenNumber, Value: l.readNumber(), Position: pos}
			}
			l.errors = append(l.errors, fmt.Sprintf("unexpected character '%c'", l.current))
			return token{Type: tokenEOF, Position: pos}
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSymbolStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
