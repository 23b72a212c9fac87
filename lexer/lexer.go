// Package lexer turns KathiyawadScript source into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
)

// Tokenize scans the whole of source. It stops at the first malformed token
// and returns a *diagnostics.LexicalError.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{input: source, line: 1}
	var tokens []Token
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if l.pos >= len(l.input) {
			return tokens, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

type lexer struct {
	input     string
	pos       int // current reading position in input
	line      int
	lineStart int // offset of the first byte of the current line
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) position() diagnostics.Position {
	return diagnostics.Position{Line: l.line, Column: l.pos - l.lineStart + 1}
}

// advance consumes one byte, keeping line bookkeeping current.
func (l *lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.lineStart = l.pos + 1
	}
	l.pos++
}

func (l *lexer) errorf(at diagnostics.Position, format string, args ...any) error {
	return &diagnostics.LexicalError{Position: at, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.advance()
		case c == '#' && l.peekAt(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case c == '#':
			l.skipLineComment()
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) skipBlockComment() error {
	start := l.position()
	l.pos += 2 // skip #*
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peekAt(1) == '#' {
			l.pos += 2
			return nil
		}
		l.advance()
	}
	return l.errorf(start, "unterminated block comment")
}

func (l *lexer) next() (Token, error) {
	start := l.position()
	c := l.input[l.pos]

	switch {
	case c == '"' || c == '\'':
		value, err := l.readString(c)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: String, Value: value, Pos: start}, nil

	case c == '`':
		value, err := l.readTemplate()
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: Template, Value: value, Pos: start}, nil

	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		text, lit := l.readNumber()
		return Token{Kind: Number, Value: text, Literal: lit, Pos: start}, nil

	case isLetter(c):
		word := l.readIdentifier()
		switch {
		case booleans[word]:
			return Token{Kind: Boolean, Value: word, Literal: word == "true", Pos: start}, nil
		case keywords[word]:
			return Token{Kind: Keyword, Value: word, Pos: start}, nil
		default:
			return Token{Kind: Identifier, Value: word, Pos: start}, nil
		}
	}

	if strings.HasPrefix(l.input[l.pos:], RangeOperator) {
		l.pos += len(RangeOperator)
		return Token{Kind: Operator, Value: RangeOperator, Pos: start}, nil
	}
	for _, op := range operators {
		// a?.5:1 is a conditional, not optional chaining.
		if op == "?." && isDigit(l.peekAt(2)) {
			continue
		}
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)
			return Token{Kind: Operator, Value: op, Pos: start}, nil
		}
	}
	if strings.IndexByte(delimiters, c) >= 0 {
		l.pos++
		return Token{Kind: Delimiter, Value: string(c), Pos: start}, nil
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return Token{}, l.errorf(start, "unexpected character %q", r)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '$'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// readNumber reads digits with at most one decimal point. A '.' only counts
// as the decimal point when a digit follows it, which keeps "1..5" apart.
func (l *lexer) readNumber() (string, any) {
	start := l.pos
	seenDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isDigit(c) {
			l.pos++
			continue
		}
		if c == '.' && !seenDot && isDigit(l.peekAt(1)) {
			seenDot = true
			l.pos++
			continue
		}
		break
	}
	text := l.input[start:l.pos]
	if !seenDot {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return text, n
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return text, f
}

func (l *lexer) readString(quote byte) (string, error) {
	start := l.position()
	l.pos++ // skip opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == quote:
			l.pos++
			return sb.String(), nil
		case c == '\\' && l.pos+1 < len(l.input):
			l.pos++
			if l.input[l.pos] < utf8.RuneSelf {
				sb.WriteByte(unescape(l.input[l.pos]))
				l.advance()
				continue
			}
			if err := l.copyRune(&sb, "string literal"); err != nil {
				return "", err
			}
		default:
			if err := l.copyRune(&sb, "string literal"); err != nil {
				return "", err
			}
		}
	}
	return "", l.errorf(start, "unterminated string")
}

// copyRune moves one character from the input to sb. Bytes that are not
// valid UTF-8 are an error rather than a silent U+FFFD.
func (l *lexer) copyRune(sb *strings.Builder, what string) error {
	if l.input[l.pos] < utf8.RuneSelf {
		sb.WriteByte(l.input[l.pos])
		l.advance()
		return nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && size == 1 {
		return l.errorf(l.position(), "invalid UTF-8 in %s", what)
	}
	sb.WriteString(l.input[l.pos : l.pos+size])
	l.pos += size
	return nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	// \\, \", \' and unknown escapes stand for the character itself.
	return c
}

func (l *lexer) readTemplate() (string, error) {
	start := l.position()
	l.pos++ // skip opening backtick
	var sb strings.Builder
	for l.pos < len(l.input) {
		if l.input[l.pos] == '`' {
			l.pos++
			return sb.String(), nil
		}
		if err := l.copyRune(&sb, "template literal"); err != nil {
			return "", err
		}
	}
	return "", l.errorf(start, "unterminated template literal")
}
