package tools

import (
	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
)

// HighlightToken is a token annotated with the CSS class the playground
// styles it with.
type HighlightToken struct {
	Type     lexer.Kind           `json:"type"`
	Value    string               `json:"value"`
	Position diagnostics.Position `json:"position"`
	CSSClass string               `json:"cssClass"`
}

var cssClasses = map[lexer.Kind]string{
	lexer.Keyword:    "ks-keyword",
	lexer.Identifier: "ks-identifier",
	lexer.String:     "ks-string",
	lexer.Number:     "ks-number",
	lexer.Operator:   "ks-operator",
	lexer.Delimiter:  "ks-delimiter",
	lexer.Template:   "ks-template",
}

// Highlight tokenizes source for display. Source that does not tokenize
// yields no tokens.
func Highlight(source string) []HighlightToken {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil
	}
	out := make([]HighlightToken, len(tokens))
	for i, tok := range tokens {
		class, ok := cssClasses[tok.Kind]
		if !ok {
			class = "ks-default"
		}
		out[i] = HighlightToken{Type: tok.Kind, Value: tok.Value, Position: tok.Pos, CSSClass: class}
	}
	return out
}
