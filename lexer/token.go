package lexer

import (
	"cmp"
	"slices"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/diagnostics"
)

// Kind is the class of a token.
type Kind string

const (
	Keyword    Kind = "keyword"
	Identifier Kind = "identifier"
	String     Kind = "string"
	Template   Kind = "template"
	Number     Kind = "number"
	Operator   Kind = "operator"
	Delimiter  Kind = "delimiter"
	Boolean    Kind = "boolean"

	// EOF never appears in Tokenize output. The parser uses it as the
	// sentinel returned past the end of the token slice.
	EOF Kind = "end of input"
)

// Token is one classified lexical unit.
type Token struct {
	Kind  Kind   `json:"type"`
	Value string `json:"value"`
	// Literal holds the decoded value of number (int64 or float64) and
	// boolean (bool) tokens; nil for everything else.
	Literal any                  `json:"literal,omitempty"`
	Pos     diagnostics.Position `json:"position"`
}

// Is reports whether t has the given kind and text.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// RangeOperator is matched before the operator table.
const RangeOperator = ".."

// keywords holds every reserved word; true and false are reported as
// Boolean tokens.
var keywords = map[string]bool{}

var keywordList = []string{
	// Declarations
	"le", "pakka", "apo",
	// Functions and classes
	"karyo", "kaam", "seva", "varg", "jaati", "banavo",
	// Control flow
	"vakhat", "nahi", "joye", "to", "pela", "pachhi",
	"fero", "jyare", "sudhi", "karo", "jaldi", "aagad",
	// Objects
	"navu", "aa", "baap", "chhokro", "gupat", "sarvajanik",
	// Modules
	"lavo", "moklo", "mathi",
	// Errors
	"koshish", "pakdo", "akhre", "fenk", "bhool",
	// Async
	"raah", "vaado",
	// Types
	"akshar", "sankhya", "sachu", "yaadi", "khata", "khaali",
	// Literals
	"hoy", "nathi", "anjaanu",
	// Logical words
	"ane", "ke", "nakko",
	// Output
	"dekhad",
	"in", "of", "prakar", "instanceof",

	// English compatibility set
	"class", "interface", "enum", "constructor",
	"new", "this", "super", "extends", "implements",
	"public", "private", "protected", "static",
	"import", "export", "from",
	"try", "catch", "finally", "throw",
	"async", "await", "Promise",
	"string", "number", "boolean", "array", "object", "function", "void",
	"true", "false", "null", "undefined",
	"return", "break", "continue", "typeof",
}

var booleans = map[string]bool{"true": true, "false": true}

// BuiltinTypes are the keywords accepted as type annotation names.
var BuiltinTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "array": true,
	"object": true, "function": true, "void": true,
}

// operators is sorted longest first once at init so scanning can take the
// first prefix match.
var operators = []string{
	"=", "+=", "-=", "*=", "/=", "%=",
	"+", "-", "*", "/", "%", "**",
	"==", "!=", "===", "!==", "<", ">", "<=", ">=",
	"&&", "||", "!",
	"?", "=>", "??", "?.", "++", "--",
}

const delimiters = "()[]{},;.:"

func init() {
	for _, kw := range keywordList {
		keywords[kw] = true
	}
	slices.SortStableFunc(operators, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return keywords[word]
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	return slices.Clone(keywordList)
}
