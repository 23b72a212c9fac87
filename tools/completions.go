package tools

import (
	"strings"

	"github.com/mananbhimjiyani/kathiyawadscript-playground/lexer"
)

// Completion kinds.
const (
	KindKeyword = "keyword"
	KindType    = "type"
	KindModule  = "module"
)

type Completion struct {
	Label         string `json:"label"`
	Kind          string `json:"kind"`
	Detail        string `json:"detail"`
	Documentation string `json:"documentation"`
}

var completionKeywords = []string{
	"le", "pakka", "karyo", "class", "interface", "enum",
	"vakhat", "nahi", "fero", "jyare", "karo",
	"dekhad", "return", "break", "continue",
	"try", "catch", "finally", "throw",
	"import", "export", "from",
	"public", "private", "protected", "static",
	"async", "await", "new", "this", "super",
}

var keywordDocs = map[string]string{
	"le":       "Declare a variable that can be reassigned",
	"pakka":    "Declare a constant that cannot be reassigned",
	"karyo":    "Define a function",
	"class":    "Define a class",
	"vakhat":   "Conditional statement (if)",
	"nahi":     "Else clause",
	"fero":     "For loop",
	"jyare":    "While loop",
	"dekhad":   "Print to console",
	"return":   "Return a value from function",
	"break":    "Break out of loop",
	"continue": "Continue to next iteration",
}

var completionTypes = []string{"string", "number", "boolean", "array", "object", "function", "void"}

var typeDocs = map[string]string{
	"string":   "Text data type",
	"number":   "Numeric data type (integer or float)",
	"boolean":  "True or false value",
	"array":    "Ordered collection of items",
	"object":   "Key-value pairs",
	"function": "Executable code block",
	"void":     "No return value",
}

var completionModules = []string{"string", "array", "math", "object", "type", "console"}

// Completions lists keywords, builtin types and library modules whose label
// starts with prefix, in that order. An empty prefix lists everything.
func Completions(prefix string) []Completion {
	var out []Completion
	add := func(c Completion) {
		if strings.HasPrefix(c.Label, prefix) {
			out = append(out, c)
		}
	}

	for _, kw := range completionKeywords {
		doc, ok := keywordDocs[kw]
		if !ok {
			doc = "KathiyawadScript keyword"
		}
		add(Completion{Label: kw, Kind: KindKeyword, Detail: "KathiyawadScript keyword", Documentation: doc})
	}
	for _, typ := range completionTypes {
		if !lexer.BuiltinTypes[typ] {
			continue
		}
		add(Completion{Label: typ, Kind: KindType, Detail: "Built-in type", Documentation: typeDocs[typ]})
	}
	for _, mod := range completionModules {
		add(Completion{Label: mod, Kind: KindModule, Detail: "Standard library module", Documentation: "Built-in " + mod + " utilities"})
	}
	return out
}
