package diagnostics

import (
	"errors"
	"strconv"

	"github.com/dlclark/regexp2"
)

// Severity levels used by editor tooling.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic is an editor-facing report of one problem in a source file.
type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

var (
	lineRe   = regexp2.MustCompile(`\bline (\d+)`, regexp2.IgnoreCase)
	columnRe = regexp2.MustCompile(`\bcolumn (\d+)`, regexp2.IgnoreCase)
)

// FromError builds an error diagnostic. Typed compile errors contribute
// their exact position; anything else goes through FromMessage.
func FromError(err error) Diagnostic {
	var ce Error
	if errors.As(err, &ce) {
		pos := ce.Pos()
		col := pos.Column
		if col < 1 {
			col = 1
		}
		return Diagnostic{Severity: SeverityError, Message: err.Error(), Line: pos.Line, Column: col}
	}
	return FromMessage(err.Error())
}

// FromMessage recovers a position from error text of the form
// "... line N, column M ...". Missing parts default to 1.
func FromMessage(msg string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Message:  msg,
		Line:     firstNumber(lineRe, msg),
		Column:   firstNumber(columnRe, msg),
	}
}

func firstNumber(re *regexp2.Regexp, s string) int {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return 1
	}
	n, err := strconv.Atoi(m.GroupByNumber(1).String())
	if err != nil || n < 1 {
		return 1
	}
	return n
}
