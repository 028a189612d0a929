/*
File   : ctree/eval/errors.go
Package: eval
*/
package eval

import (
	"fmt"

	"github.com/deglang/ctree/lexer"
)

// RuntimeError is any failure surfaced while executing a parsed program:
// undefined names, type mismatches, arity mismatches, non-callable values,
// non-Boolean conditions (spec.md §7). It carries the token nearest the
// failure so diagnostics can be positioned the same way parse errors are.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	loc := fmt.Sprintf(" at '%s'", e.Token.Lexeme)
	if e.Token.Type == lexer.EOF {
		loc = " at end"
	}
	return lexer.FormatError(e.Token.Position, loc, e.Message)
}

func runtimeErrorf(tok lexer.Token, format string, args ...interface{}) error {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
