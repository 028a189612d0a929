/*
File   : ctree/lexer/diagnostics.go
Package: lexer
*/
package lexer

import "fmt"

// FormatError renders any ctree diagnostic — scan, parse, or runtime — in
// the external format from spec.md §6:
//
//	[ln L, col C] Error<loc>: <message>
//
// loc is " at end" at EOF, " at '<lexeme>'" otherwise, and empty for pure
// scanner errors (pass "" for loc in that case).
func FormatError(pos Position, loc string, message string) string {
	return fmt.Sprintf("[ln %d, col %d] Error%s: %s", pos.Line, pos.Column, loc, message)
}

// formatted renders a ScanError using FormatError with an empty location
// suffix, per spec.md §7; ScanError.Error returns it.
func (e *ScanError) formatted() string {
	return FormatError(e.Position, "", e.Message)
}
