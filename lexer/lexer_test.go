/*
File   : ctree/lexer/lexer_test.go
Package: lexer
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestTokenize_Operators(t *testing.T) {
	tokens := New(`+ - * ** / // % < <= << > >= >> & | ^ ~ = == === != ( ) { } , .`).Tokenize()
	assert.Equal(t, []TokenType{
		Plus, Minus, Ast, Ast2, Slash, Slash2, Percent,
		LAngle, LAngleEquals, LAngle2, RAngle, RAngleEquals, RAngle2,
		Amp, Bar, Hat, Tilde,
		Equals, Equals2, Equals3, BangEquals,
		LParen, RParen, LBrace, RBrace, Comma, Dot,
		EOF,
	}, kinds(tokens))
}

func TestTokenize_Keywords(t *testing.T) {
	tokens := New("and or not while for do if else null true false fun return class this super var print num deg").Tokenize()
	want := []TokenType{And, Or, Not, While, For, Do, If, Else, Null, True, False, Fun, Return, Class, This, Super, Var, Print, Num, Deg, EOF}
	assert.Equal(t, want, kinds(tokens))
}

func TestTokenize_NumberAndDegree(t *testing.T) {
	tokens := New("90deg 42 3.5 180deg2").Tokenize()
	require.Len(t, tokens, 6)

	assert.Equal(t, Degree, tokens[0].Type)
	assert.Equal(t, float32(90), tokens[0].Literal)
	assert.Equal(t, "90deg", tokens[0].Lexeme)

	assert.Equal(t, Number, tokens[1].Type)
	assert.Equal(t, float32(42), tokens[1].Literal)

	assert.Equal(t, Number, tokens[2].Type)
	assert.Equal(t, float32(3.5), tokens[2].Literal)

	// "deg2" is not a valid deg suffix (identifier char follows) so the
	// whole thing scans as a Number followed by an identifier.
	assert.Equal(t, Number, tokens[3].Type)
	assert.Equal(t, Identifier, tokens[4].Type)
	assert.Equal(t, "deg2", tokens[4].Lexeme)
}

func TestTokenize_String(t *testing.T) {
	tokens := New(`"hello\nworld" "plain"`).Tokenize()
	require.Len(t, tokens, 3)
	assert.Equal(t, String, tokens[0].Type)
	assert.Equal(t, "hello\nworld", tokens[0].Literal)
	assert.Equal(t, String, tokens[1].Type)
	assert.Equal(t, "plain", tokens[1].Literal)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	lex := New(`"unterminated`)
	tokens := lex.Tokenize()
	require.Len(t, tokens, 1)
	assert.Equal(t, EOF, tokens[0].Type)
	require.Len(t, lex.Errors, 1)
	assert.Equal(t, "Unterminated string.", lex.Errors[0].Message)
}

func TestTokenize_CommentSkipped(t *testing.T) {
	tokens := New("1 + 2 # this is ignored\n+ 3").Tokenize()
	assert.Equal(t, []TokenType{Number, Plus, Number, Plus, Number, EOF}, kinds(tokens))
}

func TestTokenize_UnknownCharacterReportsErrorAndContinues(t *testing.T) {
	lex := New("1 @ 2")
	tokens := lex.Tokenize()
	assert.Equal(t, []TokenType{Number, Number, EOF}, kinds(tokens))
	require.Len(t, lex.Errors, 1)
	assert.Contains(t, lex.Errors[0].Message, "@")
}

func TestTokenize_PositionTracksLinesAndColumns(t *testing.T) {
	tokens := New("var a\nvar b").Tokenize()
	require.True(t, len(tokens) >= 4)
	assert.Equal(t, 1, tokens[0].Position.Line)
	assert.Equal(t, 2, tokens[2].Position.Line)
}

func TestTokenize_EOFPositionPastLastByte(t *testing.T) {
	tokens := New("1").Tokenize()
	require.Len(t, tokens, 2)
	assert.Equal(t, EOF, tokens[1].Type)
	assert.Equal(t, Position{Line: 1, Column: 2}, tokens[1].Position)
}
