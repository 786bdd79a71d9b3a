package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabculator/crabculator/internal/diagnostics"
	"github.com/crabculator/crabculator/internal/token"
)

func Test_Tokenize_kinds(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []token.Kind
	}{
		{name: "empty line", input: "", expect: nil},
		{name: "blank line", input: "   \t ", expect: nil},
		{name: "decimal integer", input: "42", expect: []token.Kind{token.Number}},
		{name: "decimal fraction", input: "3.14", expect: []token.Kind{token.Number}},
		{name: "hex literal", input: "0xff", expect: []token.Kind{token.Number}},
		{name: "binary literal", input: "0b1010", expect: []token.Kind{token.Number}},
		{name: "octal literal", input: "0o17", expect: []token.Kind{token.Number}},
		{name: "identifier", input: "pi", expect: []token.Kind{token.Identifier}},
		{name: "underscore identifier", input: "_x1", expect: []token.Kind{token.Identifier}},
		{name: "assignment", input: "x = 1", expect: []token.Kind{
			token.Identifier, token.Equals, token.Number,
		}},
		{name: "call", input: "sqrt(9)", expect: []token.Kind{
			token.Identifier, token.LParen, token.Number, token.RParen,
		}},
		{name: "all punctuation", input: "+-*/%^!=(),", expect: []token.Kind{
			token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
			token.Caret, token.Bang, token.Equals, token.LParen, token.RParen, token.Comma,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Tokenize(tc.input)
			require.Nil(t, err)

			var kinds []token.Kind
			for _, tok := range toks {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, tc.expect, kinds)
		})
	}
}

func Test_Tokenize_numberValues(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect float64
	}{
		{name: "decimal", input: "123", expect: 123},
		{name: "fraction", input: "0.5", expect: 0.5},
		{name: "hex", input: "0xFF", expect: 255},
		{name: "binary", input: "0b1010", expect: 10},
		{name: "octal", input: "0o17", expect: 15},
		{name: "leading zero decimal", input: "007", expect: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Tokenize(tc.input)
			require.Nil(t, err)
			require.Len(t, toks, 1)
			assert.Equal(t, tc.expect, toks[0].Value)
		})
	}
}

func Test_Tokenize_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  diagnostics.Kind
	}{
		{name: "bad hex digit", input: "0xg1", kind: diagnostics.InvalidBaseLiteral},
		{name: "empty hex literal", input: "0x", kind: diagnostics.InvalidBaseLiteral},
		{name: "bad binary digit", input: "0b102", kind: diagnostics.InvalidBaseLiteral},
		{name: "unexpected character", input: "5 @ 3", kind: diagnostics.UnexpectedCharacter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.input)
			require.NotNil(t, err)
			assert.Equal(t, tc.kind, err.Kind)
		})
	}
}

func Test_Tokenize_spansCoverSourceText(t *testing.T) {
	line := "12 + sqrt(9)"
	toks, err := Tokenize(line)
	require.Nil(t, err)

	for _, tok := range toks {
		assert.GreaterOrEqual(t, tok.Span.Start, 0)
		assert.LessOrEqual(t, tok.Span.End, len(line))
		assert.LessOrEqual(t, tok.Span.Start, tok.Span.End)
	}
	assert.Equal(t, "12", toks[0].Span.Slice(line))
	assert.Equal(t, "sqrt", toks[2].Span.Slice(line))
}
