/*
File    : pysh/lexer/lexer_test.go
*/
package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// represents a test case for LexAll
// Input: one source line
// ExpectedTokens: the token stream the lexer must produce
type TestLexAll struct {
	Input          string
	ExpectedTokens []Token
}

// TestLexer_LexAll tests the full definition table against representative
// shell lines.
func TestLexer_LexAll(t *testing.T) {

	tests := []TestLexAll{
		{
			Input: "echo hello\n",
			ExpectedTokens: []Token{
				NewToken(SYMBOL_TYPE, "echo"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "hello"),
				NewToken(EOS_TYPE, "\n"),
			},
		},
		{
			Input: "x=1; echo $x",
			ExpectedTokens: []Token{
				NewToken(SYMBOL_TYPE, "x"),
				NewToken(ASSIGNMENT_TYPE, "="),
				NewToken(SYMBOL_TYPE, "1"),
				NewToken(EOS_TYPE, ";"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "echo"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(DOLLAR_TYPE, "$"),
				NewToken(SYMBOL_TYPE, "x"),
			},
		},
		{
			Input: `echo "a b"`,
			ExpectedTokens: []Token{
				NewToken(SYMBOL_TYPE, "echo"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(QUOTES_TYPE, `"`),
				NewToken(SYMBOL_TYPE, "a"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "b"),
				NewToken(QUOTES_TYPE, `"`),
			},
		},
		{
			Input: "if true; then fi",
			ExpectedTokens: []Token{
				NewToken(IF_TYPE, "if"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "true"),
				NewToken(EOS_TYPE, ";"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(THEN_TYPE, "then"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(FI_TYPE, "fi"),
			},
		},
		{
			Input: "${name}",
			ExpectedTokens: []Token{
				NewToken(DOLLAR_TYPE, "$"),
				NewToken(LEFT_BRACE_TYPE, "{"),
				NewToken(SYMBOL_TYPE, "name"),
				NewToken(RIGHT_BRACE_TYPE, "}"),
			},
		},
		{
			// '-' and '/' are outside every definition: single-char
			// Unknown tokens.
			Input: "test 3 -lt 5",
			ExpectedTokens: []Token{
				NewToken(SYMBOL_TYPE, "test"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "3"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(UNKNOWN_TYPE, "-"),
				NewToken(SYMBOL_TYPE, "lt"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(SYMBOL_TYPE, "5"),
			},
		},
		{
			Input: "ls /tmp",
			ExpectedTokens: []Token{
				NewToken(SYMBOL_TYPE, "ls"),
				NewToken(WHITESPACE_TYPE, " "),
				NewToken(UNKNOWN_TYPE, "/"),
				NewToken(SYMBOL_TYPE, "tmp"),
			},
		},
	}

	lex := NewLexer()
	for _, test := range tests {
		tokens := lex.LexAll(test.Input)
		if diff := cmp.Diff(test.ExpectedTokens, tokens); diff != "" {
			t.Errorf("LexAll(%q) mismatch (-want +got):\n%s", test.Input, diff)
		}
	}
}

// TestLexer_KeywordBoundary verifies that a keyword only matches a whole
// symbol run: `iffy` must stay a single Symbol, not If + Symbol.
func TestLexer_KeywordBoundary(t *testing.T) {
	lex := NewLexer()

	tokens := lex.LexAll("iffy")
	assert.Equal(t, []Token{NewToken(SYMBOL_TYPE, "iffy")}, tokens)

	tokens = lex.LexAll("fib then2 elsewhere fi")
	assert.Equal(t, []Token{
		NewToken(SYMBOL_TYPE, "fib"),
		NewToken(WHITESPACE_TYPE, " "),
		NewToken(SYMBOL_TYPE, "then2"),
		NewToken(WHITESPACE_TYPE, " "),
		NewToken(SYMBOL_TYPE, "elsewhere"),
		NewToken(WHITESPACE_TYPE, " "),
		NewToken(FI_TYPE, "fi"),
	}, tokens)
}

// TestLexer_QuestionMarkSymbol verifies `$?` lexes as Dollar + Symbol("?").
func TestLexer_QuestionMarkSymbol(t *testing.T) {
	lex := NewLexer()
	tokens := lex.LexAll("echo $?")
	assert.Equal(t, []Token{
		NewToken(SYMBOL_TYPE, "echo"),
		NewToken(WHITESPACE_TYPE, " "),
		NewToken(DOLLAR_TYPE, "$"),
		NewToken(SYMBOL_TYPE, "?"),
	}, tokens)
}

// TestLexer_Whitespace verifies tabs and spaces collapse into one
// Whitespace token while newlines stay separate EndOfStatement tokens.
func TestLexer_Whitespace(t *testing.T) {
	lex := NewLexer()
	tokens := lex.LexAll(" \t ls\n\n")
	assert.Equal(t, []Token{
		NewToken(WHITESPACE_TYPE, " \t "),
		NewToken(SYMBOL_TYPE, "ls"),
		NewToken(EOS_TYPE, "\n"),
		NewToken(EOS_TYPE, "\n"),
	}, tokens)
}

// TestLexer_RoundTrip checks the universal invariant: concatenating the
// token values of any lexed stream reproduces the original input.
func TestLexer_RoundTrip(t *testing.T) {
	inputs := []string{
		"echo hello\n",
		`x="a $y b"; echo $x`,
		"if test 3 -lt 5; then echo yes; else echo no; fi\n",
		"weird !!! @@@ $$ {}{} ;;",
		"",
		"   \t  ",
	}

	lex := NewLexer()
	for _, input := range inputs {
		tokens := lex.LexAll(input)
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Value)
		}
		assert.Equal(t, input, sb.String(), "round trip of %q", input)
	}
}
