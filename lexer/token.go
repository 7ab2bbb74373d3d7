/*
File    : pysh/lexer/token.go

Token model for the pysh shell language.
*/
package lexer

import "fmt"

// TokenType classifies a lexical token in a pysh source line.
// It is defined as a string to allow for easy comparison and debugging.
type TokenType string

// TokenType constants.
// These cover every syntactic element the shell grammar knows about.
// Anything the lexer cannot classify becomes UNKNOWN_TYPE and carries the
// single character that produced it.
const (
	// UNKNOWN_TYPE represents a character outside every other class.
	// Unknown tokens are not an error at the lexing stage: the parser
	// treats them as literal argument text (so `ls /tmp` works).
	UNKNOWN_TYPE TokenType = "Unknown"

	// WHITESPACE_TYPE is a run of whitespace excluding newlines.
	WHITESPACE_TYPE TokenType = "Whitespace"

	// EOS_TYPE terminates a statement: a newline or a semicolon.
	EOS_TYPE TokenType = "EndOfStatement"

	// SYMBOL_TYPE is a run of [A-Za-z0-9_?] characters: command names,
	// variable names, bare words. '?' is admitted so that `$?` lexes as
	// Dollar followed by Symbol("?").
	SYMBOL_TYPE TokenType = "Symbol"

	// DOLLAR_TYPE introduces a variable replacement.
	DOLLAR_TYPE TokenType = "Dollar"

	// LEFT_BRACE_TYPE and RIGHT_BRACE_TYPE delimit the `${name}` form.
	LEFT_BRACE_TYPE  TokenType = "LeftBrace"
	RIGHT_BRACE_TYPE TokenType = "RightBrace"

	// Keywords of the conditional construct. A keyword only matches when
	// its literal coincides with a whole Symbol run, so `iffy` stays a
	// Symbol.
	IF_TYPE   TokenType = "If"
	THEN_TYPE TokenType = "Then"
	ELSE_TYPE TokenType = "Else"
	FI_TYPE   TokenType = "Fi"

	// QUOTES_TYPE is a double quote, toggling quoted argument scope.
	QUOTES_TYPE TokenType = "Quotes"

	// ASSIGNMENT_TYPE is the `=` operator.
	ASSIGNMENT_TYPE TokenType = "Assignment"
)

// Token is a single lexical token: its classification plus the literal
// source substring that produced it. Concatenating the Value fields of a
// lexed token stream reproduces the original input exactly.
type Token struct {
	Type  TokenType // The classification of this token
	Value string    // The actual text from the source line
}

// NewToken creates a new Token with the given type and source text.
func NewToken(tokenType TokenType, value string) Token {
	return Token{Type: tokenType, Value: value}
}

// String returns a human-readable representation of the token, used by the
// `--mode=lex` output and in test failure messages.
func (tok Token) String() string {
	return fmt.Sprintf("<Token type: %s, value: %s>", tok.Type, tok.Value)
}
