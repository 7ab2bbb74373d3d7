/*
File    : pysh/lexer/lexer.go

Lexer for the pysh shell language.

The lexer scans a source line left to right with maximal munch against an
ordered table of token definitions. Each definition is either a fixed
literal prefix or a predicate-driven compound match; the first definition
that matches at least one character wins. Input that no definition matches
is emitted as a single-character Unknown token, so lexing never fails and
the concatenation of all token values always reproduces the input.
*/
package lexer

// matcherFunc reports how many leading bytes of source the definition
// matches. A return of zero means no match.
type matcherFunc func(source string, pattern string) int

// tokenDefinition is one entry of the lexer's ordered definition table.
// Either Pattern alone (fixed literal prefix) or Matcher (compound match,
// with Pattern as an optional parameter to the matcher) drives the match.
type tokenDefinition struct {
	Pattern   string
	Matcher   matcherFunc
	TokenType TokenType
}

// match returns the number of leading bytes of source this definition
// consumes, or zero if it does not apply.
func (def *tokenDefinition) match(source string) int {
	if def.Matcher != nil {
		return def.Matcher(source, def.Pattern)
	}
	if len(source) >= len(def.Pattern) && source[:len(def.Pattern)] == def.Pattern {
		return len(def.Pattern)
	}
	return 0
}

// Lexer tokenizes pysh source lines. It is stateless between calls: the
// full definition table is built once in NewLexer and each LexAll call
// consumes an independent source string.
type Lexer struct {
	definitions []tokenDefinition
}

// NewLexer creates a Lexer with the canonical definition table. Order
// matters: earlier entries dominate when two definitions would match the
// same prefix (keywords are tried before the generic Symbol run).
func NewLexer() *Lexer {
	lex := &Lexer{}
	lex.definitions = []tokenDefinition{
		{Matcher: matchWhitespace, TokenType: WHITESPACE_TYPE},
		{Pattern: "\n", TokenType: EOS_TYPE},
		{Pattern: ";", TokenType: EOS_TYPE},
		{Pattern: `"`, TokenType: QUOTES_TYPE},
		{Pattern: "=", TokenType: ASSIGNMENT_TYPE},
		{Pattern: "$", TokenType: DOLLAR_TYPE},
		{Pattern: "{", TokenType: LEFT_BRACE_TYPE},
		{Pattern: "}", TokenType: RIGHT_BRACE_TYPE},
		{Pattern: "if", Matcher: matchKeyword, TokenType: IF_TYPE},
		{Pattern: "then", Matcher: matchKeyword, TokenType: THEN_TYPE},
		{Pattern: "else", Matcher: matchKeyword, TokenType: ELSE_TYPE},
		{Pattern: "fi", Matcher: matchKeyword, TokenType: FI_TYPE},
		{Matcher: matchSymbol, TokenType: SYMBOL_TYPE},
	}
	return lex
}

// LexAll consumes the entire source string and returns the token stream.
// It never fails: unclassifiable characters are emitted one at a time as
// Unknown tokens.
func (lex *Lexer) LexAll(source string) []Token {
	tokens := []Token{}
	for len(source) > 0 {
		var token Token
		token, source = lex.lex(source)
		tokens = append(tokens, token)
	}
	return tokens
}

// lex matches a single token at the head of source and returns it along
// with the remaining source text.
func (lex *Lexer) lex(source string) (Token, string) {
	for i := range lex.definitions {
		def := &lex.definitions[i]
		matchLength := def.match(source)
		if matchLength <= 0 {
			continue
		}
		return NewToken(def.TokenType, source[:matchLength]), source[matchLength:]
	}
	return NewToken(UNKNOWN_TYPE, source[:1]), source[1:]
}

// matchWhitespace matches a run of whitespace characters, excluding
// newlines (a newline is a statement terminator, not spacing).
func matchWhitespace(source string, _ string) int {
	idx := 0
	for idx < len(source) {
		val := source[idx]
		if !isSpace(val) || val == '\n' {
			break
		}
		idx++
	}
	return idx
}

// matchSymbol matches a run of symbol characters: letters, digits,
// underscore, and '?'.
func matchSymbol(source string, _ string) int {
	idx := 0
	for idx < len(source) {
		if !isSymbolChar(source[idx]) {
			break
		}
		idx++
	}
	return idx
}

// matchKeyword matches pattern only when it coincides with the whole
// Symbol run starting at source. This keeps `iffy` a Symbol rather than
// the keyword `if` followed by `fy`.
func matchKeyword(source string, pattern string) int {
	symbolLength := matchSymbol(source, pattern)
	if symbolLength == len(pattern) && source[:symbolLength] == pattern {
		return symbolLength
	}
	return 0
}

// isSpace reports whether c is an ASCII whitespace character.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// isSymbolChar reports whether c may appear inside a Symbol token.
func isSymbolChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '?'
}
