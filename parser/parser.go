/*
File    : pysh/parser/parser.go

Resumable parser for the pysh shell grammar.

The parser is a pushdown automaton: one current state plus an explicit
state stack. Each state's tick consumes zero or more lookahead tokens and
reports whether it finished, entered a child state, or needs more input.
The "needs more input" case is what lets an if/then/fi block span several
input lines at the prompt: the automaton suspends with its stack intact
and resumes when the next line's tokens arrive.
*/
package parser

import (
	"fmt"

	"github.com/sfuller/pyshlang/lexer"
)

// ParseError is raised on unexpected tokens or an unterminated quoted
// string. The parser resets all transient state before returning one, so
// the session can continue with the next line.
type ParseError struct {
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// newParseError creates a ParseError with a formatted message.
func newParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// stateTickResult is what a state's tick reports back to the automaton.
type stateTickResult struct {
	isDone       bool        // pop this state, its node is complete
	isIncomplete bool        // out of tokens, suspend without losing state
	tokensToEat  int         // lookahead tokens consumed by this tick
	childState   parserState // push current state, child becomes current
}

// parserState is one state of the pushdown automaton.
type parserState interface {
	// tick examines the lookahead tokens and advances the state machine
	// by one step.
	tick(tokens []lexer.Token) (stateTickResult, error)
	// node returns the syntax node this state produced, or nil.
	node() SyntaxNode
}

// topLevelExpressionState dispatches on the first significant token of a
// statement: a command/assignment expression, or a conditional.
type topLevelExpressionState struct {
	childState parserState
}

func (s *topLevelExpressionState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if s.childState != nil {
		return stateTickResult{isDone: true}, nil
	}

	if len(tokens) == 0 {
		return stateTickResult{isDone: true}, nil
	}

	token := tokens[0]
	switch token.Type {
	case lexer.WHITESPACE_TYPE, lexer.EOS_TYPE:
		return stateTickResult{isDone: true, tokensToEat: 1}, nil
	case lexer.SYMBOL_TYPE, lexer.DOLLAR_TYPE, lexer.QUOTES_TYPE, lexer.UNKNOWN_TYPE:
		return s.enterChild(&expressionState{}), nil
	case lexer.IF_TYPE:
		return s.enterChild(newConditionalState()), nil
	}

	return stateTickResult{}, newParseError("Unexpected token %s in top level expression", token.Type)
}

func (s *topLevelExpressionState) enterChild(child parserState) stateTickResult {
	s.childState = child
	return stateTickResult{childState: child}
}

func (s *topLevelExpressionState) node() SyntaxNode {
	if s.childState == nil {
		return nil
	}
	return s.childState.node()
}

// replacementState parses a `$name` or `${name}` variable reference. It
// produces no node of its own; the parent argument state reads the parsed
// key and decides whether the replacement word-splits.
type replacementState struct {
	hasParsedPrefix bool
	hasParsedKey    bool
	isBlockSyntax   bool
	keyParts        []string
}

func (s *replacementState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if !s.hasParsedPrefix {
		if len(tokens) < 2 {
			return stateTickResult{isIncomplete: true}, nil
		}
		s.hasParsedPrefix = true
		if tokens[1].Type == lexer.LEFT_BRACE_TYPE {
			s.isBlockSyntax = true
			return stateTickResult{tokensToEat: 2}, nil
		}
		return stateTickResult{tokensToEat: 1}, nil
	}

	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}

	// Parse the variable name.
	if !s.hasParsedKey {
		token := tokens[0]
		if token.Type == lexer.RIGHT_BRACE_TYPE {
			if s.isBlockSyntax {
				s.hasParsedKey = true
				return stateTickResult{}, nil
			}
			return stateTickResult{}, newParseError("Unexpected %s", token.Value)
		}
		if token.Type == lexer.SYMBOL_TYPE {
			s.keyParts = append(s.keyParts, token.Value)
			return stateTickResult{tokensToEat: 1}, nil
		}
		s.hasParsedKey = true
		return stateTickResult{}, nil
	}

	// Parse the closing bracket if applicable.
	if s.isBlockSyntax {
		if tokens[0].Type != lexer.RIGHT_BRACE_TYPE {
			return stateTickResult{}, newParseError("Expecting }")
		}
		return stateTickResult{isDone: true, tokensToEat: 1}, nil
	}

	return stateTickResult{isDone: true}, nil
}

func (s *replacementState) node() SyntaxNode {
	return nil
}

// replacementKey returns the variable name the replacement refers to.
func (s *replacementState) replacementKey() string {
	key := ""
	for _, part := range s.keyParts {
		key += part
	}
	return key
}

// argumentState assembles one shell word from constant text, quoted
// regions, and variable replacements.
type argumentState struct {
	argParts       []*ArgumentPartNode
	isInsideQuotes bool
	replacement    *replacementState
	argNode        *ArgumentNode
}

func newArgumentState() *argumentState {
	return &argumentState{argNode: &ArgumentNode{}}
}

func (s *argumentState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if s.replacement != nil {
		// We have returned from parsing a replacement. Inside quotes the
		// expansion must not word-split.
		partType := PART_REPLACEMENT
		if s.isInsideQuotes {
			partType = PART_REPLACEMENT_SINGLE
		}
		s.argParts = append(s.argParts, &ArgumentPartNode{Type: partType, Value: s.replacement.replacementKey()})
		s.replacement = nil
	}

	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}

	token := tokens[0]

	if s.isInsideQuotes {
		switch token.Type {
		case lexer.QUOTES_TYPE:
			s.isInsideQuotes = false
			return stateTickResult{tokensToEat: 1}, nil
		case lexer.DOLLAR_TYPE:
			s.replacement = &replacementState{}
			return stateTickResult{childState: s.replacement}, nil
		case lexer.EOS_TYPE:
			return stateTickResult{}, newParseError("Unterminated quoted string")
		default:
			// Everything else, including whitespace and keywords,
			// contributes its raw text.
			s.argParts = append(s.argParts, &ArgumentPartNode{Type: PART_CONSTANT, Value: token.Value})
			return stateTickResult{tokensToEat: 1}, nil
		}
	}

	switch token.Type {
	case lexer.WHITESPACE_TYPE, lexer.EOS_TYPE:
		return s.finishNode(), nil
	case lexer.QUOTES_TYPE:
		s.isInsideQuotes = true
		return stateTickResult{tokensToEat: 1}, nil
	case lexer.SYMBOL_TYPE, lexer.ASSIGNMENT_TYPE, lexer.UNKNOWN_TYPE,
		lexer.LEFT_BRACE_TYPE, lexer.RIGHT_BRACE_TYPE:
		// Unknown tokens carry characters like '-', '/' and '.' which are
		// literal argument text to the shell.
		s.argParts = append(s.argParts, &ArgumentPartNode{Type: PART_CONSTANT, Value: token.Value})
		return stateTickResult{tokensToEat: 1}, nil
	case lexer.DOLLAR_TYPE:
		s.replacement = &replacementState{}
		return stateTickResult{childState: s.replacement}, nil
	}

	return stateTickResult{}, newParseError("Unexpected token while parsing expression: %s", token.Type)
}

func (s *argumentState) node() SyntaxNode {
	return s.argNode
}

// argumentNode returns the typed node for parents that need it.
func (s *argumentState) argumentNode() *ArgumentNode {
	return s.argNode
}

func (s *argumentState) finishNode() stateTickResult {
	s.argNode.Parts = s.argParts
	return stateTickResult{isDone: true}
}

// commandState collects the whitespace-separated arguments of a command
// until the end of the statement.
type commandState struct {
	args     []*ArgumentNode
	argState *argumentState
}

func (s *commandState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if s.argState != nil {
		s.args = append(s.args, s.argState.argumentNode())
		s.argState = nil
	}

	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}

	switch tokens[0].Type {
	case lexer.WHITESPACE_TYPE:
		return stateTickResult{tokensToEat: 1}, nil
	case lexer.EOS_TYPE:
		return stateTickResult{isDone: true}, nil
	}

	s.argState = newArgumentState()
	return stateTickResult{childState: s.argState}, nil
}

func (s *commandState) node() SyntaxNode {
	return nil
}

// assignmentState parses `name=value`. The value is a single argument
// whose replacements will not word-split.
type assignmentState struct {
	hasParsedLHS bool
	lhsVarName   string
	rhsArgState  *argumentState
	assignNode   *AssignmentNode
}

func newAssignmentState() *assignmentState {
	return &assignmentState{assignNode: &AssignmentNode{}}
}

func (s *assignmentState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}

	if !s.hasParsedLHS {
		// Eat the variable symbol and the assignment operator.
		s.hasParsedLHS = true
		s.lhsVarName = tokens[0].Value
		return stateTickResult{tokensToEat: 2}, nil
	}

	if s.rhsArgState == nil {
		s.rhsArgState = newArgumentState()
		return stateTickResult{childState: s.rhsArgState}, nil
	}

	s.assignNode.VarName = s.lhsVarName
	s.assignNode.Expr = s.rhsArgState.argumentNode()
	return stateTickResult{isDone: true}, nil
}

func (s *assignmentState) node() SyntaxNode {
	return s.assignNode
}

// assignmentNode returns the typed node for parents that need it.
func (s *assignmentState) assignmentNode() *AssignmentNode {
	return s.assignNode
}

// expressionState parses one statement: leading assignments, then an
// optional command. If the statement ends before any command argument was
// seen it emits an AssignmentsNode, otherwise a CommandNode carrying the
// assignments as environment prefixes.
type expressionState struct {
	assignments     []*AssignmentNode
	assignState     *assignmentState
	cmdState        *commandState
	parsedAssigns   bool
	parsedCommand   bool
	commandNode     *CommandNode
	assignmentsNode *AssignmentsNode
}

func (s *expressionState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if s.assignState != nil {
		// We have returned from parsing an env assignment.
		s.assignments = append(s.assignments, s.assignState.assignmentNode())
		s.assignState = nil
	}

	if s.cmdState != nil {
		s.parsedCommand = true
	}

	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}
	token := tokens[0]

	// Eat whitespace.
	if token.Type == lexer.WHITESPACE_TYPE {
		return stateTickResult{tokensToEat: 1}, nil
	}

	if token.Type == lexer.EOS_TYPE {
		// Finish parsing the expression.
		if s.cmdState != nil && len(s.cmdState.args) > 0 {
			// We are invoking a command, not just assigning variables.
			s.commandNode = &CommandNode{Args: s.cmdState.args, EnvAssignments: s.assignments}
		} else {
			s.assignmentsNode = &AssignmentsNode{Assignments: s.assignments}
		}
		return stateTickResult{isDone: true, tokensToEat: 1}, nil
	}

	if !s.parsedAssigns {
		if token.Type == lexer.SYMBOL_TYPE && len(tokens) >= 2 && tokens[1].Type == lexer.ASSIGNMENT_TYPE {
			s.assignState = newAssignmentState()
			return stateTickResult{childState: s.assignState}, nil
		}
		s.parsedAssigns = true
	}

	if !s.parsedCommand {
		s.cmdState = &commandState{}
		return stateTickResult{childState: s.cmdState}, nil
	}

	return stateTickResult{}, newParseError("Unexpected token %s after command", token.Type)
}

func (s *expressionState) node() SyntaxNode {
	if s.commandNode != nil {
		return s.commandNode
	}
	if s.assignmentsNode != nil {
		return s.assignmentsNode
	}
	return nil
}

// conditionalState parses `if EXPR+ then EXPR+ (else EXPR+)? fi`. Nested
// conditionals enter a child conditionalState, everything else an
// expressionState; state stacking does the rest.
type conditionalState struct {
	hasParsedIf         bool
	hasParsedConditions bool
	hasParsedThen       bool
	hasParsedExprs      bool
	hasParsedElse       bool
	hasParsedElseExprs  bool
	childState          parserState
	condNode            *ConditionalNode
}

func newConditionalState() *conditionalState {
	return &conditionalState{condNode: &ConditionalNode{}}
}

// childForToken picks the state to parse the next branch expression with.
func childForToken(tokens []lexer.Token) parserState {
	if tokens[0].Type == lexer.IF_TYPE {
		return newConditionalState()
	}
	return &expressionState{}
}

func (s *conditionalState) tick(tokens []lexer.Token) (stateTickResult, error) {
	if s.condNode == nil {
		s.condNode = &ConditionalNode{}
	}

	if len(tokens) == 0 {
		return stateTickResult{isIncomplete: true}, nil
	}

	token := tokens[0]

	if token.Type == lexer.WHITESPACE_TYPE {
		return stateTickResult{tokensToEat: 1}, nil
	}

	if !s.hasParsedIf {
		s.hasParsedIf = true
		return stateTickResult{tokensToEat: 1}, nil
	}

	if !s.hasParsedConditions {
		if s.childState == nil {
			s.childState = childForToken(tokens)
			return stateTickResult{childState: s.childState}, nil
		}
		s.appendChildNode(&s.condNode.EvaluationExpressions)
		s.hasParsedConditions = true
		return stateTickResult{}, nil
	}

	if !s.hasParsedThen {
		if token.Type != lexer.THEN_TYPE {
			// Another evaluation expression follows.
			s.hasParsedConditions = false
			return stateTickResult{}, nil
		}
		s.hasParsedThen = true
		return stateTickResult{tokensToEat: 1}, nil
	}

	if !s.hasParsedExprs {
		if s.childState == nil {
			s.childState = childForToken(tokens)
			return stateTickResult{childState: s.childState}, nil
		}
		s.appendChildNode(&s.condNode.ConditionalExpressions)
		s.hasParsedExprs = true
		return stateTickResult{}, nil
	}

	if !s.hasParsedElse {
		if token.Type == lexer.FI_TYPE {
			return stateTickResult{isDone: true, tokensToEat: 1}, nil
		}
		if token.Type == lexer.ELSE_TYPE {
			s.hasParsedElse = true
			return stateTickResult{tokensToEat: 1}, nil
		}
		// Another then-branch expression follows.
		s.hasParsedExprs = false
		return stateTickResult{}, nil
	}

	if !s.hasParsedElseExprs {
		if s.childState == nil {
			s.childState = childForToken(tokens)
			return stateTickResult{childState: s.childState}, nil
		}
		s.appendChildNode(&s.condNode.ElseExpressions)
		s.hasParsedElseExprs = true
	}

	if token.Type != lexer.FI_TYPE {
		// Another else-branch expression follows.
		s.hasParsedElseExprs = false
		return stateTickResult{}, nil
	}
	return stateTickResult{isDone: true, tokensToEat: 1}, nil
}

// appendChildNode moves the finished child's node into the given branch
// list and clears the child.
func (s *conditionalState) appendChildNode(exprs *[]SyntaxNode) {
	if node := s.childState.node(); node != nil {
		*exprs = append(*exprs, node)
	}
	s.childState = nil
}

func (s *conditionalState) node() SyntaxNode {
	if s.condNode == nil {
		return nil
	}
	return s.condNode
}

// Parser drives the pushdown automaton over an incrementally supplied
// token stream. One Parser instance lives for the whole interactive
// session; tokens left over from an incomplete construct are buffered
// across Parse calls.
type Parser struct {
	tokens     []lexer.Token
	state      parserState
	stateStack []parserState
	nodes      []SyntaxNode
}

// NewParser creates a Parser with no buffered input.
func NewParser() *Parser {
	return &Parser{}
}

// Parse feeds more tokens to the automaton. If the buffered input now
// forms one or more complete statements their nodes are returned; if the
// automaton still needs input (an unclosed if block) it returns an empty
// slice and IsDone reports false. On a ParseError all transient state is
// reset and the error returned.
func (p *Parser) Parse(tokens []lexer.Token) ([]SyntaxNode, error) {
	p.tokens = append(p.tokens, tokens...)
	if err := p.processTokens(); err != nil {
		p.Reset()
		return nil, err
	}

	if p.IsDone() {
		resultNodes := p.nodes
		p.nodes = nil
		return resultNodes, nil
	}
	return []SyntaxNode{}, nil
}

func (p *Parser) processTokens() error {
	if p.state == nil {
		p.state = &topLevelExpressionState{}
	}
	for p.state != nil {
		result, err := p.state.tick(p.tokens)
		if err != nil {
			return err
		}
		eat := result.tokensToEat
		if eat > len(p.tokens) {
			eat = len(p.tokens)
		}
		p.tokens = p.tokens[eat:]

		if result.childState != nil && !result.isDone {
			p.stateStack = append(p.stateStack, p.state)
			p.state = result.childState
		}
		if result.isDone {
			if len(p.stateStack) > 0 {
				p.state = p.stateStack[len(p.stateStack)-1]
				p.stateStack = p.stateStack[:len(p.stateStack)-1]
			} else {
				if node := p.state.node(); node != nil {
					p.nodes = append(p.nodes, node)
				}
				if len(p.tokens) > 0 {
					p.state = &topLevelExpressionState{}
				} else {
					p.state = nil
				}
			}
		}
		if result.isIncomplete {
			break
		}
	}
	return nil
}

// Reset discards all buffered tokens, partial nodes, and automaton state.
func (p *Parser) Reset() {
	p.tokens = nil
	p.state = nil
	p.stateStack = nil
	p.nodes = nil
}

// IsDone reports whether the automaton is at a statement boundary. The
// REPL uses this to choose between the primary and continuation prompts.
func (p *Parser) IsDone() bool {
	return p.state == nil && len(p.stateStack) == 0
}
