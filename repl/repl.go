/*
File    : pysh/repl/repl.go

Interactive loop for the pysh shell.

The loop owns one instance of each pipeline stage — lexer, parser, code
generator, interpreter — for the whole session. Each input line runs the
full pipeline; when the parser reports that a construct is still open
(an if block spanning lines) the loop switches to the continuation
prompt and keeps feeding the same parser.

The REPL uses the readline library for line editing and history, and
colors diagnostics so errors stand out from command output.
*/
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/sfuller/pyshlang/codegen"
	"github.com/sfuller/pyshlang/interp"
	"github.com/sfuller/pyshlang/lexer"
	"github.com/sfuller/pyshlang/parser"
)

// Prompts. The continuation prompt shows while the parser is suspended
// inside a multi-line construct.
const (
	PrimaryPrompt      = "pysh$ "
	ContinuationPrompt = "> "
)

// Color definitions for REPL diagnostics. Parse errors are printed in
// red so they stand out from command output.
var redColor = color.New(color.FgRed)

// Mode selects what the REPL emits for each input line.
type Mode int

const (
	// ModeExecute runs the generated code (the default).
	ModeExecute Mode = iota
	// ModeGenerateCode prints the IL text instead of executing.
	ModeGenerateCode
	// ModeParse prints the syntax tree.
	ModeParse
	// ModeLex prints the token stream.
	ModeLex
)

// ParseMode maps a --mode flag value to a Mode.
func ParseMode(value string) (Mode, error) {
	switch value {
	case "execute":
		return ModeExecute, nil
	case "codegen":
		return ModeGenerateCode, nil
	case "parse":
		return ModeParse, nil
	case "lex":
		return ModeLex, nil
	}
	return ModeExecute, fmt.Errorf("invalid mode: %s", value)
}

// Repl drives the lex, parse, codegen, interpret pipeline over input
// lines.
type Repl struct {
	mode        Mode
	lexer       *lexer.Lexer
	parser      *parser.Parser
	generator   *codegen.CodeGenerator
	interpreter *interp.Interpreter
	out         io.Writer
	errOut      io.Writer
}

// NewRepl creates a Repl in the given mode, writing to the process's
// standard streams.
func NewRepl(mode Mode) *Repl {
	r := &Repl{
		mode:        mode,
		lexer:       lexer.NewLexer(),
		parser:      parser.NewParser(),
		generator:   codegen.NewCodeGenerator(),
		interpreter: interp.NewInterpreter(),
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
	return r
}

// SetWriter redirects standard output for the session.
func (r *Repl) SetWriter(w io.Writer) {
	r.out = w
	r.interpreter.SetWriter(w)
}

// SetErrorWriter redirects diagnostics for the session.
func (r *Repl) SetErrorWriter(w io.Writer) {
	r.errOut = w
	r.interpreter.SetErrorWriter(w)
}

// Interpreter exposes the session's interpreter.
func (r *Repl) Interpreter() *interp.Interpreter {
	return r.interpreter
}

// IsDone reports whether the parser is at a statement boundary; when
// false the next line continues the construct under the continuation
// prompt.
func (r *Repl) IsDone() bool {
	return r.parser.IsDone()
}

// Tick feeds one input line (without its trailing newline) through the
// pipeline. What happens to the result depends on the mode.
func (r *Repl) Tick(line string) {
	tokens := r.lexer.LexAll(line + "\n")
	if r.mode == ModeLex {
		for _, token := range tokens {
			fmt.Fprintln(r.out, token)
		}
		return
	}

	nodes, err := r.parser.Parse(tokens)
	if err != nil {
		redColor.Fprintf(r.errOut, "%s\n", err)
		return
	}
	if r.mode == ModeParse {
		visitor := parser.NewReprVisitor()
		for _, node := range nodes {
			node.Accept(visitor)
		}
		fmt.Fprint(r.out, visitor.String())
		return
	}

	code := r.generator.Generate(nodes)
	if r.mode == ModeGenerateCode {
		fmt.Fprintln(r.out, codegen.RenderIL(code))
		return
	}

	r.interpreter.Execute(code)
}

// RunCommand runs one command line non-interactively (the -c flag).
func (r *Repl) RunCommand(command string) int {
	r.Tick(command)
	return 0
}

// RunScript runs a whole source text line by line, without prompts.
// A construct left open at the end of the input is an error.
func (r *Repl) RunScript(source string) error {
	for _, line := range strings.Split(source, "\n") {
		r.Tick(line)
	}
	if !r.parser.IsDone() {
		r.parser.Reset()
		return fmt.Errorf("unexpected end of input")
	}
	return nil
}

// RunInteractive runs the prompt loop until end of input. The prompt
// switches to the continuation form while a construct is open.
func (r *Repl) RunInteractive() error {
	rl, err := readline.New(PrimaryPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl-C abandons the current construct but keeps the
			// session alive.
			r.parser.Reset()
			rl.SetPrompt(PrimaryPrompt)
			continue
		}
		if err != nil {
			// EOF or a closed terminal ends the session.
			return nil
		}

		if strings.TrimSpace(line) != "" {
			rl.SaveHistory(line)
		}

		r.Tick(line)

		if r.IsDone() {
			rl.SetPrompt(PrimaryPrompt)
		} else {
			rl.SetPrompt(ContinuationPrompt)
		}
	}
}
