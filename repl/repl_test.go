/*
File    : pysh/repl/repl_test.go
*/
package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestRepl creates a Repl with captured output streams.
func newTestRepl(mode Mode) (*Repl, *bytes.Buffer, *bytes.Buffer) {
	r := NewRepl(mode)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	r.SetWriter(out)
	r.SetErrorWriter(errOut)
	return r, out, errOut
}

func TestParseMode(t *testing.T) {
	for value, want := range map[string]Mode{
		"execute": ModeExecute,
		"codegen": ModeGenerateCode,
		"parse":   ModeParse,
		"lex":     ModeLex,
	} {
		mode, err := ParseMode(value)
		assert.NoError(t, err)
		assert.Equal(t, want, mode)
	}

	_, err := ParseMode("bogus")
	assert.Error(t, err)
}

func TestRepl_ExecuteMode(t *testing.T) {
	r, out, _ := newTestRepl(ModeExecute)
	r.Tick("echo hello")
	assert.Equal(t, "hello\n", out.String())
}

// State persists across ticks: assignments made on one line are visible
// on later lines.
func TestRepl_StatePersistsAcrossTicks(t *testing.T) {
	r, out, _ := newTestRepl(ModeExecute)
	r.Tick("x=sailor")
	r.Tick("echo hello $x")
	assert.Equal(t, "hello sailor\n", out.String())
}

func TestRepl_MultiLineConditional(t *testing.T) {
	r, out, _ := newTestRepl(ModeExecute)

	r.Tick("if true")
	assert.False(t, r.IsDone())
	r.Tick("then echo yes")
	assert.False(t, r.IsDone())
	r.Tick("fi")
	assert.True(t, r.IsDone())

	assert.Equal(t, "yes\n", out.String())
}

func TestRepl_ParseErrorIsReportedAndSessionContinues(t *testing.T) {
	r, out, errOut := newTestRepl(ModeExecute)

	r.Tick("echo \"unterminated")
	assert.Contains(t, errOut.String(), "Unterminated quoted string")
	assert.True(t, r.IsDone())

	r.Tick("echo ok")
	assert.Equal(t, "ok\n", out.String())
}

func TestRepl_CodegenMode(t *testing.T) {
	r, out, _ := newTestRepl(ModeGenerateCode)
	r.Tick("x=1")
	want := "ldbuf \"x\"\n" +
		"pushbuf\n" +
		"ldbuf \"\"\n" +
		"concat \"1\"\n" +
		"setvar\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

func TestRepl_LexMode(t *testing.T) {
	r, out, _ := newTestRepl(ModeLex)
	r.Tick("x=1")
	want := "<Token type: Symbol, value: x>\n" +
		"<Token type: Assignment, value: =>\n" +
		"<Token type: Symbol, value: 1>\n" +
		"<Token type: EndOfStatement, value: \n>\n"
	assert.Equal(t, want, out.String())
}

func TestRepl_ParseModeOutput(t *testing.T) {
	r, out, _ := newTestRepl(ModeParse)
	r.Tick("echo hi")
	want := "Command:\n" +
		"  env_assignments: []\n" +
		"  args: [\n" +
		"    Argument:\n" +
		"      parts: [\n" +
		"        Argument Part: type: Constant value: echo\n" +
		"      ]\n" +
		"    Argument:\n" +
		"      parts: [\n" +
		"        Argument Part: type: Constant value: hi\n" +
		"      ]\n" +
		"  ]\n"
	assert.Equal(t, want, out.String())
}

func TestRepl_RunScript(t *testing.T) {
	r, out, _ := newTestRepl(ModeExecute)
	err := r.RunScript("x=1\nif test $x = 1\nthen echo one\nelse echo other\nfi\n")
	assert.NoError(t, err)
	assert.Equal(t, "one\n", out.String())
}

func TestRepl_RunScriptUnfinishedConstruct(t *testing.T) {
	r, _, _ := newTestRepl(ModeExecute)
	err := r.RunScript("if true\nthen echo yes\n")
	assert.Error(t, err)
}

func TestRepl_RunCommand(t *testing.T) {
	r, out, _ := newTestRepl(ModeExecute)
	status := r.RunCommand("echo from -c")
	assert.Equal(t, 0, status)
	assert.Equal(t, "from -c\n", out.String())
}
