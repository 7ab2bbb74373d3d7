/*
File    : pysh/interp/interpreter.go

Bytecode interpreter for the pysh stack machine.

The interpreter is an InstructionVisitor: executing a program means
accepting each instruction in turn while the program counter walks
forward. Code is append-only across Execute calls — each input line's
instructions are added to the same program and the counter continues from
where the previous line stopped, so the context and registers persist for
the whole session.
*/
package interp

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/sfuller/pyshlang/builtins"
	"github.com/sfuller/pyshlang/codegen"
)

// ShellName tags interpreter diagnostics on stderr.
const ShellName = "pysh"

// ExecutionError is an internal invariant violation: stack underflow at
// call, or a non-numeric value popped into the A register. It aborts the
// remainder of the current program; the context survives.
type ExecutionError struct {
	Message string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return e.Message
}

func newExecutionError(format string, args ...interface{}) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}

// Interpreter executes stack-machine instructions against a Context.
type Interpreter struct {
	ctx    *Context
	stack  []string
	code   []codegen.Instruction
	pc     int
	buffer string
	regA   int
	rv     int

	out     io.Writer
	errOut  io.Writer
	execErr error
}

// NewInterpreter creates an Interpreter with a fresh Context, writing to
// the process's standard streams.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		ctx:    NewContext(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetWriter redirects builtin and child-process standard output.
func (i *Interpreter) SetWriter(w io.Writer) {
	i.out = w
}

// SetErrorWriter redirects diagnostics and child-process standard error.
func (i *Interpreter) SetErrorWriter(w io.Writer) {
	i.errOut = w
}

// Context returns the execution context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}

// RV returns the exit status of the most recently completed command.
func (i *Interpreter) RV() int {
	return i.rv
}

// Execute appends the given instructions to the program and runs until
// the program counter reaches the end. On an ExecutionError the error is
// reported on the error writer tagged with the shell name, the rest of
// the current program is abandoned, and the error returned.
func (i *Interpreter) Execute(code []codegen.Instruction) error {
	i.code = append(i.code, code...)
	for i.pc < len(i.code) {
		instruction := i.code[i.pc]
		instruction.Accept(i)
		if i.execErr != nil {
			err := i.execErr
			i.execErr = nil
			fmt.Fprintf(i.errOut, "%s: %s\n", ShellName, err)
			i.pc = len(i.code)
			return err
		}
		i.pc++
	}
	return nil
}

// lookupVariable resolves a variable name for substitution. `?` is the
// read-only last exit status; missing variables are empty.
func (i *Interpreter) lookupVariable(name string) string {
	if name == "?" {
		return strconv.Itoa(i.rv)
	}
	return i.ctx.Variables[name]
}

// VisitConcat appends the operand to the word buffer.
func (i *Interpreter) VisitConcat(instruction *codegen.ConcatInstruction) {
	i.buffer += instruction.Value
}

// VisitSubstitute expands a variable with word-splitting. The value is
// split on ASCII spaces (only), empty words dropped; every word but the
// last becomes its own stack entry and A grows accordingly, while the
// last word is left in the buffer for the argument's own pushbuf.
func (i *Interpreter) VisitSubstitute(instruction *codegen.SubstituteInstruction) {
	value := i.lookupVariable(instruction.Value)
	parts := strings.Split(value, " ")

	args := parts[:0]
	for _, part := range parts {
		if len(part) > 0 {
			args = append(args, part)
		}
	}
	argLen := len(args)

	for idx := 0; idx < argLen-1; idx++ {
		i.buffer += args[idx]
		i.stack = append(i.stack, i.buffer)
		i.buffer = ""
	}

	if argLen > 0 {
		i.buffer += args[argLen-1]
		i.regA += argLen - 1
	}
}

// VisitSubstituteSingle expands a variable without word-splitting.
func (i *Interpreter) VisitSubstituteSingle(instruction *codegen.SubstituteSingleInstruction) {
	i.buffer += i.lookupVariable(instruction.Value)
}

// VisitLoadBuffer replaces the word buffer.
func (i *Interpreter) VisitLoadBuffer(instruction *codegen.LoadBufferInstruction) {
	i.buffer = instruction.Value
}

// VisitPushBuffer pushes the word buffer onto the value stack.
func (i *Interpreter) VisitPushBuffer(instruction *codegen.PushBufferInstruction) {
	i.stack = append(i.stack, i.buffer)
}

// VisitResetA zeroes the argument counter.
func (i *Interpreter) VisitResetA(instruction *codegen.ResetAInstruction) {
	i.regA = 0
}

// VisitIncrementA bumps the argument counter.
func (i *Interpreter) VisitIncrementA(instruction *codegen.IncrementAInstruction) {
	i.regA++
}

// VisitPushA pushes the decimal rendering of A.
func (i *Interpreter) VisitPushA(instruction *codegen.PushAInstruction) {
	i.stack = append(i.stack, strconv.Itoa(i.regA))
}

// VisitPopA pops the value stack into A.
func (i *Interpreter) VisitPopA(instruction *codegen.PopAInstruction) {
	if len(i.stack) == 0 {
		i.execErr = newExecutionError("Stack underflow! Bad code given to interpreter or interpreter bug.")
		return
	}
	top := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	parsed, err := strconv.Atoi(top)
	if err != nil {
		i.execErr = newExecutionError("Expected integer on stack, got '%s'", top)
		return
	}
	i.regA = parsed
}

// VisitAddRVToA adds the last exit status to A.
func (i *Interpreter) VisitAddRVToA(instruction *codegen.AddRVToAInstruction) {
	i.regA += i.rv
}

// VisitCall pops the top A stack entries as argv and invokes the named
// command. With A == 0 (a lone replacement that expanded to nothing) the
// call is a no-op.
func (i *Interpreter) VisitCall(instruction *codegen.CallInstruction) {
	if len(i.stack) < i.regA {
		i.execErr = newExecutionError("Stack underflow! Bad code given to interpreter or interpreter bug.")
		return
	}
	if i.regA == 0 {
		return
	}
	stackStart := len(i.stack) - i.regA
	args := make([]string, i.regA)
	copy(args, i.stack[stackStart:])
	i.stack = i.stack[:stackStart]

	i.rv = i.invoke(args)
}

// invoke dispatches argv to a builtin, or to the operating system when no
// builtin matches.
func (i *Interpreter) invoke(args []string) int {
	if builtin, ok := i.ctx.Builtins[args[0]]; ok {
		info := builtins.InvokeInfo{
			Arguments: args,
			Env:       i.exportedEnv(),
			Stdin:     "",
			Pwd:       i.ctx.Pwd,
			Stdout:    i.out,
			Stderr:    i.errOut,
		}
		return builtin(info)
	}
	return i.spawnProcess(args)
}

// exportedEnv builds the environment pairs for an invocation from the
// exported set. A name exported without a value is forwarded as the empty
// string rather than omitted.
func (i *Interpreter) exportedEnv() []builtins.EnvVar {
	names := make([]string, 0, len(i.ctx.Exported))
	for name := range i.ctx.Exported {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make([]builtins.EnvVar, 0, len(names))
	for _, name := range names {
		env = append(env, builtins.EnvVar{Name: name, Value: i.ctx.Variables[name]})
	}
	return env
}

// spawnProcess runs argv as a child process in the context's working
// directory with the exported environment, waiting for it to finish.
func (i *Interpreter) spawnProcess(args []string) int {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = i.ctx.Pwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = i.out
	cmd.Stderr = i.errOut

	env := make([]string, 0, len(i.ctx.Exported))
	for _, pair := range i.exportedEnv() {
		env = append(env, pair.Name+"="+pair.Value)
	}
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(i.errOut, "%s: %s: %s\n", ShellName, args[0], err)
		return 127
	}
	return 0
}

// VisitSetVar pops the variable name and assigns the buffer to it.
func (i *Interpreter) VisitSetVar(instruction *codegen.SetVarInstruction) {
	if len(i.stack) == 0 {
		i.execErr = newExecutionError("Stack underflow! Bad code given to interpreter or interpreter bug.")
		return
	}
	varName := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	i.ctx.Variables[varName] = i.buffer
}

// VisitBranchReturnValue branches when the last exit status is non-zero.
func (i *Interpreter) VisitBranchReturnValue(instruction *codegen.BranchReturnValueInstruction) {
	if i.rv != 0 {
		i.pc += instruction.Offset
	}
}

// VisitBranchIfANotZero branches when A is non-zero.
func (i *Interpreter) VisitBranchIfANotZero(instruction *codegen.BranchIfANotZeroInstruction) {
	if i.regA != 0 {
		i.pc += instruction.Offset
	}
}

// VisitBranchBufferEmpty branches when the word buffer is empty.
func (i *Interpreter) VisitBranchBufferEmpty(instruction *codegen.BranchBufferEmptyInstruction) {
	if len(i.buffer) == 0 {
		i.pc += instruction.Offset
	}
}

// VisitJumpRelative branches unconditionally.
func (i *Interpreter) VisitJumpRelative(instruction *codegen.JumpRelativeInstruction) {
	i.pc += instruction.Offset
}
