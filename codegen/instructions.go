/*
File    : pysh/codegen/instructions.go

Instruction set of the pysh stack machine.

The machine has an integer accumulator A (argument counter), a string
buffer B (the word under construction), a return-value register RV (last
exit status), and a string value stack. Branch offsets are relative to the
instruction following the branch: the interpreter's main loop increments
the program counter after every instruction.

Dispatch uses the visitor pattern, mirroring the syntax tree: the
interpreter and the IL renderer are both InstructionVisitors.
*/
package codegen

// InstructionVisitor implements the Visitor design pattern over the
// instruction set. The bytecode interpreter and the IL text renderer are
// the two visitors in this codebase.
type InstructionVisitor interface {
	VisitConcat(instruction *ConcatInstruction)
	VisitSubstitute(instruction *SubstituteInstruction)
	VisitSubstituteSingle(instruction *SubstituteSingleInstruction)
	VisitLoadBuffer(instruction *LoadBufferInstruction)
	VisitPushBuffer(instruction *PushBufferInstruction)
	VisitResetA(instruction *ResetAInstruction)
	VisitIncrementA(instruction *IncrementAInstruction)
	VisitPushA(instruction *PushAInstruction)
	VisitPopA(instruction *PopAInstruction)
	VisitCall(instruction *CallInstruction)
	VisitSetVar(instruction *SetVarInstruction)
	VisitBranchReturnValue(instruction *BranchReturnValueInstruction)
	VisitBranchIfANotZero(instruction *BranchIfANotZeroInstruction)
	VisitBranchBufferEmpty(instruction *BranchBufferEmptyInstruction)
	VisitJumpRelative(instruction *JumpRelativeInstruction)
	VisitAddRVToA(instruction *AddRVToAInstruction)
}

// Instruction is one operation of the stack machine.
type Instruction interface {
	Accept(visitor InstructionVisitor)
}

// ConcatInstruction appends Value to the buffer B.
type ConcatInstruction struct {
	Value string
}

func (ins *ConcatInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitConcat(ins)
}

// SubstituteInstruction expands the variable named Value with
// word-splitting: the value is split on ASCII spaces, empty words are
// dropped, every word but the last is pushed as its own stack entry, the
// last word is appended to B, and A grows by the number of pushes.
type SubstituteInstruction struct {
	Value string
}

func (ins *SubstituteInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitSubstitute(ins)
}

// SubstituteSingleInstruction appends the raw value of the variable named
// Value to B. A missing variable contributes nothing.
type SubstituteSingleInstruction struct {
	Value string
}

func (ins *SubstituteSingleInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitSubstituteSingle(ins)
}

// LoadBufferInstruction replaces B with Value.
type LoadBufferInstruction struct {
	Value string
}

func (ins *LoadBufferInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitLoadBuffer(ins)
}

// PushBufferInstruction pushes B onto the value stack.
type PushBufferInstruction struct{}

func (ins *PushBufferInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitPushBuffer(ins)
}

// ResetAInstruction sets A to zero.
type ResetAInstruction struct{}

func (ins *ResetAInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitResetA(ins)
}

// IncrementAInstruction adds one to A.
type IncrementAInstruction struct{}

func (ins *IncrementAInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitIncrementA(ins)
}

// PushAInstruction pushes the decimal rendering of A onto the value stack.
type PushAInstruction struct{}

func (ins *PushAInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitPushA(ins)
}

// PopAInstruction pops the value stack into A. The popped string must be
// a decimal integer.
type PopAInstruction struct{}

func (ins *PopAInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitPopA(ins)
}

// CallInstruction pops the top A stack entries as argv (order preserved,
// argv[0] first) and invokes the named builtin, or a child process when no
// builtin matches. The exit status lands in RV.
type CallInstruction struct{}

func (ins *CallInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitCall(ins)
}

// SetVarInstruction pops the variable name from the value stack and
// assigns B to it.
type SetVarInstruction struct{}

func (ins *SetVarInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitSetVar(ins)
}

// BranchReturnValueInstruction branches by Offset when RV is non-zero.
// The code generator does not currently emit it.
type BranchReturnValueInstruction struct {
	Offset int
}

func (ins *BranchReturnValueInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitBranchReturnValue(ins)
}

// BranchIfANotZeroInstruction branches by Offset when A is non-zero.
type BranchIfANotZeroInstruction struct {
	Offset int
}

func (ins *BranchIfANotZeroInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitBranchIfANotZero(ins)
}

// BranchBufferEmptyInstruction branches by Offset when B is empty.
type BranchBufferEmptyInstruction struct {
	Offset int
}

func (ins *BranchBufferEmptyInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitBranchBufferEmpty(ins)
}

// JumpRelativeInstruction unconditionally branches by Offset.
type JumpRelativeInstruction struct {
	Offset int
}

func (ins *JumpRelativeInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitJumpRelative(ins)
}

// AddRVToAInstruction adds RV to A. Conditionals use it to sum the exit
// codes of their evaluation expressions.
type AddRVToAInstruction struct{}

func (ins *AddRVToAInstruction) Accept(visitor InstructionVisitor) {
	visitor.VisitAddRVToA(ins)
}
