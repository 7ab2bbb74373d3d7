/*
File    : pysh/codegen/il.go

IL text renderer: one instruction per line, the output of
`--mode=codegen`. The format is an observable artifact; tests pin it
byte for byte.
*/
package codegen

import (
	"fmt"
	"strings"
)

// GenerateILVisitor renders instructions as IL text.
type GenerateILVisitor struct {
	parts []string
}

// NewGenerateILVisitor creates an empty IL renderer.
func NewGenerateILVisitor() *GenerateILVisitor {
	return &GenerateILVisitor{}
}

func (v *GenerateILVisitor) VisitConcat(instruction *ConcatInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("concat \"%s\"\n", instruction.Value))
}

func (v *GenerateILVisitor) VisitSubstitute(instruction *SubstituteInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("sub \"%s\"\n", instruction.Value))
}

func (v *GenerateILVisitor) VisitSubstituteSingle(instruction *SubstituteSingleInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("subs \"%s\"\n", instruction.Value))
}

func (v *GenerateILVisitor) VisitLoadBuffer(instruction *LoadBufferInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("ldbuf \"%s\"\n", instruction.Value))
}

func (v *GenerateILVisitor) VisitPushBuffer(instruction *PushBufferInstruction) {
	v.parts = append(v.parts, "pushbuf\n")
}

func (v *GenerateILVisitor) VisitResetA(instruction *ResetAInstruction) {
	v.parts = append(v.parts, "reseta\n")
}

func (v *GenerateILVisitor) VisitIncrementA(instruction *IncrementAInstruction) {
	v.parts = append(v.parts, "inca\n")
}

func (v *GenerateILVisitor) VisitPushA(instruction *PushAInstruction) {
	v.parts = append(v.parts, "pusha\n")
}

func (v *GenerateILVisitor) VisitPopA(instruction *PopAInstruction) {
	v.parts = append(v.parts, "popa\n")
}

func (v *GenerateILVisitor) VisitCall(instruction *CallInstruction) {
	v.parts = append(v.parts, "call\n")
}

func (v *GenerateILVisitor) VisitSetVar(instruction *SetVarInstruction) {
	v.parts = append(v.parts, "setvar\n")
}

func (v *GenerateILVisitor) VisitBranchReturnValue(instruction *BranchReturnValueInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("brv %d\n", instruction.Offset))
}

func (v *GenerateILVisitor) VisitBranchIfANotZero(instruction *BranchIfANotZeroInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("bra nz, %d\n", instruction.Offset))
}

func (v *GenerateILVisitor) VisitBranchBufferEmpty(instruction *BranchBufferEmptyInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("bbe %d\n", instruction.Offset))
}

func (v *GenerateILVisitor) VisitJumpRelative(instruction *JumpRelativeInstruction) {
	v.parts = append(v.parts, fmt.Sprintf("jr %d\n", instruction.Offset))
}

func (v *GenerateILVisitor) VisitAddRVToA(instruction *AddRVToAInstruction) {
	v.parts = append(v.parts, "add rv\n")
}

// MakeIL returns the accumulated IL text.
func (v *GenerateILVisitor) MakeIL() string {
	return strings.Join(v.parts, "")
}

// RenderIL is a convenience wrapper rendering a whole instruction list.
func RenderIL(code []Instruction) string {
	visitor := NewGenerateILVisitor()
	for _, instruction := range code {
		instruction.Accept(visitor)
	}
	return visitor.MakeIL()
}
