/*
File    : pysh/codegen/codegen.go

Code generator: lowers a parsed syntax tree to stack-machine instructions.

Lowering rules:

  Argument (command position)
      ldbuf ""; one instruction per part (concat / sub / subs); when the
      final part was a word-splitting replacement, `bbe 2` skips the
      trailing pushbuf/inca pair so an empty expansion does not produce a
      spurious empty argv entry.

  Assignment
      ldbuf NAME; pushbuf; ldbuf ""; parts with every replacement lowered
      to subs (no word-splitting on the right-hand side); setvar.

  Command
      env-prefix assignments first, then reseta, arguments, call.

  Conditional
      reseta, then for each evaluation expression a pusha/.../popa/add rv/
      pusha bracket that preserves the running exit-code sum in A across
      the expression's own register use; a popa and a back-patched
      `bra nz` select the else-branch when the sum is non-zero.
*/
package codegen

import (
	"github.com/sfuller/pyshlang/parser"
)

// CodeGenVisitor walks a syntax tree and appends instructions to its code
// list. Nodes are visited in source order; the list is append-only.
type CodeGenVisitor struct {
	Code []Instruction
}

// emit appends an instruction and returns its index, which back-patching
// uses to compute branch offsets.
func (v *CodeGenVisitor) emit(ins Instruction) int {
	v.Code = append(v.Code, ins)
	return len(v.Code) - 1
}

// VisitArgumentPartNode is a no-op: parts are lowered by their owning
// argument, whose context decides whether replacements word-split.
func (v *CodeGenVisitor) VisitArgumentPartNode(node *parser.ArgumentPartNode) {
}

// VisitArgumentNode lowers one command-position argument.
func (v *CodeGenVisitor) VisitArgumentNode(node *parser.ArgumentNode) {
	v.emit(&LoadBufferInstruction{Value: ""})
	lastPartWasReplacement := false
	for _, part := range node.Parts {
		lastPartWasReplacement = false
		switch part.Type {
		case parser.PART_CONSTANT:
			v.emit(&ConcatInstruction{Value: part.Value})
		case parser.PART_REPLACEMENT:
			v.emit(&SubstituteInstruction{Value: part.Value})
			lastPartWasReplacement = true
		case parser.PART_REPLACEMENT_SINGLE:
			v.emit(&SubstituteSingleInstruction{Value: part.Value})
		}
	}
	if lastPartWasReplacement {
		// Skip the pushbuf/inca pair when the final expansion left the
		// buffer empty.
		v.emit(&BranchBufferEmptyInstruction{Offset: 2})
	}
	v.emit(&PushBufferInstruction{})
	v.emit(&IncrementAInstruction{})
}

// VisitAssignmentNode lowers `name=value`.
func (v *CodeGenVisitor) VisitAssignmentNode(node *parser.AssignmentNode) {
	v.emit(&LoadBufferInstruction{Value: node.VarName})
	v.emit(&PushBufferInstruction{})
	v.emit(&LoadBufferInstruction{Value: ""})
	for _, part := range node.Expr.Parts {
		switch part.Type {
		case parser.PART_CONSTANT:
			v.emit(&ConcatInstruction{Value: part.Value})
		case parser.PART_REPLACEMENT, parser.PART_REPLACEMENT_SINGLE:
			// Assignments never word-split.
			v.emit(&SubstituteSingleInstruction{Value: part.Value})
		}
	}
	v.emit(&SetVarInstruction{})
}

// VisitAssignmentsNode lowers a standalone assignment statement.
func (v *CodeGenVisitor) VisitAssignmentsNode(node *parser.AssignmentsNode) {
	for _, assignment := range node.Assignments {
		v.VisitAssignmentNode(assignment)
	}
}

// VisitCommandNode lowers a command invocation. Env-prefix assignments
// are lowered as ordinary assignments ahead of the argv build-up; they
// assign real variables and persist after the command returns.
func (v *CodeGenVisitor) VisitCommandNode(node *parser.CommandNode) {
	for _, assignment := range node.EnvAssignments {
		v.VisitAssignmentNode(assignment)
	}
	v.emit(&ResetAInstruction{})
	for _, arg := range node.Args {
		v.VisitArgumentNode(arg)
	}
	v.emit(&CallInstruction{})
}

// VisitConditionalNode lowers if/then/else/fi, encoding the sum-of-exit-
// codes convention: the then-branch runs iff every evaluation expression
// returned zero.
func (v *CodeGenVisitor) VisitConditionalNode(node *parser.ConditionalNode) {
	v.emit(&ResetAInstruction{})
	for _, expr := range node.EvaluationExpressions {
		v.emit(&PushAInstruction{})
		expr.Accept(v)
		v.emit(&PopAInstruction{})
		v.emit(&AddRVToAInstruction{})
		v.emit(&PushAInstruction{})
	}
	v.emit(&PopAInstruction{})

	branch := &BranchIfANotZeroInstruction{}
	branchIdx := v.emit(branch)

	for _, expr := range node.ConditionalExpressions {
		expr.Accept(v)
	}

	if len(node.ElseExpressions) > 0 {
		jump := &JumpRelativeInstruction{}
		jumpIdx := v.emit(jump)
		branch.Offset = len(v.Code) - branchIdx - 1
		for _, expr := range node.ElseExpressions {
			expr.Accept(v)
		}
		jump.Offset = len(v.Code) - jumpIdx - 1
	} else {
		branch.Offset = len(v.Code) - branchIdx - 1
	}
}

// CodeGenerator is the public entry point of the lowering pass.
type CodeGenerator struct{}

// NewCodeGenerator creates a CodeGenerator.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate lowers the given statements and returns their instructions.
// Generation is total: every tree the parser produces lowers without
// error.
func (g *CodeGenerator) Generate(nodes []parser.SyntaxNode) []Instruction {
	visitor := &CodeGenVisitor{}
	for _, node := range nodes {
		node.Accept(visitor)
	}
	return visitor.Code
}
