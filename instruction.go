package main

import (
	"fmt"
	"strings"
)

// Instruction is an immutable address/mnemonic/operands triple recovered by
// the disassembler.
type Instruction struct {
	Address  int
	Mnemonic Mnemonic
	Operands []Operand
}

// NewInstruction builds an Instruction. Operands are copied into the
// instruction's own backing slice so that the caller's slice may be reused.
func NewInstruction(address int, mnemonic Mnemonic, operands ...Operand) Instruction {
	ops := make([]Operand, len(operands))
	copy(ops, operands)
	return Instruction{Address: address, Mnemonic: mnemonic, Operands: ops}
}

// String formats the instruction as "0x{address:hex}:\t{mnemonic:-12}{operands}".
func (instr Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "0x%x:\t%-12v", instr.Address, instr.Mnemonic)
	for i, op := range instr.Operands {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}
