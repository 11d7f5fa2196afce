package main

import (
	"fmt"
	"strings"
)

// numParams is fixed by the specification: every recovered function is
// presented as if it takes exactly this many parameters, regardless of how
// many it actually reads off the stack.
const numParams = 8

// Function is a named, addressable region of instructions delimited in the
// byte stream by ":id:" ... ";". It is mutable only by appending
// instructions while it is the disassembler's current function.
type Function struct {
	Address       int
	ID            string
	FormattedName string
	NumParams     int
	Instructions  []Instruction
}

// NewFunction builds a Function at the given address with the given id.
func NewFunction(address int, id string) *Function {
	return &Function{
		Address:       address,
		ID:            id,
		FormattedName: fmt.Sprintf("func_%s", id),
		NumParams:     numParams,
	}
}

// AddInstruction appends an instruction to the function. The specification
// requires strictly increasing addresses across a function's instruction
// list; violating that is a disassembler bug, not a data error, so it
// panics rather than returning an error.
func (fn *Function) AddInstruction(instr Instruction) {
	if n := len(fn.Instructions); n > 0 && instr.Address <= fn.Instructions[n-1].Address {
		panic(fmt.Sprintf("function %s: instruction address %#x does not strictly increase past %#x",
			fn.ID, instr.Address, fn.Instructions[n-1].Address))
	}
	fn.Instructions = append(fn.Instructions, instr)
}

// Reference returns the FunctionReference operand that names this function,
// suitable for use as a CALL instruction's sole operand.
func (fn *Function) Reference() Operand {
	return NewFunctionReferenceOperand(fn.ID)
}

// Disassembly renders the function's header line followed by one
// tab-indented line per instruction.
func (fn *Function) Disassembly() string {
	var sb strings.Builder

	params := make([]string, fn.NumParams)
	for i := range params {
		params[i] = fmt.Sprintf("param_%d", i)
	}
	fmt.Fprintf(&sb, "function %s(%s)", fn.FormattedName, strings.Join(params, ", "))

	for _, instr := range fn.Instructions {
		sb.WriteByte('\n')
		sb.WriteByte('\t')
		sb.WriteString(instr.String())
	}
	return sb.String()
}
