package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionDisassembly(t *testing.T) {
	fn := NewFunction(3, "ab")
	fn.AddInstruction(NewInstruction(3, PUSH, NewParameterOperand(0)))
	fn.AddInstruction(NewInstruction(4, ADD))
	fn.AddInstruction(NewInstruction(5, RET))

	dis := fn.Disassembly()
	lines := strings.Split(dis, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "function func_ab(param_0, param_1, param_2, param_3, param_4, param_5, param_6, param_7)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\t0x3:\tpush"))
	assert.True(t, strings.HasPrefix(lines[2], "\t0x4:\tadd"))
	assert.True(t, strings.HasPrefix(lines[3], "\t0x5:\tret"))
}

func TestFunctionAddInstructionRequiresMonotonicAddress(t *testing.T) {
	fn := NewFunction(0, "f")
	fn.AddInstruction(NewInstruction(1, POP))

	assert.Panics(t, func() {
		fn.AddInstruction(NewInstruction(1, POP))
	})
	assert.Panics(t, func() {
		fn.AddInstruction(NewInstruction(0, POP))
	})
}

// Property 1: for any function F and indices i<j, addresses strictly increase.
func TestAddressMonotonicityProperty(t *testing.T) {
	fn := NewFunction(0, "f")
	addrs := []int{0, 1, 5, 6, 100}
	for _, a := range addrs {
		fn.AddInstruction(NewInstruction(a, POP))
	}
	for i := 1; i < len(fn.Instructions); i++ {
		assert.Less(t, fn.Instructions[i-1].Address, fn.Instructions[i].Address)
	}
}

func TestFunctionReference(t *testing.T) {
	fn := NewFunction(0, "id")
	ref := fn.Reference()
	id, ok := ref.IsFunctionReference()
	require.True(t, ok)
	assert.Equal(t, "id", id)
	assert.Equal(t, "func_id", ref.String())
}
