package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepPushLiteral(t *testing.T) {
	st := NewState(0)
	st.Step(NewInstruction(0, PUSH, NewLiteralOperand(LiteralZero)))
	require.Equal(t, 1, st.Stack.Size())
	top, _ := st.Stack.Pop()
	assert.Equal(t, "0.0", top.String())
	assert.Equal(t, StateActive, st.Status)
}

func TestStepPushMissingOperandErrors(t *testing.T) {
	st := NewState(0)
	st.Step(NewInstruction(0, PUSH))
	assert.Equal(t, StateErrored, st.Status)
	assert.IsType(t, MissingOperandError{}, st.Err)
}

func TestStepPopUnderflowErrors(t *testing.T) {
	st := NewState(0)
	st.Step(NewInstruction(0, POP))
	assert.Equal(t, StateErrored, st.Status)
	assert.IsType(t, StackUnderflowError{}, st.Err)
}

func TestStepBinaryPopOrder(t *testing.T) {
	// Pushed order a, b; SUB pops first=b (left), second=a (right): "b - a".
	st := NewState(0)
	st.Stack.Push(NewIdentifier("a"))
	st.Stack.Push(NewIdentifier("b"))
	st.Step(NewInstruction(0, SUB))

	top, ok := st.Stack.Pop()
	require.True(t, ok)
	assert.Equal(t, "b - a", top.String())
}

func TestStepNeg(t *testing.T) {
	st := NewState(0)
	st.Stack.Push(NewIdentifier("x"))
	st.Step(NewInstruction(0, NEG))
	top, _ := st.Stack.Pop()
	assert.Equal(t, "!x", top.String())
}

func TestStepMinMaxEmitsCall(t *testing.T) {
	var lines []string
	st := NewState(0, WithDiag(func(line string) { lines = append(lines, line) }))
	st.Stack.Push(NewIdentifier("a"))
	st.Stack.Push(NewIdentifier("b"))
	st.Step(NewInstruction(0, MIN))

	top, ok := st.Stack.Pop()
	require.True(t, ok)
	assert.Equal(t, "min(b, a)", top.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "min(b, a)", lines[0])
}

// Property 5: CALL consumes at most 8 arguments off the stack, stopping
// early if the stack empties first.
func TestCallArityCap(t *testing.T) {
	st := NewState(0)
	for i := 0; i < 10; i++ {
		st.Stack.Push(NewIdentifier("x"))
	}
	st.Step(NewInstruction(0, CALL, NewFunctionReferenceOperand("f")))

	require.Equal(t, 3, st.Stack.Size(), "8 args consumed out of 10, call pushed back, 2 left under it")
	top, _ := st.Stack.Pop()
	call := top.(Call)
	assert.Len(t, call.Arguments, 8)
}

func TestCallArityCapStopsAtUnderflow(t *testing.T) {
	st := NewState(0)
	st.Stack.Push(NewIdentifier("only"))
	st.Step(NewInstruction(0, CALL, NewFunctionReferenceOperand("f")))

	require.Equal(t, 1, st.Stack.Size())
	top, _ := st.Stack.Pop()
	call := top.(Call)
	assert.Len(t, call.Arguments, 1)
}

// Property 6: RET transitions the state to Terminated and never errors.
func TestRetTerminates(t *testing.T) {
	st := NewState(0)
	st.Stack.Push(NewIdentifier("x"))
	st.Step(NewInstruction(0, RET))
	assert.Equal(t, StateTerminated, st.Status)
	assert.NoError(t, st.Err)
}

func TestRetEmitsStackDiag(t *testing.T) {
	var lines []string
	st := NewState(0, WithDiag(func(line string) { lines = append(lines, line) }))
	st.Stack.Push(NewIdentifier("x"))
	st.Step(NewInstruction(0, RET))
	require.Len(t, lines, 1)
	assert.Equal(t, "[x]", lines[0])
}

func TestParamSeedOption(t *testing.T) {
	st := NewState(0, WithParamSeed(3))
	require.Equal(t, 3, st.Stack.Size())
	elems := st.Stack.Elements()
	assert.Equal(t, "param_0", elems[0].String())
	assert.Equal(t, "param_2", elems[2].String())
}
