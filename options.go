package main

import "fmt"

// DisassemblerOption configures a Disassembler at construction, following
// the functional-options idiom: small single-purpose types, each applying
// itself to the receiver.
type DisassemblerOption interface{ apply(d *Disassembler) }

type disassemblerTraceOption func(mess string, args ...interface{})

func (f disassemblerTraceOption) apply(d *Disassembler) { d.traceFn = f }

// WithDisassemblerTrace routes one formatted line per decoded instruction
// (including the RET that closes a function) through logf. The core never logs on
// its own; this hook is how a driver wires real logging in.
func WithDisassemblerTrace(logf func(mess string, args ...interface{})) DisassemblerOption {
	return disassemblerTraceOption(logf)
}

// StateOption configures a State at construction.
type StateOption interface{ apply(st *State) }

type stateTraceOption func(mess string, args ...interface{})

func (f stateTraceOption) apply(st *State) { st.traceFn = f }

// WithStateTrace routes a state's internal diagnostics (currently just
// errored-state notices) through logf.
func WithStateTrace(logf func(mess string, args ...interface{})) StateOption {
	return stateTraceOption(logf)
}

type diagOption func(line string)

func (f diagOption) apply(st *State) { st.diag = f }

// WithDiag routes the specified "side channel" — symbolic stacks at RET and
// Call expressions as they are built — to the given sink, one line per
// call. The driver is the only place that wires this to the real diagnostic
// stream (standard out); the core just calls the hook.
func WithDiag(sink func(line string)) StateOption {
	return diagOption(sink)
}

type paramSeedOption int

func (n paramSeedOption) apply(st *State) {
	for i := 0; i < int(n); i++ {
		st.Stack.Push(NewIdentifier(fmt.Sprintf("param_%d", i)))
	}
}

// WithParamSeed pre-seeds a state's stack with n identifiers
// param_0 .. param_{n-1}, per the "Entry convention" of §4.2, making them
// consumable by the function's first instructions.
func WithParamSeed(n int) StateOption {
	return paramSeedOption(n)
}

// ManagerOption configures a StateManager at construction.
type ManagerOption interface{ apply(mgr *StateManager) }

type managerTraceOption func(mess string, args ...interface{})

func (f managerTraceOption) apply(mgr *StateManager) { mgr.traceFn = f }

// WithManagerTrace routes every state the manager spawns through the same
// trace sink as WithStateTrace.
func WithManagerTrace(logf func(mess string, args ...interface{})) ManagerOption {
	return managerTraceOption(logf)
}

type managerDiagOption func(line string)

func (f managerDiagOption) apply(mgr *StateManager) { mgr.diag = f }

// WithManagerDiag routes every state the manager spawns through the same
// diagnostic sink as WithDiag.
func WithManagerDiag(sink func(line string)) ManagerOption {
	return managerDiagOption(sink)
}

type managerEntryOptions struct{ opts []StateOption }

func (o managerEntryOptions) apply(mgr *StateManager) {
	mgr.entryOpts = append(mgr.entryOpts, o.opts...)
}

// WithEntryOptions applies the given StateOptions to the manager's initial
// entry state only (e.g. WithParamSeed).
func WithEntryOptions(opts ...StateOption) ManagerOption {
	return managerEntryOptions{opts}
}
