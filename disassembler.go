package main

import (
	"strings"
	"unicode"
)

// Disassembler is the single-pass byte-stream decoder of §4.1. It converts
// a rune stream into a list of Functions populated with Instructions, and
// supports an initial pass plus any number of snippet passes that share a
// monotonically advancing base address space.
type Disassembler struct {
	runes       []rune
	baseAddress int
	pos         int

	functions     []*Function
	functionsByID map[string]*Function
	current       *Function
	lastFunction  *Function

	delimiter rune
	traceFn   func(mess string, args ...interface{})
}

// NewDisassembler builds a Disassembler over the given initial bytecode.
// Call Disassemble to run the initial pass.
func NewDisassembler(bytecode string, opts ...DisassemblerOption) *Disassembler {
	d := &Disassembler{
		runes:         []rune(bytecode),
		delimiter:     ';',
		functionsByID: make(map[string]*Function),
	}
	for _, opt := range opts {
		opt.apply(d)
	}
	return d
}

// Functions returns the recovered functions in insertion order.
func (d *Disassembler) Functions() []*Function { return d.functions }

// Disassembly renders every recovered function's textual disassembly,
// function blocks separated by a single blank line, per §4.1.
func (d *Disassembler) Disassembly() string {
	var sb strings.Builder
	for i, fn := range d.functions {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fn.Disassembly())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Disassemble runs the decoder over the initial bytecode given to
// NewDisassembler.
func (d *Disassembler) Disassemble() error {
	return d.run()
}

// DisassembleSnippet begins a new function named name at the current
// address, then replaces the bytecode being scanned with snippet and
// continues decoding from a fresh position 0, with base_address advanced
// by however far the previous pass got. This is how the driver appends the
// "algorithm" buffer into the same function set as the primary bytecode,
// sharing one flat address space across both passes.
func (d *Disassembler) DisassembleSnippet(name, snippet string) error {
	addr := d.baseAddress + d.pos
	fn := NewFunction(addr, name)
	if err := d.registerFunction(fn); err != nil {
		return err
	}
	d.current = fn
	d.lastFunction = fn

	d.baseAddress += d.pos
	d.runes = []rune(snippet)
	d.pos = 0

	return d.run()
}

func (d *Disassembler) registerFunction(fn *Function) error {
	if _, exists := d.functionsByID[fn.ID]; exists {
		return DuplicateFunctionError{ID: fn.ID}
	}
	d.functionsByID[fn.ID] = fn
	d.functions = append(d.functions, fn)
	return nil
}

func (d *Disassembler) run() error {
	for d.pos < len(d.runes) {
		if err := d.decodeOne(); err != nil {
			return err
		}
	}
	return nil
}

// decodeOne decodes the single character at the current position,
// advancing pos past it, per the dispatch table in §4.1.
func (d *Disassembler) decodeOne() error {
	start := d.pos
	c := d.runes[start]
	d.pos++
	addr := d.baseAddress + start

	switch {
	case c == d.delimiter:
		if d.current != nil {
			instr := NewInstruction(addr, RET)
			d.current.AddInstruction(instr)
			d.trace("%v", instr)
			d.current = nil
		}
		return nil

	case c == ':':
		id := d.readFunctionID()
		fn := NewFunction(addr, id)
		if err := d.registerFunction(fn); err != nil {
			return err
		}
		d.current = fn
		d.lastFunction = fn
		return nil

	case c == '^':
		return d.decodeCall(addr)

	case isReservedStoreRune(c) && d.peekEquals():
		return UnsupportedStoreError{Pos: start, Name: c}

	case unicode.IsLetter(c) && c != 'm' && c != 'M':
		return d.emit(NewInstruction(addr, PUSH, NewGlobalVariableOperand(c)))

	case unicode.IsDigit(c) && c != '0' && c != '1':
		return d.emit(NewInstruction(addr, PUSH, NewParameterOperand(int(c)-50)))

	case c == '+':
		return d.emit(NewInstruction(addr, ADD))
	case c == '-':
		return d.emit(NewInstruction(addr, SUB))
	case c == '*':
		return d.emit(NewInstruction(addr, MUL))
	case c == '/':
		return d.emit(NewInstruction(addr, DIV))
	case c == 'm':
		return d.emit(NewInstruction(addr, MIN))
	case c == 'M':
		return d.emit(NewInstruction(addr, MAX))
	case c == '0':
		return d.emit(NewInstruction(addr, PUSH, NewLiteralOperand(LiteralZero)))
	case c == '1':
		return d.emit(NewInstruction(addr, PUSH, NewLiteralOperand(LiteralInfinity)))
	case c == '\'':
		return d.emit(NewInstruction(addr, FRAC))
	case c == '!':
		return d.emit(NewInstruction(addr, NEG))
	case c == '.':
		return d.emit(NewInstruction(addr, POP))
	default:
		return nil // silently ignored
	}
}

// readFunctionID reads characters up to (not including) the next ':',
// consuming that closing ':' itself before returning.
func (d *Disassembler) readFunctionID() string {
	var sb strings.Builder
	for d.pos < len(d.runes) && d.runes[d.pos] != ':' {
		sb.WriteRune(d.runes[d.pos])
		d.pos++
	}
	if d.pos < len(d.runes) {
		d.pos++
	}
	return sb.String()
}

func (d *Disassembler) peekEquals() bool {
	return d.pos < len(d.runes) && d.runes[d.pos] == '='
}

// decodeCall handles "^": it peeks (without consuming) up to a 10-rune
// lookahead window, resolves the first function whose id prefixes that
// window, and emits a CALL into whatever function is current — falling
// back to the most recently current function if none is current right
// now, per the specification's O1 note. The id runes are deliberately not
// consumed here; they are reinterpreted on subsequent iterations.
func (d *Disassembler) decodeCall(addr int) error {
	window := d.peekWindow(10)
	target := d.findCallee(window)
	if target == nil {
		return UnknownCalleeError{Pos: addr, Window: window}
	}

	into := d.current
	if into == nil {
		into = d.lastFunction
	}
	if into == nil {
		return NoCurrentFunctionError{Pos: addr}
	}

	instr := NewInstruction(addr, CALL, target.Reference())
	into.AddInstruction(instr)
	d.trace("%v", instr)
	return nil
}

func (d *Disassembler) peekWindow(n int) string {
	end := d.pos + n
	if end > len(d.runes) {
		end = len(d.runes)
	}
	return string(d.runes[d.pos:end])
}

func (d *Disassembler) findCallee(window string) *Function {
	for _, fn := range d.functions {
		if fn.ID != "" && strings.HasPrefix(window, fn.ID) {
			return fn
		}
	}
	return nil
}

func (d *Disassembler) emit(instr Instruction) error {
	if d.current == nil {
		return NoCurrentFunctionError{Pos: instr.Address}
	}
	d.current.AddInstruction(instr)
	d.trace("%v", instr)
	return nil
}

func (d *Disassembler) trace(mess string, args ...interface{}) {
	if d.traceFn != nil {
		d.traceFn(mess, args...)
	}
}

func isReservedStoreRune(c rune) bool {
	return (unicode.IsLetter(c) || unicode.IsDigit(c)) && c != 'm' && c != 'M' && c != '0' && c != '1'
}
