package main

// Mnemonic is the closed set of opcodes the decoder can emit.
type Mnemonic int

const (
	PUSH Mnemonic = iota
	POP
	RET
	CALL
	ADD
	SUB
	MUL
	DIV
	MIN
	MAX
	FRAC
	NEG
)

var mnemonicNames = [...]string{
	PUSH: "push",
	POP:  "pop",
	RET:  "ret",
	CALL: "call",
	ADD:  "add",
	SUB:  "sub",
	MUL:  "mul",
	DIV:  "div",
	MIN:  "min",
	MAX:  "max",
	FRAC: "frac",
	NEG:  "neg",
}

// String returns the lowercase mnemonic name.
func (m Mnemonic) String() string {
	if int(m) >= 0 && int(m) < len(mnemonicNames) {
		return mnemonicNames[m]
	}
	return "<invalid mnemonic>"
}
