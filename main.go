// Command symdis disassembles a stack-oriented bytecode program and
// symbolically executes every function it recovers.
//
// It reads two fixed input files, input/bytecode.txt and input/algo.txt,
// writes the recovered disassembly to output/disassembly.txt, and prints a
// symbolic trace of each function's effect to standard out. There are no
// flags: the paths are fixed, per the specification's external interface.
package main

import (
	"os"

	"symdis/internal/logio"
	"symdis/internal/panicerr"
)

func main() {
	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	drv := &Driver{
		Logf: log.Leveledf("TRACE"),
		Diag: os.Stdout,
	}

	err := panicerr.Recover("disassemble", func() error {
		return drv.Run()
	})
	log.ErrorIf(err)
}
