package main

import (
	"fmt"
	"io"
	"os"

	"symdis/internal/flushio"
	"symdis/internal/logio"
)

const (
	bytecodePath = "input/bytecode.txt"
	algoPath     = "input/algo.txt"
	outputPath   = "output/disassembly.txt"

	algoSnippetName = "algorithm"
)

// Driver is the top-level orchestrator of §4's component 9: it feeds the
// two bytecode buffers to the Disassembler, writes the textual disassembly,
// then runs a symbolic executor per recovered function. Reading bytecode
// from storage, writing the disassembly to storage, and logging are all
// named out of the core's scope in §1 — Driver is exactly that external
// seam, and the only place in this repository that touches a file or
// stdout directly.
type Driver struct {
	// Logf receives one formatted line per decoded instruction and per
	// notable symbolic-execution event (nil discards them).
	Logf func(mess string, args ...interface{})
	// Diag receives the side channel required by §6: symbolic stacks at
	// RET and Call expressions as they are built, one per line. Defaults
	// to os.Stdout.
	Diag io.Writer
}

// Run reads the two fixed input files, disassembles them into one shared
// function set, writes the disassembly, and symbolically executes every
// recovered function in insertion order.
func (drv *Driver) Run() error {
	bytecode, err := os.ReadFile(bytecodePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", bytecodePath, err)
	}
	algo, err := os.ReadFile(algoPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", algoPath, err)
	}

	dis := NewDisassembler(string(bytecode), WithDisassemblerTrace(drv.logf))
	if err := dis.Disassemble(); err != nil {
		return fmt.Errorf("disassembling %s: %w", bytecodePath, err)
	}
	if err := dis.DisassembleSnippet(algoSnippetName, string(algo)); err != nil {
		return fmt.Errorf("disassembling %s: %w", algoPath, err)
	}

	if err := drv.writeDisassembly(dis); err != nil {
		return err
	}

	diagOut := flushio.NewWriteFlusher(drv.diagWriter())
	defer diagOut.Flush()
	diagLine := func(line string) { fmt.Fprintln(diagOut, line) }

	for _, fn := range dis.Functions() {
		diagLine(fmt.Sprintf("*** Symbolically executing %s ***", fn.FormattedName))

		mgr := NewStateManager(fn.Instructions,
			WithManagerTrace(drv.logf),
			WithManagerDiag(diagLine),
			WithEntryOptions(WithParamSeed(fn.NumParams)),
		)
		mgr.Explore()

		for _, st := range mgr.States() {
			if st.Status == StateErrored {
				drv.logf("function %s: state %d errored: %v", fn.FormattedName, st.ID, st.Err)
			}
		}
	}

	return nil
}

// writeDisassembly persists the recovered disassembly to outputPath and
// mirrors the same text, line by line, through the trace log: the file
// writer and the logio.Writer adapting drv.logf into an io.Writer are
// combined into a single flushio.WriteFlushers, so one write reaches both
// sinks and one Flush drains both.
func (drv *Driver) writeDisassembly(dis *Disassembler) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	fileWF := flushio.NewWriteFlusher(f)
	traceWF := flushio.NewWriteFlusher(&logio.Writer{Logf: drv.logf})
	wf := flushio.WriteFlushers(fileWF, traceWF)

	if _, err := io.WriteString(wf, dis.Disassembly()); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return wf.Flush()
}

func (drv *Driver) logf(mess string, args ...interface{}) {
	if drv.Logf != nil {
		drv.Logf(mess, args...)
	}
}

func (drv *Driver) diagWriter() io.Writer {
	if drv.Diag != nil {
		return drv.Diag
	}
	return os.Stdout
}
