// Package crabculator contains a CLI-driven engine that reads buffer lines
// from an input stream and re-evaluates the whole buffer after each one,
// continuing until the user quits. It is the top-level wiring the spec
// calls out of scope (the TUI, the text buffer and cursor model): this is
// a minimal line-oriented demo harness around the core, not that TUI.
package crabculator

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/crabculator/crabculator/internal/config"
	"github.com/crabculator/crabculator/internal/driver"
	"github.com/crabculator/crabculator/internal/evaluator"
	"github.com/crabculator/crabculator/internal/format"
	"github.com/crabculator/crabculator/internal/input"
	"github.com/crabculator/crabculator/internal/persistence"
)

// Engine contains the things needed to run a calculator session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	buffer      []string
	ctx         *evaluator.Context
	in          input.LineReader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

const consoleOutputWidth = 80

// quitCommand ends the session without appending a buffer line, the same
// special-cased-verb shape as the teacher engine's QUIT handling in
// RunUntilQuit.
const quitCommand = "quit"

// New creates a new engine ready to operate on the given input and output
// streams. If inputStream is nil, stdin is used; if outputStream is nil,
// stdout is used. The saved buffer (if any) is loaded and the driver is run
// once over it to rebuild the variable context, per spec.md §6's warm-start
// contract.
func New(inputStream io.Reader, outputStream io.Writer, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		// piped or redirected stdin is read with the direct reader
		if fi, statErr := os.Stdin.Stat(); statErr != nil || fi.Mode()&os.ModeCharDevice == 0 {
			useReadline = false
		}
	}
	var err error
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	buf, err := persistence.Load()
	if err != nil {
		return nil, fmt.Errorf("loading saved buffer: %w", err)
	}
	eng.buffer = buf
	log.Printf("crabculator: restored %d buffer line(s)", len(buf))

	cfg := config.Load()
	eng.ctx = evaluator.NewContext()
	cfg.ApplyConstants(eng.ctx.Set)
	driver.Run(eng.buffer, eng.ctx)

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources, and persists the current buffer.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}
	if err := persistence.Save(eng.buffer); err != nil {
		return fmt.Errorf("saving buffer: %w", err)
	}
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}
	return nil
}

// RunUntilQuit reads lines from the input stream, appending each to the
// buffer and re-running the driver over the whole buffer, printing the
// resulting outcomes, until the user enters "quit" or the input stream is
// exhausted.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Crabculator\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===========\n\n"
	if err := eng.writeFlush(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() { eng.running = false }()

	for eng.running {
		line, err := eng.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read input line: %w", err)
		}

		if strings.TrimSpace(line) == quitCommand {
			eng.running = false
			break
		}

		eng.buffer = append(eng.buffer, line)
		pass := driver.RunPass(eng.buffer, eng.ctx)
		log.Printf("crabculator: pass %s evaluated %d line(s)", pass.ID, len(pass.Outcomes))
		if err := eng.render(pass.Outcomes); err != nil {
			return err
		}
	}

	return eng.writeFlush("Goodbye\n")
}

func (eng *Engine) render(outcomes []driver.Outcome) error {
	var b strings.Builder
	for i, o := range outcomes {
		line := eng.buffer[i]
		switch o.Kind {
		case driver.Empty, driver.Cleared:
			// nothing to render
		case driver.Value:
			fmt.Fprintf(&b, "%s\n", format.Value(o.Value))
		case driver.Assigned:
			fmt.Fprintf(&b, "%s = %s\n", o.Name, format.Value(o.Value))
		case driver.Error:
			msg := rosed.Edit(o.Err.FullMessage(line)).Wrap(consoleOutputWidth).String()
			fmt.Fprintf(&b, "%s\n", msg)
		}
	}
	return eng.writeFlush(b.String())
}

func (eng *Engine) writeFlush(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
