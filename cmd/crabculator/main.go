/*
Crabculator starts an interactive terminal calculator session.

It reads lines from stdin, one at a time, appending each to an in-memory
buffer and re-evaluating the whole buffer after every line, printing each
line's result or error. Enter "quit" to end the session; the buffer is
saved to ~/.crabculator/state.txt on exit and restored on the next run.

Usage:

	crabculator

The binary takes no flags, no positional arguments, and no environment
variables: every run behaves identically modulo the saved buffer and the
optional ~/.crabculator/config.toml.
*/
package main

import (
	"fmt"
	"os"

	"github.com/crabculator/crabculator"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates a failure to initialize the engine, e.g. the
	// terminal could not be set up for interactive input.
	ExitInitError
)

var returnCode = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	eng, initErr := crabculator.New(os.Stdin, os.Stdout, false)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
}
