// Package driver runs the tokenizer/parser/evaluator pipeline over a whole
// buffer of source lines, threading a shared Context top-to-bottom and
// producing one Outcome per line. It never halts on a line's error —
// the buffer keeps evaluating, the same non-halting shape as the teacher
// engine's RunUntilQuit loop continuing past a failed command.
package driver

import (
	"strings"

	"github.com/google/uuid"

	"github.com/crabculator/crabculator/internal/diagnostics"
	"github.com/crabculator/crabculator/internal/evaluator"
	"github.com/crabculator/crabculator/internal/lexer"
	"github.com/crabculator/crabculator/internal/parser"
)

// Kind identifies which variant of Outcome a line produced.
type Kind int

const (
	Empty Kind = iota
	Value
	Assigned
	Cleared
	Error
)

// Outcome is the per-line result of one evaluation pass.
type Outcome struct {
	Kind  Kind
	Name  string // set only when Kind == Assigned
	Value float64
	Err   *diagnostics.Error // set only when Kind == Error
}

// clearCommand is the supplemented bare-word line that resets the context
// to its constant-only baseline, grounded on the teacher engine's
// special-cased QUIT verb inside an otherwise expression-oriented REPL
// loop (engine.go's RunUntilQuit).
const clearCommand = "clear"

// Run evaluates every line of buf in order against ctx, mutating ctx as
// assignments succeed, and returns one Outcome per line. Re-invoking Run on
// an unchanged (buf, ctx-at-start) pair always yields identical outcomes
// and an identically-valued final context.
func Run(buf []string, ctx *evaluator.Context) []Outcome {
	outcomes := make([]Outcome, len(buf))
	for i, line := range buf {
		outcomes[i] = runLine(line, ctx)
	}
	return outcomes
}

// Pass bundles a Run invocation with a correlation id, for callers (such as
// the top-level engine) that want to tie a buffer-wide re-evaluation to a
// single structured log entry.
type Pass struct {
	ID       uuid.UUID
	Outcomes []Outcome
}

// RunPass is Run with a generated correlation id attached to the result,
// mirroring the teacher's use of google/uuid for per-session identifiers.
func RunPass(buf []string, ctx *evaluator.Context) Pass {
	return Pass{ID: uuid.New(), Outcomes: Run(buf, ctx)}
}

func runLine(line string, ctx *evaluator.Context) Outcome {
	if strings.TrimSpace(line) == clearCommand {
		ctx.Clear()
		return Outcome{Kind: Cleared}
	}

	tokens, lexErr := lexer.Tokenize(line)
	if lexErr != nil {
		return Outcome{Kind: Error, Err: lexErr}
	}

	parsed, parseErr := parser.Parse(tokens, line)
	if parseErr != nil {
		return Outcome{Kind: Error, Err: parseErr}
	}

	switch parsed.Kind {
	case parser.Empty:
		return Outcome{Kind: Empty}

	case parser.Assignment:
		v, evalErr := evaluator.Eval(parsed.Expr, ctx)
		if evalErr != nil {
			return Outcome{Kind: Error, Err: evalErr}
		}
		ctx.Set(parsed.Name, v)
		return Outcome{Kind: Assigned, Name: parsed.Name, Value: v}

	case parser.Expression:
		v, evalErr := evaluator.Eval(parsed.Expr, ctx)
		if evalErr != nil {
			return Outcome{Kind: Error, Err: evalErr}
		}
		return Outcome{Kind: Value, Value: v}
	}

	panic("driver: unhandled line classification")
}
