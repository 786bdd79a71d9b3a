// Package diagnostics defines the error kinds that can be raised while
// tokenizing, parsing, or evaluating a single line, each carrying the
// source span a terminal UI would underline.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/crabculator/crabculator/internal/token"
)

// Kind identifies the class of failure, per spec.md §7.
type Kind string

const (
	// Tokenizer errors.
	UnexpectedCharacter Kind = "UNEXPECTED_CHARACTER"
	InvalidBaseLiteral  Kind = "INVALID_BASE_LITERAL"

	// Parser errors.
	UnexpectedToken          Kind = "UNEXPECTED_TOKEN"
	UnmatchedParen           Kind = "UNMATCHED_PAREN"
	MissingOperand           Kind = "MISSING_OPERAND"
	InvalidAssignmentTarget  Kind = "INVALID_ASSIGNMENT_TARGET"

	// Evaluator errors.
	UndefinedVariable    Kind = "UNDEFINED_VARIABLE"
	UnknownFunction      Kind = "UNKNOWN_FUNCTION"
	ArityError           Kind = "ARITY_ERROR"
	DivisionByZero       Kind = "DIVISION_BY_ZERO"
	FactorialDomain      Kind = "FACTORIAL_DOMAIN"
	CombinatoricsDomain  Kind = "COMBINATORICS_DOMAIN"
)

var templates = map[Kind]string{
	UnexpectedCharacter:     "unexpected character: %q",
	InvalidBaseLiteral:      "invalid number literal: %q",
	UnexpectedToken:         "unexpected token: %s",
	UnmatchedParen:          "expected ')'",
	MissingOperand:          "expected an operand",
	InvalidAssignmentTarget: "invalid assignment target",
	UndefinedVariable:       "unknown variable: %s",
	UnknownFunction:         "unknown function: %s",
	ArityError:              "%s expects %d argument(s), got %d",
	DivisionByZero:          "division by zero",
	FactorialDomain:         "factorial is only defined for integers 0 to 170",
	CombinatoricsDomain:     "invalid choice of k for n",
}

// Error is a typed, span-carrying failure produced by one of the tokenizer,
// parser, or evaluator. It is never thrown across line boundaries: the
// driver always captures it in that line's outcome and moves on.
type Error struct {
	Kind Kind
	Span token.Span
	Args []interface{}
}

// New builds an Error of the given kind at the given span.
func New(kind Kind, span token.Span, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Args: args}
}

func (e *Error) Error() string {
	template, ok := templates[e.Kind]
	if !ok {
		return fmt.Sprintf("unknown error kind: %s", e.Kind)
	}
	return fmt.Sprintf(template, e.Args...)
}

// Caret renders the offending line with a line of carets under the error's
// span, the same presentation tunascript's SyntaxError.SourceLineWithCursor
// produces for its own span-based errors. This is the textual form a
// terminal UI would reveal once its debounce has elapsed (spec.md §6); the
// core never calls this itself.
func (e *Error) Caret(line string) string {
	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')

	start, end := e.Span.Start, e.Span.End
	if start < 0 {
		start = 0
	}
	if end > len(line) {
		end = len(line)
	}
	if end <= start {
		end = start + 1
	}

	for i := 0; i < start; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	for i := start; i < end; i++ {
		b.WriteByte('^')
	}
	return b.String()
}

// FullMessage combines Error() with the Caret rendering, for a demo CLI that
// wants both in one string.
func (e *Error) FullMessage(line string) string {
	return e.Caret(line) + "\n" + e.Error()
}
