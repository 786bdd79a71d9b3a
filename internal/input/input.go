// Package input reads buffer lines for the demo CLI, adapted from the
// teacher's dual-mode command reader (internal/input/input.go): a
// DirectLineReader for piped/non-tty input and an InteractiveLineReader
// built on chzyer/readline for a real terminal session. Unlike the
// teacher's CommandReader, a blank line here is ordinary buffer content
// (it evaluates to an Empty outcome), so neither reader skips blank input.
package input

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// LineReader reads one buffer line at a time until the input source is
// exhausted (io.EOF) or some other error occurs.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectLineReader reads lines from any io.Reader with no escape-sequence
// handling. Used for piped stdin and for tests.
type DirectLineReader struct {
	r *bufio.Reader
}

// InteractiveLineReader reads lines from a real terminal using readline,
// giving history and line editing for an interactive session.
type InteractiveLineReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader wraps r in a buffered line reader. The returned reader
// holds no OS resources beyond r itself, but callers should still call
// Close for symmetry with InteractiveLineReader.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{r: bufio.NewReader(r)}
}

// NewInteractiveReader initializes readline on stdin/stdout. The returned
// reader must have Close called on it before the process exits.
func NewInteractiveReader() (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "crab> "})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveLineReader{rl: rl, prompt: "crab> "}, nil
}

// Close releases r's resources. DirectLineReader owns none of its own, so
// this is a no-op, matching the teacher's DirectCommandReader.
func (r *DirectLineReader) Close() error { return nil }

// Close tears down the underlying readline instance.
func (r *InteractiveLineReader) Close() error { return r.rl.Close() }

// ReadLine reads the next line, stripped of its trailing newline. At end of
// input it returns io.EOF.
func (r *DirectLineReader) ReadLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return trimNewline(line), nil
}

// ReadLine reads the next line via readline. At end of input (Ctrl-D) it
// returns io.EOF.
func (r *InteractiveLineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", err
		}
		return "", io.EOF
	}
	return line, nil
}

// SetPrompt updates the interactive prompt, e.g. to show the current line
// number.
func (r *InteractiveLineReader) SetPrompt(p string) {
	r.prompt = p
	r.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt text.
func (r *InteractiveLineReader) GetPrompt() string {
	return r.prompt
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
