package interactive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ChoiceReader is how a Driver reads one REPL command at a time: a variable
// index, "u" to undo, or "q" to quit (spec.md §4.6). Implementations block
// until a line with non-space content is available.
type ChoiceReader interface {
	ReadChoice() (string, error)
	Close() error
}

// DirectChoiceReader reads choices from a plain io.Reader — a piped batch
// script, a test fixture, or any stream that isn't a live terminal. It does
// not sanitize escape sequences, since a piped source has none to sanitize.
//
// DirectChoiceReader should not be constructed directly; use
// [NewDirectChoiceReader].
type DirectChoiceReader struct {
	r *bufio.Reader
}

// NewDirectChoiceReader wraps r in a buffered DirectChoiceReader. The
// returned ChoiceReader must have Close called on it before disposal.
func NewDirectChoiceReader(r io.Reader) *DirectChoiceReader {
	return &DirectChoiceReader{r: bufio.NewReader(r)}
}

// Close is a no-op: DirectChoiceReader owns no resources of its own, but
// implements Close so callers can treat every ChoiceReader uniformly.
func (dcr *DirectChoiceReader) Close() error {
	return nil
}

// ReadChoice reads the next non-blank line. If at end of input it returns
// io.EOF; any other read error is returned as-is.
func (dcr *DirectChoiceReader) ReadChoice() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadlineChoiceReader reads choices from stdin through a Go implementation
// of GNU Readline, giving the interactive driver line editing and command
// history. Use this only when directly connected to a TTY.
//
// ReadlineChoiceReader should not be constructed directly; use
// [NewReadlineChoiceReader].
type ReadlineChoiceReader struct {
	rl *readline.Instance
}

// NewReadlineChoiceReader initializes readline with the driver's "> " choice
// prompt. The returned ChoiceReader must have Close called on it before
// disposal to tear down readline's terminal state.
func NewReadlineChoiceReader() (*ReadlineChoiceReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &ReadlineChoiceReader{rl: rl}, nil
}

// Close tears down readline's terminal state.
func (rcr *ReadlineChoiceReader) Close() error {
	return rcr.rl.Close()
}

// ReadChoice reads the next non-blank line. If at end of input it returns
// io.EOF; any other read error is returned as-is.
func (rcr *ReadlineChoiceReader) ReadChoice() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = rcr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}

	return line, nil
}
