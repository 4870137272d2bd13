// Package input contains line readers used to get analyzer session input
// from CLI or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectLineReader reads session lines from any generic input stream
// directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectLineReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader reads session lines from stdin using a go
// implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of line history.
// This should in general probably only be used when directly connecting to a
// TTY for input.
//
// InteractiveLineReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// Create a new DirectLineReader and initialize a buffered reader on the
// provided reader. The returned reader must have Close() called on it before
// disposal for consistency with InteractiveLineReader.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{
		r: bufio.NewReader(r),
	}
}

// Create a new InteractiveLineReader and initialize readline. The returned
// InteractiveLineReader must have Close() called on it before disposal to
// properly teardown readline resources.
func NewInteractiveReader() (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{
		rl:     rl,
		prompt: "> ",
	}, nil
}

// Close cleans up resources associated with the DirectLineReader.
func (dlr *DirectLineReader) Close() error {
	// nothing to release today, but callers should treat the reader as
	// though it must have Close called on it

	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveLineReader.
func (ilr *InteractiveLineReader) Close() error {
	return ilr.rl.Close()
}

// ReadLine reads the next line from the stream. By default this function
// blocks until a line containing non-space characters is read; call
// AllowBlank to get blank lines as they come in instead.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dlr *DirectLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dlr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" && dlr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadLine reads the next line from stdin. By default this function blocks
// until a line containing non-space characters is read; call AllowBlank to
// get blank lines as they come in instead.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ilr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" && ilr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank lines are passed through. By default they
// are not.
func (dlr *DirectLineReader) AllowBlank(allow bool) {
	dlr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are passed through. By default they
// are not.
func (ilr *InteractiveLineReader) AllowBlank(allow bool) {
	ilr.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (ilr *InteractiveLineReader) SetPrompt(p string) {
	ilr.prompt = p
	ilr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ilr *InteractiveLineReader) GetPrompt() string {
	return ilr.prompt
}
