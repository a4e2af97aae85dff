package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl-C or Ctrl-D at a prompt
var ErrInterrupted = errors.New("interrupted")

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// fdReader is an input with a file descriptor, such as *os.File
type fdReader interface {
	io.Reader
	Fd() uintptr
}

// KeyReader reads one character per call. When the input is a terminal it is
// put in raw mode for the duration of each read, so a keystroke is enough.
type KeyReader struct {
	fd  int
	raw bool
	buf *bufio.Reader
}

// NewKeyReader wraps in, usually os.Stdin
func NewKeyReader(in fdReader) *KeyReader {
	fd := int(in.Fd())
	return &KeyReader{
		fd:  fd,
		raw: term.IsTerminal(fd),
		buf: bufio.NewReader(in),
	}
}

// ReadRune implements io.RuneReader
func (k *KeyReader) ReadRune() (rune, int, error) {
	if k.raw {
		state, err := term.MakeRaw(k.fd)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to set raw mode: %w", err)
		}
		defer term.Restore(k.fd, state)
	}

	r, size, err := k.buf.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	if r == keyCtrlC || r == keyCtrlD {
		return 0, 0, ErrInterrupted
	}
	return r, size, nil
}

// IsTerminal reports whether w writes to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
