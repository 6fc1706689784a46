package ui

import (
	"os"

	"golang.org/x/term"
)

// TerminalSecretReader reads masked input from a terminal file descriptor.
type TerminalSecretReader struct {
	fd         int
	interrupts *InterruptHandler
}

// NewTerminalSecretReader returns a reader for file, or false when file is
// not a terminal.
func NewTerminalSecretReader(file *os.File, interrupts *InterruptHandler) (*TerminalSecretReader, bool) {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return nil, false
	}
	return &TerminalSecretReader{fd: fd, interrupts: interrupts}, true
}

// ReadSecret disables echo for the duration of one line. The terminal state
// is restored even when the read is cut short by an interrupt.
func (r *TerminalSecretReader) ReadSecret() (string, error) {
	state, err := term.GetState(r.fd)
	if err != nil {
		return "", err
	}
	if r.interrupts != nil {
		release := r.interrupts.OnInterrupt(func() {
			_ = term.Restore(r.fd, state)
		})
		defer release()
	}
	secret, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
