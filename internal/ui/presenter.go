package ui

import (
	"fmt"
	"io"
	"os"
)

const messagePrefix = "> "

// Presenter writes leveled messages and terminates the process on fatal
// conditions. One instance is built per process.
type Presenter struct {
	palette Palette
	out     io.Writer
	errOut  io.Writer
	exit    func(int)
}

// PresenterOption customizes a Presenter.
type PresenterOption func(*Presenter)

// WithOutput sets the sinks for status messages and error messages.
func WithOutput(out, errOut io.Writer) PresenterOption {
	return func(p *Presenter) {
		p.out = out
		p.errOut = errOut
	}
}

// WithPalette replaces the default colored palette.
func WithPalette(palette Palette) PresenterOption {
	return func(p *Presenter) {
		p.palette = palette
	}
}

// WithExit replaces os.Exit, mostly for tests.
func WithExit(exit func(int)) PresenterOption {
	return func(p *Presenter) {
		p.exit = exit
	}
}

// NewPresenter creates a Presenter writing to stdout and stderr.
func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{
		palette: DefaultPalette(),
		out:     os.Stdout,
		errOut:  os.Stderr,
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Info prints an informational message.
func (p *Presenter) Info(msg string) {
	p.write(p.out, p.palette.Info.Sprint(messagePrefix+msg))
}

// Success prints a completion message.
func (p *Presenter) Success(msg string) {
	p.write(p.out, p.palette.Success.Sprint(messagePrefix+msg))
}

// Warn prints a warning.
func (p *Presenter) Warn(msg string) {
	p.write(p.out, p.palette.Warn.Sprint(messagePrefix+msg))
}

// Error prints an error on the error sink.
func (p *Presenter) Error(msg string) {
	p.write(p.errOut, p.palette.Error.Sprint(messagePrefix+msg))
}

// Print writes text as is, used for listings such as the short status.
func (p *Presenter) Print(text string) {
	p.write(p.out, text)
}

// Fatal prints msg as an error and exits with code 1.
func (p *Presenter) Fatal(msg string) {
	p.FatalWithCode(1, msg)
}

// FatalWithCode prints msg as an error and exits with code.
func (p *Presenter) FatalWithCode(code int, msg string) {
	p.Error(msg)
	p.exit(code)
}

// Exit terminates the process without printing anything.
func (p *Presenter) Exit(code int) {
	p.exit(code)
}

// Interrupted ends the process after the user aborted a prompt.
func (p *Presenter) Interrupted() {
	_, _ = fmt.Fprintln(p.out)
	p.exit(1)
}

func (p *Presenter) write(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, text)
}
