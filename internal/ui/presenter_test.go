package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type exitCode int

func panicExit(code int) { panic(exitCode(code)) }

func newTestPresenter(palette Palette) (*Presenter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return NewPresenter(WithOutput(out, errOut), WithPalette(palette), WithExit(panicExit)), out, errOut
}

func TestPresenter_Levels(t *testing.T) {
	t.Run("Should prefix status messages and keep them on stdout", func(t *testing.T) {
		p, out, errOut := newTestPresenter(PlainPalette())
		p.Info("Checking for pending changes")
		p.Success("done")
		p.Warn("careful")
		assert.Equal(t, "> Checking for pending changes\n> done\n> careful\n", out.String())
		assert.Empty(t, errOut.String())
	})
	t.Run("Should write errors to stderr", func(t *testing.T) {
		p, out, errOut := newTestPresenter(PlainPalette())
		p.Error("boom")
		assert.Empty(t, out.String())
		assert.Equal(t, "> boom\n", errOut.String())
	})
	t.Run("Should wrap messages in literal escape sequences", func(t *testing.T) {
		p, out, errOut := newTestPresenter(DefaultPalette())
		p.Info("info")
		p.Success("ok")
		p.Warn("warn")
		p.Error("bad")
		assert.Contains(t, out.String(), "\x1b[34;3m> info\x1b[0m")
		assert.Contains(t, out.String(), "\x1b[32m> ok\x1b[0m")
		assert.Contains(t, out.String(), "\x1b[33m> warn\x1b[0m")
		assert.Contains(t, errOut.String(), "\x1b[31;1m> bad\x1b[0m")
	})
}

func TestPresenter_Fatal(t *testing.T) {
	t.Run("Should print the error and exit with code 1", func(t *testing.T) {
		p, _, errOut := newTestPresenter(PlainPalette())
		assert.PanicsWithValue(t, exitCode(1), func() { p.Fatal("Could not checkout master.") })
		assert.Equal(t, "> Could not checkout master.\n", errOut.String())
	})
	t.Run("Should honor a caller supplied code", func(t *testing.T) {
		p, _, _ := newTestPresenter(PlainPalette())
		assert.PanicsWithValue(t, exitCode(3), func() { p.FatalWithCode(3, "nope") })
	})
	t.Run("Should exit quietly when interrupted", func(t *testing.T) {
		p, out, errOut := newTestPresenter(PlainPalette())
		assert.PanicsWithValue(t, exitCode(1), p.Interrupted)
		assert.Equal(t, "\n", out.String())
		assert.Empty(t, errOut.String())
	})
}
