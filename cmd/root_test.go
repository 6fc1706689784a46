package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("Should register the workflow commands", func(t *testing.T) {
		root := newRootCmd(&application{})
		names := make([]string, 0)
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Subset(t, names, []string{"sync-master", "pr", "release", "login", "version"})
	})
	t.Run("Should expose the persistent flags", func(t *testing.T) {
		root := newRootCmd(&application{})
		assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
		assert.NotNil(t, root.PersistentFlags().Lookup("no-color"))
	})
	t.Run("Should print version information without loading configuration", func(t *testing.T) {
		app := &application{}
		root := newRootCmd(app)
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs([]string{"version"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Version:\t")
		assert.Contains(t, out.String(), "Go:\t")
		assert.Nil(t, app.container)
	})
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, "fallback", safeValue("  ", "fallback"))
	assert.Equal(t, "v1.0.0", safeValue(" v1.0.0 ", "fallback"))
}
