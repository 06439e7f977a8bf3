//go:build unit

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should register every subcommand with its flags", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()

		// when
		addSubcommands(root, injectAppContext())

		// then
		names := make([]string, 0)
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.ElementsMatch(t, []string{"sync", "clone", "status", "doctor", "configure"}, names)

		syncCmd, _, err := root.Find([]string{"sync"})
		require.NoError(t, err)
		assert.NotNil(t, syncCmd.Flags().Lookup("confirm"))
		assert.NotNil(t, root.PersistentFlags().Lookup("config"))
		assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	})
}
