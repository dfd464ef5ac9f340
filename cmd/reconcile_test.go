package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCommand_RejectsIncompleteConfig(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[db]
host = "127.0.0.1"
port = 1
database = "blinkshare"
`), 0o600))

	previous := configPath
	configPath = path
	t.Cleanup(func() { configPath = previous })

	err := reconcileCMD.RunE(reconcileCMD, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "bot.token is required")
	assert.NotContains(t, err.Error(), "database connection failed", "fails before touching the database")
}
