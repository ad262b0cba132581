package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathYieldsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathYieldsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileFillsInDefaultsForUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[shell]
prompt = "jdb> "
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jdb> ", cfg.Shell.Prompt)
	assert.Equal(t, Default().Database, cfg.Database)
}

func TestLoadFullFileOverridesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/custom.josedb"
auto_save = false

[shell]
prompt = "> "
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.josedb", cfg.Database.Path)
	assert.False(t, cfg.Database.AutoSave)
	assert.Equal(t, "> ", cfg.Shell.Prompt)
}

func TestDatabasePathEmptyWhenAutoSaveDisabled(t *testing.T) {
	cfg := Default()
	cfg.Database.AutoSave = false
	assert.Equal(t, "", cfg.DatabasePath())
}

func TestDatabasePathReturnsConfiguredPathWhenAutoSaveEnabled(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "mydb.josedb"
	assert.Equal(t, "mydb.josedb", cfg.DatabasePath())
}

func TestPromptFallsBackWhenUnset(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "josedb> ", cfg.Prompt())
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = valid = toml"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
