package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so the user's real config is never read
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".clicker-session"), cfg.State.Dir)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.False(t, cfg.Roster.RejectDuplicateDevices)
	assert.False(t, cfg.Classify.SkipUnknownDevices)
}

func TestLoad_DefaultLocationFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".clicker-session")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[export]\nformat = \"json\"\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Export.Format)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "clicker.toml")
	content := `[state]
dir = "/tmp/clicker-state"

[roster]
reject_duplicate_devices = true

[classify]
skip_unknown_devices = true

[export]
format = "md"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		State:    StateConfig{Dir: "/tmp/clicker-state"},
		Roster:   RosterConfig{RejectDuplicateDevices: true},
		Classify: ClassifyConfig{SkipUnknownDevices: true},
		Export:   ExportConfig{Format: "md"},
	}, cfg)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[export\nformat = "), 0o644))

	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CLICKER_EXPORT_FORMAT", "yaml")
	t.Setenv("CLICKER_CLASSIFY_SKIP_UNKNOWN_DEVICES", "true")
	t.Setenv("CLICKER_STATE_DIR", "/var/lib/clicker")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Export.Format)
	assert.True(t, cfg.Classify.SkipUnknownDevices)
	assert.Equal(t, "/var/lib/clicker", cfg.State.Dir)
}

func TestLoad_ExplicitSetWins(t *testing.T) {
	isolate(t)
	t.Setenv("CLICKER_STATE_DIR", "/from/env")

	v := viper.New()
	v.Set(KeyStateDir, "/from/flag")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.State.Dir)
}

func TestWriteDefault(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default("/srv/clicker")
	require.NoError(t, WriteDefault(path, cfg, false))

	loaded, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := WriteDefault(path, Default("/srv/clicker"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	require.NoError(t, WriteDefault(path, Default("/srv/clicker"), true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/srv/clicker")
}

func TestDefaultPath(t *testing.T) {
	home := isolate(t)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".clicker-session", "config.toml"), path)
}
