package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, cfg.Server)
	assert.Equal(t, 1, cfg.Jobs)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Builders)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
server: "git@sim.example.org:"
jobs: 8
exclude: [gem5]
builders:
  mcpat: "make dbg -j 4"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := Load(nil, file)
	require.NoError(t, err)
	assert.Equal(t, "git@sim.example.org:", cfg.Server)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, []string{"gem5"}, cfg.Exclude)
	assert.Equal(t, "make dbg -j 4", cfg.Builders["mcpat"])
}

func TestLoadConfigFileFromConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, AppName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("jobs: 4\n"), 0644))

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MCENV_SERVER", "/srv/git/")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "/srv/git/", cfg.Server)
}

func TestLoadFlagOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("jobs: 8\n"), 0644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("jobs", "j", 1, "")
	flags.StringP("server", "g", "", "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"-j", "2"}))

	cfg, err := Load(flags, file)
	require.NoError(t, err)

	// The changed flag wins over the file; untouched flags do not.
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, DefaultServer, cfg.Server)
}
