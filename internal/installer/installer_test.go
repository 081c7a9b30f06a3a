package installer

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archsim-tools/mcenv/internal/config"
	"github.com/archsim-tools/mcenv/internal/project"
)

func execGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func commitAll(t *testing.T, dir, message string) {
	t.Helper()
	execGit(t, dir, "add", ".")
	execGit(t, dir,
		"-c", "user.name=mcenv-test",
		"-c", "user.email=mcenv@test",
		"commit", "-m", message)
}

// makeRemote creates a server-side repository with a master branch and one
// committed file.
func makeRemote(t *testing.T, serverDir, name string) string {
	t.Helper()
	dir := filepath.Join(serverDir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	execGit(t, dir, "-c", "init.defaultBranch=master", "init")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("all:\n\ttrue\n"), 0644))
	commitAll(t, dir, "initial")
	return dir
}

func testSetup(t *testing.T, builders map[string]string) (*config.Config, []project.Project) {
	t.Helper()
	serverDir := filepath.Join(t.TempDir(), "remotes")
	for _, name := range []string{"alpha", "beta", "gamma"} {
		makeRemote(t, serverDir, name)
	}

	cfg := &config.Config{
		Prefix:   t.TempDir(),
		Server:   serverDir + "/",
		Jobs:     1,
		Builders: builders,
	}
	projects := []project.Project{
		{Name: "alpha", Remote: "alpha", BinPath: "alpha"},
		{Name: "beta", Remote: "beta"},
		{Name: "gamma", Remote: "gamma", BinPath: "gamma/bin"},
	}
	return cfg, projects
}

func TestInstallAllContinuesPastFailure(t *testing.T) {
	cfg, projects := testSetup(t, map[string]string{
		"alpha": "echo built alpha",
		"beta":  "exit 1",
		"gamma": "echo built gamma",
	})

	ins, err := New(cfg, projects)
	require.NoError(t, err)

	results := ins.InstallAll()
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	// The failing middle project did not stop alpha or gamma from arriving.
	assert.FileExists(t, filepath.Join(cfg.Prefix, "alpha", "Makefile"))
	assert.FileExists(t, filepath.Join(cfg.Prefix, "gamma", "Makefile"))

	// One install.log per project, including the failed one.
	for _, res := range results {
		assert.FileExists(t, res.LogPath)
	}

	logData, err := os.ReadFile(results[0].LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "$ git fetch "+RemoteName)
	assert.Contains(t, string(logData), "built alpha")
}

func TestInstallIsIdempotentAndPullsUpdates(t *testing.T) {
	cfg, projects := testSetup(t, map[string]string{
		"alpha": "true", "beta": "true", "gamma": "true",
	})

	ins, err := New(cfg, projects)
	require.NoError(t, err)
	for _, res := range ins.InstallAll() {
		require.NoError(t, res.Err)
	}

	// Grow the alpha remote, then re-run the whole batch.
	remote := filepath.Join(cfg.Server, "alpha")
	require.NoError(t, os.WriteFile(filepath.Join(remote, "extra.txt"), []byte("more\n"), 0644))
	commitAll(t, remote, "add extra")

	results := ins.InstallAll()
	for _, res := range results {
		require.NoError(t, res.Err)
	}

	// The clone was reused, not recreated, and the pull brought the new file.
	logData, err := os.ReadFile(results[0].LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "repository already present")
	assert.FileExists(t, filepath.Join(cfg.Prefix, "alpha", "extra.txt"))
}

func TestUpdateStashesAndRestoresLocalChanges(t *testing.T) {
	cfg, projects := testSetup(t, map[string]string{
		"alpha": "true", "beta": "true", "gamma": "true",
	})

	ins, err := New(cfg, projects)
	require.NoError(t, err)
	for _, res := range ins.InstallAll() {
		require.NoError(t, res.Err)
	}

	// Dirty the alpha checkout; the stash needs a committer identity.
	clone := filepath.Join(cfg.Prefix, "alpha")
	execGit(t, clone, "config", "user.name", "mcenv-test")
	execGit(t, clone, "config", "user.email", "mcenv@test")
	require.NoError(t, os.WriteFile(filepath.Join(clone, "Makefile"), []byte("all:\n\tfalse\n"), 0644))

	for _, res := range ins.InstallAll() {
		require.NoError(t, res.Err)
	}

	// The local edit survived the update round trip.
	data, err := os.ReadFile(filepath.Join(clone, "Makefile"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "false")
}

func TestNewRejectsMissingPrefix(t *testing.T) {
	cfg := &config.Config{Prefix: filepath.Join(t.TempDir(), "does-not-exist")}
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestRemoteURL(t *testing.T) {
	assert.Equal(t, "/srv/git/mcpat", RemoteURL("/srv/git/", "mcpat"))
	assert.Equal(t, "git@sim.example.org:mcpat", RemoteURL("git@sim.example.org:", "mcpat"))
	assert.Equal(t, "https://example.org/sim/mcpat", RemoteURL("https://example.org/sim", "mcpat"))
}

func TestPathSuggestion(t *testing.T) {
	prefix := t.TempDir()
	cfg := &config.Config{Prefix: prefix}
	ins, err := New(cfg, []project.Project{
		{Name: "alpha", BinPath: "alpha"},
		{Name: "beta"},
		{Name: "gamma", BinPath: "gamma/bin"},
	})
	require.NoError(t, err)

	sep := string(os.PathListSeparator)
	want := "PATH=$PATH" + sep +
		filepath.Join(prefix, "alpha") + sep +
		filepath.Join(prefix, "gamma", "bin")
	assert.Equal(t, want, ins.PathSuggestion())
}

func TestPathSuggestionEmpty(t *testing.T) {
	cfg := &config.Config{Prefix: t.TempDir()}
	ins, err := New(cfg, []project.Project{{Name: "beta"}})
	require.NoError(t, err)
	assert.Equal(t, "", ins.PathSuggestion())
}
