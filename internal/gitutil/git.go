package gitutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Run executes a git command in dir and returns trimmed combined output + error.
func Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// IsRepo reports whether path holds a git repository of its own. The check is
// for a .git entry directly under path, not for an enclosing work tree, so a
// prefix that itself lives inside some repository does not count.
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// Init initializes a new git repository.
func Init(path string) (string, error) {
	return Run(path, "init")
}

// AddRemote registers a named remote pointing at url.
func AddRemote(path, name, url string) (string, error) {
	return Run(path, "remote", "add", name, url)
}

// Fetch fetches all refs from the named remote.
func Fetch(path, remote string) (string, error) {
	return Run(path, "fetch", remote)
}

// CheckoutTrack creates branch as a tracking branch of remote/branch and
// switches to it.
func CheckoutTrack(path, branch, remote string) (string, error) {
	return Run(path, "checkout", "-b", branch, "--track", remote+"/"+branch)
}

// Pull pulls branch from the named remote.
func Pull(path, remote, branch string) (string, error) {
	return Run(path, "pull", remote, branch)
}

// StashSave stashes local changes with the given message. Exits cleanly when
// there is nothing to stash.
func StashSave(path, message string) (string, error) {
	return Run(path, "stash", "save", message)
}

// StashPop restores the most recent stash entry.
func StashPop(path string) (string, error) {
	return Run(path, "stash", "pop")
}

// HasUnstagedChanges checks for unstaged modifications.
func HasUnstagedChanges(path string) bool {
	_, err := Run(path, "diff", "--quiet")
	return err != nil
}
