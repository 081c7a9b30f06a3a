package installer

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/archsim-tools/mcenv/internal/gitutil"
	"github.com/archsim-tools/mcenv/internal/project"
)

// update stashes any local changes, pulls the tracking branch from the named
// remote, and then tries to restore the stash. The pop is best effort: on a
// clean tree the stash step saved nothing and the pop has nothing to restore.
func (ins *Installer) update(p project.Project, dir string, w io.Writer) error {
	if gitutil.HasUnstagedChanges(dir) {
		log.Debug().Str("project", p.Name).Msg("local changes present, stashing")
	}

	err := step(w, "git stash save", func() (string, error) {
		return gitutil.StashSave(dir, stashMessage)
	})
	if err != nil {
		return err
	}

	err = step(w, fmt.Sprintf("git pull %s %s", RemoteName, TrackingBranch), func() (string, error) {
		return gitutil.Pull(dir, RemoteName, TrackingBranch)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "$ git stash pop")
	out, err := gitutil.StashPop(dir)
	if out != "" {
		fmt.Fprintln(w, out)
	}
	if err != nil {
		log.Debug().Err(err).Str("project", p.Name).Msg("stash pop skipped")
	}
	return nil
}
