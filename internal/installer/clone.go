package installer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/archsim-tools/mcenv/internal/gitutil"
	"github.com/archsim-tools/mcenv/internal/project"
)

// RemoteURL joins the server location and a project's remote fragment. A
// location ending in "/" (a path) or ":" (a host or URL prefix) takes the
// fragment directly; anything else gets a "/" inserted.
func RemoteURL(server, fragment string) string {
	if strings.HasSuffix(server, "/") || strings.HasSuffix(server, ":") {
		return server + fragment
	}
	return server + "/" + fragment
}

// ensureClone makes sure dir holds a clone of p tracking the named remote.
// Calling it on an existing clone is a no-op, so re-running the installer is
// the intended update mechanism.
func (ins *Installer) ensureClone(p project.Project, dir string, w io.Writer) error {
	if gitutil.IsRepo(dir) {
		fmt.Fprintln(w, "repository already present, skipping clone setup")
		log.Debug().Str("project", p.Name).Msg("existing clone found")
		return nil
	}

	url := RemoteURL(ins.cfg.Server, p.Remote)
	log.Info().Str("project", p.Name).Str("url", url).Msg("cloning")

	steps := []struct {
		desc string
		fn   func() (string, error)
	}{
		{"git init", func() (string, error) {
			return gitutil.Init(dir)
		}},
		{fmt.Sprintf("git remote add %s %s", RemoteName, url), func() (string, error) {
			return gitutil.AddRemote(dir, RemoteName, url)
		}},
		{"git fetch " + RemoteName, func() (string, error) {
			return gitutil.Fetch(dir, RemoteName)
		}},
		{fmt.Sprintf("git checkout -b %s --track %s/%s", TrackingBranch, RemoteName, TrackingBranch), func() (string, error) {
			return gitutil.CheckoutTrack(dir, TrackingBranch, RemoteName)
		}},
	}
	for _, s := range steps {
		if err := step(w, s.desc, s.fn); err != nil {
			return err
		}
	}
	return nil
}
