// Package installer drives the per-project pipeline: ensure a clone exists,
// pull updates, run the registered builder. Projects are processed strictly
// sequentially in dependency order; one project failing never aborts the
// batch.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/archsim-tools/mcenv/internal/builder"
	"github.com/archsim-tools/mcenv/internal/config"
	"github.com/archsim-tools/mcenv/internal/fsutil"
	"github.com/archsim-tools/mcenv/internal/project"
	"github.com/archsim-tools/mcenv/internal/runx"
)

const (
	// RemoteName is the named remote every clone fetches and pulls from.
	RemoteName = "mcenv"
	// TrackingBranch is the branch checked out to track the remote.
	TrackingBranch = "master"
	// LogFileName is the per-project install log, created under the
	// project's checkout directory and truncated on every run.
	LogFileName = "install.log"

	stashMessage = "mcenv: automatic stash before update"
)

// Installer installs the resolved project set under cfg.Prefix.
type Installer struct {
	cfg      *config.Config
	projects []project.Project
}

// New validates the destination and returns an Installer over the already
// resolved project set.
func New(cfg *config.Config, projects []project.Project) (*Installer, error) {
	if !fsutil.IsDir(cfg.Prefix) {
		return nil, fmt.Errorf("destination directory %s does not exist", cfg.Prefix)
	}
	return &Installer{cfg: cfg, projects: projects}, nil
}

// Projects returns the resolved set in install order.
func (ins *Installer) Projects() []project.Project {
	return ins.projects
}

// Result is the outcome of one project's pipeline.
type Result struct {
	Project string
	LogPath string
	Err     error
}

// InstallAll runs clone → update → build for every project in order. A
// failing project is reported with its log path and the loop moves on; there
// is no rollback.
func (ins *Installer) InstallAll() []Result {
	results := make([]Result, 0, len(ins.projects))
	for i, p := range ins.projects {
		res := ins.installOne(i, p)
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("project", p.Name).
				Msgf("install failed, see %s", res.LogPath)
		} else {
			log.Info().Str("project", p.Name).Msg("installed")
		}
		results = append(results, res)
	}
	return results
}

func (ins *Installer) installOne(seq int, p project.Project) Result {
	dir := ins.projectDir(p)
	res := Result{Project: p.Name, LogPath: filepath.Join(dir, LogFileName)}

	if err := fsutil.CreateDir(dir); err != nil {
		res.Err = err
		return res
	}
	logFile, err := os.Create(res.LogPath)
	if err != nil {
		res.Err = fmt.Errorf("create install log: %w", err)
		return res
	}
	defer logFile.Close()

	proc := runx.New(p.Name, seq, logFile, ins.cfg.Verbose)
	defer proc.Flush()

	log.Info().Str("project", p.Name).Msg("installing")

	if err := ins.ensureClone(p, dir, logFile); err != nil {
		res.Err = fmt.Errorf("clone: %w", err)
		return res
	}
	if err := ins.update(p, dir, logFile); err != nil {
		res.Err = fmt.Errorf("update: %w", err)
		return res
	}
	if err := builder.Run(p, ins.cfg.Prefix, ins.cfg.Jobs, ins.cfg.Builders[p.Name], proc); err != nil {
		res.Err = fmt.Errorf("build: %w", err)
		return res
	}
	return res
}

func (ins *Installer) projectDir(p project.Project) string {
	return filepath.Join(ins.cfg.Prefix, p.Name)
}

// step records one git operation and its combined output in the install log.
func step(w io.Writer, desc string, fn func() (string, error)) error {
	fmt.Fprintf(w, "$ %s\n", desc)
	out, err := fn()
	if out != "" {
		fmt.Fprintln(w, out)
	}
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return fmt.Errorf("%s: %w", desc, err)
	}
	return nil
}
