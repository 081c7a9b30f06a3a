// Package builder executes the build procedure registered for a project.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/archsim-tools/mcenv/internal/project"
	"github.com/archsim-tools/mcenv/internal/runx"
)

// Run executes the builder registered for p inside its checkout under prefix.
// jobs is handed to the underlying toolchain; parallelism lives there, not
// here. A non-empty override replaces the registered builder with a shell
// command string run by the embedded interpreter.
func Run(p project.Project, prefix string, jobs int, override string, proc *runx.Proc) error {
	dir := filepath.Join(prefix, p.Name)

	if override != "" {
		return runShell(override, dir, proc)
	}

	j := strconv.Itoa(jobs)
	switch p.Builder {
	case project.BuildNone:
		return nil
	case project.BuildMake:
		return proc.Run(dir, "make", "-j", j)
	case project.BuildAutotools:
		if err := proc.Run(dir, "autoreconf", "-i"); err != nil {
			return err
		}
		if err := proc.Run(dir, "./configure"); err != nil {
			return err
		}
		return proc.Run(dir, "make", "-j", j)
	case project.BuildScons:
		args := []string{"scons", "-j", j}
		if extras := SconsExtras(prefix, p.Extras); extras != "" {
			args = append(args, "EXTRAS="+extras)
		}
		if p.Target != "" {
			args = append(args, p.Target)
		}
		return proc.Run(dir, args...)
	}
	return fmt.Errorf("project %s: unknown builder %v", p.Name, p.Builder)
}

// SconsExtras joins the absolute checkout directories of the named sibling
// projects with ":", the separator scons expects for EXTRAS, and trims the
// trailing one.
func SconsExtras(prefix string, names []string) string {
	var b strings.Builder
	for _, name := range names {
		dir := filepath.Join(prefix, name)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		b.WriteString(dir)
		b.WriteString(":")
	}
	return strings.TrimSuffix(b.String(), ":")
}

// runShell parses command and runs it through mvdan/sh in dir, with combined
// output routed like any other builder invocation.
func runShell(command, dir string, proc *runx.Proc) error {
	fmt.Fprintf(proc.Output(), "$ %s\n", command)

	file, err := syntax.NewParser().Parse(strings.NewReader(command), "builder")
	if err != nil {
		return fmt.Errorf("parse builder command: %w", err)
	}

	out := proc.Output()
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, out, out),
	)
	if err != nil {
		return fmt.Errorf("create shell runner: %w", err)
	}

	if err := runner.Run(context.Background(), file); err != nil {
		return fmt.Errorf("builder command: %w", err)
	}
	return nil
}
