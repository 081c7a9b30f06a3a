// Package doctor checks that the external tools the installer shells out to
// are actually available.
package doctor

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement is one external tool the installer depends on.
type Requirement struct {
	Tool string
	// Usage says which part of the installation needs the tool.
	Usage string
}

// Requirements lists every toolchain the registered builders can invoke.
func Requirements() []Requirement {
	return []Requirement{
		{Tool: "git", Usage: "clone and update project repositories"},
		{Tool: "make", Usage: "build cacti, mcpat, hotspot and dramsim2"},
		{Tool: "autoreconf", Usage: "bootstrap the hotspot build"},
		{Tool: "scons", Usage: "build gem5"},
	}
}

// Status is the lookup result for one requirement.
type Status struct {
	Requirement
	// Path is where the tool was found, empty when missing.
	Path string
}

func (s Status) OK() bool { return s.Path != "" }

// Check resolves every requirement against PATH.
func Check() []Status {
	reqs := Requirements()
	statuses := make([]Status, 0, len(reqs))
	for _, r := range reqs {
		path, err := exec.LookPath(r.Tool)
		if err != nil {
			path = ""
		}
		statuses = append(statuses, Status{Requirement: r, Path: path})
	}
	return statuses
}

// Report renders statuses for the console and reports overall health.
func Report(statuses []Status) (string, bool) {
	var sb strings.Builder
	sb.WriteString("mcenv doctor\n")
	sb.WriteString("============\n\n")

	healthy := true
	for _, s := range statuses {
		mark := "ok"
		detail := s.Path
		if !s.OK() {
			mark = "MISSING"
			detail = "needed to " + s.Usage
			healthy = false
		}
		sb.WriteString(fmt.Sprintf("%-12s %-8s %s\n", s.Tool, mark, detail))
	}
	return sb.String(), healthy
}
