// Package project defines the fixed set of simulator source repositories the
// installer manages and how each one is built.
package project

import "fmt"

// BuilderKind selects the build procedure registered for a project.
type BuilderKind int

const (
	// BuildNone marks projects that need no build step of their own
	// (e.g. sources compiled into another project).
	BuildNone BuilderKind = iota
	// BuildMake runs make in the project directory.
	BuildMake
	// BuildAutotools runs the autotools bootstrap chain:
	// autoreconf -i, ./configure, make.
	BuildAutotools
	// BuildScons runs scons with EXTRAS computed from sibling projects.
	BuildScons
)

func (k BuilderKind) String() string {
	switch k {
	case BuildNone:
		return "none"
	case BuildMake:
		return "make"
	case BuildAutotools:
		return "autotools"
	case BuildScons:
		return "scons"
	}
	return fmt.Sprintf("BuilderKind(%d)", int(k))
}

// Project is one managed source repository.
type Project struct {
	// Name is the unique project key and the clone directory name under the
	// install prefix.
	Name string
	// Remote is the path fragment appended to the server location to form the
	// clone URL. Equal to Name for every current project.
	Remote string
	// Builder is the registered build procedure.
	Builder BuilderKind
	// BinPath is the prefix-relative directory holding the built binaries,
	// empty for projects that contribute nothing to PATH.
	BinPath string
	// Extras lists sibling project names whose checkouts are handed to scons
	// as EXTRAS directories. Only meaningful for BuildScons.
	Extras []string
	// Target is the build target passed to scons. Only meaningful for
	// BuildScons.
	Target string
}

// Defaults returns the full project list in dependency order. gem5 comes
// last: its scons build picks up the dramsim2 and dsent checkouts, so those
// must already be present.
func Defaults() []Project {
	return []Project{
		{Name: "cacti", Remote: "cacti", Builder: BuildMake, BinPath: "cacti"},
		{Name: "mcpat", Remote: "mcpat", Builder: BuildMake, BinPath: "mcpat"},
		{Name: "hotspot", Remote: "hotspot", Builder: BuildAutotools, BinPath: "hotspot"},
		{Name: "dramsim2", Remote: "dramsim2", Builder: BuildMake},
		{Name: "dsent", Remote: "dsent", Builder: BuildNone},
		{
			Name:    "gem5",
			Remote:  "gem5",
			Builder: BuildScons,
			BinPath: "gem5/build/X86",
			Extras:  []string{"dramsim2", "dsent"},
			Target:  "build/X86/gem5.opt",
		},
	}
}

// Names returns the names of ps in order.
func Names(ps []Project) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names
}

// Resolve filters defaults down to the projects to install. include and
// exclude are mutually exclusive; passing both is an error. Names not present
// in defaults are ignored. The result is always a subsequence of defaults, so
// filtering never disturbs the dependency ordering.
func Resolve(defaults []Project, include, exclude []string) ([]Project, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("include and exclude selections are mutually exclusive")
	}

	keep := func(name string) bool { return true }
	switch {
	case len(include) > 0:
		set := toSet(include)
		keep = func(name string) bool { return set[name] }
	case len(exclude) > 0:
		set := toSet(exclude)
		keep = func(name string) bool { return !set[name] }
	}

	var out []Project
	for _, p := range defaults {
		if keep(p.Name) {
			out = append(out, p)
		}
	}
	return out, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
