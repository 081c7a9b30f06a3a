package installer

import (
	"os"
	"path/filepath"
	"strings"
)

// PathSuggestion composes the PATH assignment line the user should add to
// their shell profile. Projects with no registered binary directory are
// skipped; the rest are absolute-resolved and joined with the platform list
// separator. Returns "" when nothing contributes.
func (ins *Installer) PathSuggestion() string {
	sep := string(os.PathListSeparator)

	var parts []string
	for _, p := range ins.projects {
		if p.BinPath == "" {
			continue
		}
		dir := filepath.Join(ins.cfg.Prefix, p.BinPath)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		parts = append(parts, dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return "PATH=$PATH" + sep + strings.Join(parts, sep)
}
