package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCoversAllRequirements(t *testing.T) {
	statuses := Check()
	assert.Len(t, statuses, len(Requirements()))

	// git is a hard requirement of the test suite itself, so it must resolve.
	for _, s := range statuses {
		if s.Tool == "git" {
			assert.True(t, s.OK())
			assert.NotEmpty(t, s.Path)
		}
	}
}

func TestReport(t *testing.T) {
	statuses := []Status{
		{Requirement: Requirement{Tool: "git", Usage: "clone"}, Path: "/usr/bin/git"},
		{Requirement: Requirement{Tool: "scons", Usage: "build gem5"}},
	}
	report, healthy := Report(statuses)
	assert.False(t, healthy)
	assert.Contains(t, report, "git")
	assert.Contains(t, report, "/usr/bin/git")
	assert.Contains(t, report, "MISSING")
	assert.Contains(t, report, "build gem5")
}
