// pkg/symlink/symlink_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test outcome and report bookkeeping

package symlink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattcuento/dotfiles-tool/pkg/symlink"
)

func TestOutcome_IsSuccess(t *testing.T) {
	tests := []struct {
		name    string
		outcome symlink.Outcome
		want    bool
	}{
		{"created", symlink.Created("/src/a", "/home/a"), true},
		{"already correct", symlink.AlreadyCorrect("/home/a"), true},
		{"conflict", symlink.Conflicted("/home/a", symlink.FileExists), false},
		{"skipped", symlink.Skipped("/home/a", "dry run"), false},
		{"removed", symlink.Removed("/home/a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.IsSuccess())
		})
	}
}

func TestReport_Partitioning(t *testing.T) {
	report := symlink.NewReport()
	report.Add(symlink.Created("/src/a", "/home/a"))
	report.Add(symlink.AlreadyCorrect("/home/b"))
	report.Add(symlink.Conflicted("/home/c", symlink.DirectoryExists))
	report.Add(symlink.Skipped("/home/d", "source absent"))

	assert.Len(t, report.Created(), 1)
	assert.Len(t, report.AlreadyCorrect(), 1)
	assert.Len(t, report.Conflicts(), 1)
	assert.Len(t, report.Skipped(), 1)
	assert.Equal(t, 4, report.Total())
	assert.False(t, report.Success())

	// Outcomes keep insertion order
	assert.Equal(t, symlink.OutcomeCreated, report.Outcomes[0].Kind)
	assert.Equal(t, symlink.OutcomeSkipped, report.Outcomes[3].Kind)
}

func TestReport_SuccessMeansNoConflicts(t *testing.T) {
	report := symlink.NewReport()
	assert.True(t, report.Success())

	report.Add(symlink.Created("/src/a", "/home/a"))
	report.Add(symlink.Skipped("/home/b", "dry run"))
	assert.True(t, report.Success())

	report.Add(symlink.Conflicted("/home/c", symlink.WrongLinkTarget))
	assert.False(t, report.Success())
}

func TestReport_Summary(t *testing.T) {
	report := symlink.NewReport()
	report.Add(symlink.Created("/src/a", "/home/a"))
	report.Add(symlink.AlreadyCorrect("/home/b"))

	summary := report.Summary()
	assert.Contains(t, summary, "Created: 1")
	assert.Contains(t, summary, "Already correct: 1")
	assert.NotContains(t, summary, "Removed")

	report.Add(symlink.Removed("/home/c"))
	assert.Contains(t, report.Summary(), "Removed: 1")
}

func TestConflictReason_String(t *testing.T) {
	assert.Equal(t, "file already exists", symlink.FileExists.String())
	assert.Equal(t, "directory already exists", symlink.DirectoryExists.String())
	assert.Equal(t, "link exists but points to wrong location", symlink.WrongLinkTarget.String())
	assert.Equal(t, "not a link, will not remove", symlink.NotALink.String())
}

func TestIsExcluded(t *testing.T) {
	assert.True(t, symlink.IsExcluded(".git"))
	assert.True(t, symlink.IsExcluded("README.md"))
	assert.False(t, symlink.IsExcluded(".zshrc"))
}
