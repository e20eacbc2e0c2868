// pkg/doctor/checks_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem via t.TempDir(); host PATH for tool checks
// PURPOSE: Test the individual health checks

package doctor_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcuento/dotfiles-tool/pkg/doctor"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/testutil"
)

func TestCheckTool(t *testing.T) {
	result := doctor.CheckTool("ls")
	assert.Equal(t, doctor.Pass, result.Status)
	assert.Contains(t, result.Message, "ls")

	result = doctor.CheckTool("nonexistent-tool-xyz")
	assert.Equal(t, doctor.Fail, result.Status)
	assert.Contains(t, result.Suggestion, "brew install")
}

func TestCheckSymlinks_AllValid(t *testing.T) {
	tempDir := t.TempDir()
	source := testutil.CreateDir(t, tempDir, "source")
	target := testutil.CreateDir(t, tempDir, "target")
	file := testutil.CreateFile(t, source, ".zshrc", "# zsh")
	testutil.CreateSymlink(t, file, filepath.Join(target, ".zshrc"))

	report := doctor.CheckSymlinks(filesystem.NewOS(), source, target)
	assert.True(t, report.IsClean())
}

func TestCheckSymlinks_MissingLink(t *testing.T) {
	tempDir := t.TempDir()
	source := testutil.CreateDir(t, tempDir, "source")
	target := testutil.CreateDir(t, tempDir, "target")
	testutil.CreateFile(t, source, ".zshrc", "# zsh")

	report := doctor.CheckSymlinks(filesystem.NewOS(), source, target)
	assert.True(t, report.HasErrors())
}

func TestCheckWellKnownFiles(t *testing.T) {
	home := t.TempDir()
	fsys := filesystem.NewOS()

	report := doctor.CheckWellKnownFiles(fsys, home)
	assert.True(t, report.IsClean())

	testutil.CreateFile(t, home, ".zshrc", "# plain file")
	report = doctor.CheckWellKnownFiles(fsys, home)
	assert.Equal(t, 1, report.WarnCount())
}

func TestCheckHardcodedPathsInFile(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()

	clean := testutil.CreateFile(t, tempDir, "clean.sh", "export PATH=$HOME/bin:$PATH\n")
	result := doctor.CheckHardcodedPathsInFile(fsys, clean)
	assert.Equal(t, doctor.Pass, result.Status)

	dirty := testutil.CreateFile(t, tempDir, "dirty.sh", "export GOPATH=/Users/alice/go\n")
	result = doctor.CheckHardcodedPathsInFile(fsys, dirty)
	assert.Equal(t, doctor.Warn, result.Status)
	assert.Contains(t, result.Message, "1 hardcoded path")

	// Comments are skipped
	commented := testutil.CreateFile(t, tempDir, "commented.sh", "# /home/alice/notes\n")
	result = doctor.CheckHardcodedPathsInFile(fsys, commented)
	assert.Equal(t, doctor.Pass, result.Status)
}

func TestCheckHardcodedPaths_Directory(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()
	testutil.CreateFile(t, tempDir, "a.sh", "echo hi\n")
	testutil.CreateFile(t, tempDir, "b.conf", "path=/home/bob/data\n")
	testutil.CreateFile(t, tempDir, "ignored.txt", "/Users/bob\n")

	report := doctor.CheckHardcodedPaths(fsys, tempDir)

	assert.Equal(t, 2, report.Total())
	assert.Equal(t, 1, report.WarnCount())
}

func TestCheckHardcodedPaths_MissingDir(t *testing.T) {
	report := doctor.CheckHardcodedPaths(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, report.HasErrors())
}

func TestCheckConfigSyntax(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()

	tests := []struct {
		name    string
		content string
		status  doctor.Status
	}{
		{"good.toml", "key = \"value\"\n", doctor.Pass},
		{"bad.toml", "key = = broken\n", doctor.Fail},
		{"good.json", `{"key": "value"}`, doctor.Pass},
		{"bad.json", `{"key": }`, doctor.Fail},
		{"good.yaml", "key: value\n", doctor.Pass},
		{"bad.yaml", "key: [unclosed\n", doctor.Fail},
		{"skipped.ini", "whatever", doctor.Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, tempDir, tt.name, tt.content)
			result := doctor.CheckConfigSyntax(fsys, path)
			assert.Equal(t, tt.status, result.Status, result.Message)
		})
	}
}

func TestCheckConfigs_Directory(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()
	testutil.CreateFile(t, tempDir, "ok.toml", "key = \"value\"\n")
	testutil.CreateFile(t, tempDir, "broken.json", "{oops")
	testutil.CreateFile(t, tempDir, "notes.txt", "not validated")

	report := doctor.CheckConfigs(fsys, tempDir)

	require.Equal(t, 2, report.Total())
	assert.Equal(t, 1, report.PassCount())
	assert.Equal(t, 1, report.ErrorCount())
}

func TestCheckShellIntegration(t *testing.T) {
	home := t.TempDir()
	fsys := filesystem.NewOS()

	report := doctor.CheckShellIntegration(fsys, home)
	assert.Equal(t, 1, report.WarnCount())

	testutil.CreateFile(t, home, ".zshrc", "# zsh config\n")
	report = doctor.CheckShellIntegration(fsys, home)
	assert.True(t, report.IsClean())
}
