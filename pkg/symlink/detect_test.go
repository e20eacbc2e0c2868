// pkg/symlink/detect_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (symlink resolution requires the OS)
// PURPOSE: Test read-only conflict detection and link validation

package symlink_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/symlink"
	"github.com/mattcuento/dotfiles-tool/pkg/testutil"
)

func TestDetectConflicts_MissingSourceIsError(t *testing.T) {
	tempDir := t.TempDir()

	_, err := symlink.DetectConflicts(filesystem.NewOS(), filepath.Join(tempDir, "nope"), tempDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestDetectConflicts_Precision(t *testing.T) {
	source, target := setupDirs(t)
	fsys := filesystem.NewOS()

	// free: no conflict
	testutil.CreateFile(t, source, "free.txt", "x")

	// correct: already linked, no conflict
	testutil.CreateFile(t, source, "correct.txt", "x")
	testutil.CreateSymlink(t, filepath.Join(source, "correct.txt"), filepath.Join(target, "correct.txt"))

	// wrong: link resolving elsewhere
	testutil.CreateFile(t, source, "wrong.txt", "x")
	other := testutil.CreateFile(t, filepath.Dir(source), "other.txt", "y")
	testutil.CreateSymlink(t, other, filepath.Join(target, "wrong.txt"))

	// file: plain file occupies the target
	testutil.CreateFile(t, source, "file.txt", "x")
	testutil.CreateFile(t, target, "file.txt", "y")

	// dir: directory occupies the target
	testutil.CreateDir(t, source, "dir")
	testutil.CreateDir(t, target, "dir")

	conflicts, err := symlink.DetectConflicts(fsys, source, target)
	require.NoError(t, err)
	require.Len(t, conflicts, 3)

	byPath := map[string]symlink.ConflictReason{}
	for _, c := range conflicts {
		byPath[filepath.Base(c.Path)] = c.Reason
	}
	assert.Equal(t, symlink.WrongLinkTarget, byPath["wrong.txt"])
	assert.Equal(t, symlink.FileExists, byPath["file.txt"])
	assert.Equal(t, symlink.DirectoryExists, byPath["dir"])
}

func TestDetectConflicts_NoRecursion(t *testing.T) {
	source, target := setupDirs(t)
	fsys := filesystem.NewOS()

	// A subdirectory existing at the target is a single conflicting entry;
	// its contents are never examined.
	sub := testutil.CreateDir(t, source, "nvim")
	testutil.CreateFile(t, sub, "init.lua", "cfg")
	targetSub := testutil.CreateDir(t, target, "nvim")
	testutil.CreateFile(t, targetSub, "init.lua", "other")

	conflicts, err := symlink.DetectConflicts(fsys, source, target)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, filepath.Join(target, "nvim"), conflicts[0].Path)
}

func TestValidateLinks(t *testing.T) {
	source, target := setupDirs(t)
	fsys := filesystem.NewOS()

	// valid link
	testutil.CreateFile(t, source, "good.txt", "x")
	testutil.CreateSymlink(t, filepath.Join(source, "good.txt"), filepath.Join(target, "good.txt"))

	// missing
	testutil.CreateFile(t, source, "missing.txt", "x")

	// not a link
	testutil.CreateFile(t, source, "plain.txt", "x")
	testutil.CreateFile(t, target, "plain.txt", "y")

	// wrong target
	testutil.CreateFile(t, source, "wrong.txt", "x")
	other := testutil.CreateFile(t, filepath.Dir(source), "other.txt", "y")
	testutil.CreateSymlink(t, other, filepath.Join(target, "wrong.txt"))

	issues, err := symlink.ValidateLinks(fsys, source, target)
	require.NoError(t, err)
	require.Len(t, issues, 3)

	byPath := map[string]string{}
	for _, issue := range issues {
		byPath[filepath.Base(issue.Path)] = issue.Problem
	}
	assert.Equal(t, "link does not exist", byPath["missing.txt"])
	assert.Equal(t, "not a link", byPath["plain.txt"])
	assert.Contains(t, byPath["wrong.txt"], "points to")
	assert.Contains(t, byPath["wrong.txt"], filepath.Join(source, "wrong.txt"))
}

func TestValidateLinks_MissingSourceIsError(t *testing.T) {
	tempDir := t.TempDir()

	_, err := symlink.ValidateLinks(filesystem.NewOS(), filepath.Join(tempDir, "nope"), tempDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestChoose_FallsBackToManual(t *testing.T) {
	linker := symlink.Choose(filesystem.NewOS(), false)
	assert.Equal(t, "manual symlinks", linker.Name())
}
