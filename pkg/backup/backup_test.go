// pkg/backup/backup_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem via t.TempDir()
// PURPOSE: Test backup creation, listing, restore, and cleanup

package backup_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcuento/dotfiles-tool/pkg/backup"
	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/testutil"
)

func TestInfoFromPath(t *testing.T) {
	info, ok := backup.InfoFromPath("/home/user/.dotfiles-backup-20260129-143022")
	require.True(t, ok)
	assert.Equal(t, "20260129-143022", info.Timestamp)
	assert.Equal(t, "/home/user/.dotfiles-backup-20260129-143022", info.Path)

	_, ok = backup.InfoFromPath("/home/user/not-a-backup")
	assert.False(t, ok)
}

func TestCreate(t *testing.T) {
	tempDir := t.TempDir()
	source := testutil.CreateDir(t, tempDir, "source")
	parent := testutil.CreateDir(t, tempDir, "backups")
	testutil.CreateFile(t, source, "file1.txt", "content1")
	sub := testutil.CreateDir(t, source, "nested")
	testutil.CreateFile(t, sub, "file2.txt", "content2")

	backupPath, err := backup.Create(filesystem.NewOS(), source, parent)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(backupPath), ".dotfiles-backup-"))
	assert.Equal(t, "content1", testutil.ReadFile(t, filepath.Join(backupPath, "file1.txt")))
	assert.Equal(t, "content2", testutil.ReadFile(t, filepath.Join(backupPath, "nested", "file2.txt")))
}

func TestCreate_MissingSource(t *testing.T) {
	tempDir := t.TempDir()

	_, err := backup.Create(filesystem.NewOS(), filepath.Join(tempDir, "nope"), tempDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestList_NewestFirst(t *testing.T) {
	tempDir := t.TempDir()
	testutil.CreateDir(t, tempDir, ".dotfiles-backup-20260129-120000")
	testutil.CreateDir(t, tempDir, ".dotfiles-backup-20260129-130000")
	testutil.CreateDir(t, tempDir, "not-a-backup")

	backups, err := backup.List(filesystem.NewOS(), tempDir)
	require.NoError(t, err)

	require.Len(t, backups, 2)
	assert.Equal(t, "20260129-130000", backups[0].Timestamp)
	assert.Equal(t, "20260129-120000", backups[1].Timestamp)
}

func TestList_MissingParent(t *testing.T) {
	backups, err := backup.List(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestLatest(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()

	_, ok, err := backup.Latest(fsys, tempDir)
	require.NoError(t, err)
	assert.False(t, ok)

	testutil.CreateDir(t, tempDir, ".dotfiles-backup-20260129-120000")
	testutil.CreateDir(t, tempDir, ".dotfiles-backup-20260129-130000")

	latest, ok, err := backup.Latest(fsys, tempDir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "20260129-130000", latest.Timestamp)
}

func TestRestore(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()
	source := testutil.CreateDir(t, tempDir, "source")
	parent := testutil.CreateDir(t, tempDir, "backups")
	testutil.CreateFile(t, source, "file.txt", "original")

	backupPath, err := backup.Create(fsys, source, parent)
	require.NoError(t, err)
	info, ok := backup.InfoFromPath(backupPath)
	require.True(t, ok)

	// Change the source after the snapshot, then restore over it
	testutil.CreateFile(t, source, "file.txt", "modified")

	require.NoError(t, backup.Restore(fsys, info, source))
	assert.Equal(t, "original", testutil.ReadFile(t, filepath.Join(source, "file.txt")))

	// The pre-restore state was itself backed up next to the snapshot
	backups, err := backup.List(fsys, parent)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(backups), 2)
}

func TestRestore_MissingBackup(t *testing.T) {
	tempDir := t.TempDir()

	err := backup.Restore(filesystem.NewOS(), backup.Info{Path: filepath.Join(tempDir, "nope")}, tempDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackupNotFound))
}

func TestVerify(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()

	// Nonexistent
	ok, err := backup.Verify(fsys, filepath.Join(tempDir, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Empty directory
	empty := testutil.CreateDir(t, tempDir, "empty")
	ok, err = backup.Verify(fsys, empty)
	require.NoError(t, err)
	assert.False(t, ok)

	// Non-empty directory
	full := testutil.CreateDir(t, tempDir, "full")
	testutil.CreateFile(t, full, "file.txt", "content")
	ok, err = backup.Verify(fsys, full)
	require.NoError(t, err)
	assert.True(t, ok)

	// Plain file
	file := testutil.CreateFile(t, tempDir, "plain.txt", "x")
	ok, err = backup.Verify(fsys, file)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanup(t *testing.T) {
	tempDir := t.TempDir()
	fsys := filesystem.NewOS()
	for _, ts := range []string{"20260121-120000", "20260122-120000", "20260123-120000", "20260124-120000", "20260125-120000"} {
		testutil.CreateDir(t, tempDir, ".dotfiles-backup-"+ts)
	}

	deleted, err := backup.Cleanup(fsys, 2, tempDir)
	require.NoError(t, err)
	assert.Len(t, deleted, 3)

	remaining, err := backup.List(fsys, tempDir)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "20260125-120000", remaining[0].Timestamp)
	assert.Equal(t, "20260124-120000", remaining[1].Timestamp)
}

func TestCleanup_KeepAll(t *testing.T) {
	tempDir := t.TempDir()
	testutil.CreateDir(t, tempDir, ".dotfiles-backup-20260121-120000")

	deleted, err := backup.Cleanup(filesystem.NewOS(), 5, tempDir)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
