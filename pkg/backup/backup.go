// Package backup creates and restores timestamped snapshots of a dotfiles
// directory. Backups are plain directory copies named
// .dotfiles-backup-YYYYMMDD-HHMMSS under the home directory (or an explicit
// parent), newest sorting last lexically.
package backup

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/paths"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// timestampLayout is the backup directory name suffix format
const timestampLayout = "20060102-150405"

// Info describes one backup directory on disk.
type Info struct {
	// Path is the absolute path of the backup directory
	Path string

	// Timestamp is the YYYYMMDD-HHMMSS portion of the directory name
	Timestamp string

	// Source is the directory the backup was taken from, when known
	Source string
}

// InfoFromPath parses a backup directory name. It returns false when the
// name does not carry the backup prefix.
func InfoFromPath(path string) (Info, bool) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, paths.BackupDirPrefix) {
		return Info{}, false
	}
	return Info{
		Path:      path,
		Timestamp: strings.TrimPrefix(name, paths.BackupDirPrefix),
	}, true
}

// Create copies source into a fresh timestamped directory under parent.
// An empty parent defaults to the home directory. The new backup path is
// returned.
func Create(fsys types.FS, source, parent string) (string, error) {
	logger := logging.GetLogger("backup")

	if _, err := fsys.Stat(source); err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceNotFound, "source directory does not exist: %s", source)
	}

	if parent == "" {
		home, err := paths.GetHomeDirectory()
		if err != nil {
			return "", err
		}
		parent = home
	}

	timestamp := time.Now().Format(timestampLayout)
	backupPath := filepath.Join(parent, paths.BackupDirPrefix+timestamp)

	// Two backups within the same second get distinct directories
	for i := 2; ; i++ {
		if _, err := fsys.Stat(backupPath); err != nil {
			break
		}
		backupPath = filepath.Join(parent, fmt.Sprintf("%s%s-%d", paths.BackupDirPrefix, timestamp, i))
	}

	if err := fsys.MkdirAll(backupPath, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create backup directory %s", backupPath)
	}

	if err := copyDirRecursive(fsys, source, backupPath); err != nil {
		return "", err
	}

	logger.Info().Str("source", source).Str("backup", backupPath).Msg("Created backup")
	return backupPath, nil
}

// copyDirRecursive copies every entry under src into dst, descending into
// subdirectories. Files are copied by content; metadata beyond the default
// mode is not preserved.
func copyDirRecursive(fsys types.FS, src, dst string) error {
	if _, err := fsys.Stat(dst); err != nil {
		if err := fsys.MkdirAll(dst, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
		}
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDirRecursive(fsys, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		content, err := fsys.ReadFile(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcPath)
		}
		if err := fsys.WriteFile(dstPath, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dstPath)
		}
	}

	return nil
}

// List returns the backups under parent, newest first. An empty parent
// defaults to the home directory; a missing parent yields an empty list.
func List(fsys types.FS, parent string) ([]Info, error) {
	if parent == "" {
		home, err := paths.GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		parent = home
	}

	if _, err := fsys.Stat(parent); err != nil {
		return nil, nil
	}

	entries, err := fsys.ReadDir(parent)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", parent)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if info, ok := InfoFromPath(filepath.Join(parent, entry.Name())); ok {
			backups = append(backups, info)
		}
	}

	// Timestamps sort lexically, so newest first is a reverse string sort
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp > backups[j].Timestamp
	})

	return backups, nil
}

// Latest returns the most recent backup under parent, or false when none
// exist.
func Latest(fsys types.FS, parent string) (Info, bool, error) {
	backups, err := List(fsys, parent)
	if err != nil {
		return Info{}, false, err
	}
	if len(backups) == 0 {
		return Info{}, false, nil
	}
	return backups[0], true, nil
}

// Restore replaces target with the contents of the backup. When target
// already exists, its current state is backed up first (next to the backup
// being restored) and then removed.
func Restore(fsys types.FS, backup Info, target string) error {
	logger := logging.GetLogger("backup")

	if _, err := fsys.Stat(backup.Path); err != nil {
		return errors.Wrapf(err, errors.ErrBackupNotFound, "backup does not exist: %s", backup.Path)
	}

	if _, err := fsys.Stat(target); err == nil {
		if _, err := Create(fsys, target, filepath.Dir(backup.Path)); err != nil {
			return err
		}
		if err := fsys.RemoveAll(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to clear target %s", target)
		}
	}

	if err := copyDirRecursive(fsys, backup.Path, target); err != nil {
		return err
	}

	logger.Info().Str("backup", backup.Path).Str("target", target).Msg("Restored from backup")
	return nil
}

// Verify reports whether the backup path is a non-empty directory.
func Verify(fsys types.FS, backupPath string) (bool, error) {
	info, err := fsys.Stat(backupPath)
	if err != nil {
		return false, nil
	}
	if !info.IsDir() {
		return false, nil
	}

	entries, err := fsys.ReadDir(backupPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read backup %s", backupPath)
	}
	return len(entries) > 0, nil
}

// Cleanup removes all but the keep most recent backups under parent and
// returns the paths it deleted.
func Cleanup(fsys types.FS, keep int, parent string) ([]string, error) {
	logger := logging.GetLogger("backup")

	backups, err := List(fsys, parent)
	if err != nil {
		return nil, err
	}
	if keep >= len(backups) {
		return nil, nil
	}

	var deleted []string
	for _, backup := range backups[keep:] {
		if err := fsys.RemoveAll(backup.Path); err != nil {
			return deleted, errors.Wrapf(err, errors.ErrFileWrite, "failed to delete backup %s", backup.Path)
		}
		logger.Info().Str("backup", backup.Path).Msg("Deleted old backup")
		deleted = append(deleted, backup.Path)
	}

	return deleted, nil
}
