package symlink

import (
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// Manual creates links with the native symlink primitive. It is the fallback
// strategy when GNU Stow is not installed.
type Manual struct {
	fs types.FS

	// DryRun computes and reports outcomes without touching the filesystem
	DryRun bool

	// Force removes and recreates links that resolve elsewhere. Force never
	// overrides plain files or directories; those always conflict.
	Force bool
}

// NewManual creates a manual linker over the given filesystem
func NewManual(fsys types.FS) *Manual {
	return &Manual{fs: fsys}
}

// Name returns the strategy name
func (m *Manual) Name() string {
	return "manual symlinks"
}

// IsAvailable reports whether native symlinks can be created. Creating
// symlinks is a privileged operation on Windows, so the strategy is limited
// to Unix-like systems.
func (m *Manual) IsAvailable() bool {
	return runtime.GOOS != "windows"
}

// Link reconciles every direct child of source against target. Exactly one
// outcome is recorded per child; filesystem errors abort the whole pass.
func (m *Manual) Link(source, target string) (*Report, error) {
	logger := logging.GetLogger("symlink.manual")
	report := NewReport()

	if !m.IsAvailable() {
		return nil, errors.Newf(errors.ErrUnsupportedPlatform, "native symlinks are not supported on %s", runtime.GOOS)
	}

	if err := m.forEachEntry(source, target, func(sourcePath, targetPath string) error {
		outcome, err := m.linkOne(sourcePath, targetPath)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("source", sourcePath).
			Str("target", targetPath).
			Int("outcome", int(outcome.Kind)).
			Bool("dryRun", m.DryRun).
			Msg("Reconciled entry")
		report.Add(outcome)
		return nil
	}); err != nil {
		return nil, err
	}

	return report, nil
}

// Remove deletes the links that Link would create. Targets that are not
// links are reported as conflicts and left untouched.
func (m *Manual) Remove(source, target string) (*Report, error) {
	report := NewReport()

	if err := m.forEachEntry(source, target, func(_, targetPath string) error {
		outcome, err := m.removeOne(targetPath)
		if err != nil {
			return err
		}
		report.Add(outcome)
		return nil
	}); err != nil {
		return nil, err
	}

	return report, nil
}

// forEachEntry walks the direct children of source. A source that is a plain
// file is treated as a single entry.
func (m *Manual) forEachEntry(source, target string, fn func(sourcePath, targetPath string) error) error {
	info, err := m.fs.Stat(source)
	if err != nil {
		return errors.Newf(errors.ErrSourceNotFound, "source directory does not exist: %s", source)
	}

	if !info.IsDir() {
		return fn(source, filepath.Join(target, filepath.Base(source)))
	}

	entries, err := m.fs.ReadDir(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read source directory %s", source)
	}

	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		targetPath := filepath.Join(target, entry.Name())
		if err := fn(sourcePath, targetPath); err != nil {
			return err
		}
	}

	return nil
}

// linkOne reconciles a single target path against its source entry
func (m *Manual) linkOne(sourcePath, targetPath string) (Outcome, error) {
	info, err := m.fs.Lstat(targetPath)
	if err == nil {
		if info.Mode()&fs.ModeSymlink != 0 {
			linkTarget, readErr := m.fs.Readlink(targetPath)
			if readErr == nil && linkTarget == sourcePath {
				return AlreadyCorrect(targetPath), nil
			}

			if !m.Force {
				return Conflicted(targetPath, WrongLinkTarget), nil
			}

			if !m.DryRun {
				if err := m.fs.Remove(targetPath); err != nil {
					return Outcome{}, errors.Wrapf(err, errors.ErrSymlinkFailed, "failed to remove stale link %s", targetPath)
				}
			}
		} else if info.IsDir() {
			return Conflicted(targetPath, DirectoryExists), nil
		} else {
			return Conflicted(targetPath, FileExists), nil
		}
	}

	if !m.DryRun {
		parent := filepath.Dir(targetPath)
		if _, err := m.fs.Stat(parent); err != nil {
			if err := m.fs.MkdirAll(parent, 0755); err != nil {
				return Outcome{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory %s", parent)
			}
		}

		if err := m.fs.Symlink(sourcePath, targetPath); err != nil {
			return Outcome{}, errors.Wrapf(err, errors.ErrSymlinkFailed, "failed to link %s -> %s", targetPath, sourcePath)
		}
	}

	return Created(sourcePath, targetPath), nil
}

// removeOne removes a single link if present
func (m *Manual) removeOne(targetPath string) (Outcome, error) {
	info, err := m.fs.Lstat(targetPath)
	if err != nil {
		return Skipped(targetPath, "link does not exist"), nil
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return Conflicted(targetPath, NotALink), nil
	}

	if !m.DryRun {
		if err := m.fs.Remove(targetPath); err != nil {
			return Outcome{}, errors.Wrapf(err, errors.ErrSymlinkFailed, "failed to remove link %s", targetPath)
		}
	}

	return Removed(targetPath), nil
}

// Verify interface compliance
var _ Linker = (*Manual)(nil)
