package symlink

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// ConflictEntry describes a target path that blocks link creation
type ConflictEntry struct {
	Path   string
	Reason ConflictReason
}

// Issue describes a target path that fails link validation
type Issue struct {
	Path    string
	Problem string
}

// DetectConflicts probes, read-only, which direct children of source cannot
// be linked into target. A missing source directory is an error
// (ErrSourceNotFound), consistent with Link and Remove.
func DetectConflicts(fsys types.FS, source, target string) ([]ConflictEntry, error) {
	entries, err := readSourceDir(fsys, source)
	if err != nil {
		return nil, err
	}

	var conflicts []ConflictEntry
	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		targetPath := filepath.Join(target, entry.Name())

		info, err := fsys.Lstat(targetPath)
		if err != nil {
			// Nothing at the target, no conflict
			continue
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			linkTarget, err := fsys.Readlink(targetPath)
			if err == nil && linkTarget == sourcePath {
				// Already correctly linked
				continue
			}
			conflicts = append(conflicts, ConflictEntry{Path: targetPath, Reason: WrongLinkTarget})
		} else if info.IsDir() {
			conflicts = append(conflicts, ConflictEntry{Path: targetPath, Reason: DirectoryExists})
		} else {
			conflicts = append(conflicts, ConflictEntry{Path: targetPath, Reason: FileExists})
		}
	}

	return conflicts, nil
}

// ValidateLinks checks that every direct child of source is correctly linked
// at target, reporting one issue per broken entry.
func ValidateLinks(fsys types.FS, source, target string) ([]Issue, error) {
	entries, err := readSourceDir(fsys, source)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		targetPath := filepath.Join(target, entry.Name())

		info, err := fsys.Lstat(targetPath)
		if err != nil {
			issues = append(issues, Issue{Path: targetPath, Problem: "link does not exist"})
			continue
		}

		if info.Mode()&fs.ModeSymlink == 0 {
			issues = append(issues, Issue{Path: targetPath, Problem: "not a link"})
			continue
		}

		linkTarget, err := fsys.Readlink(targetPath)
		if err != nil {
			issues = append(issues, Issue{Path: targetPath, Problem: "failed to read link"})
			continue
		}

		if linkTarget != sourcePath {
			issues = append(issues, Issue{
				Path:    targetPath,
				Problem: fmt.Sprintf("points to %s instead of %s", linkTarget, sourcePath),
			})
		}
	}

	return issues, nil
}

// readSourceDir lists the direct children of source, failing with a distinct
// error code when the source directory is absent.
func readSourceDir(fsys types.FS, source string) ([]fs.DirEntry, error) {
	if _, err := fsys.Stat(source); err != nil {
		return nil, errors.Newf(errors.ErrSourceNotFound, "source directory does not exist: %s", source)
	}

	entries, err := fsys.ReadDir(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read source directory %s", source)
	}

	return entries, nil
}
