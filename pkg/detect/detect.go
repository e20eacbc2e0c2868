// Package detect probes the local machine: operating system, installed
// tools, and well-known dotfiles that would block linking.
package detect

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// OS identifies the host operating system family.
type OS int

const (
	Unknown OS = iota
	MacOS
	Linux
)

func (o OS) String() string {
	switch o {
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "unknown"
	}
}

// DetectOS classifies the running platform.
func DetectOS() OS {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// IsInstalled reports whether a tool is on PATH.
func IsInstalled(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// ToolPath returns the resolved PATH location of a tool, or empty when the
// tool is not installed.
func ToolPath(tool string) string {
	path, err := exec.LookPath(tool)
	if err != nil {
		return ""
	}
	return path
}

// wellKnownFiles are the dotfiles most setups manage and therefore most
// likely to collide with an incoming link pass.
var wellKnownFiles = []string{".zshrc", ".tmux.conf", filepath.Join(".config", "nvim"), ".gitconfig"}

// WellKnownConflicts returns the well-known dotfile paths under home that
// exist as plain files or directories rather than symlinks.
func WellKnownConflicts(fsys types.FS, home string) []string {
	var conflicts []string
	for _, file := range wellKnownFiles {
		path := filepath.Join(home, file)
		info, err := fsys.Lstat(path)
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}
		conflicts = append(conflicts, path)
	}
	return conflicts
}
