package symlink

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
)

// Stow delegates link management to GNU Stow. The source directory is
// treated as a stow package: its parent becomes the stow dir and its name
// the package to (un)stow.
type Stow struct {
	// DryRun passes -n so stow simulates without changing the filesystem
	DryRun bool

	// Verbose passes -v for diagnostic output
	Verbose bool
}

// NewStow creates a stow-backed linker
func NewStow() *Stow {
	return &Stow{}
}

// Name returns the strategy name
func (s *Stow) Name() string {
	return "GNU Stow"
}

// IsAvailable reports whether the stow binary is on PATH
func (s *Stow) IsAvailable() bool {
	_, err := exec.LookPath("stow")
	return err == nil
}

// Link stows the source package into target
func (s *Stow) Link(source, target string) (*Report, error) {
	return s.run(source, target, false)
}

// Remove unstows the source package from target
func (s *Stow) Remove(source, target string) (*Report, error) {
	return s.run(source, target, true)
}

func (s *Stow) run(source, target string, unstow bool) (*Report, error) {
	logger := logging.GetLogger("symlink.stow")

	stowPath, err := exec.LookPath("stow")
	if err != nil {
		return nil, errors.New(errors.ErrDependencyMissing, "GNU Stow is not installed")
	}

	// The package is the last component of the source path, stowed from its
	// parent directory.
	pkg := filepath.Base(source)
	stowDir := filepath.Dir(source)
	if pkg == "." || pkg == string(filepath.Separator) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid source path %s", source)
	}

	args := []string{"-d", stowDir, "-t", target}
	for _, pattern := range Exclusions {
		args = append(args, "--ignore", pattern)
	}
	if unstow {
		args = append(args, "-D")
	}
	if s.DryRun {
		args = append(args, "-n")
	}
	if s.Verbose {
		args = append(args, "-v")
	}
	args = append(args, pkg)

	logging.LogCommand(stowPath, args)
	output, err := exec.Command(stowPath, args...).CombinedOutput()
	report := s.parseOutput(source, target, string(output), err)
	logger.Debug().Str("package", pkg).Bool("unstow", unstow).Str("summary", report.Summary()).Msg("Stow finished")

	return report, nil
}

// parseOutput maps stow's exit status and stderr onto a report. Stow gives
// no per-entry detail by default, so success is reported as a single
// package-level outcome.
func (s *Stow) parseOutput(source, target, output string, runErr error) *Report {
	report := NewReport()

	if runErr == nil {
		report.Add(Created(source, target))
		return report
	}

	// Stow reports conflicts on stderr
	conflictSeen := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "existing target") || strings.Contains(line, "conflict") {
			reason := FileExists
			if strings.Contains(line, "directory") {
				reason = DirectoryExists
			}
			report.Add(Conflicted(target, reason))
			conflictSeen = true
		}
	}

	if !conflictSeen {
		report.Add(Conflicted(target, FileExists))
	}

	return report
}

// Verify interface compliance
var _ Linker = (*Stow)(nil)
