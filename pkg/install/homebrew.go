// Package install shells out to Homebrew, git, and version managers to put
// tools on the machine. Every operation is idempotent: already-installed
// software is detected and left alone.
package install

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
)

// homebrewPaths are the standard brew locations: ARM macs first, then Intel.
var homebrewPaths = []string{
	"/opt/homebrew/bin/brew",
	"/usr/local/bin/brew",
}

// homebrewInstallURL is the official installation script
const homebrewInstallURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// DetectHomebrew returns the brew executable path, or empty when Homebrew is
// not installed at a standard location.
func DetectHomebrew() string {
	for _, path := range homebrewPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	// Linuxbrew and other layouts still end up on PATH
	if path, err := exec.LookPath("brew"); err == nil {
		return path
	}
	return ""
}

// IsHomebrewInstalled reports whether brew is available.
func IsHomebrewInstalled() bool {
	return DetectHomebrew() != ""
}

// InstallHomebrew runs the official installation script. A no-op when brew is
// already present.
func InstallHomebrew() error {
	if IsHomebrewInstalled() {
		return nil
	}

	logger := logging.GetLogger("install")
	logger.Info().Msg("Installing Homebrew")

	script := fmt.Sprintf(`/bin/bash -c "$(curl -fsSL %s)"`, homebrewInstallURL)
	cmd := exec.Command("bash", "-c", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrInstallFailed, "Homebrew installation failed")
	}

	logger.Info().Msg("Homebrew installed")
	return nil
}

// InstallPackage installs one package via brew.
func InstallPackage(pkg string) error {
	brew := DetectHomebrew()
	if brew == "" {
		return errors.New(errors.ErrDependencyMissing, "Homebrew is not installed")
	}

	logger := logging.GetLogger("install")
	logger.Info().Str("package", pkg).Msg("Installing package")
	logging.LogCommand(brew, []string{"install", pkg})

	cmd := exec.Command(brew, "install", pkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "failed to install %s", pkg)
	}
	return nil
}

// IsPackageInstalled reports whether brew knows the package as installed.
func IsPackageInstalled(pkg string) bool {
	brew := DetectHomebrew()
	if brew == "" {
		return false
	}
	return exec.Command(brew, "list", pkg).Run() == nil
}
