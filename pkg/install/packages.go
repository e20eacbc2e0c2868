package install

import (
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
)

// Package sets installed by setup and checked by doctor. Grouped by purpose;
// each set installs best-effort (one failure does not stop the rest).
var (
	// EssentialPackages are required for dotfiles management itself
	EssentialPackages = []string{"stow", "fzf", "bat", "fd", "tree", "nvim", "tmux"}

	// OptionalPackages are recommended everyday tools
	OptionalPackages = []string{"ripgrep", "git", "curl", "wget"}

	// DevelopmentPackages support day-to-day development
	DevelopmentPackages = []string{"gh", "jq", "yq", "httpie", "just"}

	// CloudPackages are cloud and infrastructure tools
	CloudPackages = []string{"awscli", "opentofu", "terraform"}

	// ProductivityPackages are note-taking and planning tools
	ProductivityPackages = []string{"obsidian", "yakitrak/tap/obsidian-cli"}

	// EditorPackages are alternative editors and git tooling
	EditorPackages = []string{"helix", "lazygit"}
)

// PackageSets maps a set name to its packages, in install order.
func PackageSets() map[string][]string {
	return map[string][]string{
		"essential":    EssentialPackages,
		"optional":     OptionalPackages,
		"development":  DevelopmentPackages,
		"cloud":        CloudPackages,
		"productivity": ProductivityPackages,
		"editor":       EditorPackages,
	}
}

// EnsurePackage installs a package unless brew already has it.
func EnsurePackage(pkg string) error {
	if IsPackageInstalled(pkg) {
		logger := logging.GetLogger("install")
		logger.Debug().Str("package", pkg).Msg("Package already installed")
		return nil
	}
	return InstallPackage(pkg)
}

// InstallSet installs every package in the set, continuing past individual
// failures, and returns the packages that installed cleanly.
func InstallSet(packages []string) []string {
	logger := logging.GetLogger("install")

	var installed []string
	for _, pkg := range packages {
		if err := EnsurePackage(pkg); err != nil {
			logger.Warn().Err(err).Str("package", pkg).Msg("Package installation failed, continuing")
			continue
		}
		installed = append(installed, pkg)
	}
	return installed
}

// MissingFromSet returns the packages in the set that brew does not report
// as installed.
func MissingFromSet(packages []string) []string {
	var missing []string
	for _, pkg := range packages {
		if !IsPackageInstalled(pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}
