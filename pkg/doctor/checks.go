package doctor

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mattcuento/dotfiles-tool/pkg/detect"
	"github.com/mattcuento/dotfiles-tool/pkg/install"
	"github.com/mattcuento/dotfiles-tool/pkg/symlink"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// CheckHomebrew verifies brew is installed. Outside macOS this is
// informational only.
func CheckHomebrew() CheckResult {
	if detect.DetectOS() != detect.MacOS {
		return PassResult("Homebrew", "Not required (not on macOS)")
	}
	if path := install.DetectHomebrew(); path != "" {
		return PassResult("Homebrew", "Installed at "+path)
	}
	return FailResult("Homebrew", "Not installed",
		`Install with: /bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`)
}

// CheckVersionManager verifies a runtime version manager exists.
func CheckVersionManager() CheckResult {
	if vm, ok := install.DetectVersionManager(); ok {
		return PassResult("Version Manager",
			fmt.Sprintf("%s installed at %s", vm.DisplayName(), detect.ToolPath(vm.Command())))
	}
	return WarnResult("Version Manager",
		"No version manager detected (ASDF, mise, or rtx)",
		"Install mise with: brew install mise")
}

// CheckTool verifies one tool is on PATH.
func CheckTool(tool string) CheckResult {
	if path := detect.ToolPath(tool); path != "" {
		return PassResult(tool, "Installed at "+path)
	}
	return FailResult(tool, "Not installed", "Install with: brew install "+tool)
}

// CheckDependencies runs the homebrew, version manager, and essential tool
// checks.
func CheckDependencies() *CheckReport {
	report := NewCheckReport()
	report.Add(CheckHomebrew())
	report.Add(CheckVersionManager())
	for _, tool := range []string{"stow", "git"} {
		report.Add(CheckTool(tool))
	}
	return report
}

// CheckPackages reports on the brew package sets. Missing essential packages
// fail; missing development and cloud packages warn; the rest are
// informational.
func CheckPackages() *CheckReport {
	report := NewCheckReport()

	if !install.IsHomebrewInstalled() {
		report.Add(WarnResult("Packages", "Homebrew unavailable, skipping package checks",
			"Install Homebrew first"))
		return report
	}

	for _, pkg := range install.MissingFromSet(install.EssentialPackages) {
		report.Add(FailResult("Essential Package", "Missing essential package: "+pkg,
			"Run: brew install "+pkg))
	}

	if missing := install.MissingFromSet(install.DevelopmentPackages); len(missing) > 0 {
		report.Add(WarnResult("Development Tools",
			fmt.Sprintf("Missing %d development tools: %s", len(missing), strings.Join(missing, ", ")),
			"Run: dotfiles setup (or install manually)"))
	} else {
		report.Add(PassResult("Development Tools", "All development tools installed"))
	}

	if missing := install.MissingFromSet(install.CloudPackages); len(missing) > 0 {
		report.Add(WarnResult("Cloud Tools",
			fmt.Sprintf("Missing %d cloud tools: %s", len(missing), strings.Join(missing, ", ")),
			"Run: brew install "+strings.Join(missing, " ")))
	} else {
		report.Add(PassResult("Cloud Tools", "All cloud tools installed"))
	}

	for _, optional := range []struct {
		name     string
		packages []string
	}{
		{"Productivity Tools", install.ProductivityPackages},
		{"Editor Tools", install.EditorPackages},
	} {
		if missing := install.MissingFromSet(optional.packages); len(missing) > 0 {
			report.Add(PassResult(optional.name,
				fmt.Sprintf("Optional: %d tools available for install (%s)",
					len(missing), strings.Join(missing, ", "))))
		} else {
			report.Add(PassResult(optional.name, "All tools installed"))
		}
	}

	return report
}

// CheckSymlinks validates every expected link from source into target.
func CheckSymlinks(fsys types.FS, source, target string) *CheckReport {
	report := NewCheckReport()

	issues, err := symlink.ValidateLinks(fsys, source, target)
	if err != nil {
		report.Add(FailResult("Symlinks", "Failed to validate symlinks: "+err.Error(), ""))
		return report
	}

	if len(issues) == 0 {
		report.Add(PassResult("Symlinks",
			fmt.Sprintf("All symlinks from %s to %s are valid", source, target)))
		return report
	}

	for _, issue := range issues {
		report.Add(FailResult("Symlink:"+filepath.Base(issue.Path), issue.Problem,
			"Fix symlink at "+issue.Path))
	}
	return report
}

// CheckWellKnownFiles flags well-known dotfiles occupied by plain files.
func CheckWellKnownFiles(fsys types.FS, home string) *CheckReport {
	report := NewCheckReport()

	conflicts := detect.WellKnownConflicts(fsys, home)
	if len(conflicts) == 0 {
		report.Add(PassResult("Dotfiles", "No unmanaged well-known dotfiles"))
		return report
	}

	for _, path := range conflicts {
		report.Add(WarnResult("Dotfiles:"+filepath.Base(path),
			"Exists but is not a symlink", "Run: dotfiles migrate to adopt it"))
	}
	return report
}

// homePathPattern matches hardcoded user home paths like /Users/alice or
// /home/alice.
var homePathPattern = regexp.MustCompile(`/(?:Users|home)/[a-zA-Z0-9_-]+`)

// pathScanExtensions are the config file extensions scanned for hardcoded
// paths.
var pathScanExtensions = []string{"sh", "bash", "zsh", "fish", "rc", "conf", "config", "toml", "yaml", "yml"}

// CheckHardcodedPathsInFile scans one file for hardcoded home paths.
func CheckHardcodedPathsInFile(fsys types.FS, path string) CheckResult {
	name := "Paths:" + filepath.Base(path)

	content, err := fsys.ReadFile(path)
	if err != nil {
		return FailResult(name, "Failed to read file: "+err.Error(), "")
	}

	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			continue
		}
		if homePathPattern.MatchString(line) {
			count++
		}
	}

	if count == 0 {
		return PassResult(name, "No hardcoded paths found")
	}
	return WarnResult(name, fmt.Sprintf("Found %d hardcoded path(s)", count),
		"Use $HOME or ~ instead of absolute paths")
}

// CheckHardcodedPaths scans the direct children of dir for hardcoded home
// paths in config files.
func CheckHardcodedPaths(fsys types.FS, dir string) *CheckReport {
	report := NewCheckReport()

	if _, err := fsys.Stat(dir); err != nil {
		report.Add(FailResult("Paths", "Directory does not exist: "+dir, ""))
		return report
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		report.Add(FailResult("Paths", "Failed to read directory: "+err.Error(), ""))
		return report
	}

	for _, entry := range entries {
		if entry.IsDir() || !eligibleForPathScan(entry.Name()) {
			continue
		}
		report.Add(CheckHardcodedPathsInFile(fsys, filepath.Join(dir, entry.Name())))
	}

	if report.Total() == 0 {
		report.Add(PassResult("Paths", "No config files found in "+dir))
	}
	return report
}

func eligibleForPathScan(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(strings.TrimPrefix(name, ".")), ".")
	if ext != "" {
		for _, allowed := range pathScanExtensions {
			if ext == allowed {
				return true
			}
		}
		return false
	}
	return strings.HasPrefix(name, ".")
}

// CheckConfigSyntax validates a config file's syntax based on its extension.
// Unknown extensions pass with a skip note.
func CheckConfigSyntax(fsys types.FS, path string) CheckResult {
	name := "Config:" + filepath.Base(path)

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	var parse func([]byte) error
	var format string
	switch ext {
	case "toml":
		format = "TOML"
		parse = func(data []byte) error {
			var v interface{}
			return gotoml.Unmarshal(data, &v)
		}
	case "json":
		format = "JSON"
		parse = func(data []byte) error {
			var v interface{}
			return json.Unmarshal(data, &v)
		}
	case "yaml", "yml":
		format = "YAML"
		parse = func(data []byte) error {
			var v interface{}
			return yaml.Unmarshal(data, &v)
		}
	default:
		return PassResult(name, "Skipped validation for ."+ext+" file")
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		return FailResult(name, "Failed to read file: "+err.Error(), "")
	}
	if err := parse(content); err != nil {
		return FailResult(name, fmt.Sprintf("Invalid %s syntax: %v", format, err),
			"Fix the "+format+" syntax errors")
	}
	return PassResult(name, "Valid "+format+" syntax")
}

// CheckConfigs validates every TOML, JSON, and YAML file directly under dir.
func CheckConfigs(fsys types.FS, dir string) *CheckReport {
	report := NewCheckReport()

	if _, err := fsys.Stat(dir); err != nil {
		report.Add(FailResult("Configs", "Directory does not exist: "+dir, ""))
		return report
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		report.Add(FailResult("Configs", "Failed to read directory: "+err.Error(), ""))
		return report
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.TrimPrefix(filepath.Ext(entry.Name()), ".") {
		case "toml", "json", "yaml", "yml":
			report.Add(CheckConfigSyntax(fsys, filepath.Join(dir, entry.Name())))
		}
	}

	if report.Total() == 0 {
		report.Add(PassResult("Configs", "No config files found in "+dir))
	}
	return report
}

// CheckShellIntegration verifies the shell rc file exists.
func CheckShellIntegration(fsys types.FS, home string) *CheckReport {
	report := NewCheckReport()

	zshrc := filepath.Join(home, ".zshrc")
	if _, err := fsys.Stat(zshrc); err != nil {
		report.Add(WarnResult("Shell RC", "~/.zshrc not found",
			"Create .zshrc or use a different shell"))
		return report
	}
	report.Add(PassResult("Shell RC", "Found "+zshrc))
	return report
}
