// Package language installs programming language runtimes through a version
// manager, with manual fallback instructions when none is available.
package language

import (
	"strings"

	"github.com/mattcuento/dotfiles-tool/pkg/install"
)

// Installer describes one language runtime.
type Installer interface {
	// Name is the identifier the version manager knows the language by
	Name() string

	// DisplayName is the human-facing name
	DisplayName() string

	// DefaultVersion is installed when the caller does not pick one
	DefaultVersion() string

	// FallbackInstructions explains manual installation when no version
	// manager is available
	FallbackInstructions() string
}

// Install puts the language runtime on the machine via the version manager.
// An empty version selects the installer's default.
func Install(installer Installer, vm install.VersionManager, version string) error {
	if version == "" {
		version = installer.DefaultVersion()
	}
	return install.InstallLanguageRuntime(vm, installer.Name(), version)
}

// All returns every supported language installer.
func All() []Installer {
	return []Installer{
		Java{},
		Node{},
		Python{},
		Rust{},
		Go{},
	}
}

// Get finds an installer by version-manager name or display name.
func Get(name string) (Installer, bool) {
	for _, installer := range All() {
		if installer.Name() == name || strings.EqualFold(installer.DisplayName(), name) {
			return installer, true
		}
	}
	return nil, false
}

type Go struct{}

func (Go) Name() string           { return "golang" }
func (Go) DisplayName() string    { return "Go" }
func (Go) DefaultVersion() string { return "1.23.4" }
func (Go) FallbackInstructions() string {
	return "Install Go manually:\n" +
		"  - macOS: brew install go\n" +
		"  - Linux: sudo apt install golang\n" +
		"  - Or visit: https://go.dev/doc/install"
}

type Node struct{}

func (Node) Name() string           { return "nodejs" }
func (Node) DisplayName() string    { return "Node.js" }
func (Node) DefaultVersion() string { return "22.12.0" }
func (Node) FallbackInstructions() string {
	return "Install Node.js manually:\n" +
		"  - macOS: brew install node\n" +
		"  - Linux: sudo apt install nodejs\n" +
		"  - Or use nvm: https://github.com/nvm-sh/nvm"
}

type Python struct{}

func (Python) Name() string           { return "python" }
func (Python) DisplayName() string    { return "Python" }
func (Python) DefaultVersion() string { return "3.12.1" }
func (Python) FallbackInstructions() string {
	return "Install Python manually:\n" +
		"  - macOS: brew install python@3.12\n" +
		"  - Linux: sudo apt install python3.12\n" +
		"  - Or use pyenv: https://github.com/pyenv/pyenv"
}

type Rust struct{}

func (Rust) Name() string           { return "rust" }
func (Rust) DisplayName() string    { return "Rust" }
func (Rust) DefaultVersion() string { return "1.83.0" }
func (Rust) FallbackInstructions() string {
	return "Install Rust manually:\n" +
		"  - Use rustup: https://rustup.rs\n" +
		"  - Or: curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh"
}

type Java struct{}

func (Java) Name() string           { return "java" }
func (Java) DisplayName() string    { return "Java" }
func (Java) DefaultVersion() string { return "openjdk-21" }
func (Java) FallbackInstructions() string {
	return "Install Java manually:\n" +
		"  - macOS: brew install openjdk@21\n" +
		"  - Linux: sudo apt install openjdk-21-jdk"
}
