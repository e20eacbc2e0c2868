// Package paths provides centralized path handling for the dotfiles tool.
// It implements XDG Base Directory specification compliance and provides a
// consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvDataDir overrides the XDG data directory for the tool
	EnvDataDir = "DOTFILES_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for the tool
	EnvConfigDir = "DOTFILES_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultDotfilesDir is the default directory name for dotfiles,
	// resolved relative to the home directory when DOTFILES_ROOT is unset.
	DefaultDotfilesDir = "dotfiles"

	// AppDirName is the directory name for tool-specific files under XDG dirs
	AppDirName = "dotfiles"

	// ConfigFileName is the name of the persisted configuration file
	ConfigFileName = ".dotfiles.conf"

	// EnvFileName is the name of the extracted-secrets env file
	EnvFileName = ".env"

	// BackupDirPrefix is the prefix of timestamped backup directories
	BackupDirPrefix = ".dotfiles-backup-"

	// LogFileName is the name of the log file
	LogFileName = "dotfiles.log"
)

// Paths provides centralized path management for the dotfiles tool
type Paths interface {
	HomeDir() string
	DotfilesRoot() string
	UsedFallback() bool
	ConfigFilePath() string
	DataDir() string
	ConfigDir() string
	StateDir() string
	LogFilePath() string
	XDGConfigHome() string
}

type paths struct {
	homeDir      string
	dotfilesRoot string
	xdgData      string
	xdgConfig    string
	xdgState     string
	usedFallback bool
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it is resolved from DOTFILES_ROOT or falls back
// to ~/dotfiles (UsedFallback reports which).
func New(dotfilesRoot string) (Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{homeDir: home}

	if dotfilesRoot == "" {
		if root := os.Getenv(EnvDotfilesRoot); root != "" {
			p.dotfilesRoot = ExpandHome(root)
		} else {
			p.dotfilesRoot = filepath.Join(home, DefaultDotfilesDir)
			p.usedFallback = true
		}
	} else {
		p.dotfilesRoot = ExpandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG doesn't expose StateHome in all versions, so check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		p.xdgState = filepath.Join(p.homeDir, ".local", "state", AppDirName)
	}
}

// HomeDir returns the user's home directory
func (p *paths) HomeDir() string {
	return p.homeDir
}

// DotfilesRoot returns the root directory for dotfiles
func (p *paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedFallback reports whether the dotfiles root fell back to ~/dotfiles
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigFilePath returns the path of the persisted configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.homeDir, ConfigFileName)
}

// DataDir returns the XDG data directory for the tool
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for the tool
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for the tool
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// XDGConfigHome returns the user-level XDG config home (~/.config by default)
func (p *paths) XDGConfigHome() string {
	return xdg.ConfigHome
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the home directory. Paths that cannot
// be expanded are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something refers to another user's home, leave untouched
	return path
}
