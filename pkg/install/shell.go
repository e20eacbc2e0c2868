package install

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

const ohMyZshInstallURL = "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"

// IsOhMyZshInstalled reports whether ~/.oh-my-zsh exists under home.
func IsOhMyZshInstalled(fsys types.FS, home string) bool {
	_, err := fsys.Stat(filepath.Join(home, ".oh-my-zsh"))
	return err == nil
}

// InstallOhMyZsh runs the official oh-my-zsh installer non-interactively.
// A no-op when already installed.
func InstallOhMyZsh(fsys types.FS, home string) error {
	if IsOhMyZshInstalled(fsys, home) {
		return nil
	}

	logger := logging.GetLogger("install")
	logger.Info().Msg("Installing oh-my-zsh")

	script := fmt.Sprintf(`sh -c "$(curl -fsSL %s)" "" --unattended`, ohMyZshInstallURL)
	cmd := exec.Command("bash", "-c", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, errors.ErrInstallFailed, "oh-my-zsh installation failed")
	}
	return nil
}

// InstallTmuxPluginManager clones TPM into ~/.tmux/plugins/tpm.
func InstallTmuxPluginManager(fsys types.FS, home string) error {
	return CloneRepo(fsys, RepoConfig{
		URL:        "https://github.com/tmux-plugins/tpm",
		TargetPath: filepath.Join(home, ".tmux", "plugins", "tpm"),
		Name:       "tpm",
	})
}

// IsTmuxPluginManagerInstalled reports whether TPM is present under home.
func IsTmuxPluginManagerInstalled(fsys types.FS, home string) bool {
	_, err := fsys.Stat(filepath.Join(home, ".tmux", "plugins", "tpm"))
	return err == nil
}

// EnsureScriptSourced appends a source line for scriptPath to the shell rc
// file unless one is already present. The rc file is created when missing.
func EnsureScriptSourced(fsys types.FS, shellRC, scriptPath, scriptName string) error {
	var content string
	if data, err := fsys.ReadFile(shellRC); err == nil {
		content = string(data)
	}

	if isScriptSourced(content, scriptPath) {
		logger := logging.GetLogger("install")
		logger.Debug().
			Str("script", scriptName).
			Str("rc", shellRC).
			Msg("Script already sourced")
		return nil
	}

	sourceLine := fmt.Sprintf("\n# Source %s\nsource %s\n", scriptName, scriptPath)
	if err := fsys.WriteFile(shellRC, []byte(content+sourceLine), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to update %s", shellRC)
	}
	return nil
}

// isScriptSourced recognizes both "source path" and ". path" forms.
func isScriptSourced(content, scriptPath string) bool {
	return strings.Contains(content, "source "+scriptPath) ||
		strings.Contains(content, ". "+scriptPath)
}
