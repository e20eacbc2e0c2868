package install

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// RepoConfig describes a repository to clone.
type RepoConfig struct {
	URL        string
	TargetPath string
	Name       string
}

// CloneRepo clones the repository unless the target already exists.
func CloneRepo(fsys types.FS, config RepoConfig) error {
	logger := logging.GetLogger("install")

	if _, err := fsys.Stat(config.TargetPath); err == nil {
		logger.Info().Str("repo", config.Name).Str("path", config.TargetPath).Msg("Repository already exists")
		return nil
	}

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return errors.New(errors.ErrDependencyMissing, "git is not installed")
	}

	if err := fsys.MkdirAll(filepath.Dir(config.TargetPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", config.TargetPath)
	}

	logger.Info().Str("repo", config.Name).Str("url", config.URL).Str("path", config.TargetPath).Msg("Cloning repository")
	logging.LogCommand(gitPath, []string{"clone", config.URL, config.TargetPath})

	cmd := exec.Command(gitPath, "clone", config.URL, config.TargetPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "failed to clone %s repository", config.Name)
	}
	return nil
}

// CloneDotfilesRepo clones the dotfiles repository to targetDir.
func CloneDotfilesRepo(fsys types.FS, targetDir, repoURL string) error {
	return CloneRepo(fsys, RepoConfig{
		URL:        repoURL,
		TargetPath: targetDir,
		Name:       "dotfiles",
	})
}

// IsGitRepo reports whether the directory contains a .git entry.
func IsGitRepo(fsys types.FS, path string) bool {
	_, err := fsys.Stat(filepath.Join(path, ".git"))
	return err == nil
}
