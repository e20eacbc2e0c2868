package install

import (
	"os"
	"os/exec"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
)

// VersionManager is a runtime version manager such as mise or asdf.
type VersionManager string

const (
	Asdf VersionManager = "asdf"
	Mise VersionManager = "mise"
	Rtx  VersionManager = "rtx" // older name for mise
)

// Command returns the executable name.
func (vm VersionManager) Command() string {
	return string(vm)
}

// DisplayName returns the human-facing name.
func (vm VersionManager) DisplayName() string {
	if vm == Asdf {
		return "ASDF"
	}
	return string(vm)
}

// HomebrewPackage returns the brew package that provides the manager.
func (vm VersionManager) HomebrewPackage() string {
	return string(vm)
}

// IsVersionManagerInstalled reports whether the manager is on PATH.
func IsVersionManagerInstalled(vm VersionManager) bool {
	_, err := exec.LookPath(vm.Command())
	return err == nil
}

// DetectVersionManager finds an installed manager, preferring mise, then
// asdf, then rtx. Returns false when none is installed.
func DetectVersionManager() (VersionManager, bool) {
	for _, vm := range []VersionManager{Mise, Asdf, Rtx} {
		if IsVersionManagerInstalled(vm) {
			return vm, true
		}
	}
	return "", false
}

// InstallVersionManager installs the manager via brew unless present.
func InstallVersionManager(vm VersionManager) error {
	if IsVersionManagerInstalled(vm) {
		return nil
	}
	logger := logging.GetLogger("install")
	logger.Info().Str("manager", vm.DisplayName()).Msg("Installing version manager")
	return InstallPackage(vm.HomebrewPackage())
}

// InstallPreferredVersionManager returns the detected manager, installing
// mise when none exists.
func InstallPreferredVersionManager() (VersionManager, error) {
	if vm, ok := DetectVersionManager(); ok {
		return vm, nil
	}
	if err := InstallVersionManager(Mise); err != nil {
		return "", err
	}
	return Mise, nil
}

// InstallLanguageRuntime installs a language version through the manager and
// sets it as the global default. For asdf the plugin is added first.
func InstallLanguageRuntime(vm VersionManager, language, version string) error {
	logger := logging.GetLogger("install")

	vmPath, err := exec.LookPath(vm.Command())
	if err != nil {
		return errors.Newf(errors.ErrDependencyMissing, "%s is not installed", vm.DisplayName())
	}

	logger.Info().
		Str("language", language).
		Str("version", version).
		Str("manager", vm.DisplayName()).
		Msg("Installing language runtime")

	if vm == Asdf {
		// Best effort: the plugin may already exist
		_ = exec.Command(vmPath, "plugin", "add", language).Run()
	}

	for _, args := range [][]string{
		{"install", language, version},
		{"global", language, version},
	} {
		logging.LogCommand(vmPath, args)
		cmd := exec.Command(vmPath, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return errors.Wrapf(err, errors.ErrInstallFailed, "failed to %s %s %s", args[0], language, version)
		}
	}

	return nil
}
