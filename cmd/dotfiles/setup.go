package dotfiles

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mattcuento/dotfiles-tool/pkg/config"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/install"
	"github.com/mattcuento/dotfiles-tool/pkg/language"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// setupAnswers collects the interactive form input before anything is
// installed or written.
type setupAnswers struct {
	DotfilesDir     string
	LanguageManager string
	SymlinkMethod   string
	PackageSets     []string
	Languages       []string
	InstallOhMyZsh  bool
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Short:   MsgSetupShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			answers := setupAnswers{
				DotfilesDir:     p.DotfilesRoot(),
				LanguageManager: string(config.ManagerMise),
				SymlinkMethod:   string(config.MethodStow),
			}

			if err := runSetupForm(&answers); err != nil {
				return err
			}

			cfg := &config.Config{
				DotfilesDir:     answers.DotfilesDir,
				XDGConfigHome:   p.XDGConfigHome(),
				LanguageManager: config.LanguageManager(answers.LanguageManager),
				SymlinkMethod:   config.SymlinkMethod(answers.SymlinkMethod),
				InstallOhMyZsh:  answers.InstallOhMyZsh,
			}
			if err := cfg.Save(p.ConfigFilePath()); err != nil {
				return err
			}
			fmt.Printf(MsgConfigSaved, p.ConfigFilePath())

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			if dryRun {
				fmt.Println(MsgDryRunNotice)
				return nil
			}

			if err := runSetupInstall(filesystem.NewOS(), p.HomeDir(), cfg, answers); err != nil {
				return err
			}

			fmt.Println(MsgSetupComplete)
			return nil
		},
	}
}

// runSetupForm prompts for the bootstrap choices
func runSetupForm(answers *setupAnswers) error {
	setOptions := make([]huh.Option[string], 0)
	names := make([]string, 0)
	for name := range install.PackageSets() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		setOptions = append(setOptions, huh.NewOption(name, name))
	}

	languageOptions := make([]huh.Option[string], 0)
	for _, installer := range language.All() {
		label := fmt.Sprintf("%s %s", installer.DisplayName(), installer.DefaultVersion())
		languageOptions = append(languageOptions, huh.NewOption(label, installer.Name()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dotfiles directory").
				Description("Where your dotfiles repository lives").
				Value(&answers.DotfilesDir),

			huh.NewSelect[string]().
				Title("Language version manager").
				Options(
					huh.NewOption("mise (recommended)", string(config.ManagerMise)),
					huh.NewOption("asdf", string(config.ManagerAsdf)),
					huh.NewOption("rtx", string(config.ManagerRtx)),
					huh.NewOption("none", string(config.ManagerNone)),
				).
				Value(&answers.LanguageManager),

			huh.NewSelect[string]().
				Title("Symlink method").
				Options(
					huh.NewOption("GNU Stow", string(config.MethodStow)),
					huh.NewOption("Manual symlinks", string(config.MethodManual)),
				).
				Value(&answers.SymlinkMethod),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Package sets to install").
				Options(setOptions...).
				Value(&answers.PackageSets),

			huh.NewMultiSelect[string]().
				Title("Language runtimes to install").
				Options(languageOptions...).
				Value(&answers.Languages),

			huh.NewConfirm().
				Title("Install oh-my-zsh?").
				Value(&answers.InstallOhMyZsh),
		),
	)

	return form.Run()
}

// runSetupInstall performs the installations the form selected. Individual
// package failures are logged and skipped; structural failures (missing
// Homebrew, version manager install) abort.
func runSetupInstall(fsys types.FS, home string, cfg *config.Config, answers setupAnswers) error {
	if !install.IsHomebrewInstalled() {
		fmt.Println("Installing Homebrew...")
		if err := install.InstallHomebrew(); err != nil {
			return err
		}
	}

	sets := install.PackageSets()
	for _, name := range answers.PackageSets {
		packages, ok := sets[name]
		if !ok {
			continue
		}
		fmt.Printf("Installing %s packages...\n", name)
		installed := install.InstallSet(packages)
		log.Info().Str("set", name).Int("installed", len(installed)).Msg("Package set processed")
	}

	if cfg.LanguageManager != config.ManagerNone {
		vm := install.VersionManager(cfg.LanguageManager)
		if !install.IsVersionManagerInstalled(vm) {
			fmt.Printf("Installing %s...\n", vm.DisplayName())
			if err := install.InstallVersionManager(vm); err != nil {
				return err
			}
		}
		for _, name := range answers.Languages {
			installer, ok := language.Get(name)
			if !ok {
				continue
			}
			fmt.Printf("Installing %s %s...\n", installer.DisplayName(), installer.DefaultVersion())
			if err := language.Install(installer, vm, installer.DefaultVersion()); err != nil {
				log.Warn().Err(err).Str("language", installer.Name()).Msg("Runtime install failed")
				fmt.Println(installer.FallbackInstructions())
			}
		}
	}

	if answers.InstallOhMyZsh && !install.IsOhMyZshInstalled(fsys, home) {
		fmt.Println("Installing oh-my-zsh...")
		if err := install.InstallOhMyZsh(fsys, home); err != nil {
			return err
		}
	}

	return nil
}
