// Package dotfiles wires the CLI commands to the library packages.
package dotfiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mattcuento/dotfiles-tool/internal/version"
	"github.com/mattcuento/dotfiles-tool/pkg/backup"
	"github.com/mattcuento/dotfiles-tool/pkg/config"
	"github.com/mattcuento/dotfiles-tool/pkg/doctor"
	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/paths"
	"github.com/mattcuento/dotfiles-tool/pkg/secrets"
	"github.com/mattcuento/dotfiles-tool/pkg/style"
	"github.com/mattcuento/dotfiles-tool/pkg/symlink"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "dotfiles",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().Bool("force", false, MsgFlagForce)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Misc:"})

	// Styled help template (bold/upper funcs degrade to plain text off-TTY)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newUnlinkCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newSecretsCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// initPaths initializes the paths instance and warns when the dotfiles root
// fell back to ~/dotfiles
func initPaths() (paths.Paths, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning, p.DotfilesRoot())
	}

	return p, nil
}

// loadConfig reads the persisted configuration
func loadConfig(p paths.Paths) (*config.Config, error) {
	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// chooseLinker selects a linker per the configured method and applies the
// dry-run and force flags
func chooseLinker(fsys types.FS, cfg *config.Config, dryRun, force bool) symlink.Linker {
	linker := symlink.Choose(fsys, cfg.SymlinkMethod == config.MethodStow)

	switch l := linker.(type) {
	case *symlink.Manual:
		l.DryRun = dryRun
		l.Force = force
	case *symlink.Stow:
		l.DryRun = dryRun
	}

	return linker
}

func printReport(report *symlink.Report, dryRun bool) {
	fmt.Printf(MsgLinkSummary, report.Summary())
	for _, outcome := range report.Conflicts() {
		fmt.Printf(MsgConflictItem, style.Path.Render(outcome.Target), outcome.Reason)
	}
	if dryRun {
		fmt.Println(MsgDryRunNotice)
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(p)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			force, _ := cmd.Root().PersistentFlags().GetBool("force")

			fsys := filesystem.NewOS()
			linker := chooseLinker(fsys, cfg, dryRun, force)

			log.Info().
				Str("source", p.DotfilesRoot()).
				Str("target", p.HomeDir()).
				Str("linker", linker.Name()).
				Bool("dry_run", dryRun).
				Msg("Linking dotfiles")

			report, err := linker.Link(p.DotfilesRoot(), p.HomeDir())
			if err != nil {
				return err
			}

			printReport(report, dryRun)
			if !report.Success() {
				return errors.Newf(errors.ErrSymlinkFailed, "%d conflict(s) prevented linking", len(report.Conflicts()))
			}
			return nil
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unlink",
		Short:   MsgUnlinkShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(p)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			fsys := filesystem.NewOS()
			linker := chooseLinker(fsys, cfg, dryRun, false)

			report, err := linker.Remove(p.DotfilesRoot(), p.HomeDir())
			if err != nil {
				return err
			}

			printReport(report, dryRun)
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var (
		source    string
		target    string
		noBackup  bool
		noSecrets bool
		rollback  bool
	)

	cmd := &cobra.Command{
		Use:     "migrate",
		Short:   MsgMigrateShort,
		Long:    MsgMigrateLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()

			if rollback {
				if err := backup.Rollback(fsys, p.DotfilesRoot(), ""); err != nil {
					return err
				}
				fmt.Println(MsgRollbackDone)
				return nil
			}

			if source == "" {
				source = p.DotfilesRoot()
			}
			if target == "" {
				target = p.HomeDir()
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			opts := backup.NewMigrateOptions(source, target)
			opts.DryRun = dryRun
			opts.CreateBackup = !noBackup
			opts.ExtractSecrets = !noSecrets

			result, err := backup.Migrate(fsys, opts)
			if err != nil {
				return err
			}

			if result.BackupPath != "" {
				fmt.Printf(MsgBackupCreated, style.Path.Render(result.BackupPath))
			}
			if result.SecretsExtracted > 0 {
				fmt.Print(result.SecretsSummary)
				if !dryRun {
					fmt.Printf(MsgSecretsExtracted, result.SecretsExtracted, filepath.Join(target, paths.EnvFileName))
				}
			}
			if len(result.Conflicts) > 0 {
				fmt.Printf(MsgConflictsFormat, len(result.Conflicts))
				for _, conflict := range result.Conflicts {
					fmt.Printf(MsgConflictItem, style.Path.Render(conflict.Path), conflict.Reason)
				}
			}

			if result.LinkReport == nil {
				fmt.Println(MsgMigrateAborted)
				return errors.New(errors.ErrSymlinkFailed, "migration aborted due to conflicts")
			}

			printReport(result.LinkReport, dryRun)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Existing dotfiles directory (default: dotfiles root)")
	cmd.Flags().StringVar(&target, "target", "", "Link target directory (default: home)")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the pre-migration backup")
	cmd.Flags().BoolVar(&noSecrets, "no-secrets", false, "Skip secret extraction")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "Restore the dotfiles directory from the most recent backup")

	return cmd
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgBackupShort,
		GroupID: "core",
	}

	var parent string
	cmd.PersistentFlags().StringVar(&parent, "parent", "", "Directory holding backups (default: home)")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: MsgBackupCreateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			backupPath, err := backup.Create(filesystem.NewOS(), p.DotfilesRoot(), parent)
			if err != nil {
				return err
			}
			fmt.Printf(MsgBackupCreated, backupPath)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: MsgBackupListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := backup.List(filesystem.NewOS(), parent)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println(MsgNoBackupsFound)
				return nil
			}
			for _, info := range backups {
				fmt.Printf(MsgBackupItem, info.Timestamp, style.Path.Render(info.Path))
			}
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: MsgBackupRestoreShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			latest, ok, err := backup.Latest(fsys, parent)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrBackupNotFound, "no backup found to restore")
			}

			if err := backup.Restore(fsys, latest, p.DotfilesRoot()); err != nil {
				return err
			}
			fmt.Printf(MsgBackupRestored, latest.Timestamp)
			return nil
		},
	}

	var keep int
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: MsgBackupCleanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := backup.Cleanup(filesystem.NewOS(), keep, parent)
			if err != nil {
				return err
			}
			fmt.Printf(MsgBackupsDeleted, len(deleted))
			return nil
		},
	}
	cleanCmd.Flags().IntVar(&keep, "keep", 3, "Number of recent backups to keep")

	cmd.AddCommand(createCmd, listCmd, restoreCmd, cleanCmd)
	return cmd
}

func newSecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secrets",
		Short:   MsgSecretsShort,
		GroupID: "core",
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: MsgSecretsScanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			found, err := secrets.ScanDirectory(filesystem.NewOS(), p.DotfilesRoot())
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Println(MsgNoSecretsFound)
				return nil
			}
			fmt.Print(secrets.Summarize(found))
			return nil
		},
	}

	var output string
	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: MsgSecretsExtractShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			found, err := secrets.ScanDirectory(fsys, p.DotfilesRoot())
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Println(MsgNoSecretsFound)
				return nil
			}

			if output == "" {
				output = filepath.Join(p.DotfilesRoot(), paths.EnvFileName)
			}
			if err := secrets.ExtractToFile(fsys, found, output); err != nil {
				return err
			}
			fmt.Printf(MsgSecretsExtracted, len(found), output)
			return nil
		},
	}
	extractCmd.Flags().StringVarP(&output, "output", "o", "", "Output env file (default: <dotfiles root>/.env)")

	verifyCmd := &cobra.Command{
		Use:   "verify [file]",
		Short: MsgSecretsVerifyShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var envPath string
			if len(args) == 1 {
				envPath = args[0]
			} else {
				p, err := initPaths()
				if err != nil {
					return err
				}
				envPath = filepath.Join(p.DotfilesRoot(), paths.EnvFileName)
			}

			keys, err := secrets.VerifyEnvFile(filesystem.NewOS(), envPath)
			if err != nil {
				return err
			}
			fmt.Printf(MsgEnvKeysFormat, len(keys))
			for _, key := range keys {
				fmt.Printf(MsgEnvKeyItem, key)
			}
			return nil
		},
	}

	cmd.AddCommand(scanCmd, extractCmd, verifyCmd)
	return cmd
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   MsgDoctorShort,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			report := doctor.NewCheckReport()

			report.Merge(doctor.CheckDependencies())
			report.Merge(doctor.CheckPackages())

			if _, err := fsys.Stat(p.DotfilesRoot()); err == nil {
				report.Merge(doctor.CheckSymlinks(fsys, p.DotfilesRoot(), p.HomeDir()))
			}

			configDir := p.XDGConfigHome()
			if _, err := fsys.Stat(configDir); err == nil {
				report.Merge(doctor.CheckHardcodedPaths(fsys, configDir))
				report.Merge(doctor.CheckConfigs(fsys, configDir))
			}

			report.Merge(doctor.CheckWellKnownFiles(fsys, p.HomeDir()))
			report.Merge(doctor.CheckShellIntegration(fsys, p.HomeDir()))

			fmt.Println(report.Render())

			if report.HasErrors() {
				return fmt.Errorf(MsgErrDoctor, report.ErrorCount())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotfiles version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
