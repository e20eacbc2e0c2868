package dotfiles

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "A personal machine bootstrap and dotfiles manager"
	MsgRootLong = `dotfiles bootstraps a workstation and keeps its configuration files
managed: it clones your dotfiles repository, symlinks configs into the home
directory, installs packages and language runtimes, extracts accidentally
committed secrets, and runs a health-check checklist.`

	MsgSetupShort   = "Interactively bootstrap this machine"
	MsgInitShort    = "Clone a dotfiles repository"
	MsgLinkShort    = "Symlink dotfiles into the home directory"
	MsgUnlinkShort  = "Remove managed symlinks from the home directory"
	MsgMigrateShort = "Migrate an existing dotfiles setup"
	MsgMigrateLong = `Migrate runs the full adoption sequence over an existing setup:
back up the source directory, scan it for committed secrets and extract them
to a gitignored .env file, detect conflicts in the target, and create the
symlinks when the target is clean.`
	MsgBackupShort        = "Manage timestamped backups"
	MsgBackupCreateShort  = "Create a backup of the dotfiles directory"
	MsgBackupListShort    = "List existing backups, newest first"
	MsgBackupRestoreShort = "Restore the most recent backup"
	MsgBackupCleanShort   = "Delete old backups, keeping the most recent"
	MsgSecretsShort       = "Scan config files for committed secrets"
	MsgSecretsScanShort   = "Scan the dotfiles directory and print findings"
	MsgSecretsExtractShort = "Extract found secrets to a gitignored env file"
	MsgSecretsVerifyShort  = "Parse an extracted env file and list its keys"
	MsgDoctorShort        = "Run health checks over the machine and setup"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice     = "\nDRY RUN MODE - No changes were made"
	MsgNoSecretsFound   = "No secrets found."
	MsgNoBackupsFound   = "No backups found."
	MsgNoConflicts      = "No conflicts detected."
	MsgConflictsFormat  = "Found %d conflict(s):\n"
	MsgConflictItem     = "  - %s: %s\n"
	MsgBackupItem       = "  %s  %s\n"
	MsgLinkSummary      = "Symlink operation: %s\n"
	MsgBackupCreated    = "Created backup at %s\n"
	MsgBackupRestored   = "Restored from backup %s\n"
	MsgBackupsDeleted   = "Deleted %d old backup(s)\n"
	MsgSecretsExtracted = "Extracted %d secret(s) to %s\n"
	MsgEnvKeysFormat    = "Env file defines %d key(s):\n"
	MsgEnvKeyItem       = "  %s\n"
	MsgMigrateAborted   = "Migration aborted due to conflicts.\n  Resolve them manually or re-run with --force"
	MsgRollbackDone     = "Rollback complete."
	MsgSetupComplete    = "\nSetup complete! Next steps:\n  1. Restart your shell or run: source ~/.zshrc\n  2. Verify the installation: dotfiles doctor"
	MsgConfigSaved      = "Configuration saved to %s\n"
	MsgRepoCloned       = "Dotfiles repository ready at %s\n"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoCommand  = "no command specified"
	MsgErrDoctor     = "health checks reported %d error(s)"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagForce   = "Replace symlinks that point to the wrong location"

	// Warnings
	MsgFallbackWarning = "Warning: DOTFILES_ROOT not set, using %s\n"
)

// MsgUsageTemplate styles cobra's usage output with the bold/upper/boldUpper
// template funcs registered by initTemplateFormatting.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold (upper .Title)}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
