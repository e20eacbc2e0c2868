package backup

import (
	"path/filepath"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/paths"
	"github.com/mattcuento/dotfiles-tool/pkg/secrets"
	"github.com/mattcuento/dotfiles-tool/pkg/symlink"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// MigrateOptions configures a migration from an existing dotfiles setup into
// a new one.
type MigrateOptions struct {
	// Source is the existing dotfiles directory
	Source string

	// Target is the directory links should land in (usually the home dir)
	Target string

	// ExtractSecrets scans the source and writes found secrets to
	// <target>/.env before linking
	ExtractSecrets bool

	// CreateBackup snapshots the source before any changes
	CreateBackup bool

	// BackupParent overrides where the snapshot lands; empty means home
	BackupParent string

	// DryRun computes and reports every step without touching the filesystem
	DryRun bool
}

// NewMigrateOptions returns options with secrets extraction and backup
// enabled.
func NewMigrateOptions(source, target string) MigrateOptions {
	return MigrateOptions{
		Source:         source,
		Target:         target,
		ExtractSecrets: true,
		CreateBackup:   true,
	}
}

// MigrateResult reports what a migration did.
type MigrateResult struct {
	// BackupPath is the snapshot location, empty when no backup was taken
	BackupPath string

	// SecretsExtracted counts the secrets found in the source
	SecretsExtracted int

	// SecretsSummary is the per-file listing of found secrets
	SecretsSummary string

	// LinkReport is the reconciliation report, nil when linking was aborted
	LinkReport *symlink.Report

	// Conflicts lists target paths that block linking
	Conflicts []symlink.ConflictEntry
}

// Migrate runs the migration sequence: backup, scan and extract secrets,
// detect conflicts, link. Linking is skipped when conflicts exist, unless
// this is a dry run.
func Migrate(fsys types.FS, opts MigrateOptions) (*MigrateResult, error) {
	logger := logging.GetLogger("migrate")
	result := &MigrateResult{}

	if _, err := fsys.Stat(opts.Source); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "source directory does not exist: %s", opts.Source)
	}

	if opts.CreateBackup && !opts.DryRun {
		logger.Info().Msg("Creating backup before migration")
		backupPath, err := Create(fsys, opts.Source, opts.BackupParent)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
	}

	if opts.ExtractSecrets {
		logger.Info().Msg("Scanning for secrets")
		found, err := secrets.ScanDirectory(fsys, opts.Source)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			result.SecretsSummary = secrets.Summarize(found)
			if !opts.DryRun {
				envPath := filepath.Join(opts.Target, paths.EnvFileName)
				if err := secrets.ExtractToFile(fsys, found, envPath); err != nil {
					return nil, err
				}
			}
			result.SecretsExtracted = len(found)
		}
	}

	logger.Info().Msg("Checking for conflicts")
	conflicts, err := symlink.DetectConflicts(fsys, opts.Source, opts.Target)
	if err != nil {
		return nil, err
	}
	result.Conflicts = conflicts

	if len(conflicts) > 0 && !opts.DryRun {
		logger.Warn().Int("conflicts", len(conflicts)).Msg("Migration aborted, resolve conflicts first")
		return result, nil
	}

	linker := symlink.NewManual(fsys)
	linker.DryRun = opts.DryRun

	report, err := linker.Link(opts.Source, opts.Target)
	if err != nil {
		return nil, err
	}
	result.LinkReport = report
	logger.Info().Str("summary", report.Summary()).Bool("dry_run", opts.DryRun).Msg("Symlink pass complete")

	return result, nil
}

// Rollback restores the target from the most recent backup under parent.
// An empty parent defaults to the home directory.
func Rollback(fsys types.FS, target, parent string) error {
	logger := logging.GetLogger("migrate")

	latest, ok, err := Latest(fsys, parent)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrBackupNotFound, "no backup found to rollback from")
	}

	logger.Info().Str("timestamp", latest.Timestamp).Msg("Rolling back from backup")
	return Restore(fsys, latest, target)
}

// VerifyMigration checks every expected link in target and returns the
// issues found.
func VerifyMigration(fsys types.FS, source, target string) ([]symlink.Issue, error) {
	return symlink.ValidateLinks(fsys, source, target)
}
