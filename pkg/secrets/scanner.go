// Package secrets finds credential-shaped key/value assignments in
// configuration files and consolidates them into a gitignored env file.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/logging"
	"github.com/mattcuento/dotfiles-tool/pkg/types"
)

// Secret is one detected credential. Line is 1-indexed within the source file.
type Secret struct {
	Key   string
	Value string
	File  string
	Line  int
}

// scanExtensions lists the file extensions eligible for a directory scan.
// Extensionless dotfiles (names starting with ".") are also scanned.
var scanExtensions = []string{
	"sh", "bash", "zsh", "fish", "rc", "conf", "config", "toml", "yaml", "yml", "json", "env",
}

// ScanFile scans one file line by line and returns the secrets found, in line
// order. Lines whose left-trimmed content starts with "#" or "//" are skipped.
func ScanFile(fsys types.FS, path string) ([]Secret, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	fileName := filepath.Base(path)
	pats := patterns()

	var found []Secret
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}

		match := pats.envVar.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		key, value := match[1], match[2]
		if !IsLikelySecret(key) {
			continue
		}

		found = append(found, Secret{
			Key:   key,
			Value: value,
			File:  fileName,
			Line:  i + 1,
		})
	}

	return found, nil
}

// ScanDirectory scans the direct children of dir. Files are eligible when
// their extension is on the allow-list, or when they are extensionless
// dotfiles. Per-file scan failures contribute zero secrets instead of
// aborting the pass. A missing directory yields an empty result.
func ScanDirectory(fsys types.FS, dir string) ([]Secret, error) {
	logger := logging.GetLogger("secrets")

	if _, err := fsys.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to access %s", dir)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", dir)
	}

	var all []Secret
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !shouldScan(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		found, err := ScanFile(fsys, path)
		if err != nil {
			logger.Debug().Err(err).Str("file", path).Msg("Skipping unreadable file")
			continue
		}
		all = append(all, found...)
	}

	logger.Debug().Int("secrets", len(all)).Str("dir", dir).Msg("Directory scan complete")
	return all, nil
}

// shouldScan applies the extension allow-list. The leading dot of a dotfile
// is not an extension separator: ".zshrc" has no extension and is scanned
// because it is a dotfile, while ".config.yaml" has extension "yaml".
func shouldScan(name string) bool {
	base := strings.TrimPrefix(name, ".")
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		ext := base[idx+1:]
		for _, allowed := range scanExtensions {
			if ext == allowed {
				return true
			}
		}
		return false
	}
	// No extension: scan only dotfiles
	return strings.HasPrefix(name, ".")
}

// ExtractToFile writes the secrets to outputPath as KEY=value lines behind a
// warning header. Duplicate keys keep the first occurrence in input order;
// later values for the same key are dropped. An existing file is overwritten.
func ExtractToFile(fsys types.FS, found []Secret, outputPath string) error {
	var b strings.Builder
	b.WriteString("# Extracted secrets - DO NOT COMMIT THIS FILE\n")
	b.WriteString("# Add this file to .gitignore\n\n")

	seen := make(map[string]bool)
	for _, secret := range found {
		if seen[secret.Key] {
			continue
		}
		seen[secret.Key] = true
		fmt.Fprintf(&b, "%s=%s\n", secret.Key, secret.Value)
	}

	if err := fsys.WriteFile(outputPath, []byte(b.String()), 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", outputPath)
	}

	logger := logging.GetLogger("secrets")
	logger.Info().
		Int("keys", len(seen)).
		Str("path", outputPath).
		Msg("Extracted secrets to env file")
	return nil
}

// Summarize renders a per-file listing of the found secrets. Files appear in
// first-seen order, secrets within a file in input order.
func Summarize(found []Secret) string {
	byFile := make(map[string][]Secret)
	var order []string
	for _, secret := range found {
		if _, ok := byFile[secret.File]; !ok {
			order = append(order, secret.File)
		}
		byFile[secret.File] = append(byFile[secret.File], secret)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d secret(s) across %d file(s):\n\n", len(found), len(byFile))
	for _, file := range order {
		fmt.Fprintf(&b, "%s:\n", file)
		for _, secret := range byFile[file] {
			fmt.Fprintf(&b, "  Line %d: %s\n", secret.Line, secret.Key)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// VerifyEnvFile parses an extracted env file and returns the keys it defines.
// Used to confirm an extraction round-trips through a standard env parser.
func VerifyEnvFile(fsys types.FS, path string) ([]string, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	parsed, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse env file %s", path)
	}

	keys := make([]string, 0, len(parsed))
	for key := range parsed {
		keys = append(keys, key)
	}
	return keys, nil
}
