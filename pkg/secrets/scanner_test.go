// pkg/secrets/scanner_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem via t.TempDir()
// PURPOSE: Test secret detection, extraction, and summary rendering

package secrets_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/secrets"
	"github.com/mattcuento/dotfiles-tool/pkg/testutil"
)

func TestIsLikelySecret(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"API_TOKEN", true},
		{"GITHUB_TOKEN", true},
		{"SECRET_KEY", true},
		{"DATABASE_PASSWORD", true},
		{"aws_auth_id", true},
		{"PUBLIC_KEY", false},
		{"SSH_KEY_PATH", false},
		{"KEY_FILE", false},
		{"KEYMAP", false},
		{"HOME", false},
		{"PATH", false},
		// Deny substrings win even when an allow keyword is also present
		{"PUBLIC_KEY_TOKEN", false},
		{"AUTH_KEYMAP", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, secrets.IsLikelySecret(tt.key))
		})
	}
}

func TestScanFile_FindsSecrets(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.CreateFile(t, tempDir, "config.sh",
		"export API_TOKEN=abc123\nexport GITHUB_TOKEN=xyz789\nexport HOME=/home/user\n")

	found, err := secrets.ScanFile(filesystem.NewOS(), path)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "API_TOKEN", found[0].Key)
	assert.Equal(t, "abc123", found[0].Value)
	assert.Equal(t, 1, found[0].Line)
	assert.Equal(t, "config.sh", found[0].File)
	assert.Equal(t, "GITHUB_TOKEN", found[1].Key)
	assert.Equal(t, 2, found[1].Line)
}

func TestScanFile_SkipsComments(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.CreateFile(t, tempDir, "config.sh",
		"# export API_TOKEN=abc123\n  // SECRET_KEY=hidden\nexport REAL_TOKEN=xyz789\n")

	found, err := secrets.ScanFile(filesystem.NewOS(), path)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "REAL_TOKEN", found[0].Key)
	assert.Equal(t, 3, found[0].Line)
}

func TestScanFile_QuotedValues(t *testing.T) {
	tempDir := t.TempDir()
	path := testutil.CreateFile(t, tempDir, "config.sh",
		"export API_TOKEN=\"abc123\"\nexport GITHUB_TOKEN='xyz789'\n")

	found, err := secrets.ScanFile(filesystem.NewOS(), path)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "abc123", found[0].Value)
	assert.Equal(t, "xyz789", found[1].Value)
}

func TestScanFile_Unreadable(t *testing.T) {
	_, err := secrets.ScanFile(filesystem.NewOS(), filepath.Join(t.TempDir(), "missing.sh"))
	require.Error(t, err)
}

func TestScanDirectory(t *testing.T) {
	tempDir := t.TempDir()
	testutil.CreateFile(t, tempDir, "config.sh", "export API_TOKEN=abc123\n")
	testutil.CreateFile(t, tempDir, ".zshrc", "export GITHUB_TOKEN=xyz789\n")
	testutil.CreateFile(t, tempDir, "readme.txt", "API_TOKEN=not-a-config-file\n")
	// Subdirectories are not descended into
	sub := testutil.CreateDir(t, tempDir, "nested")
	testutil.CreateFile(t, sub, "deep.sh", "export DEEP_TOKEN=nope\n")

	found, err := secrets.ScanDirectory(filesystem.NewOS(), tempDir)
	require.NoError(t, err)

	keys := make([]string, len(found))
	for i, s := range found {
		keys[i] = s.Key
	}
	assert.ElementsMatch(t, []string{"API_TOKEN", "GITHUB_TOKEN"}, keys)
}

func TestScanDirectory_MissingDirIsEmpty(t *testing.T) {
	found, err := secrets.ScanDirectory(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestExtractToFile(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")

	found := []secrets.Secret{
		{Key: "API_TOKEN", Value: "abc123", File: "config.sh", Line: 1},
		{Key: "GITHUB_TOKEN", Value: "xyz789", File: "config.sh", Line: 2},
	}

	require.NoError(t, secrets.ExtractToFile(filesystem.NewOS(), found, envPath))

	content := testutil.ReadFile(t, envPath)
	assert.True(t, strings.HasPrefix(content, "# Extracted secrets - DO NOT COMMIT THIS FILE\n# Add this file to .gitignore\n\n"))
	assert.Contains(t, content, "API_TOKEN=abc123\n")
	assert.Contains(t, content, "GITHUB_TOKEN=xyz789\n")
}

func TestExtractToFile_DedupFirstWins(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")

	found := []secrets.Secret{
		{Key: "API_TOKEN", Value: "1", File: "f1", Line: 1},
		{Key: "API_TOKEN", Value: "2", File: "f2", Line: 1},
	}

	require.NoError(t, secrets.ExtractToFile(filesystem.NewOS(), found, envPath))

	content := testutil.ReadFile(t, envPath)
	assert.Equal(t, 1, strings.Count(content, "API_TOKEN"))
	assert.Contains(t, content, "API_TOKEN=1\n")
	assert.NotContains(t, content, "API_TOKEN=2")
}

func TestExtractToFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	envPath := testutil.CreateFile(t, tempDir, ".env", "STALE=old\n")

	found := []secrets.Secret{{Key: "API_TOKEN", Value: "abc", File: "f", Line: 1}}
	require.NoError(t, secrets.ExtractToFile(filesystem.NewOS(), found, envPath))

	content := testutil.ReadFile(t, envPath)
	assert.NotContains(t, content, "STALE")
	assert.Contains(t, content, "API_TOKEN=abc")
}

func TestSummarize(t *testing.T) {
	found := []secrets.Secret{
		{Key: "API_TOKEN", Value: "abc123", File: "config.sh", Line: 5},
		{Key: "GITHUB_TOKEN", Value: "xyz789", File: "config.sh", Line: 10},
		{Key: "DB_PASSWORD", Value: "pw", File: ".zshrc", Line: 2},
	}

	summary := secrets.Summarize(found)

	assert.Contains(t, summary, "Found 3 secret(s) across 2 file(s)")
	assert.Contains(t, summary, "config.sh:")
	assert.Contains(t, summary, "  Line 5: API_TOKEN")
	assert.Contains(t, summary, "  Line 10: GITHUB_TOKEN")
	assert.Contains(t, summary, "  Line 2: DB_PASSWORD")

	// Files appear in first-seen order
	assert.Less(t, strings.Index(summary, "config.sh:"), strings.Index(summary, ".zshrc:"))
}

func TestVerifyEnvFile(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")

	found := []secrets.Secret{
		{Key: "API_TOKEN", Value: "abc123", File: "f", Line: 1},
		{Key: "DB_PASSWORD", Value: "pw", File: "f", Line: 2},
	}
	require.NoError(t, secrets.ExtractToFile(filesystem.NewOS(), found, envPath))

	keys, err := secrets.VerifyEnvFile(filesystem.NewOS(), envPath)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"API_TOKEN", "DB_PASSWORD"}, keys)
}
