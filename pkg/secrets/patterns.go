package secrets

import (
	"regexp"
	"strings"
	"sync"
)

// patternSet holds the compiled patterns used to recognize credential-shaped
// assignments. It is built once and shared read-only by every scan.
type patternSet struct {
	// envVar matches environment variable assignments:
	// export TOKEN=value, API_KEY=value, TOKEN="value", TOKEN='value'
	envVar *regexp.Regexp

	// apiKey matches key-value style declarations: api_key: "value", apiKey = value
	apiKey *regexp.Regexp

	// token matches token declarations: token: "value", access_token = value
	token *regexp.Regexp

	// password matches password declarations: password: "value", passwd = value
	password *regexp.Regexp
}

var (
	patternsOnce sync.Once
	patternsInst *patternSet
)

func patterns() *patternSet {
	patternsOnce.Do(func() {
		patternsInst = &patternSet{
			envVar:   regexp.MustCompile(`(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)=['"]?([^'"\s]+)['"]?`),
			apiKey:   regexp.MustCompile(`(?i)(?:api[_-]?key)[:\s=]+['"]?([^'"\s]+)['"]?`),
			token:    regexp.MustCompile(`(?i)(?:access[_-]?token|token)[:\s=]+['"]?([^'"\s]+)['"]?`),
			password: regexp.MustCompile(`(?i)(?:password|passwd)[:\s=]+['"]?([^'"\s]+)['"]?`),
		}
	})
	return patternsInst
}

// allowKeywords must appear (as a substring of the uppercased key) for the key
// to be considered a credential.
var allowKeywords = []string{"TOKEN", "KEY", "SECRET", "PASSWORD", "PASS", "AUTH"}

// denySubstrings unconditionally exclude a key, even when an allow keyword is
// also present.
var denySubstrings = []string{"PUBLIC_KEY", "SSH_KEY_PATH", "KEY_FILE", "KEYMAP"}

// IsLikelySecret reports whether a key name suggests it holds a credential.
// The check is substring-based on the uppercased key: one of the allow
// keywords must be present, and none of the deny substrings may be.
func IsLikelySecret(key string) bool {
	upper := strings.ToUpper(key)

	allowed := false
	for _, keyword := range allowKeywords {
		if strings.Contains(upper, keyword) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	for _, deny := range denySubstrings {
		if strings.Contains(upper, deny) {
			return false
		}
	}

	return true
}
