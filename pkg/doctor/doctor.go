// Package doctor runs a checklist of health checks over the machine and the
// dotfiles setup: dependencies, packages, symlinks, config syntax, and shell
// integration. Checks report structured results; rendering and exit codes
// are the CLI's concern.
package doctor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattcuento/dotfiles-tool/pkg/style"
)

// Status is the outcome class of one check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

// CheckResult is one health check outcome.
type CheckResult struct {
	Status  Status
	Name    string
	Message string

	// Suggestion is an optional fix hint, shown for warnings and failures
	Suggestion string
}

// PassResult builds a passing result.
func PassResult(name, message string) CheckResult {
	return CheckResult{Status: Pass, Name: name, Message: message}
}

// WarnResult builds a warning result with an optional fix suggestion.
func WarnResult(name, message, suggestion string) CheckResult {
	return CheckResult{Status: Warn, Name: name, Message: message, Suggestion: suggestion}
}

// FailResult builds a failing result with an optional fix suggestion.
func FailResult(name, message, suggestion string) CheckResult {
	return CheckResult{Status: Fail, Name: name, Message: message, Suggestion: suggestion}
}

// Category is the portion of the check name before the first colon, used to
// group related checks in the rendered report.
func (c CheckResult) Category() string {
	if idx := strings.Index(c.Name, ":"); idx >= 0 {
		return c.Name[:idx]
	}
	return c.Name
}

// CheckReport accumulates check results.
type CheckReport struct {
	Checks []CheckResult
}

// NewCheckReport creates an empty report.
func NewCheckReport() *CheckReport {
	return &CheckReport{}
}

// Add appends one result.
func (r *CheckReport) Add(result CheckResult) {
	r.Checks = append(r.Checks, result)
}

// Merge appends every result from another report.
func (r *CheckReport) Merge(other *CheckReport) {
	r.Checks = append(r.Checks, other.Checks...)
}

func (r *CheckReport) count(status Status) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}

// PassCount returns the number of passing checks.
func (r *CheckReport) PassCount() int { return r.count(Pass) }

// WarnCount returns the number of warnings.
func (r *CheckReport) WarnCount() int { return r.count(Warn) }

// ErrorCount returns the number of failures.
func (r *CheckReport) ErrorCount() int { return r.count(Fail) }

// Total returns the number of checks run.
func (r *CheckReport) Total() int { return len(r.Checks) }

// IsClean reports whether every check passed.
func (r *CheckReport) IsClean() bool {
	return r.WarnCount() == 0 && r.ErrorCount() == 0
}

// HasErrors reports whether any check failed.
func (r *CheckReport) HasErrors() bool {
	return r.ErrorCount() > 0
}

// Summary returns a one-line count summary.
func (r *CheckReport) Summary() string {
	return fmt.Sprintf("Passed: %d, Warnings: %d, Errors: %d",
		r.PassCount(), r.WarnCount(), r.ErrorCount())
}

// Render formats the report grouped by category, followed by a summary.
func (r *CheckReport) Render() string {
	categories := make(map[string][]CheckResult)
	for _, check := range r.Checks {
		cat := check.Category()
		categories[cat] = append(categories[cat], check)
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("\n" + style.Title.Render(name) + "\n")
		for _, check := range categories[name] {
			b.WriteString(renderCheck(check))
		}
	}

	b.WriteString("\n" + style.Title.Render("Summary") + "\n")
	fmt.Fprintf(&b, "  %s %d passed\n", style.Success.Render(style.GlyphPass), r.PassCount())
	if r.WarnCount() > 0 {
		fmt.Fprintf(&b, "  %s %d warnings\n", style.Warning.Render(style.GlyphWarn), r.WarnCount())
	}
	if r.ErrorCount() > 0 {
		fmt.Fprintf(&b, "  %s %d errors\n", style.Error.Render(style.GlyphFail), r.ErrorCount())
	}
	fmt.Fprintf(&b, "  Total: %d checks\n", r.Total())

	return b.String()
}

func renderCheck(check CheckResult) string {
	var glyph string
	switch check.Status {
	case Pass:
		glyph = style.Success.Render(style.GlyphPass)
	case Warn:
		glyph = style.Warning.Render(style.GlyphWarn)
	default:
		glyph = style.Error.Render(style.GlyphFail)
	}

	out := fmt.Sprintf("  %s %s - %s\n", glyph, style.Bold.Render(check.Name), check.Message)
	if check.Suggestion != "" && check.Status != Pass {
		out += fmt.Sprintf("    %s: %s\n", style.Bold.Render("Fix"), style.Subtle.Render(check.Suggestion))
	}
	return out
}
