// Package symlink implements link reconciliation between a source directory
// (the dotfiles repository) and a target directory (usually the home
// directory). Reconciliation is non-recursive: only the direct children of
// the source are considered, so a subdirectory is linked or conflicts as a
// single unit.
package symlink

import (
	"fmt"
	"strings"
)

// Exclusions lists entries that are never linked into the home directory.
// These are commonly non-portable or repository-specific files.
var Exclusions = []string{".git", ".DS_Store", ".claude", "README.md", "LICENSE"}

// IsExcluded reports whether the given entry name is on the exclusion list
func IsExcluded(name string) bool {
	for _, e := range Exclusions {
		if name == e {
			return true
		}
	}
	return false
}

// ConflictReason classifies why a target path blocks link creation
type ConflictReason int

const (
	// FileExists means a plain file occupies the target path
	FileExists ConflictReason = iota
	// DirectoryExists means a directory occupies the target path
	DirectoryExists
	// WrongLinkTarget means a link occupies the target path but resolves elsewhere
	WrongLinkTarget
	// NotALink means removal was requested but the target is not a link
	NotALink
)

func (r ConflictReason) String() string {
	switch r {
	case FileExists:
		return "file already exists"
	case DirectoryExists:
		return "directory already exists"
	case WrongLinkTarget:
		return "link exists but points to wrong location"
	case NotALink:
		return "not a link, will not remove"
	default:
		return "unknown conflict"
	}
}

// OutcomeKind tags the result of reconciling one (source entry, target path)
// pair.
type OutcomeKind int

const (
	// OutcomeCreated means a link was (or, in dry-run, would be) created
	OutcomeCreated OutcomeKind = iota
	// OutcomeAlreadyCorrect means an existing link already resolves to the source
	OutcomeAlreadyCorrect
	// OutcomeConflict means existing content blocks the operation
	OutcomeConflict
	// OutcomeSkipped means the operation was intentionally not performed
	OutcomeSkipped
	// OutcomeRemoved means an existing link was (or would be) removed
	OutcomeRemoved
)

// Outcome is the result of reconciling a single target path. Exactly one
// outcome is produced per candidate entry.
//
// Note: Created is reported even in dry-run mode. The report reflects the
// intended action, not the filesystem state; callers must consult the
// linker's dry-run flag to know whether changes actually happened.
type Outcome struct {
	Kind   OutcomeKind
	Source string
	Target string
	Reason ConflictReason
	Note   string
}

// Created builds the outcome for a newly created link
func Created(source, target string) Outcome {
	return Outcome{Kind: OutcomeCreated, Source: source, Target: target}
}

// AlreadyCorrect builds the outcome for a link that already resolves to source
func AlreadyCorrect(target string) Outcome {
	return Outcome{Kind: OutcomeAlreadyCorrect, Target: target}
}

// Conflicted builds the outcome for a blocked target path
func Conflicted(target string, reason ConflictReason) Outcome {
	return Outcome{Kind: OutcomeConflict, Target: target, Reason: reason}
}

// Skipped builds the outcome for an intentionally unperformed operation
func Skipped(target, note string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Target: target, Note: note}
}

// Removed builds the outcome for a removed link
func Removed(target string) Outcome {
	return Outcome{Kind: OutcomeRemoved, Target: target}
}

// IsSuccess reports whether the outcome represents a usable link
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeCreated || o.Kind == OutcomeAlreadyCorrect
}

// IsConflict reports whether the outcome is a conflict
func (o Outcome) IsConflict() bool {
	return o.Kind == OutcomeConflict
}

// Report summarizes a reconciliation pass. Outcomes are append-only and keep
// directory-iteration order, which is filesystem-dependent and not guaranteed
// stable across runs.
type Report struct {
	Outcomes []Outcome
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

// Add appends an outcome to the report
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Merge appends all outcomes of another report
func (r *Report) Merge(other *Report) {
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

func (r *Report) filter(kind OutcomeKind) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Created returns the outcomes for newly created links
func (r *Report) Created() []Outcome { return r.filter(OutcomeCreated) }

// AlreadyCorrect returns the outcomes for links that were already in place
func (r *Report) AlreadyCorrect() []Outcome { return r.filter(OutcomeAlreadyCorrect) }

// Conflicts returns the conflicting outcomes
func (r *Report) Conflicts() []Outcome { return r.filter(OutcomeConflict) }

// Skipped returns the intentionally unperformed outcomes
func (r *Report) Skipped() []Outcome { return r.filter(OutcomeSkipped) }

// Removed returns the outcomes for removed links
func (r *Report) Removed() []Outcome { return r.filter(OutcomeRemoved) }

// Success reports whether the pass completed without conflicts
func (r *Report) Success() bool {
	return len(r.Conflicts()) == 0
}

// Total returns the number of recorded outcomes
func (r *Report) Total() int {
	return len(r.Outcomes)
}

// Summary returns a one-line human readable summary
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created: %d, Already correct: %d, Conflicts: %d, Skipped: %d",
		len(r.Created()), len(r.AlreadyCorrect()), len(r.Conflicts()), len(r.Skipped()))
	if removed := len(r.Removed()); removed > 0 {
		fmt.Fprintf(&b, ", Removed: %d", removed)
	}
	return b.String()
}

// Linker is the capability interface over symlink strategies. Implementations
// create or remove links between a source directory's entries and a target
// directory. Callers should select an implementation via IsAvailable at
// runtime.
type Linker interface {
	// Link reconciles every direct child of source against target
	Link(source, target string) (*Report, error)

	// Remove deletes the links that Link would create
	Remove(source, target string) (*Report, error)

	// IsAvailable reports whether this strategy can run on the current system
	IsAvailable() bool

	// Name returns a human readable strategy name
	Name() string
}
