// Package filesystem provides implementations of the types.FS interface.
//
// NewOS returns the real OS-backed filesystem used in production. NewAferoFS
// wraps any afero.Fs, which lets tests run against an in-memory filesystem.
// Note that afero's MemMapFs has no native symlink support; symlinks are
// simulated there, so tests that exercise link resolution use the OS
// filesystem in a temporary directory instead.
package filesystem
