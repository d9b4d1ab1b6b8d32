// Package filesystem provides filesystem implementations for icicle.
//
// This package contains the OS-backed implementation of the types.FS
// interface. Every component that touches toolchain directories, aliases or
// session links goes through types.FS so tests can run against a temporary
// directory and so the symlink primitives stay in one place.
package filesystem
