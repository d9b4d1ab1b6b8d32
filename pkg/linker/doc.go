// Package linker owns the symlinks a shell's PATH is built from.
//
// Every repoint in icicle, whether of a session link or of an alias, goes
// through AtomicRepoint: the new link is created at a temporary sibling path
// and renamed over the old one. rename(2) replaces the destination in one
// step, so a concurrent reader sees either the old target or the new one and
// never an absent link.
//
// Session links move through three states:
//
//	Unset              no link at the path
//	PointsToToolchain  link -> toolchains/<version>   (icicle use <version>)
//	PointsToAlias      link -> aliases/<name>         (icicle env, icicle use default)
//
// A link is never removed except by being replaced.
package linker
