// Package types defines the interfaces and values shared across icicle:
// the filesystem abstraction, the home layout, typed link pointers and the
// results commands hand to renderers.
package types
