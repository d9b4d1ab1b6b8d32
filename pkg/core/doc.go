// Package core assembles the components one icicle invocation works with:
// the Environment, configuration, toolchain store, alias manager, session
// linker and version resolver.
package core
