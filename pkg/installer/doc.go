// Package installer downloads OSS CAD Suite release archives and installs
// them into the toolchain store.
//
// Archives are extracted into a staging directory and moved into the store
// with one rename once extraction has finished, so an interrupted install
// never leaves a version that looks installed.
package installer
