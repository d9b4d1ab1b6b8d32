// Package testutil provides utilities for testing icicle components.
//
// Key components:
//   - Home: an isolated ICICLE_HOME with a session link path, a working
//     directory and a wired core.Runtime
//   - file helpers that fail the test instead of returning errors
//
// All helpers use the real filesystem under t.TempDir(): symlink behavior
// is the subject under test almost everywhere.
package testutil
