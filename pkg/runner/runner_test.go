// pkg/runner/runner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), /bin/bash
// PURPOSE: Test running manifest scripts with the toolchain environment

package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/manifest"
	"github.com/arthur-debert/icicle/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolchain(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "oss-cad-suite"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oss-cad-suite", "environment"),
		[]byte("export ICICLE_TEST_TOOL=yosys\n"), 0644))
	return dir
}

func shellPath(t *testing.T) string {
	t.Helper()
	if _, err := os.Stat("/bin/bash"); err != nil {
		t.Skip("bash not available")
	}
	return "/bin/bash"
}

func TestRun(t *testing.T) {
	sh := shellPath(t)
	m := &manifest.Manifest{
		Shell: sh,
		Scripts: map[string]string{
			"synth": "echo $ICICLE_TEST_TOOL",
			"fail":  "exit 3",
		},
	}

	t.Run("sources_environment", func(t *testing.T) {
		var stdout bytes.Buffer
		err := runner.Run(context.Background(), runner.Options{
			Manifest:     m,
			Script:       "synth",
			ToolchainDir: toolchain(t),
			Dir:          t.TempDir(),
			Stdout:       &stdout,
		})
		require.NoError(t, err)
		assert.Equal(t, "yosys\n", stdout.String())
	})

	t.Run("exit_code", func(t *testing.T) {
		err := runner.Run(context.Background(), runner.Options{
			Manifest:     m,
			Script:       "fail",
			ToolchainDir: toolchain(t),
			Dir:          t.TempDir(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScriptFailed))
		assert.Equal(t, 3, errors.GetErrorDetails(err)[errors.DetailExitCode])
	})

	t.Run("unknown_script", func(t *testing.T) {
		err := runner.Run(context.Background(), runner.Options{
			Manifest:     m,
			Script:       "lint",
			ToolchainDir: toolchain(t),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "Available scripts are 'fail', 'synth'")
	})

	t.Run("missing_environment", func(t *testing.T) {
		err := runner.Run(context.Background(), runner.Options{
			Manifest:     m,
			Script:       "synth",
			ToolchainDir: t.TempDir(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidState))
	})
}

func TestCommand(t *testing.T) {
	assert.Equal(t,
		"source '/opt/icicle/toolchains/2023-06-10/oss-cad-suite/environment' && make",
		runner.Command("/opt/icicle/toolchains/2023-06-10", "make"))
}
