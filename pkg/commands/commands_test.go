package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/icicle/pkg/commands"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFlags(t *testing.T, h *testutil.Home) map[string]bool {
	t.Helper()
	listed, err := commands.List(commands.ListOptions{Runtime: h.Runtime})
	require.NoError(t, err)
	flags := map[string]bool{}
	for _, tc := range listed.Toolchains {
		flags[tc.Version] = tc.Default
	}
	return flags
}

func TestScenario_PinFileDrivesUse(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewHome(t)
	rt := h.Runtime

	h.InstallToolchain("2023-01-05")
	h.InstallToolchain("2023-06-10")

	_, err := commands.SetDefault(ctx, commands.SetDefaultOptions{Runtime: rt, Version: "2023-01-05"})
	require.NoError(t, err)

	// No pin file yet
	_, err = commands.Use(ctx, commands.UseOptions{Runtime: rt})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVersion))

	h.WritePinFile("2023-06-10\n")
	result, err := commands.Use(ctx, commands.UseOptions{Runtime: rt})
	require.NoError(t, err)
	assert.Equal(t, "2023-06-10", result.Version)

	cur, err := commands.Current(commands.CurrentOptions{Runtime: rt})
	require.NoError(t, err)
	assert.Equal(t, "2023-06-10", cur.Version)
	assert.Empty(t, cur.Via)

	listed, err := commands.List(commands.ListOptions{Runtime: rt})
	require.NoError(t, err)
	require.Len(t, listed.Toolchains, 2)
	assert.Equal(t, "2023-01-05", listed.Toolchains[0].Version)
	assert.True(t, listed.Toolchains[0].Default)
	assert.False(t, listed.Toolchains[0].Current)
	assert.Equal(t, "2023-06-10", listed.Toolchains[1].Version)
	assert.False(t, listed.Toolchains[1].Default)
	assert.True(t, listed.Toolchains[1].Current)
}

func TestUse_SwapIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewHome(t)
	h.InstallToolchain("2023-01-05")
	h.InstallToolchain("2023-06-10")

	for _, v := range []string{"2023-01-05", "2023-06-10", "2023-06-10", "2023-01-05"} {
		_, err := commands.Use(ctx, commands.UseOptions{Runtime: h.Runtime, Version: v})
		require.NoError(t, err)

		cur, err := commands.Current(commands.CurrentOptions{Runtime: h.Runtime})
		require.NoError(t, err)
		assert.Equal(t, v, cur.Version)
	}

	// Only the session link is left behind in caches/
	entries, err := os.ReadDir(h.Env().CachesDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testutil.SessionName, entries[0].Name())
}

func TestUse_ThroughAlias(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewHome(t)
	h.InstallToolchain("2023-01-05")
	h.InstallToolchain("2023-06-10")

	_, err := commands.SetDefault(ctx, commands.SetDefaultOptions{Runtime: h.Runtime, Version: "2023-01-05"})
	require.NoError(t, err)

	_, err = commands.Use(ctx, commands.UseOptions{Runtime: h.Runtime, Version: "default"})
	require.NoError(t, err)

	cur, err := commands.Current(commands.CurrentOptions{Runtime: h.Runtime})
	require.NoError(t, err)
	assert.Equal(t, "2023-01-05", cur.Version)
	assert.Equal(t, "default", cur.Via)

	// Moving the alias moves every session that follows it
	_, err = commands.SetDefault(ctx, commands.SetDefaultOptions{Runtime: h.Runtime, Version: "2023-06-10"})
	require.NoError(t, err)

	cur, err = commands.Current(commands.CurrentOptions{Runtime: h.Runtime})
	require.NoError(t, err)
	assert.Equal(t, "2023-06-10", cur.Version)
}

func TestUse_UnknownVersion(t *testing.T) {
	h := testutil.NewHome(t)

	_, err := commands.Use(context.Background(), commands.UseOptions{Runtime: h.Runtime, Version: "2020-01-01"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInstalled))
	assert.Contains(t, err.Error(), "Did you install it with 'icicle install'?")

	assert.False(t, testutil.SymlinkExists(t, h.SessionLink()), "failed use must not create the session link")
}

func TestUninstall_LeavesDefaultDangling(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewHome(t)
	h.InstallToolchain("2023-01-05")

	_, err := commands.SetDefault(ctx, commands.SetDefaultOptions{Runtime: h.Runtime, Version: "2023-01-05"})
	require.NoError(t, err)
	assert.True(t, defaultFlags(t, h)["2023-01-05"])

	result, err := commands.Uninstall(ctx, commands.UninstallOptions{Runtime: h.Runtime, Version: "2023-01-05"})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "It was the default")
	assert.NoDirExists(t, filepath.Join(h.Env().ToolchainsDir(), "2023-01-05"))

	_, err = commands.List(commands.ListOptions{Runtime: h.Runtime})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDanglingAlias))

	_, err = commands.Use(ctx, commands.UseOptions{Runtime: h.Runtime, Version: "default"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDanglingAlias))
}

func TestUninstall_NotInstalled(t *testing.T) {
	h := testutil.NewHome(t)

	_, err := commands.Uninstall(context.Background(), commands.UninstallOptions{Runtime: h.Runtime, Version: "2023-01-05"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInstalled))
}

func TestSetDefault_RequiresVersion(t *testing.T) {
	h := testutil.NewHome(t)

	_, err := commands.SetDefault(context.Background(), commands.SetDefaultOptions{Runtime: h.Runtime})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVersion))
}

func TestCurrent_NoSessionYet(t *testing.T) {
	h := testutil.NewHome(t)

	_, err := commands.Current(commands.CurrentOptions{Runtime: h.Runtime})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLink))
	assert.True(t, errors.IsRetryable(err))
}

func TestList_Empty(t *testing.T) {
	h := testutil.NewHome(t)

	listed, err := commands.List(commands.ListOptions{Runtime: h.Runtime})
	require.NoError(t, err)
	assert.Empty(t, listed.Toolchains)
}
