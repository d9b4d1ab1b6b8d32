package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/types"
	"github.com/arthur-debert/icicle/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		renderer, err := ui.NewRenderer(format, &bytes.Buffer{})
		require.NoError(t, err, format.String())
		assert.NotNil(t, renderer)
	}

	renderer, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	require.Error(t, err)
	assert.Nil(t, renderer)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestNewRendererFor(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRendererFor("JSON", buf)
	require.NoError(t, err)
	require.NoError(t, renderer.RenderResult(&types.CurrentResult{Version: "2023-06-10"}))
	assert.Contains(t, buf.String(), `"version": "2023-06-10"`)

	_, err = ui.NewRendererFor("xml", buf)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// Every format must accept every result a command can return
func TestRenderAllResults(t *testing.T) {
	results := []interface{}{
		&types.ListResult{},
		&types.CurrentResult{Version: "2023-06-10"},
		&types.CommandResult{Command: "use", Version: "2023-06-10", Changed: true, Message: "Now using 2023-06-10"},
		&types.EnvResult{Script: "export ICICLE_HOME=/h\n"},
		&types.ScriptResult{Script: "synth", Toolchain: "2023-06-10"},
		&types.PruneResult{Removed: []string{"/h/caches/icicle_1"}, Kept: 1},
		&types.GenConfigResult{ConfigContent: "[download]\n", FilesWritten: []string{}},
	}

	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		renderer, err := ui.NewRenderer(format, &bytes.Buffer{})
		require.NoError(t, err)
		for _, result := range results {
			assert.NoError(t, renderer.RenderResult(result), "%s %T", format, result)
		}
		assert.NoError(t, renderer.RenderMessage("done"))
		assert.NoError(t, renderer.RenderError(assert.AnError))
	}
}

func TestTextRenderer_SessionResults(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(&types.PruneResult{Removed: []string{"/h/caches/icicle_1"}, Kept: 2}))
	assert.Equal(t, "Removed /h/caches/icicle_1\n1 removed, 2 kept\n", buf.String())

	buf.Reset()
	require.NoError(t, renderer.RenderResult(&types.GenConfigResult{FilesWritten: []string{"/h/config.toml"}}))
	assert.Equal(t, "Wrote /h/config.toml\n", buf.String())

	buf.Reset()
	require.NoError(t, renderer.RenderResult(&types.ScriptResult{Script: "synth"}))
	assert.Empty(t, buf.String())
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)

		var result map[string]string
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)

		var result map[string]string
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, assert.AnError.Error(), result["error"])
		assert.Equal(t, "UNKNOWN", result["code"])
	})

	t.Run("render result", func(t *testing.T) {
		buf.Reset()
		testData := map[string]string{"foo": "bar"}
		err := renderer.RenderResult(testData)
		assert.NoError(t, err)

		var result map[string]string
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("render list result", func(t *testing.T) {
		buf.Reset()
		listed := &types.ListResult{Toolchains: []types.ToolchainInfo{
			{Version: "2023-01-05", Path: "/h/toolchains/2023-01-05", Default: true},
			{Version: "2023-06-10", Path: "/h/toolchains/2023-06-10", Current: true},
		}}
		err := renderer.RenderResult(listed)
		assert.NoError(t, err)

		var result types.ListResult
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, *listed, result)
	})

	t.Run("render icicle error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(errors.New(errors.ErrNotInstalled, "'x' is not installed").
			WithDetail(errors.DetailVersion, "x"))
		assert.NoError(t, err)

		var result struct {
			Error   string            `json:"error"`
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		}
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "'x' is not installed", result.Error)
		assert.Equal(t, "NOT_INSTALLED", result.Code)
		assert.Equal(t, "x", result.Details["version"])
	})
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)
		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)
		assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
	})

	t.Run("render unknown result type", func(t *testing.T) {
		buf.Reset()
		unknownData := map[string]string{"foo": "bar"}
		err := renderer.RenderResult(unknownData)
		assert.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "map[foo:bar]")
	})

	t.Run("render list", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderResult(&types.ListResult{Toolchains: []types.ToolchainInfo{
			{Version: "2023-01-05", Default: true},
			{Version: "2023-06-10", Current: true},
		}})
		assert.NoError(t, err)
		assert.Equal(t, "* 2023-01-05 (default)\n* 2023-06-10\n", buf.String())
	})

	t.Run("render current", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderResult(&types.CurrentResult{Version: "2023-06-10", Via: "default"})
		assert.NoError(t, err)
		assert.Equal(t, "2023-06-10\n", buf.String())
	})

	t.Run("render env", func(t *testing.T) {
		buf.Reset()
		script := "export ICICLE_SHELL_PATH=/h/caches/icicle_1\n"
		err := renderer.RenderResult(&types.EnvResult{Script: script})
		assert.NoError(t, err)
		assert.Equal(t, script, buf.String())
	})

	t.Run("render icicle error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(errors.New(errors.ErrMissingVersion, "no version specified"))
		assert.NoError(t, err)
		assert.Equal(t, "Error: no version specified\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "hello world")
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "assert.AnError")
	})

	t.Run("render unknown result type", func(t *testing.T) {
		buf.Reset()
		unknownData := map[string]string{"foo": "bar"}
		err := renderer.RenderResult(unknownData)
		assert.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "map[foo:bar]")
	})

	t.Run("env stays unstyled", func(t *testing.T) {
		buf.Reset()
		script := "set -gx ICICLE_HOME /h\n"
		err := renderer.RenderResult(&types.EnvResult{Script: script})
		assert.NoError(t, err)
		assert.Equal(t, script, buf.String())
	})

	t.Run("render list", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderResult(&types.ListResult{Toolchains: []types.ToolchainInfo{
			{Version: "2023-01-05", Default: true},
		}})
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "2023-01-05")
		assert.Contains(t, buf.String(), "(default)")
	})
}
