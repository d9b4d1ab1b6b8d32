package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source() fstest.MapFS {
	return fstest.MapFS{
		"sessions.md":         {Data: []byte("# Sessions\n\nEach shell has its own link.")},
		"pinning.txt":         {Data: []byte("Write a version to .icicle-toolchain")},
		"option-format.txt":   {Data: []byte("auto, term, text or json")},
		"notes/ignored.json":  {Data: []byte("{}")},
		"nested/manifest.md":  {Data: []byte("# icicle.yml")},
		"nested/draft.txxt":   {Data: []byte("draft")},
		"nested/deeper/x.txt": {Data: []byte("x")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(source())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"manifest", "option-format", "pinning", "sessions", "x"}, tm.ListTopics())

		topic, ok := tm.GetTopic("pinning")
		require.True(t, ok)
		assert.Equal(t, "Write a version to .icicle-toolchain", topic.Content)
		assert.Equal(t, "pinning.txt", topic.FilePath)

		_, ok = tm.GetTopic("draft")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(source(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"draft"}, tm.ListTopics())
	})
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(source())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"--format", "-format", "format", "option-format"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-format", topic.Name)
	}
}

func TestWriteIndex(t *testing.T) {
	tm := New(source())
	require.NoError(t, tm.scanTopics())

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "icicle")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  manifest\n  pinning\n  sessions\n  x\n")
	assert.Contains(t, out, "Option topics:\n  --format\n")
	assert.Contains(t, out, "Use 'icicle help <topic>'")

	buf.Reset()
	New(fstest.MapFS{}).WriteIndex(&buf, "icicle")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return strings.ToUpper(content) + format
}

func TestInitialize(t *testing.T) {
	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "icicle", Short: "root help text"}
		root.AddCommand(&cobra.Command{Use: "list", Short: "list help text", Run: func(*cobra.Command, []string) {}})
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		require.NoError(t, InitializeWithOptions(root, source(), Options{Renderer: upperRenderer{}}))
		return root, &out
	}

	t.Run("topic", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "pinning"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "WRITE A VERSION TO .ICICLE-TOOLCHAIN.txt", out.String())
	})

	t.Run("topics index", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Available help topics:")
	})

	t.Run("command help", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "list"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "list help text")
	})
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Sessions\n\nEach shell has its own link.", ".md")
	assert.Contains(t, out, "Sessions")
	assert.Contains(t, out, "Each shell has its own link.")
}
