package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStylesKeepText(t *testing.T) {
	assert.Contains(t, VersionStyle.Render("2023-06-10"), "2023-06-10")
	assert.Contains(t, DefaultStyle.Render("(default)"), "(default)")
	assert.Contains(t, PathStyle.Render("/tmp/x"), "/tmp/x")
}

func TestIndent(t *testing.T) {
	out := Indent("x", 2)
	assert.True(t, strings.HasPrefix(out, "    "), "expected four spaces of padding, got %q", out)
	assert.Contains(t, out, "x")
}
