package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate(`Today is {{.now}}. Reply as JSON: {"startTime": "..."}`, map[string]any{"now": "2030-01-01"})
	require.NoError(t, err)
	assert.Equal(t, `Today is 2030-01-01. Reply as JSON: {"startTime": "..."}`, out)
}

func TestRenderTemplate_FastPathAndHelpers(t *testing.T) {
	out, err := RenderTemplate("no markers", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers", out)

	out, err = RenderTemplate(`{{default "n/a" .venue}} {{upper "x"}} {{join ", " .names}}`, map[string]any{"names": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "n/a X a, b", out)
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{.broken", nil)
	assert.Error(t, err)
}
