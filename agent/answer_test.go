package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExit(t *testing.T) {
	assert.True(t, IsExit("exit"))
	assert.True(t, IsExit("  EXIT "))
	assert.False(t, IsExit("exit now"))
	assert.False(t, IsExit(""))
}

func TestIsAffirmative(t *testing.T) {
	for _, s := range []string{"y", "yes", "Yes please", " yeah"} {
		assert.True(t, IsAffirmative(s), s)
	}
	for _, s := range []string{"no", "", "change the title", "ok"} {
		assert.False(t, IsAffirmative(s), s)
	}
}

func TestNormalizeYesNo(t *testing.T) {
	v, ok := NormalizeYesNo("Sure")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)

	v, ok = NormalizeYesNo("nope")
	assert.True(t, ok)
	assert.Equal(t, "no", v)

	_, ok = NormalizeYesNo("maybe")
	assert.False(t, ok)
}
