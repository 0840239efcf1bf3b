package catalog

import (
	"context"
	"testing"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ agent.Resolver = (*ImageResolver)(nil)

func TestImageResolver_Decline(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("https://img")
	ch := testutil.NewScriptedChannel()
	f := core.Fields{"wantsImage": "Nope", "imageDescription": "stale"}

	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))

	assert.Equal(t, "no", f["wantsImage"])
	assert.False(t, f.IsSet("imageDescription"))
	assert.True(t, ValidImage(f))
	assert.Empty(t, gen.Calls())
}

func TestImageResolver_UnrecognisedAnswerIsUnset(t *testing.T) {
	f := core.Fields{"wantsImage": "maybe later"}
	require.NoError(t, NewImageResolver(testutil.NewFakeImageGenerator("x"), nil).Resolve(context.Background(), f, testutil.Prompter{Channel: testutil.NewScriptedChannel()}))
	assert.False(t, f.IsSet("wantsImage"))
	assert.False(t, ValidImage(f))
}

func TestImageResolver_Generates(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("https://img/1.png")
	ch := testutil.NewScriptedChannel()
	f := core.Fields{"wantsImage": "yes", "imageDescription": "a neon stage"}

	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))

	assert.Equal(t, "https://img/1.png", f["imageReference"])
	assert.True(t, ValidImage(f))
	assert.Equal(t, []string{"a neon stage"}, gen.Calls())
	assert.Contains(t, ch.Transcript(), "Your image is ready: https://img/1.png")

	// Idempotent once a reference exists.
	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))
	assert.Len(t, gen.Calls(), 1)
}

func TestImageResolver_RetryThenSuccess(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("https://img/2.png", true, false)
	ch := testutil.NewScriptedChannel("yes")
	f := core.Fields{"wantsImage": "yes", "imageDescription": "sunset"}

	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))

	assert.Equal(t, "https://img/2.png", f["imageReference"])
	assert.Len(t, gen.Calls(), 2)
	assert.Contains(t, ch.Transcript(), "Would you like to retry? (yes/no)")
}

func TestImageResolver_SecondFailureDeclines(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("", true, true)
	ch := testutil.NewScriptedChannel("yes")
	f := core.Fields{"wantsImage": "yes", "imageDescription": "sunset"}

	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))

	assert.Equal(t, "no", f["wantsImage"])
	assert.False(t, f.IsSet("imageDescription"))
	assert.True(t, ValidImage(f))
	assert.Contains(t, ch.Transcript(), "Continuing without an image.")
}

func TestImageResolver_RetryDeclined(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("", true)
	ch := testutil.NewScriptedChannel("no")
	f := core.Fields{"wantsImage": "yes", "imageDescription": "sunset"}

	require.NoError(t, NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch}))

	assert.Equal(t, "no", f["wantsImage"])
	assert.Len(t, gen.Calls(), 1)
}

func TestImageResolver_ExitDuringRetry(t *testing.T) {
	gen := testutil.NewFakeImageGenerator("", true)
	ch := testutil.NewScriptedChannel("exit")
	f := core.Fields{"wantsImage": "yes", "imageDescription": "sunset"}

	err := NewImageResolver(gen, nil).Resolve(context.Background(), f, testutil.Prompter{Channel: ch})
	assert.ErrorIs(t, err, core.ErrAbandoned)
}

func TestImageAgent_Required(t *testing.T) {
	s := ImageAgent(testutil.NewFakeImageGenerator("x"), nil)
	assert.Equal(t, []string{"wantsImage"}, s.Missing(core.Fields{}))
	assert.Equal(t, []string{"imageDescription"}, s.Missing(core.Fields{"wantsImage": "sure"}))
	assert.Empty(t, s.Missing(core.Fields{"wantsImage": "no"}))
	assert.Equal(t, []string{"wantsImage", "imageDescription"}, s.Inputs())
}
