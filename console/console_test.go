package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.Channel = (*Channel)(nil)

func TestChannel_ReadWrite(t *testing.T) {
	var out bytes.Buffer
	ch := New(strings.NewReader("hello\r\nexit\n"), &out)
	ctx := context.Background()

	require.NoError(t, ch.WriteLine(ctx, "Welcome!"))
	line, err := ch.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = ch.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = ch.ReadLine(ctx)
	assert.ErrorIs(t, err, core.ErrInputClosed)

	assert.Equal(t, "Welcome!\nYou: You: You: ", out.String())
}

func TestChannel_NoPrompt(t *testing.T) {
	var out bytes.Buffer
	ch := New(strings.NewReader("x\n"), &out, func(o *Options) { o.Prompt = "" })
	_, err := ch.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestChannel_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := New(strings.NewReader("x\n"), &bytes.Buffer{})

	_, err := ch.ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, ch.WriteLine(ctx, "x"), context.Canceled)
}

func TestChannel_StyledKeepsText(t *testing.T) {
	var out bytes.Buffer
	ch := New(strings.NewReader(""), &out, func(o *Options) { o.Styled = true })
	require.NoError(t, ch.WriteLine(context.Background(), "Switching to Discover Event..."))
	require.NoError(t, ch.Notice("Chatbot ended."))
	assert.Contains(t, out.String(), "Switching to Discover Event...")
	assert.Contains(t, out.String(), "Chatbot ended.")
}
