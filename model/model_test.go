package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Model = (*MockModel)(nil)

func TestComplete_ReturnsCannedResponse(t *testing.T) {
	m := NewMockModel("mock", "mock")
	m.AddResponse("hi", "  hello  ")

	out, err := Complete(context.Background(), m, NewRequest("be nice", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	require.Len(t, m.Requests(), 1)
	assert.Equal(t, "be nice", m.Requests()[0].Instructions)
}

func TestComplete_InstructedResponseWins(t *testing.T) {
	m := NewMockModel("mock", "mock")
	m.AddResponse("hi", "generic")
	m.AddInstructedResponse("special", "hi", "specific")

	out, err := Complete(context.Background(), m, NewRequest("special", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "specific", out)

	out, err = Complete(context.Background(), m, NewRequest("other", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "generic", out)
}

func TestComplete_PropagatesFailure(t *testing.T) {
	m := NewMockModel("mock", "mock")
	boom := errors.New("boom")
	m.FailWith(boom)

	_, err := Complete(context.Background(), m, NewRequest("", "hi"))
	assert.ErrorIs(t, err, boom)
}

func TestComplete_CancelledContext(t *testing.T) {
	m := NewMockModel("mock", "mock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Complete(ctx, m, NewRequest("", "hi"))
	assert.ErrorIs(t, err, context.Canceled)
}
