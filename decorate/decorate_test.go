package decorate

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/model"
	"github.com/stretchr/testify/assert"
)

var (
	_ core.Decorator = (*ModelDecorator)(nil)
	_ core.Decorator = None{}
	_ core.Decorator = Static("")
)

func TestModelDecorator_CachesReplies(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("What is your budget?", "💰")
	d := New(m)

	assert.Equal(t, "💰", d.Decorate(context.Background(), "What is your budget?"))
	assert.Equal(t, "💰", d.Decorate(context.Background(), "What is your budget?"))
	assert.Len(t, m.Requests(), 1)
}

func TestModelDecorator_FailuresAreSwallowed(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.FailWith(errors.New("down"))
	assert.Equal(t, "", New(m).Decorate(context.Background(), "hi"))
}

func TestModelDecorator_DropsVerboseReplies(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("hi", "Here is an emoji for you: 👋")
	assert.Equal(t, "", New(m).Decorate(context.Background(), "hi"))
}

func TestPrefix(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "🎉 Welcome", Prefix(ctx, Static("🎉"), "Welcome"))
	assert.Equal(t, "Welcome", Prefix(ctx, None{}, "Welcome"))
	assert.Equal(t, "Welcome", Prefix(ctx, nil, "Welcome"))
}
