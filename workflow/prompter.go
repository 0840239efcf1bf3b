package workflow

import (
	"context"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
)

// channelPrompter exposes a channel to resolvers.
type channelPrompter struct {
	ch core.Channel
}

// Ask implements agent.Prompter.
func (p *channelPrompter) Ask(ctx context.Context, text string) (string, error) {
	if err := p.ch.WriteLine(ctx, text); err != nil {
		return "", err
	}
	line, err := p.ch.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if agent.IsExit(line) {
		return "", core.ErrAbandoned
	}
	return line, nil
}

// Say implements agent.Prompter.
func (p *channelPrompter) Say(ctx context.Context, text string) error {
	return p.ch.WriteLine(ctx, text)
}
