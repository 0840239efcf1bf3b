package router

import (
	"context"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
)

// recordingChannel copies every line to a TranscriptStore.
type recordingChannel struct {
	core.Channel
	store    core.TranscriptStore
	userID   string
	workflow core.WorkflowKey
	logger   logging.Logger
}

func (r *Router) recorder(userID string, ch core.Channel, current *core.WorkflowRecord) core.Channel {
	if r.opts.Transcript == nil {
		return ch
	}
	rc := &recordingChannel{Channel: ch, store: r.opts.Transcript, userID: userID, logger: r.logger}
	if current != nil {
		rc.workflow = current.Key
	}
	return rc
}

func (c *recordingChannel) ReadLine(ctx context.Context) (string, error) {
	line, err := c.Channel.ReadLine(ctx)
	if err == nil {
		c.append(core.RoleUser, line)
	}
	return line, err
}

func (c *recordingChannel) WriteLine(ctx context.Context, text string) error {
	if err := c.Channel.WriteLine(ctx, text); err != nil {
		return err
	}
	c.append(core.RoleSystem, text)
	return nil
}

func (c *recordingChannel) append(role core.Role, text string) {
	turn := core.NewTurn(c.userID, role, text)
	turn.Workflow = c.workflow
	if err := c.store.Append(c.userID, turn); err != nil {
		c.logger.Warn("transcript append failed", "user", c.userID, "error", err)
	}
}
