// Package console provides a line-oriented core.Channel over an io.Reader and
// io.Writer, styled with lipgloss when attached to a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/hupe1980/slotmesh/core"
)

var (
	systemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Options configures a Channel.
type Options struct {
	// Prompt is printed before every read.
	Prompt string
	// Styled enables lipgloss colors.
	Styled bool
}

// Channel reads user lines from r and writes system lines to w. It is safe
// for use by one conversation at a time.
type Channel struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	w       io.Writer
	opts    Options
}

// New creates a Channel.
func New(r io.Reader, w io.Writer, optFns ...func(o *Options)) *Channel {
	opts := Options{Prompt: "You: "}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Channel{scanner: bufio.NewScanner(r), w: w, opts: opts}
}

// ReadLine implements core.Channel. End of input yields core.ErrInputClosed.
func (c *Channel) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opts.Prompt != "" {
		if _, err := io.WriteString(c.w, c.style(promptStyle, c.opts.Prompt)); err != nil {
			return "", err
		}
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", core.ErrInputClosed
	}
	return strings.TrimRight(c.scanner.Text(), "\r"), nil
}

// WriteLine implements core.Channel.
func (c *Channel) WriteLine(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, c.style(systemStyle, text))
	return err
}

// Notice writes an out-of-band line such as a status message.
func (c *Channel) Notice(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, c.style(noticeStyle, text))
	return err
}

func (c *Channel) style(s lipgloss.Style, text string) string {
	if !c.opts.Styled {
		return text
	}
	return s.Render(text)
}
