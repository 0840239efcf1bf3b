package core

import "context"

// Channel is the raw text I/O transport: one line of user text in, one or more
// lines of system text out. ReadLine blocks until input arrives and returns
// ErrInputClosed once the input is exhausted.
type Channel interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(ctx context.Context, text string) error
}
