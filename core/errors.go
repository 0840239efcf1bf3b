package core

import "errors"

var (
	// ErrAbandoned signals that the user typed the exit token.
	ErrAbandoned = errors.New("conversation abandoned")

	// ErrInputClosed is returned by a Channel when no further input can be read.
	ErrInputClosed = errors.New("input closed")

	// ErrUnknownWorkflow is returned when a workflow key is not part of a session.
	ErrUnknownWorkflow = errors.New("unknown workflow")

	// ErrUnknownField is returned when a field outside the record schema is set.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotImplemented is returned for workflows without a handler.
	ErrNotImplemented = errors.New("workflow not implemented")

	// ErrSessionNotFound is returned by stores that do not create sessions lazily.
	ErrSessionNotFound = errors.New("session not found")
)
