// Package logging provides a minimal logging interface and adapters for slotmesh.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the router, engine and ports use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - SlotMeshLogger with user / component context
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	mesh, err := slotmesh.New(func(o *slotmesh.Options) { o.Logger = logger })
package logging
