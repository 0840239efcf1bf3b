// Package session houses concrete implementations of core.SessionStore.
// The interface itself (and the SessionState struct) live in the core package
// to centralize domain contracts. Keeping only implementations here prevents
// higher level packages (router, engine) from depending on concrete storage.
//
// Additional backends live in sub‑packages (see session/sqlite) without
// changing any calling code; only the wiring layer decides which
// implementation to instantiate.
package session
