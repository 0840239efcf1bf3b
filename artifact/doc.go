// Package artifact contains concrete implementations of core.ArtifactStore.
//
// The canonical interface lives in the core package to avoid dependency
// cycles. slotmesh records every generated event image here so a user's
// artifacts survive a correction or a later switch back to the workflow.
package artifact
