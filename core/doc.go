// Package core provides the foundational domain types and interfaces used by
// slotmesh. It defines the core abstractions for:
//
//   - Workflow records (a named task, its status and its field mapping)
//   - Session state (per-user workflow records with a single Ongoing record)
//   - Ports to external capabilities (extraction, classification, decoration,
//     image generation, summarization)
//   - The text channel the engine reads from and writes to
//   - Pluggable stores for session state, transcripts and artifacts
//
// Implementation concerns (persistence, model providers, the engine itself)
// live in other packages and depend on the small interfaces declared here.
package core
