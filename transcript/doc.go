// Package transcript houses implementations of core.TranscriptStore, the
// per-user record of every line exchanged on a channel.
package transcript
