// Package model defines the provider‑agnostic abstractions and concrete
// helpers for interacting with language models inside slotmesh.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Let every port (extraction, classification, decoration, summarization)
//     share one model contract
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the ports remain decoupled from vendor SDKs.
package model
