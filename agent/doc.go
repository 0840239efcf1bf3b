// Package agent models Agent Specifications: declarative units that own a
// subset of a workflow's fields together with their prompt, extraction
// instruction, validator and confirmation renderer.
//
// A Spec carries no conversation state. The workflow engine asks it which
// fields are missing, which prompt and extraction instruction fit the current
// gaps, and whether the collected values validate. Specs that need more than
// extraction (for example generating an image from a collected description)
// plug in a Resolver, which may talk to the user through a Prompter.
//
// Catalogs are ordered slices of Specs; Catalog.Check enforces that no two
// agents claim the same field.
package agent
