// Package catalog holds the Agent Catalog for the "plan event" workflow and
// the semantic validators its agents use.
//
// The catalog is data: an ordered agent.Catalog built by PlanEvent. The only
// agent with behaviour beyond extraction is the image agent, whose Resolver
// calls the Image Generation Port and walks the user through a single retry
// before falling back to "declined".
package catalog
