// Package router implements the Session Router: the outer loop that maps a
// user to their session state and dispatches each step to the workflow that
// is currently Ongoing.
//
// With no Ongoing workflow the router greets the user, classifies the answer
// and marks the matching workflow Ongoing. Workflows are served by Handlers
// registered per workflow key; a key without a handler gets a fixed "not
// implemented" notice and is stopped again.
//
// Steps for the same user are serialized with a keyed mutex; different users
// never block each other.
package router
