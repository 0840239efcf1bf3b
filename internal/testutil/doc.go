// Package testutil contains helpers used across tests to script
// conversations (channels, fake ports) and to build session state fluently.
// They are not intended for production usage.
package testutil
