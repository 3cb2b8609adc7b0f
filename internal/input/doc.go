// Package input provides key identities, key events, and the action
// bindings table consumed by the lifecycle controller and scenes.
//
// Bindings participate in profile persistence so user rebindings survive
// restarts.
package input
