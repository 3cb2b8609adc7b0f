// Package event provides the synchronous publish/subscribe bus that
// decouples the lifecycle controller from its listeners.
//
// The bus delivers events on the caller's goroutine, which by contract is
// the application control thread. Handlers run in registration order over a
// defensive snapshot of the subscriber list, so a handler may publish
// further events or unsubscribe other handlers without corrupting delivery;
// subscription changes made during a publish take effect once that publish
// returns.
package event
