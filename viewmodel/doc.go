// Package viewmodel holds the fetch lifecycle of the catalog lists, the search
// box and the details pane.
//
// Each view model is a small state machine:
//
//	Idle -> Loading -> Success | Failure
//
// Every Begin starts a new generation. A resolution is applied only when its
// generation is still the current one; older resolutions are discarded, so the
// most recent submission always wins regardless of the order in which
// responses arrive. In-flight requests are not cancelled.
//
// Synchronous callers use Load, Submit and Open. Asynchronous hosts (the
// terminal browser) split the cycle into Begin, Run and Resolve so that the
// fetch can run off the UI loop.
package viewmodel
