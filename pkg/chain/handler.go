// Package chain provides an extensible chain-of-responsibility resolution
// system for named configuration values. A chain is an ordered sequence of
// handlers, each bound to one source (command-line arguments, environment
// variables, files, structured documents, HashiCorp Vault, AWS Secrets
// Manager, or a fixed default). A request walks the chain until some handler
// produces a value.
//
// Handlers never surface source errors to the caller: a missing file, an
// unset variable, an unreadable secret and a malformed document all collapse
// to "no value, try the next source". The swallowed cause is logged at debug
// level so operators can still diagnose why a source stayed silent.
package chain

// Handler is one link in a resolution chain.
//
// Handle attempts to resolve key against the handler's own source. On
// success it returns the value and true without consulting the rest of the
// chain. On failure it delegates the identical key to its successor, if any,
// and returns the successor's result; with no successor it returns ("", false).
//
// Implementations must not cache source reads between calls and must not
// mutate shared state during Handle, so an assembled chain is safe for
// concurrent resolution.
type Handler interface {
	// Handle resolves a value for the given key.
	// The boolean reports whether any handler in the chain produced a value.
	Handle(key string) (string, bool)
}

// ArgSource is the collaborator contract for parsed command-line arguments.
// It is constructed and owned by the host application; an ArgHandler only
// borrows it and must not outlive it.
//
// Lookup must report a value only when the argument was actually supplied by
// the user. A flag that merely has a declared default inside the parser is
// not "supplied" and must return ok=false, otherwise the chain would never
// fall through to lower-priority sources.
type ArgSource interface {
	Lookup(name string) (value string, ok bool)
}

// delegate forwards key to next when a handler could not resolve it locally.
// A nil successor ends the chain.
func delegate(next Handler, key string) (string, bool) {
	if next == nil {
		return "", false
	}
	return next.Handle(key)
}
