package chain

import (
	"github.com/rs/zerolog/log"
)

// Chainable is implemented by handlers that can accept a successor. All
// handlers shipped by this package are Chainable; custom Handler
// implementations may opt out, in which case they can only terminate a chain.
type Chainable interface {
	Handler
	// SetNext attaches a successor. Rebinding is last-write-wins.
	SetNext(next Handler)
}

// Link wires handlers into a chain in the given priority order and returns
// the head. Ownership of each handler transfers to its predecessor; a
// handler must not be linked into more than one chain.
//
// A non-Chainable handler anywhere but the last position would silently drop
// the rest of the chain, so Link flags it in the log and stops linking there.
func Link(handlers ...Handler) Handler {
	if len(handlers) == 0 {
		return nil
	}
	for i := len(handlers) - 2; i >= 0; i-- {
		chainable, ok := handlers[i].(Chainable)
		if !ok {
			log.Warn().Int("position", i).Msg("Handler cannot accept a successor, chain truncated after it")
			continue
		}
		chainable.SetNext(handlers[i+1])
	}
	return handlers[0]
}
