package chain

import (
	"github.com/rs/zerolog/log"
)

// DefaultHandler always resolves to a fixed value, regardless of the key.
// It is meant to terminate a chain as the fallback of last resort: a chain
// ending in a DefaultHandler never reports an absent value.
//
// Example:
//
//	handler := chain.NewEnvHandler().Next(chain.NewDefaultHandler("trace"))
//	value, _ := handler.Handle("verbosity")
type DefaultHandler struct {
	value string
	next  Handler
}

// NewDefaultHandler creates a DefaultHandler returning value for any request.
func NewDefaultHandler(value string) *DefaultHandler {
	return &DefaultHandler{value: value}
}

// Next attaches a successor and returns the handler for further chaining.
// A successor behind a DefaultHandler is unreachable, since the handler
// succeeds unconditionally; the attachment is kept for interface uniformity
// but flagged in the log. Rebinding replaces the previous successor.
func (h *DefaultHandler) Next(next Handler) *DefaultHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. See Next.
func (h *DefaultHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on DefaultHandler")
	}
	log.Warn().Msg("Successor attached to DefaultHandler is unreachable")
	h.next = next
}

// Handle returns the stored value. The key is ignored.
func (h *DefaultHandler) Handle(string) (string, bool) {
	return h.value, true
}

// Name identifies the handler in registry error messages.
func (h *DefaultHandler) Name() string {
	return "Default"
}
