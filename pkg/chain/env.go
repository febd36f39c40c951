package chain

import (
	"os"

	"github.com/rs/zerolog/log"
)

// EnvHandler resolves values from process environment variables.
// An optional prefix is prepended to the requested key before lookup, so a
// handler with prefix "MYAPP_" asked for "config" consults "MYAPP_config".
//
// Example:
//
//	handler := chain.NewEnvHandler().Prefix("MYAPP_")
//	value, ok := handler.Handle("config") // reads MYAPP_config
type EnvHandler struct {
	prefix string
	next   Handler
}

// NewEnvHandler creates an EnvHandler with no prefix.
func NewEnvHandler() *EnvHandler {
	return &EnvHandler{}
}

// Prefix sets the prefix prepended to keys before environment lookup and
// returns the handler for further chaining.
func (h *EnvHandler) Prefix(prefix string) *EnvHandler {
	h.prefix = prefix
	return h
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *EnvHandler) Next(next Handler) *EnvHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *EnvHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on EnvHandler")
	}
	h.next = next
}

// Handle looks up prefix+key in the environment. An unset variable delegates
// the original, unprefixed key to the successor. The raw value is returned
// without trimming or coercion; a variable set to the empty string resolves
// to the empty string.
func (h *EnvHandler) Handle(key string) (string, bool) {
	name := h.prefix + key
	if value, found := os.LookupEnv(name); found {
		log.Debug().Str("env_var", name).Msg("Resolved value from environment variable")
		return value, true
	}
	log.Debug().Str("env_var", name).Msg("Environment variable not set")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *EnvHandler) Name() string {
	return "Environment"
}
