package chain

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Registry associates prefixes with handlers (or whole chains), so that
// properties written as "prefix:key" can be routed to the right chain.
// It backs the ${prefix:key} placeholder expansion in pkg/config.
//
// Example:
//
//	registry := chain.NewRegistry()
//	registry.Register("vault", chain.NewVaultHandler(client, "secret/data/myapp"))
//	value, err := registry.Resolve("vault:DATABASE_PASSWORD")
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// defaultRegistry serves the package-level Register/Unregister/Resolve
// functions. It routes bare keys to the environment.
var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register("env", NewEnvHandler())
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register associates a handler with a prefix. The prefix should not include
// the trailing colon (e.g. "vault", not "vault:"). An existing registration
// for the prefix is replaced with a warning.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Register(prefix string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[prefix]; exists {
		log.Warn().Msgf("Overriding existing handler for prefix %q", prefix)
	}
	r.handlers[prefix] = handler
}

// Unregister removes the handler for a prefix. Useful for testing or dynamic
// reconfiguration.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Unregister(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, prefix)
}

// Resolve routes a property of the form "prefix:key" to the handler
// registered for the prefix. A property without a colon is routed to the
// "env" prefix. Only the first colon separates prefix and key, so
// "custom:db:password" addresses key "db:password".
//
// Unlike Handler.Handle, Resolve reports failures as errors: an unknown
// prefix or a chain that resolves nothing is a configuration mistake the
// caller should hear about.
//
// Thread-safe: this method can be called concurrently.
func (r *Registry) Resolve(property string) (string, error) {
	prefix, key := parseProperty(property)

	r.mu.RLock()
	handler, exists := r.handlers[prefix]
	r.mu.RUnlock()

	if !exists {
		return "", errors.Errorf("no handler registered for prefix %q", prefix)
	}

	value, ok := handler.Handle(key)
	if !ok {
		return "", errors.Errorf("property %q resolved to no value using %s handler", property, handlerName(handler))
	}
	return value, nil
}

// handlerName reports a handler's Name for error messages. Custom Handler
// implementations without one are reported as anonymous.
func handlerName(h Handler) string {
	if named, ok := h.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "anonymous"
}

// Lookup returns the handler registered for a prefix, or nil.
func (r *Registry) Lookup(prefix string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[prefix]
}

// Prefixes returns all registered prefixes. Useful for debugging and
// documentation.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.handlers))
	for prefix := range r.handlers {
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

// Register registers a handler in the default registry.
func Register(prefix string, handler Handler) {
	defaultRegistry.Register(prefix, handler)
}

// Unregister removes a prefix from the default registry. Useful for testing.
func Unregister(prefix string) {
	defaultRegistry.Unregister(prefix)
}

// Resolve resolves a "prefix:key" property against the default registry.
func Resolve(property string) (string, error) {
	return defaultRegistry.Resolve(property)
}

// parseProperty splits a property into prefix and key at the first colon.
// Properties without a colon default to the "env" prefix.
func parseProperty(property string) (prefix string, key string) {
	if i := strings.IndexByte(property, ':'); i >= 0 {
		return property[:i], property[i+1:]
	}
	return "env", property
}
