package chain

import (
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// JSONFileHandler resolves values from a JSON file. Unlike FileHandler it is
// key-aware: the file is parsed on every request and the requested key is
// searched recursively through nested objects and arrays.
//
// String values are returned verbatim; any other JSON value is returned in
// its JSON encoding. A missing file, malformed JSON or an absent key all
// delegate to the successor.
//
// Example:
//
//	handler := chain.NewJSONFileHandler("file.json").
//		Next(chain.NewDefaultHandler("some_value"))
//	value, _ := handler.Handle("some_key")
type JSONFileHandler struct {
	path string
	next Handler
}

// NewJSONFileHandler creates a JSONFileHandler for the given file path.
func NewJSONFileHandler(path string) *JSONFileHandler {
	return &JSONFileHandler{path: path}
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *JSONFileHandler) Next(next Handler) *JSONFileHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *JSONFileHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on JSONFileHandler")
	}
	h.next = next
}

// Handle parses the JSON file and searches for key.
func (h *JSONFileHandler) Handle(key string) (string, bool) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(h.path), kjson.Parser()); err != nil {
		log.Debug().Str("file", h.path).Err(err).Msg("JSON source has no value")
		return delegate(h.next, key)
	}
	if value, found := findKey(k.Raw(), key); found {
		log.Debug().Str("file", h.path).Str("key", key).Msg("Resolved value from JSON file")
		return value, true
	}
	log.Debug().Str("file", h.path).Str("key", key).Msg("Key not present in JSON file")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *JSONFileHandler) Name() string {
	return "JSONFile"
}
