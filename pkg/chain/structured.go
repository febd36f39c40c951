package chain

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrUnsupportedFormat is returned by config handler constructors when the
// document format cannot be determined or has no registered parser.
var ErrUnsupportedFormat = errors.New("unsupported config document format")

// ConfigFileHandler resolves values from a structured configuration file in
// YAML, JSON or TOML format. The parser is chosen by the file extension. The
// file is read and parsed fresh on every request; there is no cached parse
// tree, so edits to the file are visible to subsequent requests.
//
// The requested key is searched recursively: a match at any depth of the
// document, including inside nested tables and arrays, resolves the request.
// String values are returned verbatim; any other value is returned in its
// JSON encoding (123 -> "123", true -> "true").
//
// A missing file, an unparseable document or an absent key all delegate to
// the successor.
//
// Example:
//
//	handler, err := chain.NewConfigFileHandler("config.yaml")
type ConfigFileHandler struct {
	path   string
	parser koanf.Parser
	next   Handler
}

// NewConfigFileHandler creates a handler for the given file path. The format
// is inferred from the extension (.yaml/.yml, .json, .toml); an unknown
// extension yields ErrUnsupportedFormat.
func NewConfigFileHandler(path string) (*ConfigFileHandler, error) {
	parser, err := parserForFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create config handler for %q", path)
	}
	return &ConfigFileHandler{path: path, parser: parser}, nil
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *ConfigFileHandler) Next(next Handler) *ConfigFileHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *ConfigFileHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on ConfigFileHandler")
	}
	h.next = next
}

// Handle parses the file and searches for key.
func (h *ConfigFileHandler) Handle(key string) (string, bool) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(h.path), h.parser); err != nil {
		log.Debug().Str("file", h.path).Err(err).Msg("Config source has no value")
		return delegate(h.next, key)
	}
	if value, found := findKey(k.Raw(), key); found {
		log.Debug().Str("file", h.path).Str("key", key).Msg("Resolved value from config file")
		return value, true
	}
	log.Debug().Str("file", h.path).Str("key", key).Msg("Key not present in config file")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *ConfigFileHandler) Name() string {
	return "ConfigFile"
}

// ConfigBytesHandler is a ConfigFileHandler over an in-memory document, for
// applications that embed their configuration. The document is re-parsed on
// every request for symmetry with the file-backed handlers.
type ConfigBytesHandler struct {
	data   []byte
	parser koanf.Parser
	next   Handler
}

// NewConfigBytesHandler creates a handler over a raw document. Format is one
// of "yaml", "yml", "json" or "toml".
func NewConfigBytesHandler(data []byte, format string) (*ConfigBytesHandler, error) {
	parser, err := parserForFormat(format)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create config bytes handler")
	}
	return &ConfigBytesHandler{data: data, parser: parser}, nil
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *ConfigBytesHandler) Next(next Handler) *ConfigBytesHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *ConfigBytesHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on ConfigBytesHandler")
	}
	h.next = next
}

// Handle parses the document and searches for key.
func (h *ConfigBytesHandler) Handle(key string) (string, bool) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(h.data), h.parser); err != nil {
		log.Debug().Err(err).Msg("Config document has no value")
		return delegate(h.next, key)
	}
	if value, found := findKey(k.Raw(), key); found {
		log.Debug().Str("key", key).Msg("Resolved value from config document")
		return value, true
	}
	log.Debug().Str("key", key).Msg("Key not present in config document")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *ConfigBytesHandler) Name() string {
	return "ConfigBytes"
}

// parserForFormat maps a format name or file extension to a koanf parser.
func parserForFormat(format string) (koanf.Parser, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return kyaml.Parser(), nil
	case "json":
		return kjson.Parser(), nil
	case "toml":
		return ktoml.Parser(), nil
	default:
		if format == "" {
			format = "unknown"
		}
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", format)
	}
}

// findKey searches a parsed document for key, depth-first. Maps are checked
// for a direct entry before descending; descent visits map entries in sorted
// key order so a key duplicated under several branches resolves to the same
// value on every request. Arrays are searched element-wise.
func findKey(node any, key string) (string, bool) {
	switch value := node.(type) {
	case map[string]any:
		if entry, ok := value[key]; ok {
			return stringify(entry), true
		}
		branches := make([]string, 0, len(value))
		for branch := range value {
			branches = append(branches, branch)
		}
		sort.Strings(branches)
		for _, branch := range branches {
			if found, ok := findKey(value[branch], key); ok {
				return found, true
			}
		}
	case []any:
		for _, entry := range value {
			if found, ok := findKey(entry, key); ok {
				return found, true
			}
		}
	}
	return "", false
}

// stringify renders a document value as text. Strings pass through verbatim;
// everything else uses its JSON encoding so numbers and booleans read the
// same way they were written.
func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Msg("Cannot encode config value, falling back to empty string")
		return ""
	}
	return string(encoded)
}
