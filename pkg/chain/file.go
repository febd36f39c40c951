package chain

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileHandler resolves to the entire contents of a file, with a single
// trailing newline trimmed. The requested key does not select content: the
// whole file is the value for any key. This is deliberately asymmetric with
// JSONFileHandler and ConfigFileHandler, which are key-aware; a FileHandler
// suits single-value files such as Docker or Kubernetes secrets.
//
// An unreadable or missing file is not an error: the handler reports no
// value and the chain continues with its successor.
//
// Example:
//
//	handler := chain.NewFileHandler("/run/secrets/db_password").
//		Next(chain.NewDefaultHandler("changeme"))
type FileHandler struct {
	path string
	next Handler
}

// NewFileHandler creates a FileHandler for the given file path.
func NewFileHandler(path string) *FileHandler {
	return &FileHandler{path: path}
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *FileHandler) Next(next Handler) *FileHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *FileHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on FileHandler")
	}
	h.next = next
}

// Handle reads the file fresh on every call. The key is only forwarded to
// the successor when the read fails.
func (h *FileHandler) Handle(key string) (string, bool) {
	content, err := os.ReadFile(h.path)
	if err != nil {
		log.Debug().Str("file", h.path).Err(err).Msg("File source has no value")
		return delegate(h.next, key)
	}
	log.Debug().Str("file", h.path).Msg("Resolved value from file contents")
	return trimTrailingNewline(string(content)), true
}

// Name identifies the handler in registry error messages.
func (h *FileHandler) Name() string {
	return "File"
}

// trimTrailingNewline removes exactly one trailing line break. Interior
// whitespace and additional blank lines are preserved: the file contents are
// the value, not a parsed token.
func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
