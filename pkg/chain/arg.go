package chain

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// ArgHandler resolves values from an already-parsed command-line argument
// collection. The collection is supplied once at construction and borrowed
// for the handler's lifetime; it is never re-parsed per request.
//
// Example:
//
//	flags := pflag.NewFlagSet("myapp", pflag.ContinueOnError)
//	flags.String("config", "", "config file path")
//	_ = flags.Parse(os.Args[1:])
//
//	handler := chain.NewArgHandler(chain.NewFlagSetSource(flags)).
//		Next(chain.NewEnvHandler().Prefix("MYAPP_"))
type ArgHandler struct {
	args ArgSource
	next Handler
}

// NewArgHandler creates an ArgHandler over the given argument source.
// The source must outlive the handler; its validity is the caller's
// responsibility.
func NewArgHandler(args ArgSource) *ArgHandler {
	return &ArgHandler{args: args}
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *ArgHandler) Next(next Handler) *ArgHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *ArgHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on ArgHandler")
	}
	h.next = next
}

// Handle asks the argument source for key. Whether an argument counts as
// supplied is the source's call; the value is passed through unmodified.
func (h *ArgHandler) Handle(key string) (string, bool) {
	if h.args != nil {
		if value, ok := h.args.Lookup(key); ok {
			log.Debug().Str("arg", key).Msg("Resolved value from command-line argument")
			return value, true
		}
	}
	log.Debug().Str("arg", key).Msg("Command-line argument not supplied")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *ArgHandler) Name() string {
	return "Argument"
}

// FlagSetSource adapts a *pflag.FlagSet to the ArgSource contract.
// A flag is reported only when the user actually set it on the command line
// (pflag's Changed), so declared defaults inside the flag set do not shadow
// lower-priority sources in the chain.
type FlagSetSource struct {
	flags *pflag.FlagSet
}

// NewFlagSetSource creates an ArgSource over a parsed flag set.
func NewFlagSetSource(flags *pflag.FlagSet) *FlagSetSource {
	return &FlagSetSource{flags: flags}
}

// Lookup reports the flag's string value when it was supplied by the user.
func (s *FlagSetSource) Lookup(name string) (string, bool) {
	if s.flags == nil || !s.flags.Changed(name) {
		return "", false
	}
	flag := s.flags.Lookup(name)
	if flag == nil {
		return "", false
	}
	return flag.Value.String(), true
}

// MapSource is an in-memory ArgSource backed by a map.
// Useful for tests or for embedding applications that parse arguments with
// some other library.
type MapSource map[string]string

// Lookup retrieves a value from the map.
func (s MapSource) Lookup(name string) (string, bool) {
	value, ok := s[name]
	return value, ok
}
