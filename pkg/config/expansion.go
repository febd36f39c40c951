package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/animalet/confchain/pkg/chain"
	"github.com/pkg/errors"
)

// ExpandString expands ${prefix:key} placeholders in a string against the
// default registry. Bare ${KEY} placeholders resolve through the "env"
// prefix. Expansion fails fast on the first placeholder that no handler
// can resolve.
func ExpandString(s string) (string, error) {
	return ExpandStringWith(nil, s)
}

// ExpandStringWith is ExpandString against an explicit registry. A nil
// registry falls back to the default one.
func ExpandStringWith(registry *chain.Registry, s string) (string, error) {
	var expandErr error
	expanded := os.Expand(strings.TrimSpace(s), func(property string) string {
		if expandErr != nil {
			return ""
		}
		value, err := resolveProperty(registry, property)
		if err != nil {
			expandErr = errors.Wrapf(err, "expanding %q", property)
			return ""
		}
		return value
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

// ExpandVariables recursively traverses a value and expands placeholders in
// every string it can reach. It handles nested structs, pointers, slices,
// and maps. The toExpand parameter must be a pointer for the expansion to
// be visible to the caller.
func ExpandVariables(toExpand any) error {
	return ExpandVariablesWith(nil, toExpand)
}

// ExpandVariablesWith is ExpandVariables against an explicit registry. A
// nil registry falls back to the default one.
func ExpandVariablesWith(registry *chain.Registry, toExpand any) error {
	if toExpand == nil {
		return nil
	}

	v := reflect.ValueOf(toExpand)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return expandValue(registry, v.Elem())
	}

	return expandValue(registry, v)
}

func resolveProperty(registry *chain.Registry, property string) (string, error) {
	if registry != nil {
		return registry.Resolve(property)
	}
	return chain.Resolve(property)
}

// expandValue is the internal recursive function that operates on reflect.Value
func expandValue(registry *chain.Registry, val reflect.Value) error {
	switch val.Kind() {
	case reflect.String:
		if val.CanSet() {
			expanded, err := ExpandStringWith(registry, val.String())
			if err != nil {
				return err
			}
			val.SetString(expanded)
		}

	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if err := expandValue(registry, val.Field(i)); err != nil {
				return err
			}
		}

	case reflect.Ptr:
		if !val.IsNil() {
			if err := expandValue(registry, val.Elem()); err != nil {
				return err
			}
		}

	case reflect.Slice:
		for j := 0; j < val.Len(); j++ {
			if err := expandValue(registry, val.Index(j)); err != nil {
				return err
			}
		}

	case reflect.Map:
		for _, key := range val.MapKeys() {
			mapVal := val.MapIndex(key)
			// Map values are not addressable, so expand a copy and write it back.
			newVal := reflect.New(mapVal.Type()).Elem()
			newVal.Set(mapVal)
			if err := expandValue(registry, newVal); err != nil {
				return err
			}
			val.SetMapIndex(key, newVal)
		}
	default:
		// No action needed for other kinds
	}

	return nil
}
