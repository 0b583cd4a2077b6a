package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrOption is matched by every *OptionError.
var ErrOption = errors.New("config: invalid option")

// OptionError reports a malformed option name.
type OptionError struct {
	Name   string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("config: invalid option name %q: %s", e.Name, e.Reason)
}

// Is makes errors.Is(err, ErrOption) hold for any OptionError.
func (e *OptionError) Is(target error) bool { return target == ErrOption }

// Entry is one key of an ordered option tree.
type Entry struct {
	Key   string
	Value any
}

// Tree is an option map that keeps its keys in document order. Values may be
// nested Trees, nested map[string]any, or leaf values.
type Tree []Entry

// Store maps dotted option names to values. Names are kept in insertion order;
// overwriting a name keeps its original position.
//
// A Store is not safe for concurrent mutation.
type Store struct {
	values map[string]any
	order  []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// ── Writes ───────────────────────────────────────────────────────────────────

// SetOption stores value under name, overwriting any previous value.
func (s *Store) SetOption(name string, value any) error {
	if err := CheckName(name); err != nil {
		return err
	}
	s.set(name, value)
	return nil
}

// SetOptions flattens opts into dotted names, each prefixed with prefix, and
// stores them in order. Nested maps are walked with sorted keys, Trees in their
// own order. Every name is checked before anything is written.
//
//	s.SetOptions(map[string]any{"request": map[string]any{"uri": "/jaxon"}}, "core")
//	// core.request.uri = "/jaxon"
func (s *Store) SetOptions(opts any, prefix string) error {
	prefix = strings.TrimSuffix(prefix, ".")
	if prefix != "" {
		if err := CheckName(prefix); err != nil {
			return err
		}
	}

	var flat []Entry
	if err := flatten(opts, prefix, &flat); err != nil {
		return err
	}
	for _, e := range flat {
		if err := CheckName(e.Key); err != nil {
			return err
		}
	}
	for _, e := range flat {
		s.set(e.Key, e.Value)
	}
	return nil
}

func (s *Store) set(name string, value any) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = value
}

// ── Reads ────────────────────────────────────────────────────────────────────

// GetOption returns the value stored under name. The boolean is false when the
// name was never set; a stored nil is reported as (nil, true).
func (s *Store) GetOption(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// HasOption reports whether a value was ever stored under exactly name.
func (s *Store) HasOption(name string) bool {
	_, ok := s.values[name]
	return ok
}

// GetOptionNames returns, in insertion order, every stored name that starts
// with prefix. An empty prefix returns all names.
func (s *Store) GetOptionNames(prefix string) []string {
	out := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// String returns the option stored under name formatted as a string, or
// fallback when it is absent.
func (s *Store) String(name, fallback string) string {
	v, ok := s.values[name]
	if !ok || v == nil {
		return fallback
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Len returns the number of stored options.
func (s *Store) Len() int { return len(s.order) }

// ── Names ────────────────────────────────────────────────────────────────────

// CheckName returns an *OptionError unless name is a well-formed dotted path:
// non-empty, no empty segments, no whitespace.
func CheckName(name string) error {
	if name == "" {
		return &OptionError{Name: name, Reason: "empty name"}
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return &OptionError{Name: name, Reason: "empty segment"}
		}
		if strings.IndexFunc(seg, unicode.IsSpace) >= 0 {
			return &OptionError{Name: name, Reason: "whitespace in segment"}
		}
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func flatten(v any, prefix string, out *[]Entry) error {
	switch node := v.(type) {
	case Tree:
		for _, e := range node {
			if err := flattenChild(e.Key, e.Value, prefix, out); err != nil {
				return err
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flattenChild(k, node[k], prefix, out); err != nil {
				return err
			}
		}
	case map[string]string:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			*out = append(*out, Entry{Key: join(prefix, k), Value: node[k]})
		}
	case nil:
	default:
		return fmt.Errorf("config: cannot flatten %T, want a map or Tree", v)
	}
	return nil
}

func flattenChild(key string, value any, prefix string, out *[]Entry) error {
	name := join(prefix, key)
	switch value.(type) {
	case Tree, map[string]any, map[string]string:
		if key == "" {
			return &OptionError{Name: name, Reason: "empty segment"}
		}
		return flatten(value, name, out)
	}
	*out = append(*out, Entry{Key: name, Value: value})
	return nil
}
