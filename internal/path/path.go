// Package path parses selectors that address a key inside an INI document.
package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key addresses a single key within a section.
type Key struct {
	Section string
	Name    string
}

// Parse parses a key selector. Two forms are accepted:
//
//	section.key            split at the first '.'
//	["section", "key"]     JSON array, for names containing '.'
func Parse(s string) (Key, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		return ParseArray(s)
	}
	section, name, ok := strings.Cut(s, ".")
	if !ok {
		return Key{}, fmt.Errorf("invalid selector %q: want section.key", s)
	}
	if section == "" {
		return Key{}, fmt.Errorf("invalid selector %q: empty section", s)
	}
	return Key{Section: section, Name: name}, nil
}

// ParseArray parses a JSON array selector of exactly two strings.
// Example input: `["server", "host"]`
func ParseArray(s string) (Key, error) {
	var segments []string
	if err := json.Unmarshal([]byte(s), &segments); err != nil {
		return Key{}, fmt.Errorf("invalid path array: %w", err)
	}
	if len(segments) != 2 {
		return Key{}, fmt.Errorf("invalid path array: want 2 segments, got %d", len(segments))
	}
	if segments[0] == "" {
		return Key{}, errors.New("invalid path array: empty section")
	}
	return Key{Section: segments[0], Name: segments[1]}, nil
}

// Segments returns the selector as [section, key].
func (k Key) Segments() []string {
	return []string{k.Section, k.Name}
}

// String returns the dotted form when it parses back to k, and the JSON
// array form otherwise.
func (k Key) String() string {
	if !strings.Contains(k.Section, ".") && !strings.HasPrefix(strings.TrimSpace(k.Section), "[") && k.Section != "" {
		return k.Section + "." + k.Name
	}
	data, _ := json.Marshal(k.Segments())
	return string(data)
}
