// Package toml provides a TOML format handler for inistore.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/thirteen37/inistore/internal/format"
	"github.com/thirteen37/inistore/internal/ini"
)

// Handler implements format.Handler for TOML files with one table per
// section.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads TOML bytes into a document.
// Key order from the original TOML document is preserved.
func (h *Handler) Decode(data []byte) (*ini.Document, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, FormatError(err)
	}

	doc := ini.NewDocument()
	for _, key := range meta.Keys() {
		switch len(key) {
		case 1:
			switch raw[key[0]].(type) {
			case map[string]any:
			case []map[string]any:
				return nil, fmt.Errorf("table %q: arrays of tables are not supported", key[0])
			default:
				return nil, fmt.Errorf("%w: top-level key %q outside a table", ini.ErrKeyOutsideSection, key[0])
			}
			doc.AddSection(key[0])
		case 2:
			table, ok := raw[key[0]].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("key %q: %q is not a table", key.String(), key[0])
			}
			v := table[key[1]]
			if _, nested := v.(map[string]any); nested {
				return nil, fmt.Errorf("table %q: nested tables are not supported", key.String())
			}
			s, err := scalarString(v)
			if err != nil {
				return nil, fmt.Errorf("table %q key %q: %w", key[0], key[1], err)
			}
			doc.Set(key[0], key[1], s)
		default:
			return nil, fmt.Errorf("key %q: nested tables are not supported", key.String())
		}
	}
	return doc, nil
}

// localLayouts are the layouts of TOML's local date and time types, keyed by
// the zone name the decoder gives them.
var localLayouts = map[string]string{
	"datetime-local": "2006-01-02T15:04:05.999999999",
	"date-local":     "2006-01-02",
	"time-local":     "15:04:05.999999999",
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case time.Time:
		if layout, ok := localLayouts[val.Location().String()]; ok {
			return val.Format(layout), nil
		}
	case []any, []map[string]any:
		return "", errors.New("arrays are not supported")
	}
	return format.ScalarString(v)
}

// Encode writes the document to TOML bytes.
// Note: BurntSushi/toml encoder sorts keys alphabetically, so section and key
// order is not preserved.
func (h *Handler) Encode(doc *ini.Document) ([]byte, error) {
	regular := make(map[string]map[string]string, doc.Len())
	for _, name := range doc.Sections() {
		section := make(map[string]string)
		for _, e := range doc.Section(name).Entries() {
			section[e.Key] = e.Value
		}
		regular[name] = section
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(regular); err != nil {
		return nil, fmt.Errorf("failed to serialize TOML: %w", err)
	}

	return buf.Bytes(), nil
}

// FormatError returns a detailed error message for TOML parse errors.
func FormatError(err error) error {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("TOML parse error at line %d: %w", perr.Position.Line, err)
	}
	return fmt.Errorf("failed to parse TOML: %w", err)
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
