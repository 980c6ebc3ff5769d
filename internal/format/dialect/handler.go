// Package dialect provides a handler for INI dialects understood by
// gopkg.in/ini.v1: quoted and backquoted values, ':' separators, inline
// comments and keys outside any section.
package dialect

import (
	"bytes"
	"fmt"

	"github.com/thirteen37/inistore/internal/format"
	"github.com/thirteen37/inistore/internal/ini"
	iniv1 "gopkg.in/ini.v1"
)

// Handler implements format.Handler for ini.v1 dialect files.
type Handler struct{}

// New creates a new dialect handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads INI bytes with ini.v1 and returns the equivalent document.
// Keys before any section are stored in a section named "DEFAULT", which is
// omitted when it has no keys.
func (h *Handler) Decode(data []byte) (*ini.Document, error) {
	cfg, err := iniv1.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	doc := ini.NewDocument()
	for _, section := range cfg.Sections() {
		keys := section.Keys()
		if section.Name() == iniv1.DefaultSection && len(keys) == 0 {
			continue
		}
		dst := doc.AddSection(section.Name())
		for _, key := range keys {
			dst.Set(key.Name(), key.Value())
		}
	}
	return doc, nil
}

// Encode writes the document in ini.v1's "key = value" style, quoting values
// that need it.
func (h *Handler) Encode(doc *ini.Document) ([]byte, error) {
	cfg := iniv1.Empty()

	for _, name := range doc.Sections() {
		var section *iniv1.Section
		if name == iniv1.DefaultSection {
			section = cfg.Section(iniv1.DefaultSection)
		} else {
			var err error
			section, err = cfg.NewSection(name)
			if err != nil {
				return nil, fmt.Errorf("failed to create section %q: %w", name, err)
			}
		}

		for _, e := range doc.Section(name).Entries() {
			if _, err := section.NewKey(e.Key, e.Value); err != nil {
				return nil, fmt.Errorf("failed to create key %q: %w", e.Key, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize INI: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
