// Package json provides a JSON format handler for inistore.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/inistore/internal/format"
	"github.com/thirteen37/inistore/internal/ini"
)

// Handler implements format.Handler for JSON files shaped as
// {"section": {"key": "value"}}.
type Handler struct {
	// Indent is the indentation string for Encode. Empty means two spaces.
	Indent string

	// StripComments removes // comments before decoding (JSONC input).
	StripComments bool
}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// commentRegex matches single-line // comments.
var commentRegex = regexp.MustCompile(`(?m)^\s*//.*$|//[^"]*$`)

// StripComments removes single-line // comments from JSON.
// This allows parsing JSONC (JSON with comments) files.
func StripComments(data []byte) []byte {
	return commentRegex.ReplaceAll(data, nil)
}

// Decode reads JSON bytes into a document, keeping object key order.
// Numbers, booleans and null are accepted as values and stringified.
// Empty input decodes to an empty document.
func (h *Handler) Decode(data []byte) (*ini.Document, error) {
	if h.StripComments {
		data = StripComments(data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ini.NewDocument(), nil
	}

	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	doc, err := format.FromOrderedMap(om)
	if err != nil {
		return nil, fmt.Errorf("failed to convert JSON: %w", err)
	}
	return doc, nil
}

// Encode writes the document to formatted JSON bytes.
func (h *Handler) Encode(doc *ini.Document) ([]byte, error) {
	indent := h.Indent
	if indent == "" {
		indent = "  "
	}

	data, err := json.MarshalIndent(format.ToOrderedMap(doc), "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	// Add trailing newline
	return append(data, '\n'), nil
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
