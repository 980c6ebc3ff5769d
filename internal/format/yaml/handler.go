// Package yaml provides a YAML format handler for inistore.
package yaml

import (
	"bytes"
	"fmt"

	"github.com/thirteen37/inistore/internal/format"
	"github.com/thirteen37/inistore/internal/ini"
	"gopkg.in/yaml.v3"
)

// Handler implements format.Handler for YAML files shaped as a mapping of
// section names to mappings of scalars.
type Handler struct{}

// New creates a new YAML handler.
func New() *Handler {
	return &Handler{}
}

// Decode reads YAML bytes into a document, keeping mapping order.
// An empty YAML document decodes to an empty INI document.
func (h *Handler) Decode(data []byte) (*ini.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := ini.NewDocument()
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level is not a mapping", top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		name, body := top.Content[i], top.Content[i+1]
		if body.Kind != yaml.MappingNode {
			if isNull(body) {
				doc.AddSection(name.Value)
				continue
			}
			return nil, fmt.Errorf("line %d: %w: %q is not a section", name.Line, ini.ErrKeyOutsideSection, name.Value)
		}
		section := doc.AddSection(name.Value)
		for j := 0; j+1 < len(body.Content); j += 2 {
			key, val := body.Content[j], body.Content[j+1]
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: section %q key %q: value is not a scalar", key.Line, name.Value, key.Value)
			}
			if isNull(val) {
				section.Set(key.Value, "")
				continue
			}
			section.Set(key.Value, val.Value)
		}
	}
	return doc, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// Encode writes the document to YAML bytes. Every value is written as a
// string, quoted where YAML would otherwise read it as another type.
func (h *Handler) Encode(doc *ini.Document) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range doc.Sections() {
		body := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range doc.Section(name).Entries() {
			body.Content = append(body.Content, stringNode(e.Key), stringNode(e.Value))
		}
		top.Content = append(top.Content, stringNode(name), body)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}}); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
