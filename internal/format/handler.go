// Package format provides interfaces and implementations for converting INI
// documents to and from other configuration file formats.
package format

import "github.com/thirteen37/inistore/internal/ini"

// Handler defines the interface for configuration file format handlers.
type Handler interface {
	// Decode reads raw bytes and returns the equivalent document.
	// Every value must sit exactly one level below a section.
	Decode(data []byte) (*ini.Document, error)

	// Encode writes the document to bytes.
	Encode(doc *ini.Document) ([]byte, error)
}
