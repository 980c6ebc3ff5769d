package ini

import (
	"io"
	"strings"
)

// Line endings accepted by SerializeOptions.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// SerializeOptions holds optional parameters for Serialize.
type SerializeOptions struct {
	// LineEnding terminates every emitted line. Empty means LF.
	LineEnding string
}

// Serialize renders doc in canonical form: each section as "[name]" followed
// by its entries as "key=value", with one blank line between sections and
// none after the last. Comments from parsed input are not reproduced.
func Serialize(doc *Document, opts *SerializeOptions) string {
	nl := LF
	if opts != nil && opts.LineEnding != "" {
		nl = opts.LineEnding
	}

	var sb strings.Builder
	for i, name := range doc.Sections() {
		if i > 0 {
			sb.WriteString(nl)
		}
		sb.WriteByte(sectionStart)
		sb.WriteString(name)
		sb.WriteByte(sectionEnd)
		sb.WriteString(nl)
		for _, e := range doc.Section(name).Entries() {
			sb.WriteString(e.Key)
			sb.WriteByte(separator)
			sb.WriteString(e.Value)
			sb.WriteString(nl)
		}
	}
	return sb.String()
}

// String returns the canonical LF-terminated text of d.
func (d *Document) String() string {
	return Serialize(d, nil)
}

// MarshalText implements encoding.TextMarshaler.
func (d *Document) MarshalText() ([]byte, error) {
	return []byte(Serialize(d, nil)), nil
}

// UnmarshalText parses data with default options, replacing the contents
// of d.
func (d *Document) UnmarshalText(data []byte) error {
	parsed, err := ParseString(string(data), nil)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// WriteTo writes the canonical LF-terminated text of d to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Serialize(d, nil))
	return int64(n), err
}
