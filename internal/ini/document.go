package ini

import "github.com/iancoleman/orderedmap"

// A Document is an ordered collection of named sections.
//
// Sections keep the order in which they were first added, and keys keep the
// order in which they were first set within their section. Overwriting a key
// does not move it. A nil *Document reads as empty.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	sections *orderedmap.OrderedMap
}

// A Section is a named, ordered set of keys with string values. The zero
// value is an empty, unnamed section ready to use, and a nil *Section reads
// as empty.
type Section struct {
	name    string
	entries *orderedmap.OrderedMap
}

// Entry is a single key and its value.
type Entry struct {
	Key   string
	Value string
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{sections: orderedmap.New()}
}

// Get returns the value of key in section. The boolean reports whether both
// the section and the key exist.
func (d *Document) Get(section, key string) (string, bool) {
	s := d.Section(section)
	if s == nil {
		return "", false
	}
	return s.Get(key)
}

// Set sets key to value in section, appending the section to the end of the
// document when it does not exist yet.
//
// Names and values are stored as given. A key or value containing a line
// break will not survive serialization; see Validate.
func (d *Document) Set(section, key, value string) {
	d.AddSection(section).Set(key, value)
}

// Remove deletes key from section. The section itself is kept even when it
// becomes empty. Removing a missing key is a no-op.
func (d *Document) Remove(section, key string) {
	if s := d.Section(section); s != nil {
		s.Remove(key)
	}
}

// RemoveSection deletes section and all of its keys. Removing a missing
// section is a no-op.
func (d *Document) RemoveSection(section string) {
	if d == nil || d.sections == nil {
		return
	}
	d.sections.Delete(section)
}

// AddSection returns the named section, appending an empty one when it does
// not exist yet.
func (d *Document) AddSection(name string) *Section {
	if d.sections == nil {
		d.sections = orderedmap.New()
	}
	if s := d.Section(name); s != nil {
		return s
	}
	s := &Section{name: name, entries: orderedmap.New()}
	d.sections.Set(name, s)
	return s
}

// Section returns the named section, or nil if it does not exist.
func (d *Document) Section(name string) *Section {
	if d == nil || d.sections == nil {
		return nil
	}
	v, ok := d.sections.Get(name)
	if !ok {
		return nil
	}
	return v.(*Section)
}

// HasSection reports whether the named section exists.
func (d *Document) HasSection(name string) bool {
	return d.Section(name) != nil
}

// Sections returns the section names in document order.
func (d *Document) Sections() []string {
	if d == nil || d.sections == nil {
		return nil
	}
	keys := d.sections.Keys()
	names := make([]string, len(keys))
	copy(names, keys)
	return names
}

// Len returns the number of sections.
func (d *Document) Len() int {
	if d == nil || d.sections == nil {
		return 0
	}
	return len(d.sections.Keys())
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for _, name := range d.Sections() {
		dst := c.AddSection(name)
		for _, e := range d.Section(name).Entries() {
			dst.Set(e.Key, e.Value)
		}
	}
	return c
}

// Name returns the section name.
func (s *Section) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Get returns the value of key and whether it exists.
func (s *Section) Get(key string) (string, bool) {
	if s == nil || s.entries == nil {
		return "", false
	}
	v, ok := s.entries.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set inserts or overwrites key.
func (s *Section) Set(key, value string) {
	if s.entries == nil {
		s.entries = orderedmap.New()
	}
	s.entries.Set(key, value)
}

// Remove deletes key if present.
func (s *Section) Remove(key string) {
	if s == nil || s.entries == nil {
		return
	}
	s.entries.Delete(key)
}

// Keys returns the keys in the order they were first set.
func (s *Section) Keys() []string {
	if s == nil || s.entries == nil {
		return nil
	}
	keys := s.entries.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Entries returns the key/value pairs in order.
func (s *Section) Entries() []Entry {
	if s == nil || s.entries == nil {
		return nil
	}
	keys := s.entries.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := s.entries.Get(k)
		entries = append(entries, Entry{Key: k, Value: v.(string)})
	}
	return entries
}

// Len returns the number of keys.
func (s *Section) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return len(s.entries.Keys())
}
