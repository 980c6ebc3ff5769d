package format

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/thirteen37/inistore/internal/ini"
)

// ToOrderedMapPtr converts both value and pointer types of OrderedMap to a pointer.
// Returns nil if the value is not an OrderedMap.
func ToOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// ToOrderedMap converts doc into nested ordered maps:
// {"section": {"key": "value"}}.
func ToOrderedMap(doc *ini.Document) *orderedmap.OrderedMap {
	result := orderedmap.New()
	for _, name := range doc.Sections() {
		section := orderedmap.New()
		for _, e := range doc.Section(name).Entries() {
			section.Set(e.Key, e.Value)
		}
		result.Set(name, section)
	}
	return result
}

// FromOrderedMap builds a document from nested ordered maps. Section values
// must be maps and key values must be scalars.
func FromOrderedMap(om *orderedmap.OrderedMap) (*ini.Document, error) {
	doc := ini.NewDocument()
	if om == nil {
		return doc, nil
	}
	for _, name := range om.Keys() {
		v, _ := om.Get(name)
		sectionMap := ToOrderedMapPtr(v)
		if sectionMap == nil {
			return nil, fmt.Errorf("%w: %q is not a section", ini.ErrKeyOutsideSection, name)
		}
		section := doc.AddSection(name)
		for _, key := range sectionMap.Keys() {
			kv, _ := sectionMap.Get(key)
			s, err := ScalarString(kv)
			if err != nil {
				return nil, fmt.Errorf("section %q key %q: %w", name, key, err)
			}
			section.Set(key, s)
		}
	}
	return doc, nil
}

// ScalarString converts a decoded scalar to its INI string form.
// INI files only support string values; nil becomes "" and times are
// written as RFC 3339.
func ScalarString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", val), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
