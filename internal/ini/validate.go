package ini

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every section name, key and value in doc that would not
// read back unchanged after Serialize. The returned error, if any, is a
// *multierror.Error listing each problem.
func Validate(doc *Document) error {
	var merr error
	for _, name := range doc.Sections() {
		if err := validateSection(name); err != nil {
			merr = multierror.Append(merr, err)
		}
		for _, e := range doc.Section(name).Entries() {
			if err := validateEntry(name, e.Key, e.Value); err != nil {
				merr = multierror.Append(merr, err)
			}
		}
	}
	return merr
}

// ValidateEntry checks a single section, key and value the way Validate does.
func ValidateEntry(section, key, value string) error {
	var merr error
	if err := validateSection(section); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := validateEntry(section, key, value); err != nil {
		merr = multierror.Append(merr, err)
	}
	return merr
}

func validateSection(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("section %q: name is empty", name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("section %q: name has surrounding whitespace", name)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("section %q: name contains a line break", name)
	}
	return nil
}

func validateEntry(section, key, value string) error {
	where := fmt.Sprintf("section %q: key %q", section, key)
	switch {
	case strings.ContainsAny(key, "\r\n"):
		return fmt.Errorf("%s: key contains a line break", where)
	case strings.ContainsRune(key, separator):
		return fmt.Errorf("%s: key contains %q", where, separator)
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("%s: key has surrounding whitespace", where)
	case key != "" && (key[0] == ';' || key[0] == '#'):
		return fmt.Errorf("%s: key starts a comment", where)
	case strings.ContainsAny(value, "\r\n"):
		return fmt.Errorf("%s: value contains a line break", where)
	case strings.TrimSpace(value) != value:
		return fmt.Errorf("%s: value has surrounding whitespace", where)
	}

	// "[a" with value "]" is written as "[a=]", which reads back as a header.
	if l := Classify(key + string(separator) + value); l.Kind != Pair {
		return fmt.Errorf("%s: entry reads back as a %s", where, l.Kind)
	}
	return nil
}
