package ini

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// dump flattens a document into comparable values.
type dumpedSection struct {
	Name    string
	Entries []Entry
}

func dump(d *Document) []dumpedSection {
	var out []dumpedSection
	for _, name := range d.Sections() {
		entries := d.Section(name).Entries()
		if len(entries) == 0 {
			entries = nil
		}
		out = append(out, dumpedSection{Name: name, Entries: entries})
	}
	return out
}

func TestNilDocument(t *testing.T) {
	d := (*Document)(nil)
	if _, ok := d.Get("a", "b"); ok {
		t.Error("Get on nil document reported a value")
	}
	if got := d.Sections(); len(got) > 0 {
		t.Errorf("Sections() = %q; want empty", got)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d; want 0", d.Len())
	}
	d.Remove("a", "b")
	d.RemoveSection("a")
	if got := Serialize(d, nil); got != "" {
		t.Errorf("Serialize(nil) = %q; want empty", got)
	}
}

func TestZeroDocument(t *testing.T) {
	var d Document
	d.Set("a", "x", "1")
	if v, ok := d.Get("a", "x"); !ok || v != "1" {
		t.Errorf("Get() = %q, %v; want %q, true", v, ok, "1")
	}
}

func TestZeroSection(t *testing.T) {
	var s Section
	if _, ok := s.Get("k"); ok {
		t.Error("Get on zero section reported a value")
	}
	s.Remove("k")
	if s.Len() != 0 || s.Keys() != nil || s.Entries() != nil {
		t.Errorf("zero section not empty: %d keys", s.Len())
	}

	s.Set("k", "v")
	s.Set("j", "w")
	want := []Entry{{Key: "k", Value: "v"}, {Key: "j", Value: "w"}}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	var nilSection *Section
	if nilSection.Name() != "" || nilSection.Len() != 0 {
		t.Error("nil section not empty")
	}
	if _, ok := nilSection.Get("k"); ok {
		t.Error("Get on nil section reported a value")
	}
}

func TestDocument_SetGet(t *testing.T) {
	d := NewDocument()
	d.Set("c", "z", "5")

	v, ok := d.Get("c", "z")
	if !ok || v != "5" {
		t.Errorf("Get(c, z) = %q, %v; want %q, true", v, ok, "5")
	}
	if _, ok := d.Get("c", "missing"); ok {
		t.Error("Get(c, missing) reported a value")
	}
	if _, ok := d.Get("missing", "z"); ok {
		t.Error("Get(missing, z) reported a value")
	}
}

func TestDocument_SetEmptyValue(t *testing.T) {
	d := NewDocument()
	d.Set("a", "k", "")
	v, ok := d.Get("a", "k")
	if !ok || v != "" {
		t.Errorf("Get(a, k) = %q, %v; want empty, true", v, ok)
	}
}

func TestDocument_Order(t *testing.T) {
	d := NewDocument()
	d.Set("b", "y", "1")
	d.Set("a", "x", "1")
	d.Set("b", "w", "2")
	d.Set("b", "y", "3") // overwrite keeps position
	d.Set("c", "z", "4")

	want := []dumpedSection{
		{Name: "b", Entries: []Entry{{"y", "3"}, {"w", "2"}}},
		{Name: "a", Entries: []Entry{{"x", "1"}}},
		{Name: "c", Entries: []Entry{{"z", "4"}}},
	}
	if diff := cmp.Diff(want, dump(d)); diff != "" {
		t.Errorf("document (-want +got):\n%s", diff)
	}
}

func TestDocument_Remove(t *testing.T) {
	d := NewDocument()
	d.Set("a", "x", "1")
	d.Set("a", "y", "2")

	d.Remove("a", "x")
	if _, ok := d.Get("a", "x"); ok {
		t.Error("Get(a, x) after Remove reported a value")
	}
	if v, _ := d.Get("a", "y"); v != "2" {
		t.Errorf("Get(a, y) = %q; want %q", v, "2")
	}

	d.Remove("a", "y")
	if !d.HasSection("a") {
		t.Error("Remove of last key dropped the section")
	}
	if got := d.Section("a").Len(); got != 0 {
		t.Errorf("Section(a).Len() = %d; want 0", got)
	}

	// No-ops.
	d.Remove("a", "never")
	d.Remove("never", "x")
	if got := d.Sections(); !cmp.Equal(got, []string{"a"}) {
		t.Errorf("Sections() = %q; want [a]", got)
	}
}

func TestDocument_RemoveSection(t *testing.T) {
	d := NewDocument()
	d.Set("a", "x", "1")
	d.Set("b", "y", "2")
	d.Set("c", "z", "3")

	d.RemoveSection("b")
	if _, ok := d.Get("b", "y"); ok {
		t.Error("Get(b, y) after RemoveSection reported a value")
	}
	if diff := cmp.Diff([]string{"a", "c"}, d.Sections()); diff != "" {
		t.Errorf("Sections() (-want +got):\n%s", diff)
	}

	d.RemoveSection("never")
	if d.Len() != 2 {
		t.Errorf("Len() = %d; want 2", d.Len())
	}

	// A section added again goes to the end.
	d.Set("b", "y", "again")
	if diff := cmp.Diff([]string{"a", "c", "b"}, d.Sections()); diff != "" {
		t.Errorf("Sections() (-want +got):\n%s", diff)
	}
}

func TestDocument_SectionsIsCopy(t *testing.T) {
	d := NewDocument()
	d.Set("a", "x", "1")
	names := d.Sections()
	names[0] = "mutated"
	if !d.HasSection("a") || d.HasSection("mutated") {
		t.Error("mutating Sections() result changed the document")
	}
}

func TestDocument_Clone(t *testing.T) {
	d := NewDocument()
	d.Set("a", "x", "1")
	d.AddSection("empty")

	c := d.Clone()
	c.Set("a", "x", "changed")
	c.RemoveSection("empty")

	if v, _ := d.Get("a", "x"); v != "1" {
		t.Errorf("original Get(a, x) = %q; want %q", v, "1")
	}
	if !d.HasSection("empty") {
		t.Error("original lost section after mutating clone")
	}
}
