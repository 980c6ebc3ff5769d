// Package store ties an ini.Document to a file on disk.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thirteen37/inistore/internal/ini"
)

// ErrNoPath is returned by Save when the store has no associated file.
var ErrNoPath = errors.New("no file path set")

// Options configures a Store. The zero value writes LF line endings and
// does not log.
type Options struct {
	// LineEnding used by Save and String. Empty means ini.LF.
	LineEnding string

	// Logger receives debug records for loads, saves and skipped lines.
	Logger *slog.Logger
}

// Store is an INI document optionally associated with a file.
// It is not safe for concurrent use.
type Store struct {
	path string
	doc  *ini.Document
	opts Options
}

// New returns an empty Store with no associated file. Nil options are
// treated as the zero value.
func New(opts *Options) *Store {
	s := &Store{doc: ini.NewDocument()}
	if opts != nil {
		s.opts = *opts
	}
	return s
}

// Load reads and parses the file at path. A file that does not exist yields
// an empty Store that will create it on the first Save. Any other read
// failure is returned.
func Load(path string, opts *Options) (*Store, error) {
	s := New(opts)
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.debug("starting empty, file does not exist", slog.String("path", path))
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := ini.ParseString(string(data), s.parseOptions())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s.doc = doc
	s.debug("loaded", slog.String("path", path), slog.Int("bytes", len(data)), slog.Int("sections", doc.Len()))
	return s, nil
}

// LoadString parses text into a Store with no associated file.
func LoadString(text string, opts *Options) (*Store, error) {
	s := New(opts)
	doc, err := ini.ParseString(text, s.parseOptions())
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

// Path returns the associated file path, or "" if there is none.
func (s *Store) Path() string {
	return s.path
}

// SetPath associates the store with a file for subsequent saves.
func (s *Store) SetPath(path string) {
	s.path = path
}

// Document returns the underlying document. Changes made through it are
// visible to the store.
func (s *Store) Document() *ini.Document {
	return s.doc
}

// Get returns the value of key in section and whether it exists.
func (s *Store) Get(section, key string) (string, bool) {
	return s.doc.Get(section, key)
}

// Set sets key to value in section, creating the section if needed.
func (s *Store) Set(section, key, value string) {
	s.doc.Set(section, key, value)
}

// Remove deletes key from section if present.
func (s *Store) Remove(section, key string) {
	s.doc.Remove(section, key)
}

// RemoveSection deletes section and its keys if present.
func (s *Store) RemoveSection(section string) {
	s.doc.RemoveSection(section)
}

// SetDocument replaces the document. A nil doc empties the store.
func (s *Store) SetDocument(doc *ini.Document) {
	if doc == nil {
		doc = ini.NewDocument()
	}
	s.doc = doc
}

// String returns the serialized document.
func (s *Store) String() string {
	return ini.Serialize(s.doc, &ini.SerializeOptions{LineEnding: s.opts.LineEnding})
}

// Save writes the serialized document to the associated file and returns
// the number of bytes written. Comments from the loaded file are not kept.
//
// The data is written to a temporary file in the same directory and renamed
// over the target, so a failed save leaves the previous file in place.
func (s *Store) Save() (int, error) {
	if s.path == "" {
		return 0, fmt.Errorf("save: %w", ErrNoPath)
	}
	data := []byte(s.String())
	if err := atomicWrite(s.path, data); err != nil {
		return 0, fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.debug("saved", slog.String("path", s.path), slog.Int("bytes", len(data)))
	return len(data), nil
}

func (s *Store) parseOptions() *ini.ParseOptions {
	return &ini.ParseOptions{Logger: s.opts.Logger}
}

func (s *Store) debug(msg string, attrs ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Debug(msg, attrs...)
	}
}

// atomicWrite writes data to path via a temporary file and rename. The mode of
// an existing file is kept; new files get 0644. A symlink at path is followed
// so that the link stays in place and its target receives the data.
func atomicWrite(path string, data []byte) (err error) {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp) // best effort cleanup
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
