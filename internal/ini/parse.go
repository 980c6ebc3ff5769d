package ini

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrKeyOutsideSection is reported when a key/value line appears before the
// first section header.
var ErrKeyOutsideSection = errors.New("key found before any section")

// ParseError describes a line that stopped parsing.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse ini: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// Logger receives a debug record for every skipped line that is neither
	// blank, a comment, a header nor a pair. If nil, nothing is logged.
	Logger *slog.Logger
}

const byteOrderMark = "\uFEFF"

// Parse reads INI text from r and builds a Document. Nil options are treated
// as the zero value.
//
// Blank lines and comments are skipped, and so are lines that cannot be
// classified. A header that appears more than once reopens the existing
// section, and a repeated key overwrites the earlier value in place. The only
// failure is a key/value line before any header, reported as a *ParseError
// wrapping ErrKeyOutsideSection.
func Parse(r io.Reader, opts *ParseOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini: %w", err)
	}
	return ParseString(string(data), opts)
}

// ParseString is like Parse but reads from a string.
func ParseString(text string, opts *ParseOptions) (*Document, error) {
	return parse(strings.TrimPrefix(text, byteOrderMark), opts)
}

func parse(text string, opts *ParseOptions) (*Document, error) {
	var logger *slog.Logger
	if opts != nil {
		logger = opts.Logger
	}

	doc := NewDocument()
	var current *Section
	for i, line := range splitLines(text) {
		lineno := i + 1
		l := Classify(line)
		switch l.Kind {
		case Header:
			current = doc.AddSection(l.Name)
		case Pair:
			if current == nil {
				return nil, &ParseError{Line: lineno, Text: line, Err: ErrKeyOutsideSection}
			}
			current.Set(l.Key, l.Value)
		case Invalid:
			if logger != nil {
				logger.Debug("skipping unrecognized line", slog.Int("line", lineno), slog.String("text", line))
			}
		}
	}
	return doc, nil
}

// splitLines splits text on "\n", dropping a trailing "\r" from each line.
// A final line terminator does not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
