package ini

import "strings"

// Kind identifies what a single line of INI text holds.
type Kind int

const (
	// Blank is an empty or whitespace-only line.
	Blank Kind = iota
	// Comment is a line whose first non-whitespace character is ';' or '#'.
	Comment
	// Header is a section header such as "[name]".
	Header
	// Pair is a "key=value" line.
	Pair
	// Invalid is a non-empty line that matches none of the above.
	// The parser skips it.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Header:
		return "header"
	case Pair:
		return "pair"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

const (
	sectionStart = '['
	sectionEnd   = ']'
	separator    = '='
)

// Line is the classification of a single line.
// Name is set for headers, Key and Value for pairs.
type Line struct {
	Kind  Kind
	Name  string
	Key   string
	Value string
}

// Classify classifies one line of text. The line must not contain the line
// terminator.
//
// A header is a trimmed line of the form "[name]" with a non-empty trimmed
// name. Lines with unbalanced brackets are not headers: they are read as a
// pair when they contain '=' and are otherwise Invalid.
func Classify(line string) Line {
	s := strings.TrimSpace(line)
	if s == "" {
		return Line{Kind: Blank}
	}
	switch s[0] {
	case ';', '#':
		return Line{Kind: Comment}
	}
	if len(s) >= 2 && s[0] == sectionStart && s[len(s)-1] == sectionEnd {
		if name := strings.TrimSpace(s[1 : len(s)-1]); name != "" {
			return Line{Kind: Header, Name: name}
		}
	}
	i := strings.IndexByte(s, separator)
	if i < 0 {
		return Line{Kind: Invalid}
	}
	return Line{
		Kind:  Pair,
		Key:   strings.TrimSpace(s[:i]),
		Value: strings.TrimSpace(s[i+1:]),
	}
}
