/*
Package ini parses, edits and writes a minimal INI dialect.

A file is a sequence of sections, each holding key/value pairs:

	[server]
	host=example.com
	port=8080

	[client]
	retries=3

Whitespace around section names, keys and values is ignored. A line whose
first non-whitespace character is ';' or '#' is a comment. Values are the raw
remainder of the line after the first '='; there is no quoting or escaping.
Lines that are none of blank, comment, "[name]" or "key=value" are skipped,
and a bracketed line with an empty name or a missing bracket is not a header.

Every key must belong to a section. A key/value line before the first header
is an error (ErrKeyOutsideSection).

A header repeated later in the file reopens the earlier section, and a
repeated key keeps its first position but takes the last value.

Serialize writes the canonical form: "[name]" headers, "key=value" entries
and one blank line between sections. Comments and original spacing are not
preserved.
*/
package ini
