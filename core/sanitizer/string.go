package sanitizer

import (
	"path"
	"strings"
)

// trimSet is stripped from both ends: space, tab, newline, carriage return,
// NUL and vertical tab.
const trimSet = " \t\n\r\x00\x0B"

// Trim removes leading and trailing whitespace and NUL bytes from the string.
// Interior whitespace is preserved.
func Trim(s string) string {
	return strings.Trim(s, trimSet)
}

// Clean trims s, stripping markup first when stripTags is set.
func Clean(s string, stripTags bool) string {
	if stripTags {
		return Trim(StripTags(s))
	}
	return Trim(s)
}

// Filename reduces an uploaded file name to its base component and removes
// NUL bytes. Empty names and directory references become "unnamed".
func Filename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")

	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}
