package input

import (
	"iter"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ParseQuery parses a raw query string into Params using bracket notation
// for structured fields:
//
//	a=1&a=2          -> a: "2"
//	a[]=1&a[]=2      -> a: []any{"1", "2"}
//	a[x][y]=1        -> a: Params{"x": Params{"y": "1"}}
//
// Pairs are applied in the order they appear, so a later scalar replaces an
// earlier structured value of the same name and the other way around.
// Decoding is lenient: malformed percent escapes are kept verbatim instead of
// failing the whole string. Pairs with an empty name are dropped. Dots and
// spaces in top-level names are kept as sent, not rewritten to underscores.
func ParseQuery(raw string) Params {
	out := Params{}
	for name, value := range pairs(raw) {
		assign(out, name, value)
	}
	return compact(out)
}

// pairs yields the decoded name/value pairs of raw in order.
func pairs(raw string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for pair := range strings.SplitSeq(raw, "&") {
			if pair == "" {
				continue
			}
			name, value, _ := strings.Cut(pair, "=")
			if !yield(decodeComponent(name), decodeComponent(value)) {
				return
			}
		}
	}
}

// paramsFromValues builds Params from already decoded form values, applying
// the same bracket rules as ParseQuery. url.Values keeps no order between
// names, so names are processed sorted to keep the result deterministic.
func paramsFromValues(values url.Values) Params {
	out := Params{}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		for _, value := range values[name] {
			assign(out, name, value)
		}
	}
	return compact(out)
}

// assign stores value under name, creating nested Params for bracket segments.
func assign(root Params, name, value string) {
	base, segments := splitName(name)
	if base == "" {
		return
	}

	cur := root
	keys := append([]string{base}, segments...)
	for i, key := range keys {
		if i > 0 && key == "" {
			key = strconv.Itoa(nextIndex(cur))
		}
		if i == len(keys)-1 {
			cur[key] = value
			return
		}
		child, ok := cur[key].(Params)
		if !ok {
			child = Params{}
			cur[key] = child
		}
		cur = child
	}
}

// splitName separates "a[b][]" into "a" and ["b", ""]. A name whose first
// bracket is never closed is returned whole, with no segments. Text after the
// last well-formed segment is ignored.
func splitName(name string) (string, []string) {
	name = strings.TrimLeft(name, " ")

	open := strings.IndexByte(name, '[')
	switch {
	case open == 0:
		return "", nil
	case open < 0:
		return name, nil
	}
	if !strings.Contains(name[open:], "]") {
		return name, nil
	}

	base := name[:open]
	var segments []string
	rest := name[open:]
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return base, segments
}

// nextIndex returns one past the largest non-negative integer key in p.
func nextIndex(p Params) int {
	next := 0
	for k := range p {
		if n, err := strconv.Atoi(k); err == nil && n >= next && strconv.Itoa(n) == k {
			next = n + 1
		}
	}
	return next
}

// compact turns every nested Params keyed exactly "0".."n-1" into []any.
// The top level is always kept as Params.
func compact(p Params) Params {
	for k, v := range p {
		if child, ok := v.(Params); ok {
			p[k] = compactValue(child)
		}
	}
	return p
}

func compactValue(p Params) any {
	compact(p)
	for i := range len(p) {
		if _, ok := p[strconv.Itoa(i)]; !ok {
			return p
		}
	}
	list := make([]any, len(p))
	for i := range list {
		list[i] = p[strconv.Itoa(i)]
	}
	return list
}

// decodeComponent decodes '+' and %XX escapes, keeping invalid escapes as is.
func decodeComponent(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
