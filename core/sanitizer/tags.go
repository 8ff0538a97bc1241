package sanitizer

import "strings"

// tagState is the position of the StripTags scanner relative to markup.
type tagState int

const (
	stateText        tagState = iota // plain text, copied to output
	stateTag                         // inside <...>
	stateInstruction                 // inside <? ... ?>
	stateDeclaration                 // inside <! ... >
	stateComment                     // inside <!-- ... -->
)

// StripTags removes HTML, XML and processing-instruction markup from s.
// Text between tags is kept verbatim.
//
// The scanner tracks nested '<' inside a tag, so broken markup such as
// `<s><</s>script>x` still yields "x". Quoted attribute values may contain '>'.
// A '<' followed by whitespace is treated as text, and NUL bytes are dropped.
func StripTags(s string) string {
	if strings.IndexByte(s, '<') < 0 && strings.IndexByte(s, 0) < 0 {
		return s
	}

	var (
		b       strings.Builder
		state   = stateText
		depth   int
		inQuote byte
		lc      byte // last significant character inside an instruction
		br      int  // parenthesis balance inside an instruction
		isXML   bool
	)
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch state {
		case stateText:
			switch c {
			case 0:
			case '<':
				if nextIsSpace(s, i) {
					b.WriteByte(c)
					continue
				}
				lc = '<'
				state = stateTag
			case '>':
				if depth > 0 {
					depth--
					continue
				}
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}

		case stateTag:
			switch c {
			case '<':
				if inQuote != 0 || nextIsSpace(s, i) {
					continue
				}
				depth++
			case '>':
				if depth > 0 {
					depth--
					continue
				}
				if inQuote != 0 {
					continue
				}
				lc = '>'
				if isXML && s[i-1] == '-' {
					continue
				}
				inQuote, state, isXML = 0, stateText, false
			case '"', '\'':
				if i > 0 && (inQuote == 0 || c == inQuote) {
					inQuote = toggleQuote(inQuote, c)
				}
			case '!':
				if i > 0 && s[i-1] == '<' {
					state = stateDeclaration
					lc = c
				}
			case '?':
				if i > 0 && s[i-1] == '<' {
					br = 0
					state = stateInstruction
				}
			}

		case stateInstruction:
			switch c {
			case '(':
				if lc != '"' && lc != '\'' {
					lc = '('
					br++
				}
			case ')':
				if lc != '"' && lc != '\'' {
					lc = ')'
					br--
				}
			case '>':
				if depth > 0 {
					depth--
					continue
				}
				if inQuote != 0 {
					continue
				}
				if br == 0 && lc != '"' && s[i-1] == '?' {
					inQuote, state = 0, stateText
				}
			case '"', '\'':
				if s[i-1] != '\\' {
					if lc == c {
						lc = 0
					} else if lc != '\\' {
						lc = c
					}
					if inQuote == 0 || c == inQuote {
						inQuote = toggleQuote(inQuote, c)
					}
				}
			case 'l', 'L':
				// "<?xml" is markup, not an instruction.
				if i > 4 && strings.EqualFold(s[i-4:i], "<?xm") {
					state = stateTag
					isXML = true
				}
			}

		case stateDeclaration:
			switch c {
			case '>':
				if depth > 0 {
					depth--
					continue
				}
				if inQuote != 0 {
					continue
				}
				inQuote, state = 0, stateText
			case '"', '\'':
				if s[i-1] != '\\' && (inQuote == 0 || c == inQuote) {
					inQuote = toggleQuote(inQuote, c)
				}
			case '-':
				if i >= 2 && s[i-1] == '-' && s[i-2] == '!' {
					state = stateComment
				}
			case 'E', 'e':
				if i > 6 && strings.EqualFold(s[i-6:i], "doctyp") {
					state = stateTag
				}
			}

		case stateComment:
			if c == '>' && inQuote == 0 && i >= 2 && s[i-1] == '-' && s[i-2] == '-' {
				inQuote, state = 0, stateText
			}
		}
	}

	return b.String()
}

func nextIsSpace(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	switch s[i+1] {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func toggleQuote(current, c byte) byte {
	if current != 0 {
		return 0
	}
	return c
}
