package prompt

import "strings"

// Render substitutes {name} placeholders with vars. Doubled braces produce a
// literal brace. Placeholders without a value and stray braces are copied
// through unchanged, so Render never fails.
func Render(tmpl string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := placeholderEnd(tmpl, i+1)
			if end < 0 {
				b.WriteByte(c)
				i++
				continue
			}
			name := tmpl[i+1 : end]
			if v, ok := vars[name]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(tmpl[i : end+1])
			}
			i = end + 1
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// placeholderEnd returns the index of the '}' closing an identifier that
// starts at from, or -1.
func placeholderEnd(s string, from int) int {
	for j := from; j < len(s); j++ {
		c := s[j]
		switch {
		case c == '}':
			if j == from {
				return -1
			}
			return j
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
		default:
			return -1
		}
	}
	return -1
}
