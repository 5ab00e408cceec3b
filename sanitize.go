package epidoc

import "strings"

// Sanitize cleans raw XML text before parsing. It drops invalid UTF-8 and
// characters XML 1.0 does not allow, normalizes line endings to LF and trims
// surrounding whitespace. Sanitize is idempotent.
//
// Characters that are legal XML but out of place before the prolog, such as
// a stray U+FEFF, are kept. Parsers report those and the loader retries
// with StrictFilter.
func Sanitize(raw string) string {
	s := strings.ToValidUTF8(raw, "")
	s = strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Trim(s, " \t\n")
}

// StrictFilter removes every byte outside printable ASCII, keeping newlines.
// It repairs input that Sanitize could not, at the cost of all non-ASCII text.
func StrictFilter(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || (c >= 0x20 && c <= 0x7e) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xd7ff:
		return true
	case r >= 0xe000 && r <= 0xfffd:
		return true
	case r >= 0x10000 && r <= 0x10ffff:
		return true
	}
	return false
}
