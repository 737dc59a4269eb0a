package client

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes s the way browsers do for a single URI
// component: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is
// percent-encoded as UTF-8, and spaces become %20 rather than +.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}

	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
