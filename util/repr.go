package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Digits of hex strings.
var hexDigits = "0123456789abcdef"

// Repr returns a quoted representation of a string, in which quotes,
// backslashes and non-printable characters are escaped.
func Repr(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)

	var quote byte
	if strings.IndexByte(s, '\'') < 0 || strings.IndexByte(s, '"') >= 0 {
		quote = '\''
	} else {
		quote = '"'
	}

	b.WriteByte(quote)

	var ch rune
	for size := 0; len(s) > 0; s = s[size:] {
		ch, size = utf8.DecodeRuneInString(s)

		// Handle utf8 errors; should not happen
		if ch == utf8.RuneError && size == 1 {
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[(s[0]>>4)&0xf])
			b.WriteByte(hexDigits[s[0]&0xf])
			continue
		}

		writeRune(&b, ch, rune(quote))
	}

	b.WriteByte(quote)

	return b.String()
}

// RuneRepr returns a quoted representation of a single character.
func RuneRepr(ch rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	writeRune(&b, ch, '\'')
	b.WriteByte('\'')
	return b.String()
}

// writeRune writes the escaped form of ch to the string builder.
func writeRune(b *strings.Builder, ch, quote rune) {
	// Escape quotes and backslashes
	if ch == quote || ch == '\\' {
		b.WriteByte('\\')
		b.WriteByte(byte(ch))
		return
	}

	switch {
	case ch == '\t':
		b.WriteString(`\t`)
	case ch == '\n':
		b.WriteString(`\n`)
	case ch == '\r':
		b.WriteString(`\r`)
	case ch < ' ' || ch == unicode.MaxASCII: // map non-printable US ASCII to '\xhh'
		b.WriteString(`\x`)
		b.WriteByte(hexDigits[(ch>>4)&0xf])
		b.WriteByte(hexDigits[ch&0xf])
	case !unicode.IsPrint(ch):
		hexEscape(b, ch)
	default:
		b.WriteRune(ch)
	}
}

// hexEscape escapes the character to a hex sequence and writes it to the string builder.
func hexEscape(w *strings.Builder, ch rune) {
	w.WriteByte('\\')
	if ch <= 0xff { // Map 8-bit characters to '\xhh'
		w.WriteByte('x')
		w.WriteByte(hexDigits[(ch>>4)&0xf])
		w.WriteByte(hexDigits[ch&0xf])
	} else if ch <= 0xffff { // Map 16-bit characters to '\uxxxx'
		w.WriteByte('u')
		for shift := 12; shift >= 0; shift -= 4 {
			w.WriteByte(hexDigits[(ch>>shift)&0xf])
		}
	} else { // Map 21-bit characters to '\U00xxxxxx'
		w.WriteByte('U')
		for shift := 28; shift >= 0; shift -= 4 {
			w.WriteByte(hexDigits[(ch>>shift)&0xf])
		}
	}
}
