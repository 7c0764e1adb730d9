package util

import "unicode/utf8"

// IsASCIIString reports whether s contains only ASCII characters.
func IsASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// Offsets maps between character (rune) indices and byte indices of a string.
// For ASCII strings the tables are omitted, because both indices are equal.
type Offsets struct {
	byteOf []int // byte index of each rune index; has one extra entry for the end of the string
	runeOf []int // rune index of each byte index; has one extra entry for the end of the string
}

// RuneOffsets decodes s into its characters and builds the offset tables.
// Each invalid UTF-8 byte is decoded as one utf8.RuneError character, like a []rune conversion does.
func RuneOffsets(s string) ([]rune, Offsets) {
	if IsASCIIString(s) {
		return []rune(s), Offsets{}
	}

	chars := make([]rune, 0, len(s))
	byteOf := make([]int, 0, len(s)+1)
	runeOf := make([]int, 0, len(s)+1)

	for i := 0; i < len(s); {
		ch, size := utf8.DecodeRuneInString(s[i:])

		for j := 0; j < size; j++ {
			runeOf = append(runeOf, len(chars))
		}
		byteOf = append(byteOf, i)
		chars = append(chars, ch)

		i += size // 1 for invalid bytes
	}

	byteOf = append(byteOf, len(s))
	runeOf = append(runeOf, len(chars))

	return chars, Offsets{byteOf: byteOf, runeOf: runeOf}
}

// Byte converts a rune index into a byte index.
func (o Offsets) Byte(i int) int {
	if o.byteOf == nil {
		return i
	}
	return o.byteOf[i]
}

// Rune converts a byte index into a rune index.
// Byte indices inside of a multi-byte character map to that character.
func (o Offsets) Rune(i int) int {
	if o.runeOf == nil {
		return i
	}
	return o.runeOf[i]
}
