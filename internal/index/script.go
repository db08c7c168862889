package index

// Byte values of the two-byte sequences the tokenizer recognises. Cyrillic
// letters live under the 0xD0 and 0xD1 lead bytes.
const (
	leadD0 byte = 0xD0
	leadD1 byte = 0xD1

	accentLead  byte = 0xCC // combining acute accent: 0xCC 0x81
	accentTrail byte = 0x81
	nbspLead    byte = 0xC2 // no-break space: 0xC2 0xA0
	nbspTrail   byte = 0xA0

	latinCaseOffset byte = 'a' - 'A'
	cyrCaseOffset   byte = 0x20
)

// IsLatin reports whether c is an ASCII letter.
func IsLatin(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsCyrillicLead reports whether c can start a two-byte Cyrillic letter.
func IsCyrillicLead(c byte) bool {
	return c == leadD0 || c == leadD1
}

// IsCyrillic reports whether the pair encodes one of А-я, Ё or ё.
func IsCyrillic(c1, c2 byte) bool {
	switch {
	case c1 == leadD0 && c2 >= 0x90 && c2 <= 0xBF: // А-п
		return true
	case c1 == leadD1 && c2 >= 0x80 && c2 <= 0x8F: // р-я
		return true
	case c1 == leadD0 && c2 == 0x81: // Ё
		return true
	case c1 == leadD1 && c2 == 0x91: // ё
		return true
	}
	return false
}

// LowerLatin lowercases A-Z and returns any other byte untouched.
func LowerLatin(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + latinCaseOffset
	}
	return c
}

// LowerCyrillic lowercases an uppercase Cyrillic pair. Р-Я move to the
// 0xD1 lead byte, so the trail byte shifts down instead of up.
func LowerCyrillic(c1, c2 byte) (byte, byte) {
	switch {
	case c1 == leadD0 && c2 >= 0x90 && c2 <= 0x9F: // А-П
		return c1, c2 + cyrCaseOffset
	case c1 == leadD0 && c2 >= 0xA0 && c2 <= 0xAF: // Р-Я
		return leadD1, c2 - cyrCaseOffset
	case c1 == leadD0 && c2 == 0x81: // Ё
		return leadD1, 0x91
	}
	return c1, c2
}
