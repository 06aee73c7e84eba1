package colour

import "unicode/utf16"

// Hash returns the polynomial (base 31) hash of word over its UTF-16 code
// units, accumulated in a signed 32-bit integer with wraparound, as a
// magnitude.
//
// Runes above U+FFFF contribute both halves of their surrogate pair. Invalid
// UTF-8 bytes contribute U+FFFD. The empty string hashes to 0. Because the
// accumulator is two's-complement, an accumulator of -2147483648 yields
// 2147483648.
func Hash(word string) uint32 {
	var acc int32
	for _, r := range word {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			acc = acc*31 + hi
			acc = acc*31 + lo
			continue
		}
		acc = acc*31 + r
	}

	if acc < 0 {
		return uint32(-int64(acc))
	}
	return uint32(acc)
}

// RawChannels splits the low 24 bits of a hash into red (bits 16-23), green
// (bits 8-15) and blue (bits 0-7).
func RawChannels(hash uint32) RGB {
	return RGB{
		R: uint8(hash >> 16),
		G: uint8(hash >> 8),
		B: uint8(hash),
	}
}
