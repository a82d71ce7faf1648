// Package bitconv converts between bytes, "0"/"1" text and bit slices.
// Bytes are expanded most-significant bit first.
package bitconv

import (
	"fmt"
	"strings"
)

func BytesToBools(b []byte) []bool {
	bits := make([]bool, len(b)*8)
	for i, bb := range b {
		for j := range 8 {
			bits[i*8+j] = bb&(0x80>>j) != 0
		}
	}
	return bits
}

// BoolsToBytes packs bits into bytes. A trailing partial byte is padded with
// zero bits.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, v := range bits {
		if v {
			out[i/8] |= 0x80 >> (i % 8)
		}
	}
	return out
}

// ParseBits reads a string of '0' and '1' characters.
func ParseBits(s string) ([]bool, error) {
	bits := make([]bool, len(s))
	for i := range len(s) {
		switch s[i] {
		case '0':
		case '1':
			bits[i] = true
		default:
			return nil, fmt.Errorf("invalid bit %q at %d", s[i], i)
		}
	}
	return bits, nil
}

func FormatBits(bits []bool) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, v := range bits {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
