// Package rgb565 converts 24-bit RGB into the display's 16-bit 5-6-5 format.
package rgb565

import "image/color"

// Color is a packed 5-6-5 word: red in the top five bits, blue in the bottom five.
type Color uint16

const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// Pack builds a Color from 8-bit channels, truncating the low bits
func Pack(r, g, b uint8) Color {
	return bgr565(b, g, r)
}

// bgr565 packs components into a BGR 5-6-5 word with the last argument in
// the top bits. Callers pass channels reversed (B,G,R) so the word comes out
// as RGB on the wire. This reversal is fixed.
func bgr565(r, g, b uint8) Color {
	return Color(uint16(b>>3)<<11 | uint16(g>>2)<<5 | uint16(r>>3))
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	return r, g, b, 0xFFFF
}

// Bytes returns the big-endian byte pair
func (c Color) Bytes() [2]byte {
	return [2]byte{byte(c >> 8), byte(c)}
}

// FromBytes decodes a big-endian byte pair
func FromBytes(hi, lo byte) Color {
	return Color(uint16(hi)<<8 | uint16(lo))
}

// Model converts any color to a Color
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	r, g, b, _ := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// FromRGB888 repacks a row-major RGB buffer into big-endian 5-6-5 words.
// The output is exactly len(buf)*2/3 bytes; a trailing partial pixel is
// ignored.
func FromRGB888(buf []byte) []byte {
	out := make([]byte, len(buf)*2/3)
	for i, o := 0, 0; i+2 < len(buf); i, o = i+3, o+2 {
		c := bgr565(buf[i+2], buf[i+1], buf[i])
		out[o] = byte(c >> 8)
		out[o+1] = byte(c)
	}
	return out
}
