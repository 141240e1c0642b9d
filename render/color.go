package render

import (
	"image/color"
	"math"
)

// Packed 24-bit colors used by the default palette.
const (
	Cyan    uint32 = 0x00ffff
	Magenta uint32 = 0xff00ff
	Black   uint32 = 0x000000
)

// InterpolateColor blends two packed 0xRRGGBB colors channel by channel.
// t is clamped to [0, 1]; NaN counts as 0. Channels are truncated, not rounded.
func InterpolateColor(c1, c2 uint32, t float64) uint32 {
	switch {
	case !(t > 0):
		t = 0
	case t > 1:
		t = 1
	}

	r := lerpChannel(c1>>16&0xff, c2>>16&0xff, t)
	g := lerpChannel(c1>>8&0xff, c2>>8&0xff, t)
	b := lerpChannel(c1&0xff, c2&0xff, t)
	return r<<16 | g<<8 | b
}

func lerpChannel(a, b uint32, t float64) uint32 {
	return uint32(math.Trunc(Lerp(float64(a), float64(b), t))) & 0xff
}

// Unpack returns the opaque RGBA value of a packed color.
func Unpack(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
