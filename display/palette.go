// Package display turns completed frames of iteration counts into color
// output: a palette function, a software raster-timing sweep, and the
// fixed-latency pixel pipeline that reads the frame store back while the
// next frame is being computed.
package display

import "image/color"

// Mode selects one of the palette variants. The display samples it
// continuously; it is not latched per frame.
type Mode uint8

const (
	// ModeEmber weights red heaviest, the classic fire ramp.
	ModeEmber Mode = iota
	// ModeGlacier weights blue heaviest.
	ModeGlacier
	// ModeVerdant weights green heaviest.
	ModeVerdant
	// ModeGrayscale drives all three channels equally.
	ModeGrayscale

	// NumModes is the number of palette variants.
	NumModes
)

// Next cycles to the following palette mode.
func (m Mode) Next() Mode { return (m + 1) % NumModes }

func (m Mode) String() string {
	switch m {
	case ModeEmber:
		return "ember"
	case ModeGlacier:
		return "glacier"
	case ModeVerdant:
		return "verdant"
	case ModeGrayscale:
		return "grayscale"
	}
	return "unknown"
}

// Shade maps an iteration count to a color. Counts at or above the cap are
// inside the set and always come out black, in every mode. Below the cap
// each mode applies a fixed per-channel shift to the count; the uint8
// arithmetic wraps, which is what gives the ramps their banding. Pure: no
// state, no failure mode.
func Shade(count, maxIter uint8, m Mode) color.RGBA {
	if count >= maxIter {
		return color.RGBA{A: 0xff}
	}
	switch m {
	case ModeGlacier:
		return color.RGBA{R: count << 1, G: count << 2, B: count << 3, A: 0xff}
	case ModeVerdant:
		return color.RGBA{R: count << 2, G: count << 3, B: count << 1, A: 0xff}
	case ModeGrayscale:
		v := count << 2
		return color.RGBA{R: v, G: v, B: v, A: 0xff}
	default: // ModeEmber
		return color.RGBA{R: count << 3, G: count << 2, B: count << 1, A: 0xff}
	}
}
