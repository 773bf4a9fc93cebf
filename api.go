// Package mandelpipe holds the shared types of the fixed-point Mandelbrot
// render pipeline: the viewport parameters sampled at the start of a render
// job, the frame geometry constants, and the read-side interface through
// which the display pipeline observes completed frames.
package mandelpipe

import "github.com/verlin/mandelpipe/fix"

// Frame geometry. The image is the computed region; the screen is the full
// raster the display pipeline sweeps, with the image centered inside it.
const (
	ImageWidth  = 600
	ImageHeight = 400

	ScreenWidth  = 800
	ScreenHeight = 600
)

// Viewport selects the region of the complex plane to render. CenterRe and
// CenterIm locate the image center; Scale is the complex-plane distance
// between adjacent pixels. Scale must be positive. MaxIter caps the
// escape-time iteration per pixel; callers clamp it to a sane range before
// handing it in, the engine does not re-validate.
type Viewport struct {
	CenterRe fix.Q824
	CenterIm fix.Q824
	Scale    fix.Q824
	MaxIter  uint8
}

// CountReader is the read-source side of a frame store: random access to the
// iteration counts of the most recently completed frame, addressed linearly
// as y*ImageWidth + x. Implementations guarantee the observed frame is always
// a fully committed one, never a partial write.
type CountReader interface {
	CountAt(addr int) uint8
}
