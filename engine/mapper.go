// Package engine computes Mandelbrot frames: a coordinate mapper from raster
// cells to the complex plane, a fixed pool of lockstep iteration lanes, and
// the scheduler that sweeps the image in lane-wide batches and commits the
// results into a frame store.
package engine

import (
	"github.com/verlin/mandelpipe"
	"github.com/verlin/mandelpipe/fix"
)

// MapCoord maps raster cell (x, y) to its complex-plane coordinate under the
// given viewport. The cell offset from the image center is a small signed
// integer scaled by the per-pixel step:
//
//	c_re = center_re + (x - ImageWidth/2)  * scale
//	c_im = center_im + (y - ImageHeight/2) * scale
//
// Pure and side-effect free; recomputed for every pixel of every frame.
func MapCoord(x, y int, vp mandelpipe.Viewport) (cre, cim fix.Q824) {
	cre = vp.CenterRe + fix.MulInt(vp.Scale, x-mandelpipe.ImageWidth/2)
	cim = vp.CenterIm + fix.MulInt(vp.Scale, y-mandelpipe.ImageHeight/2)
	return cre, cim
}
