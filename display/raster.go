package display

import "github.com/verlin/mandelpipe"

// Cell is one raster position of the screen sweep, in scan order: x fastest,
// then y. In hardware these would come from the pixel-clock timing
// generator; here the Scan type produces them.
type Cell struct {
	X, Y int
}

// Scan generates the screen's raster cells in order, one full sweep per
// frame. It is the software stand-in for the external timing generator:
// horizontal and vertical sync collapse to the row and frame wrap-arounds.
type Scan struct {
	x, y int
}

// Next returns the current cell and advances the sweep. frameEnd is true on
// the last cell of a frame; the scan then wraps to the top-left.
func (s *Scan) Next() (c Cell, frameEnd bool) {
	c = Cell{X: s.x, Y: s.y}
	s.x++
	if s.x == mandelpipe.ScreenWidth {
		s.x = 0
		s.y++
		if s.y == mandelpipe.ScreenHeight {
			s.y = 0
			frameEnd = true
		}
	}
	return c, frameEnd
}
