package display

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/verlin/mandelpipe"
)

// Latency is the pipeline depth in clocks: one stage for the window
// decision and address computation, one for the buffer fetch and palette
// lookup. Output emerges exactly Latency clocks after its cell goes in.
const Latency = 2

// Centering margins of the image window inside the screen.
const (
	marginX = (mandelpipe.ScreenWidth - mandelpipe.ImageWidth) / 2
	marginY = (mandelpipe.ScreenHeight - mandelpipe.ImageHeight) / 2
)

// Pixel is one colored raster cell emitted by the pipeline.
type Pixel struct {
	X, Y  int
	Color color.RGBA
}

// stage holds the values carried between pipeline clocks. The inside flag
// rides the same registers as the address and the fetched count, so the
// border/interior decision stays aligned with the color for its cell.
type stage struct {
	x, y   int
	inside bool
	addr   int
	count  uint8
	valid  bool
}

// Pipeline is the display readback path. Each Clock accepts one raster cell
// and emits the pixel for the cell presented Latency clocks earlier:
// cells outside the centered image window come out as the black border,
// cells inside as the palette-mapped iteration count fetched from the
// read-source buffer.
//
// The palette mode is sampled continuously and may be changed from another
// goroutine; the iteration cap is latched by the caller at each frame
// boundary. Clock itself is single-consumer, driven by one raster sweep.
type Pipeline struct {
	src     mandelpipe.CountReader
	maxIter atomic.Uint32
	mode    atomic.Uint32

	s1, s2 stage
}

// New creates a pipeline reading counts from src.
func New(src mandelpipe.CountReader) *Pipeline {
	p := &Pipeline{src: src}
	p.maxIter.Store(uint32(mandelpipe.Home.MaxIter))
	return p
}

// SetMode selects the palette variant, effective on the next Clock.
func (p *Pipeline) SetMode(m Mode) { p.mode.Store(uint32(m % NumModes)) }

// CurrentMode returns the palette variant in effect.
func (p *Pipeline) CurrentMode() Mode { return Mode(p.mode.Load()) }

// SetMaxIter latches the iteration cap of the frame now in the read-source
// buffer. Call at the frame boundary, when the buffer roles swap.
func (p *Pipeline) SetMaxIter(maxIter uint8) { p.maxIter.Store(uint32(maxIter)) }

// Clock advances the pipeline by one raster cell. valid marks a real cell;
// pass false to drain the final stages at the end of a sweep. ok is false
// while the pipeline is still filling.
func (p *Pipeline) Clock(c Cell, valid bool) (px Pixel, ok bool) {
	out := p.s2

	// Stage 2: fetch the count for interior cells.
	p.s2 = p.s1
	if p.s2.valid && p.s2.inside {
		p.s2.count = p.src.CountAt(p.s2.addr)
	}

	// Stage 1: window decision and linear address.
	p.s1 = stage{}
	if valid {
		p.s1.valid = true
		p.s1.x, p.s1.y = c.X, c.Y
		ix, iy := c.X-marginX, c.Y-marginY
		if ix >= 0 && ix < mandelpipe.ImageWidth && iy >= 0 && iy < mandelpipe.ImageHeight {
			p.s1.inside = true
			p.s1.addr = iy*mandelpipe.ImageWidth + ix
		}
	}

	if !out.valid {
		return Pixel{}, false
	}
	px = Pixel{X: out.x, Y: out.y, Color: color.RGBA{A: 0xff}}
	if out.inside {
		px.Color = Shade(out.count, uint8(p.maxIter.Load()), p.CurrentMode())
	}
	return px, true
}

// RenderScreen runs one full raster sweep through the pipeline and returns
// the resulting screen image. The pipeline registers are cleared first, so
// no pixel from a previous sweep can leak into the new frame.
func (p *Pipeline) RenderScreen() *image.RGBA {
	p.s1, p.s2 = stage{}, stage{}
	img := image.NewRGBA(image.Rect(0, 0, mandelpipe.ScreenWidth, mandelpipe.ScreenHeight))

	var scan Scan
	emit := func(px Pixel, ok bool) {
		if ok {
			img.SetRGBA(px.X, px.Y, px.Color)
		}
	}
	for {
		c, frameEnd := scan.Next()
		emit(p.Clock(c, true))
		if frameEnd {
			break
		}
	}
	for i := 0; i < Latency; i++ {
		emit(p.Clock(Cell{}, false))
	}
	return img
}
