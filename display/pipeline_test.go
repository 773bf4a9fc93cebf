package display

import (
	"testing"

	"github.com/verlin/mandelpipe"
)

// countFunc adapts a function to the CountReader interface for tests.
type countFunc func(addr int) uint8

func (f countFunc) CountAt(addr int) uint8 { return f(addr) }

func TestScanOrderAndWrap(t *testing.T) {
	var s Scan
	c, end := s.Next()
	if c != (Cell{0, 0}) || end {
		t.Fatalf("first cell = %+v end=%v, want (0,0) mid-frame", c, end)
	}
	// Sweep to the end of the first row.
	for i := 1; i < mandelpipe.ScreenWidth; i++ {
		c, end = s.Next()
	}
	if c != (Cell{mandelpipe.ScreenWidth - 1, 0}) || end {
		t.Fatalf("end of row 0 = %+v end=%v", c, end)
	}
	c, _ = s.Next()
	if c != (Cell{0, 1}) {
		t.Fatalf("start of row 1 = %+v", c)
	}
}

func TestScanFrameEnd(t *testing.T) {
	var s Scan
	total := mandelpipe.ScreenWidth * mandelpipe.ScreenHeight
	var last Cell
	var end bool
	for i := 0; i < total; i++ {
		last, end = s.Next()
		if end != (i == total-1) {
			t.Fatalf("frameEnd at cell %d", i)
		}
	}
	if last != (Cell{mandelpipe.ScreenWidth - 1, mandelpipe.ScreenHeight - 1}) {
		t.Fatalf("last cell = %+v", last)
	}
	if c, _ := s.Next(); c != (Cell{0, 0}) {
		t.Fatalf("cell after frame end = %+v, want wrap to (0,0)", c)
	}
}

// Output must emerge exactly Latency clocks after its cell, carrying that
// cell's coordinates.
func TestPipelineLatency(t *testing.T) {
	p := New(countFunc(func(addr int) uint8 { return 1 }))

	in := []Cell{{5, 7}, {6, 7}, {7, 7}, {8, 7}}
	var out []Pixel
	for _, c := range in {
		if px, ok := p.Clock(c, true); ok {
			out = append(out, px)
		}
	}
	for i := 0; i < Latency; i++ {
		if px, ok := p.Clock(Cell{}, false); ok {
			out = append(out, px)
		}
	}

	if len(out) != len(in) {
		t.Fatalf("got %d pixels for %d cells", len(out), len(in))
	}
	for i, px := range out {
		if px.X != in[i].X || px.Y != in[i].Y {
			t.Errorf("pixel %d at (%d,%d), want (%d,%d)", i, px.X, px.Y, in[i].X, in[i].Y)
		}
	}
}

// The border/interior decision travels through the same stages as the
// fetched color: crossing the window edge mid-sweep must flip the output on
// exactly the right pixel.
func TestPipelineWindowAlignment(t *testing.T) {
	counts := countFunc(func(addr int) uint8 { return uint8(addr%100) + 1 })
	p := New(counts)
	p.SetMaxIter(128)
	p.SetMode(ModeEmber)

	y := marginY // first image row
	cells := []Cell{
		{marginX - 2, y}, {marginX - 1, y}, {marginX, y}, {marginX + 1, y},
	}
	var out []Pixel
	for _, c := range cells {
		if px, ok := p.Clock(c, true); ok {
			out = append(out, px)
		}
	}
	for i := 0; i < Latency; i++ {
		if px, ok := p.Clock(Cell{}, false); ok {
			out = append(out, px)
		}
	}
	if len(out) != len(cells) {
		t.Fatalf("got %d pixels for %d cells", len(out), len(cells))
	}

	if out[0].Color != black || out[1].Color != black {
		t.Errorf("border pixels left of window not black: %v, %v", out[0].Color, out[1].Color)
	}
	if want := Shade(counts(0), 128, ModeEmber); out[2].Color != want {
		t.Errorf("first interior pixel = %v, want %v", out[2].Color, want)
	}
	if want := Shade(counts(1), 128, ModeEmber); out[3].Color != want {
		t.Errorf("second interior pixel = %v, want %v", out[3].Color, want)
	}
}

func TestRenderScreen(t *testing.T) {
	counts := countFunc(func(addr int) uint8 { return uint8(addr % 251) })
	p := New(counts)
	p.SetMaxIter(255)
	p.SetMode(ModeGlacier)

	img := p.RenderScreen()
	b := img.Bounds()
	if b.Dx() != mandelpipe.ScreenWidth || b.Dy() != mandelpipe.ScreenHeight {
		t.Fatalf("screen bounds = %v", b)
	}

	tests := []struct {
		name   string
		x, y   int
		border bool
		addr   int
	}{
		{"top-left corner", 0, 0, true, 0},
		{"just left of window", marginX - 1, marginY, true, 0},
		{"window origin", marginX, marginY, false, 0},
		{"window interior", marginX + 123, marginY + 45, false, 45*mandelpipe.ImageWidth + 123},
		{"window far corner", marginX + mandelpipe.ImageWidth - 1, marginY + mandelpipe.ImageHeight - 1,
			false, mandelpipe.ImageWidth*mandelpipe.ImageHeight - 1},
		{"just right of window", marginX + mandelpipe.ImageWidth, marginY, true, 0},
		{"bottom-right corner", mandelpipe.ScreenWidth - 1, mandelpipe.ScreenHeight - 1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.RGBAAt(tt.x, tt.y)
			want := black
			if !tt.border {
				want = Shade(counts(tt.addr), 255, ModeGlacier)
			}
			if got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, want)
			}
		})
	}
}

// Palette mode switches take effect without re-rendering the frame.
func TestModeSampledContinuously(t *testing.T) {
	counts := countFunc(func(addr int) uint8 { return 10 })
	p := New(counts)
	p.SetMaxIter(128)

	p.SetMode(ModeEmber)
	ember := p.RenderScreen().RGBAAt(marginX+5, marginY+5)
	p.SetMode(ModeGlacier)
	glacier := p.RenderScreen().RGBAAt(marginX+5, marginY+5)

	if ember == glacier {
		t.Errorf("mode change had no effect: %v", ember)
	}
	if want := Shade(10, 128, ModeGlacier); glacier != want {
		t.Errorf("glacier pixel = %v, want %v", glacier, want)
	}
}
