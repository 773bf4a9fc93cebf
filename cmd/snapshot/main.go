// snapshot renders a single frame for a given viewport and saves the full
// screen output (image window plus border) as a PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/fogleman/gg"

	"github.com/verlin/mandelpipe"
	"github.com/verlin/mandelpipe/display"
	"github.com/verlin/mandelpipe/engine"
	"github.com/verlin/mandelpipe/fix"
	"github.com/verlin/mandelpipe/framestore"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	var (
		region   = flag.String("region", "", "named region preset (home, seahorse, elephant, minibrot, triple, dragon)")
		centerRe = flag.Float64("re", mandelpipe.Home.CenterRe.Float(), "viewport center, real part")
		centerIm = flag.Float64("im", mandelpipe.Home.CenterIm.Float(), "viewport center, imaginary part")
		scale    = flag.Float64("scale", mandelpipe.Home.Scale.Float(), "complex-plane distance per pixel")
		iter     = flag.Int("iter", int(mandelpipe.Home.MaxIter), "iteration cap (16-255)")
		palette  = flag.Int("palette", 0, "palette mode (0-3)")
		out      = flag.String("o", "mandel.png", "output file")
		label    = flag.Bool("label", false, "draw the viewport parameters onto the image")
	)
	flag.Parse()

	vp := mandelpipe.Viewport{
		CenterRe: fix.FromFloat(*centerRe),
		CenterIm: fix.FromFloat(*centerIm),
		Scale:    fix.FromFloat(*scale),
		MaxIter:  clampIter(*iter),
	}
	if *region != "" {
		preset, ok := mandelpipe.Regions[*region]
		if !ok {
			return fmt.Errorf("unknown region %q", *region)
		}
		vp = preset
	}
	if vp.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}

	// Step 1: render the frame on the lane engine.
	log.Printf("rendering center=(%v, %v) scale=%v maxIter=%d...",
		vp.CenterRe.Float(), vp.CenterIm.Float(), vp.Scale.Float(), vp.MaxIter)
	store := framestore.New(mandelpipe.ImageWidth, mandelpipe.ImageHeight)
	done := make(chan struct{})
	sched := engine.New(store, func(mandelpipe.Viewport) { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- sched.Run(ctx) }()

	start := time.Now()
	sched.Render(vp)
	<-done
	elapsed := time.Since(start)
	cancel()
	if err := <-finished; err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	log.Printf("frame rendered in %v", elapsed.Round(time.Millisecond))

	// Step 2: read the frame back through the display pipeline.
	pipe := display.New(store)
	pipe.SetMaxIter(vp.MaxIter)
	pipe.SetMode(display.Mode(*palette))
	img := pipe.RenderScreen()

	if *label {
		dc := gg.NewContextForRGBA(img)
		dc.SetRGB(1, 1, 1)
		text := fmt.Sprintf("center (%.6f, %.6f)  scale %.2e  iter %d  %s  %v",
			vp.CenterRe.Float(), vp.CenterIm.Float(), vp.Scale.Float(),
			vp.MaxIter, pipe.CurrentMode(), elapsed.Round(time.Millisecond))
		dc.DrawString(text, 10, float64(mandelpipe.ScreenHeight)-10)
	}

	// Step 3: save to PNG.
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}

	log.Printf("snapshot saved to %q", *out)
	return nil
}

func clampIter(n int) uint8 {
	switch {
	case n < 16:
		return 16
	case n > 255:
		return 255
	}
	return uint8(n)
}
