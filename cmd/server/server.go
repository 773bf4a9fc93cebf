package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net/http"

	"github.com/google/gops/agent"
	"golang.org/x/sync/errgroup"

	"github.com/verlin/mandelpipe"
	"github.com/verlin/mandelpipe/display"
	"github.com/verlin/mandelpipe/engine"
	"github.com/verlin/mandelpipe/framestore"
)

// main is the entry point for the Mandelbrot render server: it computes
// frames locally on the lockstep lane engine and streams them to browser
// viewers over a websocket.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http/websocket listen port")
	flag.Parse()

	// gops lets us inspect the running server (stacks, gc, version).
	if err := agent.Listen(agent.Options{}); err != nil {
		log.Printf("gops agent: %v", err)
	}

	store := framestore.New(mandelpipe.ImageWidth, mandelpipe.ImageHeight)
	pipe := display.New(store)
	h := newHub()

	// The frame-done hook runs on the scheduler goroutine: latch the
	// finished job's iteration cap, sweep the display pipeline over the
	// fresh read-source buffer, and fan the encoded screen out to viewers.
	var ctrl *controller
	sched := engine.New(store, func(vp mandelpipe.Viewport) {
		pipe.SetMaxIter(vp.MaxIter)
		screen := pipe.RenderScreen()

		var buf bytes.Buffer
		if err := png.Encode(&buf, screen); err != nil {
			log.Printf("encode frame: %v", err)
			return
		}
		seq := h.broadcast(buf.Bytes(), statusMsg{
			Type:     "status",
			Busy:     false,
			CenterRe: vp.CenterRe.Float(),
			CenterIm: vp.CenterIm.Float(),
			Scale:    vp.Scale.Float(),
			MaxIter:  vp.MaxIter,
			Palette:  pipe.CurrentMode().String(),
		})
		log.Printf("frame %d done: center=(%v, %v) scale=%v maxIter=%d",
			seq, vp.CenterRe.Float(), vp.CenterIm.Float(), vp.Scale.Float(), vp.MaxIter)

		ctrl.frameDone()
	})
	ctrl = newController(sched, pipe)

	srv := webServer(*port, h, ctrl)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := sched.Run(ctx); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})

	// First frame: the home view.
	ctrl.start()
	log.Printf("render server up, waiting for viewers")

	return g.Wait()
}
