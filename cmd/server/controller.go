package main

import (
	"sync"

	"github.com/verlin/mandelpipe"
	"github.com/verlin/mandelpipe/display"
	"github.com/verlin/mandelpipe/engine"
	"github.com/verlin/mandelpipe/fix"
)

// Viewport navigation steps and clamps. The engine assumes max_iter and
// scale are already in range; this controller is the layer that owns that
// obligation.
const (
	panStepPixels = 16
	iterStep      = 16
	minIter       = 16
	maxIter       = 255
)

var maxScale = fix.FromFloat(0.01)

// controlMsg is one command from a viewer, decoded from the websocket
// control channel.
type controlMsg struct {
	Op     string `json:"op"`
	Region string `json:"region,omitempty"`
}

// controller is the global mode state machine: it turns viewer commands
// into viewport deltas, requests renders, and retries a request that was
// coalesced away once the running job completes. Palette changes bypass the
// render path entirely; the display samples the mode continuously.
type controller struct {
	sched *engine.Scheduler
	pipe  *display.Pipeline

	mu    sync.Mutex
	vp    mandelpipe.Viewport
	dirty bool
}

func newController(sched *engine.Scheduler, pipe *display.Pipeline) *controller {
	return &controller{sched: sched, pipe: pipe, vp: mandelpipe.Home}
}

// viewport returns the controller's current (not necessarily rendered)
// viewport.
func (c *controller) viewport() mandelpipe.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// kick requests a render of the current viewport. Must hold mu. If the
// scheduler is busy the request is dropped and the dirty flag keeps it
// pending for frameDone.
func (c *controller) kick() {
	c.dirty = !c.sched.Render(c.vp)
}

// start triggers the initial render.
func (c *controller) start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kick()
}

// frameDone re-kicks a pending request after a job completes.
func (c *controller) frameDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty {
		c.kick()
	}
}

// handle applies one viewer command.
func (c *controller) handle(msg controlMsg) {
	if msg.Op == "palette" {
		c.pipe.SetMode(c.pipe.CurrentMode().Next())
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pan := fix.MulInt(c.vp.Scale, panStepPixels)
	switch msg.Op {
	case "panLeft":
		c.vp.CenterRe -= pan
	case "panRight":
		c.vp.CenterRe += pan
	case "panUp":
		c.vp.CenterIm -= pan
	case "panDown":
		c.vp.CenterIm += pan
	case "zoomIn":
		if s := c.vp.Scale / 2; s > 0 {
			c.vp.Scale = s
		}
	case "zoomOut":
		if s := c.vp.Scale * 2; s <= maxScale {
			c.vp.Scale = s
		}
	case "iterUp":
		if c.vp.MaxIter > maxIter-iterStep {
			c.vp.MaxIter = maxIter
		} else {
			c.vp.MaxIter += iterStep
		}
	case "iterDown":
		if c.vp.MaxIter < minIter+iterStep {
			c.vp.MaxIter = minIter
		} else {
			c.vp.MaxIter -= iterStep
		}
	case "region":
		vp, ok := mandelpipe.Regions[msg.Region]
		if !ok {
			return
		}
		c.vp = vp
	default:
		return
	}
	c.kick()
}
