package mandelpipe

import "github.com/verlin/mandelpipe/fix"

// viewportFor builds a Viewport whose image spans [xmin, xmax] horizontally,
// centered on the midpoint of the given bounds.
func viewportFor(xmin, xmax, ymin, ymax float64, maxIter uint8) Viewport {
	return Viewport{
		CenterRe: fix.FromFloat((xmin + xmax) / 2),
		CenterIm: fix.FromFloat((ymin + ymax) / 2),
		Scale:    fix.FromFloat((xmax - xmin) / ImageWidth),
		MaxIter:  maxIter,
	}
}

// Home is the default view: the full set centered on the main cardioid.
var Home = Viewport{
	CenterRe: fix.FromFloat(-0.75),
	CenterIm: 0,
	Scale:    fix.FromFloat(0.003),
	MaxIter:  128,
}

// Classic regions / landmarks in the Mandelbrot set, usable as viewport
// presets for the controller's region-jump command.
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = viewportFor(-0.8, -0.7, 0.05, 0.15, 192)

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = viewportFor(-1.85, -1.75, -0.10, -0.02, 192)

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = viewportFor(-0.7435, -0.7420, 0.1310, 0.1325, 255)

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = viewportFor(-0.7480, -0.7450, 0.0950, 0.0980, 255)

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = viewportFor(-0.7400, -0.7350, 0.1800, 0.1850, 255)
)

// Regions maps preset names, as used by the control protocol, to viewports.
var Regions = map[string]Viewport{
	"home":     Home,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"minibrot": SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
}
