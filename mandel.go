package mandel

import "math"

// Raster dimensions of the viewer canvas.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Viewport is the part of the complex plane mapped onto the raster.
// Span is the extent of the plane covered by the raster height.
type Viewport struct {
	CenterX, CenterY float64
	Span             float64
	MaxIteration     int

	// ColorScale, when positive, replaces MaxIteration as the divisor of
	// escape counts when coloring. It holds an unrounded iteration cap,
	// so a cap of 21.6 iterates 22 times but shades by i/21.6.
	ColorScale float64
}

// DefaultViewport is the view the viewer starts with.
var DefaultViewport = Viewport{
	CenterX:      -1,
	CenterY:      0,
	Span:         4.0,
	MaxIteration: 20,
}

// Degenerate reports whether v can only produce a blank or fully capped image.
// Such viewports are still rendered; callers may use this to warn.
func (v Viewport) Degenerate() bool {
	return !(v.Span > 0) || v.MaxIteration <= 0 ||
		math.IsInf(v.Span, 0) || math.IsNaN(v.CenterX) || math.IsNaN(v.CenterY)
}

// Preset is a named landmark in the Mandelbrot set.
type Preset struct {
	Name        string
	Description string
	Viewport    Viewport
}

// region converts a rectangle of the plane into a viewport with the given cap.
// The span is taken from the vertical extent.
func region(xmin, xmax, ymin, ymax float64, maxIter int) Viewport {
	return Viewport{
		CenterX:      (xmin + xmax) / 2,
		CenterY:      (ymin + ymax) / 2,
		Span:         ymax - ymin,
		MaxIteration: maxIter,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var Presets = []Preset{
	{"home", "Whole set, the viewer's start position", DefaultViewport},
	{"seahorse", "Seahorse Valley, dense filaments and repeating curls", region(-0.8, -0.7, 0.05, 0.15, 300)},
	{"elephant", "Elephant Valley, large bulb with trunk-like tendrils", region(-1.85, -1.75, -0.10, -0.02, 300)},
	{"spiral", "Spiral minibrot with tight spiral arms", region(-0.7435, -0.7420, 0.1310, 0.1325, 300)},
	{"triple-spiral", "Threefold symmetric spiral structure", region(-0.7480, -0.7450, 0.0950, 0.0980, 300)},
	{"dragon", "Valley of the Dragon, deep spiral filaments", region(-0.7400, -0.7350, 0.1800, 0.1850, 300)},
	{"mini-spiral", "Minibrot inside a spiral arm", region(-1.7390, -1.7375, -0.0235, -0.0220, 300)},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
