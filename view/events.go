package view

import (
	"fmt"
	"math"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/render"
)

// Button identifies the pointer button, numbered like DOM MouseEvent.button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Event is an input that changes the viewport.
type Event interface {
	next(c *Controller, v mandel.Viewport) (mandel.Viewport, error)
}

// PointerDown re-centers on the clicked point and zooms in for the primary
// button, out for any other. X and Y are pixel offsets inside the raster.
type PointerDown struct {
	X, Y   float64
	Button Button
}

func (e PointerDown) next(c *Controller, v mandel.Viewport) (mandel.Viewport, error) {
	if !finite(e.X) || !finite(e.Y) {
		return v, fmt.Errorf("%w: (%v, %v)", ErrInvalidPointer, e.X, e.Y)
	}

	nx, ny := render.NDC(e.X, e.Y, c.width, c.height)
	v.CenterX += nx * v.Span / 2
	v.CenterY += ny * v.Span / 2

	if e.Button == ButtonPrimary {
		v.Span *= ZoomIn
	} else {
		v.Span *= ZoomOut
	}
	return v, nil
}

// PrecisionChange sets the iteration cap from the precision control.
// Initial marks the value read when the viewer starts.
type PrecisionChange struct {
	Value   float64
	Initial bool
}

func (e PrecisionChange) next(c *Controller, v mandel.Viewport) (mandel.Viewport, error) {
	n, err := c.precision.Iterations(e.Value, e.Initial)
	if err != nil {
		return v, err
	}
	v.MaxIteration, v.ColorScale = n, 0
	if c.precision.Fractional {
		v.ColorScale, _ = c.precision.Cap(e.Value, e.Initial)
	}
	return v, nil
}

// Reset returns to the home viewport, keeping the current iteration cap.
type Reset struct{}

func (Reset) next(c *Controller, v mandel.Viewport) (mandel.Viewport, error) {
	home := c.home
	home.MaxIteration, home.ColorScale = v.MaxIteration, v.ColorScale
	return home, nil
}

// Goto jumps to a viewport, e.g. a preset.
type Goto struct {
	Viewport mandel.Viewport
}

func (e Goto) next(_ *Controller, _ mandel.Viewport) (mandel.Viewport, error) {
	return e.Viewport, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
