// Package view owns the viewer's navigation state.
//
// A Controller holds the current mandel.Viewport and turns input events into
// the next viewport. Viewports are plain values: the renderer gets a copy
// and never sees a later change. A Controller is not safe for concurrent use;
// each viewer session owns one and applies its events in order.
package view

import (
	mandel "github.com/marben/canvas_mandel"
)

// Zoom factors applied to the span on every click.
const (
	ZoomIn  = 0.8
	ZoomOut = 1.2
)

// Option configures a Controller.
type Option func(*Controller)

// WithHome sets the starting viewport, also used by Reset.
func WithHome(v mandel.Viewport) Option {
	return func(c *Controller) { c.home = v }
}

// WithPrecisionRange sets how the precision control maps to iteration caps.
func WithPrecisionRange(r PrecisionRange) Option {
	return func(c *Controller) { c.precision = r }
}

// Controller produces viewport snapshots from input events.
type Controller struct {
	width, height int
	precision     PrecisionRange

	home    mandel.Viewport
	current mandel.Viewport
}

// NewController creates a controller for a width x height raster.
func NewController(width, height int, opts ...Option) *Controller {
	c := &Controller{
		width:     width,
		height:    height,
		precision: DefaultPrecision,
		home:      mandel.DefaultViewport,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current = c.home
	return c
}

// Viewport returns the current snapshot.
func (c *Controller) Viewport() mandel.Viewport {
	return c.current
}

// Size returns the raster dimensions the controller maps clicks against.
func (c *Controller) Size() (width, height int) {
	return c.width, c.height
}

// Apply computes the viewport that follows ev and makes it current.
// A rejected event returns the unchanged viewport and an error.
func (c *Controller) Apply(ev Event) (mandel.Viewport, error) {
	next, err := ev.next(c, c.current)
	if err != nil {
		return c.current, err
	}
	c.current = next
	return next, nil
}
