// Package render computes escape-time images of the Mandelbrot set.
//
// A Renderer maps every pixel of a fixed-size raster onto the complex plane,
// counts escape iterations and colors the pixel by interpolating between two
// colors. Points that never escape are painted black. Frames are fully
// recomputed on every call, and equal viewports give byte-identical frames.
//
// By default pixels are computed sequentially in row-major order. WithWorkers
// splits the frame into tiles rendered concurrently; the result is the same.
package render

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/canvas_mandel"
)

const defaultTileSize = 64

// Option configures a Renderer.
type Option func(*Renderer)

// WithAxis selects the horizontal axis mapping.
func WithAxis(a AxisMode) Option {
	return func(r *Renderer) { r.axis = a }
}

// WithWorkers renders tiles on up to n goroutines. n <= 1 renders sequentially.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithTileSize sets the tile dimensions used by the concurrent path.
// Non-positive values keep the default.
func WithTileSize(w, h int) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.tileW, r.tileH = w, h
		}
	}
}

// WithPalette sets the colors for escaped points (start at 0 iterations,
// end at the cap) and for points in the set.
func WithPalette(start, end, inSet uint32) Option {
	return func(r *Renderer) { r.start, r.end, r.inSet = start, end, inSet }
}

// WithOnTileRender registers a hook called after each finished tile.
// With workers > 1 it is called from several goroutines.
func WithOnTileRender(fn func(tile image.Rectangle)) Option {
	return func(r *Renderer) { r.onTile = fn }
}

// WithLogger logs frame timings at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// Renderer draws frames of a fixed size.
type Renderer struct {
	width, height int
	axis          AxisMode
	workers       int
	tileW, tileH  int

	start, end, inSet uint32

	onTile func(image.Rectangle)
	logger *log.Logger
}

// New creates a renderer for width x height frames.
func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		width:   width,
		height:  height,
		axis:    AxisAspect,
		workers: 1,
		tileW:   defaultTileSize,
		tileH:   defaultTileSize,
		start:   Cyan,
		end:     Magenta,
		inSet:   Black,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bounds returns the frame rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Render returns a new frame for v.
func (r *Renderer) Render(v mandel.Viewport) *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	r.RenderInto(img, v)
	return img
}

// RenderInto overwrites the part of dst that overlaps the frame.
func (r *Renderer) RenderInto(dst *image.RGBA, v mandel.Viewport) {
	start := time.Now()
	frame := r.Bounds().Intersect(dst.Bounds())

	if r.workers <= 1 {
		r.RenderTile(v, frame, dst)
	} else {
		r.renderTiles(v, frame, dst)
	}

	if r.logger != nil {
		r.logger.Debug("frame rendered",
			"center", [2]float64{v.CenterX, v.CenterY},
			"span", v.Span,
			"maxIter", v.MaxIteration,
			"workers", r.workers,
			"took", time.Since(start).Round(time.Microsecond))
	}
}

// renderTiles renders frame tile by tile on a bounded group of goroutines.
// Tiles are disjoint, so workers never write the same bytes of dst.
func (r *Renderer) renderTiles(v mandel.Viewport, frame image.Rectangle, dst *image.RGBA) {
	var g errgroup.Group
	g.SetLimit(r.workers)

	for _, tile := range splitRect(frame, r.tileW, r.tileH) {
		g.Go(func() error {
			r.RenderTile(v, tile, dst)
			return nil
		})
	}
	_ = g.Wait()
}

// RenderTile renders the pixels of tile, in frame coordinates, into dst.
func (r *Renderer) RenderTile(v mandel.Viewport, tile image.Rectangle, dst *image.RGBA) {
	tile = tile.Intersect(dst.Bounds())

	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		my := PlaneY(float64(y), v, r.height)

		for x := tile.Min.X; x < tile.Max.X; x++ {
			mx := PlaneX(float64(x), v, r.width, r.height, r.axis)

			c := Unpack(r.shade(Escape(mx, my, v.MaxIteration), v))

			p := dst.PixOffset(x, y)
			dst.Pix[p], dst.Pix[p+1], dst.Pix[p+2], dst.Pix[p+3] = c.R, c.G, c.B, c.A
		}
	}

	if r.onTile != nil {
		r.onTile(tile)
	}
}

// shade colors an escape count; counts at or above the cap are in the set.
func (r *Renderer) shade(i int, v mandel.Viewport) uint32 {
	if i >= v.MaxIteration {
		return r.inSet
	}
	scale := float64(v.MaxIteration)
	if v.ColorScale > 0 {
		scale = v.ColorScale
	}
	return InterpolateColor(r.start, r.end, MapRange(float64(i), 0, scale, 0, 1))
}

var (
	_ mandel.FrameProvider = (*Renderer)(nil)
	_ mandel.TileRenderer  = (*Renderer)(nil)
)
