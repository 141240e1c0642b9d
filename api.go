package mandel

import (
	"image"
)

// FrameProvider produces complete frames for a viewport.
type FrameProvider interface {
	Render(v Viewport) *image.RGBA
}

// TileRenderer renders a single rectangle of a frame into dst.
// dst must cover tile; pixels outside tile are left untouched.
type TileRenderer interface {
	RenderTile(v Viewport, tile image.Rectangle, dst *image.RGBA)
}
