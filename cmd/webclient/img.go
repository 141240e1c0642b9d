//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

// display copies frames onto a canvas. The pixel buffer and the ImageData
// wrapping it are allocated once and reused for every frame.
type display struct {
	ctx       js.Value
	pix       js.Value // Uint8ClampedArray
	imageData js.Value
	width     int
	height    int
}

func newDisplay(canvas js.Value, width, height int) *display {
	pix := js.Global().Get("Uint8ClampedArray").New(width * height * 4)
	return &display{
		ctx:       canvas.Call("getContext", "2d"),
		pix:       pix,
		imageData: js.Global().Get("ImageData").New(pix, width, height),
		width:     width,
		height:    height,
	}
}

// clear fills the canvas with color until the first frame arrives.
func (d *display) clear(color string) {
	d.ctx.Set("fillStyle", color)
	d.ctx.Call("fillRect", 0, 0, d.width, d.height)
}

// show draws img, which must match the canvas size.
func (d *display) show(img *image.RGBA) {
	js.CopyBytesToJS(d.pix, img.Pix)
	d.ctx.Call("putImageData", d.imageData, 0, 0)
}
