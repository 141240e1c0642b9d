//go:build js && wasm

// webclient is the viewer compiled to WebAssembly. It renders every frame
// in the browser with the same renderer and controller the server uses, so
// it works without a websocket connection.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o web/webclient.wasm ./cmd/webclient
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
//	mandelview serve --wasm-dir web
//
// and open /local.html. Add ?legacy to the page URL for the legacy
// mapping and precision quirks.
package main

import (
	"image"
	"time"

	"github.com/marben/canvas_mandel/render"
	"github.com/marben/canvas_mandel/view"
)

func main() {
	logScreenf("Starting WASM viewer...")

	canvas := element("cvs")
	width, height := canvas.Get("width").Int(), canvas.Get("height").Int()

	axis, precision := render.AxisAspect, view.DefaultPrecision
	if legacyRequested() {
		axis, precision = render.AxisHeight, view.LegacyPrecision
	}
	logScreenf("Canvas %dx%d, axis %s", width, height, axis)

	renderer := render.New(width, height, render.WithAxis(axis))
	ctrl := view.NewController(width, height, view.WithPrecisionRange(precision))
	d := newDisplay(canvas, width, height)
	d.clear("#3a3a6e")

	events := make(chan view.Event, eventQueue)
	bindEvents(canvas, events)
	fillPresets()

	// The slider position on load picks the first iteration cap.
	events <- view.PrecisionChange{Value: element("precision").Get("valueAsNumber").Float(), Initial: true}

	frame := image.NewRGBA(renderer.Bounds())
	for ev := range events {
		v, err := ctrl.Apply(ev)
		if err != nil {
			logScreenf("rejected: %v", err)
			continue
		}
		if v.Degenerate() {
			logScreenf("degenerate view: span %g, iterations %d", v.Span, v.MaxIteration)
		}

		start := time.Now()
		renderer.RenderInto(frame, v)
		took := time.Since(start)
		d.show(frame)
		hudSetView(v, took)
	}
}
