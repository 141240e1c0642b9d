//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
	"time"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/view"
)

// eventQueue bounds the events waiting for a render. Further events are
// dropped while the queue is full.
const eventQueue = 32

func element(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

// logScreenf appends a formatted message to the log element.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	logElem := element("log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

func legacyRequested() bool {
	search := js.Global().Get("location").Get("search")
	return js.Global().Get("URLSearchParams").New(search).Call("has", "legacy").Bool()
}

// bindEvents forwards page input to events. Callbacks never block the
// browser: when the queue is full the event is logged and dropped.
func bindEvents(canvas js.Value, events chan<- view.Event) {
	push := func(ev view.Event) {
		select {
		case events <- ev:
		default:
			logScreenf("busy, dropped %T", ev)
		}
	}

	canvas.Call("addEventListener", "contextmenu", js.FuncOf(func(_ js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		return nil
	}))
	canvas.Call("addEventListener", "mousedown", js.FuncOf(func(_ js.Value, args []js.Value) any {
		e := args[0]
		push(view.PointerDown{
			X:      e.Get("offsetX").Float(),
			Y:      e.Get("offsetY").Float(),
			Button: view.Button(e.Get("button").Int()),
		})
		return nil
	}))

	slider := element("precision")
	slider.Call("addEventListener", "change", js.FuncOf(func(js.Value, []js.Value) any {
		push(view.PrecisionChange{Value: slider.Get("valueAsNumber").Float()})
		return nil
	}))

	element("reset").Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
		push(view.Reset{})
		return nil
	}))

	presets := element("preset")
	presets.Call("addEventListener", "change", js.FuncOf(func(js.Value, []js.Value) any {
		if p, ok := mandel.LookupPreset(presets.Get("value").String()); ok {
			push(view.Goto{Viewport: p.Viewport})
		}
		return nil
	}))
}

func fillPresets() {
	sel := element("preset")
	option := js.Global().Get("Option")
	for _, p := range mandel.Presets {
		sel.Call("add", option.New(p.Name, p.Name))
	}
}

func hudSetView(v mandel.Viewport, took time.Duration) {
	element("center").Set("textContent", fmt.Sprintf("%g, %g", v.CenterX, v.CenterY))
	element("span").Set("textContent", fmt.Sprintf("%g", v.Span))
	element("iterations").Set("textContent", v.MaxIteration)
	element("took").Set("textContent", fmt.Sprintf("%.1f", float64(took.Microseconds())/1000))
}
