package server

import (
	"encoding/json"
	"errors"
	"fmt"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/view"
)

// Messages sent by the page.
const (
	msgPointerDown = "pointerdown"
	msgPrecision   = "precision"
	msgReset       = "reset"
	msgPreset      = "preset"
)

// Messages sent by the server. Frames themselves are binary messages.
const (
	msgHello = "hello"
	msgView  = "view"
	msgError = "error"
)

var (
	errUnknownMessage = errors.New("unknown message type")
	errMissingField   = errors.New("missing field")
	errUnknownPreset  = errors.New("unknown preset")
)

// clientMessage is the union of all messages the page sends.
type clientMessage struct {
	Type   string   `json:"type"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Button int      `json:"button,omitempty"`
	Value  *float64 `json:"value,omitempty"`
	Name   string   `json:"name,omitempty"`
}

// decodeEvent parses one text message into a view event.
func decodeEvent(data []byte) (view.Event, error) {
	var m clientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	switch m.Type {
	case msgPointerDown:
		if m.X == nil || m.Y == nil {
			return nil, fmt.Errorf("%w: %s needs x and y", errMissingField, m.Type)
		}
		return view.PointerDown{X: *m.X, Y: *m.Y, Button: view.Button(m.Button)}, nil
	case msgPrecision:
		if m.Value == nil {
			return nil, fmt.Errorf("%w: %s needs value", errMissingField, m.Type)
		}
		return view.PrecisionChange{Value: *m.Value}, nil
	case msgReset:
		return view.Reset{}, nil
	case msgPreset:
		p, ok := mandel.LookupPreset(m.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownPreset, m.Name)
		}
		return view.Goto{Viewport: p.Viewport}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownMessage, m.Type)
}

type helloMessage struct {
	Type    string   `json:"type"`
	Session string   `json:"session"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Presets []string `json:"presets"`
}

type viewMessage struct {
	Type         string  `json:"type"`
	CenterX      float64 `json:"centerX"`
	CenterY      float64 `json:"centerY"`
	Span         float64 `json:"span"`
	MaxIteration int     `json:"maxIteration"`
	RenderMillis float64 `json:"renderMillis"`
}

func newViewMessage(v mandel.Viewport, millis float64) viewMessage {
	return viewMessage{
		Type:         msgView,
		CenterX:      v.CenterX,
		CenterY:      v.CenterY,
		Span:         v.Span,
		MaxIteration: v.MaxIteration,
		RenderMillis: millis,
	}
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
