package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/render"
)

// handleFrame renders one PNG frame. The viewport starts from the preset
// named by ?preset= (default: the start view) and is adjusted by cx, cy,
// span and iter.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	v, err := viewportFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := writePNG(w, s.renderer, v); err != nil {
		s.logger.Error("frame", "err", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
	}
}

// writePNG renders v with frames and writes it as a complete PNG response.
// Nothing is written to w when encoding fails.
func writePNG(w http.ResponseWriter, frames mandel.FrameProvider, v mandel.Viewport) error {
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, frames.Render(v)); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
	return nil
}

// maxFrameIterations bounds the work a single request can ask for.
const maxFrameIterations = 10000

func viewportFromQuery(q url.Values) (mandel.Viewport, error) {
	v := mandel.DefaultViewport
	if name := q.Get("preset"); name != "" {
		p, ok := mandel.LookupPreset(name)
		if !ok {
			return v, fmt.Errorf("%w: %q", errUnknownPreset, name)
		}
		v = p.Viewport
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"cx", &v.CenterX},
		{"cy", &v.CenterY},
		{"span", &v.Span},
	}
	for _, f := range floats {
		s := q.Get(f.key)
		if s == "" {
			continue
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, fmt.Errorf("bad %s %q", f.key, s)
		}
		*f.dst = x
	}

	if s := q.Get("iter"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return v, fmt.Errorf("bad iter %q", s)
		}
		if n > maxFrameIterations {
			return v, fmt.Errorf("iter %d above limit %d", n, maxFrameIterations)
		}
		v.MaxIteration = n
	}
	return v, nil
}
