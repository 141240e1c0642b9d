package server

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/render"
	"github.com/marben/canvas_mandel/view"
)

// handleWebsocket upgrades the request and runs a viewer session on it.
// The optional query parameter precision is the control value on page load.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	var initial *view.PrecisionChange
	if q := r.URL.Query().Get("precision"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad precision %q", q), http.StatusBadRequest)
			return
		}
		initial = &view.PrecisionChange{Value: v, Initial: true}
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.OriginPatterns,
	})
	if err != nil {
		s.logger.Warn("websocket accept", "err", err)
		return
	}

	sess := &session{
		id:       uuid.New(),
		conn:     c,
		ctrl:     view.NewController(s.opts.Width, s.opts.Height, s.opts.Controller...),
		renderer: s.renderer,
		frame:    image.NewRGBA(s.renderer.Bounds()),
	}
	sess.logger = s.logger.With("session", sess.id.String()[:8])

	n := s.sessions.Add(1)
	sess.logger.Info("session opened", "remote", r.RemoteAddr, "sessions", n)
	defer func() {
		n := s.sessions.Add(-1)
		sess.logger.Info("session closed", "sessions", n)
	}()

	if err := sess.run(r.Context(), initial); err != nil {
		sess.logger.Warn("session ended", "err", err)
		c.Close(websocket.StatusInternalError, "session failed")
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

// session drives one connected page. Events are handled strictly in order:
// a frame is rendered and sent before the next message is read.
type session struct {
	id       uuid.UUID
	conn     *websocket.Conn
	ctrl     *view.Controller
	renderer *render.Renderer
	frame    *image.RGBA
	logger   *log.Logger
}

func (s *session) run(ctx context.Context, initial *view.PrecisionChange) error {
	w, h := s.ctrl.Size()
	presets := make([]string, len(mandel.Presets))
	for i, p := range mandel.Presets {
		presets[i] = p.Name
	}
	hello := helloMessage{Type: msgHello, Session: s.id.String(), Width: w, Height: h, Presets: presets}
	if err := wsjson.Write(ctx, s.conn, hello); err != nil {
		return s.closed(err)
	}

	if initial != nil {
		if err := s.apply(ctx, *initial); err != nil {
			return s.closed(err)
		}
	}
	if err := s.present(ctx); err != nil {
		return s.closed(err)
	}

	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return s.closed(err)
		}
		if typ != websocket.MessageText {
			if err := s.reject(ctx, errors.New("binary messages are not accepted")); err != nil {
				return s.closed(err)
			}
			continue
		}

		ev, err := decodeEvent(data)
		if err != nil {
			if err := s.reject(ctx, err); err != nil {
				return s.closed(err)
			}
			continue
		}
		if err := s.apply(ctx, ev); err != nil {
			return s.closed(err)
		}
		if err := s.present(ctx); err != nil {
			return s.closed(err)
		}
	}
}

// apply feeds ev to the controller. A rejected event is reported to the page
// and is not an error of the session.
func (s *session) apply(ctx context.Context, ev view.Event) error {
	v, err := s.ctrl.Apply(ev)
	if err != nil {
		return s.reject(ctx, err)
	}
	s.logger.Debug("event", "event", fmt.Sprintf("%T", ev), "span", v.Span, "maxIter", v.MaxIteration)
	return nil
}

// present renders the current viewport and sends the frame followed by a
// description of the view.
func (s *session) present(ctx context.Context) error {
	v := s.ctrl.Viewport()
	if v.Degenerate() {
		s.logger.Warn("degenerate viewport", "span", v.Span, "maxIter", v.MaxIteration)
	}

	start := time.Now()
	s.renderer.RenderInto(s.frame, v)
	took := time.Since(start)

	if err := s.conn.Write(ctx, websocket.MessageBinary, s.frame.Pix); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	msg := newViewMessage(v, float64(took.Microseconds())/1000)
	if err := wsjson.Write(ctx, s.conn, msg); err != nil {
		return fmt.Errorf("write view: %w", err)
	}
	return nil
}

func (s *session) reject(ctx context.Context, cause error) error {
	s.logger.Debug("rejected message", "err", cause)
	if err := wsjson.Write(ctx, s.conn, errorMessage{Type: msgError, Message: cause.Error()}); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// closed maps the end of a connection to nil when the page went away normally.
func (s *session) closed(err error) error {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
