package cli

import (
	"context"
	"image"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with short timestamps ("15:04:05.00").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to milliseconds,
// e.g. "Rendered 800x600 (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// tileProgress returns a tile hook that logs, at debug level, how much of
// a frame is finished. It is safe to call from several render workers.
// The count restarts after every full frame, so one hook can follow a
// renderer across frames; frames rendered at the same time share it.
func tileProgress(l *log.Logger, frame image.Rectangle) func(image.Rectangle) {
	total := int64(frame.Dx() * frame.Dy())
	var finished atomic.Int64
	return func(tile image.Rectangle) {
		n := finished.Add(int64(tile.Dx() * tile.Dy()))
		if total <= 0 {
			return
		}
		done := (n-1)%total + 1
		l.Debug("tile finished", "tile", tile, "finished", float64(done)/float64(total))
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
