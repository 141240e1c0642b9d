// Package config loads viewer settings from a TOML file.
//
// Every field has a default, so an empty or missing file yields a working
// configuration. Command-line flags override file values after loading.
//
// Example file:
//
//	listen = ":8080"
//	width = 800
//	height = 600
//	workers = 4
//	legacy = false
//	origins = ["localhost:*"]
//	wasm_dir = "web"
//	start_color = "#00ffff"
//	end_color = "#ff00ff"
//	in_set_color = "#000000"
//
//	[view]
//	center_x = -1.0
//	center_y = 0.0
//	span = 4.0
//	max_iteration = 20
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/render"
	"github.com/marben/canvas_mandel/view"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	// Listen is the HTTP listen address of the web viewer.
	Listen string `toml:"listen"`

	// Width and Height are the raster size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Workers is the number of goroutines rendering tiles; 1 renders sequentially.
	Workers int `toml:"workers"`

	// TileSize is the edge length of tiles when Workers > 1.
	TileSize int `toml:"tile_size"`

	// Legacy renders like the legacy canvas viewer: x is mapped over the
	// raster height, the precision control tops out at 250 after it is
	// first moved, and fractional iteration caps are kept for shading.
	Legacy bool `toml:"legacy"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Origins lists extra host patterns allowed to open websockets.
	Origins []string `toml:"origins"`

	// WasmDir is served at /wasm/ for the WebAssembly viewer.
	WasmDir string `toml:"wasm_dir"`

	// Palette, as hex colors. Escaped points blend from StartColor at zero
	// iterations towards EndColor at the cap; points in the set use InSetColor.
	StartColor string `toml:"start_color"`
	EndColor   string `toml:"end_color"`
	InSetColor string `toml:"in_set_color"`

	// View is the starting viewport.
	View View `toml:"view"`
}

// View is the TOML form of mandel.Viewport.
type View struct {
	CenterX      float64 `toml:"center_x"`
	CenterY      float64 `toml:"center_y"`
	Span         float64 `toml:"span"`
	MaxIteration int     `toml:"max_iteration"`
}

// Default returns the built-in configuration.
func Default() Config {
	v := mandel.DefaultViewport
	return Config{
		Listen:   ":8080",
		Width:    mandel.DefaultWidth,
		Height:   mandel.DefaultHeight,
		Workers:  1,
		TileSize: 64,
		LogLevel: "info",

		StartColor: "#00ffff",
		EndColor:   "#ff00ff",
		InSetColor: "#000000",

		View: View{
			CenterX:      v.CenterX,
			CenterY:      v.CenterY,
			Span:         v.Span,
			MaxIteration: v.MaxIteration,
		},
	}
}

// Load reads path on top of the defaults. An empty path returns Default().
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would make the viewer unusable.
// A degenerate starting view is allowed; it renders as a blank image.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: raster size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers = %d, need at least 1", ErrInvalid, c.Workers)
	case c.TileSize < 1:
		return fmt.Errorf("%w: tile_size = %d, need at least 1", ErrInvalid, c.TileSize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	for _, kv := range [][2]string{
		{"start_color", c.StartColor},
		{"end_color", c.EndColor},
		{"in_set_color", c.InSetColor},
	} {
		if _, err := parseColor(kv[1]); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalid, kv[0], kv[1], err)
		}
	}
	return nil
}

// parseColor converts "#rrggbb" or "#rgb" into a packed 0xRRGGBB value.
func parseColor(s string) (uint32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

// Palette returns the packed start, end and in-set colors.
// Colors that do not parse fall back to the default palette.
func (c Config) Palette() (start, end, inSet uint32) {
	pick := func(s string, fallback uint32) uint32 {
		if v, err := parseColor(s); err == nil {
			return v
		}
		return fallback
	}
	return pick(c.StartColor, render.Cyan), pick(c.EndColor, render.Magenta), pick(c.InSetColor, render.Black)
}

// Viewport returns the starting viewport.
func (c Config) Viewport() mandel.Viewport {
	return mandel.Viewport{
		CenterX:      c.View.CenterX,
		CenterY:      c.View.CenterY,
		Span:         c.View.Span,
		MaxIteration: c.View.MaxIteration,
	}
}

// Axis returns the horizontal mapping implied by Legacy.
func (c Config) Axis() render.AxisMode {
	if c.Legacy {
		return render.AxisHeight
	}
	return render.AxisAspect
}

// Precision returns the precision control range implied by Legacy.
func (c Config) Precision() view.PrecisionRange {
	if c.Legacy {
		return view.LegacyPrecision
	}
	return view.DefaultPrecision
}

// RenderOptions returns the renderer options for this configuration.
func (c Config) RenderOptions() []render.Option {
	return []render.Option{
		render.WithAxis(c.Axis()),
		render.WithWorkers(c.Workers),
		render.WithTileSize(c.TileSize, c.TileSize),
		render.WithPalette(c.Palette()),
	}
}

// ControllerOptions returns the view controller options for this configuration.
func (c Config) ControllerOptions() []view.Option {
	return []view.Option{
		view.WithHome(c.Viewport()),
		view.WithPrecisionRange(c.Precision()),
	}
}
