package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mandel "github.com/marben/canvas_mandel"
	"github.com/marben/canvas_mandel/internal/config"
	"github.com/marben/canvas_mandel/render"
	"github.com/marben/canvas_mandel/view"
)

const defaultOutput = "mandel.png"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config    string   // TOML config file
	output    string   // PNG path, "-" for stdout
	preset    string   // starting preset
	cx, cy    float64  // center override
	span      float64  // span override
	iter      int      // iteration cap override
	precision float64  // precision control value, 0..100
	clicks    []string // pointer presses replayed before rendering
	width     int      // raster width
	height    int      // raster height
	workers   int      // tile workers
	legacy    bool     // legacy canvas mapping, precision and shading
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Long: `Render computes a single frame and writes it as PNG.

The viewport starts at the configured view or at --preset, and --cx, --cy,
--span and --iter override single fields. --click replays pointer presses
in raster coordinates, as if the frame had been clicked in the viewer:

  mandelview render --preset seahorse --click 400,300 --click 120,80,right`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, `output file, "-" for stdout`)
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "start from a named preset (see 'presets')")
	cmd.Flags().Float64Var(&opts.cx, "cx", 0, "center real part")
	cmd.Flags().Float64Var(&opts.cy, "cy", 0, "center imaginary part")
	cmd.Flags().Float64Var(&opts.span, "span", 0, "vertical extent of the view")
	cmd.Flags().IntVar(&opts.iter, "iter", 0, "iteration cap")
	cmd.Flags().Float64Var(&opts.precision, "precision", 0, "precision control value 0..100, sets the iteration cap")
	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "pointer press x,y[,left|middle|right]; repeatable")
	cmd.Flags().IntVar(&opts.width, "width", mandel.DefaultWidth, "raster width")
	cmd.Flags().IntVar(&opts.height, "height", mandel.DefaultHeight, "raster height")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "tile workers")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "render like the legacy canvas viewer: height-based x mapping, 250 cap on later precision changes, fractional caps")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("legacy") {
		cfg.Legacy = opts.legacy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := c.applyConfigLevel(cfg.LogLevel); err != nil {
		return err
	}

	home, err := opts.viewport(cmd, cfg.Viewport())
	if err != nil {
		return err
	}
	events, err := opts.events(cmd)
	if err != nil {
		return err
	}

	ctrl := view.NewController(cfg.Width, cfg.Height,
		view.WithHome(home),
		view.WithPrecisionRange(cfg.Precision()))
	for _, ev := range events {
		if _, err := ctrl.Apply(ev); err != nil {
			return err
		}
	}

	return renderFrame(cmd.Context(), cmd.OutOrStdout(), opts.output, cfg, ctrl.Viewport())
}

// viewport resolves the starting viewport from the preset and field flags.
func (o *renderOpts) viewport(cmd *cobra.Command, v mandel.Viewport) (mandel.Viewport, error) {
	if o.preset != "" {
		p, ok := mandel.LookupPreset(o.preset)
		if !ok {
			return v, fmt.Errorf("unknown preset %q", o.preset)
		}
		v = p.Viewport
	}
	flags := cmd.Flags()
	if flags.Changed("cx") {
		v.CenterX = o.cx
	}
	if flags.Changed("cy") {
		v.CenterY = o.cy
	}
	if flags.Changed("span") {
		v.Span = o.span
	}
	if flags.Changed("iter") {
		v.MaxIteration = o.iter
	}
	return v, nil
}

// events returns the precision change and the clicks to replay, in order.
func (o *renderOpts) events(cmd *cobra.Command) ([]view.Event, error) {
	var events []view.Event
	if cmd.Flags().Changed("precision") {
		events = append(events, view.PrecisionChange{Value: o.precision, Initial: true})
	}
	for _, s := range o.clicks {
		ev, err := parseClick(s)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

var buttonNames = map[string]view.Button{
	"left":   view.ButtonPrimary,
	"middle": view.ButtonAuxiliary,
	"right":  view.ButtonSecondary,
}

// parseClick parses "x,y" or "x,y,button".
func parseClick(s string) (view.PointerDown, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return view.PointerDown{}, fmt.Errorf("bad click %q: want x,y[,button]", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err := errors.Join(errX, errY); err != nil {
		return view.PointerDown{}, fmt.Errorf("bad click %q: %w", s, err)
	}
	ev := view.PointerDown{X: x, Y: y, Button: view.ButtonPrimary}
	if len(parts) == 3 {
		b, ok := buttonNames[strings.TrimSpace(parts[2])]
		if !ok {
			return view.PointerDown{}, fmt.Errorf("bad click %q: button must be left, middle or right", s)
		}
		ev.Button = b
	}
	return ev, nil
}

// renderOptions adds logging to the configured renderer options. Tiled
// renders report their progress tile by tile.
func renderOptions(cfg config.Config, logger *log.Logger) []render.Option {
	opts := append(cfg.RenderOptions(), render.WithLogger(logger))
	if cfg.Workers > 1 {
		frame := image.Rect(0, 0, cfg.Width, cfg.Height)
		opts = append(opts, render.WithOnTileRender(tileProgress(logger, frame)))
	}
	return opts
}

// renderFrame renders v and writes the PNG to path, or to stdout for "-".
func renderFrame(ctx context.Context, stdout io.Writer, path string, cfg config.Config, v mandel.Viewport) error {
	logger := loggerFromContext(ctx)
	if v.Degenerate() {
		logger.Warn("Degenerate viewport, the frame will be flat", "span", v.Span, "iter", v.MaxIteration)
	}

	prog := newProgress(logger)
	r := render.New(cfg.Width, cfg.Height, renderOptions(cfg, logger)...)
	img := r.Render(v)
	prog.done(fmt.Sprintf("Rendered %dx%d", cfg.Width, cfg.Height))

	if path == "-" {
		return render.EncodePNG(stdout, img)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess(stdout, "Rendered frame")
	printKeyValue(stdout, "center", fmt.Sprintf("%g%+gi", v.CenterX, v.CenterY))
	printKeyValue(stdout, "span", strconv.FormatFloat(v.Span, 'g', -1, 64))
	printKeyValue(stdout, "iterations", strconv.Itoa(v.MaxIteration))
	printFile(stdout, path)
	return nil
}
