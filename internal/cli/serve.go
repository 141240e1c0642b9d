package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marben/canvas_mandel/internal/config"
	"github.com/marben/canvas_mandel/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
// Flags that are set override the config file.
type serveOpts struct {
	config   string   // TOML config file
	listen   string   // listen address
	workers  int      // tile workers per frame
	tileSize int      // tile edge in pixels
	legacy   bool     // legacy canvas mapping, precision and shading
	origins  []string // extra websocket origins
	wasmDir  string   // directory served at /wasm/
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the viewer to the browser",
		Long: `Serve starts an HTTP server with the viewer page at / .
Click to zoom in, right click to zoom out, and move the precision slider
to change the iteration cap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.config)
			if err != nil {
				return err
			}
			opts.override(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := c.applyConfigLevel(cfg.LogLevel); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&opts.listen, "listen", "l", "", "listen address (default :8080)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "tile workers per frame")
	cmd.Flags().IntVar(&opts.tileSize, "tile-size", 64, "tile edge in pixels")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "render like the legacy canvas viewer: height-based x mapping, 250 cap on later precision changes, fractional caps")
	cmd.Flags().StringSliceVar(&opts.origins, "origin", nil, "extra host patterns allowed to open websockets")
	cmd.Flags().StringVar(&opts.wasmDir, "wasm-dir", "", "directory with webclient.wasm and wasm_exec.js, served at /wasm/")

	return cmd
}

// override copies the flags the user set onto cfg.
func (o *serveOpts) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Listen = o.listen
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("tile-size") {
		cfg.TileSize = o.tileSize
	}
	if flags.Changed("legacy") {
		cfg.Legacy = o.legacy
	}
	if flags.Changed("origin") {
		cfg.Origins = o.origins
	}
	if flags.Changed("wasm-dir") {
		cfg.WasmDir = o.wasmDir
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)
	logger.Info("Starting viewer",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"workers", cfg.Workers,
		"axis", cfg.Axis())

	srv := server.New(server.Options{
		Addr:           cfg.Listen,
		Width:          cfg.Width,
		Height:         cfg.Height,
		Render:         renderOptions(cfg, logger),
		Controller:     cfg.ControllerOptions(),
		OriginPatterns: cfg.Origins,
		WasmDir:        cfg.WasmDir,
	}, logger)
	return srv.ListenAndServe(ctx)
}
