// Package cli implements the mandelview command-line interface.
//
// # Commands
//
//   - serve: run the browser viewer
//   - render: write one frame as a PNG file
//   - presets: list the named viewports
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// to commands through the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/marben/canvas_mandel/internal/buildinfo"
)

const appName = "mandelview"

// Log levels for New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// verbose is set by -v or SetLogLevel and keeps a config file from
	// lowering the level again.
	verbose bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		verbose: level == log.DebugLevel,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level == log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	version, _ := buildinfo.Info()

	root := &cobra.Command{
		Use:          appName,
		Short:        "Interactive Mandelbrot set viewer",
		Long:         `mandelview renders the Mandelbrot set with escape-time colouring. It serves a zoomable viewer to the browser and renders single frames to PNG.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging; overrides log_level")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.presetsCommand())

	return root
}

// applyConfigLevel sets the level named in a config file unless -v asked
// for debug output.
func (c *CLI) applyConfigLevel(name string) error {
	if c.verbose || name == "" {
		return nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	c.Logger.SetLevel(level)
	return nil
}
