package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mandel "github.com/marben/canvas_mandel"
)

func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named viewports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printPresets(cmd.OutOrStdout(), mandel.Presets)
			return nil
		},
	}
}

func printPresets(w io.Writer, presets []mandel.Preset) {
	nameWidth := 0
	for _, p := range presets {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name))
	}
	name := StyleName.Width(nameWidth + 2)

	fmt.Fprintln(w, StyleTitle.Render("Presets"))
	for _, p := range presets {
		v := p.Viewport
		fmt.Fprintln(w, "  "+name.Render(p.Name)+StyleDim.Render(p.Description))
		fmt.Fprintln(w, "  "+name.Render("")+
			StyleNumber.Render(fmt.Sprintf("%g%+gi", v.CenterX, v.CenterY))+
			StyleDim.Render(" span ")+StyleNumber.Render(fmt.Sprintf("%g", v.Span))+
			StyleDim.Render(" iter ")+StyleNumber.Render(fmt.Sprint(v.MaxIteration)))
	}
}
