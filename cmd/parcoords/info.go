package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/render"
	"github.com/ha1tch/parcoords/pkg/scale"
)

func newInfoCmd(a *app) *cobra.Command {
	var width, height int
	var fixed bool
	cmd := &cobra.Command{
		Use:   "info <dataset>",
		Short: "Show scales, ticks, layout and selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m layout.TextMeasurer = layout.FixedMeasurer{Advance: 6, Height: 12}
			if !fixed {
				fonts, err := render.NewFonts()
				if err != nil {
					return err
				}
				m = fonts
			}
			c, _, err := a.loadChart(args[0], m)
			if err != nil {
				return err
			}
			c.SetSize(float64(width), float64(height))
			printInfo(cmd.OutOrStdout(), c)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", a.cfg.Width, "Chart width in pixels")
	cmd.Flags().IntVar(&height, "height", a.cfg.Height, "Chart height in pixels")
	cmd.Flags().BoolVar(&fixed, "fixed-metrics", false, "Measure text with fixed 6x12 cells instead of the embedded font")
	return cmd
}

func printInfo(w io.Writer, c *parcoords.Chart) {
	l := c.Layout()
	size := c.Size()
	fmt.Fprintf(w, "Size:       %gx%g (%s)\n", size.W, size.H, l.Direction)
	fmt.Fprintf(w, "Records:    %d\n", c.Records())
	fmt.Fprintf(w, "Axis:       length %.1f\n", l.AxisLength)
	fmt.Fprintln(w)

	filters := c.Filters()
	for i, d := range c.Dimensions() {
		sc := c.Scale(d.Key)
		origin := l.Dimensions[i].AxisOrigin()
		fmt.Fprintf(w, "%s (%s)\n", d.Label, d.Key)
		fmt.Fprintf(w, "  scale:    %s [%s, %s]\n", sc.Kind(), scale.ReadableTick(sc.Min()), scale.ReadableTick(sc.Max()))
		fmt.Fprintf(w, "  axis at:  (%.1f, %.1f)\n", origin.X, origin.Y)

		labels := make([]string, len(sc.TickLabels()))
		for j, t := range sc.TickLabels() {
			labels[j] = strings.TrimPrefix(t, scale.EdgeMarker)
		}
		fmt.Fprintf(w, "  ticks:    %s\n", strings.Join(labels, " "))
		for _, f := range filters[d.Key] {
			fmt.Fprintf(w, "  filter:   %.3f..%.3f\n", f.P0, f.P1)
		}
	}

	n := 0
	for _, ok := range c.Selected() {
		if ok {
			n++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Selected:   %d of %d\n", n, c.Records())
}
