package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/parcoords/pkg/render"
)

type renderFlags struct {
	output      string
	format      string
	width       int
	height      int
	supersample int
	debug       bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <dataset>",
		Short: "Render a chart to PNG or SVG",
		Example: `  parcoords render cars.json -o cars.png
  parcoords render cars.csv -o cars.svg --width 1400 --debug
  parcoords render cars.json --format svg > cars.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: png or svg (default: from the output extension)")
	cmd.Flags().IntVar(&f.width, "width", a.cfg.Width, "Chart width in pixels")
	cmd.Flags().IntVar(&f.height, "height", a.cfg.Height, "Chart height in pixels")
	cmd.Flags().IntVar(&f.supersample, "supersample", a.cfg.Supersample, "PNG supersampling factor")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Outline the layout beneath the chart")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, path string, f renderFlags) error {
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", f.width, f.height)
	}

	format := render.FormatFor(f.output)
	if f.format != "" {
		format = render.Format(strings.ToLower(f.format))
	}
	if format != render.FormatPNG && format != render.FormatSVG {
		return fmt.Errorf("invalid format: %s (must be png or svg)", f.format)
	}

	fonts, err := render.NewFonts()
	if err != nil {
		return err
	}
	c, _, err := a.loadChart(path, fonts)
	if err != nil {
		return err
	}
	c.SetSize(float64(f.width), float64(f.height))

	var w io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	opts := render.Options{Format: format, Supersample: f.supersample, Debug: f.debug}
	if err := render.Write(w, c, fonts, opts); err != nil {
		return err
	}
	if f.output != "" {
		a.log.Info("rendered", "output", f.output, "format", format, "width", f.width, "height", f.height)
	}
	return nil
}
