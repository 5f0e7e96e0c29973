package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/parcoords"
)

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFor picks a format from a file extension, defaulting to PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// Options configure a rendered file.
type Options struct {
	Format      Format
	Supersample int
	Debug       bool
}

// keepCanvas ignores Clear so a frame can be drawn over a debug outline.
type keepCanvas struct{ parcoords.Canvas }

func (keepCanvas) Clear(geom.Size) {}

// Frame draws one frame of c, optionally over its layout outline.
func Frame(cv parcoords.Canvas, c *parcoords.Chart, debug bool) {
	if !debug {
		c.Draw(cv)
		return
	}
	cv.Clear(c.Size())
	c.DrawDebug(cv)
	c.Draw(keepCanvas{cv})
}

// Write draws c and writes it to w in the requested format.
func Write(w io.Writer, c *parcoords.Chart, fonts *Fonts, opts Options) error {
	switch opts.Format {
	case FormatSVG:
		cv := NewSVG()
		Frame(cv, c, opts.Debug)
		if _, err := cv.WriteTo(w); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	case FormatPNG, "":
		cv := NewRaster(fonts, opts.Supersample)
		Frame(cv, c, opts.Debug)
		if err := cv.Encode(w); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
	return nil
}
