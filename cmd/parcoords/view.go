package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/render"
)

const doubleClickMillis = 400

var (
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
)

// viewer runs the interactive terminal chart.
type viewer struct {
	screen tcell.Screen
	chart  *parcoords.Chart
	canvas *termCanvas
	path   string
	debug  bool

	leftDown       bool
	lastClickTime  int64 // Unix milliseconds of the last release
	lastClickX     int
	lastClickY     int
	message        string
	snapshotPrefix string
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <dataset>",
		Short: "Explore a chart in the terminal",
		Long: `Opens the chart full screen. Drag a dimension name to reorder axes,
drag along an axis to create a filter, drag a filter to move it or its
ends to resize it, click a filter to remove it and double-click to
reset.

Keys: d toggles the layout outline, s saves a PNG snapshot, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(args[0])
		},
	}
}

func (a *app) runView(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v, err := a.newViewer(screen, path)
	if err != nil {
		return err
	}
	v.run()
	return nil
}

func (a *app) newViewer(screen tcell.Screen, path string) (*viewer, error) {
	v := &viewer{
		screen:         screen,
		path:           path,
		snapshotPrefix: "parcoords-snapshot",
		canvas: &termCanvas{
			screen: screen,
			cellW:  float64(a.cfg.CellWidth),
			cellH:  float64(a.cfg.CellHeight),
		},
	}
	m := layout.FixedMeasurer{Advance: v.canvas.cellW, Height: v.canvas.cellH}
	hooks := parcoords.Hooks{
		OnDimensionMove: func(d parcoords.Dimension, to, from int) {
			v.message = fmt.Sprintf("Moved %s to position %d", d.Label, to+1)
		},
		OnFilterChange: func(fs filter.Set) {
			v.message = fmt.Sprintf("%d filters", fs.Count())
		},
		OnReset: func() { v.message = "Reset" },
	}
	c, _, err := a.loadChart(path, m, parcoords.WithHooks(hooks))
	if err != nil {
		return nil, err
	}
	v.chart = c

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()
	v.resize()
	return v, nil
}

// resize fits the chart to the screen above the status and help rows.
func (v *viewer) resize() {
	w, h := v.screen.Size()
	rows := h - 2
	if rows < 1 {
		rows = 1
	}
	v.canvas.rows = rows
	v.chart.SetSize(float64(w)*v.canvas.cellW, float64(rows)*v.canvas.cellH)
}

func (v *viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		if v.handleEvent(v.screen.PollEvent()) {
			return
		}
	}
}

// handleEvent applies one event and reports whether the viewer should quit.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case nil:
		return true
	}
	return false
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'd':
			v.debug = !v.debug
		case 'r':
			v.chart.DoubleClick()
		case 's':
			v.snapshot()
		}
	}
	return false
}

// point maps a cell to the chart pixel at its centre.
func (v *viewer) point(x, y int) geom.Point {
	return geom.Point{
		X: (float64(x) + 0.5) * v.canvas.cellW,
		Y: (float64(y) + 0.5) * v.canvas.cellH,
	}
}

func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pt := v.point(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !v.leftDown:
		v.leftDown = true
		v.chart.MouseDown(pt)
	case pressed:
		v.chart.MouseMove(pt)
	case v.leftDown:
		v.leftDown = false
		v.chart.MouseUp(pt)

		now := time.Now().UnixMilli()
		if now-v.lastClickTime < doubleClickMillis && x == v.lastClickX && y == v.lastClickY {
			v.chart.DoubleClick()
			v.lastClickTime = 0 // no triple click
			return
		}
		v.lastClickTime, v.lastClickX, v.lastClickY = now, x, y
	default:
		v.chart.MouseMove(pt)
	}
}

// snapshot renders the current frame, hover and filters included, to a
// numbered PNG file.
func (v *viewer) snapshot() {
	fonts, err := render.NewFonts()
	if err != nil {
		v.message = err.Error()
		return
	}
	name := fmt.Sprintf("%s-%d.png", v.snapshotPrefix, time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		v.message = err.Error()
		return
	}
	defer f.Close()

	if err := render.Write(f, v.chart, fonts, render.Options{Format: render.FormatPNG, Supersample: 2, Debug: v.debug}); err != nil {
		v.message = err.Error()
		return
	}
	v.message = "Saved " + name
}

func (v *viewer) draw() {
	render.Frame(v.canvas, v.chart, v.debug)

	w, h := v.screen.Size()
	selected := 0
	for _, ok := range v.chart.Selected() {
		if ok {
			selected++
		}
	}
	st := v.chart.State()
	focus := "none"
	if st.Focus != nil {
		focus = fmt.Sprintf("%s #%d", st.Focus.Type, st.Focus.DimIndex+1)
	}
	status := fmt.Sprintf(" %s | %d/%d selected | focus %s | %s ",
		v.path, selected, v.chart.Records(), focus, v.chart.Cursor())
	v.drawRow(h-2, w, status, styleStatus)
	if v.message != "" {
		v.drawText(w-len(v.message)-1, h-2, v.message, styleMessage)
	}
	v.drawRow(h-1, w, " drag: filter/reorder  click: remove filter  double-click: reset  d: outline  s: snapshot  q: quit", styleHelp)
}

func (v *viewer) drawRow(y, w int, text string, st tcell.Style) {
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, st)
	}
	v.drawText(0, y, text, st)
}

func (v *viewer) drawText(x, y int, text string, st tcell.Style) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, st)
	}
}
