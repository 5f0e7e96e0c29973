// Command parcoords renders and explores parallel-coordinates charts.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/parcoords/pkg/dataset"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/parcoords"
)

// app is the state shared by every subcommand.
type app struct {
	cfg     cliConfig
	verbose bool
	log     *slog.Logger
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(&app{cfg: cfg}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "parcoords",
		Short: "Render and explore parallel-coordinates charts",
		Long: `parcoords draws multi-dimensional data as parallel coordinates.

Input is a JSON dataset (dimensions, data, options, filters) or a CSV
table. Defaults come from PARCOORDS_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(a.cfg.LogLevel)
			if err != nil {
				return err
			}
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = newLogger(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every gesture and layout change")

	root.AddCommand(newRenderCmd(a), newInfoCmd(a), newViewCmd(a))
	return root
}

// loadChart reads a dataset and builds its chart.
func (a *app) loadChart(path string, m layout.TextMeasurer, options ...parcoords.Option) (*parcoords.Chart, *dataset.Dataset, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, nil, err
	}
	options = append([]parcoords.Option{parcoords.WithLogger(a.log)}, options...)
	c, err := ds.Chart(m, options...)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug("loaded dataset", "path", path, "dimensions", len(ds.Dimensions), "records", c.Records())
	return c, ds, nil
}
