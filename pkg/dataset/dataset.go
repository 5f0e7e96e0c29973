// Package dataset reads and writes chart input files.
//
// A JSON file carries the dimensions, the values of each dimension by key,
// optional chart options and optional initial filters:
//
//	{
//	  "dimensions": [{"key": "mpg", "label": "MPG"}],
//	  "data": {"mpg": [18, 15, 36]},
//	  "options": {"style": {"padding": 24}},
//	  "filters": {"mpg": [{"p0": 0.2, "p1": 0.6}]}
//	}
//
// Options are decoded over parcoords.DefaultOptions, so a file only names
// what it changes. CSV files are also accepted; see ParseCSV.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/parcoords"
)

// Dataset is the content of one input file.
type Dataset struct {
	Dimensions []parcoords.Dimension `json:"dimensions"`
	Data       parcoords.Data        `json:"data"`
	Options    parcoords.Options     `json:"options"`
	Filters    filter.Set            `json:"filters,omitempty"`
}

type file struct {
	Dimensions []parcoords.Dimension `json:"dimensions"`
	Data       parcoords.Data        `json:"data"`
	Options    json.RawMessage       `json:"options"`
	Filters    filter.Set            `json:"filters"`
}

// Parse decodes a JSON dataset. Dimensions missing from the file are
// derived from the data keys in sorted order; empty labels default to
// the key.
func Parse(r io.Reader) (*Dataset, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds := &Dataset{
		Dimensions: f.Dimensions,
		Data:       f.Data,
		Options:    parcoords.DefaultOptions(),
		Filters:    f.Filters,
	}
	if len(f.Options) > 0 && string(f.Options) != "null" {
		od := json.NewDecoder(bytes.NewReader(f.Options))
		od.DisallowUnknownFields()
		if err := od.Decode(&ds.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(ds.Dimensions) == 0 {
		keys := make([]string, 0, len(ds.Data))
		for k := range ds.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			ds.Dimensions = append(ds.Dimensions, parcoords.Dimension{Key: k})
		}
	}
	ds.fillLabels()
	return ds, nil
}

func (ds *Dataset) fillLabels() {
	for i := range ds.Dimensions {
		if ds.Dimensions[i].Label == "" {
			ds.Dimensions[i].Label = ds.Dimensions[i].Key
		}
	}
}

// Load reads a dataset from path. Files ending in .csv are read with
// ParseCSV, anything else as JSON.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(f)
	}
	return Parse(f)
}

// Marshal encodes the dataset as indented JSON with the complete option
// tree.
func Marshal(ds *Dataset) ([]byte, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// Chart builds a chart from the dataset and applies its filters.
func (ds *Dataset) Chart(m layout.TextMeasurer, options ...parcoords.Option) (*parcoords.Chart, error) {
	c, err := parcoords.New(ds.Dimensions, ds.Data, ds.Options, m, options...)
	if err != nil {
		return nil, err
	}
	if len(ds.Filters) > 0 {
		c.SetFilters(ds.Filters)
	}
	return c, nil
}
