package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ha1tch/parcoords/pkg/parcoords"
)

// ParseCSV reads a table whose header row names the dimensions. A column
// whose every non-empty cell parses as a number becomes a linear axis;
// any other column becomes a categorical axis over its distinct values.
// Empty numeric cells are kept as nil.
func ParseCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("read csv: missing header row")
	}

	header := rows[0]
	rows = rows[1:]
	ds := &Dataset{
		Data:    parcoords.Data{},
		Options: parcoords.DefaultOptions(),
	}
	for col, name := range header {
		key := strings.TrimSpace(name)
		if key == "" {
			key = fmt.Sprintf("column%d", col+1)
		}
		if _, dup := ds.Data[key]; dup {
			return nil, fmt.Errorf("read csv: duplicate column %q", key)
		}

		values, numeric := column(rows, col)
		dim := parcoords.Dimension{Key: key, Label: key}
		if !numeric {
			dim.Axis.Type = parcoords.AxisCategorical
		}
		ds.Dimensions = append(ds.Dimensions, dim)
		ds.Data[key] = values
	}
	return ds, nil
}

// column extracts one column, as numbers when every non-empty cell is one.
func column(rows [][]string, col int) ([]any, bool) {
	cells := make([]string, len(rows))
	numeric := true
	for i, row := range rows {
		if col < len(row) {
			cells[i] = strings.TrimSpace(row[col])
		}
		if cells[i] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cells[i], 64); err != nil {
			numeric = false
		}
	}

	values := make([]any, len(cells))
	for i, c := range cells {
		switch {
		case !numeric:
			values[i] = c
		case c == "":
			values[i] = nil
		default:
			values[i], _ = strconv.ParseFloat(c, 64)
		}
	}
	return values, numeric
}
