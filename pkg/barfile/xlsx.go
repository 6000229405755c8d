package barfile

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// secondaryPrefix marks a header cell whose column is a secondary series.
const secondaryPrefix = "2nd:"

// XLSXOptions controls spreadsheet import.
type XLSXOptions struct {
	Sheet  string // default: first sheet
	Logger *slog.Logger
}

// ParseXLSX reads a chart from a spreadsheet. The first row holds series
// titles from column B on, A1 the chart title (default: the sheet name).
// Column A holds category labels. Empty or non-numeric cells are missing
// values.
func ParseXLSX(path string, opts XLSXOptions) (*chart.Chart, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ParseError{Path: path, Format: "xlsx", Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Path: path, Format: "xlsx", Err: err}
	}
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, &ParseError{Path: path, Format: "xlsx", Err: chart.ErrNoSeries}
	}

	header := rows[0]
	title := strings.TrimSpace(header[0])
	if title == "" {
		title = sheet
	}
	c := chart.New(chart.Config{Title: title})
	for _, title := range header[1:] {
		s := chart.Series{Title: strings.TrimSpace(title)}
		if strings.HasPrefix(s.Title, secondaryPrefix) {
			s.Secondary = true
			s.Title = strings.TrimSpace(strings.TrimPrefix(s.Title, secondaryPrefix))
		}
		c.Series = append(c.Series, s)
	}

	for r, row := range rows[1:] {
		label := ""
		if len(row) > 0 {
			label = row[0]
		}
		c.XLabels = append(c.XLabels, label)
		for k := range c.Series {
			d := chart.Missing()
			if k+1 < len(row) {
				cell := strings.TrimSpace(row[k+1])
				if cell != "" {
					v, err := strconv.ParseFloat(cell, 64)
					if err != nil {
						name, _ := excelize.CoordinatesToCellName(k+2, r+2)
						log.Warn("non-numeric cell treated as missing", "sheet", sheet, "cell", name, "value", cell)
					} else {
						d = chart.V(v)
					}
				}
			}
			c.Series[k].Values = append(c.Series[k].Values, d)
		}
	}
	c.Reindex()
	return c, nil
}

// WriteXLSX writes the series of a chart to a spreadsheet in the layout
// ParseXLSX reads.
func WriteXLSX(c *chart.Chart, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	set := func(col, row int, v interface{}) error {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, name, v)
	}

	if err := set(1, 1, c.Title); err != nil {
		return err
	}
	for k, s := range c.Series {
		title := s.Title
		if s.Secondary {
			title = secondaryPrefix + " " + title
		}
		if err := set(k+2, 1, title); err != nil {
			return err
		}
	}
	for i := 0; i < c.Len(); i++ {
		if err := set(1, i+2, c.XLabel(i)); err != nil {
			return err
		}
		for k, s := range c.Series {
			if i >= len(s.Values) {
				continue
			}
			if v, ok := s.Values[i].Value.Get(); ok {
				if err := set(k+2, i+2, v); err != nil {
					return err
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
