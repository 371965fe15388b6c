package source

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/arloliu/tossframe/errs"
)

// ReadXLSX reads one sheet of an Excel workbook. The first row is the header.
// An empty sheet name selects the first sheet.
//
// Cells are read as displayed text and column types are detected by gota, as
// for CSV, unless opts fix them. Excel booleans (TRUE, FALSE) are lowered so
// gota reads them as bools. Rows shorter than the header are padded with empty
// cells.
func ReadXLSX(path, sheet string, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, errs.ErrEmptySource
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// excelize reports trailing blank rows as empty slices
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %q has no header", errs.ErrEmptySource, sheet)
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		row = row[:width]
		if i > 0 {
			for j, cell := range row {
				if cell == "TRUE" || cell == "FALSE" {
					row[j] = strings.ToLower(cell)
				}
			}
		}
		rows[i] = row
	}

	df := dataframe.LoadRecords(rows, opts...)
	if df.Err != nil {
		return df, fmt.Errorf("failed to load sheet %q: %w", sheet, df.Err)
	}

	return df, nil
}

// WriteXLSX writes df to a new workbook at path with the given sheet name
// ("Sheet1" when empty). Numeric and boolean columns are written as typed cells.
func WriteXLSX(path, sheet string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("data frame: %w", df.Err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	for c, name := range df.Names() {
		if err := setCell(f, sheet, c, 0, name); err != nil {
			return err
		}

		col := df.Col(name)
		for r := range col.Len() {
			elem := col.Elem(r)
			var v any
			switch {
			case elem.IsNA():
				v = ""
			case col.Type() == series.Int:
				v, _ = elem.Int()
			case col.Type() == series.Float:
				v = elem.Float()
			case col.Type() == series.Bool:
				v, _ = elem.Bool()
			default:
				v = elem.String()
			}
			if err := setCell(f, sheet, c, r+1, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}

	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
