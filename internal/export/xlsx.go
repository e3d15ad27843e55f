package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX writes t as a single-sheet workbook with a styled header row.
func WriteXLSX(w io.Writer, t Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := sheetName(t.Title)
	if err = f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, h := range t.headers() {
		cell, cerr := excelize.CoordinatesToCellName(col+1, 1)
		if cerr != nil {
			return cerr
		}
		if err = f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err = f.SetCellStyle(sheet, cell, cell, header); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for col, c := range t.Columns {
			cell, cerr := excelize.CoordinatesToCellName(col+1, r+2)
			if cerr != nil {
				return cerr
			}
			if err = f.SetCellValue(sheet, cell, cellValue(row[c.Key])); err != nil {
				return err
			}
		}
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err = f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Data"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}
