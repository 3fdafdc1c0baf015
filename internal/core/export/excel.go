package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct {
	sheetName string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Bookings"}
}

func (e *ExcelExporter) Export(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, e.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if t.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		if err := e.set(f, 1, row, t.Title, titleStyle); err != nil {
			return err
		}
		row++

		if t.Description != "" {
			if err := e.set(f, 1, row, t.Description, 0); err != nil {
				return err
			}
			row++
		}
		row++ // blank line
	}

	headerStyle, err := e.headerStyle(f, t.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	for i, header := range t.Headers {
		if err := e.set(f, i+1, row, header, headerStyle); err != nil {
			return err
		}
		if width, ok := t.Style.ColumnWidths[i]; ok {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(e.sheetName, col, col, width); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	row++

	oddStyle, err := e.rowStyle(f, t.Style, t.Style.RowBgColor1)
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}
	evenStyle := oddStyle
	if t.Style.AlternateRows {
		if evenStyle, err = e.rowStyle(f, t.Style, t.Style.RowBgColor2); err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	for i, values := range t.Rows {
		style := oddStyle
		if i%2 == 1 {
			style = evenStyle
		}
		for col, v := range values {
			if err := e.set(f, col+1, row, v, style); err != nil {
				return err
			}
		}
		row++
	}

	if t.Style.FreezeHeader {
		err := f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if t.Style.AutoFilter && len(t.Headers) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
		ref := fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(t.Rows))
		if err := f.AutoFilter(e.sheetName, ref, nil); err != nil {
			return fmt.Errorf("failed to add filter: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return ".xlsx"
}

// set writes one cell; style 0 keeps the default style.
func (e *ExcelExporter) set(f *excelize.File, col, row int, v interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(e.sheetName, cell, v); err != nil {
		return fmt.Errorf("failed to write %s: %w", cell, err)
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(e.sheetName, cell, cell, style)
}

func (e *ExcelExporter) headerStyle(f *excelize.File, style Style) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: style.FontSize, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.HeaderBgColor, "#")},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func (e *ExcelExporter) rowStyle(f *excelize.File, style Style, bg string) (int, error) {
	s := &excelize.Style{Font: &excelize.Font{Size: style.FontSize}}
	if bg != "" && !strings.EqualFold(bg, "#FFFFFF") {
		s.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(bg, "#")},
		}
	}
	return f.NewStyle(s)
}
