package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is the file format of an export
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
)

// ParseFormat accepts the format names used on the admin API. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Exporter renders a table in one file format
type Exporter interface {
	Export(t *Table, w io.Writer) error
	ContentType() string
	Extension() string
}

// Table is the data to be exported
type Table struct {
	Title       string
	Description string
	CreatedAt   time.Time

	Headers []string
	Rows    [][]interface{}

	Style Style
}

// Style defines styling options for exports
type Style struct {
	// PDF specific
	Landscape bool
	PageSize  string

	HeaderBgColor string // hex
	AlternateRows bool
	RowBgColor1   string // hex, odd rows
	RowBgColor2   string // hex, even rows
	FontSize      float64

	// Excel specific
	FreezeHeader bool
	AutoFilter   bool
	ColumnWidths map[int]float64
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		PageSize:      "A4",
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		FontSize:      9,
		FreezeHeader:  true,
		AutoFilter:    true,
		ColumnWidths:  make(map[int]float64),
	}
}

// File is a rendered export ready to be sent to a client
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
