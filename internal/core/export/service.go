package export

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Service picks the exporter for a format and names the resulting file
type Service struct {
	exporters map[Format]Exporter
}

func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(),
			FormatCSV:   NewCSVExporter(),
		},
	}
}

// Export renders t. name is slugged into the file name.
func (s *Service) Export(t *Table, format Format, name string) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(t, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &File{
		Name:        slug(name) + exporter.Extension(),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func slug(name string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "export"
	}
	return s
}
