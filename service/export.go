package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"proforma-tool/domain"
)

const (
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// Exporter turns a rendered result view into a downloadable document.
type Exporter interface {
	Export(view domain.ResultView, filename string) (domain.Document, error)
	DefaultFilename() string
}

// NewExporter returns the exporter for format, defaulting to HTML.
func NewExporter(format string) Exporter {
	if strings.EqualFold(format, FormatXLSX) {
		return NewXLSXExporter()
	}
	return NewHTMLExporter()
}

// ResultViewMarkdown renders the view as a Markdown table.
func ResultViewMarkdown(view domain.ResultView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", view.Title)
	b.WriteString("| Metric | Amount |\n")
	b.WriteString("| --- | ---: |\n")
	for _, row := range view.Rows {
		fmt.Fprintf(&b, "| **%s** | %s |\n", row.Label, row.Text)
	}
	return b.String()
}

type HTMLExporter struct {
	md goldmark.Markdown
}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

func (e *HTMLExporter) DefaultFilename() string {
	return DefaultExportFilename + ".html"
}

func (e *HTMLExporter) Export(view domain.ResultView, filename string) (domain.Document, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(ResultViewMarkdown(view)), &body); err != nil {
		return domain.Document{}, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", view.Title)
	page.WriteString("<style>body{margin:1in;font-family:sans-serif}td,th{padding:4px 12px}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return domain.Document{
		Filename:    filename,
		ContentType: "text/html; charset=utf-8",
		Data:        page.Bytes(),
	}, nil
}

type XLSXExporter struct {
	sheet string
}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{sheet: "Pro Forma"}
}

func (e *XLSXExporter) DefaultFilename() string {
	return DefaultExportFilename + ".xlsx"
}

func (e *XLSXExporter) Export(view domain.ResultView, filename string) (domain.Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return domain.Document{}, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return domain.Document{}, err
	}

	if err := f.SetCellValue(e.sheet, "A1", view.Title); err != nil {
		return domain.Document{}, err
	}
	if err := f.SetCellStyle(e.sheet, "A1", "A1", bold); err != nil {
		return domain.Document{}, err
	}

	for i, row := range view.Rows {
		r := i + 3
		if err := f.SetCellValue(e.sheet, fmt.Sprintf("A%d", r), row.Label); err != nil {
			return domain.Document{}, err
		}
		// text keeps NaN and Infinity readable; excel has no such numbers
		if err := f.SetCellValue(e.sheet, fmt.Sprintf("B%d", r), row.Text); err != nil {
			return domain.Document{}, err
		}
	}
	if err := f.SetColWidth(e.sheet, "A", "A", 30); err != nil {
		return domain.Document{}, err
	}
	if err := f.SetColWidth(e.sheet, "B", "B", 18); err != nil {
		return domain.Document{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.Document{}, fmt.Errorf("write workbook: %w", err)
	}

	return domain.Document{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
