package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

// Output formats.
const (
	FormatText = "text"
	FormatXLSX = "xlsx"
)

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	Format() string
	Extension() string
	ContentType() string
}

// RendererFor returns the renderer for a format name, defaulting to text.
func RendererFor(format string) Renderer {
	if strings.EqualFold(format, FormatXLSX) {
		return XLSXRenderer{}
	}
	return TextRenderer{}
}

// TextRenderer produces a plain-text report with aligned columns.
type TextRenderer struct{}

func (TextRenderer) Format() string      { return FormatText }
func (TextRenderer) Extension() string   { return ".txt" }
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Render(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(bw, doc.Title)
	fmt.Fprintln(bw, doc.Subtitle)
	fmt.Fprintln(bw, rule)

	for _, s := range doc.Sections {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, s.Title)
		fmt.Fprintln(bw, strings.Repeat("-", len([]rune(s.Title))))
		if s.Badge != "" {
			fmt.Fprintf(bw, "[ %s ]\n", s.Badge)
		}

		tw := tabwriter.NewWriter(bw, 0, 4, 2, ' ', 0)
		for _, p := range s.Pairs {
			fmt.Fprintf(tw, "%s:\t%s\n", p.Label, orNotSpecified(p.Value))
		}
		if len(s.Checks) > 0 {
			fmt.Fprintln(tw, "Check\tStatus\tResult")
			for _, c := range s.Checks {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Glyph, c.Result)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		for _, b := range s.Bullets {
			fmt.Fprintf(bw, "  • %s\n", b)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "%s | %s\n", doc.Footer, doc.Subtitle)
	return bw.Flush()
}

// XLSXRenderer writes the report as a single-sheet workbook.
type XLSXRenderer struct{}

func (XLSXRenderer) Format() string    { return FormatXLSX }
func (XLSXRenderer) Extension() string { return ".xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

const reportSheet = "Report"

func (XLSXRenderer) Render(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(reportSheet, cell, v)
	}
	heading := func(v string) {
		write(1, v)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellStyle(reportSheet, cell, cell, bold)
		row++
	}

	heading(doc.Title)
	write(1, doc.Subtitle)
	row += 2

	for _, s := range doc.Sections {
		heading(s.Title)
		if s.Badge != "" {
			write(1, s.Badge)
			row++
		}
		for _, p := range s.Pairs {
			write(1, p.Label)
			write(2, orNotSpecified(p.Value))
			row++
		}
		if len(s.Checks) > 0 {
			write(1, "Check")
			write(2, "Status")
			write(3, "Result")
			row++
			for _, c := range s.Checks {
				write(1, c.Name)
				write(2, c.Glyph)
				write(3, c.Result)
				row++
			}
		}
		for _, b := range s.Bullets {
			write(1, "•")
			write(2, b)
			row++
		}
		row++
	}
	write(1, doc.Footer)

	_ = f.SetColWidth(reportSheet, "A", "A", 26)
	_ = f.SetColWidth(reportSheet, "B", "B", 70)
	_ = f.SetColWidth(reportSheet, "C", "C", 18)

	_, err = f.WriteTo(w)
	return err
}
