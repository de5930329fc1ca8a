// Package report renders analysis results as console tables and CSV.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// Printer writes formatted report output to an io.Writer.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to w. When colorize is false no escape
// sequences are emitted.
func New(w io.Writer, colorize bool) *Printer {
	return &Printer{w: w, color: colorize}
}

// Header prints a boxed title.
func (p *Printer) Header(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(p.w, strings.Repeat("=", width))
	fmt.Fprintf(p.w, "  %s\n", p.paint(color.OpBold, title))
	fmt.Fprintln(p.w, strings.Repeat("=", width))
}

// Section prints a section title.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "[%s]\n", title)
	fmt.Fprintln(p.w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// Linef prints one indented line.
func (p *Printer) Linef(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "  "+format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Column describes one table column.
type Column struct {
	Title string
	// Left aligns the column to the left; columns are right-aligned otherwise.
	Left bool
	// Paint, if set, styles a cell after it has been padded.
	Paint func(cell string) string
}

// Table prints rows under cols with widths measured in terminal cells.
func (p *Printer) Table(cols []Column, rows [][]string) {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.Title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				if w := runewidth.StringWidth(row[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	header := make([]string, len(cols))
	total := 0
	for i, c := range cols {
		header[i] = align(c.Title, widths[i], c.Left)
		total += widths[i]
	}
	total += 2 * (len(cols) - 1)

	fmt.Fprintln(p.w, strings.TrimRight(strings.Join(header, "  "), " "))
	fmt.Fprintln(p.w, strings.Repeat("-", total))

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cell = align(cell, widths[i], c.Left)
			if c.Paint != nil {
				cell = c.Paint(cell)
			}
			cells[i] = cell
		}
		fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func align(s string, width int, left bool) string {
	if left {
		return runewidth.FillRight(s, width)
	}
	return runewidth.FillLeft(s, width)
}

// SideBySide prints two blocks of text side by side, with at least padding
// spaces between the columns.
func (p *Printer) SideBySide(leftContent string, rightLines []string, padding int) {
	leftLines := strings.Split(strings.TrimRight(leftContent, "\n"), "\n")

	leftWidth := 0
	for _, line := range leftLines {
		if w := runewidth.StringWidth(line); w > leftWidth {
			leftWidth = w
		}
	}

	height := len(leftLines)
	if len(rightLines) > height {
		height = len(rightLines)
	}

	for i := 0; i < height; i++ {
		leftPart, rightPart := "", ""
		if i < len(leftLines) {
			leftPart = leftLines[i]
		}
		if i < len(rightLines) {
			rightPart = rightLines[i]
		}
		if rightPart == "" {
			fmt.Fprintln(p.w, strings.TrimRight(leftPart, " "))
			continue
		}
		fmt.Fprintln(p.w, runewidth.FillRight(leftPart, leftWidth+padding)+rightPart)
	}
}

func (p *Printer) paint(c color.Color, s string) string {
	if !p.color {
		return s
	}
	return c.Sprint(s)
}

func (p *Printer) verdict(cell string) string {
	switch strings.TrimSpace(cell) {
	case "EASY", "YES":
		return p.paint(color.Green, cell)
	case "FEASIBLE":
		return p.paint(color.Yellow, cell)
	case "TIGHT", "NO":
		return p.paint(color.Red, cell)
	default:
		return cell
	}
}
