// Package writer renders reports of decoded NSF files.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	colorWarning = "\033[33m"
	colorReset   = "\033[0m"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Writer writes reports in the configured format.
type Writer struct {
	out    io.Writer
	format Format
	color  bool
}

// New creates a new report writer. Color enables highlighting of warnings in the table output.
func New(out io.Writer, format Format, color bool) *Writer {
	return &Writer{
		out:    out,
		format: format,
		color:  color,
	}
}

// ColorEnabled returns whether the writer is a terminal that supports colored output.
func ColorEnabled(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Write outputs the report in the configured format.
func (w *Writer) Write(report Report) error {
	switch w.format {
	case FormatTable:
		return w.writeTable(report)
	case FormatJSON:
		return w.writeJSON(report)
	case FormatYAML:
		return w.writeYAML(report)
	case FormatDump:
		return w.writeDump(report)
	case FormatCA65:
		return w.writeCA65(report)
	default:
		return fmt.Errorf("unknown format: %s", w.format)
	}
}

func (w *Writer) writeTable(report Report) error {
	table := tablewriter.NewWriter(w.out)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(":")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, pair := range report.pairs() {
		table.Append([]string{pair[0], pair[1]})
	}
	table.Render()

	for _, warning := range report.Warnings {
		var err error
		if w.color {
			_, err = fmt.Fprintf(w.out, "%sWarning: %s%s\n", colorWarning, warning, colorReset)
		} else {
			_, err = fmt.Fprintf(w.out, "Warning: %s\n", warning)
		}
		if err != nil {
			return fmt.Errorf("writing warning: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.out); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w *Writer) writeJSON(report Report) error {
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func (w *Writer) writeYAML(report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if _, err := fmt.Fprintf(w.out, "---\n%s", data); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return nil
}

func (w *Writer) writeDump(report Report) error {
	if _, err := fmt.Fprintf(w.out, "%s:\n", report.File); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	dumpConfig.Fdump(w.out, report.header)
	return nil
}
