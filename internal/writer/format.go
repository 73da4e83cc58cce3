package writer

import (
	"fmt"
	"strings"
)

// Format is the output format of a report.
type Format string

// supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatDump  Format = "dump"
	FormatCA65  Format = "ca65"
)

// ParseFormat parses a format name, an empty name selects the table format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "dump":
		return FormatDump, nil
	case "ca65", "asm":
		return FormatCA65, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml, dump, ca65)", s)
	}
}

func (f Format) String() string {
	return string(f)
}
