package writer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/retroenv/nsfinfo/internal/nsf"
)

const nsfMagic = `.byte "NESM", $1a`

const (
	ca65Line    = "%-32s ; %s\n"
	textLength  = len(nsf.Text{})
	commentFile = "; NSF header of %s\n"
)

type headerByteWrite struct {
	value   byte
	comment string
}

type headerWordWrite struct {
	value   uint16
	comment string
}

type headerTextWrite struct {
	text    nsf.Text
	comment string
}

type segmentWrite struct {
	name string
}

type lineWrite string

// writeCA65 writes the header as ca65 assembler source that assembles back
// into the same 128 bytes, ready to be linked in front of the program data.
//
//nolint:funlen
func (w *Writer) writeCA65(report Report) error {
	h := report.header
	if h == nil {
		return fmt.Errorf("report of %s has no header", report.File)
	}

	writes := []any{
		lineWrite(fmt.Sprintf(commentFile, report.File)),
		segmentWrite{name: "HEADER"},
		lineWrite(fmt.Sprintf(ca65Line, nsfMagic, "Magic string that always begins an NSF header")),
		headerByteWrite{value: h.Version, comment: "Version"},
		headerByteWrite{value: h.TotalSongs, comment: "Total songs"},
		headerByteWrite{value: h.StartingSong, comment: "Starting song"},
		headerWordWrite{value: h.LoadAddress, comment: "Load address"},
		headerWordWrite{value: h.InitAddress, comment: "Init address"},
		headerWordWrite{value: h.PlayAddress, comment: "Play address"},
		headerTextWrite{text: h.SongName, comment: "Song name"},
		headerTextWrite{text: h.Artist, comment: "Artist"},
		headerTextWrite{text: h.Copyright, comment: "Copyright holder"},
		lineWrite(fmt.Sprintf(ca65Line, fmt.Sprintf(".word %d", h.PlaySpeedNTSC), "Play speed NTSC in µs")),
		lineWrite(fmt.Sprintf(ca65Line, bankSwitchBytes(h.BankSwitch), "Bankswitch init values")),
		lineWrite(fmt.Sprintf(ca65Line, fmt.Sprintf(".word %d", h.PlaySpeedPAL), "Play speed PAL in µs")),
		headerByteWrite{value: uint8(h.Region), comment: "Region: " + h.Region.String()},
		headerByteWrite{value: uint8(h.Chips), comment: "Expansion audio: " + h.Chips.String()},
		headerByteWrite{value: h.NSF2Reserved, comment: "NSF2 flags"},
		lineWrite(fmt.Sprintf(ca65Line, fmt.Sprintf(".faraddr $%06x", h.ProgramLength), "Program data length")),
		segmentWrite{name: "CODE"},
	}

	for _, write := range writes {
		var err error
		switch t := write.(type) {
		case headerByteWrite:
			_, err = fmt.Fprintf(w.out, ca65Line, fmt.Sprintf(".byte $%02x", t.value), t.comment)
		case headerWordWrite:
			_, err = fmt.Fprintf(w.out, ca65Line, fmt.Sprintf(".addr $%04x", t.value), t.comment)
		case headerTextWrite:
			err = w.writeText(t)
		case segmentWrite:
			_, err = fmt.Fprintf(w.out, "\n.segment \"%s\"\n\n", t.name)
		case lineWrite:
			_, err = fmt.Fprint(w.out, t)
		}
		if err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	return nil
}

// writeText writes a text field as string literal padded with zero bytes to
// the fixed field size. Bytes that can not be part of a ca65 string literal
// are written as hex values. Only the trailing zero bytes are padding, data
// after an embedded NUL terminator is kept.
func (w *Writer) writeText(t headerTextWrite) error {
	b := bytes.TrimRight(t.text[:], "\x00")

	var parts []string
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			parts = append(parts, `"`+literal.String()+`"`)
			literal.Reset()
		}
	}
	for _, c := range b {
		if c >= 0x20 && c < 0x7f && c != '"' {
			literal.WriteByte(c)
			continue
		}
		flush()
		parts = append(parts, fmt.Sprintf("$%02x", c))
	}
	flush()

	if len(parts) > 0 {
		if _, err := fmt.Fprintf(w.out, ca65Line, ".byte "+strings.Join(parts, ", "), t.comment); err != nil {
			return fmt.Errorf("writing text: %w", err)
		}
	}

	padding := textLength - len(b)
	if padding == 0 {
		return nil
	}
	comment := "Padding"
	if len(parts) == 0 {
		comment = t.comment
	}
	if _, err := fmt.Fprintf(w.out, ca65Line, fmt.Sprintf(".res %d, $00", padding), comment); err != nil {
		return fmt.Errorf("writing text padding: %w", err)
	}
	return nil
}

func bankSwitchBytes(bs nsf.BankSwitch) string {
	values := make([]string, len(bs))
	for i, v := range bs {
		values[i] = fmt.Sprintf("$%02x", v)
	}
	return ".byte " + strings.Join(values, ", ")
}
