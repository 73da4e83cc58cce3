package writer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/retroenv/nsfinfo/internal/detector"
	"github.com/retroenv/nsfinfo/internal/loader"
	"github.com/retroenv/nsfinfo/internal/nsf"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"gopkg.in/yaml.v3"
)

func loadTestFile(t *testing.T, modify func(h *nsf.Header)) *loader.Result {
	t.Helper()

	h := nsf.NewHeader()
	h.TotalSongs = 18
	h.SongName = nsf.NewText("Super Mario Bros.")
	h.Artist = nsf.NewText("Koji Kondo")
	h.Copyright = nsf.NewText("1985 Nintendo")
	if modify != nil {
		modify(h)
	}

	var buf bytes.Buffer
	assert.NoError(t, nsf.Encode(&buf, h, []byte{0x4c, 0x00, 0x80}))

	ldr := loader.New(detector.New(log.NewTestLogger(t)))
	result, err := ldr.LoadFromBytes("smb.nsf", buf.Bytes(), false)
	assert.NoError(t, err)
	return result
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yml ", FormatYAML, false},
		{"dump", FormatDump, false},
		{"asm", FormatCA65, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewReport(t *testing.T) {
	result := loadTestFile(t, func(h *nsf.Header) {
		h.Version = 2
		h.NSF2Reserved = 0x04
		h.Chips = nsf.ChipVRC6 | nsf.ChipNamco163
		h.BankSwitch = nsf.BankSwitch{0, 1, 2, 3, 4, 5, 6, 7}
		h.StartingSong = 20
	})

	report := NewReport(result)
	assert.Equal(t, "smb.nsf", report.File)
	assert.Equal(t, "Super Mario Bros.", report.SongName)
	assert.Equal(t, "$8000", report.LoadAddress)
	assert.Equal(t, 60.1, report.PlayRateNTSC)
	assert.Equal(t, 50.008, report.PlayRatePAL)
	assert.Equal(t, "00 01 02 03 04 05 06 07", report.BankSwitch)
	assert.Equal(t, []string{"VRC6", "Namco163"}, report.Chips)
	assert.NotNil(t, report.NSF2Flags)
	assert.Equal(t, uint8(0x04), *report.NSF2Flags)
	assert.Equal(t, 3, report.ProgramLength)
	assert.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "starting_song")
}

func TestWriter_Table(t *testing.T) {
	result := loadTestFile(t, func(h *nsf.Header) {
		h.Region = 0xF0
	})

	var buf bytes.Buffer
	w := New(&buf, FormatTable, false)
	assert.NoError(t, w.Write(NewReport(result)))

	output := buf.String()
	assert.Contains(t, output, "Super Mario Bros.")
	assert.Contains(t, output, "Koji Kondo")
	assert.Contains(t, output, "$8000")
	assert.Contains(t, output, "NTSC")
	assert.Contains(t, output, "disabled")
	assert.Contains(t, output, "Warning: region_flags")
	assert.False(t, strings.Contains(output, colorWarning))

	buf.Reset()
	w = New(&buf, FormatTable, true)
	assert.NoError(t, w.Write(NewReport(result)))
	assert.Contains(t, buf.String(), colorWarning)
}

func TestWriter_JSON(t *testing.T) {
	result := loadTestFile(t, nil)

	var buf bytes.Buffer
	w := New(&buf, FormatJSON, false)
	assert.NoError(t, w.Write(NewReport(result)))

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Super Mario Bros.", decoded["song_name"])
	assert.Equal(t, "$8000", decoded["init_address"])
	assert.Equal(t, float64(18), decoded["total_songs"])
	_, hasWarnings := decoded["warnings"]
	assert.False(t, hasWarnings)
}

func TestWriter_YAML(t *testing.T) {
	result := loadTestFile(t, nil)

	var buf bytes.Buffer
	w := New(&buf, FormatYAML, false)
	assert.NoError(t, w.Write(NewReport(result)))
	assert.True(t, strings.HasPrefix(buf.String(), "---\n"))

	var decoded map[string]any
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Koji Kondo", decoded["artist"])
	assert.Equal(t, "NTSC", decoded["region"])
}

func TestWriter_Dump(t *testing.T) {
	result := loadTestFile(t, nil)

	var buf bytes.Buffer
	w := New(&buf, FormatDump, false)
	assert.NoError(t, w.Write(NewReport(result)))

	output := buf.String()
	assert.Contains(t, output, "smb.nsf:")
	assert.Contains(t, output, "nsf.Header")
	assert.Contains(t, output, "LoadAddress: (uint16) 32768")
}

func TestWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Format("xml"), false)
	assert.Error(t, w.Write(Report{}))
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf))
}

func TestWriter_CA65(t *testing.T) {
	result := loadTestFile(t, func(h *nsf.Header) {
		h.Copyright = nsf.NewText(`"1985" Nintendo`)
		h.Region = nsf.RegionDual
	})

	var buf bytes.Buffer
	w := New(&buf, FormatCA65, false)
	assert.NoError(t, w.Write(NewReport(result)))

	output := buf.String()
	assert.Contains(t, output, `.segment "HEADER"`)
	assert.Contains(t, output, `.byte "NESM", $1a`)
	assert.Contains(t, output, ".byte $12")
	assert.Contains(t, output, ".addr $8000")
	assert.Contains(t, output, `.byte "Super Mario Bros."`)
	assert.Contains(t, output, ".res 15, $00")
	assert.Contains(t, output, `.byte $22, "1985", $22, " Nintendo"`)
	assert.Contains(t, output, ".word 16639")
	assert.Contains(t, output, ".byte $00, $00, $00, $00, $00, $00, $00, $00")
	assert.Contains(t, output, "Region: NTSC/PAL")
	assert.Contains(t, output, ".faraddr $000003")
	assert.Contains(t, output, `.segment "CODE"`)
}

func TestWriter_CA65NoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, FormatCA65, false)
	assert.Error(t, w.Write(Report{File: "empty.nsf"}))
}

func TestWriter_CA65KeepsDataAfterTerminator(t *testing.T) {
	result := loadTestFile(t, func(h *nsf.Header) {
		h.SongName = nsf.NewText("Title\x00garbage")
	})
	assert.Equal(t, "Title", result.File.Header.SongName.String())

	var buf bytes.Buffer
	w := New(&buf, FormatCA65, false)
	assert.NoError(t, w.Write(NewReport(result)))

	output := buf.String()
	assert.Contains(t, output, `.byte "Title", $00, "garbage"`)
	assert.Contains(t, output, ".res 19, $00")
}
