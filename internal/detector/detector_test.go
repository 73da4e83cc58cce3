package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		inputFile  string
		magic      []byte
		wantFormat Format
	}{
		{
			name:       "NSF signature",
			inputFile:  "smb.nsf",
			magic:      []byte{'N', 'E', 'S', 'M', 0x1A},
			wantFormat: FormatNSF,
		},
		{
			name:       "NSF signature with wrong extension",
			inputFile:  "smb.bin",
			magic:      []byte{'N', 'E', 'S', 'M', 0x1A},
			wantFormat: FormatNSF,
		},
		{
			name:       "NSFe signature",
			inputFile:  "smb.nsf",
			magic:      []byte("NSFE\x1a"),
			wantFormat: FormatNSFe,
		},
		{
			name:       "iNES signature",
			inputFile:  "smb.nsf",
			magic:      []byte{'N', 'E', 'S', 0x1A, 0x02},
			wantFormat: FormatINES,
		},
		{
			name:       "unknown signature falls back to extension",
			inputFile:  "broken.nsf",
			magic:      []byte{0, 0, 0, 0, 0},
			wantFormat: FormatNSF,
		},
		{
			name:       "short file falls back to extension",
			inputFile:  "game.NES",
			magic:      []byte{'N'},
			wantFormat: FormatINES,
		},
		{
			name:       "unknown signature and extension",
			inputFile:  "notes.txt",
			magic:      []byte("hello"),
			wantFormat: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.inputFile, tt.magic)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	tests := []struct {
		filename   string
		wantFormat Format
	}{
		{"zelda.nsf", FormatNSF},
		{"ZELDA.NSF", FormatNSF},
		{"zelda.nsfe", FormatNSFe},
		{"zelda.nes", FormatINES},
		{"zelda", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.wantFormat, detectFromFile(tt.filename))
		})
	}
}

func TestDetectMagic(t *testing.T) {
	assert.Equal(t, FormatNSF, DetectMagic([]byte{'N', 'E', 'S', 'M', 0x1A}))
	assert.Equal(t, FormatNSFe, DetectMagic([]byte("NSFE")))
	assert.Equal(t, FormatINES, DetectMagic([]byte{'N', 'E', 'S', 0x1A, 0x02}))
	assert.Equal(t, FormatUnknown, DetectMagic([]byte{'N', 'E', 'S'}))
	assert.Equal(t, FormatUnknown, DetectMagic(nil))
}
