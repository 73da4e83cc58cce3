// Package detector handles input file format detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/nsfinfo/internal/nsf"
	"github.com/retroenv/retrogolib/log"
)

// MagicSize is the number of leading file bytes that the detection inspects.
const MagicSize = len(nsf.Signature)

// Format is a file format that can be confused with NSF.
type Format string

// supported formats.
const (
	FormatUnknown Format = "unknown"
	FormatNSF     Format = "nsf"
	FormatNSFe    Format = "nsfe"
	FormatINES    Format = "ines"
)

func (f Format) String() string {
	return string(f)
}

var (
	magicNSFe = []byte("NSFE")
	magicINES = []byte{'N', 'E', 'S', 0x1A}
)

// Detector handles format detection from file signatures and extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the format of a file from its leading bytes. If the
// bytes do not match any known signature, the file extension is used as hint.
func (d *Detector) Detect(filename string, magic []byte) Format {
	format := DetectMagic(magic)
	if format != FormatUnknown {
		return format
	}

	format = detectFromFile(filename)
	d.logger.Debug("Unknown file signature, using file extension",
		log.String("file", filename),
		log.Stringer("format", format))
	return format
}

// DetectMagic determines the format of a file from its leading bytes only.
func DetectMagic(magic []byte) Format {
	switch {
	case bytes.HasPrefix(magic, nsf.Signature[:]):
		return FormatNSF
	case bytes.HasPrefix(magic, magicNSFe):
		return FormatNSFe
	case bytes.HasPrefix(magic, magicINES):
		return FormatINES
	default:
		return FormatUnknown
	}
}

// detectFromFile determines the format based on the file extension.
func detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nsf":
		return FormatNSF
	case ".nsfe":
		return FormatNSFe
	case ".nes":
		return FormatINES
	default:
		return FormatUnknown
	}
}
