package nsf

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Header is the decoded 128 byte NSF header.
type Header struct {
	Magic        [5]byte // always equal to Signature for a decoded header
	Version      uint8   // 1 for NSF, 2 for NSF2
	TotalSongs   uint8
	StartingSong uint8 // 1 based

	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	SongName  Text
	Artist    Text
	Copyright Text

	PlaySpeedNTSC uint16 // tick interval in microseconds
	BankSwitch    BankSwitch
	PlaySpeedPAL  uint16 // tick interval in microseconds

	Region       Region
	Chips        Chips
	NSF2Reserved uint8

	// ProgramLength is the 24 bit length of the program data,
	// 0 means that all data until the end of the source is part of the program.
	ProgramLength uint32
}

// NewHeader returns a header for a single song NSF tune loaded at the start of the cartridge space.
func NewHeader() *Header {
	return &Header{
		Magic:         Signature,
		Version:       1,
		TotalSongs:    1,
		StartingSong:  1,
		LoadAddress:   MinAddress,
		InitAddress:   MinAddress,
		PlayAddress:   MinAddress,
		PlaySpeedNTSC: DefaultPlaySpeedNTSC,
		PlaySpeedPAL:  DefaultPlaySpeedPAL,
	}
}

// IsNSF2 returns whether the header declares the NSF2 extension.
func (h *Header) IsNSF2() bool {
	return h.Version == 2
}

// NSF2Flags returns the NSF2 reserved byte and whether it is meaningful for the header version.
func (h *Header) NSF2Flags() (uint8, bool) {
	if !h.IsNSF2() {
		return 0, false
	}
	return h.NSF2Reserved, true
}

// PlaySpeed returns the tick interval in microseconds for the given TV system.
func (h *Header) PlaySpeed(pal bool) uint16 {
	if pal {
		return h.PlaySpeedPAL
	}
	return h.PlaySpeedNTSC
}

// PlayRate returns the frequency in Hz that the play routine gets called with
// for the given TV system, 0 if no tick interval is set.
func (h *Header) PlayRate(pal bool) float64 {
	ticks := h.PlaySpeed(pal)
	if ticks == 0 {
		return 0
	}
	return 1000000.0 / float64(ticks)
}

// LoadPadding returns the number of padding bytes that precede the program data
// in the first 4KB bank of a bankswitched tune.
func (h *Header) LoadPadding() uint16 {
	if !h.BankSwitch.Enabled() {
		return 0
	}
	return h.LoadAddress & 0x0FFF
}

// Text is a fixed size, NUL terminated or NUL padded text slot of the header.
type Text [textSize]byte

// NewText returns a text slot containing s, truncated to the slot size.
func NewText(s string) Text {
	var t Text
	copy(t[:], s)
	return t
}

// Bytes returns the raw bytes of the text up to the first NUL byte.
func (t Text) Bytes() []byte {
	b := t[:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return bytes.Clone(b)
}

// String returns the text decoded as UTF-8. Every byte that is not part of
// a valid UTF-8 sequence is replaced by the Unicode replacement character.
func (t Text) String() string {
	b := t.Bytes()

	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// BankSwitch contains the initial values of the 8 bankswitch registers at $5FF8-$5FFF.
type BankSwitch [bankSwitchSize]byte

// Enabled returns whether the tune uses bankswitching, which is the case
// when any of the initial register values is not zero.
func (b BankSwitch) Enabled() bool {
	return b != BankSwitch{}
}

// Region is the PAL/NTSC bitfield of the header.
type Region uint8

// region bits.
const (
	RegionPAL  Region = 1 << 0
	RegionDual Region = 1 << 1

	regionReserved Region = 0xFC
)

// PAL returns whether the tune is a PAL tune.
func (r Region) PAL() bool {
	return r&RegionPAL != 0
}

// Dual returns whether the tune supports both PAL and NTSC.
func (r Region) Dual() bool {
	return r&RegionDual != 0
}

// String returns the TV systems supported by the tune.
func (r Region) String() string {
	switch {
	case r.Dual():
		return "NTSC/PAL"
	case r.PAL():
		return "PAL"
	default:
		return "NTSC"
	}
}

// Chips is the expansion audio bitfield of the header.
type Chips uint8

// expansion audio chips.
const (
	ChipVRC6 Chips = 1 << iota
	ChipVRC7
	ChipFDS
	ChipMMC5
	ChipNamco163
	ChipSunsoft5B
	ChipVT02

	chipsReserved Chips = 0x80
)

var chipNames = []struct {
	chip Chips
	name string
}{
	{ChipVRC6, "VRC6"},
	{ChipVRC7, "VRC7"},
	{ChipFDS, "FDS"},
	{ChipMMC5, "MMC5"},
	{ChipNamco163, "Namco163"},
	{ChipSunsoft5B, "Sunsoft5B"},
	{ChipVT02, "VT02+"},
}

// Has returns whether all chips of the given mask are used.
func (c Chips) Has(chip Chips) bool {
	return c&chip == chip
}

// List returns the names of all used expansion audio chips.
func (c Chips) List() []string {
	var names []string
	for _, info := range chipNames {
		if c.Has(info.chip) {
			names = append(names, info.name)
		}
	}
	return names
}

// String returns the used expansion audio chips joined by a plus sign.
func (c Chips) String() string {
	names := c.List()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
