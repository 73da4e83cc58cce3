// Package nsf decodes and encodes the header of NSF (NES Sound Format) music files.
package nsf

// HeaderSize is the size of the fixed NSF header, the program data starts directly after it.
const HeaderSize = 0x80

// MaxProgramLength is the largest program data length that the 24 bit length field can describe.
const MaxProgramLength = 0xFFFFFF

// Signature identifies an NSF file: "NESM" followed by the MS-DOS end of file marker.
var Signature = [5]byte{'N', 'E', 'S', 'M', 0x1A}

// Default playback tick intervals in microseconds as used by most NSF rippers.
const (
	DefaultPlaySpeedNTSC = 16639 // 60.100 Hz
	DefaultPlaySpeedPAL  = 19997 // 50.008 Hz
)

// MinAddress is the lowest expected load, init and play address, the start of the cartridge space.
const MinAddress = 0x8000

// file offsets of the header fields.
const (
	offsetSignature     = 0x00
	offsetVersion       = 0x05
	offsetTotalSongs    = 0x06
	offsetStartingSong  = 0x07
	offsetLoadAddress   = 0x08
	offsetInitAddress   = 0x0A
	offsetPlayAddress   = 0x0C
	offsetSongName      = 0x0E
	offsetArtist        = 0x2E
	offsetCopyright     = 0x4E
	offsetPlaySpeedNTSC = 0x6E
	offsetBankSwitch    = 0x70
	offsetPlaySpeedPAL  = 0x78
	offsetRegion        = 0x7A
	offsetChips         = 0x7B
	offsetNSF2Reserved  = 0x7C
	offsetProgramLength = 0x7D
)

const (
	textSize       = 32
	bankSwitchSize = 8
)
