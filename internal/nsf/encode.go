package nsf

import (
	"fmt"
	"io"
)

// MarshalBinary encodes the header into its 128 byte file representation.
// The signature is always written, independent of the Magic field.
func (h *Header) MarshalBinary() ([]byte, error) {
	if h.ProgramLength > MaxProgramLength {
		return nil, fmt.Errorf("program length %d exceeds maximum of %d", h.ProgramLength, MaxProgramLength)
	}

	buf := make([]byte, HeaderSize)
	c := &cursor{buf: buf}
	c.at(offsetSignature).putBytes(Signature[:])
	c.at(offsetVersion).putU8(h.Version)
	c.at(offsetTotalSongs).putU8(h.TotalSongs)
	c.at(offsetStartingSong).putU8(h.StartingSong)
	c.at(offsetLoadAddress).putU16(h.LoadAddress)
	c.at(offsetInitAddress).putU16(h.InitAddress)
	c.at(offsetPlayAddress).putU16(h.PlayAddress)
	c.at(offsetSongName).putBytes(h.SongName[:])
	c.at(offsetArtist).putBytes(h.Artist[:])
	c.at(offsetCopyright).putBytes(h.Copyright[:])
	c.at(offsetPlaySpeedNTSC).putU16(h.PlaySpeedNTSC)
	c.at(offsetBankSwitch).putBytes(h.BankSwitch[:])
	c.at(offsetPlaySpeedPAL).putU16(h.PlaySpeedPAL)
	c.at(offsetRegion).putU8(uint8(h.Region))
	c.at(offsetChips).putU8(uint8(h.Chips))
	c.at(offsetNSF2Reserved).putU8(h.NSF2Reserved)
	c.at(offsetProgramLength).putU24(h.ProgramLength)
	return buf, nil
}

// Encode writes a complete NSF file consisting of the header and the program data.
// An explicit program length of the header has to match the program data length.
func Encode(w io.Writer, h *Header, program []byte) error {
	if h.ProgramLength != 0 && int(h.ProgramLength) != len(program) {
		return fmt.Errorf("header program length %d does not match program data length %d",
			h.ProgramLength, len(program))
	}

	header, err := h.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(program); err != nil {
		return fmt.Errorf("writing program data: %w", err)
	}
	return nil
}
