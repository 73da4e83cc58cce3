package nsf

import "fmt"

// Validate checks the soft constraints of the header. Real world files often
// violate them and are still playable, so violations are reported as warnings.
func (h *Header) Validate() []Warning {
	var warnings []Warning

	if h.Version != 1 && h.Version != 2 {
		warnings = append(warnings, Warning{
			Kind:    UnexpectedVersion,
			Field:   "version",
			Value:   uint32(h.Version),
			Message: fmt.Sprintf("unexpected version %d", h.Version),
		})
	}

	if h.TotalSongs == 0 {
		warnings = append(warnings, Warning{
			Kind:    NoSongs,
			Field:   "total_songs",
			Message: "no songs declared",
		})
	}
	if h.StartingSong == 0 || h.StartingSong > h.TotalSongs {
		warnings = append(warnings, Warning{
			Kind:    StartingSongOutOfRange,
			Field:   "starting_song",
			Value:   uint32(h.StartingSong),
			Message: fmt.Sprintf("starting song %d is outside of the song range 1-%d", h.StartingSong, h.TotalSongs),
		})
	}

	addresses := []struct {
		field string
		value uint16
	}{
		{"load_address", h.LoadAddress},
		{"init_address", h.InitAddress},
		{"play_address", h.PlayAddress},
	}
	for _, addr := range addresses {
		if addr.value >= MinAddress {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:    AddressOutOfExpectedRange,
			Field:   addr.field,
			Value:   uint32(addr.value),
			Message: fmt.Sprintf("address $%04X is below $%04X", addr.value, MinAddress),
		})
	}

	if reserved := h.Region & regionReserved; reserved != 0 {
		warnings = append(warnings, Warning{
			Kind:    ReservedBitsSet,
			Field:   "region_flags",
			Value:   uint32(h.Region),
			Message: fmt.Sprintf("reserved bits 0x%02X are set", uint8(reserved)),
		})
	}
	if reserved := h.Chips & chipsReserved; reserved != 0 {
		warnings = append(warnings, Warning{
			Kind:    ReservedBitsSet,
			Field:   "expansion_flags",
			Value:   uint32(h.Chips),
			Message: fmt.Sprintf("reserved bits 0x%02X are set", uint8(reserved)),
		})
	}

	return warnings
}
