package writer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/retroenv/nsfinfo/internal/loader"
	"github.com/retroenv/nsfinfo/internal/nsf"
)

// Report is the presentation view of a decoded NSF file.
type Report struct {
	File         string `json:"file" yaml:"file"`
	Version      uint8  `json:"version" yaml:"version"`
	TotalSongs   uint8  `json:"total_songs" yaml:"total_songs"`
	StartingSong uint8  `json:"starting_song" yaml:"starting_song"`

	LoadAddress string `json:"load_address" yaml:"load_address"`
	InitAddress string `json:"init_address" yaml:"init_address"`
	PlayAddress string `json:"play_address" yaml:"play_address"`

	SongName  string `json:"song_name" yaml:"song_name"`
	Artist    string `json:"artist" yaml:"artist"`
	Copyright string `json:"copyright" yaml:"copyright"`

	PlaySpeedNTSC uint16  `json:"play_speed_ntsc" yaml:"play_speed_ntsc"`
	PlayRateNTSC  float64 `json:"play_rate_ntsc_hz" yaml:"play_rate_ntsc_hz"`
	PlaySpeedPAL  uint16  `json:"play_speed_pal" yaml:"play_speed_pal"`
	PlayRatePAL   float64 `json:"play_rate_pal_hz" yaml:"play_rate_pal_hz"`

	BankSwitch string   `json:"bankswitch_init,omitempty" yaml:"bankswitch_init,omitempty"`
	Region     string   `json:"region" yaml:"region"`
	Chips      []string `json:"expansion_chips,omitempty" yaml:"expansion_chips,omitempty"`
	NSF2Flags  *uint8   `json:"nsf2_flags,omitempty" yaml:"nsf2_flags,omitempty"`

	ProgramLength    int  `json:"program_length" yaml:"program_length"`
	ProgramTruncated bool `json:"program_truncated,omitempty" yaml:"program_truncated,omitempty"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	header *nsf.Header
}

// NewReport creates the report of a loaded NSF file.
func NewReport(result *loader.Result) Report {
	h := &result.File.Header

	report := Report{
		File:         result.Name,
		Version:      h.Version,
		TotalSongs:   h.TotalSongs,
		StartingSong: h.StartingSong,

		LoadAddress: formatAddress(h.LoadAddress),
		InitAddress: formatAddress(h.InitAddress),
		PlayAddress: formatAddress(h.PlayAddress),

		SongName:  h.SongName.String(),
		Artist:    h.Artist.String(),
		Copyright: h.Copyright.String(),

		PlaySpeedNTSC: h.PlaySpeedNTSC,
		PlayRateNTSC:  roundRate(h.PlayRate(false)),
		PlaySpeedPAL:  h.PlaySpeedPAL,
		PlayRatePAL:   roundRate(h.PlayRate(true)),

		Region: h.Region.String(),
		Chips:  h.Chips.List(),

		ProgramLength:    len(result.Program),
		ProgramTruncated: result.ProgramTruncated,

		header: h,
	}

	if h.BankSwitch.Enabled() {
		report.BankSwitch = fmt.Sprintf("% X", h.BankSwitch[:])
	}
	if flags, ok := h.NSF2Flags(); ok {
		report.NSF2Flags = &flags
	}
	for _, w := range result.File.Warnings {
		report.Warnings = append(report.Warnings, w.String())
	}
	return report
}

// pairs returns the report as key value pairs for the table output.
func (r Report) pairs() [][2]string {
	bankSwitch := "disabled"
	if r.BankSwitch != "" {
		bankSwitch = r.BankSwitch
	}

	chips := "none"
	if len(r.Chips) > 0 {
		chips = strings.Join(r.Chips, ", ")
	}

	version := strconv.Itoa(int(r.Version))
	if r.NSF2Flags != nil {
		version += fmt.Sprintf(" (NSF2 flags 0x%02X)", *r.NSF2Flags)
	}

	program := strconv.Itoa(r.ProgramLength) + " bytes"
	if r.ProgramTruncated {
		program += " (truncated)"
	}

	return [][2]string{
		{"File", r.File},
		{"Version", version},
		{"Songs", fmt.Sprintf("%d (starting at %d)", r.TotalSongs, r.StartingSong)},
		{"Song name", r.SongName},
		{"Artist", r.Artist},
		{"Copyright", r.Copyright},
		{"Load address", r.LoadAddress},
		{"Init address", r.InitAddress},
		{"Play address", r.PlayAddress},
		{"Play speed NTSC", fmt.Sprintf("%d µs (%.3f Hz)", r.PlaySpeedNTSC, r.PlayRateNTSC)},
		{"Play speed PAL", fmt.Sprintf("%d µs (%.3f Hz)", r.PlaySpeedPAL, r.PlayRatePAL)},
		{"Region", r.Region},
		{"Expansion audio", chips},
		{"Bankswitch init", bankSwitch},
		{"Program data", program},
	}
}

func formatAddress(address uint16) string {
	return fmt.Sprintf("$%04X", address)
}

func roundRate(rate float64) float64 {
	return math.Round(rate*1000) / 1000
}
