package nsf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Option configures the decoding.
type Option func(*decodeOptions)

type decodeOptions struct {
	lenient bool
}

// WithLenient enables the streaming mode: an explicit program data length is
// not verified against the source and the program data is not read eagerly.
func WithLenient() Option {
	return func(o *decodeOptions) {
		o.lenient = true
	}
}

// File is a decoded NSF file, the header and a handle on the program data that follows it.
type File struct {
	Header   Header
	Warnings []Warning

	data   []byte    // program data if it was read while decoding
	loaded bool      // program data was read while decoding
	stream io.Reader // source positioned at the program data otherwise
}

// Decode reads an NSF header from the reader and validates it. The reader has
// to be positioned at the start of the file. Decoding reads the 128 byte
// header and, for an explicit program data length in the default strict mode,
// the program data. Otherwise the program data stays in the reader and is
// consumed by File.Program or File.ReadProgram.
func Decode(r io.Reader, opts ...Option) (*File, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{Err: ErrTruncated, Offset: 0, Need: HeaderSize, Have: n}
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	f := &File{}
	if err := f.Header.UnmarshalBinary(buf[:]); err != nil {
		return nil, err
	}
	f.Warnings = f.Header.Validate()

	if err := f.readProgram(r, o.lenient); err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeBytes decodes an NSF file that is completely held in memory.
func DecodeBytes(data []byte, opts ...Option) (*File, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// UnmarshalBinary decodes the header from the first HeaderSize bytes of data.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return &FormatError{Err: ErrTruncated, Offset: 0, Need: HeaderSize, Have: len(data)}
	}
	if !bytes.Equal(data[offsetSignature:offsetVersion], Signature[:]) {
		return &FormatError{
			Err:       ErrBadSignature,
			Offset:    offsetSignature,
			Signature: bytes.Clone(data[offsetSignature:offsetVersion]),
		}
	}

	c := &cursor{buf: data[:HeaderSize]}
	c.at(offsetSignature).bytes(h.Magic[:])
	h.Version = c.at(offsetVersion).u8()
	h.TotalSongs = c.at(offsetTotalSongs).u8()
	h.StartingSong = c.at(offsetStartingSong).u8()
	h.LoadAddress = c.at(offsetLoadAddress).u16()
	h.InitAddress = c.at(offsetInitAddress).u16()
	h.PlayAddress = c.at(offsetPlayAddress).u16()
	c.at(offsetSongName).bytes(h.SongName[:])
	c.at(offsetArtist).bytes(h.Artist[:])
	c.at(offsetCopyright).bytes(h.Copyright[:])
	h.PlaySpeedNTSC = c.at(offsetPlaySpeedNTSC).u16()
	c.at(offsetBankSwitch).bytes(h.BankSwitch[:])
	h.PlaySpeedPAL = c.at(offsetPlaySpeedPAL).u16()
	h.Region = Region(c.at(offsetRegion).u8())
	h.Chips = Chips(c.at(offsetChips).u8())
	h.NSF2Reserved = c.at(offsetNSF2Reserved).u8()
	h.ProgramLength = c.at(offsetProgramLength).u24()
	return nil
}

func (f *File) readProgram(r io.Reader, lenient bool) error {
	length := int(f.Header.ProgramLength)

	switch {
	case length == 0:
		// the source can be an unbounded stream, the caller resolves the length
		f.stream = r

	case lenient:
		f.stream = io.LimitReader(r, int64(length))

	default:
		// the declared length is not allocated before the data was read
		data, err := io.ReadAll(io.LimitReader(r, int64(length)))
		if err != nil {
			return fmt.Errorf("reading program data: %w", err)
		}
		if len(data) < length {
			return &FormatError{Err: ErrTruncated, Offset: HeaderSize, Need: length, Have: len(data)}
		}
		f.data = data
		f.loaded = true
	}
	return nil
}

// Program returns a reader for the program data. If the program data was not
// read while decoding, the reader is the remaining source and can only be consumed once.
func (f *File) Program() io.Reader {
	if f.loaded {
		return bytes.NewReader(f.data)
	}
	return f.stream
}

// ProgramLength returns the length of the program data if it is known without
// reading from the source.
func (f *File) ProgramLength() (int, bool) {
	if f.loaded {
		return len(f.data), true
	}
	return 0, false
}

// ReadProgram reads the complete program data. In lenient mode a source that
// ends before the declared program data length returns the available data
// together with an ErrTruncated format error.
func (f *File) ReadProgram() ([]byte, error) {
	if f.loaded {
		return bytes.Clone(f.data), nil
	}

	data, err := io.ReadAll(f.stream)
	if err != nil {
		return nil, fmt.Errorf("reading program data: %w", err)
	}

	declared := int(f.Header.ProgramLength)
	if declared > 0 && len(data) < declared {
		return data, &FormatError{Err: ErrTruncated, Offset: HeaderSize, Need: declared, Have: len(data)}
	}
	return data, nil
}
