// Package loader handles NSF file loading operations.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nsfinfo/internal/detector"
	"github.com/retroenv/nsfinfo/internal/nsf"
)

// Result is a decoded NSF file with its program data read into memory.
type Result struct {
	Name    string
	Format  detector.Format
	File    *nsf.File
	Program []byte

	// ProgramTruncated is set in lenient mode when the file ends before the declared program data length.
	ProgramTruncated bool
}

// Loader handles loading NSF files from disk.
type Loader struct {
	detector *detector.Detector
}

// New creates a new NSF file loader.
func New(det *detector.Detector) *Loader {
	return &Loader{
		detector: det,
	}
}

// Load opens, detects and decodes an NSF file. The file is closed before Load
// returns, including all error paths.
func (l *Loader) Load(name string, lenient bool) (*Result, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	return l.load(name, file, lenient)
}

// LoadFromBytes detects and decodes an NSF file held in memory.
func (l *Loader) LoadFromBytes(name string, data []byte, lenient bool) (*Result, error) {
	return l.load(name, bytes.NewReader(data), lenient)
}

func (l *Loader) load(name string, r io.Reader, lenient bool) (*Result, error) {
	reader := bufio.NewReader(r)

	header, err := reader.Peek(nsf.HeaderSize)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		truncated := &nsf.FormatError{Err: nsf.ErrTruncated, Need: nsf.HeaderSize, Have: len(header)}
		return nil, fmt.Errorf("decoding NSF header: %w", truncated)
	}

	// only a signature match identifies another format, an extension is just a hint
	magic := bytes.Clone(header[:detector.MagicSize])
	switch format := detector.DetectMagic(magic); format {
	case detector.FormatNSFe, detector.FormatINES:
		return nil, fmt.Errorf("%w: file is in %s format", nsf.ErrBadSignature, format)
	}

	var opts []nsf.Option
	if lenient {
		opts = append(opts, nsf.WithLenient())
	}

	file, err := nsf.Decode(reader, opts...)
	if err != nil {
		if hint := l.detector.Detect(name, magic); hint != detector.FormatNSF && hint != detector.FormatUnknown {
			return nil, fmt.Errorf("decoding NSF header, file extension suggests %s format: %w", hint, err)
		}
		return nil, fmt.Errorf("decoding NSF header: %w", err)
	}

	result := &Result{
		Name:   name,
		Format: detector.FormatNSF,
		File:   file,
	}

	result.Program, err = file.ReadProgram()
	if err != nil {
		if !lenient || !errors.Is(err, nsf.ErrTruncated) {
			return nil, fmt.Errorf("reading program data: %w", err)
		}
		result.ProgramTruncated = true
	}

	return result, nil
}
