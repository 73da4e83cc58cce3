// Package verification verifies that a decoded NSF file re-encodes to the input file.
package verification

import (
	"bytes"
	"fmt"
	"os"

	"github.com/retroenv/nsfinfo/internal/loader"
	"github.com/retroenv/nsfinfo/internal/nsf"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedMismatches limits the mismatching offsets that get logged.
const maxLoggedMismatches = 10

// VerifyOutput verifies that the decoded file re-encodes to the exact content of the input file.
func VerifyOutput(logger *log.Logger, result *loader.Result) error {
	source, err := os.ReadFile(result.Name)
	if err != nil {
		return fmt.Errorf("reading source file for comparison: %w", err)
	}
	return VerifyBuffer(logger, source, result)
}

// VerifyBuffer verifies that the decoded file re-encodes to the given source data.
// Data following an explicit program data length, like NSF2 metadata, is not compared.
func VerifyBuffer(logger *log.Logger, source []byte, result *loader.Result) error {
	header := &result.File.Header

	var buf bytes.Buffer
	if err := nsf.Encode(&buf, header, result.Program); err != nil {
		return fmt.Errorf("re-encoding file: %w", err)
	}
	encoded := buf.Bytes()

	if header.ProgramLength != 0 && len(source) > len(encoded) {
		logger.Debug("Ignoring data after program",
			log.String("file", result.Name),
			log.Int("bytes", len(source)-len(encoded)))
		source = source[:len(encoded)]
	}

	if err := checkBufferEqual(logger, source[:min(len(source), nsf.HeaderSize)],
		encoded[:nsf.HeaderSize]); err != nil {
		return fmt.Errorf("header mismatch: %w", err)
	}
	if err := checkBufferEqual(logger, source, encoded); err != nil {
		return fmt.Errorf("file mismatch: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
