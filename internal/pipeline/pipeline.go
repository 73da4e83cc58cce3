// Package pipeline orchestrates the decoding workflow stages of a single file.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/nsfinfo/internal/detector"
	"github.com/retroenv/nsfinfo/internal/loader"
	"github.com/retroenv/nsfinfo/internal/options"
	"github.com/retroenv/nsfinfo/internal/verification"
	"github.com/retroenv/nsfinfo/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// ErrStrictWarnings is returned in strict mode for files whose header has warnings.
var ErrStrictWarnings = errors.New("header has warnings")

// Pipeline orchestrates the complete decoding workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new decoding pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(detector.New(logger)),
	}
}

// Execute loads, verifies and reports a single NSF file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, input string, out *writer.Writer) (*loader.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.loader.Load(input, opts.Lenient)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}

	return result, p.process(opts, result, out)
}

// ExecuteWithData runs the pipeline for an NSF file that is already held in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, opts options.Program, name string, data []byte,
	out *writer.Writer) (*loader.Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.loader.LoadFromBytes(name, data, opts.Lenient)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}

	if opts.Verify {
		if err := verification.VerifyBuffer(p.logger, data, result); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		// already verified against the in-memory data
		opts.Verify = false
	}

	return result, p.process(opts, result, out)
}

func (p *Pipeline) process(opts options.Program, result *loader.Result, out *writer.Writer) error {
	p.printInfo(opts, result)

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, result); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful", log.String("file", result.Name))
	}

	if err := out.Write(writer.NewReport(result)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if opts.Strict && len(result.File.Warnings) > 0 {
		return fmt.Errorf("%w: %d warnings", ErrStrictWarnings, len(result.File.Warnings))
	}
	return nil
}

// printInfo logs the information about the decoded file and its header warnings.
func (p *Pipeline) printInfo(opts options.Program, result *loader.Result) {
	header := &result.File.Header

	p.logger.Debug("Decoded NSF header",
		log.String("file", result.Name),
		log.Uint8("version", header.Version),
		log.Uint8("songs", header.TotalSongs),
		log.Hex("load_address", header.LoadAddress),
		log.Hex("init_address", header.InitAddress),
		log.Hex("play_address", header.PlayAddress),
		log.Int("program_length", len(result.Program)),
	)

	if opts.Quiet {
		return
	}

	for _, warning := range result.File.Warnings {
		p.logger.Warn("Header warning",
			log.String("file", result.Name),
			log.Stringer("kind", warning.Kind),
			log.String("field", warning.Field),
			log.String("message", warning.Message))
	}
	if result.ProgramTruncated {
		p.logger.Warn("Program data is shorter than declared in the header",
			log.String("file", result.Name),
			log.Int("declared", int(header.ProgramLength)),
			log.Int("available", len(result.Program)))
	}
}
