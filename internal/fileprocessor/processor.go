// Package fileprocessor handles file selection and batch processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/nsfinfo/internal/options"
	"github.com/retroenv/nsfinfo/internal/pipeline"
	"github.com/retroenv/nsfinfo/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

var errNoFiles = errors.New("no input files")

// GetFilesToProcess returns list of files to process based on options.
// Explicit inputs come first, followed by the sorted matches of the batch pattern.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	files := append([]string(nil), opts.Inputs...)

	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errNoFiles
	}
	return files, nil
}

// ProcessFiles decodes all files concurrently, bounded by the configured job count.
// Reports are written in input order, independent of the completion order.
func ProcessFiles(ctx context.Context, logger *log.Logger, opts options.Program, files []string) (err error) {
	format, err := writer.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	out, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closeErr := closeOutput(out, opts.Output); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	color := opts.Output == "" && writer.ColorEnabled(out)
	buffers := make([]bytes.Buffer, len(files))
	errs := make([]error, len(files))
	pipe := pipeline.New(logger)

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = options.DefaultJobs
	}

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, file := range files {
		group.Go(func() error {
			w := writer.New(&buffers[i], format, color)
			_, errs[i] = pipe.Execute(ctx, opts, file, w)
			return nil
		})
	}
	_ = group.Wait()

	failed := 0
	for i, file := range files {
		if _, err := buffers[i].WriteTo(out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if errs[i] == nil {
			continue
		}
		if errors.Is(errs[i], context.Canceled) {
			return errs[i]
		}
		failed++
		logger.Error("Decoding failed", log.String("file", file), log.Err(errs[i]))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// closeOutput closes a created output file, stdout stays open.
func closeOutput(out io.Writer, name string) error {
	closer, ok := out.(io.Closer)
	if !ok || out == os.Stdout {
		return nil
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", name, err)
	}
	return nil
}

// PrintBanner prints application version information.
// Machine readable formats on stdout are kept free of it.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	if opts.Format != "" && opts.Format != string(writer.FormatTable) && opts.Output == "" {
		return
	}

	logger.Info("nsfinfo", log.String("version", buildinfo.Version(version, commit, date)))
}
