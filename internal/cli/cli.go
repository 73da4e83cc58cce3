// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/nsfinfo/internal/options"
	"github.com/retroenv/nsfinfo/internal/writer"
	"github.com/spf13/pflag"
)

// ParseFlags parses the command line arguments, args[0] being the program name.
func ParseFlags(args []string) (options.Program, error) {
	var opts options.Program

	name := "nsfinfo"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if inputs := flags.Args(); len(inputs) > 0 {
		opts.Inputs = inputs
	}
	if len(opts.Inputs) == 0 && opts.Batch == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *pflag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage message and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("error: %s\n\n", e.msg)
	}
	fmt.Printf("usage: nsfinfo [options] <file.nsf>...\n\n")
	fmt.Print(e.flags.FlagUsages())
	fmt.Println()
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	format, err := writer.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	opts.Format = format.String()

	if opts.Jobs < 1 {
		return fmt.Errorf("invalid number of jobs %d, at least 1 is required", opts.Jobs)
	}

	if opts.Verify && opts.Lenient {
		return errors.New("verify can not be combined with lenient mode")
	}

	opts.Batch = strings.TrimSpace(opts.Batch)
	return nil
}

func readOptionFlags(flags *pflag.FlagSet, opts *options.Program) {
	flags.StringVarP(&opts.Output, "output", "o", "", "name of the output report file, printed on console if no name given")
	flags.StringVarP(&opts.Format, "format", "f", writer.FormatTable.String(), "report format (table/json/yaml/dump/ca65)")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of files matching the given path and file mask, for example *.nsf")
	flags.IntVarP(&opts.Jobs, "jobs", "j", options.DefaultJobs, "number of files to decode concurrently")
	flags.BoolVar(&opts.Lenient, "lenient", false, "do not require the file to contain the declared program data length")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the decoded header by re-encoding it and comparing it with the input")
	flags.BoolVar(&opts.Strict, "strict", false, "treat header warnings as errors")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "perform operations quietly")
}
