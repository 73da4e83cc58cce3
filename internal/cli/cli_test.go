package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/nsfinfo/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "smb.nsf"},
			want: options.Program{
				Parameters: options.Parameters{Inputs: []string{"smb.nsf"}},
				Flags:      options.Flags{Format: "table", Jobs: options.DefaultJobs},
			},
		},
		{
			name: "multiple files and format",
			args: []string{"prog", "-f", "JSON", "a.nsf", "b.nsf"},
			want: options.Program{
				Parameters: options.Parameters{Inputs: []string{"a.nsf", "b.nsf"}},
				Flags:      options.Flags{Format: "json", Jobs: options.DefaultJobs},
			},
		},
		{
			name: "flags after file",
			args: []string{"prog", "a.nsf", "--strict", "-q", "--lenient"},
			want: options.Program{
				Parameters: options.Parameters{Inputs: []string{"a.nsf"}},
				Flags:      options.Flags{Format: "table", Jobs: options.DefaultJobs, Strict: true, Quiet: true, Lenient: true},
			},
		},
		{
			name: "batch without positional file",
			args: []string{"prog", "--batch", "music/*.nsf", "-j", "8", "-o", "report.yaml", "--format", "yml"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "music/*.nsf", Output: "report.yaml"},
				Flags:      options.Flags{Format: "yaml", Jobs: 8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.Inputs, got.Inputs)
			assert.Equal(t, tt.want.Batch, got.Batch)
			assert.Equal(t, tt.want.Output, got.Output)
			assert.Equal(t, tt.want.Flags, got.Flags)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		contains   string
	}{
		{
			name:       "no input",
			args:       []string{"prog"},
			usageError: true,
		},
		{
			name:       "help",
			args:       []string{"prog", "--help"},
			usageError: true,
		},
		{
			name:       "unknown flag",
			args:       []string{"prog", "--unknown", "a.nsf"},
			usageError: true,
			contains:   "unknown flag",
		},
		{
			name:     "invalid format",
			args:     []string{"prog", "-f", "xml", "a.nsf"},
			contains: "invalid output format",
		},
		{
			name:     "invalid jobs",
			args:     []string{"prog", "-j", "0", "a.nsf"},
			contains: "invalid number of jobs",
		},
		{
			name:     "verify and lenient conflict",
			args:     []string{"prog", "--verify", "--lenient", "a.nsf"},
			contains: "lenient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}
