// Package options contains the program options.
package options

// DefaultJobs is the default number of files that are decoded concurrently in batch mode.
const DefaultJobs = 4

// Parameters contains file path options.
type Parameters struct {
	Inputs []string // NSF files passed as positional arguments
	Output string   // report file, stdout if empty
	Batch  string   // glob pattern of additional files to process
}

// Flags contains behavior options.
type Flags struct {
	Format  string // report format: table, json, yaml or dump
	Jobs    int    // concurrently decoded files
	Lenient bool   // do not verify an explicit program data length against the file size
	Verify  bool   // re-encode the decoded file and compare it with the input
	Strict  bool   // treat header warnings as errors
	Debug   bool
	Quiet   bool
}

// Program options of the NSF info tool.
type Program struct {
	Parameters
	Flags
}
